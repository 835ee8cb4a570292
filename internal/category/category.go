package category

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("category not found")
	ErrDuplicate = errors.New("category already exists")
	ErrEmptyName = errors.New("category name must not be empty")
)

type Category struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}
