package debt

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound      = errors.New("debt not found")
	ErrInvalidAmount = errors.New("debt amounts must not be negative")
)

// Debt is an outstanding liability tracked for payoff planning. DueDate is a
// free-form label such as "15th of each month", not a calendar date.
type Debt struct {
	ID             uuid.UUID
	Type           string
	Lender         string
	AccountNumber  string
	TotalAmount    decimal.Decimal
	CurrentBalance decimal.Decimal
	InterestRate   *decimal.Decimal
	MinimumPayment *decimal.Decimal
	DueDate        string
	Description    string
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}
