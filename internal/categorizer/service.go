package categorizer

import (
	"context"
)

type Repository interface {
	FindCategory(ctx context.Context, description string) (string, error)
	CreateRule(ctx context.Context, rawPattern, category string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest returns the category whose rule matches the description, or an
// empty string when no rule applies.
func (s *Service) Suggest(ctx context.Context, description string) (string, error) {
	return s.repo.FindCategory(ctx, description)
}

// Learn records a new pattern so future descriptions containing it are
// suggested the given category.
func (s *Service) Learn(ctx context.Context, rawPattern, category string) error {
	return s.repo.CreateRule(ctx, rawPattern, category)
}
