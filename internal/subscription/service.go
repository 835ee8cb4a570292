package subscription

import (
	"context"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=subscription
type Repository interface {
	CreateSubscription(ctx context.Context, sub *Subscription) error
	GetSubscription(ctx context.Context, id uuid.UUID) (*Subscription, error)
	ListSubscriptions(ctx context.Context) ([]*Subscription, error)
	UpdateSubscription(ctx context.Context, sub *Subscription) error
	DeleteSubscription(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type Params struct {
	Name            string
	Provider        string
	PriceCents      int64
	Currency        string
	BillingCycle    BillingCycle
	NextPaymentDate *time.Time
	WebsiteURL      string
	Notes           string
}

func (s *Service) Create(ctx context.Context, params Params) (*Subscription, error) {
	if !params.BillingCycle.Valid() {
		return nil, ErrInvalidBillingCycle
	}

	currency := params.Currency
	if currency == "" {
		currency = "USD"
	}

	sub := &Subscription{
		Name:            params.Name,
		Provider:        params.Provider,
		PriceCents:      params.PriceCents,
		Currency:        currency,
		BillingCycle:    params.BillingCycle,
		NextPaymentDate: params.NextPaymentDate,
		WebsiteURL:      params.WebsiteURL,
		Notes:           params.Notes,
	}
	if err := s.repo.CreateSubscription(ctx, sub); err != nil {
		return nil, err
	}

	return sub, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Subscription, error) {
	return s.repo.GetSubscription(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Subscription, error) {
	return s.repo.ListSubscriptions(ctx)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params Params) (*Subscription, error) {
	if !params.BillingCycle.Valid() {
		return nil, ErrInvalidBillingCycle
	}

	sub, err := s.repo.GetSubscription(ctx, id)
	if err != nil {
		return nil, err
	}

	sub.Name = params.Name
	sub.Provider = params.Provider
	sub.PriceCents = params.PriceCents
	sub.BillingCycle = params.BillingCycle
	sub.NextPaymentDate = params.NextPaymentDate
	sub.WebsiteURL = params.WebsiteURL
	sub.Notes = params.Notes

	if params.Currency != "" {
		sub.Currency = params.Currency
	}

	if err := s.repo.UpdateSubscription(ctx, sub); err != nil {
		return nil, err
	}

	return sub, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteSubscription(ctx, id)
}

// MonthlyTotalCents sums the normalized monthly cost of every subscription.
func (s *Service) MonthlyTotalCents(ctx context.Context) (int64, error) {
	subs, err := s.repo.ListSubscriptions(ctx)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, sub := range subs {
		total += sub.MonthlyCents()
	}

	return total, nil
}
