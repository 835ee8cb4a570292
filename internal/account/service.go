package account

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=account
type Repository interface {
	CreateAccount(ctx context.Context, acc *Account) error
	GetAccount(ctx context.Context, id uuid.UUID) (*Account, error)
	ListAccounts(ctx context.Context) ([]*Account, error)
	UpdateAccount(ctx context.Context, acc *Account) error

	// DeleteAccount removes the account and unlinks any ledger entries that
	// reference it. Unlinking performs no balance adjustment.
	DeleteAccount(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name        string
	Type        Type
	Balance     decimal.Decimal
	CreditLimit *decimal.Decimal
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Account, error) {
	if !params.Type.Valid() {
		return nil, ErrInvalidType
	}

	acc := &Account{
		Name:        params.Name,
		Type:        params.Type,
		Balance:     params.Balance,
		CreditLimit: params.CreditLimit,
	}
	if err := s.repo.CreateAccount(ctx, acc); err != nil {
		return nil, err
	}

	return acc, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Account, error) {
	return s.repo.GetAccount(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Account, error) {
	return s.repo.ListAccounts(ctx)
}

func (s *Service) Update(ctx context.Context, acc *Account) error {
	if !acc.Type.Valid() {
		return ErrInvalidType
	}

	return s.repo.UpdateAccount(ctx, acc)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteAccount(ctx, id)
}
