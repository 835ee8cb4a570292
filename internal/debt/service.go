package debt

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=debt
type Repository interface {
	CreateDebt(ctx context.Context, d *Debt) error
	GetDebt(ctx context.Context, id uuid.UUID) (*Debt, error)
	ListDebts(ctx context.Context, activeOnly bool) ([]*Debt, error)
	UpdateDebt(ctx context.Context, d *Debt) error
	DeleteDebt(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type Params struct {
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
}

func (s *Service) Create(ctx context.Context, params Params) (*Debt, error) {
	if params.TotalAmount.IsNegative() || params.CurrentBalance.IsNegative() {
		return nil, ErrInvalidAmount
	}

	d := &Debt{
		Type:           params.Type,
		Lender:         params.Lender,
		AccountNumber:  params.AccountNumber,
		TotalAmount:    params.TotalAmount,
		CurrentBalance: params.CurrentBalance,
		InterestRate:   params.InterestRate,
		MinimumPayment: params.MinimumPayment,
		DueDate:        params.DueDate,
		Description:    params.Description,
		Active:         params.Active,
	}
	if err := s.repo.CreateDebt(ctx, d); err != nil {
		return nil, err
	}

	return d, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Debt, error) {
	return s.repo.GetDebt(ctx, id)
}

func (s *Service) List(ctx context.Context, activeOnly bool) ([]*Debt, error) {
	return s.repo.ListDebts(ctx, activeOnly)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params Params) (*Debt, error) {
	if params.TotalAmount.IsNegative() || params.CurrentBalance.IsNegative() {
		return nil, ErrInvalidAmount
	}

	d, err := s.repo.GetDebt(ctx, id)
	if err != nil {
		return nil, err
	}

	d.Type = params.Type
	d.Lender = params.Lender
	d.AccountNumber = params.AccountNumber
	d.TotalAmount = params.TotalAmount
	d.CurrentBalance = params.CurrentBalance
	d.InterestRate = params.InterestRate
	d.MinimumPayment = params.MinimumPayment
	d.DueDate = params.DueDate
	d.Description = params.Description
	d.Active = params.Active

	if err := s.repo.UpdateDebt(ctx, d); err != nil {
		return nil, err
	}

	return d, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteDebt(ctx, id)
}
