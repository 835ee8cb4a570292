package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lfonseca/moneta/internal/account"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger
type Repository interface {
	GetExpense(ctx context.Context, id uuid.UUID) (*Expense, error)
	ListExpenses(ctx context.Context, filter ListFilter) ([]*Expense, error)
	GetIncome(ctx context.Context, id uuid.UUID) (*Income, error)
	ListIncomes(ctx context.Context, filter ListFilter) ([]*Income, error)

	Begin(ctx context.Context) (Tx, error)
}

// Tx is a single database transaction. Every balance mutation and the entry
// write it belongs to are issued through one Tx, so they commit or roll back
// together.
type Tx interface {
	// LockAccount reads the account under a row lock, serializing concurrent
	// balance updates against the same account.
	LockAccount(ctx context.Context, id uuid.UUID) (*account.Account, error)
	// AdjustBalance applies a relative balance update (balance = balance + delta).
	AdjustBalance(ctx context.Context, accountID uuid.UUID, delta decimal.Decimal) error

	GetExpense(ctx context.Context, id uuid.UUID) (*Expense, error)
	CreateExpense(ctx context.Context, e *Expense) error
	UpdateExpense(ctx context.Context, e *Expense) error
	DeleteExpense(ctx context.Context, id uuid.UUID) error

	GetIncome(ctx context.Context, id uuid.UUID) (*Income, error)
	CreateIncome(ctx context.Context, in *Income) error
	UpdateIncome(ctx context.Context, in *Income) error
	DeleteIncome(ctx context.Context, id uuid.UUID) error

	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type ExpenseParams struct {
	Amount      decimal.Decimal
	Category    string
	Date        time.Time
	Description string
	AccountID   *uuid.UUID
}

type IncomeParams struct {
	Amount       decimal.Decimal
	Source       string
	Date         time.Time
	Description  string
	Notes        string
	State        string
	FilingStatus string
	AccountID    *uuid.UUID
}

type ListFilter struct {
	Category  *string
	Source    *string
	StartDate *time.Time
	EndDate   *time.Time
}

// CreateExpense records an expense. When the expense is linked to an account,
// the account must exist and hold at least Amount; the deduction and the
// expense row are written atomically.
func (s *Service) CreateExpense(ctx context.Context, params ExpenseParams) (*Expense, error) {
	if !params.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	e, err := createExpenseInTx(ctx, tx, params)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return e, nil
}

func createExpenseInTx(ctx context.Context, tx Tx, params ExpenseParams) (*Expense, error) {
	if params.AccountID != nil {
		acc, err := tx.LockAccount(ctx, *params.AccountID)
		if err != nil {
			return nil, err
		}

		if acc.Balance.LessThan(params.Amount) {
			return nil, ErrInsufficientFunds
		}

		if err := tx.AdjustBalance(ctx, *params.AccountID, params.Amount.Neg()); err != nil {
			return nil, err
		}
	}

	e := &Expense{
		Amount:      params.Amount,
		Category:    params.Category,
		Date:        params.Date,
		Description: params.Description,
		AccountID:   params.AccountID,
	}
	if err := tx.CreateExpense(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

// UpdateExpense rewrites an expense. If the amount or the linked account
// changed, the old amount is refunded to the old account and the new amount
// deducted from the new one, with the sufficiency check applied after the
// refund. All writes share one transaction.
func (s *Service) UpdateExpense(ctx context.Context, id uuid.UUID, params ExpenseParams) (*Expense, error) {
	if !params.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	cur, err := tx.GetExpense(ctx, id)
	if err != nil {
		return nil, err
	}

	if !sameAccount(cur.AccountID, params.AccountID) || !cur.Amount.Equal(params.Amount) {
		if cur.AccountID != nil {
			// Refund the old deduction. An old account deleted out from under
			// the entry is tolerated: nothing to refund to.
			if _, err := tx.LockAccount(ctx, *cur.AccountID); err == nil {
				if err := tx.AdjustBalance(ctx, *cur.AccountID, cur.Amount); err != nil {
					return nil, err
				}
			} else if !errors.Is(err, ErrAccountNotFound) {
				return nil, err
			}
		}

		if params.AccountID != nil {
			acc, err := tx.LockAccount(ctx, *params.AccountID)
			if err != nil {
				return nil, err
			}

			// The balance read here already includes the refund when old and
			// new account coincide.
			if acc.Balance.LessThan(params.Amount) {
				return nil, ErrInsufficientFunds
			}

			if err := tx.AdjustBalance(ctx, *params.AccountID, params.Amount.Neg()); err != nil {
				return nil, err
			}
		}
	}

	cur.Amount = params.Amount
	cur.Category = params.Category
	cur.Date = params.Date
	cur.Description = params.Description
	cur.AccountID = params.AccountID

	if err := tx.UpdateExpense(ctx, cur); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return cur, nil
}

// DeleteExpense removes an expense and refunds its amount to the linked
// account, if any.
func (s *Service) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	cur, err := tx.GetExpense(ctx, id)
	if err != nil {
		return err
	}

	if cur.AccountID != nil {
		if _, err := tx.LockAccount(ctx, *cur.AccountID); err == nil {
			if err := tx.AdjustBalance(ctx, *cur.AccountID, cur.Amount); err != nil {
				return err
			}
		} else if !errors.Is(err, ErrAccountNotFound) {
			return err
		}
	}

	if err := tx.DeleteExpense(ctx, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}

// CreateIncome records an income. A linked account is credited with Amount.
// There is no sufficiency check on the income side.
func (s *Service) CreateIncome(ctx context.Context, params IncomeParams) (*Income, error) {
	if !params.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	in, err := createIncomeInTx(ctx, tx, params)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return in, nil
}

func createIncomeInTx(ctx context.Context, tx Tx, params IncomeParams) (*Income, error) {
	if params.AccountID != nil {
		if _, err := tx.LockAccount(ctx, *params.AccountID); err != nil {
			return nil, err
		}

		if err := tx.AdjustBalance(ctx, *params.AccountID, params.Amount); err != nil {
			return nil, err
		}
	}

	in := &Income{
		Amount:       params.Amount,
		Source:       params.Source,
		Date:         params.Date,
		Description:  params.Description,
		Notes:        params.Notes,
		State:        params.State,
		FilingStatus: params.FilingStatus,
		AccountID:    params.AccountID,
	}
	if err := tx.CreateIncome(ctx, in); err != nil {
		return nil, err
	}

	return in, nil
}

// UpdateIncome rewrites an income. If the account changed, the old account
// loses the old amount and the new account gains the new amount. If only the
// amount changed, the account is adjusted by the signed delta. Decrements may
// drive a balance negative.
func (s *Service) UpdateIncome(ctx context.Context, id uuid.UUID, params IncomeParams) (*Income, error) {
	if !params.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	cur, err := tx.GetIncome(ctx, id)
	if err != nil {
		return nil, err
	}

	switch {
	case !sameAccount(cur.AccountID, params.AccountID):
		if cur.AccountID != nil {
			if _, err := tx.LockAccount(ctx, *cur.AccountID); err == nil {
				if err := tx.AdjustBalance(ctx, *cur.AccountID, cur.Amount.Neg()); err != nil {
					return nil, err
				}
			} else if !errors.Is(err, ErrAccountNotFound) {
				return nil, err
			}
		}

		if params.AccountID != nil {
			if _, err := tx.LockAccount(ctx, *params.AccountID); err != nil {
				return nil, err
			}

			if err := tx.AdjustBalance(ctx, *params.AccountID, params.Amount); err != nil {
				return nil, err
			}
		}
	case params.AccountID != nil && !cur.Amount.Equal(params.Amount):
		if _, err := tx.LockAccount(ctx, *params.AccountID); err != nil {
			return nil, err
		}

		if err := tx.AdjustBalance(ctx, *params.AccountID, params.Amount.Sub(cur.Amount)); err != nil {
			return nil, err
		}
	}

	cur.Amount = params.Amount
	cur.Source = params.Source
	cur.Date = params.Date
	cur.Description = params.Description
	cur.Notes = params.Notes
	cur.State = params.State
	cur.FilingStatus = params.FilingStatus
	cur.AccountID = params.AccountID

	if err := tx.UpdateIncome(ctx, cur); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return cur, nil
}

// DeleteIncome removes an income and debits its amount from the linked
// account, if any. The balance may legitimately go negative.
func (s *Service) DeleteIncome(ctx context.Context, id uuid.UUID) error {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	cur, err := tx.GetIncome(ctx, id)
	if err != nil {
		return err
	}

	if cur.AccountID != nil {
		if _, err := tx.LockAccount(ctx, *cur.AccountID); err == nil {
			if err := tx.AdjustBalance(ctx, *cur.AccountID, cur.Amount.Neg()); err != nil {
				return err
			}
		} else if !errors.Is(err, ErrAccountNotFound) {
			return err
		}
	}

	if err := tx.DeleteIncome(ctx, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}

func (s *Service) GetExpense(ctx context.Context, id uuid.UUID) (*Expense, error) {
	return s.repo.GetExpense(ctx, id)
}

func (s *Service) ListExpenses(ctx context.Context, filter ListFilter) ([]*Expense, error) {
	return s.repo.ListExpenses(ctx, filter)
}

func (s *Service) GetIncome(ctx context.Context, id uuid.UUID) (*Income, error) {
	return s.repo.GetIncome(ctx, id)
}

func (s *Service) ListIncomes(ctx context.Context, filter ListFilter) ([]*Income, error) {
	return s.repo.ListIncomes(ctx, filter)
}

type BatchParams struct {
	Expenses []ExpenseParams
	Incomes  []IncomeParams
}

type BatchResult struct {
	Expenses []*Expense
	Incomes  []*Income
}

// ImportBatch inserts a parsed statement in a single transaction. Entries may
// carry account links; each one goes through the same balance bookkeeping as
// the single-entry operations.
func (s *Service) ImportBatch(ctx context.Context, params BatchParams) (*BatchResult, error) {
	if len(params.Expenses) == 0 && len(params.Incomes) == 0 {
		return &BatchResult{}, nil
	}

	for _, p := range params.Expenses {
		if !p.Amount.IsPositive() {
			return nil, ErrInvalidAmount
		}
	}

	for _, p := range params.Incomes {
		if !p.Amount.IsPositive() {
			return nil, ErrInvalidAmount
		}
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	result := &BatchResult{}

	for _, p := range params.Expenses {
		e, err := createExpenseInTx(ctx, tx, p)
		if err != nil {
			return nil, fmt.Errorf("importing expense: %w", err)
		}

		result.Expenses = append(result.Expenses, e)
	}

	for _, p := range params.Incomes {
		in, err := createIncomeInTx(ctx, tx, p)
		if err != nil {
			return nil, fmt.Errorf("importing income: %w", err)
		}

		result.Incomes = append(result.Incomes, in)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return result, nil
}

func sameAccount(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}

	return *a == *b
}
