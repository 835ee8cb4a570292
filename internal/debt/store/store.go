package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/lfonseca/moneta/internal/debt"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectDebtColumns = `id, type, lender, account_number, total_amount, current_balance, interest_rate, minimum_payment, due_date, description, is_active, created_at, updated_at`

func scanDebt(s scanner) (*debt.Debt, error) {
	var d debt.Debt

	if err := s.Scan(
		&d.ID, &d.Type, &d.Lender, &d.AccountNumber, &d.TotalAmount, &d.CurrentBalance,
		&d.InterestRate, &d.MinimumPayment, &d.DueDate, &d.Description, &d.Active,
		&d.CreatedAt, &d.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &d, nil
}

func (s *Store) CreateDebt(ctx context.Context, d *debt.Debt) error {
	query := `
		INSERT INTO debts (type, lender, account_number, total_amount, current_balance, interest_rate, minimum_payment, due_date, description, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		d.Type,
		d.Lender,
		d.AccountNumber,
		d.TotalAmount,
		d.CurrentBalance,
		d.InterestRate,
		d.MinimumPayment,
		d.DueDate,
		d.Description,
		d.Active,
	).Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating debt: %w", err)
	}

	return nil
}

func (s *Store) GetDebt(ctx context.Context, id uuid.UUID) (*debt.Debt, error) {
	query := `SELECT ` + selectDebtColumns + ` FROM debts WHERE id = $1`

	d, err := scanDebt(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, debt.ErrNotFound
		}

		return nil, fmt.Errorf("getting debt: %w", err)
	}

	return d, nil
}

func (s *Store) ListDebts(ctx context.Context, activeOnly bool) ([]*debt.Debt, error) {
	query := `SELECT ` + selectDebtColumns + ` FROM debts`

	if activeOnly {
		query += ` WHERE is_active`
	}

	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing debts: %w", err)
	}
	defer rows.Close()

	var debts []*debt.Debt

	for rows.Next() {
		d, err := scanDebt(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning debt: %w", err)
		}

		debts = append(debts, d)
	}

	return debts, rows.Err()
}

func (s *Store) UpdateDebt(ctx context.Context, d *debt.Debt) error {
	query := `
		UPDATE debts
		SET type = $1, lender = $2, account_number = $3, total_amount = $4, current_balance = $5,
			interest_rate = $6, minimum_payment = $7, due_date = $8, description = $9, is_active = $10,
			updated_at = NOW()
		WHERE id = $11
	`

	res, err := s.db.ExecContext(ctx, query,
		d.Type,
		d.Lender,
		d.AccountNumber,
		d.TotalAmount,
		d.CurrentBalance,
		d.InterestRate,
		d.MinimumPayment,
		d.DueDate,
		d.Description,
		d.Active,
		d.ID,
	)
	if err != nil {
		return fmt.Errorf("updating debt: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return debt.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteDebt(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM debts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting debt: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return debt.ErrNotFound
	}

	return nil
}
