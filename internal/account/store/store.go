package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/lfonseca/moneta/internal/account"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// Expected column order: id, name, type, balance, credit_limit, created_at, updated_at
func scanAccount(s scanner) (*account.Account, error) {
	var acc account.Account

	var typeStr string

	if err := s.Scan(
		&acc.ID, &acc.Name, &typeStr, &acc.Balance, &acc.CreditLimit,
		&acc.CreatedAt, &acc.UpdatedAt,
	); err != nil {
		return nil, err
	}

	acc.Type = account.Type(typeStr)

	return &acc, nil
}

const selectAccountColumns = `id, name, type, balance, credit_limit, created_at, updated_at`

func (s *Store) CreateAccount(ctx context.Context, acc *account.Account) error {
	query := `
		INSERT INTO accounts (name, type, balance, credit_limit, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		acc.Name,
		acc.Type,
		acc.Balance,
		acc.CreditLimit,
	).Scan(&acc.ID, &acc.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating account: %w", err)
	}

	return nil
}

func (s *Store) GetAccount(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	query := `SELECT ` + selectAccountColumns + ` FROM accounts WHERE id = $1`

	acc, err := scanAccount(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, account.ErrNotFound
		}

		return nil, fmt.Errorf("getting account: %w", err)
	}

	return acc, nil
}

func (s *Store) ListAccounts(ctx context.Context) ([]*account.Account, error) {
	query := `SELECT ` + selectAccountColumns + ` FROM accounts ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	var accs []*account.Account

	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}

		accs = append(accs, acc)
	}

	return accs, rows.Err()
}

func (s *Store) UpdateAccount(ctx context.Context, acc *account.Account) error {
	query := `
		UPDATE accounts
		SET name = $1, type = $2, balance = $3, credit_limit = $4, updated_at = NOW()
		WHERE id = $5
	`

	res, err := s.db.ExecContext(ctx, query,
		acc.Name,
		acc.Type,
		acc.Balance,
		acc.CreditLimit,
		acc.ID,
	)
	if err != nil {
		return fmt.Errorf("updating account: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return account.ErrNotFound
	}

	return nil
}

// DeleteAccount unlinks referencing ledger entries and removes the account.
// Both steps run in one database transaction so an entry is never left
// pointing at a missing account.
func (s *Store) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	if _, err := dbTx.ExecContext(ctx, `UPDATE expenses SET account_id = NULL WHERE account_id = $1`, id); err != nil {
		return fmt.Errorf("unlinking expenses: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, `UPDATE incomes SET account_id = NULL WHERE account_id = $1`, id); err != nil {
		return fmt.Errorf("unlinking incomes: %w", err)
	}

	res, err := dbTx.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting account: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return account.ErrNotFound
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}
