package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lfonseca/moneta/internal/account"
	"github.com/lfonseca/moneta/internal/ledger"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// querier is satisfied by both *sql.DB and *sql.Tx, letting the same query
// helpers serve repository reads and in-transaction reads.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type scanner interface {
	Scan(dest ...any) error
}

const selectExpenseColumns = `id, amount, category, date, description, account_id, created_at, updated_at, deleted_at`

// Expected column order matches selectExpenseColumns.
func scanExpense(s scanner) (*ledger.Expense, error) {
	var e ledger.Expense

	if err := s.Scan(
		&e.ID, &e.Amount, &e.Category, &e.Date, &e.Description, &e.AccountID,
		&e.CreatedAt, &e.UpdatedAt, &e.DeletedAt,
	); err != nil {
		return nil, err
	}

	return &e, nil
}

const selectIncomeColumns = `id, amount, source, date, description, notes, state, filing_status, account_id, created_at, updated_at, deleted_at`

func scanIncome(s scanner) (*ledger.Income, error) {
	var in ledger.Income

	if err := s.Scan(
		&in.ID, &in.Amount, &in.Source, &in.Date, &in.Description, &in.Notes,
		&in.State, &in.FilingStatus, &in.AccountID,
		&in.CreatedAt, &in.UpdatedAt, &in.DeletedAt,
	); err != nil {
		return nil, err
	}

	return &in, nil
}

func getExpense(ctx context.Context, q querier, id uuid.UUID) (*ledger.Expense, error) {
	query := `SELECT ` + selectExpenseColumns + ` FROM expenses WHERE id = $1 AND deleted_at IS NULL`

	e, err := scanExpense(q.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ledger.ErrNotFound
		}

		return nil, fmt.Errorf("getting expense: %w", err)
	}

	return e, nil
}

func getIncome(ctx context.Context, q querier, id uuid.UUID) (*ledger.Income, error) {
	query := `SELECT ` + selectIncomeColumns + ` FROM incomes WHERE id = $1 AND deleted_at IS NULL`

	in, err := scanIncome(q.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ledger.ErrNotFound
		}

		return nil, fmt.Errorf("getting income: %w", err)
	}

	return in, nil
}

func (s *Store) GetExpense(ctx context.Context, id uuid.UUID) (*ledger.Expense, error) {
	return getExpense(ctx, s.db, id)
}

func (s *Store) GetIncome(ctx context.Context, id uuid.UUID) (*ledger.Income, error) {
	return getIncome(ctx, s.db, id)
}

func (s *Store) ListExpenses(ctx context.Context, filter ledger.ListFilter) ([]*ledger.Expense, error) {
	query := `SELECT ` + selectExpenseColumns + ` FROM expenses WHERE deleted_at IS NULL`

	var args []any

	argIdx := 1

	if filter.Category != nil {
		query += fmt.Sprintf(" AND category = $%d", argIdx)

		args = append(args, *filter.Category)
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	query += " ORDER BY date DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	defer rows.Close()

	var out []*ledger.Expense

	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning expense: %w", err)
		}

		out = append(out, e)
	}

	return out, rows.Err()
}

func (s *Store) ListIncomes(ctx context.Context, filter ledger.ListFilter) ([]*ledger.Income, error) {
	query := `SELECT ` + selectIncomeColumns + ` FROM incomes WHERE deleted_at IS NULL`

	var args []any

	argIdx := 1

	if filter.Source != nil {
		query += fmt.Sprintf(" AND source = $%d", argIdx)

		args = append(args, *filter.Source)
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	query += " ORDER BY date DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing incomes: %w", err)
	}
	defer rows.Close()

	var out []*ledger.Income

	for rows.Next() {
		in, err := scanIncome(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning income: %w", err)
		}

		out = append(out, in)
	}

	return out, rows.Err()
}

func (s *Store) Begin(ctx context.Context) (ledger.Tx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning ledger tx: %w", err)
	}

	return &ledgerTx{tx: dbTx}, nil
}

type ledgerTx struct {
	tx *sql.Tx
}

func (t *ledgerTx) Commit() error   { return t.tx.Commit() }
func (t *ledgerTx) Rollback() error { return t.tx.Rollback() }

func (t *ledgerTx) LockAccount(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	query := `
		SELECT id, name, type, balance, credit_limit, created_at, updated_at
		FROM accounts
		WHERE id = $1
		FOR UPDATE
	`

	var acc account.Account

	var typeStr string

	err := t.tx.QueryRowContext(ctx, query, id).Scan(
		&acc.ID, &acc.Name, &typeStr, &acc.Balance, &acc.CreditLimit,
		&acc.CreatedAt, &acc.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ledger.ErrAccountNotFound
		}

		return nil, fmt.Errorf("locking account: %w", err)
	}

	acc.Type = account.Type(typeStr)

	return &acc, nil
}

func (t *ledgerTx) AdjustBalance(ctx context.Context, accountID uuid.UUID, delta decimal.Decimal) error {
	query := `
		UPDATE accounts
		SET balance = balance + $1, updated_at = NOW()
		WHERE id = $2
	`

	if _, err := t.tx.ExecContext(ctx, query, delta, accountID); err != nil {
		return fmt.Errorf("adjusting balance: %w", err)
	}

	return nil
}

func (t *ledgerTx) GetExpense(ctx context.Context, id uuid.UUID) (*ledger.Expense, error) {
	return getExpense(ctx, t.tx, id)
}

func (t *ledgerTx) GetIncome(ctx context.Context, id uuid.UUID) (*ledger.Income, error) {
	return getIncome(ctx, t.tx, id)
}

func (t *ledgerTx) CreateExpense(ctx context.Context, e *ledger.Expense) error {
	query := `
		INSERT INTO expenses (amount, category, date, description, account_id, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`

	err := t.tx.QueryRowContext(ctx, query,
		e.Amount,
		e.Category,
		e.Date,
		e.Description,
		e.AccountID,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating expense: %w", err)
	}

	return nil
}

func (t *ledgerTx) UpdateExpense(ctx context.Context, e *ledger.Expense) error {
	query := `
		UPDATE expenses
		SET amount = $1, category = $2, date = $3, description = $4, account_id = $5, updated_at = NOW()
		WHERE id = $6 AND deleted_at IS NULL
	`

	if _, err := t.tx.ExecContext(ctx, query,
		e.Amount,
		e.Category,
		e.Date,
		e.Description,
		e.AccountID,
		e.ID,
	); err != nil {
		return fmt.Errorf("updating expense: %w", err)
	}

	return nil
}

func (t *ledgerTx) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE expenses SET deleted_at = NOW() WHERE id = $1`

	if _, err := t.tx.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting expense: %w", err)
	}

	return nil
}

func (t *ledgerTx) CreateIncome(ctx context.Context, in *ledger.Income) error {
	query := `
		INSERT INTO incomes (amount, source, date, description, notes, state, filing_status, account_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, created_at
	`

	err := t.tx.QueryRowContext(ctx, query,
		in.Amount,
		in.Source,
		in.Date,
		in.Description,
		in.Notes,
		in.State,
		in.FilingStatus,
		in.AccountID,
	).Scan(&in.ID, &in.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating income: %w", err)
	}

	return nil
}

func (t *ledgerTx) UpdateIncome(ctx context.Context, in *ledger.Income) error {
	query := `
		UPDATE incomes
		SET amount = $1, source = $2, date = $3, description = $4, notes = $5,
			state = $6, filing_status = $7, account_id = $8, updated_at = NOW()
		WHERE id = $9 AND deleted_at IS NULL
	`

	if _, err := t.tx.ExecContext(ctx, query,
		in.Amount,
		in.Source,
		in.Date,
		in.Description,
		in.Notes,
		in.State,
		in.FilingStatus,
		in.AccountID,
		in.ID,
	); err != nil {
		return fmt.Errorf("updating income: %w", err)
	}

	return nil
}

func (t *ledgerTx) DeleteIncome(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE incomes SET deleted_at = NOW() WHERE id = $1`

	if _, err := t.tx.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting income: %w", err)
	}

	return nil
}
