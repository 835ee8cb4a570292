package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/lfonseca/moneta/internal/subscription"
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

const selectSubscriptionColumns = `id, name, provider, price_cents, currency, billing_cycle, next_payment_date, website_url, notes, created_at, updated_at`

func scanSubscription(s scanner) (*subscription.Subscription, error) {
	var sub subscription.Subscription

	var cycle string

	if err := s.Scan(
		&sub.ID, &sub.Name, &sub.Provider, &sub.PriceCents, &sub.Currency, &cycle,
		&sub.NextPaymentDate, &sub.WebsiteURL, &sub.Notes, &sub.CreatedAt, &sub.UpdatedAt,
	); err != nil {
		return nil, err
	}

	sub.BillingCycle = subscription.BillingCycle(cycle)

	return &sub, nil
}

func (s *Store) CreateSubscription(ctx context.Context, sub *subscription.Subscription) error {
	query := `
		INSERT INTO subscriptions (name, provider, price_cents, currency, billing_cycle, next_payment_date, website_url, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		sub.Name,
		sub.Provider,
		sub.PriceCents,
		sub.Currency,
		sub.BillingCycle,
		sub.NextPaymentDate,
		sub.WebsiteURL,
		sub.Notes,
	).Scan(&sub.ID, &sub.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating subscription: %w", err)
	}

	return nil
}

func (s *Store) GetSubscription(ctx context.Context, id uuid.UUID) (*subscription.Subscription, error) {
	query := `SELECT ` + selectSubscriptionColumns + ` FROM subscriptions WHERE id = $1`

	sub, err := scanSubscription(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, subscription.ErrNotFound
		}

		return nil, fmt.Errorf("getting subscription: %w", err)
	}

	return sub, nil
}

func (s *Store) ListSubscriptions(ctx context.Context) ([]*subscription.Subscription, error) {
	query := `SELECT ` + selectSubscriptionColumns + ` FROM subscriptions ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []*subscription.Subscription

	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning subscription: %w", err)
		}

		subs = append(subs, sub)
	}

	return subs, rows.Err()
}

func (s *Store) UpdateSubscription(ctx context.Context, sub *subscription.Subscription) error {
	query := `
		UPDATE subscriptions
		SET name = $1, provider = $2, price_cents = $3, currency = $4, billing_cycle = $5,
			next_payment_date = $6, website_url = $7, notes = $8, updated_at = NOW()
		WHERE id = $9
	`

	res, err := s.db.ExecContext(ctx, query,
		sub.Name,
		sub.Provider,
		sub.PriceCents,
		sub.Currency,
		sub.BillingCycle,
		sub.NextPaymentDate,
		sub.WebsiteURL,
		sub.Notes,
		sub.ID,
	)
	if err != nil {
		return fmt.Errorf("updating subscription: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return subscription.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteSubscription(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM subscriptions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting subscription: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return subscription.ErrNotFound
	}

	return nil
}
