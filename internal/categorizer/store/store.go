package store

import (
	"context"
	"database/sql"
	"fmt"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// FindCategory prefers the longest matching pattern so a rule for
// "AMAZON PRIME" wins over a rule for "AMAZON".
func (s *Store) FindCategory(ctx context.Context, description string) (string, error) {
	query := `
		SELECT category
		FROM category_rules
		WHERE $1 ILIKE '%' || raw_pattern || '%'
		ORDER BY LENGTH(raw_pattern) DESC, created_at DESC
		LIMIT 1
	`

	var cat string

	err := s.db.QueryRowContext(ctx, query, description).Scan(&cat)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}

		return "", fmt.Errorf("finding category: %w", err)
	}

	return cat, nil
}

func (s *Store) CreateRule(ctx context.Context, rawPattern, category string) error {
	query := `
		INSERT INTO category_rules (raw_pattern, category, created_at)
		VALUES ($1, $2, NOW())
	`

	if _, err := s.db.ExecContext(ctx, query, rawPattern, category); err != nil {
		return fmt.Errorf("creating rule: %w", err)
	}

	return nil
}
