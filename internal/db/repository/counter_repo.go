package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// CounterRepository hands out per-day order sequence numbers. The upsert
// is a single atomic statement, so two concurrent submissions can never
// draw the same number.
type CounterRepository struct {
	db *sqlx.DB
}

// NewCounterRepository creates a new counter repository
func NewCounterRepository(db *sqlx.DB) *CounterRepository {
	return &CounterRepository{db: db}
}

// Next returns the next sequence number for the given scope and day
// (YYYYMMDD), starting at 1.
func (r *CounterRepository) Next(ctx context.Context, scope, day string) (int, error) {
	query := `
		INSERT INTO daily_counters (scope, day, seq)
		VALUES ($1, $2, 1)
		ON CONFLICT (scope, day) DO UPDATE SET seq = daily_counters.seq + 1
		RETURNING seq
	`

	var seq int
	err := r.db.GetContext(ctx, &seq, query, scope, day)
	if err != nil {
		return 0, fmt.Errorf("failed to advance counter %s/%s: %w", scope, day, err)
	}

	return seq, nil
}
