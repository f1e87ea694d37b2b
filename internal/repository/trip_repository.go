// Package repository contains the storage implementations behind the
// planner's narrow store interfaces: Postgres/Redis for production and
// an in-memory store for demo mode and tests.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/samarthbanodia/yatrafy/internal/model"
)

// TripRepository stores trips as JSONB documents in the `trips` table.
// Put is a full-replace upsert; there is no versioning, so concurrent
// writers are last-write-wins (see the schema comments in migrations/).
type TripRepository struct {
	pool *pgxpool.Pool
}

// NewTripRepository creates a trip repository over the given pool.
func NewTripRepository(pool *pgxpool.Pool) *TripRepository {
	return &TripRepository{pool: pool}
}

// Get fetches a trip by id. Absence is not an error: it returns
// (nil, false, nil) so callers can produce their own not-found result.
func (r *TripRepository) Get(ctx context.Context, id string) (*model.TripRequest, bool, error) {
	var doc []byte
	err := r.pool.QueryRow(ctx,
		`SELECT doc FROM trips WHERE id = $1`, id,
	).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get trip: %w", err)
	}

	var trip model.TripRequest
	if err := json.Unmarshal(doc, &trip); err != nil {
		return nil, false, fmt.Errorf("get trip: decode doc: %w", err)
	}
	return &trip, true, nil
}

// Put upserts the trip, replacing the stored document wholesale.
func (r *TripRepository) Put(ctx context.Context, trip *model.TripRequest) error {
	doc, err := json.Marshal(trip)
	if err != nil {
		return fmt.Errorf("put trip: encode doc: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO trips (id, user_id, status, doc)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET status = EXCLUDED.status, doc = EXCLUDED.doc, updated_at = now()
	`, trip.ID, trip.UserID, trip.Status, doc)
	if err != nil {
		return fmt.Errorf("put trip: %w", err)
	}
	return nil
}
