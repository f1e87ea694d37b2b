package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/samarthbanodia/yatrafy/internal/model"
)

const (
	// countsCacheKey holds the per-type event counts as a JSON map.
	countsCacheKey = "analytics:event_counts"
	// countsCacheTTL bounds dashboard staleness while keeping the
	// summary endpoint off the database on repeated polls.
	countsCacheTTL = 30 * time.Second
)

// AnalyticsRepository is the append-only event log: Postgres for the
// durable facts, Redis as a short-TTL fast path for the summary counts.
type AnalyticsRepository struct {
	pool  *pgxpool.Pool
	redis *redis.Client
}

// NewAnalyticsRepository creates an analytics repository.
func NewAnalyticsRepository(pool *pgxpool.Pool, redis *redis.Client) *AnalyticsRepository {
	return &AnalyticsRepository{pool: pool, redis: redis}
}

// Append logs one event. Fire-and-forget by contract: the planner never
// blocks on, or fails because of, event delivery, so failures are only
// logged here.
func (r *AnalyticsRepository) Append(ctx context.Context, t model.EventType, tripID string) {
	var tripRef *string
	if tripID != "" {
		tripRef = &tripID
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO analytics_events (id, event_type, trip_id)
		VALUES ($1, $2, $3)
	`, "evt_"+uuid.NewString(), t, tripRef)
	if err != nil {
		log.Printf("[analytics] WARNING: append %s failed: %v", t, err)
		return
	}

	// The cached counts are stale now; drop them (fire-and-forget).
	_ = r.redis.Del(ctx, countsCacheKey).Err()
}

// Counts returns the number of logged events per type.
//
// Cache-aside:
//  1. Try Redis first (fast path).
//  2. On miss, run the GROUP BY against Postgres, then cache the map.
func (r *AnalyticsRepository) Counts(ctx context.Context) (map[model.EventType]int, error) {
	if cached, err := r.redis.Get(ctx, countsCacheKey).Bytes(); err == nil {
		counts := make(map[model.EventType]int)
		if err := json.Unmarshal(cached, &counts); err == nil {
			return counts, nil
		}
		// Corrupt cache entry; fall through to the database.
	}

	rows, err := r.pool.Query(ctx,
		`SELECT event_type, COUNT(*) FROM analytics_events GROUP BY event_type`)
	if err != nil {
		return nil, fmt.Errorf("event counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[model.EventType]int)
	for rows.Next() {
		var t model.EventType
		var n int
		if err := rows.Scan(&t, &n); err != nil {
			return nil, fmt.Errorf("event counts: scan: %w", err)
		}
		counts[t] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("event counts: %w", err)
	}

	// Cache the result (fire-and-forget, don't block on errors).
	if encoded, err := json.Marshal(counts); err == nil {
		_ = r.redis.Set(ctx, countsCacheKey, encoded, countsCacheTTL).Err()
	}
	return counts, nil
}
