package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/samarthbanodia/yatrafy/internal/model"
)

// MemoryStore is a single-process implementation of all three store
// contracts (trips, event log, sessions), used in demo mode and tests.
//
// Writes are last-write-wins with no versioning: two racing bookings of
// the same trip will silently overwrite each other. Acceptable for the
// single-user demo; anything multi-user belongs on the Postgres/Redis
// repositories plus a real concurrency guard.
type MemoryStore struct {
	mu       sync.RWMutex
	trips    map[string]model.TripRequest
	events   []model.AnalyticsEvent
	history  map[string][]model.ChatMessage
	sessions map[string]struct{}
	now      func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		trips:    make(map[string]model.TripRequest),
		history:  make(map[string][]model.ChatMessage),
		sessions: make(map[string]struct{}),
		now:      time.Now,
	}
}

// ─── TripStore ──────────────────────────────────────────────

func (s *MemoryStore) Get(ctx context.Context, id string) (*model.TripRequest, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	trip, ok := s.trips[id]
	if !ok {
		return nil, false, nil
	}
	// Shallow copy keeps callers from mutating the stored record
	// without going through Put.
	return &trip, true, nil
}

func (s *MemoryStore) Put(ctx context.Context, trip *model.TripRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trips[trip.ID] = *trip
	return nil
}

// ─── EventLog ───────────────────────────────────────────────

func (s *MemoryStore) Append(ctx context.Context, t model.EventType, tripID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, model.AnalyticsEvent{
		ID:        "evt_" + uuid.NewString(),
		Type:      t,
		TripID:    tripID,
		Timestamp: s.now(),
	})
}

func (s *MemoryStore) Counts(ctx context.Context) (map[model.EventType]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[model.EventType]int)
	for _, e := range s.events {
		counts[e.Type]++
	}
	return counts, nil
}

// Events returns a copy of the full log in append order.
func (s *MemoryStore) Events(ctx context.Context) []model.AnalyticsEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.AnalyticsEvent, len(s.events))
	copy(out, s.events)
	return out
}

// ─── SessionStore ───────────────────────────────────────────

func (s *MemoryStore) AppendMessage(ctx context.Context, userID string, msg model.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history[userID] = append(s.history[userID], msg)
	return nil
}

func (s *MemoryStore) History(ctx context.Context, userID string) ([]model.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.ChatMessage, len(s.history[userID]))
	copy(out, s.history[userID])
	return out, nil
}

func (s *MemoryStore) RegisterSession(ctx context.Context, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, seen := s.sessions[userID]; seen {
		return false, nil
	}
	s.sessions[userID] = struct{}{}
	return true, nil
}

func (s *MemoryStore) SessionCount(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions), nil
}
