package service

import (
	"context"

	"github.com/samarthbanodia/yatrafy/internal/model"
)

// ─── Storage collaborators ──────────────────────────────────
//
// The planner core only needs these narrow contracts. Production wiring
// uses the Postgres/Redis repositories; tests and single-process demo
// mode use the in-memory store. Both honor last-write-wins semantics:
// there is no locking or versioning around Put, which is acceptable for
// a single-user demo but not for concurrent booking.

// TripStore holds trip requests keyed by id.
type TripStore interface {
	// Get returns the trip and true, or (nil, false, nil) when absent.
	Get(ctx context.Context, id string) (*model.TripRequest, bool, error)
	// Put upserts the trip, replacing any stored version wholesale.
	Put(ctx context.Context, trip *model.TripRequest) error
}

// EventLog is the append-only analytics sink. Append is fire-and-forget:
// the core never waits on, or fails because of, event delivery.
type EventLog interface {
	Append(ctx context.Context, t model.EventType, tripID string)
	// Counts returns the number of logged events per type.
	Counts(ctx context.Context) (map[model.EventType]int, error)
}

// SessionStore keeps per-user chat transcripts and the session roster.
type SessionStore interface {
	AppendMessage(ctx context.Context, userID string, msg model.ChatMessage) error
	History(ctx context.Context, userID string) ([]model.ChatMessage, error)
	// RegisterSession records the user and reports whether they are new.
	RegisterSession(ctx context.Context, userID string) (bool, error)
	SessionCount(ctx context.Context) (int, error)
}

// Catalog is the read-only flight/hotel inventory provider.
type Catalog interface {
	Flights() []model.Flight
	Hotels() []model.Hotel
	KnownDestinations() []string
}
