package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/samarthbanodia/yatrafy/internal/model"
)

// ErrUnknownEvent is returned for a simulated event type outside the
// fixed T_MINUS_1 / FLIGHT_DELAY set. Handlers reject these before the
// core, so hitting this means a programming error upstream.
var ErrUnknownEvent = errors.New("unknown simulated event type")

// Notifier produces post-booking notification strings for simulated
// trip events. It is a side output only: trip status never changes here.
type Notifier struct {
	trips    TripStore
	sessions SessionStore
	now      func() time.Time
}

// NewNotifier creates a notifier.
func NewNotifier(trips TripStore, sessions SessionStore) *Notifier {
	return &Notifier{trips: trips, sessions: sessions, now: time.Now}
}

// SimulateEvent renders the notification for a trip event and appends
// it to the user's transcript.
func (n *Notifier) SimulateEvent(ctx context.Context, tripID string, event model.SimulatedEvent, userID string) (string, error) {
	trip, ok, err := n.trips.Get(ctx, tripID)
	if err != nil {
		return "", fmt.Errorf("notify: fetch trip: %w", err)
	}
	if !ok {
		return "", ErrTripNotFound
	}

	var message string
	switch event {
	case model.EventTMinus1:
		message = fmt.Sprintf(
			"⏰ Reminder: Your trip to %s starts tomorrow! Current weather: Sunny, 28°C. Have a great journey!",
			trip.Destination)
	case model.EventFlightDelay:
		message = "⚠️ Flight Update: Your flight has been delayed by 2 hours. We're checking alternate options. New departure time: 10:00 AM."
	default:
		return "", ErrUnknownEvent
	}

	if err := n.sessions.AppendMessage(ctx, userID, model.ChatMessage{
		ID:        "msg_" + uuid.NewString(),
		Role:      model.RoleAssistant,
		Content:   message,
		Timestamp: n.now(),
	}); err != nil {
		log.Printf("[notify] WARNING: append chat message failed: %v", err)
	}

	log.Printf("[notify] trip %s: %s notification sent", tripID, event)
	return message, nil
}
