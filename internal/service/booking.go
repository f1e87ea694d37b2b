package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/samarthbanodia/yatrafy/internal/model"
)

// ─── Booking errors ─────────────────────────────────────────

var (
	// ErrTripNotFound is returned when the trip id is unknown.
	ErrTripNotFound = errors.New("trip not found")

	// ErrOptionNotFound is returned when the option id does not belong
	// to the trip's candidate list.
	ErrOptionNotFound = errors.New("option not found on this trip")

	// ErrNoOptions is returned when booking is attempted before the
	// trip has been through the planning pipeline.
	ErrNoOptions = errors.New("trip has no options to book yet")

	// ErrAlreadyBooked is returned on a second booking attempt.
	// Booked is terminal; the selected option never changes.
	ErrAlreadyBooked = errors.New("trip is already booked")
)

// nudgeMessages is the fixed set of post-booking tips. One is chosen
// pseudo-randomly per booking; not deterministic, not safety-critical.
var nudgeMessages = []string{
	"Don't forget to check-in online 24 hours before your flight!",
	"Pro tip: Download offline maps for your destination.",
	"We'll send you a reminder 1 day before your trip with weather updates.",
	"Your trip is confirmed! Get ready for an amazing experience.",
}

// BookingService turns a shown option into a booked trip.
//
// Concurrency note: the store is last-write-wins with no locking, which
// is fine for the single-user demo. Anything serving concurrent users
// must add a per-trip guard or an expected-version check around the
// transition below to prevent double-booking.
type BookingService struct {
	trips    TripStore
	events   EventLog
	sessions SessionStore
	rng      *rand.Rand
	now      func() time.Time
}

// NewBookingService creates a booking service. rng drives nudge
// selection; nil gets a time-seeded source.
func NewBookingService(trips TripStore, events EventLog, sessions SessionStore, rng *rand.Rand) *BookingService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &BookingService{trips: trips, events: events, sessions: sessions, rng: rng, now: time.Now}
}

// BookingResult is what the transport layer gets back from Book.
type BookingResult struct {
	Trip         *model.TripRequest `json:"trip"`
	Itinerary    model.Itinerary    `json:"itinerary"`
	Confirmation string             `json:"confirmation"`
	Nudge        string             `json:"nudge"`
}

// Book selects an option on a trip and transitions it to booked.
//
// State transitions:
//   - options_shown → booked: option id must be in CandidateOptions.
//   - draft:  ErrNoOptions (pipeline has not run).
//   - booked: ErrAlreadyBooked (terminal state).
//
// On failure the stored trip is left untouched.
func (s *BookingService) Book(ctx context.Context, tripID, optionID, userID string) (*BookingResult, error) {
	trip, ok, err := s.trips.Get(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("booking: fetch trip: %w", err)
	}
	if !ok {
		return nil, ErrTripNotFound
	}

	if !model.CanTransition(trip.Status, model.StatusBooked) {
		switch trip.Status {
		case model.StatusBooked:
			return nil, ErrAlreadyBooked
		default:
			return nil, ErrNoOptions
		}
	}

	var selected *model.TripOption
	for i := range trip.CandidateOptions {
		if trip.CandidateOptions[i].ID == optionID {
			selected = &trip.CandidateOptions[i]
			break
		}
	}
	if selected == nil {
		return nil, ErrOptionNotFound
	}

	trip.SelectedOptionID = optionID
	trip.Status = model.StatusBooked
	if err := s.trips.Put(ctx, trip); err != nil {
		return nil, fmt.Errorf("booking: save trip: %w", err)
	}
	s.events.Append(ctx, model.EventOptionBooked, trip.ID)

	itinerary := model.Itinerary{
		Flight:    selected.Flight,
		Hotel:     selected.Hotel,
		StartDate: trip.StartDate,
		EndDate:   trip.EndDate,
	}
	nudge := nudgeMessages[s.rng.Intn(len(nudgeMessages))]
	confirmation := s.confirmation(trip, selected, nudge)

	if err := s.sessions.AppendMessage(ctx, userID, model.ChatMessage{
		ID:        "msg_" + uuid.NewString(),
		Role:      model.RoleAssistant,
		Content:   confirmation,
		Itinerary: &itinerary,
		Timestamp: s.now(),
	}); err != nil {
		log.Printf("[booking] WARNING: append chat message failed: %v", err)
	}

	log.Printf("[booking] ✓ trip %s booked option %s (₹%d total)",
		trip.ID, optionID, selected.TotalPrice)

	return &BookingResult{
		Trip:         trip,
		Itinerary:    itinerary,
		Confirmation: confirmation,
		Nudge:        nudge,
	}, nil
}

func (s *BookingService) confirmation(trip *model.TripRequest, opt *model.TripOption, nudge string) string {
	const dateLayout = "2006-01-02"
	return fmt.Sprintf(
		"🎉 Booking Confirmed!\n\nYour trip to %s is all set! Here are your details:\n\n"+
			"✈️ Flight: %s - %s to %s\n🏨 Hotel: %s, %s\n📅 Dates: %s to %s\n💰 Total: ₹%d\n\n%s",
		trip.Destination,
		opt.Flight.Airline, opt.Flight.From, opt.Flight.To,
		opt.Hotel.Name, opt.Hotel.Location,
		trip.StartDate.Format(dateLayout), trip.EndDate.Format(dateLayout),
		opt.TotalPrice, nudge)
}
