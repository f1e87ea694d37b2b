// Package model contains domain models for the travel planning chat system.
// These structs are stored as JSONB documents in the `trips` table defined
// in migrations/001_create_schema.up.sql.
package model

import (
	"math"
	"time"
)

// ─── Enums ──────────────────────────────────────────────────

// BudgetBand is the price tier extracted from the user's message.
type BudgetBand string

const (
	BandBudget   BudgetBand = "budget"
	BandMidRange BudgetBand = "mid-range"
	BandPremium  BudgetBand = "premium"
)

// Nightly rate boundaries (in rupees) separating the budget bands.
const (
	BudgetNightlyCeiling   = 3000
	MidRangeNightlyCeiling = 6000
)

// MatchesNightlyRate reports whether a hotel's per-night price falls
// inside this band:
//
//	budget:    price < 3000
//	mid-range: 3000 ≤ price ≤ 6000
//	premium:   price > 6000
func (b BudgetBand) MatchesNightlyRate(pricePerNight int) bool {
	switch b {
	case BandBudget:
		return pricePerNight < BudgetNightlyCeiling
	case BandMidRange:
		return pricePerNight >= BudgetNightlyCeiling && pricePerNight <= MidRangeNightlyCeiling
	case BandPremium:
		return pricePerNight > MidRangeNightlyCeiling
	default:
		return true
	}
}

type TripStatus string

const (
	StatusDraft        TripStatus = "draft"
	StatusOptionsShown TripStatus = "options_shown"
	StatusBooked       TripStatus = "booked"
)

// AllowedTransitions represents the trip lifecycle as code.
// There is no transition back to draft, and booked is terminal.
var AllowedTransitions = map[TripStatus][]TripStatus{
	StatusDraft:        {StatusOptionsShown},
	StatusOptionsShown: {StatusBooked},
}

// CanTransition reports whether moving a trip from `from` to `to` is legal.
func CanTransition(from, to TripStatus) bool {
	for _, s := range AllowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// TripPurpose is the stated reason for travel.
type TripPurpose string

const (
	PurposeRelaxation TripPurpose = "relaxation"
	PurposeBusiness   TripPurpose = "business"
	PurposeAdventure  TripPurpose = "adventure"
	PurposeRomantic   TripPurpose = "romantic"
	PurposeFamily     TripPurpose = "family trip"
)

// EventType enumerates the analytics events this system records.
type EventType string

const (
	EventSessionStarted   EventType = "session_started"
	EventTripCreated      EventType = "trip_created"
	EventOptionsViewed    EventType = "options_viewed"
	EventOptionBooked     EventType = "option_booked"
	EventEscalatedToHuman EventType = "escalated_to_human"
)

// SimulatedEvent is a post-booking event fed to the notifier.
// It produces a notification string and never changes trip status.
type SimulatedEvent string

const (
	EventTMinus1     SimulatedEvent = "T_MINUS_1"
	EventFlightDelay SimulatedEvent = "FLIGHT_DELAY"
)

type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ─── Catalog records ────────────────────────────────────────

// Flight is an immutable catalog record. Price is one-way in rupees;
// bundles double it to model a round trip.
type Flight struct {
	ID         string    `json:"id"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	DepartTime time.Time `json:"depart_time"`
	ArriveTime time.Time `json:"arrive_time"`
	Price      int       `json:"price"`
	Airline    string    `json:"airline"`
}

// Hotel is an immutable catalog record. SafetyScore and
// AccessibilityScore are optional (nil when the property is unscored).
type Hotel struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Location           string   `json:"location"`
	PricePerNight      int      `json:"price_per_night"`
	Rating             float64  `json:"rating"`
	ImageURL           string   `json:"image_url,omitempty"`
	SafetyScore        *float64 `json:"safety_score,omitempty"`
	AccessibilityScore *float64 `json:"accessibility_score,omitempty"`
}

// ─── Trip aggregate ─────────────────────────────────────────

// TripPreferences is the optional structured preference record.
// It is present on a trip only if at least one preference cue matched.
type TripPreferences struct {
	SafetyPriority     bool     `json:"safety_priority,omitempty"`
	AccessibilityNeeds []string `json:"accessibility_needs,omitempty"`
}

// TripOption bundles one flight with one hotel. IDs are scoped to the
// generation batch ("opt_1".."opt_3"), not globally unique; options are
// created fresh each planning cycle and live only on their parent trip.
type TripOption struct {
	ID         string `json:"id"`
	Flight     Flight `json:"flight"`
	Hotel      Hotel  `json:"hotel"`
	TotalPrice int    `json:"total_price"`
	Rationale  string `json:"rationale"`
}

// TripRequest is a user's structured travel intent.
//
// Invariant: once Status reaches StatusOptionsShown the candidate list is
// set (possibly empty) and ordered best-first, and Status never regresses.
type TripRequest struct {
	ID               string           `json:"id"`
	UserID           string           `json:"user_id"`
	Destination      string           `json:"destination"`
	StartDate        time.Time        `json:"start_date"`
	EndDate          time.Time        `json:"end_date"`
	BudgetBand       BudgetBand       `json:"budget_band"`
	TravelersCount   int              `json:"travelers_count"`
	Purpose          TripPurpose      `json:"purpose"`
	Preferences      *TripPreferences `json:"preferences,omitempty"`
	CandidateOptions []TripOption     `json:"candidate_options,omitempty"`
	SelectedOptionID string           `json:"selected_option_id,omitempty"`
	Status           TripStatus       `json:"status"`
}

// Nights returns the billable night count: max(1, ceil(end - start)).
func (t *TripRequest) Nights() int {
	days := t.EndDate.Sub(t.StartDate).Hours() / 24
	n := int(math.Ceil(days))
	if n < 1 {
		return 1
	}
	return n
}

// ─── Analytics & chat ───────────────────────────────────────

// AnalyticsEvent is an append-only fact. Immutable once logged.
type AnalyticsEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	TripID    string    `json:"trip_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// AnalyticsSummary is the aggregate view served by the dashboard.
type AnalyticsSummary struct {
	TotalSessions         int     `json:"total_sessions"`
	TotalTrips            int     `json:"total_trips"`
	TotalBookings         int     `json:"total_bookings"`
	EscalationCount       int     `json:"escalation_count"`
	BookingConversionRate float64 `json:"booking_conversion_rate"`
}

// Itinerary is the booked flight+hotel pair returned to the caller.
type Itinerary struct {
	Flight    Flight    `json:"flight"`
	Hotel     Hotel     `json:"hotel"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// ChatMessage is one turn of a user's conversation with the assistant.
type ChatMessage struct {
	ID          string       `json:"id"`
	Role        ChatRole     `json:"role"`
	Content     string       `json:"content"`
	TripOptions []TripOption `json:"trip_options,omitempty"`
	Itinerary   *Itinerary   `json:"itinerary,omitempty"`
	Timestamp   time.Time    `json:"timestamp"`
}
