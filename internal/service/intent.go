// Package service contains the core planning logic: intent extraction,
// option generation, ranking, booking, and the analytics summary.
package service

import (
	"errors"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/samarthbanodia/yatrafy/internal/model"
)

// ErrNoDestination is returned when a message mentions no known place.
// It is the only way extraction fails — no partial trip is ever produced.
var ErrNoDestination = errors.New("no known destination found in message")

// ─── Keyword rules ──────────────────────────────────────────
//
// Extraction is an ordered rule table over the lower-cased message, not a
// grammar: each rule fires on the first cue found, and earlier rules take
// priority. A message with both "cheap" and "luxury" is a budget trip
// because the budget rule is checked first.

var budgetRules = []struct {
	cues []string
	band model.BudgetBand
}{
	{[]string{"budget", "cheap", "affordable"}, model.BandBudget},
	{[]string{"premium", "luxury", "5-star"}, model.BandPremium},
}

var purposeRules = []struct {
	cues    []string
	purpose model.TripPurpose
}{
	{[]string{"work", "business"}, model.PurposeBusiness},
	{[]string{"adventure", "trek"}, model.PurposeAdventure},
	{[]string{"romantic", "honeymoon"}, model.PurposeRomantic},
	{[]string{"family"}, model.PurposeFamily},
}

var (
	safetyCues        = []string{"safe", "solo female"}
	accessibilityCues = []string{"wheelchair", "accessible"}

	travelersPattern = regexp.MustCompile(`(\d+)\s*(people|person|traveler|pax)`)
	durationPattern  = regexp.MustCompile(`(\d+)\s*(day|night)`)
)

const defaultNights = 3

// IntentExtractor turns free-form text into a structured TripRequest.
// It is deterministic given a fixed clock; `now` exists as a seam so
// date extraction is testable.
type IntentExtractor struct {
	destinations []string
	now          func() time.Time
}

// NewIntentExtractor creates an extractor scanning the given ordered
// destination list.
func NewIntentExtractor(destinations []string) *IntentExtractor {
	return &IntentExtractor{destinations: destinations, now: time.Now}
}

// Extract parses a user message into a draft TripRequest.
//
// Returns ErrNoDestination when no known place name appears in the
// message; the caller must treat that as "could not understand", not as
// an internal failure.
func (e *IntentExtractor) Extract(message, userID string) (*model.TripRequest, error) {
	lower := strings.ToLower(message)

	// Destination: first known name found as a substring wins.
	var destination string
	for _, d := range e.destinations {
		if strings.Contains(lower, strings.ToLower(d)) {
			destination = d
			break
		}
	}
	if destination == "" {
		return nil, ErrNoDestination
	}

	// Budget band: budget cues outrank premium cues; default mid-range.
	band := model.BandMidRange
	for _, rule := range budgetRules {
		if containsAny(lower, rule.cues) {
			band = rule.band
			break
		}
	}

	// Traveler count: "<n> people|person|traveler|pax", default 1.
	travelers := 1
	if m := travelersPattern.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n >= 1 {
			travelers = n
		}
	}

	// Purpose: first rule whose cue set matches; default relaxation.
	purpose := model.PurposeRelaxation
	for _, rule := range purposeRules {
		if containsAny(lower, rule.cues) {
			purpose = rule.purpose
			break
		}
	}

	start := e.startDate(lower)

	// Duration: "<n> day|night", default 3 nights.
	nights := defaultNights
	if m := durationPattern.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n >= 1 {
			nights = n
		}
	}
	end := start.AddDate(0, 0, nights)

	trip := &model.TripRequest{
		ID:             "trip_" + uuid.NewString(),
		UserID:         userID,
		Destination:    destination,
		StartDate:      start,
		EndDate:        end,
		BudgetBand:     band,
		TravelersCount: travelers,
		Purpose:        purpose,
		Preferences:    extractPreferences(lower),
		Status:         model.StatusDraft,
	}

	log.Printf("[intent] Extracted trip: dest=%s band=%s nights=%d travelers=%d purpose=%q",
		trip.Destination, trip.BudgetBand, nights, trip.TravelersCount, trip.Purpose)

	return trip, nil
}

// startDate resolves the trip start from relative date cues:
//
//	"next month" → the 15th of the next calendar month
//	"next week"  → today + 7 days
//	otherwise    → today + 14 days (default horizon)
func (e *IntentExtractor) startDate(lower string) time.Time {
	now := e.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch {
	case strings.Contains(lower, "next month"):
		// time.Date normalizes month 13 into January of the next year.
		return time.Date(today.Year(), today.Month()+1, 15, 0, 0, 0, 0, today.Location())
	case strings.Contains(lower, "next week"):
		return today.AddDate(0, 0, 7)
	default:
		return today.AddDate(0, 0, 14)
	}
}

// extractPreferences returns nil unless at least one cue fired, so the
// preferences field is omitted entirely for cue-less messages.
func extractPreferences(lower string) *model.TripPreferences {
	var prefs model.TripPreferences
	matched := false
	if containsAny(lower, safetyCues) {
		prefs.SafetyPriority = true
		matched = true
	}
	if containsAny(lower, accessibilityCues) {
		prefs.AccessibilityNeeds = []string{"wheelchair"}
		matched = true
	}
	if !matched {
		return nil
	}
	return &prefs
}

// containsAny reports whether s contains any of the given substrings.
func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
