package service

import (
	"context"
	"fmt"
	"math"

	"github.com/samarthbanodia/yatrafy/internal/model"
)

// AnalyticsService aggregates the event log into the dashboard summary.
//
// escalated_to_human events are counted here but never produced by this
// core — an external agent console appends them through the same log.
type AnalyticsService struct {
	events   EventLog
	sessions SessionStore
}

// NewAnalyticsService creates an analytics service.
func NewAnalyticsService(events EventLog, sessions SessionStore) *AnalyticsService {
	return &AnalyticsService{events: events, sessions: sessions}
}

// Summary computes the session/trip/booking counters.
//
// bookingConversionRate = round(bookings/trips × 100, 1 decimal),
// and 0 when no trips exist yet.
func (s *AnalyticsService) Summary(ctx context.Context) (*model.AnalyticsSummary, error) {
	counts, err := s.events.Counts(ctx)
	if err != nil {
		return nil, fmt.Errorf("analytics: event counts: %w", err)
	}
	sessions, err := s.sessions.SessionCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("analytics: session count: %w", err)
	}

	summary := &model.AnalyticsSummary{
		TotalSessions:   sessions,
		TotalTrips:      counts[model.EventTripCreated],
		TotalBookings:   counts[model.EventOptionBooked],
		EscalationCount: counts[model.EventEscalatedToHuman],
	}
	if summary.TotalTrips > 0 {
		rate := float64(summary.TotalBookings) / float64(summary.TotalTrips) * 100
		summary.BookingConversionRate = math.Round(rate*10) / 10
	}
	return summary, nil
}
