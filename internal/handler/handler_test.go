package handler

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samarthbanodia/yatrafy/internal/inventory"
	"github.com/samarthbanodia/yatrafy/internal/model"
	"github.com/samarthbanodia/yatrafy/internal/repository"
	"github.com/samarthbanodia/yatrafy/internal/service"
)

// newTestRouter wires the full API over the in-memory store and the
// real catalog, mirroring the production route table.
func newTestRouter() *mux.Router {
	mem := repository.NewMemoryStore()
	catalog := inventory.New(time.Now())

	extractor := service.NewIntentExtractor(catalog.KnownDestinations())
	generator := service.NewOptionGenerator(catalog, rand.New(rand.NewSource(1)))
	planner := service.NewPlannerService(extractor, generator, mem, mem, mem, service.DefaultTopOptions)
	booking := service.NewBookingService(mem, mem, mem, rand.New(rand.NewSource(1)))
	notifier := service.NewNotifier(mem, mem)
	analytics := service.NewAnalyticsService(mem, mem)

	chatHandler := NewChatHandler(planner)
	bookingHandler := NewBookingHandler(booking)
	eventHandler := NewEventHandler(notifier)
	analyticsHandler := NewAnalyticsHandler(analytics)
	tripHandler := NewTripHandler(mem)

	router := mux.NewRouter()
	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/chat/plan-trip", chatHandler.PlanTrip).Methods(http.MethodPost)
	api.HandleFunc("/chat/book", bookingHandler.Book).Methods(http.MethodPost)
	api.HandleFunc("/chat/simulate-event", eventHandler.SimulateEvent).Methods(http.MethodPost)
	api.HandleFunc("/chat/history/{user_id}", chatHandler.History).Methods(http.MethodGet)
	api.HandleFunc("/trips/{id}", tripHandler.GetTrip).Methods(http.MethodGet)
	api.HandleFunc("/analytics/summary", analyticsHandler.Summary).Methods(http.MethodGet)
	return router
}

func doJSON(t *testing.T, router *mux.Router, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeInto(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(out))
}

type planResponse struct {
	Trip    *model.TripRequest `json:"trip"`
	Options []model.TripOption `json:"options"`
	Reply   string             `json:"reply"`
}

func TestAPI_PlanBookAndSummarize(t *testing.T) {
	router := newTestRouter()

	// Plan.
	rec := doJSON(t, router, http.MethodPost, "/api/v1/chat/plan-trip", map[string]string{
		"message": "Plan a 3-day trip to Goa next month, mid-range budget",
		"user_id": "demo_user",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var plan planResponse
	decodeInto(t, rec, &plan)
	require.NotNil(t, plan.Trip)
	assert.Equal(t, "Goa", plan.Trip.Destination)
	assert.Equal(t, model.BandMidRange, plan.Trip.BudgetBand)
	assert.Equal(t, 15, plan.Trip.StartDate.Day())
	assert.Equal(t, 3, plan.Trip.Nights())
	require.NotEmpty(t, plan.Options)
	require.LessOrEqual(t, len(plan.Options), 3)
	for _, opt := range plan.Options {
		assert.Contains(t, opt.Hotel.Location, "Goa")
		assert.GreaterOrEqual(t, opt.Hotel.PricePerNight, 3000)
		assert.LessOrEqual(t, opt.Hotel.PricePerNight, 6000)
	}

	// Book the top option.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/chat/book", map[string]string{
		"trip_id":   plan.Trip.ID,
		"option_id": plan.Options[0].ID,
		"user_id":   "demo_user",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var booked struct {
		Trip         *model.TripRequest `json:"trip"`
		Confirmation string             `json:"confirmation"`
		Nudge        string             `json:"nudge"`
	}
	decodeInto(t, rec, &booked)
	assert.Equal(t, model.StatusBooked, booked.Trip.Status)
	assert.Contains(t, booked.Confirmation, "Booking Confirmed")
	assert.NotEmpty(t, booked.Nudge)

	// Booking again conflicts.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/chat/book", map[string]string{
		"trip_id":   plan.Trip.ID,
		"option_id": plan.Options[0].ID,
		"user_id":   "demo_user",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Stored trip reflects the booking.
	rec = doJSON(t, router, http.MethodGet, "/api/v1/trips/"+plan.Trip.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var stored model.TripRequest
	decodeInto(t, rec, &stored)
	assert.Equal(t, model.StatusBooked, stored.Status)
	assert.Equal(t, plan.Options[0].ID, stored.SelectedOptionID)

	// Simulate the day-before reminder.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/chat/simulate-event", map[string]string{
		"trip_id":    plan.Trip.ID,
		"event_type": "T_MINUS_1",
		"user_id":    "demo_user",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var note map[string]string
	decodeInto(t, rec, &note)
	assert.Contains(t, note["message"], "tomorrow")

	// Transcript: plan turn, assistant options, confirmation, reminder.
	rec = doJSON(t, router, http.MethodGet, "/api/v1/chat/history/demo_user", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var history struct {
		Messages []model.ChatMessage `json:"messages"`
	}
	decodeInto(t, rec, &history)
	assert.Len(t, history.Messages, 4)

	// Analytics: one trip, one booking, full conversion.
	rec = doJSON(t, router, http.MethodGet, "/api/v1/analytics/summary", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var summary model.AnalyticsSummary
	decodeInto(t, rec, &summary)
	assert.Equal(t, 1, summary.TotalSessions)
	assert.Equal(t, 1, summary.TotalTrips)
	assert.Equal(t, 1, summary.TotalBookings)
	assert.Equal(t, 100.0, summary.BookingConversionRate)
}

func TestAPI_PlanTrip_UnknownDestination(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/chat/plan-trip", map[string]string{
		"message": "somewhere quiet please",
		"user_id": "demo_user",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var plan planResponse
	decodeInto(t, rec, &plan)
	assert.Nil(t, plan.Trip)
	assert.Empty(t, plan.Options)
	assert.Contains(t, plan.Reply, "destination")
}

func TestAPI_PlanTrip_Validation(t *testing.T) {
	router := newTestRouter()

	tests := []struct {
		name string
		body interface{}
	}{
		{"missing message", map[string]string{"user_id": "u1"}},
		{"missing user_id", map[string]string{"message": "trip to Goa"}},
		{"empty body", map[string]string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/api/v1/chat/plan-trip", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}

	// Malformed JSON.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/plan-trip", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPI_Book_NotFound(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/chat/book", map[string]string{
		"trip_id":   "trip_missing",
		"option_id": "opt_1",
		"user_id":   "u1",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPI_Book_UnknownOption(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/chat/plan-trip", map[string]string{
		"message": "trip to Goa",
		"user_id": "u1",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var plan planResponse
	decodeInto(t, rec, &plan)
	require.NotNil(t, plan.Trip)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/chat/book", map[string]string{
		"trip_id":   plan.Trip.ID,
		"option_id": "opt_99",
		"user_id":   "u1",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPI_SimulateEvent_BadType(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/chat/simulate-event", map[string]string{
		"trip_id":    "trip_1",
		"event_type": "EARTHQUAKE",
		"user_id":    "u1",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPI_SimulateEvent_TripNotFound(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/chat/simulate-event", map[string]string{
		"trip_id":    "trip_missing",
		"event_type": "FLIGHT_DELAY",
		"user_id":    "u1",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPI_GetTrip_NotFound(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodGet, "/api/v1/trips/trip_missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body map[string]string
	decodeInto(t, rec, &body)
	assert.Equal(t, "trip_not_found", body["error"])
}

func TestAPI_History_EmptyForNewUser(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodGet, "/api/v1/chat/history/ghost", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var history struct {
		Messages []model.ChatMessage `json:"messages"`
	}
	decodeInto(t, rec, &history)
	assert.Empty(t, history.Messages)
}
