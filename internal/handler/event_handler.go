package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/samarthbanodia/yatrafy/internal/model"
	"github.com/samarthbanodia/yatrafy/internal/service"
)

// SimulateEventBody is the JSON body for POST /api/v1/chat/simulate-event.
type SimulateEventBody struct {
	TripID    string `json:"trip_id"`
	EventType string `json:"event_type"`
	UserID    string `json:"user_id"`
}

// EventHandler handles simulated post-booking trip events.
type EventHandler struct {
	notifier *service.Notifier
}

// NewEventHandler creates a new event handler.
func NewEventHandler(notifier *service.Notifier) *EventHandler {
	return &EventHandler{notifier: notifier}
}

// SimulateEvent handles POST /api/v1/chat/simulate-event
//
// Produces the notification string for a T_MINUS_1 or FLIGHT_DELAY
// event. Trip status is never changed by this endpoint.
//
// Response codes:
//
//	200 — notification produced
//	400 — missing fields or unknown event_type
//	404 — trip not found
func (h *EventHandler) SimulateEvent(w http.ResponseWriter, r *http.Request) {
	var body SimulateEventBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	if body.TripID == "" || body.EventType == "" || body.UserID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "trip_id, event_type, and user_id are required",
		})
		return
	}

	event := model.SimulatedEvent(body.EventType)
	if event != model.EventTMinus1 && event != model.EventFlightDelay {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "event_type must be 'T_MINUS_1' or 'FLIGHT_DELAY'",
		})
		return
	}

	message, err := h.notifier.SimulateEvent(r.Context(), body.TripID, event, body.UserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTripNotFound):
			writeJSON(w, http.StatusNotFound, map[string]string{
				"error":   "trip_not_found",
				"message": "Trip not found.",
			})
		default:
			log.Printf("[handler] simulate-event error: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal_error"})
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": message})
}
