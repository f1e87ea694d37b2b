package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/samarthbanodia/yatrafy/internal/service"
)

// BookBody is the JSON body for POST /api/v1/chat/book.
type BookBody struct {
	TripID   string `json:"trip_id"`
	OptionID string `json:"option_id"`
	UserID   string `json:"user_id"`
}

// BookingHandler handles booking HTTP requests.
type BookingHandler struct {
	bookingSvc *service.BookingService
}

// NewBookingHandler creates a new booking handler.
func NewBookingHandler(bookingSvc *service.BookingService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc}
}

// Book handles POST /api/v1/chat/book
//
// Books one of the trip's shown options and returns the itinerary with
// a confirmation message.
//
// Response codes:
//
//	200 — booked (returns trip, itinerary, confirmation, nudge)
//	400 — missing trip_id, option_id, or user_id
//	404 — trip or option id unknown
//	409 — trip already booked, or has no options yet
//	500 — unexpected error
func (h *BookingHandler) Book(w http.ResponseWriter, r *http.Request) {
	var body BookBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	if body.TripID == "" || body.OptionID == "" || body.UserID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "trip_id, option_id, and user_id are required",
		})
		return
	}

	result, err := h.bookingSvc.Book(r.Context(), body.TripID, body.OptionID, body.UserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTripNotFound):
			writeJSON(w, http.StatusNotFound, map[string]string{
				"error":   "trip_not_found",
				"message": "Trip not found.",
			})
		case errors.Is(err, service.ErrOptionNotFound):
			writeJSON(w, http.StatusNotFound, map[string]string{
				"error":   "option_not_found",
				"message": "That option does not belong to this trip.",
			})
		case errors.Is(err, service.ErrAlreadyBooked):
			writeJSON(w, http.StatusConflict, map[string]string{
				"error":   "already_booked",
				"message": "This trip is already booked.",
			})
		case errors.Is(err, service.ErrNoOptions):
			writeJSON(w, http.StatusConflict, map[string]string{
				"error":   "no_options",
				"message": "This trip has no options to book yet.",
			})
		default:
			log.Printf("[handler] booking error: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal_error"})
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}
