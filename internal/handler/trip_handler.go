package handler

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/samarthbanodia/yatrafy/internal/service"
)

// TripHandler serves stored trip requests.
type TripHandler struct {
	trips service.TripStore
}

// NewTripHandler creates a new trip handler.
func NewTripHandler(trips service.TripStore) *TripHandler {
	return &TripHandler{trips: trips}
}

// GetTrip handles GET /api/v1/trips/{id}
//
// Returns the stored trip with its candidate options and status.
func (h *TripHandler) GetTrip(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	trip, ok, err := h.trips.Get(r.Context(), id)
	if err != nil {
		log.Printf("[handler] get trip error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal_error"})
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error":   "trip_not_found",
			"message": "Trip not found.",
		})
		return
	}

	writeJSON(w, http.StatusOK, trip)
}
