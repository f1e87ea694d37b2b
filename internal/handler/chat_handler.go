package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/samarthbanodia/yatrafy/internal/service"
)

// ─── Request DTOs ───────────────────────────────────────────

// PlanTripBody is the JSON body for POST /api/v1/chat/plan-trip.
type PlanTripBody struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

// ─── ChatHandler ────────────────────────────────────────────

// ChatHandler handles the conversational endpoints: planning a trip
// from a message and reading back the transcript.
type ChatHandler struct {
	planner *service.PlannerService
}

// NewChatHandler creates a chat handler wired to the planner.
func NewChatHandler(planner *service.PlannerService) *ChatHandler {
	return &ChatHandler{planner: planner}
}

// PlanTrip handles POST /api/v1/chat/plan-trip
//
// Runs the extraction → generation → ranking pipeline for one message.
// An unrecognized destination is NOT an error: the response carries a
// null trip and a clarification reply.
//
// Response codes:
//
//	200 — pipeline ran (trip may be null on extraction failure)
//	400 — missing message or user_id
//	500 — storage failure
func (h *ChatHandler) PlanTrip(w http.ResponseWriter, r *http.Request) {
	var body PlanTripBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	if body.Message == "" || body.UserID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "message and user_id are required",
		})
		return
	}

	result, err := h.planner.PlanTrip(r.Context(), body.Message, body.UserID)
	if err != nil {
		log.Printf("[handler] plan-trip error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal_error"})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// History handles GET /api/v1/chat/history/{user_id}
//
// Returns the user's full chat transcript (empty list for unknown users).
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]
	if userID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "user_id is required"})
		return
	}

	messages, err := h.planner.History(r.Context(), userID)
	if err != nil {
		log.Printf("[handler] history error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal_error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"messages": messages})
}
