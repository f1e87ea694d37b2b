package handler

import (
	"log"
	"net/http"

	"github.com/samarthbanodia/yatrafy/internal/service"
)

// AnalyticsHandler serves the dashboard summary.
type AnalyticsHandler struct {
	analytics *service.AnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(analytics *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// Summary handles GET /api/v1/analytics/summary
//
// Returns session/trip/booking counters and the booking conversion rate.
func (h *AnalyticsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.analytics.Summary(r.Context())
	if err != nil {
		log.Printf("[handler] analytics summary error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal_error"})
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
