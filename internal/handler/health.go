package handler

import (
	"net/http"

	"github.com/onetrip/travel-planner/internal/events"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	eventsClient *events.Client
	llmEnabled   bool
}

// NewHealthHandler creates a new health handler. eventsClient may be nil.
func NewHealthHandler(eventsClient *events.Client, llmEnabled bool) *HealthHandler {
	return &HealthHandler{
		eventsClient: eventsClient,
		llmEnabled:   llmEnabled,
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// Ready handles GET /ready
//
// The pipeline is functional without the LLM or the event stream (both
// degrade gracefully), so readiness reports their state without failing.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	eventsStatus := "disabled"
	if h.eventsClient != nil {
		if h.eventsClient.IsConnected() {
			eventsStatus = "connected"
		} else {
			eventsStatus = "disconnected"
		}
	}

	llmStatus := "disabled"
	if h.llmEnabled {
		llmStatus = "configured"
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
		"llm":    llmStatus,
		"events": eventsStatus,
	})
}
