package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/amarkules1/football-stats-tracker/internal/export"
	"github.com/amarkules1/football-stats-tracker/internal/nfl"
	"github.com/amarkules1/football-stats-tracker/internal/session"
)

// Handler contains dependencies for HTTP handlers
type Handler struct {
	orchestrator *session.Orchestrator
}

// NewHandler creates a new handler
func NewHandler(orchestrator *session.Orchestrator) *Handler {
	return &Handler{
		orchestrator: orchestrator,
	}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "football-stats-tracker",
	})
}

type submitRequest struct {
	Season string `json:"season"`
	Week   string `json:"week"`
	Team   string `json:"team,omitempty"`
}

// SubmitExtraction runs an extraction request to a terminal state and
// returns the resulting session snapshot. With a team set the extraction is
// direct; without one the snapshot comes back in selecting_game with the
// week's schedule.
func (h *Handler) SubmitExtraction(w http.ResponseWriter, r *http.Request) {
	var body submitRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	req := &nfl.ExtractionRequest{
		Season: strings.TrimSpace(body.Season),
		Week:   strings.TrimSpace(body.Week),
		Team:   strings.TrimSpace(body.Team),
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid extraction request", err)
		return
	}

	if err := h.orchestrator.Submit(r.Context(), req); err != nil {
		if errors.Is(err, session.ErrExtractionInFlight) {
			respondError(w, http.StatusConflict, "An extraction is already in flight", err)
			return
		}
		// Terminal extraction failures are part of the state; the snapshot
		// below carries the message.
	}

	respondJSON(w, http.StatusOK, h.orchestrator.Snapshot())
}

type selectRequest struct {
	Index *int   `json:"index,omitempty"`
	Team  string `json:"team,omitempty"`
}

// SelectGame resolves disambiguation by schedule index or team name
func (h *Handler) SelectGame(w http.ResponseWriter, r *http.Request) {
	var body selectRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	var err error
	switch {
	case body.Index != nil:
		err = h.orchestrator.SelectGame(r.Context(), *body.Index)
	case strings.TrimSpace(body.Team) != "":
		err = h.orchestrator.SelectGameByTeam(r.Context(), strings.TrimSpace(body.Team))
	default:
		respondError(w, http.StatusBadRequest, "Provide either index or team", nil)
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, session.ErrExtractionInFlight):
			respondError(w, http.StatusConflict, "An extraction is already in flight", err)
			return
		case errors.Is(err, session.ErrNoActiveSchedule):
			respondError(w, http.StatusBadRequest, "No schedule to select from", err)
			return
		}
		// Extraction failure lands in the snapshot as state=error.
	}

	respondJSON(w, http.StatusOK, h.orchestrator.Snapshot())
}

// GetState returns the current session snapshot
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.orchestrator.Snapshot())
}

// GetHistory returns this session's extractions, most recent first
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	history := h.orchestrator.History()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"history": history,
		"count":   len(history),
	})
}

// ExportCurrent downloads the currently displayed result as a JSON document
func (h *Handler) ExportCurrent(w http.ResponseWriter, r *http.Request) {
	game := h.orchestrator.Current()
	if game == nil {
		respondError(w, http.StatusNotFound, "No extraction result to export", nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", nfl.ExportFilename(game)))
	if err := export.Write(w, game); err != nil {
		// Headers are already out; nothing left but to log it.
		log.Printf("[rest] Export write failed: %v", err)
	}
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}
