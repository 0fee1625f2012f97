package handlers

import (
	"net/http"
	"strconv"

	"github.com/barkwell/frontdesk/internal/clients"
	"github.com/barkwell/frontdesk/pkg/logging"
)

// RosterHandler serves client/pet search from the local roster cache.
type RosterHandler struct {
	roster *clients.Roster
	logger *logging.Logger
}

// NewRosterHandler creates the roster handler.
func NewRosterHandler(roster *clients.Roster, logger *logging.Logger) *RosterHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &RosterHandler{roster: roster, logger: logger}
}

// Search handles GET /api/clients/search?q=...&limit=...
func (h *RosterHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "q is required")
		return
	}
	limit := 25
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	records, err := h.roster.Search(r.Context(), query, limit)
	if err != nil {
		h.logger.Error("roster search failed", "error", err)
		writeError(w, http.StatusInternalServerError, "roster search failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"clients": records})
}

// Refresh handles POST /api/roster/refresh.
func (h *RosterHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	n, err := h.roster.Refresh(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"clients": n})
}
