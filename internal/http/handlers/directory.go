package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/barkwell/frontdesk/internal/history"
	"github.com/barkwell/frontdesk/pkg/logging"
)

// DirectoryClient lists locations and staff from the vendor; responses are
// forwarded as-is, the proxy adds nothing here.
type DirectoryClient interface {
	ListLocations(ctx context.Context) (json.RawMessage, error)
	ListTeamMembers(ctx context.Context) (json.RawMessage, error)
}

// DirectoryHandler serves vendor passthroughs and the local booking history.
type DirectoryHandler struct {
	client  DirectoryClient
	history *history.Repository
	logger  *logging.Logger
}

// NewDirectoryHandler creates the directory handler. history may be nil.
func NewDirectoryHandler(client DirectoryClient, repo *history.Repository, logger *logging.Logger) *DirectoryHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &DirectoryHandler{client: client, history: repo, logger: logger}
}

// Locations handles GET /api/locations.
func (h *DirectoryHandler) Locations(w http.ResponseWriter, r *http.Request) {
	h.passthrough(w, r, "locations", h.client.ListLocations)
}

// TeamMembers handles GET /api/team-members.
func (h *DirectoryHandler) TeamMembers(w http.ResponseWriter, r *http.Request) {
	h.passthrough(w, r, "team members", h.client.ListTeamMembers)
}

func (h *DirectoryHandler) passthrough(w http.ResponseWriter, r *http.Request, what string, fetch func(context.Context) (json.RawMessage, error)) {
	raw, err := fetch(r.Context())
	if err != nil {
		h.logger.Error("vendor passthrough failed", "what", what, "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

// History handles GET /api/bookings/recent.
func (h *DirectoryHandler) History(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		writeError(w, http.StatusNotFound, "booking history not configured")
		return
	}
	entries, err := h.history.ListRecent(r.Context(), 50)
	if err != nil {
		h.logger.Error("listing booking history failed", "error", err)
		writeError(w, http.StatusInternalServerError, "listing booking history failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"bookings": entries})
}
