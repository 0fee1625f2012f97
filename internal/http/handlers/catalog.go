package handlers

import (
	"net/http"

	"github.com/barkwell/frontdesk/internal/catalog"
	"github.com/barkwell/frontdesk/pkg/logging"
)

// CatalogHandler serves the merged service catalog to the front-desk UI.
type CatalogHandler struct {
	cache  *catalog.Cache
	logger *logging.Logger
}

// NewCatalogHandler creates the catalog handler.
func NewCatalogHandler(cache *catalog.Cache, logger *logging.Logger) *CatalogHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &CatalogHandler{cache: cache, logger: logger}
}

// ListServices handles GET /api/services.
func (h *CatalogHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	if err := h.cache.Refresh(r.Context(), false); err != nil {
		h.logger.Warn("catalog refresh failed serving service list", "error", err)
	}
	writeJSON(w, http.StatusOK, map[string]any{"services": h.cache.Variations()})
}

// Refresh handles POST /api/catalog/refresh.
func (h *CatalogHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.cache.Refresh(r.Context(), true); err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"services": h.cache.Len()})
}
