package handler

import (
	"net/http"

	"ayitichat/internal/catalog"
	"ayitichat/internal/httputil"
)

// ModelsHandler serves the static model catalog.
type ModelsHandler struct {
	registry *catalog.Registry
}

// NewModelsHandler creates a new ModelsHandler
func NewModelsHandler(registry *catalog.Registry) *ModelsHandler {
	return &ModelsHandler{registry: registry}
}

// List handles GET /api/models (public)
func (h *ModelsHandler) List(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"models": h.registry.Models()})
}
