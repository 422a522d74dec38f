// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// SpeciesHandler handles species listing requests.
type SpeciesHandler struct {
	deps Dependencies
}

// NewSpeciesHandler creates a new species handler.
func NewSpeciesHandler(deps Dependencies) *SpeciesHandler {
	return &SpeciesHandler{deps: deps}
}

// HandleGetSpecies handles GET /api/species requests.
func (h *SpeciesHandler) HandleGetSpecies(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.SpeciesNames(r.Context()))
}
