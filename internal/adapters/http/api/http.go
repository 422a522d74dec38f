// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/broodsheet/internal/domain/model"
	"github.com/okian/broodsheet/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Infographic runs the orchestration pipeline over a raw request body.
	Infographic(ctx context.Context, body []byte) (*model.Rendered, error)

	// SpeciesNames lists every known species name.
	SpeciesNames(ctx context.Context) []string
}

// Server wires HTTP routes for the business API.
type Server struct {
	infographicHandler *InfographicHandler
	speciesHandler     *SpeciesHandler
	healthHandler      *HealthHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		infographicHandler: NewInfographicHandler(deps),
		speciesHandler:     NewSpeciesHandler(deps),
		healthHandler:      NewHealthHandler(),
	}
}

// Register attaches all HTTP routes to mux. Unregistered paths 404.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/api/infographic", MetricsMiddleware(s.infographicHandler.HandlePostInfographic, "infographic"))
	mux.HandleFunc("/api/species", MetricsMiddleware(s.speciesHandler.HandleGetSpecies, "species"))
	mux.HandleFunc("/api/health", MetricsMiddleware(s.healthHandler.HandleHealth, "health"))
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
}

// errorResponse is the JSON error shape for every non-2xx API response.
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Error: msg})
}
