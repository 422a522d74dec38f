// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/okian/broodsheet/internal/app"
)

// Request body and response cache limits.
const (
	maxBodyBytes       = 1 << 20 // 1 MiB
	cacheControlHeader = "public, max-age=86400"
)

// InfographicHandler handles infographic render requests.
type InfographicHandler struct {
	deps Dependencies
}

// NewInfographicHandler creates a new infographic handler.
func NewInfographicHandler(deps Dependencies) *InfographicHandler {
	return &InfographicHandler{deps: deps}
}

// HandlePostInfographic handles POST /api/infographic requests. Validation
// failures are 400 with an error naming the offending field; degraded
// renders (missing sprite) are still 200.
func (h *InfographicHandler) HandlePostInfographic(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_infographic"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, WrapKind(op, ErrBadRequest, err))
		return
	}

	rendered, err := h.deps.Infographic(r.Context(), body)
	if err != nil {
		if errors.Is(err, app.ErrBadInput) {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeError(w, http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", rendered.ContentType)
	w.Header().Set("Cache-Control", cacheControlHeader)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(rendered.Body)
}
