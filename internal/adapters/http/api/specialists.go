package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/nicolasgoossens1/tennis-predictor/internal/adapters/repository"
)

// SpecialistsHandler handles surface-specialist report requests.
type SpecialistsHandler struct {
	deps Dependencies
}

// NewSpecialistsHandler creates a new specialists handler.
func NewSpecialistsHandler(deps Dependencies) *SpecialistsHandler {
	return &SpecialistsHandler{deps: deps}
}

// HandleGetSpecialists handles GET /specialists?surface=Clay&min_matches=20.
// min_matches is optional; the service default applies when absent.
func (h *SpecialistsHandler) HandleGetSpecialists(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	surface := r.URL.Query().Get("surface")
	if surface == "" {
		writeError(w, http.StatusBadRequest, "bad_request",
			fmt.Errorf("%w: missing surface", ErrBadRequest))
		return
	}

	minMatches := -1
	if raw := r.URL.Query().Get("min_matches"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "bad_request",
				fmt.Errorf("%w: min_matches must be a non-negative integer", ErrBadRequest))
			return
		}
		minMatches = n
	}

	specialists, err := h.deps.Specialists(r.Context(), surface, minMatches)
	if err != nil {
		if errors.Is(err, repository.ErrUnknownDimension) {
			writeError(w, http.StatusBadRequest, "unknown_surface", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, specialists)
}
