package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/nicolasgoossens1/tennis-predictor/internal/adapters/repository"
)

// RankingsHandler handles ranking requests.
type RankingsHandler struct {
	deps     Dependencies
	maxLimit int
}

// NewRankingsHandler creates a new rankings handler.
func NewRankingsHandler(deps Dependencies, maxLimit int) *RankingsHandler {
	return &RankingsHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleGetRankings handles GET /rankings?limit=N requests.
func (h *RankingsHandler) HandleGetRankings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	n, err := parseLimit(r.URL.Query().Get("limit"), h.maxLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	entries, err := h.deps.Rankings(r.Context(), n)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidLimit) {
			writeError(w, http.StatusBadRequest, "bad_request", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// parseLimit parses a limit query value, defaulting to maxLimit when
// absent and rejecting out-of-range values.
func parseLimit(raw string, maxLimit int) (int, error) {
	if raw == "" {
		return maxLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: limit must be a positive integer", ErrBadRequest)
	}
	if n > maxLimit {
		return 0, fmt.Errorf("%w: limit exceeds maximum %d", ErrBadRequest, maxLimit)
	}
	return n, nil
}
