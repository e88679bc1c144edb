package api

import (
	"net/http"
)

// SnapshotsHandler exposes a bounded view over the snapshot log.
type SnapshotsHandler struct {
	deps     Dependencies
	maxLimit int
}

// NewSnapshotsHandler creates a new snapshots handler.
func NewSnapshotsHandler(deps Dependencies, maxLimit int) *SnapshotsHandler {
	return &SnapshotsHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleGetSnapshots handles GET /snapshots?limit=N requests. Entries
// come back in processing order from the start of the log.
func (h *SnapshotsHandler) HandleGetSnapshots(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	n, err := parseLimit(r.URL.Query().Get("limit"), h.maxLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	writeJSON(w, http.StatusOK, h.deps.Snapshots(r.Context(), n))
}
