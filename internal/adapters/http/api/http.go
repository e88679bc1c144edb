// Package api declares HTTP contracts and route registration helpers for
// the read-only reporting surface. Handlers only project final engine
// state; nothing here mutates the store or the snapshot log.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/nicolasgoossens1/tennis-predictor/internal/domain/model"
	"github.com/nicolasgoossens1/tennis-predictor/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Rankings returns the top n players by overall rating.
	Rankings(ctx context.Context, n int) ([]types.Entry, error)

	// Specialists returns the surface-specialist report; minMatches < 0
	// selects the configured default threshold.
	Specialists(ctx context.Context, surface string, minMatches int) ([]types.Specialist, error)

	// Player returns one player's rating state.
	Player(ctx context.Context, playerID string) (model.PlayerRating, error)

	// Snapshots returns up to limit entries from the snapshot log.
	Snapshots(ctx context.Context, limit int) []model.Snapshot
}

// StatsProvider exposes service statistics for monitoring.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// Server wires HTTP routes for the reporting API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	rankingsHandler    *RankingsHandler
	specialistsHandler *SpecialistsHandler
	playersHandler     *PlayersHandler
	snapshotsHandler   *SnapshotsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit int) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		rankingsHandler:    NewRankingsHandler(deps, maxLimit),
		specialistsHandler: NewSpecialistsHandler(deps),
		playersHandler:     NewPlayersHandler(deps),
		snapshotsHandler:   NewSnapshotsHandler(deps, maxLimit),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/rankings", MetricsMiddleware(s.rankingsHandler.HandleGetRankings, "rankings"))
	mux.HandleFunc("/specialists", MetricsMiddleware(s.specialistsHandler.HandleGetSpecialists, "specialists"))
	mux.HandleFunc("/players/", MetricsMiddleware(s.playersHandler.HandleGetPlayer, "players"))
	mux.HandleFunc("/snapshots", MetricsMiddleware(s.snapshotsHandler.HandleGetSnapshots, "snapshots"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
