package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/nicolasgoossens1/tennis-predictor/internal/adapters/repository"
	"github.com/nicolasgoossens1/tennis-predictor/internal/domain/model"
)

// PlayersHandler handles per-player rating queries.
type PlayersHandler struct {
	deps Dependencies
}

// NewPlayersHandler creates a new players handler.
func NewPlayersHandler(deps Dependencies) *PlayersHandler {
	return &PlayersHandler{deps: deps}
}

// playerResponse flattens the rating state for the wire.
type playerResponse struct {
	PlayerID      string             `json:"player_id"`
	Overall       float64            `json:"overall"`
	Surfaces      map[string]float64 `json:"surfaces"`
	MatchesPlayed int                `json:"matches_played"`
}

// HandleGetPlayer handles GET /players/{id} requests.
func (h *PlayersHandler) HandleGetPlayer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	playerID := strings.TrimPrefix(r.URL.Path, "/players/")
	if playerID == "" || strings.Contains(playerID, "/") {
		writeError(w, http.StatusBadRequest, "bad_request",
			fmt.Errorf("%w: missing player id", ErrBadRequest))
		return
	}

	p, err := h.deps.Player(r.Context(), playerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}

	writeJSON(w, http.StatusOK, toPlayerResponse(p))
}

func toPlayerResponse(p model.PlayerRating) playerResponse {
	surfaces := make(map[string]float64, len(p.Surface))
	for s, r := range p.Surface {
		surfaces[string(s)] = r
	}
	return playerResponse{
		PlayerID:      p.PlayerID,
		Overall:       p.Overall,
		Surfaces:      surfaces,
		MatchesPlayed: p.MatchesPlayed,
	}
}
