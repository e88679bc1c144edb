// Package model contains domain models passed between layers.
package model

import "time"

// Surface is the court type a match was played on.
type Surface string

// Recognized surfaces. Any other value reaching the engine is a
// configuration error, never silently coerced.
const (
	Hard   Surface = "Hard"
	Clay   Surface = "Clay"
	Grass  Surface = "Grass"
	Carpet Surface = "Carpet"
)

// Surfaces returns the default recognized surface set in a stable order.
func Surfaces() []Surface {
	return []Surface{Hard, Clay, Grass, Carpet}
}

// Dimension names a rating axis: the overall rating or one surface.
type Dimension string

// Overall is the surface-independent rating dimension.
const Overall Dimension = "overall"

// Dim converts a surface to its rating dimension.
func (s Surface) Dim() Dimension { return Dimension(s) }

// Match is one resolved match record as supplied by the feed.
// Player identifiers are stable opaque strings assigned upstream.
type Match struct {
	Date      time.Time
	Surface   Surface
	Player1ID string
	Player2ID string
	WinnerID  string
}

// PlayerRating is the current rating state for one competitor.
// All five dimensions exist from the moment the player is first
// referenced; ratings change only through the engine's update rule.
type PlayerRating struct {
	PlayerID      string
	Overall       float64
	Surface       map[Surface]float64
	MatchesPlayed int
}

// Snapshot records the pre-update rating state for one valid match.
// It is appended to the snapshot log in processing order and never
// mutated afterward, so derived features cannot leak the outcome.
type Snapshot struct {
	MatchIndex       int       `json:"match_idx"`
	Date             time.Time `json:"date"`
	Surface          Surface   `json:"surface"`
	WinnerID         string    `json:"winner_id"`
	LoserID          string    `json:"loser_id"`
	WinnerEloOverall float64   `json:"winner_elo_overall"`
	LoserEloOverall  float64   `json:"loser_elo_overall"`
	WinnerEloSurface float64   `json:"winner_elo_surface"`
	LoserEloSurface  float64   `json:"loser_elo_surface"`
}
