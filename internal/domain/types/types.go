// Package types contains common read-model types used across the application
package types

// Entry represents one row of the overall rankings.
type Entry struct {
	Rank          int     `json:"rank"`
	PlayerID      string  `json:"player_id"`
	Overall       float64 `json:"overall"`
	MatchesPlayed int     `json:"matches_played"`
}

// Specialist represents a player whose surface rating exceeds their
// overall rating by the reported advantage.
type Specialist struct {
	PlayerID      string  `json:"player_id"`
	Surface       string  `json:"surface"`
	SurfaceRating float64 `json:"surface_rating"`
	Overall       float64 `json:"overall"`
	Advantage     float64 `json:"advantage"`
	MatchesPlayed int     `json:"matches_played"`
}
