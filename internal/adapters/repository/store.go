// Package repository defines the rating store interface and errors.
package repository

import (
	"context"

	"github.com/nicolasgoossens1/tennis-predictor/internal/domain/model"
	"github.com/nicolasgoossens1/tennis-predictor/internal/domain/types"
)

// Store provides read/write access to per-player rating state.
//
// A player is materialized lazily with default ratings on first access,
// read or write. During a batch pass the engine is the single writer;
// the read projections are safe for concurrent use once the pass is done.
type Store interface {
	// Get returns the current rating for one dimension. An unseen player
	// is created with the initial rating for all dimensions; MatchesPlayed
	// stays untouched.
	Get(ctx context.Context, playerID string, dim model.Dimension) (float64, error)

	// ApplyDelta adds delta to the named dimension's rating.
	ApplyDelta(ctx context.Context, playerID string, dim model.Dimension, delta float64) error

	// IncrementMatches bumps the matches-played counter.
	IncrementMatches(ctx context.Context, playerID string) error

	// Count returns the number of players tracked.
	Count(ctx context.Context) int

	// Ratings returns a copy of every player's rating state, ordered by
	// player id for deterministic output.
	Ratings(ctx context.Context) []model.PlayerRating

	// Player returns one player's rating state.
	// Returns ErrNotFound if the player is unknown.
	Player(ctx context.Context, playerID string) (model.PlayerRating, error)

	// Rankings returns up to n players ordered by overall rating desc,
	// ties broken by player id asc, with tie-aware rank numbers.
	Rankings(ctx context.Context, n int) ([]types.Entry, error)

	// Specialists returns players whose surface rating exceeds their
	// overall rating, among those with at least minMatches played,
	// ordered by advantage desc.
	Specialists(ctx context.Context, surface model.Surface, minMatches int) ([]types.Specialist, error)
}
