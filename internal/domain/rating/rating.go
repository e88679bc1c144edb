// Package rating implements the sequential Elo engine that transforms an
// ordered batch of matches into final store state plus a snapshot log.
package rating

import (
	"context"
	"fmt"
	"math"

	"github.com/nicolasgoossens1/tennis-predictor/internal/domain/model"
)

// Default engine configuration constants.
const (
	DefaultInitialRating = 1500.0
	DefaultKFactor       = 32.0
)

// Expected returns the expected score of a player rated ra against an
// opponent rated rb. Symmetric: Expected(a,b) + Expected(b,a) == 1.
func Expected(ra, rb float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, (rb-ra)/400.0))
}

// Store abstracts the rating state the engine reads and mutates.
type Store interface {
	// Get returns the current rating for one dimension, materializing the
	// player with defaults on first access.
	Get(ctx context.Context, playerID string, dim model.Dimension) (float64, error)

	// ApplyDelta adds delta to the named dimension's rating.
	ApplyDelta(ctx context.Context, playerID string, dim model.Dimension, delta float64) error

	// IncrementMatches bumps the player's matches-played counter.
	IncrementMatches(ctx context.Context, playerID string) error
}

// Log receives one pre-update snapshot per valid match, in processing order.
type Log interface {
	Append(ctx context.Context, s model.Snapshot)
}

// ProgressFunc observes batch progress. It is a pure side-channel: it is
// called between matches and cannot influence state or results.
type ProgressFunc func(processed, total int)

// Summary reports the outcome of one batch pass.
type Summary struct {
	// Processed counts valid matches applied to the store.
	Processed int
	// Skipped counts records dropped for data-quality reasons
	// (winner id matching neither listed player).
	Skipped int
}

// Engine applies the Elo update rule match by match.
//
// The caller must present matches sorted by date ascending; same-date
// ties keep presentation order. The pass is strictly sequential: each
// update reads then writes shared per-player state, so match i completes
// before match i+1 is evaluated.
type Engine struct {
	store    Store
	log      Log
	kFactor  float64
	surfaces map[model.Surface]struct{}

	progress      ProgressFunc
	progressEvery int
}

// New constructs an Engine over the given store and snapshot log.
func New(store Store, log Log, opts ...Option) *Engine {
	e := &Engine{
		store:         store,
		log:           log,
		kFactor:       DefaultKFactor,
		surfaces:      make(map[model.Surface]struct{}),
		progressEvery: 5000,
	}
	for _, s := range model.Surfaces() {
		e.surfaces[s] = struct{}{}
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Process runs one deterministic batch pass. Identical input order and
// configuration always yield identical final ratings and an identical
// snapshot log.
//
// A record whose winner matches neither listed player is skipped and
// counted; an unrecognized surface is fatal, since crediting it anywhere
// would corrupt surface statistics. Cancellation is honored between
// matches: a cancelled pass leaves consistent state for every match
// already applied.
func (e *Engine) Process(ctx context.Context, matches []model.Match) (Summary, error) {
	var sum Summary

	for i := range matches {
		select {
		case <-ctx.Done():
			return sum, ctx.Err()
		default:
		}

		m := matches[i]

		loserID, ok := resolveLoser(m)
		if !ok {
			sum.Skipped++
			continue
		}

		if _, known := e.surfaces[m.Surface]; !known {
			return sum, fmt.Errorf("match %d: surface %q: %w", i, m.Surface, ErrUnknownSurface)
		}

		if err := e.apply(ctx, m, loserID, sum.Processed); err != nil {
			return sum, err
		}
		sum.Processed++

		if e.progress != nil && sum.Processed%e.progressEvery == 0 {
			e.progress(sum.Processed, len(matches))
		}
	}

	return sum, nil
}

// apply performs steps 2-5 of the per-match procedure: read pre-match
// state, snapshot it, then mutate ratings and match counts.
func (e *Engine) apply(ctx context.Context, m model.Match, loserID string, matchIndex int) error {
	dim := m.Surface.Dim()

	// Pre-match reads, strictly before any mutation.
	winnerOverall, err := e.store.Get(ctx, m.WinnerID, model.Overall)
	if err != nil {
		return fmt.Errorf("read winner overall: %w", err)
	}
	loserOverall, err := e.store.Get(ctx, loserID, model.Overall)
	if err != nil {
		return fmt.Errorf("read loser overall: %w", err)
	}
	winnerSurface, err := e.store.Get(ctx, m.WinnerID, dim)
	if err != nil {
		return fmt.Errorf("read winner surface: %w", err)
	}
	loserSurface, err := e.store.Get(ctx, loserID, dim)
	if err != nil {
		return fmt.Errorf("read loser surface: %w", err)
	}

	e.log.Append(ctx, model.Snapshot{
		MatchIndex:       matchIndex,
		Date:             m.Date,
		Surface:          m.Surface,
		WinnerID:         m.WinnerID,
		LoserID:          loserID,
		WinnerEloOverall: winnerOverall,
		LoserEloOverall:  loserOverall,
		WinnerEloSurface: winnerSurface,
		LoserEloSurface:  loserSurface,
	})

	// Each dimension updates from its own pre-match ratings only.
	overallDelta := e.kFactor * (1 - Expected(winnerOverall, loserOverall))
	surfaceDelta := e.kFactor * (1 - Expected(winnerSurface, loserSurface))

	if err := e.store.ApplyDelta(ctx, m.WinnerID, model.Overall, overallDelta); err != nil {
		return err
	}
	if err := e.store.ApplyDelta(ctx, loserID, model.Overall, -overallDelta); err != nil {
		return err
	}
	if err := e.store.ApplyDelta(ctx, m.WinnerID, dim, surfaceDelta); err != nil {
		return err
	}
	if err := e.store.ApplyDelta(ctx, loserID, dim, -surfaceDelta); err != nil {
		return err
	}

	if err := e.store.IncrementMatches(ctx, m.WinnerID); err != nil {
		return err
	}
	if err := e.store.IncrementMatches(ctx, loserID); err != nil {
		return err
	}

	return nil
}

// resolveLoser returns the listed player that is not the winner, or
// false when the winner matches neither player.
func resolveLoser(m model.Match) (string, bool) {
	switch m.WinnerID {
	case m.Player1ID:
		return m.Player2ID, true
	case m.Player2ID:
		return m.Player1ID, true
	default:
		return "", false
	}
}
