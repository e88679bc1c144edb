package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/nicolasgoossens1/tennis-predictor/internal/domain/model"
	"github.com/nicolasgoossens1/tennis-predictor/internal/domain/types"
	"github.com/nicolasgoossens1/tennis-predictor/pkg/metrics"
)

// playerState holds the mutable rating state for one player.
type playerState struct {
	overall float64
	surface map[model.Surface]float64
	matches int
}

// MemStore is the in-memory Store implementation used for batch passes.
//
// Writes take the exclusive lock, so the single-writer discipline of the
// engine holds even if readers poll concurrently. All read projections
// copy state out before returning.
type MemStore struct {
	mu       sync.RWMutex
	players  map[string]*playerState
	initial  float64
	surfaces []model.Surface
	known    map[model.Surface]struct{}
}

// NewMemStore constructs a rating store with configuration options.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{
		players:  make(map[string]*playerState),
		initial:  1500,
		surfaces: model.Surfaces(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.known = make(map[model.Surface]struct{}, len(s.surfaces))
	for _, sf := range s.surfaces {
		s.known[sf] = struct{}{}
	}

	return s
}

// materialize returns the player's state, creating it with defaults on
// first reference. Caller must hold the write lock.
func (s *MemStore) materialize(playerID string) *playerState {
	p, ok := s.players[playerID]
	if !ok {
		p = &playerState{overall: s.initial, surface: make(map[model.Surface]float64, len(s.surfaces))}
		for _, sf := range s.surfaces {
			p.surface[sf] = s.initial
		}
		s.players[playerID] = p
		metrics.UpdatePlayersTracked(len(s.players))
	}
	return p
}

// checkDim validates that dim is the overall dimension or a recognized
// surface. An unrecognized dimension is a configuration error.
func (s *MemStore) checkDim(dim model.Dimension) error {
	if dim == model.Overall {
		return nil
	}
	if _, ok := s.known[model.Surface(dim)]; !ok {
		return fmt.Errorf("dimension %q: %w", dim, ErrUnknownDimension)
	}
	return nil
}

// Get implements Store.Get with default-on-first-access semantics.
func (s *MemStore) Get(ctx context.Context, playerID string, dim model.Dimension) (float64, error) {
	if err := s.checkDim(dim); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.materialize(playerID)
	if dim == model.Overall {
		return p.overall, nil
	}
	return p.surface[model.Surface(dim)], nil
}

// ApplyDelta implements Store.ApplyDelta.
func (s *MemStore) ApplyDelta(ctx context.Context, playerID string, dim model.Dimension, delta float64) error {
	if err := s.checkDim(dim); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.materialize(playerID)
	if dim == model.Overall {
		p.overall += delta
		return nil
	}
	p.surface[model.Surface(dim)] += delta
	return nil
}

// IncrementMatches implements Store.IncrementMatches.
func (s *MemStore) IncrementMatches(ctx context.Context, playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.materialize(playerID).matches++
	return nil
}

// Count returns the number of players tracked.
func (s *MemStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.players)
}

// Ratings returns a copy of every player's state, ordered by player id.
func (s *MemStore) Ratings(ctx context.Context) []model.PlayerRating {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.PlayerRating, 0, len(s.players))
	for id, p := range s.players {
		out = append(out, s.export(id, p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	return out
}

// Player returns one player's rating state, or ErrNotFound.
func (s *MemStore) Player(ctx context.Context, playerID string) (model.PlayerRating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.players[playerID]
	if !ok {
		return model.PlayerRating{}, ErrNotFound
	}
	return s.export(playerID, p), nil
}

// export copies a playerState into the read model. Caller holds a lock.
func (s *MemStore) export(id string, p *playerState) model.PlayerRating {
	surface := make(map[model.Surface]float64, len(p.surface))
	for sf, r := range p.surface {
		surface[sf] = r
	}
	return model.PlayerRating{
		PlayerID:      id,
		Overall:       p.overall,
		Surface:       surface,
		MatchesPlayed: p.matches,
	}
}

// Rankings implements Store.Rankings.
func (s *MemStore) Rankings(ctx context.Context, n int) ([]types.Entry, error) {
	if n < 1 {
		return nil, ErrInvalidLimit
	}

	s.mu.RLock()
	entries := make([]types.Entry, 0, len(s.players))
	for id, p := range s.players {
		entries = append(entries, types.Entry{
			PlayerID:      id,
			Overall:       p.overall,
			MatchesPlayed: p.matches,
		})
	}
	s.mu.RUnlock()

	sortEntries(entries)
	assignRanksWithTies(entries)

	if len(entries) > n {
		entries = entries[:n]
	}
	return entries, nil
}

// Specialists implements Store.Specialists.
func (s *MemStore) Specialists(ctx context.Context, surface model.Surface, minMatches int) ([]types.Specialist, error) {
	if err := s.checkDim(surface.Dim()); err != nil {
		return nil, err
	}

	s.mu.RLock()
	out := make([]types.Specialist, 0)
	for id, p := range s.players {
		if p.matches < minMatches {
			continue
		}
		advantage := p.surface[surface] - p.overall
		if advantage <= 0 {
			continue
		}
		out = append(out, types.Specialist{
			PlayerID:      id,
			Surface:       string(surface),
			SurfaceRating: p.surface[surface],
			Overall:       p.overall,
			Advantage:     advantage,
			MatchesPlayed: p.matches,
		})
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Advantage != out[j].Advantage {
			return out[i].Advantage > out[j].Advantage
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out, nil
}

// sortEntries orders entries by overall rating (descending) and player id
// (ascending) so rankings are deterministic.
func sortEntries(entries []types.Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Overall != entries[j].Overall {
			return entries[i].Overall > entries[j].Overall
		}
		return entries[i].PlayerID < entries[j].PlayerID
	})
}

// assignRanksWithTies assigns rank numbers over sorted entries. Players
// with the same overall rating share a rank; the next distinct rating
// takes the next consecutive rank.
func assignRanksWithTies(entries []types.Entry) {
	currentRank := 0
	for i := range entries {
		if i == 0 || entries[i].Overall != entries[i-1].Overall {
			currentRank++
		}
		entries[i].Rank = currentRank
	}
}
