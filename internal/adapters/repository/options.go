package repository

import "github.com/nicolasgoossens1/tennis-predictor/internal/domain/model"

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithInitialRating sets the default rating for newly seen players.
func WithInitialRating(r float64) Option {
	return func(s *MemStore) {
		if r > 0 {
			s.initial = r
		}
	}
}

// WithSurfaces replaces the recognized surface set.
func WithSurfaces(surfaces []model.Surface) Option {
	return func(s *MemStore) {
		if len(surfaces) > 0 {
			s.surfaces = surfaces
		}
	}
}
