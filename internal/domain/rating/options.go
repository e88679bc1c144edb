package rating

import "github.com/nicolasgoossens1/tennis-predictor/internal/domain/model"

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithKFactor sets the maximum points exchanged per match.
func WithKFactor(k float64) Option {
	return func(e *Engine) {
		if k > 0 {
			e.kFactor = k
		}
	}
}

// WithSurfaces replaces the recognized surface set.
func WithSurfaces(surfaces []model.Surface) Option {
	return func(e *Engine) {
		if len(surfaces) == 0 {
			return
		}
		e.surfaces = make(map[model.Surface]struct{}, len(surfaces))
		for _, s := range surfaces {
			e.surfaces[s] = struct{}{}
		}
	}
}

// WithProgress installs an observer called after every `every` processed
// matches. The observer cannot influence engine state or results.
func WithProgress(fn ProgressFunc, every int) Option {
	return func(e *Engine) {
		e.progress = fn
		if every > 0 {
			e.progressEvery = every
		}
	}
}
