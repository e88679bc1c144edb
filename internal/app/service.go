// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nicolasgoossens1/tennis-predictor/internal/adapters/export"
	"github.com/nicolasgoossens1/tennis-predictor/internal/adapters/repository"
	"github.com/nicolasgoossens1/tennis-predictor/internal/adapters/snapshotlog"
	"github.com/nicolasgoossens1/tennis-predictor/internal/domain/model"
	"github.com/nicolasgoossens1/tennis-predictor/internal/domain/rating"
	"github.com/nicolasgoossens1/tennis-predictor/internal/domain/types"
	"github.com/nicolasgoossens1/tennis-predictor/pkg/logger"
	"github.com/nicolasgoossens1/tennis-predictor/pkg/metrics"
)

// Service owns the rating store, the snapshot log, and the engine, and
// exposes the read-only projections the reporting API needs.
type Service struct {
	mu sync.RWMutex

	// Core components
	store repository.Store
	log   snapshotlog.Log

	// Configuration
	initialRating        float64
	kFactor              float64
	surfaces             []model.Surface
	minSpecialistMatches int
	progressInterval     int

	// State of the last batch pass
	runID       string
	lastSummary rating.Summary
	lastRunAt   time.Time
	started     bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithInitialRating sets the default rating for newly seen players.
func WithInitialRating(r float64) Option {
	return func(s *Service) {
		if r > 0 {
			s.initialRating = r
		}
	}
}

// WithKFactor sets the K-factor used by the engine.
func WithKFactor(k float64) Option {
	return func(s *Service) {
		if k > 0 {
			s.kFactor = k
		}
	}
}

// WithSurfaces replaces the recognized surface set.
func WithSurfaces(surfaces []model.Surface) Option {
	return func(s *Service) {
		if len(surfaces) > 0 {
			s.surfaces = surfaces
		}
	}
}

// WithMinSpecialistMatches sets the default matches-played threshold for
// the surface-specialist report.
func WithMinSpecialistMatches(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.minSpecialistMatches = n
		}
	}
}

// WithProgressInterval sets how often batch progress is logged.
func WithProgressInterval(every int) Option {
	return func(s *Service) {
		if every > 0 {
			s.progressInterval = every
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		initialRating:        rating.DefaultInitialRating,
		kFactor:              rating.DefaultKFactor,
		surfaces:             model.Surfaces(),
		minSpecialistMatches: 20,
		progressInterval:     5000,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.store = repository.NewMemStore(
		repository.WithInitialRating(s.initialRating),
		repository.WithSurfaces(s.surfaces),
	)
	s.log = snapshotlog.NewMemLog()
	s.started = true

	s.logger.Info(ctx, "rating service started",
		logger.Float64("initialRating", s.initialRating),
		logger.Float64("kFactor", s.kFactor),
		logger.Int("surfaces", len(s.surfaces)),
	)

	return nil
}

// Run executes one batch pass over the date-ordered matches, mutating
// the store and appending to the snapshot log. It is the single writer
// for the duration of the pass.
func (s *Service) Run(ctx context.Context, matches []model.Match) (rating.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return rating.Summary{}, fmt.Errorf("service not started")
	}

	runID := uuid.NewString()
	start := time.Now()

	s.logger.Info(ctx, "starting batch pass",
		logger.String("runID", runID),
		logger.Int("matches", len(matches)),
	)

	engine := rating.New(s.store, s.log,
		rating.WithKFactor(s.kFactor),
		rating.WithSurfaces(s.surfaces),
		rating.WithProgress(func(processed, total int) {
			elapsed := time.Since(start).Seconds()
			rate := 0.0
			if elapsed > 0 {
				rate = float64(processed) / elapsed
			}
			s.logger.Info(ctx, "batch progress",
				logger.String("runID", runID),
				logger.Int("processed", processed),
				logger.Int("total", total),
				logger.Float64("matchesPerSec", rate),
			)
		}, s.progressInterval),
	)

	sum, err := engine.Process(ctx, matches)
	if err != nil {
		metrics.RecordErrorByComponent("engine", "batch_failed")
		return sum, fmt.Errorf("batch pass %s: %w", runID, err)
	}

	elapsed := time.Since(start)
	s.runID = runID
	s.lastSummary = sum
	s.lastRunAt = start

	metrics.AddMatchesProcessed(sum.Processed)
	metrics.AddMatchesSkipped(sum.Skipped)
	metrics.RecordBatchRun()
	metrics.RecordBatchDuration(float64(elapsed.Milliseconds()))

	s.logger.Info(ctx, "batch pass complete",
		logger.String("runID", runID),
		logger.Int("processed", sum.Processed),
		logger.Int("skipped", sum.Skipped),
		logger.Int("players", s.store.Count(ctx)),
		logger.Any("elapsed", elapsed),
	)

	return sum, nil
}

// Export writes the batch artifacts: the rating table, the snapshot
// table, and optionally the snapshot log as JSONL.
func (s *Service) Export(ctx context.Context, outputDir, snapshotLogFile string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ratings := s.store.Ratings(ctx)
	if err := export.WriteRatings(outputDir, ratings); err != nil {
		metrics.RecordErrorByComponent("export", "ratings")
		return err
	}

	snapshots := s.log.All(ctx)
	if err := export.WriteSnapshots(outputDir, snapshots); err != nil {
		metrics.RecordErrorByComponent("export", "snapshots")
		return err
	}

	if snapshotLogFile != "" {
		if err := snapshotlog.WriteJSONL(snapshotLogFile, snapshots); err != nil {
			metrics.RecordErrorByComponent("export", "snapshot_log")
			return err
		}
	}

	s.logger.Info(ctx, "exported batch artifacts",
		logger.String("outputDir", outputDir),
		logger.Int("players", len(ratings)),
		logger.Int("snapshots", len(snapshots)),
	)

	return nil
}

// Rankings returns the top n players by overall rating.
func (s *Service) Rankings(ctx context.Context, n int) ([]types.Entry, error) {
	return s.store.Rankings(ctx, n)
}

// Specialists returns the surface-specialist report. A negative
// minMatches selects the configured default threshold.
func (s *Service) Specialists(ctx context.Context, surface string, minMatches int) ([]types.Specialist, error) {
	if minMatches < 0 {
		minMatches = s.minSpecialistMatches
	}
	return s.store.Specialists(ctx, model.Surface(surface), minMatches)
}

// Player returns one player's rating state.
func (s *Service) Player(ctx context.Context, playerID string) (model.PlayerRating, error) {
	return s.store.Player(ctx, playerID)
}

// Snapshots returns up to limit snapshots from the start of the log;
// limit < 1 returns the whole log.
func (s *Service) Snapshots(ctx context.Context, limit int) []model.Snapshot {
	all := s.log.All(ctx)
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":  s.started,
		"kFactor":  s.kFactor,
		"initial":  s.initialRating,
		"surfaces": len(s.surfaces),
	}

	if s.started {
		stats["players"] = s.store.Count(ctx)
		stats["snapshots"] = s.log.Len(ctx)
		stats["runID"] = s.runID
		stats["processed"] = s.lastSummary.Processed
		stats["skipped"] = s.lastSummary.Skipped
		if !s.lastRunAt.IsZero() {
			stats["lastRunAt"] = s.lastRunAt.UTC().Format(time.RFC3339)
		}
	}

	return stats
}
