package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nicolasgoossens1/tennis-predictor/internal/adapters/feed"
	"github.com/nicolasgoossens1/tennis-predictor/internal/adapters/http/api"
	app "github.com/nicolasgoossens1/tennis-predictor/internal/app"
	"github.com/nicolasgoossens1/tennis-predictor/internal/config"
	"github.com/nicolasgoossens1/tennis-predictor/internal/domain/model"
	"github.com/nicolasgoossens1/tennis-predictor/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}

	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	surfaces := make([]model.Surface, len(cfg.Surfaces))
	for i, s := range cfg.Surfaces {
		surfaces[i] = model.Surface(s)
	}

	svc := app.New(
		app.WithLogger(log),
		app.WithInitialRating(cfg.InitialRating),
		app.WithKFactor(cfg.KFactor),
		app.WithSurfaces(surfaces),
		app.WithMinSpecialistMatches(cfg.MinSpecialistMatches),
		app.WithProgressInterval(cfg.ProgressInterval),
	)
	if err := svc.Start(ctx); err != nil {
		log.Error(ctx, "failed to start service", logger.Error(err))
		return
	}

	// Materialize the match feed before the engine starts; no I/O happens
	// inside the update loop.
	matches, err := feed.Load(cfg.MatchesFile)
	if err != nil {
		log.Error(ctx, "failed to load match feed", logger.String("file", cfg.MatchesFile), logger.Error(err))
		return
	}
	log.Info(ctx, "loaded match feed", logger.String("file", cfg.MatchesFile), logger.Int("matches", len(matches)))

	if _, err := svc.Run(ctx, matches); err != nil {
		log.Error(ctx, "batch pass failed", logger.Error(err))
		return
	}

	if err := svc.Export(ctx, cfg.OutputDir, cfg.SnapshotLogFile); err != nil {
		log.Error(ctx, "failed to export artifacts", logger.Error(err))
		return
	}

	if !cfg.Serve {
		return
	}

	// Serve read-only projections over the final state.
	mux := http.NewServeMux()
	apiServer := api.NewServer(svc, svc, cfg.MaxRankingsLimit)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}
