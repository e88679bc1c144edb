// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address for the reporting API.
	Addr string `koanf:"addr"`

	// Serve keeps the process alive after the batch pass to answer
	// read-only queries over the final state.
	Serve bool `koanf:"serve"`

	// MatchesFile points at the processed match table.
	MatchesFile string `koanf:"matches_file"`

	// OutputDir receives the CSV artifacts of a batch pass.
	OutputDir string `koanf:"output_dir"`

	// SnapshotLogFile optionally persists the snapshot log as JSONL.
	// Empty disables the artifact.
	SnapshotLogFile string `koanf:"snapshot_log_file"`

	// InitialRating is the default rating for newly seen players.
	InitialRating float64 `koanf:"initial_rating"`

	// KFactor bounds the points exchanged per match.
	KFactor float64 `koanf:"k_factor"`

	// Surfaces is the recognized surface set.
	Surfaces []string `koanf:"surfaces"`

	// MinSpecialistMatches filters the surface-specialist report.
	MinSpecialistMatches int `koanf:"min_specialist_matches"`

	// MaxRankingsLimit caps GET /rankings?limit.
	MaxRankingsLimit int `koanf:"max_rankings_limit"`

	// ProgressInterval controls how often batch progress is logged.
	ProgressInterval int `koanf:"progress_interval"`
}

// New creates a Config populated with defaults.
func New() *Config {
	c := &Config{
		LogLevel:             "info",
		Addr:                 ":8090",
		Serve:                true,
		MatchesFile:          "data/processed/matches.csv",
		OutputDir:            "data/features",
		SnapshotLogFile:      "",
		InitialRating:        1500,
		KFactor:              32,
		Surfaces:             []string{"Hard", "Clay", "Grass", "Carpet"},
		MinSpecialistMatches: 20,
		MaxRankingsLimit:     100,
		ProgressInterval:     5000,
	}
	return c
}
