// Package simulate generates synthetic match tables for exercising the
// rating pipeline end to end without real scraped data.
package simulate

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/nicolasgoossens1/tennis-predictor/internal/domain/model"
	"github.com/nicolasgoossens1/tennis-predictor/internal/domain/rating"
)

// Default generator configuration constants.
const (
	defaultPlayerCount = 200
	defaultMatchCount  = 10_000
	defaultSeed        = 42
	defaultSpread      = 400.0
	maxDayStep         = 3
)

// Generator produces a deterministic synthetic match table. Each player
// gets a latent strength; winners are drawn from the Elo expectation over
// latent strengths, so the generated data carries a real skill signal.
type Generator struct {
	playerCount int
	matchCount  int
	start       time.Time
	surfaces    []model.Surface
	spread      float64
	corruptRate float64
	rng         *rand.Rand
}

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithPlayerCount sets the size of the player pool.
func WithPlayerCount(n int) Option {
	return func(g *Generator) {
		if n > 1 {
			g.playerCount = n
		}
	}
}

// WithMatchCount sets the number of generated match records.
func WithMatchCount(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.matchCount = n
		}
	}
}

// WithSeed makes the generated table reproducible for a given seed.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // deterministic seed for reproducible data
	}
}

// WithStartDate sets the date of the earliest generated match.
func WithStartDate(t time.Time) Option {
	return func(g *Generator) {
		if !t.IsZero() {
			g.start = t
		}
	}
}

// WithCorruptRate injects records whose winner matches neither player at
// the given rate, to exercise the engine's skip accounting.
func WithCorruptRate(rate float64) Option {
	return func(g *Generator) {
		if rate >= 0 && rate <= 1 {
			g.corruptRate = rate
		}
	}
}

// NewGenerator creates a generator with configuration options.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		playerCount: defaultPlayerCount,
		matchCount:  defaultMatchCount,
		start:       time.Date(2010, time.January, 4, 0, 0, 0, 0, time.UTC),
		surfaces:    model.Surfaces(),
		spread:      defaultSpread,
		rng:         rand.New(rand.NewSource(defaultSeed)), //nolint:gosec // deterministic seed for reproducible data
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Players returns the synthetic player pool. Identifiers mimic the
// upstream pipeline's 8-character opaque ids.
func (g *Generator) Players() []string {
	ids := make([]string, g.playerCount)
	for i := range ids {
		ids[i] = uuid.NewString()[:8]
	}
	return ids
}

// Matches generates the match table for the given player pool, dates
// ascending. Player i's latent strength decreases with i, so low-index
// players win more often.
func (g *Generator) Matches(players []string) []model.Match {
	matches := make([]model.Match, 0, g.matchCount)
	date := g.start

	for len(matches) < g.matchCount {
		i := g.rng.Intn(len(players))
		j := g.rng.Intn(len(players))
		if i == j {
			continue
		}

		strengthI := -g.spread * float64(i) / float64(len(players))
		strengthJ := -g.spread * float64(j) / float64(len(players))

		winner := players[i]
		if g.rng.Float64() > rating.Expected(strengthI, strengthJ) {
			winner = players[j]
		}
		if g.corruptRate > 0 && g.rng.Float64() < g.corruptRate {
			winner = "corrupt-" + winner
		}

		matches = append(matches, model.Match{
			Date:      date,
			Surface:   g.surfaces[g.rng.Intn(len(g.surfaces))],
			Player1ID: players[i],
			Player2ID: players[j],
			WinnerID:  winner,
		})

		date = date.AddDate(0, 0, g.rng.Intn(maxDayStep))
	}

	return matches
}

// WriteCSV writes matches to path in the processed match-table format
// the feed loader consumes.
func WriteCSV(path string, matches []model.Match) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"date", "surface", "p1_id", "p2_id", "winner_id"}); err != nil {
		return err
	}
	for i := range matches {
		m := matches[i]
		rec := []string{
			m.Date.Format("2006-01-02"),
			string(m.Surface),
			m.Player1ID,
			m.Player2ID,
			m.WinnerID,
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("write match %d: %w", i, err)
		}
	}

	w.Flush()
	return w.Error()
}
