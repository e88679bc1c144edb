// Package export writes the final rating table and the per-match
// snapshot table as CSV artifacts for downstream feature building.
package export

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/nicolasgoossens1/tennis-predictor/internal/domain/model"
	"github.com/nicolasgoossens1/tennis-predictor/pkg/metrics"
)

// Artifact file names inside the output directory.
const (
	RatingsFile   = "elo_ratings.csv"
	SnapshotsFile = "match_ratings.csv"
)

const dateLayout = "2006-01-02"

// WriteRatings writes one row per competitor to dir/elo_ratings.csv.
func WriteRatings(dir string, ratings []model.PlayerRating) error {
	header := []string{"player_id", "elo_overall", "elo_hard", "elo_clay", "elo_grass", "elo_carpet", "matches_played"}

	err := writeCSV(filepath.Join(dir, RatingsFile), header, len(ratings), func(i int) []string {
		r := ratings[i]
		return []string{
			r.PlayerID,
			formatRating(r.Overall),
			formatRating(r.Surface[model.Hard]),
			formatRating(r.Surface[model.Clay]),
			formatRating(r.Surface[model.Grass]),
			formatRating(r.Surface[model.Carpet]),
			strconv.Itoa(r.MatchesPlayed),
		}
	})
	if err != nil {
		return fmt.Errorf("write ratings: %w", err)
	}

	metrics.RecordExport(RatingsFile, len(ratings))
	return nil
}

// WriteSnapshots writes one row per valid processed match to
// dir/match_ratings.csv, in processing order.
func WriteSnapshots(dir string, snapshots []model.Snapshot) error {
	header := []string{
		"match_idx", "date", "surface", "winner_id", "loser_id",
		"winner_elo_overall", "loser_elo_overall", "winner_elo_surface", "loser_elo_surface",
	}

	err := writeCSV(filepath.Join(dir, SnapshotsFile), header, len(snapshots), func(i int) []string {
		s := snapshots[i]
		return []string{
			strconv.Itoa(s.MatchIndex),
			s.Date.Format(dateLayout),
			string(s.Surface),
			s.WinnerID,
			s.LoserID,
			formatRating(s.WinnerEloOverall),
			formatRating(s.LoserEloOverall),
			formatRating(s.WinnerEloSurface),
			formatRating(s.LoserEloSurface),
		}
	})
	if err != nil {
		return fmt.Errorf("write snapshots: %w", err)
	}

	metrics.RecordExport(SnapshotsFile, len(snapshots))
	return nil
}

// writeCSV streams n rows through a buffered CSV writer.
func writeCSV(path string, header []string, n int, row func(i int) []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	bf := bufio.NewWriter(f)
	w := csv.NewWriter(bf)

	if err := w.Write(header); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := w.Write(row(i)); err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return bf.Flush()
}

// formatRating renders a rating with enough precision to round-trip.
func formatRating(r float64) string {
	return strconv.FormatFloat(r, 'f', -1, 64)
}
