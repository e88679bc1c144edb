// Package feed loads the processed match table supplied by the upstream
// data pipeline. Records arrive with stable player identifiers already
// resolved; this package parses, validates, and date-orders them.
package feed

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/nicolasgoossens1/tennis-predictor/internal/domain/model"
)

// dateLayout is the calendar-date format used by the match table.
const dateLayout = "2006-01-02"

// Required column names in the match table header.
const (
	colDate    = "date"
	colSurface = "surface"
	colPlayer1 = "p1_id"
	colPlayer2 = "p2_id"
	colWinner  = "winner_id"
)

// Load reads the match table at path and returns the records sorted by
// date ascending. The sort is stable: same-date matches keep their file
// order, which the engine relies on for reproducible tie handling.
func Load(path string) ([]model.Match, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingInput, err)
	}
	defer f.Close()

	matches, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return matches, nil
}

// Parse reads match records from r. Extra columns are ignored so the
// richer processed table (tournament, round, odds, ...) loads unchanged.
func Parse(r io.Reader) ([]model.Match, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: empty input", ErrMissingInput)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	for _, required := range []string{colDate, colSurface, colPlayer1, colPlayer2, colWinner} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("%w: column %q", ErrMissingColumn, required)
		}
	}

	known := make(map[model.Surface]struct{})
	for _, s := range model.Surfaces() {
		known[s] = struct{}{}
	}

	var matches []model.Match
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrBadRecord, line, err)
		}

		date, err := time.Parse(dateLayout, rec[idx[colDate]])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: bad date %q", ErrBadRecord, line, rec[idx[colDate]])
		}

		surface := model.Surface(rec[idx[colSurface]])
		if _, ok := known[surface]; !ok {
			// Upstream normalization is expected to have mapped every
			// surface label; coercing here would conflate unknown
			// surfaces with hard-court semantics.
			return nil, fmt.Errorf("%w: line %d: surface %q", ErrBadRecord, line, surface)
		}

		m := model.Match{
			Date:      date,
			Surface:   surface,
			Player1ID: rec[idx[colPlayer1]],
			Player2ID: rec[idx[colPlayer2]],
			WinnerID:  rec[idx[colWinner]],
		}
		if m.Player1ID == "" || m.Player2ID == "" || m.WinnerID == "" {
			return nil, fmt.Errorf("%w: line %d: missing player id", ErrBadRecord, line)
		}
		matches = append(matches, m)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Date.Before(matches[j].Date)
	})
	return matches, nil
}
