package simulate

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nicolasgoossens1/tennis-predictor/internal/adapters/feed"
)

func testPool(n int) []string {
	players := make([]string, n)
	for i := range players {
		players[i] = "p" + string(rune('a'+i))
	}
	return players
}

func TestGeneratorPlayers(t *testing.T) {
	g := NewGenerator(WithPlayerCount(10))
	players := g.Players()

	if len(players) != 10 {
		t.Fatalf("expected 10 players, got %d", len(players))
	}
	seen := make(map[string]bool)
	for _, id := range players {
		if len(id) != 8 {
			t.Errorf("expected 8-character id, got %q", id)
		}
		if seen[id] {
			t.Errorf("duplicate player id %q", id)
		}
		seen[id] = true
	}
}

func TestGeneratorMatchesDeterministic(t *testing.T) {
	players := testPool(8)

	a := NewGenerator(WithMatchCount(200), WithSeed(7)).Matches(players)
	b := NewGenerator(WithMatchCount(200), WithSeed(7)).Matches(players)

	if len(a) != 200 || len(b) != 200 {
		t.Fatalf("expected 200 matches, got %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("match %d differs between identical seeds: %+v vs %+v", i, a[i], b[i])
		}
	}

	c := NewGenerator(WithMatchCount(200), WithSeed(8)).Matches(players)
	same := true
	for i := range a {
		if a[i] != c[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced an identical match table")
	}
}

func TestGeneratorMatchesShape(t *testing.T) {
	players := testPool(6)
	matches := NewGenerator(WithMatchCount(500), WithSeed(1)).Matches(players)

	pool := make(map[string]bool, len(players))
	for _, id := range players {
		pool[id] = true
	}

	prev := time.Time{}
	for i, m := range matches {
		if m.Player1ID == m.Player2ID {
			t.Fatalf("match %d pairs a player with itself", i)
		}
		if !pool[m.Player1ID] || !pool[m.Player2ID] {
			t.Fatalf("match %d references a player outside the pool", i)
		}
		if m.WinnerID != m.Player1ID && m.WinnerID != m.Player2ID {
			t.Fatalf("match %d has an unexpected winner %q with no corruption enabled", i, m.WinnerID)
		}
		if m.Date.Before(prev) {
			t.Fatalf("match %d dated %s before previous %s", i, m.Date, prev)
		}
		prev = m.Date
	}
}

func TestGeneratorSkillSignal(t *testing.T) {
	players := testPool(10)
	matches := NewGenerator(WithMatchCount(2000), WithSeed(3)).Matches(players)

	// The strongest player should win clearly more than half of its
	// matches against the latent-strength gradient.
	var played, won int
	best := players[0]
	for _, m := range matches {
		if m.Player1ID == best || m.Player2ID == best {
			played++
			if m.WinnerID == best {
				won++
			}
		}
	}
	if played == 0 {
		t.Fatal("strongest player never drawn")
	}
	if ratio := float64(won) / float64(played); ratio < 0.55 {
		t.Errorf("strongest player won only %.2f of matches", ratio)
	}
}

func TestGeneratorCorruptRate(t *testing.T) {
	players := testPool(8)
	matches := NewGenerator(WithMatchCount(1000), WithSeed(5), WithCorruptRate(0.1)).Matches(players)

	var corrupt int
	for _, m := range matches {
		if strings.HasPrefix(m.WinnerID, "corrupt-") {
			corrupt++
		}
	}
	if corrupt == 0 {
		t.Fatal("corrupt rate 0.1 produced no corrupt records")
	}
	if corrupt < 50 || corrupt > 200 {
		t.Errorf("corrupt count %d far from the configured rate", corrupt)
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	players := testPool(5)
	matches := NewGenerator(WithMatchCount(50), WithSeed(11)).Matches(players)

	path := filepath.Join(t.TempDir(), "matches.csv")
	if err := WriteCSV(path, matches); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	loaded, err := feed.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded) != len(matches) {
		t.Fatalf("expected %d matches back, got %d", len(matches), len(loaded))
	}
	for i := range matches {
		if loaded[i] != matches[i] {
			t.Fatalf("match %d changed across the round trip: %+v vs %+v", i, matches[i], loaded[i])
		}
	}
}
