// Command gen-matches writes a synthetic processed match table for
// exercising the rating pipeline.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/nicolasgoossens1/tennis-predictor/internal/simulate"
)

func main() {
	out := flag.String("out", "data/processed/matches.csv", "output CSV path")
	players := flag.Int("players", 200, "player pool size")
	matches := flag.Int("matches", 10000, "number of match records")
	seed := flag.Int64("seed", 42, "random seed")
	corrupt := flag.Float64("corrupt", 0, "rate of records with an unresolvable winner")
	flag.Parse()

	g := simulate.NewGenerator(
		simulate.WithPlayerCount(*players),
		simulate.WithMatchCount(*matches),
		simulate.WithSeed(*seed),
		simulate.WithCorruptRate(*corrupt),
	)

	pool := g.Players()
	table := g.Matches(pool)

	if err := simulate.WriteCSV(*out, table); err != nil {
		fmt.Fprintln(os.Stderr, "write match table:", err)
		os.Exit(1)
	}

	fmt.Printf("wrote %d matches for %d players to %s\n", len(table), len(pool), *out)
}
