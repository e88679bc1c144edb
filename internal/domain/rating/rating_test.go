package rating_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/nicolasgoossens1/tennis-predictor/internal/adapters/repository"
	"github.com/nicolasgoossens1/tennis-predictor/internal/adapters/snapshotlog"
	"github.com/nicolasgoossens1/tennis-predictor/internal/domain/model"
	"github.com/nicolasgoossens1/tennis-predictor/internal/domain/rating"
	. "github.com/smartystreets/goconvey/convey"
)

const tolerance = 1e-9

func day(n int) time.Time {
	return time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func newEngine(opts ...rating.Option) (*rating.Engine, *repository.MemStore, *snapshotlog.MemLog) {
	store := repository.NewMemStore()
	log := snapshotlog.NewMemLog()
	return rating.New(store, log, opts...), store, log
}

func TestExpected(t *testing.T) {
	Convey("Given the expected-score function", t, func() {
		Convey("Then equal ratings give 0.5", func() {
			So(rating.Expected(1500, 1500), ShouldAlmostEqual, 0.5, tolerance)
		})

		Convey("Then it is symmetric for arbitrary rating pairs", func() {
			pairs := [][2]float64{{1500, 1500}, {1700, 1300}, {1234.5, 1876.2}, {900, 2400}}
			for _, p := range pairs {
				So(rating.Expected(p[0], p[1])+rating.Expected(p[1], p[0]), ShouldAlmostEqual, 1.0, tolerance)
			}
		})

		Convey("Then it is monotone increasing in the rating difference", func() {
			So(rating.Expected(1600, 1500), ShouldBeGreaterThan, 0.5)
			So(rating.Expected(1500, 1600), ShouldBeLessThan, 0.5)
			So(rating.Expected(1800, 1500), ShouldBeGreaterThan, rating.Expected(1600, 1500))
		})

		Convey("Then a 400-point favorite is expected to win ten times as often", func() {
			e := rating.Expected(1900, 1500)
			So(e/(1-e), ShouldAlmostEqual, 10.0, 1e-9)
		})
	})
}

func TestEngine_Process(t *testing.T) {
	ctx := context.Background()

	Convey("Given two unseen players on Hard with K=32", t, func() {
		engine, store, log := newEngine()
		matches := []model.Match{
			{Date: day(0), Surface: model.Hard, Player1ID: "a", Player2ID: "b", WinnerID: "a"},
		}

		Convey("When the match is processed", func() {
			sum, err := engine.Process(ctx, matches)
			So(err, ShouldBeNil)
			So(sum.Processed, ShouldEqual, 1)
			So(sum.Skipped, ShouldEqual, 0)

			Convey("Then both gain/lose exactly 16 points on overall and Hard", func() {
				a, err := store.Player(ctx, "a")
				So(err, ShouldBeNil)
				b, err := store.Player(ctx, "b")
				So(err, ShouldBeNil)

				So(a.Overall, ShouldAlmostEqual, 1516, tolerance)
				So(b.Overall, ShouldAlmostEqual, 1484, tolerance)
				So(a.Surface[model.Hard], ShouldAlmostEqual, 1516, tolerance)
				So(b.Surface[model.Hard], ShouldAlmostEqual, 1484, tolerance)
				So(a.MatchesPlayed, ShouldEqual, 1)
				So(b.MatchesPlayed, ShouldEqual, 1)
			})

			Convey("And the other surfaces stay at the default", func() {
				a, _ := store.Player(ctx, "a")
				So(a.Surface[model.Clay], ShouldAlmostEqual, 1500, tolerance)
				So(a.Surface[model.Grass], ShouldAlmostEqual, 1500, tolerance)
				So(a.Surface[model.Carpet], ShouldAlmostEqual, 1500, tolerance)
			})

			Convey("And the snapshot carries the pre-match ratings", func() {
				snaps := log.All(ctx)
				So(len(snaps), ShouldEqual, 1)
				So(snaps[0].MatchIndex, ShouldEqual, 0)
				So(snaps[0].WinnerID, ShouldEqual, "a")
				So(snaps[0].LoserID, ShouldEqual, "b")
				So(snaps[0].WinnerEloOverall, ShouldAlmostEqual, 1500, tolerance)
				So(snaps[0].LoserEloOverall, ShouldAlmostEqual, 1500, tolerance)
				So(snaps[0].WinnerEloSurface, ShouldAlmostEqual, 1500, tolerance)
				So(snaps[0].LoserEloSurface, ShouldAlmostEqual, 1500, tolerance)
			})
		})
	})

	Convey("Given a sequence of matches between the same players", t, func() {
		engine, store, log := newEngine()
		matches := []model.Match{
			{Date: day(0), Surface: model.Clay, Player1ID: "a", Player2ID: "b", WinnerID: "a"},
			{Date: day(1), Surface: model.Clay, Player1ID: "a", Player2ID: "b", WinnerID: "a"},
			{Date: day(2), Surface: model.Hard, Player1ID: "b", Player2ID: "a", WinnerID: "b"},
		}

		Convey("When processed", func() {
			sum, err := engine.Process(ctx, matches)
			So(err, ShouldBeNil)
			So(sum.Processed, ShouldEqual, 3)

			Convey("Then every update is zero-sum per dimension", func() {
				a, _ := store.Player(ctx, "a")
				b, _ := store.Player(ctx, "b")
				So(a.Overall+b.Overall, ShouldAlmostEqual, 3000, tolerance)
				So(a.Surface[model.Clay]+b.Surface[model.Clay], ShouldAlmostEqual, 3000, tolerance)
				So(a.Surface[model.Hard]+b.Surface[model.Hard], ShouldAlmostEqual, 3000, tolerance)
			})

			Convey("And snapshots never reflect their own match's outcome", func() {
				snaps := log.All(ctx)
				So(len(snaps), ShouldEqual, 3)
				// The second Clay match must see the first one's result.
				So(snaps[1].WinnerEloSurface, ShouldAlmostEqual, 1516, tolerance)
				So(snaps[1].LoserEloSurface, ShouldAlmostEqual, 1484, tolerance)
				// The Hard match sees untouched Hard ratings despite two
				// prior Clay matches.
				So(snaps[2].WinnerEloSurface, ShouldAlmostEqual, 1500, tolerance)
				So(snaps[2].LoserEloSurface, ShouldAlmostEqual, 1500, tolerance)
				// But the winner gains less overall, having lost twice.
				So(snaps[2].WinnerEloOverall, ShouldBeLessThan, snaps[2].LoserEloOverall)
			})

			Convey("And snapshot indexes advance with processing order", func() {
				for i, s := range log.All(ctx) {
					So(s.MatchIndex, ShouldEqual, i)
				}
			})
		})
	})

	Convey("Given a record whose winner matches neither player", t, func() {
		engine, store, log := newEngine()
		matches := []model.Match{
			{Date: day(0), Surface: model.Hard, Player1ID: "a", Player2ID: "b", WinnerID: "a"},
			{Date: day(1), Surface: model.Hard, Player1ID: "c", Player2ID: "d", WinnerID: "nobody"},
			{Date: day(2), Surface: model.Hard, Player1ID: "a", Player2ID: "b", WinnerID: "b"},
		}

		Convey("When processed", func() {
			sum, err := engine.Process(ctx, matches)
			So(err, ShouldBeNil)

			Convey("Then the record is skipped and counted", func() {
				So(sum.Processed, ShouldEqual, 2)
				So(sum.Skipped, ShouldEqual, 1)
				So(sum.Processed+sum.Skipped, ShouldEqual, len(matches))
			})

			Convey("And the listed players are never materialized", func() {
				_, err := store.Player(ctx, "c")
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
				_, err = store.Player(ctx, "d")
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})

			Convey("And match indexes only advance on valid matches", func() {
				snaps := log.All(ctx)
				So(len(snaps), ShouldEqual, 2)
				So(snaps[0].MatchIndex, ShouldEqual, 0)
				So(snaps[1].MatchIndex, ShouldEqual, 1)
			})
		})
	})

	Convey("Given a record with an unrecognized surface", t, func() {
		engine, store, log := newEngine()
		matches := []model.Match{
			{Date: day(0), Surface: model.Hard, Player1ID: "a", Player2ID: "b", WinnerID: "a"},
			{Date: day(1), Surface: "Moon", Player1ID: "a", Player2ID: "b", WinnerID: "a"},
			{Date: day(2), Surface: model.Hard, Player1ID: "a", Player2ID: "b", WinnerID: "a"},
		}

		Convey("When processed", func() {
			sum, err := engine.Process(ctx, matches)

			Convey("Then the batch halts with ErrUnknownSurface", func() {
				So(errors.Is(err, rating.ErrUnknownSurface), ShouldBeTrue)
			})

			Convey("And state reflects only the matches before the failure", func() {
				So(sum.Processed, ShouldEqual, 1)
				So(log.Len(ctx), ShouldEqual, 1)
				a, _ := store.Player(ctx, "a")
				So(a.MatchesPlayed, ShouldEqual, 1)
			})
		})
	})

	Convey("Given a custom K-factor", t, func() {
		engine, store, _ := newEngine(rating.WithKFactor(16))
		matches := []model.Match{
			{Date: day(0), Surface: model.Grass, Player1ID: "a", Player2ID: "b", WinnerID: "b"},
		}

		Convey("When processed, the exchanged points scale with K", func() {
			_, err := engine.Process(ctx, matches)
			So(err, ShouldBeNil)

			b, _ := store.Player(ctx, "b")
			So(b.Overall, ShouldAlmostEqual, 1508, tolerance)
			So(b.Surface[model.Grass], ShouldAlmostEqual, 1508, tolerance)
		})
	})

	Convey("Given a cancelled context", t, func() {
		engine, store, _ := newEngine()
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		matches := []model.Match{
			{Date: day(0), Surface: model.Hard, Player1ID: "a", Player2ID: "b", WinnerID: "a"},
		}

		Convey("When processed, the pass stops before any update", func() {
			sum, err := engine.Process(cancelled, matches)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
			So(sum.Processed, ShouldEqual, 0)
			So(store.Count(ctx), ShouldEqual, 0)
		})
	})
}

func TestEngine_Determinism(t *testing.T) {
	ctx := context.Background()

	Convey("Given the same ordered input and configuration", t, func() {
		matches := []model.Match{
			{Date: day(0), Surface: model.Hard, Player1ID: "a", Player2ID: "b", WinnerID: "a"},
			{Date: day(0), Surface: model.Clay, Player1ID: "c", Player2ID: "a", WinnerID: "c"},
			{Date: day(1), Surface: model.Clay, Player1ID: "b", Player2ID: "c", WinnerID: "c"},
			{Date: day(2), Surface: model.Grass, Player1ID: "a", Player2ID: "c", WinnerID: "a"},
			{Date: day(2), Surface: model.Hard, Player1ID: "b", Player2ID: "a", WinnerID: "a"},
		}

		run := func() ([]model.PlayerRating, []model.Snapshot) {
			engine, store, log := newEngine()
			_, err := engine.Process(ctx, matches)
			So(err, ShouldBeNil)
			return store.Ratings(ctx), log.All(ctx)
		}

		Convey("When run twice", func() {
			ratings1, snaps1 := run()
			ratings2, snaps2 := run()

			Convey("Then final ratings are bit-identical", func() {
				So(len(ratings1), ShouldEqual, len(ratings2))
				for i := range ratings1 {
					So(ratings1[i].PlayerID, ShouldEqual, ratings2[i].PlayerID)
					So(ratings1[i].Overall, ShouldEqual, ratings2[i].Overall)
					So(ratings1[i].MatchesPlayed, ShouldEqual, ratings2[i].MatchesPlayed)
					for s, r := range ratings1[i].Surface {
						So(r, ShouldEqual, ratings2[i].Surface[s])
					}
				}
			})

			Convey("And the snapshot logs are identical", func() {
				So(len(snaps1), ShouldEqual, len(snaps2))
				for i := range snaps1 {
					So(snaps1[i], ShouldResemble, snaps2[i])
				}
			})
		})
	})
}

func TestEngine_Progress(t *testing.T) {
	ctx := context.Background()

	Convey("Given an engine with a progress observer", t, func() {
		var calls []int
		engine, _, _ := newEngine(rating.WithProgress(func(processed, total int) {
			calls = append(calls, processed)
		}, 2))

		matches := make([]model.Match, 5)
		for i := range matches {
			matches[i] = model.Match{Date: day(i), Surface: model.Hard, Player1ID: "a", Player2ID: "b", WinnerID: "a"}
		}

		Convey("When processed, the observer fires every N valid matches", func() {
			sum, err := engine.Process(ctx, matches)
			So(err, ShouldBeNil)
			So(sum.Processed, ShouldEqual, 5)
			So(calls, ShouldResemble, []int{2, 4})
		})
	})
}

func TestEngine_RatingsStayFinite(t *testing.T) {
	ctx := context.Background()

	Convey("Given a long one-sided streak", t, func() {
		engine, store, _ := newEngine()
		matches := make([]model.Match, 500)
		for i := range matches {
			matches[i] = model.Match{Date: day(i), Surface: model.Hard, Player1ID: "a", Player2ID: "b", WinnerID: "a"}
		}

		Convey("When processed, ratings stay finite and ordered", func() {
			_, err := engine.Process(ctx, matches)
			So(err, ShouldBeNil)

			a, _ := store.Player(ctx, "a")
			b, _ := store.Player(ctx, "b")
			So(math.IsInf(a.Overall, 0), ShouldBeFalse)
			So(math.IsNaN(a.Overall), ShouldBeFalse)
			So(a.Overall, ShouldBeGreaterThan, b.Overall)
			So(a.Overall+b.Overall, ShouldAlmostEqual, 3000, 1e-6)
		})
	})
}
