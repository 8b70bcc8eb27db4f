package records_test

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/okian/edgeboard/internal/domain/model"
	"github.com/okian/edgeboard/internal/domain/records"
	"github.com/smartystreets/goconvey/convey"
)

func game(team string, spread, pf, pa float64) model.GameRecord {
	return model.GameRecord{
		Season:        2024,
		Week:          1,
		Team:          team,
		Spread:        model.Some(spread),
		PointsFor:     model.Some(pf),
		PointsAgainst: model.Some(pa),
	}
}

func withTotal(g model.GameRecord, line float64) model.GameRecord {
	g.TotalLine = model.Some(line)
	return g
}

func TestATS(t *testing.T) {
	convey.Convey("Given two games derived from raw scores", t, func() {
		games := []model.GameRecord{
			game("KC", -3, 24, 20),
			game("KC", 2.5, 14, 21),
		}

		convey.Convey("When computing the ATS record", func() {
			out := records.ATS(games)

			convey.Convey("Then the favorite covers and the underdog does not", func() {
				convey.So(len(out), convey.ShouldEqual, 1)
				r := out[0]
				convey.So(r.Team, convey.ShouldEqual, "KC")
				convey.So(r.Wins, convey.ShouldEqual, 1)
				convey.So(r.Losses, convey.ShouldEqual, 1)
				convey.So(r.Record, convey.ShouldEqual, "1-1")
				convey.So(r.WinPct.Or(-1), convey.ShouldEqual, 0.5)
			})
		})
	})

	convey.Convey("Given a push", t, func() {
		games := []model.GameRecord{game("BUF", -3, 23, 20), game("BUF", -7, 30, 20)}
		out := records.ATS(games)

		convey.Convey("Then pushes are appended and excluded from the percentage", func() {
			convey.So(out[0].Record, convey.ShouldEqual, "1-0-1")
			convey.So(out[0].Pushes, convey.ShouldEqual, 1)
			convey.So(out[0].WinPct.Or(-1), convey.ShouldEqual, 1.0)
		})
	})

	convey.Convey("Given only pushes", t, func() {
		out := records.ATS([]model.GameRecord{game("MIA", -3, 23, 20)})

		convey.Convey("Then win_pct is absent, not zero", func() {
			convey.So(out[0].Record, convey.ShouldEqual, "0-0-1")
			convey.So(out[0].WinPct.Valid(), convey.ShouldBeFalse)
		})
	})

	convey.Convey("Given a precomputed spread_cover", t, func() {
		g := game("DET", -3, 20, 24)
		g.SpreadCover = model.Some(1)
		out := records.ATS([]model.GameRecord{g})

		convey.Convey("Then it overrides the score derivation", func() {
			convey.So(out[0].Wins, convey.ShouldEqual, 1)
			convey.So(out[0].Losses, convey.ShouldEqual, 0)
		})
	})

	convey.Convey("Given several teams", t, func() {
		games := []model.GameRecord{
			game("A", -3, 10, 20), // loss
			game("B", -3, 30, 20), // win
			game("C", -3, 23, 20), // push only
			game("D", -3, 30, 20), // win
		}
		out := records.ATS(games)

		convey.Convey("Then they sort by win_pct with absent last and ties by team", func() {
			names := []string{}
			for _, r := range out {
				names = append(names, r.Team)
			}
			convey.So(names, convey.ShouldResemble, []string{"B", "D", "A", "C"})
		})
	})

	convey.Convey("Given empty or unresolvable input", t, func() {
		convey.So(records.ATS(nil), convey.ShouldNotBeNil)
		convey.So(records.ATS(nil), convey.ShouldBeEmpty)

		g := model.GameRecord{Season: 2024, Week: 1, Team: "NYJ", PointsFor: model.Some(10.0)}
		convey.So(records.ATS([]model.GameRecord{g}), convey.ShouldBeEmpty)

		noTeam := game("", -3, 30, 20)
		convey.So(records.ATS([]model.GameRecord{noTeam}), convey.ShouldBeEmpty)
	})

	convey.Convey("Given random resolvable games", t, func() {
		rng := rand.New(rand.NewSource(7))
		games := make([]model.GameRecord, 0, 200)
		teams := []string{"KC", "BUF", "PHI", "SF"}
		for i := 0; i < 200; i++ {
			spread := float64(rng.Intn(21)-10) / 2
			games = append(games, game(teams[i%len(teams)], spread, float64(rng.Intn(40)), float64(rng.Intn(40))))
		}

		convey.Convey("Then wins, losses and pushes add up to games", func() {
			total := 0
			for _, r := range records.ATS(games) {
				convey.So(r.Wins+r.Losses+r.Pushes, convey.ShouldEqual, r.Games)
				if r.Wins+r.Losses == 0 {
					convey.So(r.WinPct.Valid(), convey.ShouldBeFalse)
				}
				total += r.Games
			}
			convey.So(total, convey.ShouldEqual, len(games))
		})
	})
}

func TestOverUnder(t *testing.T) {
	convey.Convey("Given an under", t, func() {
		out := records.OverUnder([]model.GameRecord{withTotal(game("KC", -3, 24, 20), 45)})

		convey.Convey("Then the record is 0-1 with a zero over_pct", func() {
			convey.So(len(out), convey.ShouldEqual, 1)
			convey.So(out[0].Unders, convey.ShouldEqual, 1)
			convey.So(out[0].Record, convey.ShouldEqual, "0-1")
			convey.So(out[0].OverPct.Or(-1), convey.ShouldEqual, 0.0)
			convey.So(out[0].OverPct.Valid(), convey.ShouldBeTrue)
		})
	})

	convey.Convey("Given a total that lands on the line", t, func() {
		out := records.OverUnder([]model.GameRecord{withTotal(game("KC", -3, 24, 20), 44)})

		convey.Convey("Then it counts only as a push", func() {
			convey.So(out[0].Overs, convey.ShouldEqual, 0)
			convey.So(out[0].Unders, convey.ShouldEqual, 0)
			convey.So(out[0].Pushes, convey.ShouldEqual, 1)
			convey.So(out[0].Games, convey.ShouldEqual, 1)
			convey.So(out[0].OverPct.Valid(), convey.ShouldBeFalse)
		})
	})

	convey.Convey("Given total_cover and several teams", t, func() {
		g := withTotal(game("SF", -3, 10, 10), 50)
		g.TotalCover = model.Some(1)
		out := records.OverUnder([]model.GameRecord{
			withTotal(game("PHI", 1, 30, 30), 50),
			g,
			withTotal(game("ARI", 1, 3, 3), 50),
		})

		convey.Convey("Then total_cover wins and rows sort by team", func() {
			convey.So(out[0].Team, convey.ShouldEqual, "ARI")
			convey.So(out[1].Team, convey.ShouldEqual, "PHI")
			convey.So(out[2].Team, convey.ShouldEqual, "SF")
			convey.So(out[2].Overs, convey.ShouldEqual, 1)
			for _, r := range out {
				convey.So(r.Overs+r.Unders+r.Pushes, convey.ShouldEqual, r.Games)
			}
		})
	})
}

func TestRecordJSON(t *testing.T) {
	convey.Convey("Given ATS and O/U rows with no resolvable percentage", t, func() {
		ats := records.ATS([]model.GameRecord{game("KC", -3, 23, 20)})
		ou := records.OverUnder([]model.GameRecord{withTotal(game("KC", -3, 23, 20), 43)})

		a, errA := json.Marshal(ats[0])
		o, errO := json.Marshal(ou[0])

		convey.Convey("Then the record is keyed record_string and the percentage is null", func() {
			convey.So(errA, convey.ShouldBeNil)
			convey.So(errO, convey.ShouldBeNil)
			convey.So(string(a), convey.ShouldContainSubstring, `"record_string":"0-0-1"`)
			convey.So(string(a), convey.ShouldContainSubstring, `"win_pct":null`)
			convey.So(string(o), convey.ShouldContainSubstring, `"record_string":"0-0-1"`)
			convey.So(string(o), convey.ShouldContainSubstring, `"over_pct":null`)
		})
	})
}
