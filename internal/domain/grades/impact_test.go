package grades_test

import (
	"testing"

	"github.com/okian/edgeboard/internal/domain/grades"
	"github.com/okian/edgeboard/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func merge(ls ...grades.Lineup) grades.Lineup {
	var out grades.Lineup
	for _, l := range ls {
		out.Offense = append(out.Offense, l.Offense...)
		out.Defense = append(out.Defense, l.Defense...)
	}
	return out
}

func TestInjuryImpact(t *testing.T) {
	convey.Convey("Given identical healthy and weekly lineups", t, func() {
		l := merge(fullLineup(1, 0), fullLineup(2, 0))

		out := grades.InjuryImpact(l, l, "BUF", 2024)

		convey.Convey("Then every difference is exactly zero", func() {
			convey.So(len(out), convey.ShouldEqual, 2*len(model.Categories))
			for _, r := range out {
				d, ok := r.Difference.Get()
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(d, convey.ShouldEqual, 0.0)
				convey.So(r.Status, convey.ShouldEqual, grades.NoChange)
			}
		})
	})

	convey.Convey("Given a weekly lineup graded lower in week 2", t, func() {
		healthy := merge(fullLineup(1, 0), fullLineup(2, 0))
		weekly := merge(fullLineup(1, 1), fullLineup(2, -5))

		out := grades.InjuryImpact(healthy, weekly, "BUF", 2024)

		convey.Convey("Then rows are ordered by week then category", func() {
			convey.So(out[0].Week, convey.ShouldEqual, 1)
			convey.So(out[0].Category, convey.ShouldEqual, model.PassBlocking)
			convey.So(out[len(out)-1].Week, convey.ShouldEqual, 2)
			convey.So(out[len(out)-1].Category, convey.ShouldEqual, model.Coverage)
		})

		convey.Convey("Then the difference is weekly minus healthy", func() {
			convey.So(out[0].Difference.Or(0), convey.ShouldEqual, 1.0)
			convey.So(out[0].Status, convey.ShouldEqual, grades.SlightUpgrade)
			convey.So(out[len(out)-1].Difference.Or(0), convey.ShouldEqual, -5.0)
			convey.So(out[len(out)-1].Status, convey.ShouldEqual, grades.MajorImpact)
		})

		convey.Convey("When summarized", func() {
			s := grades.SummarizeImpact(out)

			convey.Convey("Then the negative week is counted", func() {
				convey.So(s.Weeks, convey.ShouldEqual, 2)
				convey.So(s.ImpactedWeeks, convey.ShouldEqual, 1)
				convey.So(s.AverageWeeklyImpact.Or(0), convey.ShouldEqual, (11.0-55.0)/2)
				convey.So(s.MostImpacted, convey.ShouldEqual, model.PassBlocking)
				convey.So(s.MostImpactedDelta.Or(0), convey.ShouldEqual, -2.0)
			})
		})

		convey.Convey("When averaged across the season", func() {
			avg := grades.SeasonAverage(out)

			convey.Convey("Then each category averages both weeks", func() {
				convey.So(len(avg), convey.ShouldEqual, len(model.Categories))
				convey.So(avg[0].Category, convey.ShouldEqual, model.PassBlocking)
				convey.So(avg[0].Healthy.Or(0), convey.ShouldEqual, 75.0)
				convey.So(avg[0].Weekly.Or(0), convey.ShouldEqual, 73.0)
				convey.So(avg[0].Difference.Or(0), convey.ShouldEqual, -2.0)
				convey.So(avg[0].Status, convey.ShouldEqual, grades.MinorImpact)
			})
		})
	})

	convey.Convey("Given a healthy lineup missing a week", t, func() {
		healthy := fullLineup(1, 0)
		weekly := merge(fullLineup(1, 0), fullLineup(2, 0))

		out := grades.InjuryImpact(healthy, weekly, "BUF", 2024)

		convey.Convey("Then that week's differences are missing, not zero", func() {
			convey.So(len(out), convey.ShouldEqual, 2*len(model.Categories))
			for _, r := range out[len(model.Categories):] {
				convey.So(r.Healthy.Valid(), convey.ShouldBeFalse)
				convey.So(r.Difference.Valid(), convey.ShouldBeFalse)
				convey.So(r.Status, convey.ShouldEqual, grades.Unknown)
			}
		})
	})

	convey.Convey("Given no weekly offense rows", t, func() {
		out := grades.InjuryImpact(fullLineup(1, 0), grades.Lineup{}, "BUF", 2024)
		convey.So(out, convey.ShouldNotBeNil)
		convey.So(out, convey.ShouldBeEmpty)
		convey.So(grades.SummarizeImpact(out).Weeks, convey.ShouldEqual, 0)
		convey.So(grades.SeasonAverage(out), convey.ShouldBeEmpty)
	})
}
