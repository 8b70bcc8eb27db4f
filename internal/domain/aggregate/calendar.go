package aggregate

import (
	"cmp"
	"slices"
	"time"

	"github.com/okian/edgeboard/internal/domain/filter"
	"github.com/okian/edgeboard/internal/domain/model"
)

// finalRegularWeek is the last week of the regular season.
const finalRegularWeek = 18

// CurrentWeek returns the latest season and the week to predict next: one past
// the latest played week, held at the final regular week. With no rows it is
// week 1 of now's year.
func CurrentWeek[R model.Keyed](rows []R, now time.Time) (season, week int) {
	if len(rows) == 0 {
		return now.Year(), 1
	}
	for i, r := range rows {
		k := r.Key()
		if i == 0 || k.Season > season {
			season, week = k.Season, k.Week
		} else if k.Season == season && k.Week > week {
			week = k.Week
		}
	}
	if week < finalRegularWeek {
		return season, week + 1
	}
	return season, week
}

// TeamTrends returns a team's n most recent rows, newest first.
func TeamTrends(rows []model.TeamWeekMetric, team string, n int) []model.TeamWeekMetric {
	if n <= 0 || team == "" {
		return []model.TeamWeekMetric{}
	}
	mine := filter.Team(rows, team)
	slices.SortStableFunc(mine, func(a, b model.TeamWeekMetric) int {
		if c := cmp.Compare(b.Season, a.Season); c != 0 {
			return c
		}
		return cmp.Compare(b.Week, a.Week)
	})
	if len(mine) > n {
		mine = mine[:n]
	}
	return mine
}
