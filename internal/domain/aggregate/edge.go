package aggregate

import (
	"cmp"
	"slices"

	"github.com/okian/edgeboard/internal/domain/filter"
	"github.com/okian/edgeboard/internal/domain/model"
	"github.com/okian/edgeboard/internal/domain/stats"
)

// EdgeRow is one team's ranks for the latest week of a season.
type EdgeRow struct {
	Team          string      `json:"team"`
	Season        int         `json:"season"`
	Week          int         `json:"week"`
	OffensiveEPA  model.Float `json:"offensive_epa"`
	DefensiveEPA  model.Float `json:"defensive_epa"`
	OffensiveRank model.Float `json:"offensive_rank"`
	DefensiveRank model.Float `json:"defensive_rank"`
	EdgeScore     model.Float `json:"edge_score"`
}

// LatestWeek returns the highest week present for season.
func LatestWeek(rows []model.TeamWeekMetric, season int) (int, bool) {
	week, found := 0, false
	for _, r := range rows {
		if r.Season == season && (!found || r.Week > week) {
			week, found = r.Week, true
		}
	}
	return week, found
}

// EdgeScores ranks teams in the latest week of season: offense by EPA
// descending, defense by EPA allowed ascending, ties sharing the average
// rank. The edge score is the mean of both ranks, lower first. Teams missing
// either rank have no edge score and sort last.
func EdgeScores(rows []model.TeamWeekMetric, season int) []EdgeRow {
	week, ok := LatestWeek(rows, season)
	if !ok {
		return []EdgeRow{}
	}
	out := []EdgeRow{}
	for _, r := range filter.Apply(rows, filter.Selection{Seasons: []int{season}, Weeks: filter.WeekSet{week}}) {
		if r.Team == "" {
			continue
		}
		out = append(out, EdgeRow{
			Team:         r.Team,
			Season:       season,
			Week:         week,
			OffensiveEPA: r.OffensiveEPA,
			DefensiveEPA: r.DefensiveEPA,
		})
	}

	rank(out, func(e EdgeRow) model.Float { return e.OffensiveEPA }, true,
		func(e *EdgeRow, r float64) { e.OffensiveRank = model.Some(r) })
	rank(out, func(e EdgeRow) model.Float { return e.DefensiveEPA }, false,
		func(e *EdgeRow, r float64) { e.DefensiveRank = model.Some(r) })

	for i := range out {
		o, okO := out[i].OffensiveRank.Get()
		d, okD := out[i].DefensiveRank.Get()
		if okO && okD {
			out[i].EdgeScore = model.Some((o + d) / 2)
		}
	}
	slices.SortFunc(out, func(a, b EdgeRow) int {
		av, aok := a.EdgeScore.Get()
		bv, bok := b.EdgeScore.Get()
		switch {
		case aok && bok && av != bv:
			return cmp.Compare(av, bv)
		case aok && !bok:
			return -1
		case !aok && bok:
			return 1
		}
		return cmp.Compare(a.Team, b.Team)
	})
	return out
}

// rank assigns average ranks among rows whose value is present.
func rank(rows []EdgeRow, value func(EdgeRow) model.Float, descending bool, set func(*EdgeRow, float64)) {
	idx := make([]int, 0, len(rows))
	xs := make([]float64, 0, len(rows))
	for i, r := range rows {
		if v, ok := value(r).Get(); ok {
			idx = append(idx, i)
			xs = append(xs, v)
		}
	}
	for j, r := range stats.AverageRanks(xs, descending) {
		set(&rows[idx[j]], r)
	}
}

// Differential keys.
const (
	OffensiveDiff = "offensive_diff"
	DefensiveDiff = "defensive_diff"
	TotalEdge     = "total_edge"
)

// EPADifferential compares team1 against team2 in season. With a week, each
// team's latest row at or before it is used; without one, the season mean.
// defensive_diff is team2's EPA allowed minus team1's, so a positive value
// favors team1 on both sides. The map is empty when either team has no row;
// a diff is missing when either side lacks its metric.
func EPADifferential(rows []model.TeamWeekMetric, team1, team2 string, season int, week model.Optional[int]) map[string]float64 {
	out := make(map[string]float64)
	a, okA := snapshot(rows, team1, season, week)
	b, okB := snapshot(rows, team2, season, week)
	if !okA || !okB {
		return out
	}

	ao, okAO := a.OffensiveEPA.Get()
	bo, okBO := b.OffensiveEPA.Get()
	if okAO && okBO {
		out[OffensiveDiff] = ao - bo
	}
	ad, okAD := a.DefensiveEPA.Get()
	bd, okBD := b.DefensiveEPA.Get()
	if okAD && okBD {
		out[DefensiveDiff] = bd - ad
	}
	off, hasOff := out[OffensiveDiff]
	def, hasDef := out[DefensiveDiff]
	if hasOff && hasDef {
		out[TotalEdge] = off + def
	}
	return out
}

func snapshot(rows []model.TeamWeekMetric, team string, season int, week model.Optional[int]) (model.TeamWeekMetric, bool) {
	if team == "" {
		return model.TeamWeekMetric{}, false
	}
	mine := filter.Team(filter.ThroughWeek(rows, season, week), team)
	if len(mine) == 0 {
		return model.TeamWeekMetric{}, false
	}
	if week.Valid() {
		latest := slices.MaxFunc(mine, func(x, y model.TeamWeekMetric) int { return cmp.Compare(x.Week, y.Week) })
		return latest, true
	}
	off := make([]model.Float, len(mine))
	def := make([]model.Float, len(mine))
	for i, r := range mine {
		off[i], def[i] = r.OffensiveEPA, r.DefensiveEPA
	}
	return model.TeamWeekMetric{
		Season:       season,
		Team:         team,
		OffensiveEPA: stats.Mean(off),
		DefensiveEPA: stats.Mean(def),
	}, true
}
