// Package aggregate computes season summaries, rank-based edge scores and
// EPA differentials from team-week metrics.
package aggregate

import (
	"cmp"
	"slices"
	"strings"

	"github.com/okian/edgeboard/internal/domain/filter"
	"github.com/okian/edgeboard/internal/domain/model"
	"github.com/okian/edgeboard/internal/domain/stats"
)

// Summary keys.
const (
	AvgOffensiveEPA    = "avg_offensive_epa"
	AvgDefensiveEPA    = "avg_defensive_epa"
	AvgPassEPA         = "avg_pass_epa"
	AvgRunEPA          = "avg_run_epa"
	AvgPassEPAAllowed  = "avg_pass_epa_allowed"
	AvgRunEPAAllowed   = "avg_run_epa_allowed"
	AvgOppOffensiveEPA = "avg_opp_offensive_epa"
	AvgOppDefensiveEPA = "avg_opp_defensive_epa"
	AvgPointsScored    = "avg_points_scored"
	AvgPointsAllowed   = "avg_points_allowed"
)

type column struct {
	key string
	get func(model.TeamWeekMetric) model.Float
}

var columns = []column{
	{AvgOffensiveEPA, func(m model.TeamWeekMetric) model.Float { return m.OffensiveEPA }},
	{AvgDefensiveEPA, func(m model.TeamWeekMetric) model.Float { return m.DefensiveEPA }},
	{AvgPassEPA, func(m model.TeamWeekMetric) model.Float { return m.PassEPA }},
	{AvgRunEPA, func(m model.TeamWeekMetric) model.Float { return m.RunEPA }},
	{AvgPassEPAAllowed, func(m model.TeamWeekMetric) model.Float { return m.PassEPAAllowed }},
	{AvgRunEPAAllowed, func(m model.TeamWeekMetric) model.Float { return m.RunEPAAllowed }},
	{AvgOppOffensiveEPA, func(m model.TeamWeekMetric) model.Float { return m.OpponentOffensiveEPA }},
	{AvgOppDefensiveEPA, func(m model.TeamWeekMetric) model.Float { return m.OpponentDefensiveEPA }},
	{AvgPointsScored, func(m model.TeamWeekMetric) model.Float { return m.PointsScored }},
	{AvgPointsAllowed, func(m model.TeamWeekMetric) model.Float { return m.PointsAllowed }},
}

// Keys lists the summary keys in display order.
func Keys() []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = c.key
	}
	return out
}

// Summary maps summary keys to means. A key is missing when its source
// column had no values; it is never zero-filled.
type Summary map[string]float64

func summarize(rows []model.TeamWeekMetric) Summary {
	out := make(Summary, len(columns))
	vals := make([]model.Float, len(rows))
	for _, c := range columns {
		for i, r := range rows {
			vals[i] = c.get(r)
		}
		if mean, ok := stats.Mean(vals).Get(); ok {
			out[c.key] = mean
		}
	}
	return out
}

// TeamSeason averages every present metric for one team and season.
func TeamSeason(rows []model.TeamWeekMetric, team string, season int) Summary {
	if team == "" {
		return Summary{}
	}
	return summarize(filter.Apply(rows, filter.Selection{Seasons: []int{season}, Teams: []string{team}}))
}

// LeagueRow is one team's season averages.
type LeagueRow struct {
	Team     string  `json:"team"`
	Weeks    int     `json:"weeks"`
	Averages Summary `json:"averages"`
}

// LeagueSeason averages every team's rows for a season, optionally through a
// week. It is empty when no known metric has a value.
func LeagueSeason(rows []model.TeamWeekMetric, season int, throughWeek model.Optional[int]) []LeagueRow {
	out := []LeagueRow{}
	groups := groupByTeam(filter.ThroughWeek(rows, season, throughWeek))

	anyValue := false
	for _, team := range sortedTeams(groups) {
		s := summarize(groups[team])
		anyValue = anyValue || len(s) > 0
		out = append(out, LeagueRow{Team: team, Weeks: len(groups[team]), Averages: s})
	}
	if !anyValue {
		return []LeagueRow{}
	}
	return out
}

// Advantage labels used by CompareTeams when neither team is named.
const (
	Even         = "Even"
	NotAvailable = "N/A"
)

// Comparison is one metric side by side.
type Comparison struct {
	Metric    string      `json:"metric"`
	A         model.Float `json:"a"`
	B         model.Float `json:"b"`
	Advantage string      `json:"advantage"`
}

// CompareTeams lines up two season summaries key by key. Keys naming
// allowed, against or defensive values favor the lower number.
func CompareTeams(nameA string, a Summary, nameB string, b Summary) []Comparison {
	out := make([]Comparison, 0, len(columns))
	for _, key := range Keys() {
		c := Comparison{Metric: key, A: lookup(a, key), B: lookup(b, key), Advantage: NotAvailable}
		av, aok := c.A.Get()
		bv, bok := c.B.Get()
		if aok && bok {
			diff := cmp.Compare(av, bv)
			if lowerIsBetter(key) {
				diff = -diff
			}
			switch {
			case diff > 0:
				c.Advantage = nameA
			case diff < 0:
				c.Advantage = nameB
			default:
				c.Advantage = Even
			}
		}
		out = append(out, c)
	}
	return out
}

func lowerIsBetter(key string) bool {
	return strings.Contains(key, "allowed") || strings.Contains(key, "against") || strings.Contains(key, "defensive")
}

func lookup(s Summary, key string) model.Float {
	if v, ok := s[key]; ok {
		return model.Some(v)
	}
	return model.None[float64]()
}

func groupByTeam(rows []model.TeamWeekMetric) map[string][]model.TeamWeekMetric {
	out := make(map[string][]model.TeamWeekMetric)
	for _, r := range rows {
		if r.Team == "" {
			continue
		}
		out[r.Team] = append(out[r.Team], r)
	}
	return out
}

func sortedTeams[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
