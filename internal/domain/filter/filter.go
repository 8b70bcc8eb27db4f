// Package filter narrows normalized rows by season, week, team and grouping.
// Every function returns a new slice and never modifies its input.
package filter

import (
	"slices"

	"github.com/okian/edgeboard/internal/domain/model"
)

// Selectors that keep every row in ByDivisionConference.
const (
	All      = "All"
	AllTeams = "All Teams"
)

// Weeks restricts rows by week. It is either a WeekRange or a WeekSet.
type Weeks interface {
	contains(week int) bool
}

// WeekRange matches Min <= week <= Max.
type WeekRange struct {
	Min, Max int
}

func (r WeekRange) contains(week int) bool { return week >= r.Min && week <= r.Max }

// WeekSet matches the listed weeks. An empty set matches nothing.
type WeekSet []int

func (s WeekSet) contains(week int) bool { return slices.Contains(s, week) }

// Selection is the explicit set of narrowing choices. Zero fields do not filter.
type Selection struct {
	Seasons []int
	Weeks   Weeks
	Teams   []string
}

// Apply keeps rows matching every set field of sel.
func Apply[R model.Keyed](rows []R, sel Selection) []R {
	seasons := setOf(sel.Seasons)
	teams := setOf(sel.Teams)

	out := make([]R, 0, len(rows))
	for _, r := range rows {
		k := r.Key()
		if seasons != nil {
			if _, ok := seasons[k.Season]; !ok {
				continue
			}
		}
		if sel.Weeks != nil && !sel.Weeks.contains(k.Week) {
			continue
		}
		if teams != nil {
			if _, ok := teams[k.Team]; !ok {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

// ThroughWeek keeps one season, optionally cut at week. An absent week keeps the whole season.
func ThroughWeek[R model.Keyed](rows []R, season int, week model.Optional[int]) []R {
	cut, bounded := week.Get()
	out := make([]R, 0, len(rows))
	for _, r := range rows {
		k := r.Key()
		if k.Season != season || (bounded && k.Week > cut) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Team keeps one team's rows.
func Team[R model.Keyed](rows []R, team string) []R {
	return Apply(rows, Selection{Teams: []string{team}})
}

// ByDivisionConference keeps rows whose conference, or failing that division,
// equals selector. All, AllTeams and an unmatched selector return rows unchanged.
func ByDivisionConference[R model.Grouped](rows []R, selector string) []R {
	if selector == "" || selector == All || selector == AllTeams {
		return rows
	}
	byConference := func(r R) bool {
		c, _ := r.Grouping()
		return c == selector
	}
	byDivision := func(r R) bool {
		_, d := r.Grouping()
		return d == selector
	}

	for _, match := range []func(R) bool{byConference, byDivision} {
		if slices.ContainsFunc(rows, match) {
			out := make([]R, 0, len(rows))
			for _, r := range rows {
				if match(r) {
					out = append(out, r)
				}
			}
			return out
		}
	}
	return rows
}

func setOf[T comparable](vs []T) map[T]struct{} {
	if len(vs) == 0 {
		return nil
	}
	m := make(map[T]struct{}, len(vs))
	for _, v := range vs {
		m[v] = struct{}{}
	}
	return m
}
