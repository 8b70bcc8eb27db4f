package filter

import (
	"slices"

	"github.com/okian/edgeboard/internal/domain/model"
)

// AvailableTeams returns the sorted distinct non-empty teams.
func AvailableTeams[R model.Keyed](rows []R) []string {
	return distinct(rows, func(k model.Key) (string, bool) { return k.Team, k.Team != "" })
}

// AvailableSeasons returns the sorted distinct seasons.
func AvailableSeasons[R model.Keyed](rows []R) []int {
	return distinct(rows, func(k model.Key) (int, bool) { return k.Season, true })
}

// AvailableWeeks returns the sorted distinct weeks, optionally for one season.
func AvailableWeeks[R model.Keyed](rows []R, season model.Optional[int]) []int {
	s, one := season.Get()
	return distinct(rows, func(k model.Key) (int, bool) { return k.Week, !one || k.Season == s })
}

// DivisionConferenceOptions lists AllTeams, then sorted conferences, then sorted divisions.
func DivisionConferenceOptions[R model.Grouped](rows []R) []string {
	confs := make(map[string]struct{})
	divs := make(map[string]struct{})
	for _, r := range rows {
		c, d := r.Grouping()
		if c != "" {
			confs[c] = struct{}{}
		}
		if d != "" {
			divs[d] = struct{}{}
		}
	}
	out := []string{AllTeams}
	out = append(out, sortedKeys(confs)...)
	return append(out, sortedKeys(divs)...)
}

func distinct[R model.Keyed, T int | string](rows []R, pick func(model.Key) (T, bool)) []T {
	seen := make(map[T]struct{})
	for _, r := range rows {
		if v, ok := pick(r.Key()); ok {
			seen[v] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

func sortedKeys[T int | string](m map[T]struct{}) []T {
	out := make([]T, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
