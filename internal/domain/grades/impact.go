package grades

import (
	"github.com/okian/edgeboard/internal/domain/filter"
	"github.com/okian/edgeboard/internal/domain/model"
	"github.com/okian/edgeboard/internal/domain/stats"
)

// Status labels for an impact row.
const (
	MajorImpact   = "Major Impact"
	MinorImpact   = "Minor Impact"
	Upgrade       = "Upgrade"
	SlightUpgrade = "Slight Upgrade"
	NoChange      = "No Change"
	Unknown       = "Unknown"
)

// majorSwing is the grade difference beyond which an impact is major.
const majorSwing = 3

// ImpactRow compares the healthy and weekly lineups for one category and week.
type ImpactRow struct {
	Week       int            `json:"week"`
	Category   model.Category `json:"category"`
	Healthy    model.Float    `json:"healthy_grade"`
	Weekly     model.Float    `json:"weekly_grade"`
	Difference model.Float    `json:"difference"`
	Status     string         `json:"status"`
}

func newImpactRow(week int, c model.Category, healthy, weekly model.Float) ImpactRow {
	r := ImpactRow{Week: week, Category: c, Healthy: healthy, Weekly: weekly}
	h, okH := healthy.Get()
	w, okW := weekly.Get()
	if okH && okW {
		r.Difference = model.Some(w - h)
	}
	r.Status = status(r.Difference)
	return r
}

func status(diff model.Float) string {
	d, ok := diff.Get()
	switch {
	case !ok:
		return Unknown
	case d < -majorSwing:
		return MajorImpact
	case d < 0:
		return MinorImpact
	case d > majorSwing:
		return Upgrade
	case d > 0:
		return SlightUpgrade
	default:
		return NoChange
	}
}

// InjuryImpact compares healthy and weekly lineups for every week present in
// the weekly offense rows of team and season, one row per category per week.
func InjuryImpact(healthy, weekly Lineup, team string, season int) []ImpactRow {
	weeks := filter.AvailableWeeks(filter.Team(weekly.Offense, team), model.Some(season))
	out := make([]ImpactRow, 0, len(weeks)*len(model.Categories))
	for _, w := range weeks {
		h := Aggregate(healthy, team, season, w)
		a := Aggregate(weekly, team, season, w)
		for _, c := range model.Categories {
			out = append(out, newImpactRow(w, c, h[c], a[c]))
		}
	}
	return out
}

// ImpactSummary condenses a season of impact rows.
type ImpactSummary struct {
	Weeks               int            `json:"weeks"`
	ImpactedWeeks       int            `json:"impacted_weeks"`
	AverageWeeklyImpact model.Float    `json:"average_weekly_impact"`
	MostImpacted        model.Category `json:"most_impacted,omitempty"`
	MostImpactedDelta   model.Float    `json:"most_impacted_delta"`
}

// SummarizeImpact totals the present differences per week. A week is
// impacted when its total is negative. The most impacted category has the
// lowest mean difference; earlier categories win ties.
func SummarizeImpact(rows []ImpactRow) ImpactSummary {
	var s ImpactSummary
	if len(rows) == 0 {
		return s
	}

	byWeek := make(map[int][]model.Float)
	byCategory := make(map[model.Category][]model.Float)
	for _, r := range rows {
		byWeek[r.Week] = append(byWeek[r.Week], r.Difference)
		byCategory[r.Category] = append(byCategory[r.Category], r.Difference)
	}

	totals := make([]model.Float, 0, len(byWeek))
	for _, diffs := range byWeek {
		t := stats.Sum(diffs)
		if t < 0 {
			s.ImpactedWeeks++
		}
		totals = append(totals, model.Some(t))
	}
	s.Weeks = len(byWeek)
	s.AverageWeeklyImpact = stats.Mean(totals)

	for _, c := range model.Categories {
		m, ok := stats.Mean(byCategory[c]).Get()
		if !ok {
			continue
		}
		if best, has := s.MostImpactedDelta.Get(); !has || m < best {
			s.MostImpacted = c
			s.MostImpactedDelta = model.Some(m)
		}
	}
	return s
}

// SeasonAverage averages each category's healthy and weekly grades across
// weeks and rates the averaged difference. Rows come back in category order.
func SeasonAverage(rows []ImpactRow) []ImpactRow {
	healthy := make(map[model.Category][]model.Float)
	weekly := make(map[model.Category][]model.Float)
	for _, r := range rows {
		healthy[r.Category] = append(healthy[r.Category], r.Healthy)
		weekly[r.Category] = append(weekly[r.Category], r.Weekly)
	}

	out := make([]ImpactRow, 0, len(healthy))
	for _, c := range model.Categories {
		if _, ok := healthy[c]; !ok {
			continue
		}
		out = append(out, newImpactRow(0, c, stats.Mean(healthy[c]), stats.Mean(weekly[c])))
	}
	return out
}
