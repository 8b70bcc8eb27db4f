// Package grades rolls player grades up into position-group categories and
// measures injury impact as weekly minus healthy lineup grades.
package grades

import (
	"strings"

	"github.com/okian/edgeboard/internal/domain/filter"
	"github.com/okian/edgeboard/internal/domain/model"
	"github.com/okian/edgeboard/internal/domain/stats"
)

// Lineup holds one roster universe split by side of the ball.
type Lineup struct {
	Offense []model.PlayerGradeRow
	Defense []model.PlayerGradeRow
}

type side int

const (
	offense side = iota
	defense
)

var offensiveLine = positions("T", "G", "C", "LT", "RT", "LG", "RG")

// rule averages grade over the rows of one side whose position is in
// positions. A nil positions set takes every row of that side.
type rule struct {
	category  model.Category
	side      side
	positions map[string]struct{}
	grade     func(model.PlayerGradeRow) model.Float
}

// rules is fixed. coverage repeats pass_defense on purpose; both read the
// coverage grade.
var rules = []rule{
	{model.PassBlocking, offense, offensiveLine, func(p model.PlayerGradeRow) model.Float { return p.PassBlock }},
	{model.RunBlocking, offense, offensiveLine, func(p model.PlayerGradeRow) model.Float { return p.RunBlock }},
	{model.QBPassing, offense, positions("QB"), func(p model.PlayerGradeRow) model.Float { return p.Pass }},
	{model.QBRunning, offense, positions("QB"), func(p model.PlayerGradeRow) model.Float { return p.Rush }},
	{model.Receiving, offense, positions("WR", "TE"), func(p model.PlayerGradeRow) model.Float { return p.Receiving }},
	{model.RBRushing, offense, positions("RB"), func(p model.PlayerGradeRow) model.Float { return p.Offense }},
	{model.RunDefense, defense, nil, func(p model.PlayerGradeRow) model.Float { return p.RunDefense }},
	{model.PassDefense, defense, nil, func(p model.PlayerGradeRow) model.Float { return p.Coverage }},
	{model.OverallDefense, defense, nil, func(p model.PlayerGradeRow) model.Float { return p.Defense }},
	{model.PassRush, defense, nil, func(p model.PlayerGradeRow) model.Float { return p.PassRush }},
	{model.Coverage, defense, nil, func(p model.PlayerGradeRow) model.Float { return p.Coverage }},
}

func positions(ps ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(ps))
	for _, p := range ps {
		m[p] = struct{}{}
	}
	return m
}

func (r rule) matches(p model.PlayerGradeRow) bool {
	if r.positions == nil {
		return true
	}
	_, ok := r.positions[strings.ToUpper(strings.TrimSpace(p.Position))]
	return ok
}

// Aggregate computes every category for one team-week. Categories with no
// matching graded rows are absent.
func Aggregate(l Lineup, team string, season, week int) model.PositionGroupGrade {
	sel := filter.Selection{Seasons: []int{season}, Weeks: filter.WeekSet{week}, Teams: []string{team}}
	rows := [...][]model.PlayerGradeRow{
		offense: filter.Apply(l.Offense, sel),
		defense: filter.Apply(l.Defense, sel),
	}

	out := make(model.PositionGroupGrade, len(rules))
	for _, r := range rules {
		vals := make([]model.Float, 0, len(rows[r.side]))
		for _, p := range rows[r.side] {
			if r.matches(p) {
				vals = append(vals, r.grade(p))
			}
		}
		out[r.category] = stats.Mean(vals)
	}
	return out
}

// Advantage labels used by Compare when neither team is named.
const (
	Even         = "Even"
	NotAvailable = "N/A"
)

// GradeComparison is one category side by side.
type GradeComparison struct {
	Category  model.Category `json:"category"`
	GradeA    model.Float    `json:"grade_a"`
	GradeB    model.Float    `json:"grade_b"`
	Advantage string         `json:"advantage"`
	Margin    model.Float    `json:"margin"`
}

// Compare lines up two teams' categories. Margin is the absolute difference
// and is absent when either grade is.
func Compare(nameA string, a model.PositionGroupGrade, nameB string, b model.PositionGroupGrade) []GradeComparison {
	out := make([]GradeComparison, 0, len(model.Categories))
	for _, c := range model.Categories {
		gc := GradeComparison{Category: c, GradeA: a[c], GradeB: b[c], Advantage: NotAvailable}
		av, aok := gc.GradeA.Get()
		bv, bok := gc.GradeB.Get()
		if aok && bok {
			diff := av - bv
			switch {
			case diff > 0:
				gc.Advantage = nameA
			case diff < 0:
				gc.Advantage = nameB
			default:
				gc.Advantage = Even
			}
			if diff < 0 {
				diff = -diff
			}
			gc.Margin = model.Some(diff)
		}
		out = append(out, gc)
	}
	return out
}
