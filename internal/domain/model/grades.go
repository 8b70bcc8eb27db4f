package model

// Category is a position-group grade bucket.
type Category string

// Position-group categories in display order.
const (
	PassBlocking   Category = "pass_blocking"
	RunBlocking    Category = "run_blocking"
	QBPassing      Category = "qb_passing"
	QBRunning      Category = "qb_running"
	Receiving      Category = "receiving"
	RBRushing      Category = "rb_rushing"
	RunDefense     Category = "run_defense"
	PassDefense    Category = "pass_defense"
	OverallDefense Category = "overall_defense"
	PassRush       Category = "pass_rush"
	Coverage       Category = "coverage"
)

// Categories lists every category in display order.
var Categories = []Category{
	PassBlocking, RunBlocking, QBPassing, QBRunning, Receiving, RBRushing,
	RunDefense, PassDefense, OverallDefense, PassRush, Coverage,
}

// PositionGroupGrade maps each category to a mean grade for one team-week.
// Every category is present as a key; the value is absent when no rows matched.
type PositionGroupGrade map[Category]Float
