package model

import "time"

// Key identifies one team in one season-week.
type Key struct {
	Season int    `json:"season"`
	Week   int    `json:"week"`
	Team   string `json:"team"`
}

// Keyed is implemented by every row type the filters operate on.
type Keyed interface {
	Key() Key
}

// Grouped rows also carry the team's conference and division.
type Grouped interface {
	Keyed
	Grouping() (conference, division string)
}

// GameRecord is one team's participation in one game.
// Spread is from the team's side: negative means favored.
type GameRecord struct {
	Season     int                 `json:"season"`
	Week       int                 `json:"week"`
	Team       string              `json:"team"`
	Opponent   string              `json:"opponent"`
	Conference string              `json:"conference,omitempty"`
	Division   string              `json:"division,omitempty"`
	GameDate   Optional[time.Time] `json:"game_date"`

	PointsFor     Float `json:"points_for"`
	PointsAgainst Float `json:"points_against"`
	Spread        Float `json:"spread"`
	TotalLine     Float `json:"total_line"`

	Home       Optional[bool] `json:"home_flag"`
	Divisional Optional[bool] `json:"divisional_flag"`

	// SpreadCover and TotalCover are 0 or 1 when present and override derivation.
	SpreadCover Optional[int] `json:"spread_cover"`
	TotalCover  Optional[int] `json:"total_cover"`
}

// Key implements Keyed.
func (g GameRecord) Key() Key { return Key{Season: g.Season, Week: g.Week, Team: g.Team} }

// Grouping implements Grouped.
func (g GameRecord) Grouping() (string, string) { return g.Conference, g.Division }

// TeamWeekMetric is a team's rolling efficiency snapshot for a season-week.
// Any metric may be absent depending on the dataset vintage.
type TeamWeekMetric struct {
	Season     int    `json:"season"`
	Week       int    `json:"week"`
	Team       string `json:"team"`
	Conference string `json:"conference,omitempty"`
	Division   string `json:"division,omitempty"`

	OffensiveEPA         Float `json:"offensive_epa"`
	DefensiveEPA         Float `json:"defensive_epa"`
	PassEPA              Float `json:"pass_epa"`
	RunEPA               Float `json:"run_epa"`
	PassEPAAllowed       Float `json:"pass_epa_allowed"`
	RunEPAAllowed        Float `json:"run_epa_allowed"`
	OpponentOffensiveEPA Float `json:"opponent_offensive_epa"`
	OpponentDefensiveEPA Float `json:"opponent_defensive_epa"`

	PointsScored  Float `json:"points_scored"`
	PointsAllowed Float `json:"points_allowed"`
}

// Key implements Keyed.
func (m TeamWeekMetric) Key() Key { return Key{Season: m.Season, Week: m.Week, Team: m.Team} }

// Grouping implements Grouped.
func (m TeamWeekMetric) Grouping() (string, string) { return m.Conference, m.Division }

// PlayerGradeRow is one player's grades for a team-week.
type PlayerGradeRow struct {
	Season   int    `json:"season"`
	Week     int    `json:"week"`
	Team     string `json:"team"`
	Player   string `json:"player,omitempty"`
	Position string `json:"position"`

	PassBlock  Float `json:"pass_block_grade"`
	RunBlock   Float `json:"run_block_grade"`
	Pass       Float `json:"pass_grade"`
	Rush       Float `json:"rush_grade"`
	Receiving  Float `json:"receiving_grade"`
	Offense    Float `json:"offense_grade"`
	RunDefense Float `json:"run_defense_grade"`
	Coverage   Float `json:"coverage_grade"`
	Defense    Float `json:"defense_grade"`
	PassRush   Float `json:"pass_rush_grade"`
}

// Key implements Keyed.
func (p PlayerGradeRow) Key() Key { return Key{Season: p.Season, Week: p.Week, Team: p.Team} }
