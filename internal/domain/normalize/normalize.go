package normalize

import (
	"github.com/okian/edgeboard/internal/domain/model"
	"github.com/okian/edgeboard/internal/domain/table"
)

// Column synonyms, most preferred first.
var (
	TeamColumns          = []string{"team", "team_name"}
	opponentColumns      = []string{"opponent", "opponent_team", "opp"}
	seasonColumns        = []string{"season"}
	weekColumns          = []string{"week"}
	conferenceColumns    = []string{"conference", "team_conference"}
	divisionColumns      = []string{"division", "team_division"}
	dateColumns          = []string{"game_date", "gameday", "date"}
	pointsForColumns     = []string{"points_for", "score", "points_scored"}
	pointsAgainstColumns = []string{"points_against", "against_score", "points_allowed"}
	spreadColumns        = []string{"spread", "spread_line"}
	totalColumns         = []string{"total_line", "total"}
	homeColumns          = []string{"home_flag", "is_home", "home"}
	divisionalColumns    = []string{"divisional_flag", "div_game"}
	spreadCoverColumns   = []string{"spread_cover", "ats_cover"}
	totalCoverColumns    = []string{"total_cover", "over_cover"}
)

// columns resolves synonyms against one table header.
type columns struct {
	t *table.Table
}

// pick returns the position of the first synonym in the header, or -1.
func (c columns) pick(names []string) int {
	for _, n := range names {
		if i := c.t.Index(n); i >= 0 {
			return i
		}
	}
	return -1
}

// ResolveTeamColumn returns the team column name, "team" before "team_name",
// or "" when the table has neither.
func ResolveTeamColumn(t *table.Table) string {
	for _, n := range TeamColumns {
		if t.Has(n) {
			return n
		}
	}
	return ""
}

// keyCols locates the season, week and team shared by every row type.
type keyCols struct {
	season, week, team int
}

func (c columns) keys() keyCols {
	return keyCols{season: c.pick(seasonColumns), week: c.pick(weekColumns), team: c.pick(TeamColumns)}
}

// read is false when season or week does not parse.
func (k keyCols) read(t *table.Table, i int) (model.Key, bool) {
	season, okS := Int(t.Cell(i, k.season)).Get()
	week, okW := Int(t.Cell(i, k.week)).Get()
	if !okS || !okW {
		return model.Key{}, false
	}
	return model.Key{Season: season, Week: week, Team: text(t.Cell(i, k.team))}, true
}

// Games normalizes a game-level table. Rows without a parseable season and
// week are dropped. The home flag falls back to comparing against a
// home_team column when no flag column exists.
func Games(t *table.Table) []model.GameRecord {
	out := make([]model.GameRecord, 0, t.Len())
	if t.Empty() {
		return out
	}
	c := columns{t: t}
	var (
		keys          = c.keys()
		opponent      = c.pick(opponentColumns)
		conference    = c.pick(conferenceColumns)
		division      = c.pick(divisionColumns)
		date          = c.pick(dateColumns)
		pointsFor     = c.pick(pointsForColumns)
		pointsAgainst = c.pick(pointsAgainstColumns)
		spread        = c.pick(spreadColumns)
		total         = c.pick(totalColumns)
		home          = c.pick(homeColumns)
		homeTeam      = t.Index("home_team")
		divisional    = c.pick(divisionalColumns)
		spreadCover   = c.pick(spreadCoverColumns)
		totalCover    = c.pick(totalCoverColumns)
	)

	for i := 0; i < t.Len(); i++ {
		k, ok := keys.read(t, i)
		if !ok {
			continue
		}
		g := model.GameRecord{
			Season:        k.Season,
			Week:          k.Week,
			Team:          k.Team,
			Opponent:      text(t.Cell(i, opponent)),
			Conference:    text(t.Cell(i, conference)),
			Division:      text(t.Cell(i, division)),
			GameDate:      Date(t.Cell(i, date)),
			PointsFor:     Float(t.Cell(i, pointsFor)),
			PointsAgainst: Float(t.Cell(i, pointsAgainst)),
			Spread:        Float(t.Cell(i, spread)),
			TotalLine:     Float(t.Cell(i, total)),
			Home:          Bool(t.Cell(i, home)),
			Divisional:    Bool(t.Cell(i, divisional)),
			SpreadCover:   Flag(t.Cell(i, spreadCover)),
			TotalCover:    Flag(t.Cell(i, totalCover)),
		}
		if !g.Home.Valid() && homeTeam >= 0 && g.Team != "" {
			if ht := text(t.Cell(i, homeTeam)); ht != "" {
				g.Home = model.Some(ht == g.Team)
			}
		}
		out = append(out, g)
	}
	return out
}

var metricColumns = struct {
	offense, defense, pass, run, passAllowed, runAllowed, oppOffense, oppDefense, scored, allowed []string
}{
	offense:     []string{"offensive_epa", "epa_per_play_offense", "off_epa"},
	defense:     []string{"defensive_epa", "epa_per_play_defense", "def_epa", "defensive_epa_allowed"},
	pass:        []string{"pass_epa", "off_pass_epa"},
	run:         []string{"run_epa", "off_run_epa"},
	passAllowed: []string{"pass_epa_allowed", "def_pass_epa"},
	runAllowed:  []string{"run_epa_allowed", "def_run_epa"},
	oppOffense:  []string{"opponent_offensive_epa", "opp_offensive_epa"},
	oppDefense:  []string{"opponent_defensive_epa", "opp_defensive_epa"},
	scored:      []string{"points_scored", "points_for", "score"},
	allowed:     []string{"points_allowed", "points_against", "against_score"},
}

// TeamWeekMetrics normalizes a team-week metrics table.
func TeamWeekMetrics(t *table.Table) []model.TeamWeekMetric {
	out := make([]model.TeamWeekMetric, 0, t.Len())
	if t.Empty() {
		return out
	}
	c := columns{t: t}
	var (
		keys        = c.keys()
		conference  = c.pick(conferenceColumns)
		division    = c.pick(divisionColumns)
		offense     = c.pick(metricColumns.offense)
		defense     = c.pick(metricColumns.defense)
		pass        = c.pick(metricColumns.pass)
		run         = c.pick(metricColumns.run)
		passAllowed = c.pick(metricColumns.passAllowed)
		runAllowed  = c.pick(metricColumns.runAllowed)
		oppOffense  = c.pick(metricColumns.oppOffense)
		oppDefense  = c.pick(metricColumns.oppDefense)
		scored      = c.pick(metricColumns.scored)
		allowed     = c.pick(metricColumns.allowed)
	)

	for i := 0; i < t.Len(); i++ {
		k, ok := keys.read(t, i)
		if !ok {
			continue
		}
		out = append(out, model.TeamWeekMetric{
			Season:               k.Season,
			Week:                 k.Week,
			Team:                 k.Team,
			Conference:           text(t.Cell(i, conference)),
			Division:             text(t.Cell(i, division)),
			OffensiveEPA:         Float(t.Cell(i, offense)),
			DefensiveEPA:         Float(t.Cell(i, defense)),
			PassEPA:              Float(t.Cell(i, pass)),
			RunEPA:               Float(t.Cell(i, run)),
			PassEPAAllowed:       Float(t.Cell(i, passAllowed)),
			RunEPAAllowed:        Float(t.Cell(i, runAllowed)),
			OpponentOffensiveEPA: Float(t.Cell(i, oppOffense)),
			OpponentDefensiveEPA: Float(t.Cell(i, oppDefense)),
			PointsScored:         Float(t.Cell(i, scored)),
			PointsAllowed:        Float(t.Cell(i, allowed)),
		})
	}
	return out
}

var gradeColumns = struct {
	player, position, passBlock, runBlock, pass, rush, receiving, offense, runDefense, coverage, defense, passRush []string
}{
	player:     []string{"player", "player_name"},
	position:   []string{"position", "pos"},
	passBlock:  []string{"pass_block_grade", "grades_pass_block"},
	runBlock:   []string{"run_block_grade", "grades_run_block"},
	pass:       []string{"pass_grade", "grades_pass"},
	rush:       []string{"rush_grade", "grades_run"},
	receiving:  []string{"receiving_grade", "grades_pass_route"},
	offense:    []string{"offense_grade", "grades_offense"},
	runDefense: []string{"run_defense_grade", "grades_run_defense"},
	coverage:   []string{"coverage_grade", "grades_coverage_defense"},
	defense:    []string{"defense_grade", "grades_defense"},
	passRush:   []string{"pass_rush_grade", "grades_pass_rush_defense"},
}

// PlayerGrades normalizes a depth-chart grade table.
func PlayerGrades(t *table.Table) []model.PlayerGradeRow {
	out := make([]model.PlayerGradeRow, 0, t.Len())
	if t.Empty() {
		return out
	}
	c := columns{t: t}
	var (
		keys       = c.keys()
		player     = c.pick(gradeColumns.player)
		position   = c.pick(gradeColumns.position)
		passBlock  = c.pick(gradeColumns.passBlock)
		runBlock   = c.pick(gradeColumns.runBlock)
		pass       = c.pick(gradeColumns.pass)
		rush       = c.pick(gradeColumns.rush)
		receiving  = c.pick(gradeColumns.receiving)
		offense    = c.pick(gradeColumns.offense)
		runDefense = c.pick(gradeColumns.runDefense)
		coverage   = c.pick(gradeColumns.coverage)
		defense    = c.pick(gradeColumns.defense)
		passRush   = c.pick(gradeColumns.passRush)
	)

	for i := 0; i < t.Len(); i++ {
		k, ok := keys.read(t, i)
		if !ok {
			continue
		}
		out = append(out, model.PlayerGradeRow{
			Season:     k.Season,
			Week:       k.Week,
			Team:       k.Team,
			Player:     text(t.Cell(i, player)),
			Position:   text(t.Cell(i, position)),
			PassBlock:  Float(t.Cell(i, passBlock)),
			RunBlock:   Float(t.Cell(i, runBlock)),
			Pass:       Float(t.Cell(i, pass)),
			Rush:       Float(t.Cell(i, rush)),
			Receiving:  Float(t.Cell(i, receiving)),
			Offense:    Float(t.Cell(i, offense)),
			RunDefense: Float(t.Cell(i, runDefense)),
			Coverage:   Float(t.Cell(i, coverage)),
			Defense:    Float(t.Cell(i, defense)),
			PassRush:   Float(t.Cell(i, passRush)),
		})
	}
	return out
}
