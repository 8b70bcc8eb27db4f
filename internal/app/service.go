// Package app provides the read-only analytics service behind the HTTP API.
// Each method loads the datasets it needs, normalizes them and runs one
// calculator over an explicit selection.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/edgeboard/internal/adapters/datasource"
	"github.com/okian/edgeboard/internal/domain/aggregate"
	"github.com/okian/edgeboard/internal/domain/filter"
	"github.com/okian/edgeboard/internal/domain/grades"
	"github.com/okian/edgeboard/internal/domain/model"
	"github.com/okian/edgeboard/internal/domain/normalize"
	"github.com/okian/edgeboard/internal/domain/records"
	"github.com/okian/edgeboard/internal/domain/table"
	"github.com/okian/edgeboard/pkg/logger"
	"github.com/okian/edgeboard/pkg/metrics"
)

// Query narrows the games or metrics a calculator sees. Group is a
// division/conference selector; "" or filter.All keeps every row.
type Query struct {
	Selection filter.Selection
	Group     string
}

// Service implements the API dependencies.
type Service struct {
	source datasource.Source
	now    func() time.Time
	logger logger.Logger
}

// New creates a Service reading from src.
func New(src datasource.Source, opts ...Option) *Service {
	s := &Service{
		source: src,
		now:    time.Now,
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) fetch(ctx context.Context, id string) (*table.Table, error) {
	t, err := s.source.Fetch(ctx, id)
	if err != nil {
		s.logger.Error(ctx, "dataset load failed", logger.String("dataset", id), logger.Error(err))
		return nil, fmt.Errorf("%w %s: %w", ErrLoad, id, err)
	}
	return t, nil
}

func (s *Service) games(ctx context.Context) ([]model.GameRecord, error) {
	t, err := s.fetch(ctx, datasource.Games)
	if err != nil {
		return nil, err
	}
	return normalize.Games(t), nil
}

func (s *Service) metrics(ctx context.Context) ([]model.TeamWeekMetric, error) {
	t, err := s.fetch(ctx, datasource.TeamWeekMetrics)
	if err != nil {
		return nil, err
	}
	return normalize.TeamWeekMetrics(t), nil
}

func (s *Service) lineup(ctx context.Context, offenseID, defenseID string) (grades.Lineup, error) {
	off, err := s.fetch(ctx, offenseID)
	if err != nil {
		return grades.Lineup{}, err
	}
	def, err := s.fetch(ctx, defenseID)
	if err != nil {
		return grades.Lineup{}, err
	}
	return grades.Lineup{Offense: normalize.PlayerGrades(off), Defense: normalize.PlayerGrades(def)}, nil
}

func (s *Service) weekly(ctx context.Context) (grades.Lineup, error) {
	return s.lineup(ctx, datasource.WeeklyStartersOffense, datasource.WeeklyStartersDefense)
}

func (s *Service) healthy(ctx context.Context) (grades.Lineup, error) {
	return s.lineup(ctx, datasource.HealthyStartersOffense, datasource.HealthyStartersDefense)
}

// observe records calculator latency and output size.
func observe(calculator string, start time.Time, rows int) {
	metrics.RecordCalculator(calculator, float64(time.Since(start).Milliseconds()), rows)
}

func selectGames(games []model.GameRecord, q Query) []model.GameRecord {
	return filter.ByDivisionConference(filter.Apply(games, q.Selection), q.Group)
}

// ATS returns against-the-spread records for the selected games.
func (s *Service) ATS(ctx context.Context, q Query) ([]records.ATSRecord, error) {
	games, err := s.games(ctx)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	out := records.ATS(selectGames(games, q))
	observe("ats", start, len(out))
	return out, nil
}

// OverUnder returns over/under records for the selected games.
func (s *Service) OverUnder(ctx context.Context, q Query) ([]records.OURecord, error) {
	games, err := s.games(ctx)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	out := records.OverUnder(selectGames(games, q))
	observe("over_under", start, len(out))
	return out, nil
}

// Situational returns ATS records per situational split.
func (s *Service) Situational(ctx context.Context, q Query) (map[records.Situation][]records.ATSRecord, error) {
	games, err := s.games(ctx)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	out := records.Situational(selectGames(games, q))
	observe("situational", start, len(out))
	return out, nil
}

// TeamSeasonReport is the team header card: metric averages plus W-L strings.
type TeamSeasonReport struct {
	Team     string            `json:"team"`
	Season   int               `json:"season"`
	Averages aggregate.Summary `json:"averages"`
	Records  map[string]string `json:"records"`
}

// TeamSeason summarizes one team's season.
func (s *Service) TeamSeason(ctx context.Context, team string, season int) (TeamSeasonReport, error) {
	rows, err := s.metrics(ctx)
	if err != nil {
		return TeamSeasonReport{}, err
	}
	games, err := s.games(ctx)
	if err != nil {
		return TeamSeasonReport{}, err
	}
	start := time.Now()
	out := TeamSeasonReport{
		Team:     team,
		Season:   season,
		Averages: aggregate.TeamSeason(rows, team, season),
		Records:  records.TeamRecords(games, team, season),
	}
	observe("team_season", start, len(out.Averages))
	return out, nil
}

// TeamTrends returns a team's n most recent metric rows.
func (s *Service) TeamTrends(ctx context.Context, team string, n int) ([]model.TeamWeekMetric, error) {
	rows, err := s.metrics(ctx)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	out := aggregate.TeamTrends(rows, team, n)
	observe("team_trends", start, len(out))
	return out, nil
}

// InjuryReport carries per-week impact rows and their rollups.
type InjuryReport struct {
	Team          string               `json:"team"`
	Season        int                  `json:"season"`
	Rows          []grades.ImpactRow   `json:"rows"`
	Summary       grades.ImpactSummary `json:"summary"`
	SeasonAverage []grades.ImpactRow   `json:"season_average"`
}

// InjuryImpact compares a team's healthy and weekly starters across a season.
func (s *Service) InjuryImpact(ctx context.Context, team string, season int) (InjuryReport, error) {
	healthy, err := s.healthy(ctx)
	if err != nil {
		return InjuryReport{}, err
	}
	weekly, err := s.weekly(ctx)
	if err != nil {
		return InjuryReport{}, err
	}
	start := time.Now()
	rows := grades.InjuryImpact(healthy, weekly, team, season)
	out := InjuryReport{
		Team:          team,
		Season:        season,
		Rows:          rows,
		Summary:       grades.SummarizeImpact(rows),
		SeasonAverage: grades.SeasonAverage(rows),
	}
	observe("injury_impact", start, len(rows))
	return out, nil
}

// League averages every team's season through an optional week.
func (s *Service) League(ctx context.Context, season int, throughWeek model.Optional[int], group string) ([]aggregate.LeagueRow, error) {
	rows, err := s.metrics(ctx)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	out := aggregate.LeagueSeason(filter.ByDivisionConference(rows, group), season, throughWeek)
	observe("league", start, len(out))
	return out, nil
}

// Edges ranks teams by combined offensive and defensive EPA for the latest week of season.
func (s *Service) Edges(ctx context.Context, season int, group string) ([]aggregate.EdgeRow, error) {
	rows, err := s.metrics(ctx)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	out := aggregate.EdgeScores(filter.ByDivisionConference(rows, group), season)
	observe("edges", start, len(out))
	return out, nil
}

// MatchupReport puts two teams side by side.
type MatchupReport struct {
	Team1        string                   `json:"team1"`
	Team2        string                   `json:"team2"`
	Season       int                      `json:"season"`
	Week         model.Optional[int]      `json:"week"`
	Differential map[string]float64       `json:"differential"`
	Teams        []aggregate.Comparison   `json:"teams"`
	Grades       []grades.GradeComparison `json:"grades"`
}

// Matchup compares team1 and team2 for season. Without a week, EPA uses the
// season mean and grades use each team's latest graded week.
func (s *Service) Matchup(ctx context.Context, team1, team2 string, season int, week model.Optional[int]) (MatchupReport, error) {
	rows, err := s.metrics(ctx)
	if err != nil {
		return MatchupReport{}, err
	}
	weekly, err := s.weekly(ctx)
	if err != nil {
		return MatchupReport{}, err
	}
	start := time.Now()
	out := MatchupReport{
		Team1:        team1,
		Team2:        team2,
		Season:       season,
		Week:         week,
		Differential: aggregate.EPADifferential(rows, team1, team2, season, week),
		Teams: aggregate.CompareTeams(
			team1, aggregate.TeamSeason(rows, team1, season),
			team2, aggregate.TeamSeason(rows, team2, season),
		),
		Grades: grades.Compare(
			team1, grades.Aggregate(weekly, team1, season, gradedWeek(weekly, team1, season, week)),
			team2, grades.Aggregate(weekly, team2, season, gradedWeek(weekly, team2, season, week)),
		),
	}
	observe("matchup", start, len(out.Teams)+len(out.Grades))
	return out, nil
}

// gradedWeek is week when given, otherwise the team's latest graded week.
// Zero matches no rows, which leaves every grade absent.
func gradedWeek(l grades.Lineup, team string, season int, week model.Optional[int]) int {
	if w, ok := week.Get(); ok {
		return w
	}
	weeks := filter.AvailableWeeks(filter.Team(l.Offense, team), model.Some(season))
	if len(weeks) == 0 {
		return 0
	}
	return weeks[len(weeks)-1]
}

// Options lists selector values present in the games dataset.
type Options struct {
	Seasons       []int    `json:"seasons"`
	Weeks         []int    `json:"weeks"`
	Teams         []string `json:"teams"`
	Groups        []string `json:"groups"`
	CurrentSeason int      `json:"current_season"`
	CurrentWeek   int      `json:"current_week"`
}

// Options returns selector values. Weeks are limited to season when given.
func (s *Service) Options(ctx context.Context, season model.Optional[int]) (Options, error) {
	games, err := s.games(ctx)
	if err != nil {
		return Options{}, err
	}
	start := time.Now()
	cs, cw := aggregate.CurrentWeek(games, s.now())
	out := Options{
		Seasons:       filter.AvailableSeasons(games),
		Weeks:         filter.AvailableWeeks(games, season),
		Teams:         filter.AvailableTeams(games),
		Groups:        filter.DivisionConferenceOptions(games),
		CurrentSeason: cs,
		CurrentWeek:   cw,
	}
	observe("options", start, len(out.Teams))
	return out, nil
}
