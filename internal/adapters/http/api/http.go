// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/edgeboard/internal/adapters/datasource"
	"github.com/okian/edgeboard/internal/app"
	"github.com/okian/edgeboard/internal/domain/aggregate"
	"github.com/okian/edgeboard/internal/domain/model"
	"github.com/okian/edgeboard/internal/domain/records"
	"github.com/okian/edgeboard/pkg/logger"
)

// Dependencies required by HTTP handlers. app.Service satisfies it.
type Dependencies interface {
	ATS(ctx context.Context, q app.Query) ([]records.ATSRecord, error)
	OverUnder(ctx context.Context, q app.Query) ([]records.OURecord, error)
	Situational(ctx context.Context, q app.Query) (map[records.Situation][]records.ATSRecord, error)

	TeamSeason(ctx context.Context, team string, season int) (app.TeamSeasonReport, error)
	TeamTrends(ctx context.Context, team string, n int) ([]model.TeamWeekMetric, error)
	InjuryImpact(ctx context.Context, team string, season int) (app.InjuryReport, error)

	League(ctx context.Context, season int, throughWeek model.Optional[int], group string) ([]aggregate.LeagueRow, error)
	Edges(ctx context.Context, season int, group string) ([]aggregate.EdgeRow, error)
	Matchup(ctx context.Context, team1, team2 string, season int, week model.Optional[int]) (app.MatchupReport, error)
	Options(ctx context.Context, season model.Optional[int]) (app.Options, error)
}

// Server wires HTTP routes for the analytics API.
type Server struct {
	deps   Dependencies
	health *HealthHandler
	logger logger.Logger
}

// NewServer creates a new API server.
func NewServer(deps Dependencies, opts ...Option) *Server {
	s := &Server{
		deps:   deps,
		health: NewHealthHandler(),
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	route := func(pattern, endpoint string, h http.HandlerFunc) {
		mux.Handle(pattern, RequestID(MetricsMiddleware(h, endpoint), s.logger))
	}

	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.health.HandleHealth, "healthz"))
	mux.Handle("GET /metrics", s.health.MetricsHandler())

	route("GET /api/ats", "ats", s.handleATS)
	route("GET /api/ou", "ou", s.handleOverUnder)
	route("GET /api/situational", "situational", s.handleSituational)
	route("GET /api/teams/{team}/season", "team_season", s.handleTeamSeason)
	route("GET /api/teams/{team}/trends", "team_trends", s.handleTeamTrends)
	route("GET /api/teams/{team}/injury-impact", "injury_impact", s.handleInjuryImpact)
	route("GET /api/league", "league", s.handleLeague)
	route("GET /api/edges", "edges", s.handleEdges)
	route("GET /api/matchup", "matchup", s.handleMatchup)
	route("GET /api/options", "options", s.handleOptions)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// fail maps a service error onto a status and code.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrBadRequest):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, datasource.ErrNotFound):
		writeError(w, http.StatusNotFound, "dataset_not_found", err)
	case errors.Is(err, app.ErrLoad):
		s.logger.Error(r.Context(), "request failed", logger.String("path", r.URL.Path), logger.Error(err))
		writeError(w, http.StatusBadGateway, "load_failed", err)
	default:
		s.logger.Error(r.Context(), "request failed", logger.String("path", r.URL.Path), logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
