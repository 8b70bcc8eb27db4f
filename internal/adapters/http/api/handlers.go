package api

import (
	"net/http"
	"strings"
)

func (s *Server) handleATS(w http.ResponseWriter, r *http.Request) {
	const op = "api.ats"
	q, err := parseQuery(op, r.URL.Query())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out, err := s.deps.ATS(r.Context(), q)
	if err != nil {
		s.fail(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleOverUnder(w http.ResponseWriter, r *http.Request) {
	const op = "api.ou"
	q, err := parseQuery(op, r.URL.Query())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out, err := s.deps.OverUnder(r.Context(), q)
	if err != nil {
		s.fail(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSituational(w http.ResponseWriter, r *http.Request) {
	const op = "api.situational"
	q, err := parseQuery(op, r.URL.Query())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out, err := s.deps.Situational(r.Context(), q)
	if err != nil {
		s.fail(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func pathTeam(op string, r *http.Request) (string, error) {
	team := strings.TrimSpace(r.PathValue("team"))
	if team == "" {
		return "", NewKind(op, ErrBadRequest)
	}
	return team, nil
}

func (s *Server) handleTeamSeason(w http.ResponseWriter, r *http.Request) {
	const op = "api.team_season"
	team, err := pathTeam(op, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	season, err := requiredInt(op, r.URL.Query(), "season")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out, err := s.deps.TeamSeason(r.Context(), team, season)
	if err != nil {
		s.fail(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleTeamTrends(w http.ResponseWriter, r *http.Request) {
	const op = "api.team_trends"
	team, err := pathTeam(op, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	n, err := optionalInt(op, r.URL.Query(), "n")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	rows := n.Or(defaultTrendRows)
	if rows < 1 || rows > maxTrendRows {
		s.fail(w, r, WrapKind(op, ErrBadRequest, "n must be between 1 and %d", maxTrendRows))
		return
	}
	out, err := s.deps.TeamTrends(r.Context(), team, rows)
	if err != nil {
		s.fail(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleInjuryImpact(w http.ResponseWriter, r *http.Request) {
	const op = "api.injury_impact"
	team, err := pathTeam(op, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	season, err := requiredInt(op, r.URL.Query(), "season")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out, err := s.deps.InjuryImpact(r.Context(), team, season)
	if err != nil {
		s.fail(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleLeague(w http.ResponseWriter, r *http.Request) {
	const op = "api.league"
	v := r.URL.Query()
	season, err := requiredInt(op, v, "season")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	through, err := optionalInt(op, v, "through_week")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out, err := s.deps.League(r.Context(), season, through, strings.TrimSpace(v.Get("group")))
	if err != nil {
		s.fail(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleEdges(w http.ResponseWriter, r *http.Request) {
	const op = "api.edges"
	v := r.URL.Query()
	season, err := requiredInt(op, v, "season")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out, err := s.deps.Edges(r.Context(), season, strings.TrimSpace(v.Get("group")))
	if err != nil {
		s.fail(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleMatchup(w http.ResponseWriter, r *http.Request) {
	const op = "api.matchup"
	v := r.URL.Query()
	team1, err := requiredString(op, v, "team1")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	team2, err := requiredString(op, v, "team2")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	season, err := requiredInt(op, v, "season")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	week, err := optionalInt(op, v, "week")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out, err := s.deps.Matchup(r.Context(), team1, team2, season, week)
	if err != nil {
		s.fail(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	const op = "api.options"
	season, err := optionalInt(op, r.URL.Query(), "season")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out, err := s.deps.Options(r.Context(), season)
	if err != nil {
		s.fail(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, out)
}
