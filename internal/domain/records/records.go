// Package records derives betting and win-loss records from game rows.
package records

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/okian/edgeboard/internal/domain/model"
	"github.com/okian/edgeboard/internal/domain/stats"
)

// pctPlaces is the rounding applied to win and over percentages.
const pctPlaces = 3

type outcome int

const (
	unresolved outcome = iota
	win
	loss
	push
)

// atsOutcome uses spread_cover when present, else margin plus spread.
func atsOutcome(g model.GameRecord) outcome {
	if c, ok := g.SpreadCover.Get(); ok {
		if c == 1 {
			return win
		}
		return loss
	}
	pf, okF := g.PointsFor.Get()
	pa, okA := g.PointsAgainst.Get()
	spread, okS := g.Spread.Get()
	if !okF || !okA || !okS {
		return unresolved
	}
	return sign(pf - pa + spread)
}

// ouOutcome uses total_cover when present, else combined points against the line.
// win is an over, loss an under.
func ouOutcome(g model.GameRecord) outcome {
	if c, ok := g.TotalCover.Get(); ok {
		if c == 1 {
			return win
		}
		return loss
	}
	pf, okF := g.PointsFor.Get()
	pa, okA := g.PointsAgainst.Get()
	line, okL := g.TotalLine.Get()
	if !okF || !okA || !okL {
		return unresolved
	}
	return sign(pf + pa - line)
}

// straightOutcome is a plain win or loss. Ties are unresolved.
func straightOutcome(g model.GameRecord) outcome {
	pf, okF := g.PointsFor.Get()
	pa, okA := g.PointsAgainst.Get()
	if !okF || !okA || pf == pa {
		return unresolved
	}
	return sign(pf - pa)
}

func sign(x float64) outcome {
	switch {
	case x > 0:
		return win
	case x < 0:
		return loss
	default:
		return push
	}
}

type tally struct {
	games, wins, losses, pushes int
}

func (t *tally) add(o outcome) {
	switch o {
	case win:
		t.wins++
	case loss:
		t.losses++
	case push:
		t.pushes++
	default:
		return
	}
	t.games++
}

// record formats "W-L", with "-P" appended only when there are pushes.
func (t tally) record() string {
	s := strconv.Itoa(t.wins) + "-" + strconv.Itoa(t.losses)
	if t.pushes > 0 {
		s += "-" + strconv.Itoa(t.pushes)
	}
	return s
}

func (t tally) pct() model.Float { return stats.Ratio(t.wins, t.wins+t.losses, pctPlaces) }

// byTeam tallies resolved outcomes per team. Rows without a team and teams
// with no resolved games are left out.
func byTeam(games []model.GameRecord, judge func(model.GameRecord) outcome) map[string]*tally {
	out := make(map[string]*tally)
	for _, g := range games {
		if g.Team == "" {
			continue
		}
		o := judge(g)
		if o == unresolved {
			continue
		}
		t, ok := out[g.Team]
		if !ok {
			t = &tally{}
			out[g.Team] = t
		}
		t.add(o)
	}
	return out
}

// ATSRecord is one team's record against the spread.
type ATSRecord struct {
	Team   string      `json:"team"`
	Games  int         `json:"games"`
	Wins   int         `json:"wins"`
	Losses int         `json:"losses"`
	Pushes int         `json:"pushes"`
	Record string      `json:"record_string"`
	WinPct model.Float `json:"win_pct"`
}

// ATS computes per-team records against the spread, best win_pct first.
// Teams with no decided games sort last; ties sort by team.
func ATS(games []model.GameRecord) []ATSRecord {
	tallies := byTeam(games, atsOutcome)
	out := make([]ATSRecord, 0, len(tallies))
	for team, t := range tallies {
		out = append(out, ATSRecord{
			Team:   team,
			Games:  t.games,
			Wins:   t.wins,
			Losses: t.losses,
			Pushes: t.pushes,
			Record: t.record(),
			WinPct: t.pct(),
		})
	}
	slices.SortFunc(out, func(a, b ATSRecord) int {
		if c := byPctDesc(a.WinPct, b.WinPct); c != 0 {
			return c
		}
		return cmp.Compare(a.Team, b.Team)
	})
	return out
}

// OURecord is one team's over/under record.
type OURecord struct {
	Team    string      `json:"team"`
	Games   int         `json:"games"`
	Overs   int         `json:"overs"`
	Unders  int         `json:"unders"`
	Pushes  int         `json:"pushes"`
	Record  string      `json:"record_string"`
	OverPct model.Float `json:"over_pct"`
}

// OverUnder computes per-team over/under records sorted by team.
func OverUnder(games []model.GameRecord) []OURecord {
	tallies := byTeam(games, ouOutcome)
	out := make([]OURecord, 0, len(tallies))
	for team, t := range tallies {
		out = append(out, OURecord{
			Team:    team,
			Games:   t.games,
			Overs:   t.wins,
			Unders:  t.losses,
			Pushes:  t.pushes,
			Record:  t.record(),
			OverPct: t.pct(),
		})
	}
	slices.SortFunc(out, func(a, b OURecord) int { return cmp.Compare(a.Team, b.Team) })
	return out
}

func byPctDesc(a, b model.Float) int {
	av, aok := a.Get()
	bv, bok := b.Get()
	switch {
	case aok && bok:
		return cmp.Compare(bv, av)
	case aok:
		return -1
	case bok:
		return 1
	default:
		return 0
	}
}
