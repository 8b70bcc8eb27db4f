package records

import (
	"slices"

	"github.com/okian/edgeboard/internal/domain/filter"
	"github.com/okian/edgeboard/internal/domain/model"
)

// Situation names an ATS split.
type Situation string

// Situations in display order.
const (
	Overall    Situation = "overall"
	AsFavorite Situation = "as_favorite"
	AsUnderdog Situation = "as_underdog"
	Divisional Situation = "divisional"
	Home       Situation = "home"
	Road       Situation = "road"
)

// Situations lists every split in display order.
var Situations = []Situation{Overall, AsFavorite, AsUnderdog, Divisional, Home, Road}

// Situational runs ATS over each split. A split is omitted when no input row
// carries the field it partitions on; empty input yields an empty map.
func Situational(games []model.GameRecord) map[Situation][]ATSRecord {
	out := make(map[Situation][]ATSRecord)
	if len(games) == 0 {
		return out
	}
	out[Overall] = ATS(games)

	if hasSpread(games) {
		out[AsFavorite] = ATS(where(games, favored))
		out[AsUnderdog] = ATS(where(games, underdog))
	}
	if slices.ContainsFunc(games, func(g model.GameRecord) bool { return g.Divisional.Valid() }) {
		out[Divisional] = ATS(where(games, func(g model.GameRecord) bool { return g.Divisional.Or(false) }))
	}
	if hasHome(games) {
		out[Home] = ATS(where(games, atHome))
		out[Road] = ATS(where(games, onRoad))
	}
	return out
}

// Record keys returned by TeamRecords.
const (
	OverallRecord   = "overall_record"
	HomeRecord      = "home_record"
	RoadRecord      = "road_record"
	FavoriteRecord  = "favorite_record"
	UnderdogRecord  = "underdog_record"
	ATSRecordKey    = "ats_record"
	OverUnderRecord = "ou_record"
)

// TeamRecords summarizes one team's season as straight-up "W-L" strings per
// situation plus its ATS and over/under records. Tied games count as neither
// a win nor a loss. Splits whose field is absent are omitted.
func TeamRecords(games []model.GameRecord, team string, season int) map[string]string {
	out := make(map[string]string)
	rows := filter.Apply(games, filter.Selection{Seasons: []int{season}, Teams: []string{team}})
	if len(rows) == 0 || team == "" {
		return out
	}

	out[OverallRecord] = winLoss(rows)
	if hasHome(rows) {
		out[HomeRecord] = winLoss(where(rows, atHome))
		out[RoadRecord] = winLoss(where(rows, onRoad))
	}
	if hasSpread(rows) {
		out[FavoriteRecord] = winLoss(where(rows, favored))
		out[UnderdogRecord] = winLoss(where(rows, underdog))
	}
	if ats := ATS(rows); len(ats) == 1 {
		out[ATSRecordKey] = ats[0].Record
	}
	if ou := OverUnder(rows); len(ou) == 1 {
		out[OverUnderRecord] = ou[0].Record
	}
	return out
}

func winLoss(games []model.GameRecord) string {
	var wins, losses int
	for _, g := range games {
		switch straightOutcome(g) {
		case win:
			wins++
		case loss:
			losses++
		}
	}
	return tally{wins: wins, losses: losses}.record()
}

func favored(g model.GameRecord) bool {
	s, ok := g.Spread.Get()
	return ok && s < 0
}

func underdog(g model.GameRecord) bool {
	s, ok := g.Spread.Get()
	return ok && s > 0
}

func atHome(g model.GameRecord) bool {
	h, ok := g.Home.Get()
	return ok && h
}

func onRoad(g model.GameRecord) bool {
	h, ok := g.Home.Get()
	return ok && !h
}

func hasSpread(games []model.GameRecord) bool {
	return slices.ContainsFunc(games, func(g model.GameRecord) bool { return g.Spread.Valid() })
}

func hasHome(games []model.GameRecord) bool {
	return slices.ContainsFunc(games, func(g model.GameRecord) bool { return g.Home.Valid() })
}

func where(games []model.GameRecord, keep func(model.GameRecord) bool) []model.GameRecord {
	out := make([]model.GameRecord, 0, len(games))
	for _, g := range games {
		if keep(g) {
			out = append(out, g)
		}
	}
	return out
}
