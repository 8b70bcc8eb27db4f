// Package datasource fetches raw dataset tables from object storage or disk.
//
// Dataset ids are opaque paths such as "Prod/core/training_data_full_game.csv";
// the extension picks the decoder. Retries live here and nowhere else.
package datasource

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/okian/edgeboard/internal/domain/table"
)

// Dataset catalog.
const (
	Games                  = "Prod/core/training_data_full_game.csv"
	TeamWeekMetrics        = "Prod/core/game_df_team_week_averages_3_week_sequence.csv"
	WeeklyStartersOffense  = "Prod/core/weekly_starters_offense_depth_chart.csv"
	WeeklyStartersDefense  = "Prod/core/weekly_starters_defense_depth_chart.csv"
	HealthyStartersOffense = "Prod/core/healthy_starters_offense_depth_chart.csv"
	HealthyStartersDefense = "Prod/core/healthy_starters_defense_depth_chart.csv"
)

// Catalog lists every dataset the service reads.
var Catalog = []string{
	Games,
	TeamWeekMetrics,
	WeeklyStartersOffense,
	WeeklyStartersDefense,
	HealthyStartersOffense,
	HealthyStartersDefense,
}

// Source fetches a dataset by id. Errors are *Failure values.
type Source interface {
	Fetch(ctx context.Context, id string) (*table.Table, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, id string) (*table.Table, error)

// Fetch implements Source.
func (f SourceFunc) Fetch(ctx context.Context, id string) (*table.Table, error) { return f(ctx, id) }

// Decode reads r using the decoder for id's extension.
func Decode(id string, r io.Reader) (*table.Table, error) {
	switch strings.ToLower(path.Ext(id)) {
	case ".csv":
		return DecodeCSV(r)
	case ".parquet":
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("%w: read: %v", ErrDecode, err)
		}
		return DecodeParquet(b)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, path.Ext(id))
	}
}
