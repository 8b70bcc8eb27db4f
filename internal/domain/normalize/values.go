// Package normalize turns raw tables into typed domain rows.
//
// Coercion is lenient: a cell that does not parse becomes an absent value,
// never an error. Column synonyms from older dataset generations are resolved
// here, once, so calculators only ever see canonical fields.
package normalize

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/okian/edgeboard/internal/domain/model"
)

var missingMarkers = map[string]struct{}{
	"": {}, "na": {}, "n/a": {}, "nan": {}, "null": {}, "none": {}, "nat": {},
}

func isMissing(s string) bool {
	_, ok := missingMarkers[strings.ToLower(s)]
	return ok
}

// Float parses a number. Missing markers, junk and non-finite values are absent.
func Float(s string) model.Float {
	s = strings.TrimSpace(s)
	if isMissing(s) {
		return model.None[float64]()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return model.None[float64]()
	}
	return model.Some(f)
}

// Int parses an integral number. "3.0" is 3; "3.5" is absent.
func Int(s string) model.Optional[int] {
	f, ok := Float(s).Get()
	if !ok || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return model.None[int]()
	}
	return model.Some(int(f))
}

// Bool parses 1/0, true/false, t/f, yes/no and y/n in any case.
func Bool(s string) model.Optional[bool] {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "1.0", "true", "t", "yes", "y":
		return model.Some(true)
	case "0", "0.0", "false", "f", "no", "n":
		return model.Some(false)
	}
	return model.None[bool]()
}

// Flag parses a 0/1 indicator. Anything else is absent.
func Flag(s string) model.Optional[int] {
	v, ok := Int(s).Get()
	if !ok || (v != 0 && v != 1) {
		return model.None[int]()
	}
	return model.Some(v)
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"01/02/2006",
	"1/2/2006",
}

// Date parses the date layouts seen across dataset vintages, in UTC.
func Date(s string) model.Optional[time.Time] {
	s = strings.TrimSpace(s)
	if isMissing(s) {
		return model.None[time.Time]()
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return model.Some(t)
		}
	}
	return model.None[time.Time]()
}

func text(s string) string {
	s = strings.TrimSpace(s)
	if isMissing(s) {
		return ""
	}
	return s
}
