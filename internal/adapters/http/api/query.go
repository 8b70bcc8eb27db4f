package api

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/okian/edgeboard/internal/app"
	"github.com/okian/edgeboard/internal/domain/filter"
	"github.com/okian/edgeboard/internal/domain/model"
)

// Week bounds used when only one end of a range is given.
const (
	firstWeek = 1
	lastWeek  = 22
)

const (
	defaultTrendRows = 5
	maxTrendRows     = 100
)

// parseQuery reads season, week, team and group parameters into a Query.
// week_min/week_max take precedence over repeated week values.
func parseQuery(op string, v url.Values) (app.Query, error) {
	seasons, err := ints(op, v, "season")
	if err != nil {
		return app.Query{}, err
	}
	q := app.Query{
		Selection: filter.Selection{Seasons: seasons, Teams: strs(v, "team")},
		Group:     strings.TrimSpace(v.Get("group")),
	}

	lo, err := optionalInt(op, v, "week_min")
	if err != nil {
		return app.Query{}, err
	}
	hi, err := optionalInt(op, v, "week_max")
	if err != nil {
		return app.Query{}, err
	}
	if lo.Valid() || hi.Valid() {
		r := filter.WeekRange{Min: lo.Or(firstWeek), Max: hi.Or(lastWeek)}
		if r.Min > r.Max {
			return app.Query{}, WrapKind(op, ErrBadRequest, "week_min %d is after week_max %d", r.Min, r.Max)
		}
		q.Selection.Weeks = r
		return q, nil
	}

	weeks, err := ints(op, v, "week")
	if err != nil {
		return app.Query{}, err
	}
	if len(weeks) > 0 {
		q.Selection.Weeks = filter.WeekSet(weeks)
	}
	return q, nil
}

// ints parses every value of key, accepting comma separated lists too.
func ints(op string, v url.Values, key string) ([]int, error) {
	var out []int
	for _, s := range strs(v, key) {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, WrapKind(op, ErrBadRequest, "%s must be an integer, got %q", key, s)
		}
		out = append(out, n)
	}
	return out, nil
}

// strs returns the non-empty trimmed values of key.
func strs(v url.Values, key string) []string {
	var out []string
	for _, raw := range v[key] {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

func optionalInt(op string, v url.Values, key string) (model.Optional[int], error) {
	s := strings.TrimSpace(v.Get(key))
	if s == "" {
		return model.None[int](), nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return model.None[int](), WrapKind(op, ErrBadRequest, "%s must be an integer, got %q", key, s)
	}
	return model.Some(n), nil
}

func requiredInt(op string, v url.Values, key string) (int, error) {
	n, err := optionalInt(op, v, key)
	if err != nil {
		return 0, err
	}
	x, ok := n.Get()
	if !ok {
		return 0, WrapKind(op, ErrBadRequest, "%s is required", key)
	}
	return x, nil
}

func requiredString(op string, v url.Values, key string) (string, error) {
	s := strings.TrimSpace(v.Get(key))
	if s == "" {
		return "", WrapKind(op, ErrBadRequest, "%s is required", key)
	}
	return s, nil
}
