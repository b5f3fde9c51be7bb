package server

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/aussiedatagal/nsw-food-penalty-map/internal/filterengine"
)

// parseFilter builds a filter state from query parameters. Every unspecified
// parameter inherits its fully-inclusive default, so a bare /api/locations
// returns the whole dataset. A parameter that is present but empty for codes
// or councils is an explicit empty selection (no restriction), which differs
// from the default fully-populated one.
func parseFilter(q url.Values, defaults filterengine.State) (filterengine.State, error) {
	f := defaults
	f.Text = q.Get("q")

	if v := q.Get("type"); v != "" {
		switch filterengine.NoticeFilter(v) {
		case filterengine.TypeAll, filterengine.TypePenalty, filterengine.TypeProsecution:
			f.NoticeType = filterengine.NoticeFilter(v)
		default:
			return f, eris.Errorf("invalid type %q", v)
		}
	}

	var err error
	if f.Date.Min, err = int64Param(q, "date_min", defaults.Date.Min); err != nil {
		return f, err
	}
	if f.Date.Max, err = int64Param(q, "date_max", defaults.Date.Max); err != nil {
		return f, err
	}
	if f.Amount.Min, err = floatParam(q, "amount_min", defaults.Amount.Min); err != nil {
		return f, err
	}
	if f.Amount.Max, err = floatParam(q, "amount_max", defaults.Amount.Max); err != nil {
		return f, err
	}
	if f.TotalAmount.Min, err = floatParam(q, "total_min", defaults.TotalAmount.Min); err != nil {
		return f, err
	}
	if f.TotalAmount.Max, err = floatParam(q, "total_max", defaults.TotalAmount.Max); err != nil {
		return f, err
	}
	if f.OffenceCount.Min, err = intParam(q, "count_min", defaults.OffenceCount.Min); err != nil {
		return f, err
	}
	if f.OffenceCount.Max, err = intParam(q, "count_max", defaults.OffenceCount.Max); err != nil {
		return f, err
	}

	if _, ok := q["codes"]; ok {
		f.OffenceCodes = filterengine.NewStringSet(splitList(q.Get("codes"))...)
	}
	if _, ok := q["councils"]; ok {
		f.Councils = filterengine.NewStringSet(splitList(q.Get("councils"))...)
	}

	return f, nil
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func int64Param(q url.Values, key string, def int64) (int64, error) {
	v := q.Get(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, eris.Errorf("invalid %s %q", key, v)
	}
	return n, nil
}

func intParam(q url.Values, key string, def int) (int, error) {
	v := q.Get(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, eris.Errorf("invalid %s %q", key, v)
	}
	return n, nil
}

func floatParam(q url.Values, key string, def float64) (float64, error) {
	v := q.Get(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, eris.Errorf("invalid %s %q", key, v)
	}
	return n, nil
}
