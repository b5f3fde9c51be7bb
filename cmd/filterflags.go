package main

import (
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/aussiedatagal/nsw-food-penalty-map/internal/filterengine"
)

// filterFlags maps the filter dimensions onto CLI flags for the query and
// stats commands. Flags left unset inherit the fully-inclusive defaults, the
// same contract as the HTTP query parameters.
type filterFlags struct {
	text       string
	noticeType string
	dateMin    string
	dateMax    string
	amountMin  float64
	amountMax  float64
	totalMin   float64
	totalMax   float64
	countMin   int
	countMax   int
	codes      []string
	councils   []string
}

func (ff *filterFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&ff.text, "text", "", "text filter (regex, falls back to substring)")
	f.StringVar(&ff.noticeType, "type", "all", "notice type: all, penalty, prosecution")
	f.StringVar(&ff.dateMin, "date-min", "", "earliest offence date (YYYY-MM-DD)")
	f.StringVar(&ff.dateMax, "date-max", "", "latest offence date (YYYY-MM-DD)")
	f.Float64Var(&ff.amountMin, "amount-min", 0, "minimum per-notice amount")
	f.Float64Var(&ff.amountMax, "amount-max", 0, "maximum per-notice amount")
	f.Float64Var(&ff.totalMin, "total-min", 0, "minimum cumulative amount per location")
	f.Float64Var(&ff.totalMax, "total-max", 0, "maximum cumulative amount per location")
	f.IntVar(&ff.countMin, "count-min", 0, "minimum notices per location")
	f.IntVar(&ff.countMax, "count-max", 0, "maximum notices per location")
	f.StringSliceVar(&ff.codes, "codes", nil, "offence codes to include (empty = no restriction)")
	f.StringSliceVar(&ff.councils, "councils", nil, "councils to include (empty = no restriction)")
}

func (ff *filterFlags) build(cmd *cobra.Command, defaults filterengine.State) (filterengine.State, error) {
	f := defaults
	f.Text = ff.text

	switch t := filterengine.NoticeFilter(ff.noticeType); t {
	case filterengine.TypeAll, filterengine.TypePenalty, filterengine.TypeProsecution:
		f.NoticeType = t
	default:
		return f, eris.Errorf("invalid --type %q", ff.noticeType)
	}

	if ff.dateMin != "" {
		t, err := time.Parse("2006-01-02", ff.dateMin)
		if err != nil {
			return f, eris.Errorf("invalid --date-min %q", ff.dateMin)
		}
		f.Date.Min = t.UnixMilli()
	}
	if ff.dateMax != "" {
		t, err := time.Parse("2006-01-02", ff.dateMax)
		if err != nil {
			return f, eris.Errorf("invalid --date-max %q", ff.dateMax)
		}
		f.Date.Max = t.UnixMilli()
	}

	flags := cmd.Flags()
	if flags.Changed("amount-min") {
		f.Amount.Min = ff.amountMin
	}
	if flags.Changed("amount-max") {
		f.Amount.Max = ff.amountMax
	}
	if flags.Changed("total-min") {
		f.TotalAmount.Min = ff.totalMin
	}
	if flags.Changed("total-max") {
		f.TotalAmount.Max = ff.totalMax
	}
	if flags.Changed("count-min") {
		f.OffenceCount.Min = ff.countMin
	}
	if flags.Changed("count-max") {
		f.OffenceCount.Max = ff.countMax
	}
	if flags.Changed("codes") {
		f.OffenceCodes = filterengine.NewStringSet(ff.codes...)
	}
	if flags.Changed("councils") {
		f.Councils = filterengine.NewStringSet(ff.councils...)
	}

	return f, nil
}
