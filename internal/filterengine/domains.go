package filterengine

import (
	"regexp"
	"sort"

	"github.com/twpayne/go-geom"

	"github.com/aussiedatagal/nsw-food-penalty-map/internal/model"
)

// Fallback spans returned for an empty dataset. Consumers must treat these
// as "not yet loaded", never as real data.
const (
	fallbackAmountMax   = 10000
	fallbackCountMinMax = 1
)

// OffenceOption is one distinct offence description together with the raw
// codes that share it after suffix normalization.
type OffenceOption struct {
	Description string   `json:"description"`
	Codes       []string `json:"codes"`
}

// Bounds is the bounding box of every geocoded location, for the initial map
// viewport.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// Domains holds the full value ranges and enumerations derived from the
// grouped dataset. They seed the default filter state and populate the
// range-slider bounds and checklist options.
type Domains struct {
	Date           TimeRange       `json:"date"`
	Penalty        AmountRange     `json:"penalty"`
	TotalPenalty   AmountRange     `json:"total_penalty"`
	OffenceCount   CountRange      `json:"offence_count"`
	OffenceOptions []OffenceOption `json:"offence_options"`
	Councils       []string        `json:"councils"`
	Bounds         *Bounds         `json:"bounds,omitempty"`
}

// Loaded reports whether the domains were derived from at least one dated
// record, i.e. the date range is past its sentinel.
func (d Domains) Loaded() bool { return !d.Date.IsSentinel() }

// Offence descriptions are published once per served-party kind; the suffix
// carries no classification value and is stripped before deduplication.
var offenceSuffixRe = regexp.MustCompile(`(?i)\s*-\s*(individual|corporation)\s*$`)

// NormalizeOffenceDescription strips the trailing " - Individual" /
// " - Corporation" suffix, case-insensitively.
func NormalizeOffenceDescription(desc string) string {
	return offenceSuffixRe.ReplaceAllString(desc, "")
}

// Derive computes the filter domains for the grouped dataset. An empty
// dataset yields sentinel ranges: [0,0] dates, [0,10000] amounts, [1,1]
// offence count.
func Derive(groups []model.LocationGroup) Domains {
	d := Domains{
		Penalty:      AmountRange{0, fallbackAmountMax},
		TotalPenalty: AmountRange{0, fallbackAmountMax},
		OffenceCount: CountRange{fallbackCountMinMax, fallbackCountMinMax},
	}

	var (
		haveDate, haveAmount, haveTotal, haveCount bool

		codesByDesc = map[string]StringSet{}
		councils    = NewStringSet()
		bounds      = geom.NewBounds(geom.XY)
	)

	for _, g := range groups {
		if !haveCount {
			d.OffenceCount = CountRange{len(g.Penalties), len(g.Penalties)}
			haveCount = true
		} else {
			if n := len(g.Penalties); n < d.OffenceCount.Min {
				d.OffenceCount.Min = n
			} else if n > d.OffenceCount.Max {
				d.OffenceCount.Max = n
			}
		}

		if g.Address.Geocoded() {
			bounds.Extend(geom.NewPointFlat(geom.XY, []float64{*g.Address.Lon, *g.Address.Lat}))
		}
		if g.Council != "" {
			councils[g.Council] = struct{}{}
		}

		var groupTotal float64
		for _, r := range g.Penalties {
			if t, ok := r.OffenceTime(); ok {
				ms := t.UnixMilli()
				if !haveDate {
					d.Date = TimeRange{ms, ms}
					haveDate = true
				} else {
					if ms < d.Date.Min {
						d.Date.Min = ms
					}
					if ms > d.Date.Max {
						d.Date.Max = ms
					}
				}
			}

			amount := r.Amount()
			groupTotal += amount
			if !haveAmount {
				d.Penalty = AmountRange{amount, amount}
				haveAmount = true
			} else {
				if amount < d.Penalty.Min {
					d.Penalty.Min = amount
				}
				if amount > d.Penalty.Max {
					d.Penalty.Max = amount
				}
			}

			if r.Council != "" {
				councils[r.Council] = struct{}{}
			}
			if desc := NormalizeOffenceDescription(r.OffenceDescription); desc != "" {
				set, ok := codesByDesc[desc]
				if !ok {
					set = NewStringSet()
					codesByDesc[desc] = set
				}
				if r.OffenceCode != "" {
					set[r.OffenceCode] = struct{}{}
				}
			}
		}

		if len(g.Penalties) > 0 {
			if !haveTotal {
				d.TotalPenalty = AmountRange{groupTotal, groupTotal}
				haveTotal = true
			} else {
				if groupTotal < d.TotalPenalty.Min {
					d.TotalPenalty.Min = groupTotal
				}
				if groupTotal > d.TotalPenalty.Max {
					d.TotalPenalty.Max = groupTotal
				}
			}
		}
	}

	d.OffenceOptions = make([]OffenceOption, 0, len(codesByDesc))
	for desc, codes := range codesByDesc {
		d.OffenceOptions = append(d.OffenceOptions, OffenceOption{
			Description: desc,
			Codes:       codes.Values(),
		})
	}
	sort.Slice(d.OffenceOptions, func(i, j int) bool {
		return d.OffenceOptions[i].Description < d.OffenceOptions[j].Description
	})
	d.Councils = councils.Values()

	if !bounds.IsEmpty() {
		d.Bounds = &Bounds{
			MinLat: bounds.Min(1),
			MinLon: bounds.Min(0),
			MaxLat: bounds.Max(1),
			MaxLon: bounds.Max(0),
		}
	}
	return d
}
