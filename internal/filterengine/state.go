// Package filterengine implements the map's filtering core: deriving filter
// domains from the grouped dataset, evaluating the compound filter against
// each location, and detecting whether the current filter narrows anything.
//
// Everything here is a pure function of its arguments. The only state the
// caller holds is the defaults snapshot, captured once when the dataset first
// yields a non-sentinel date range, and threaded explicitly through calls.
package filterengine

import "sort"

// NoticeFilter selects which notice kinds a record match may accept.
type NoticeFilter string

const (
	TypeAll         NoticeFilter = "all"
	TypePenalty     NoticeFilter = "penalty"
	TypeProsecution NoticeFilter = "prosecution"
)

// TimeRange is an inclusive [min, max] span in unix milliseconds.
// The zero value is the "no date filter applied yet" sentinel.
type TimeRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// IsSentinel reports whether the range is the [0,0] not-yet-loaded marker.
// Callers must distinguish this from a legitimate single-instant range, which
// cannot be the epoch in this dataset.
func (r TimeRange) IsSentinel() bool { return r.Min == 0 && r.Max == 0 }

// Contains reports whether v lies within the range, inclusive.
func (r TimeRange) Contains(v int64) bool { return v >= r.Min && v <= r.Max }

// AmountRange is an inclusive [min, max] span of dollar amounts.
type AmountRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies within the range, inclusive.
func (r AmountRange) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

// CountRange is an inclusive [min, max] span of per-location notice counts.
type CountRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether v lies within the range, inclusive.
func (r CountRange) Contains(v int) bool { return v >= r.Min && v <= r.Max }

// StringSet is a selection of offence codes or council names. An empty set
// means "no restriction", which is distinct from the default fully-populated
// selection.
type StringSet map[string]struct{}

// NewStringSet builds a set from the given values.
func NewStringSet(values ...string) StringSet {
	s := make(StringSet, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// Has reports membership.
func (s StringSet) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Len returns the selection size.
func (s StringSet) Len() int { return len(s) }

// Equal reports whether both sets hold exactly the same members.
func (s StringSet) Equal(o StringSet) bool {
	if len(s) != len(o) {
		return false
	}
	for v := range s {
		if _, ok := o[v]; !ok {
			return false
		}
	}
	return true
}

// Values returns the members sorted lexicographically.
func (s StringSet) Values() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// State is the current filter selection. Range invariant: min <= max.
type State struct {
	Text         string       `json:"text"`
	NoticeType   NoticeFilter `json:"notice_type"`
	Date         TimeRange    `json:"date"`
	Amount       AmountRange  `json:"amount"`
	TotalAmount  AmountRange  `json:"total_amount"`
	OffenceCount CountRange   `json:"offence_count"`
	OffenceCodes StringSet    `json:"offence_codes"`
	Councils     StringSet    `json:"councils"`
}

// Defaults builds the fully-inclusive filter state for the given domains:
// every range at its derived bounds, every offence code and council selected,
// no text, all notice types. Callers snapshot this once, the first time
// Derive produces a non-sentinel date range, and use it as the baseline for
// Active and for the missing-field matching rules.
func Defaults(d Domains) State {
	codes := NewStringSet()
	for _, opt := range d.OffenceOptions {
		for _, c := range opt.Codes {
			codes[c] = struct{}{}
		}
	}
	return State{
		NoticeType:   TypeAll,
		Date:         d.Date,
		Amount:       d.Penalty,
		TotalAmount:  d.TotalPenalty,
		OffenceCount: d.OffenceCount,
		OffenceCodes: codes,
		Councils:     NewStringSet(d.Councils...),
	}
}
