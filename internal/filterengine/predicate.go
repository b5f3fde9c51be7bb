package filterengine

import (
	"regexp"
	"strings"

	"github.com/aussiedatagal/nsw-food-penalty-map/internal/model"
)

// Stats counts, per filter stage, how many groups each stage rejected during
// one Apply pass. Cheap to produce and handy for the stats command and debug
// logging.
type Stats struct {
	Evaluated            int `json:"evaluated"`
	Matched              int `json:"matched"`
	RejectedText         int `json:"rejected_text"`
	RejectedOffenceCount int `json:"rejected_offence_count"`
	RejectedTotalAmount  int `json:"rejected_total_amount"`
	RejectedRecordMatch  int `json:"rejected_record_match"`
}

// textMatcher evaluates the free-text filter. The pattern is compiled once
// per Apply as a case-insensitive regular expression; an invalid pattern
// silently degrades to case-insensitive substring containment. A nil matcher
// means no text filter is active.
type textMatcher struct {
	re     *regexp.Regexp
	substr string
}

func newTextMatcher(pattern string) *textMatcher {
	if pattern == "" {
		return nil
	}
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return &textMatcher{substr: strings.ToLower(pattern)}
	}
	return &textMatcher{re: re}
}

func (m *textMatcher) matches(s string) bool {
	if s == "" {
		return false
	}
	if m.re != nil {
		return m.re.MatchString(s)
	}
	return strings.Contains(strings.ToLower(s), m.substr)
}

func (m *textMatcher) matchesGroup(g model.LocationGroup) bool {
	if m.matches(g.Name) || m.matches(g.PartyServed) {
		return true
	}
	for _, r := range g.Penalties {
		if m.matches(r.PartyServed) || m.matches(r.OffenceDescription) || m.matches(r.OffenceNature) {
			return true
		}
	}
	return false
}

// Apply evaluates the compound filter against every group, preserving input
// order. Groups are never mutated or duplicated, so re-applying the same
// filter to its own output returns the identical set.
func Apply(groups []model.LocationGroup, f State, defaults *State) []model.LocationGroup {
	out, _ := ApplyWithStats(groups, f, defaults)
	return out
}

// ApplyWithStats is Apply plus per-stage rejection counters.
//
// Stage order per group, short-circuiting on the first failure:
//  1. text filter over name / party served / offence description / nature
//  2. offence count within range
//  3. cumulative penalty amount within range
//  4. existential record match: at least one record satisfying all of
//     notice type, date, amount, offence code, and council
func ApplyWithStats(groups []model.LocationGroup, f State, defaults *State) ([]model.LocationGroup, Stats) {
	stats := Stats{Evaluated: len(groups)}
	matcher := newTextMatcher(f.Text)

	out := make([]model.LocationGroup, 0, len(groups))
	for _, g := range groups {
		if matcher != nil && !matcher.matchesGroup(g) {
			stats.RejectedText++
			continue
		}
		if !f.OffenceCount.Contains(len(g.Penalties)) {
			stats.RejectedOffenceCount++
			continue
		}
		if !f.TotalAmount.Contains(g.TotalAmount()) {
			stats.RejectedTotalAmount++
			continue
		}
		if !anyRecordMatches(g.Penalties, f, defaults) {
			stats.RejectedRecordMatch++
			continue
		}
		out = append(out, g)
	}
	stats.Matched = len(out)
	return out, stats
}

// anyRecordMatches implements the existential stage: the group passes when
// any single record satisfies the whole conjunction. This is deliberately
// weaker than requiring the group aggregate to satisfy each condition.
func anyRecordMatches(records []model.PenaltyRecord, f State, defaults *State) bool {
	for _, r := range records {
		if recordMatches(r, f, defaults) {
			return true
		}
	}
	return false
}

func recordMatches(r model.PenaltyRecord, f State, defaults *State) bool {
	switch f.NoticeType {
	case TypeProsecution:
		if !r.IsProsecution() {
			return false
		}
	case TypePenalty:
		if r.IsProsecution() {
			return false
		}
	}

	if t, ok := r.OffenceTime(); ok {
		if !f.Date.Contains(t.UnixMilli()) {
			return false
		}
	} else if !f.Date.IsSentinel() {
		// Undated records surface only while no date filter has ever applied.
		return false
	}

	if !f.Amount.Contains(r.Amount()) {
		return false
	}

	if !selectionMatches(r.OffenceCode, f.OffenceCodes, defaultSet(defaults, offenceCodes)) {
		return false
	}
	return selectionMatches(r.Council, f.Councils, defaultSet(defaults, councils))
}

// selectionMatches applies the shared offence-code / council rule. A present
// value needs the selection to be empty (no restriction) or to contain it. An
// absent value matches only while the selection still equals the full default
// set, so unclassified records disappear as soon as any narrowing is applied.
func selectionMatches(value string, selected, defaultSelection StringSet) bool {
	if value != "" {
		return selected.Len() == 0 || selected.Has(value)
	}
	return defaultSelection != nil && selected.Equal(defaultSelection)
}

type stateSet int

const (
	offenceCodes stateSet = iota
	councils
)

func defaultSet(defaults *State, which stateSet) StringSet {
	if defaults == nil {
		return nil
	}
	if which == offenceCodes {
		return defaults.OffenceCodes
	}
	return defaults.Councils
}
