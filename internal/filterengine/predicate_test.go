package filterengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aussiedatagal/nsw-food-penalty-map/internal/model"
)

// ready returns the fixture groups, their fully-inclusive filter, and the
// defaults snapshot: the Ready state of the filtering subsystem.
func ready() ([]model.LocationGroup, State, *State) {
	groups := fixtureGroups()
	def := Defaults(Derive(groups))
	f := def
	return groups, f, &def
}

func names(groups []model.LocationGroup) []string {
	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = g.Name
	}
	return out
}

func TestApply_FullDefaultsReturnEverything(t *testing.T) {
	groups, f, def := ready()
	got := Apply(groups, f, def)
	assert.Equal(t, names(groups), names(got))
}

func TestApply_Idempotent(t *testing.T) {
	groups, f, def := ready()
	once := Apply(groups, f, def)
	twice := Apply(once, f, def)
	assert.Equal(t, once, twice)
}

func TestApply_CouncilNarrowing(t *testing.T) {
	groups, f, def := ready()
	f.Councils = NewStringSet("Sydney")

	got := Apply(groups, f, def)
	assert.Equal(t, []string{"Golden Dragon"}, names(got))
}

func TestApply_AmountNarrowing(t *testing.T) {
	groups, f, def := ready()
	f.Amount = AmountRange{0, 2000}

	got := Apply(groups, f, def)
	assert.Equal(t, []string{"Golden Dragon"}, names(got))
}

func TestApply_OffenceCountBelowMinimumMatchesNothing(t *testing.T) {
	groups, f, def := ready()
	f.OffenceCount = CountRange{0, 0}
	assert.Empty(t, Apply(groups, f, def))

	f.OffenceCount = CountRange{2, 5}
	assert.Empty(t, Apply(groups, f, def))
}

func TestApply_TotalAmountNarrowing(t *testing.T) {
	groups, f, def := ready()
	f.TotalAmount = AmountRange{4000, 10000}

	got := Apply(groups, f, def)
	assert.Equal(t, []string{"Harbour Cafe"}, names(got))
}

func TestApply_DateNarrowing(t *testing.T) {
	groups, f, def := ready()
	f.Date = TimeRange{millis("2023-05-01"), millis("2023-12-31")}

	got := Apply(groups, f, def)
	assert.Equal(t, []string{"Harbour Cafe"}, names(got))
}

func TestApply_TextRegex(t *testing.T) {
	groups, f, def := ready()
	f.Text = "golden|harbour"
	assert.Len(t, Apply(groups, f, def), 2)

	f.Text = "^golden"
	got := Apply(groups, f, def)
	assert.Equal(t, []string{"Golden Dragon"}, names(got))
}

func TestApply_InvalidRegexFallsBackToSubstring(t *testing.T) {
	groups, f, def := ready()
	f.Text = "(golden" // unbalanced paren

	var got []model.LocationGroup
	assert.NotPanics(t, func() { got = Apply(groups, f, def) })
	assert.Empty(t, got)

	// The literal substring still matches when present.
	g := sydneyGroup()
	g.Name = "The (Golden Dragon"
	got = Apply([]model.LocationGroup{g}, f, def)
	assert.Len(t, got, 1)
}

func TestApply_TextMatchesOffenceNature(t *testing.T) {
	groups, f, def := ready()
	groups[0].Penalties[0].OffenceNature = "Cockroach infestation in kitchen"
	f.Text = "cockroach"

	got := Apply(groups, f, def)
	assert.Equal(t, []string{"Golden Dragon"}, names(got))
}

func TestApply_NoticeTypeFilter(t *testing.T) {
	groups, f, def := ready()
	groups[1].Penalties[0].Type = model.NoticeProsecution

	f.NoticeType = TypeProsecution
	got := Apply(groups, f, def)
	assert.Equal(t, []string{"Harbour Cafe"}, names(got))

	f.NoticeType = TypePenalty
	got = Apply(groups, f, def)
	assert.Equal(t, []string{"Golden Dragon"}, names(got))

	f.NoticeType = TypeAll
	assert.Len(t, Apply(groups, f, def), 2)
}

func TestApply_UndatedRecordNeedsSentinelDateRange(t *testing.T) {
	g := sydneyGroup()
	g.Penalties[0].DateOfOffence = ""

	// No dated records: domains carry the sentinel and the record matches.
	d := Derive([]model.LocationGroup{g})
	def := Defaults(d)
	assert.Len(t, Apply([]model.LocationGroup{g}, def, &def), 1)

	// Any concrete date range excludes undated records.
	f := def
	f.Date = TimeRange{millis("2020-01-01"), millis("2030-01-01")}
	assert.Empty(t, Apply([]model.LocationGroup{g}, f, &def))
}

func TestApply_AbsentOffenceCodeOnlyUnderFullDefaultSelection(t *testing.T) {
	groups, f, def := ready()
	groups[0].Penalties[0].OffenceCode = "" // e.g. a prosecution

	// Full default selection: unclassified record still surfaces.
	got := Apply(groups, f, def)
	assert.Len(t, got, 2)

	// Any narrowing hides it, even though the other group's code stays selected.
	f.OffenceCodes = NewStringSet("11323")
	got = Apply(groups, f, def)
	assert.Equal(t, []string{"Harbour Cafe"}, names(got))
}

func TestApply_PresentCodeWithEmptySelectionUnrestricted(t *testing.T) {
	groups, f, def := ready()
	f.OffenceCodes = NewStringSet()
	assert.Len(t, Apply(groups, f, def), 2)
}

func TestApply_AbsentCouncilSymmetricRule(t *testing.T) {
	groups, f, def := ready()
	groups[0].Council = "Sydney" // group metadata is not what the rule reads
	groups[0].Penalties[0].Council = ""

	got := Apply(groups, f, def)
	assert.Len(t, got, 2)

	f.Councils = NewStringSet("Sydney", "Melbourne")
	// Same members as default: still the full selection.
	assert.Len(t, Apply(groups, f, def), 2)

	// Narrowing to Melbourne drops the council-less Sydney record.
	f.Councils = NewStringSet("Melbourne")
	got = Apply(groups, f, def)
	assert.Equal(t, []string{"Harbour Cafe"}, names(got))
}

func TestApply_NilDefaultsAbsentFieldNeverMatches(t *testing.T) {
	g := sydneyGroup()
	g.Penalties[0].OffenceCode = ""
	f := Defaults(Derive([]model.LocationGroup{g}))

	assert.Empty(t, Apply([]model.LocationGroup{g}, f, nil))
}

func TestApply_ExistentialRecordMatch(t *testing.T) {
	// One record satisfies the conjunction, the other fails every clause;
	// the group still passes.
	g := sydneyGroup()
	g.Penalties = append(g.Penalties, model.PenaltyRecord{
		Type:          model.NoticeProsecution,
		Name:          g.Name,
		Council:       "Parramatta",
		DateOfOffence: "2019-04-02",
		PenaltyAmount: "$100,000",
	})

	groups := []model.LocationGroup{g, melbourneGroup()}
	def := Defaults(Derive(groups))
	f := def
	f.Councils = NewStringSet("Sydney")
	f.Amount = AmountRange{0, 2000}

	got := Apply(groups, f, &def)
	assert.Equal(t, []string{"Golden Dragon"}, names(got))
}

func TestApply_ConjunctionIsPerRecordNotAggregate(t *testing.T) {
	// Record A matches the date clause, record B matches the amount clause,
	// but no single record matches both: the group must be rejected.
	g := sydneyGroup()
	g.Penalties = append(g.Penalties, model.PenaltyRecord{
		Type:          model.NoticePenalty,
		Name:          g.Name,
		Council:       "Sydney",
		OffenceCode:   "11339",
		DateOfOffence: "2023-06-01",
		PenaltyAmount: "$9,000",
	})

	groups := []model.LocationGroup{g}
	def := Defaults(Derive(groups))
	f := def
	f.Date = TimeRange{millis("2023-05-01"), millis("2023-12-31")} // only record B
	f.Amount = AmountRange{0, 2000}                                // only record A

	assert.Empty(t, Apply(groups, f, &def))
}

func TestApply_EmptyGroupNeverPasses(t *testing.T) {
	groups := []model.LocationGroup{{Name: "Ghost"}}
	def := Defaults(Derive(groups))

	assert.NotPanics(t, func() {
		assert.Empty(t, Apply(groups, def, &def))
	})
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	groups, f, def := ready()
	f.Councils = NewStringSet("Sydney")

	before := names(groups)
	_ = Apply(groups, f, def)
	assert.Equal(t, before, names(groups))
	require.Len(t, groups[1].Penalties, 1)
}

func TestApplyWithStats_StageCounters(t *testing.T) {
	groups, f, def := ready()
	f.Text = "golden"

	got, stats := ApplyWithStats(groups, f, def)
	assert.Len(t, got, 1)
	assert.Equal(t, 2, stats.Evaluated)
	assert.Equal(t, 1, stats.Matched)
	assert.Equal(t, 1, stats.RejectedText)
	assert.Equal(t, 0, stats.RejectedRecordMatch)

	f = *def
	f.Councils = NewStringSet("Hornsby")
	_, stats = ApplyWithStats(groups, f, def)
	assert.Equal(t, 2, stats.RejectedRecordMatch)
}
