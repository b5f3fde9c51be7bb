package filterengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActive_NilDefaults(t *testing.T) {
	f := Defaults(Derive(fixtureGroups()))
	f.Text = "anything"
	assert.False(t, Active(f, nil))
}

func TestActive_DefaultStateInactive(t *testing.T) {
	def := Defaults(Derive(fixtureGroups()))
	assert.False(t, Active(def, &def))
}

func TestActive_EachDimension(t *testing.T) {
	def := Defaults(Derive(fixtureGroups()))

	cases := map[string]func(*State){
		"text":            func(f *State) { f.Text = "cafe" },
		"notice type":     func(f *State) { f.NoticeType = TypeProsecution },
		"date lower":      func(f *State) { f.Date.Min++ },
		"date upper":      func(f *State) { f.Date.Max-- },
		"amount":          func(f *State) { f.Amount.Max = 2000 },
		"total amount":    func(f *State) { f.TotalAmount.Min = 100 },
		"offence count":   func(f *State) { f.OffenceCount.Max = 3 },
		"offence codes":   func(f *State) { f.OffenceCodes = NewStringSet("11339") },
		"councils":        func(f *State) { f.Councils = NewStringSet() },
		"councils narrow": func(f *State) { f.Councils = NewStringSet("Sydney") },
	}
	for name, mutate := range cases {
		f := def
		mutate(&f)
		assert.True(t, Active(f, &def), "dimension %q should mark filters active", name)
	}
}

func TestActive_SameSizeSelectionInactive(t *testing.T) {
	// The detector compares sizes only; an equal-size selection reads as the
	// default even if members were swapped. Matches the observed behavior.
	def := Defaults(Derive(fixtureGroups()))
	f := def
	f.Councils = NewStringSet("Hornsby", "Bayside")
	assert.False(t, Active(f, &def))
}
