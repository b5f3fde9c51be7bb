package grouper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aussiedatagal/nsw-food-penalty-map/internal/model"
)

func ptr(v float64) *float64 { return &v }

func record(name string, lat, lon float64) model.PenaltyRecord {
	return model.PenaltyRecord{
		Name:    name,
		Address: model.Address{Lat: ptr(lat), Lon: ptr(lon), Full: "1 Test St"},
	}
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "", NormalizeName("   "))
	assert.Equal(t, "GOLDEN DRAGON", NormalizeName("  golden   Dragon "))
}

func TestKey_SameBusinessSameKey(t *testing.T) {
	a := record("Golden Dragon", -33.86785, 151.20732)
	b := record("GOLDEN DRAGON", -33.86785, 151.20732)
	assert.Equal(t, Key(a), Key(b))
}

func TestKey_NearbyCoordinatesRoundTogether(t *testing.T) {
	a := record("Cafe One", -33.867849, 151.207320)
	b := record("Cafe One", -33.867851, 151.207323)
	assert.Equal(t, Key(a), Key(b))
}

func TestKey_DifferentLocationsDiffer(t *testing.T) {
	a := record("Cafe One", -33.8678, 151.2073)
	b := record("Cafe One", -33.9200, 151.0400)
	assert.NotEqual(t, Key(a), Key(b))
}

func TestKey_UngeocodedFallsBackToAddressText(t *testing.T) {
	a := model.PenaltyRecord{Name: "Cafe One", Address: model.Address{Full: "1 George St, Sydney"}}
	b := model.PenaltyRecord{Name: "Cafe One", Address: model.Address{Full: "1 GEORGE ST, SYDNEY"}}
	c := model.PenaltyRecord{Name: "Cafe One", Address: model.Address{Full: "9 Pitt St, Sydney"}}
	assert.Equal(t, Key(a), Key(b))
	assert.NotEqual(t, Key(a), Key(c))
}

func TestGroup_Empty(t *testing.T) {
	assert.Nil(t, Group(nil))
	assert.Nil(t, Group([]model.PenaltyRecord{}))
}

func TestGroup_IsPartition(t *testing.T) {
	records := []model.PenaltyRecord{
		record("Cafe One", -33.8678, 151.2073),
		record("Bakery Two", -33.9200, 151.0400),
		record("cafe one", -33.8678, 151.2073),
		record("Noodle Bar", -30.5000, 153.0000),
		record("Bakery Two", -33.9200, 151.0400),
	}

	groups := Group(records)
	require.Len(t, groups, 3)

	total := 0
	for _, g := range groups {
		total += len(g.Penalties)
	}
	assert.Equal(t, len(records), total)
}

func TestGroup_FirstSeenOrder(t *testing.T) {
	groups := Group([]model.PenaltyRecord{
		record("Zebra Cafe", -33.0, 151.0),
		record("Apple Bakery", -34.0, 150.0),
		record("Zebra Cafe", -33.0, 151.0),
	})
	require.Len(t, groups, 2)
	assert.Equal(t, "Zebra Cafe", groups[0].Name)
	assert.Equal(t, "Apple Bakery", groups[1].Name)
	assert.Len(t, groups[0].Penalties, 2)
}

func TestGroup_BackfillsPartyServed(t *testing.T) {
	a := record("Cafe One", -33.8678, 151.2073)
	b := record("Cafe One", -33.8678, 151.2073)
	b.PartyServed = "SMITH, JOHN"

	groups := Group([]model.PenaltyRecord{a, b})
	require.Len(t, groups, 1)
	assert.Equal(t, "SMITH, JOHN", groups[0].PartyServed)
}

func TestGroup_SortsPenaltiesByIssuedDateDescending(t *testing.T) {
	a := record("Cafe One", -33.8678, 151.2073)
	a.DateIssued = "2022-03-01T12:00:00Z"
	b := record("Cafe One", -33.8678, 151.2073)
	b.DateIssued = "2023-11-20T12:00:00Z"
	c := record("Cafe One", -33.8678, 151.2073) // no issued date

	groups := Group([]model.PenaltyRecord{a, c, b})
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Penalties, 3)
	assert.Equal(t, "2023-11-20T12:00:00Z", groups[0].Penalties[0].DateIssued)
	assert.Equal(t, "2022-03-01T12:00:00Z", groups[0].Penalties[1].DateIssued)
	assert.Equal(t, "", groups[0].Penalties[2].DateIssued)
}
