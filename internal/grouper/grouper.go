// Package grouper partitions flat penalty records into per-location groups.
//
// Two records belong to the same group when they share a location identity
// key: normalized business name plus coordinates rounded to the grouping
// epsilon used by the upstream pipeline (0.0001 degrees, roughly 11 metres).
// Records without coordinates key on name plus full address text instead.
package grouper

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/aussiedatagal/nsw-food-penalty-map/internal/model"
)

// coordPrecision matches the upstream coordinate epsilon of 1e-4 degrees.
const coordPrecision = 4

var multiSpaceRe = regexp.MustCompile(`\s{2,}`)

// NormalizeName standardizes a business name for identity matching:
// trimmed, uppercased, multiple spaces collapsed.
func NormalizeName(name string) string {
	name = strings.ToUpper(strings.TrimSpace(name))
	return multiSpaceRe.ReplaceAllString(name, " ")
}

func roundCoord(v float64) float64 {
	scale := math.Pow10(coordPrecision)
	return math.Round(v*scale) / scale
}

// Key derives the location identity key for a record.
func Key(r model.PenaltyRecord) string {
	name := NormalizeName(r.Name)
	if r.Address.Geocoded() {
		return fmt.Sprintf("%s|%.4f,%.4f", name, roundCoord(*r.Address.Lat), roundCoord(*r.Address.Lon))
	}
	return name + "|" + strings.ToUpper(strings.TrimSpace(r.Address.Full))
}

// Group buckets records by location identity. Output order is the insertion
// order of first-seen keys; every input record lands in exactly one group.
// Within a group records are sorted by date issued, most recent first, the
// order the detail panel renders them in.
func Group(records []model.PenaltyRecord) []model.LocationGroup {
	if len(records) == 0 {
		return nil
	}

	index := make(map[string]int, len(records))
	groups := make([]model.LocationGroup, 0, len(records))

	for _, r := range records {
		key := Key(r)
		i, seen := index[key]
		if !seen {
			i = len(groups)
			index[key] = i
			groups = append(groups, model.LocationGroup{
				Name:        r.Name,
				Address:     r.Address,
				Council:     r.Council,
				PartyServed: r.PartyServed,
			})
		}
		g := &groups[i]
		g.Penalties = append(g.Penalties, r)
		// Backfill group metadata from later records when the first was blank.
		if g.PartyServed == "" && r.PartyServed != "" {
			g.PartyServed = r.PartyServed
		}
		if g.Council == "" && r.Council != "" {
			g.Council = r.Council
		}
		if !g.Address.Geocoded() && r.Address.Geocoded() {
			g.Address = r.Address
		}
	}

	for i := range groups {
		sortPenalties(groups[i].Penalties)
	}
	return groups
}

// sortPenalties orders records by issued date descending. Records without a
// usable issued date sink to the end; the sort is stable so ties keep input
// order.
func sortPenalties(records []model.PenaltyRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		ti, iok := records[i].IssuedTime()
		tj, jok := records[j].IssuedTime()
		if iok != jok {
			return iok
		}
		return ti.After(tj)
	})
}
