// Package server exposes the grouped dataset, its derived filter domains,
// and filtered location queries over HTTP for the map frontend.
package server

import (
	"github.com/aussiedatagal/nsw-food-penalty-map/internal/filterengine"
	"github.com/aussiedatagal/nsw-food-penalty-map/internal/model"
)

// Dataset is the in-memory snapshot served to clients: the grouped
// locations, the domains derived from them, and the defaults captured when
// the dataset first produced a non-sentinel date range. Defaults are captured
// exactly once per dataset; the snapshot is read-only for the process
// lifetime.
type Dataset struct {
	Groups  []model.LocationGroup
	Domains filterengine.Domains

	defaults *filterengine.State
}

// NewDataset derives domains for the groups and, when the data is real
// (non-sentinel date range), captures the fully-inclusive defaults.
func NewDataset(groups []model.LocationGroup) *Dataset {
	domains := filterengine.Derive(groups)
	ds := &Dataset{Groups: groups, Domains: domains}
	if domains.Loaded() {
		def := filterengine.Defaults(domains)
		ds.defaults = &def
	}
	return ds
}

// Defaults returns the captured default filter state, or nil before the
// dataset has produced one (empty or undated data).
func (d *Dataset) Defaults() *filterengine.State { return d.defaults }

// RecordCount is the total number of penalty records across all groups.
func (d *Dataset) RecordCount() int {
	n := 0
	for _, g := range d.Groups {
		n += len(g.Penalties)
	}
	return n
}
