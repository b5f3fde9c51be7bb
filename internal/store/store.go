// Package store caches the grouped dataset locally so serve and query do not
// re-fetch the published document on every start.
package store

import (
	"context"

	"github.com/aussiedatagal/nsw-food-penalty-map/internal/model"
)

// Store persists grouped locations between imports.
type Store interface {
	Migrate(ctx context.Context) error
	// ReplaceLocations swaps the cached dataset for the given groups in one
	// transaction. The dataset is always rebuilt in full, never mutated
	// incrementally.
	ReplaceLocations(ctx context.Context, groups []model.LocationGroup) error
	// ListLocations returns every cached group in import order.
	ListLocations(ctx context.Context) ([]model.LocationGroup, error)
	CountLocations(ctx context.Context) (int, error)
	Close() error
}
