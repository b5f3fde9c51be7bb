package main

import (
	"context"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/aussiedatagal/nsw-food-penalty-map/internal/fetcher"
	"github.com/aussiedatagal/nsw-food-penalty-map/internal/model"
	"github.com/aussiedatagal/nsw-food-penalty-map/internal/store"
)

func newFetcher() *fetcher.HTTPFetcher {
	return fetcher.NewHTTPFetcher(fetcher.Options{
		UserAgent:         cfg.Fetch.UserAgent,
		Timeout:           time.Duration(cfg.Fetch.TimeoutSecs) * time.Second,
		MaxRetries:        cfg.Fetch.MaxRetries,
		RequestsPerSecond: cfg.Fetch.RequestsPerSecond,
	})
}

func datasetSource() string {
	if cfg.Dataset.Path != "" {
		return cfg.Dataset.Path
	}
	return cfg.Dataset.URL
}

func openStore(ctx context.Context) (*store.SQLiteStore, error) {
	s, err := store.NewSQLite(cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	if err := s.Migrate(ctx); err != nil {
		s.Close() //nolint:errcheck
		return nil, err
	}
	return s, nil
}

// loadGroups returns the grouped dataset: from the SQLite cache when an
// import has populated it, otherwise straight from the configured source.
func loadGroups(ctx context.Context) ([]model.LocationGroup, error) {
	if _, err := os.Stat(cfg.Store.Path); err == nil {
		s, err := openStore(ctx)
		if err != nil {
			return nil, eris.Wrap(err, "open store")
		}
		defer s.Close() //nolint:errcheck

		n, err := s.CountLocations(ctx)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			zap.L().Info("loading dataset from cache",
				zap.String("store", cfg.Store.Path),
				zap.Int("locations", n),
			)
			return s.ListLocations(ctx)
		}
	}

	source := datasetSource()
	zap.L().Info("loading dataset from source", zap.String("source", source))
	return fetcher.Load(ctx, newFetcher(), source)
}
