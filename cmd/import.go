package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aussiedatagal/nsw-food-penalty-map/internal/fetcher"
)

var importSource string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Fetch and cache the penalty dataset",
	Long:  "Reads the published dataset (grouped locations, or flat penalty notices which get grouped here) and replaces the local SQLite cache.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		source := importSource
		if source == "" {
			source = datasetSource()
		}

		groups, err := fetcher.Load(ctx, newFetcher(), source)
		if err != nil {
			return eris.Wrapf(err, "load dataset from %s", source)
		}

		s, err := openStore(ctx)
		if err != nil {
			return eris.Wrap(err, "open store")
		}
		defer s.Close() //nolint:errcheck

		if err := s.ReplaceLocations(ctx, groups); err != nil {
			return eris.Wrap(err, "replace locations")
		}

		records := 0
		for _, g := range groups {
			records += len(g.Penalties)
		}
		zap.L().Info("import complete",
			zap.String("source", source),
			zap.Int("locations", len(groups)),
			zap.Int("records", records),
			zap.String("store", cfg.Store.Path),
		)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importSource, "source", "", "dataset path or URL (default from config)")
	rootCmd.AddCommand(importCmd)
}
