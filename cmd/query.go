package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aussiedatagal/nsw-food-penalty-map/internal/filterengine"
	"github.com/aussiedatagal/nsw-food-penalty-map/internal/server"
)

var (
	queryFlags filterFlags
	queryJSON  bool
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Filter locations from the command line",
	Long:  "Evaluates the same compound filter the map uses and prints matching locations.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		groups, err := loadGroups(ctx)
		if err != nil {
			return eris.Wrap(err, "load dataset")
		}
		ds := server.NewDataset(groups)

		var defaults filterengine.State
		if d := ds.Defaults(); d != nil {
			defaults = *d
		}
		f, err := queryFlags.build(cmd, defaults)
		if err != nil {
			return err
		}

		matched, stats := filterengine.ApplyWithStats(ds.Groups, f, ds.Defaults())
		zap.L().Debug("query evaluated",
			zap.Int("evaluated", stats.Evaluated),
			zap.Int("matched", stats.Matched),
			zap.Bool("active", filterengine.Active(f, ds.Defaults())),
		)

		if queryJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return eris.Wrap(enc.Encode(matched), "encode results")
		}

		for _, g := range matched {
			fmt.Printf("%s | %s | %d notice(s) | $%.2f\n",
				g.Name, g.Council, len(g.Penalties), g.TotalAmount())
		}
		fmt.Printf("\n%d of %d locations matched\n", len(matched), len(ds.Groups))
		return nil
	},
}

func init() {
	queryFlags.register(queryCmd)
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "print matching locations as JSON")
	rootCmd.AddCommand(queryCmd)
}
