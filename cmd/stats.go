package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/aussiedatagal/nsw-food-penalty-map/internal/filterengine"
	"github.com/aussiedatagal/nsw-food-penalty-map/internal/server"
)

var statsFlags filterFlags

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Dataset summary and per-stage filter rejection counters",
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
		f, err := statsFlags.build(cmd, defaults)
		if err != nil {
			return err
		}

		_, stats := filterengine.ApplyWithStats(ds.Groups, f, ds.Defaults())

		fmt.Printf("locations:       %d\n", len(ds.Groups))
		fmt.Printf("records:         %d\n", ds.RecordCount())
		fmt.Printf("filters active:  %t\n", filterengine.Active(f, ds.Defaults()))
		fmt.Println()
		fmt.Printf("matched:                 %d\n", stats.Matched)
		fmt.Printf("rejected text:           %d\n", stats.RejectedText)
		fmt.Printf("rejected offence count:  %d\n", stats.RejectedOffenceCount)
		fmt.Printf("rejected total amount:   %d\n", stats.RejectedTotalAmount)
		fmt.Printf("rejected record match:   %d\n", stats.RejectedRecordMatch)
		return nil
	},
}

func init() {
	statsFlags.register(statsCmd)
	rootCmd.AddCommand(statsCmd)
}
