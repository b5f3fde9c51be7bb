package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aussiedatagal/nsw-food-penalty-map/internal/filterengine"
)

var domainsCmd = &cobra.Command{
	Use:   "domains",
	Short: "Print the derived filter domains",
	Long:  "Derives the filter domains (date span, amount spans, offence options, councils, map bounds) from the dataset and prints them as YAML.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		groups, err := loadGroups(cmd.Context())
		if err != nil {
			return eris.Wrap(err, "load dataset")
		}

		out, err := yaml.Marshal(filterengine.Derive(groups))
		if err != nil {
			return eris.Wrap(err, "marshal domains")
		}
		fmt.Print(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(domainsCmd)
}
