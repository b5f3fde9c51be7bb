package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aussiedatagal/nsw-food-penalty-map/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "penaltymap",
	Short: "Food-safety penalty map backend",
	Long:  "Imports the published NSW food-safety penalty dataset, groups notices by location, and serves filtered locations and derived filter domains to the map frontend.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
