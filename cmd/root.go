package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/geoda-region/maxp-regions/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "maxp",
	Short: "Max-p regions heuristic solver",
	Long:  "Partitions a set of geographic areas into the maximum feasible number of spatially contiguous, floor-constrained regions, minimizing within-region heterogeneity.",
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
