package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gridline-analytics/sitecast/internal/config"
	"github.com/gridline-analytics/sitecast/internal/store"
)

var cfg *config.Config

var (
	flagSamples   string
	flagProcessed string
)

var rootCmd = &cobra.Command{
	Use:   "sitecast",
	Short: "EVM and Monte Carlo forecasting for construction portfolios",
	Long:  "Batch analytics pipeline: ingests schedule, cost, risk and procurement data, computes earned-value KPIs, and forecasts cost and schedule outcomes via Monte Carlo simulation.",
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

func init() {
	rootCmd.PersistentFlags().StringVar(&flagSamples, "samples", "", "sample inputs directory (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagProcessed, "processed", "", "processed tables directory (default from config)")
}

// samplesDir resolves the sample inputs directory, flag over config.
func samplesDir() string {
	if flagSamples != "" {
		return flagSamples
	}
	return cfg.Paths.Samples
}

// processedStore opens the table store in the processed directory.
func processedStore() *store.Store {
	dir := flagProcessed
	if dir == "" {
		dir = cfg.Paths.Processed
	}
	return store.New(dir)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
