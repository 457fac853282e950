package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gridline-analytics/sitecast/internal/sim"
	"github.com/gridline-analytics/sitecast/internal/store"
)

var (
	mcIters int
	mcSeed  uint64
)

var montecarloCmd = &cobra.Command{
	Use:   "montecarlo",
	Short: "Run the Monte Carlo cost and schedule forecast",
	Long:  "Samples the risk register and procurement delay history against the EVM baseline and writes per-iteration runs, P10/P50/P80 summaries, and S-curve tables.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		st := processedStore()
		evmRows, err := st.ReadEVMTimeseries()
		if err != nil {
			return err
		}
		risks, err := loadRisks()
		if err != nil {
			return err
		}
		deliveries, err := loadDeliveries()
		if err != nil {
			return err
		}

		simCfg := sim.Config{
			Iterations:   cfg.MonteCarlo.Iterations,
			Seed:         cfg.MonteCarlo.Seed,
			DayToDollars: cfg.MonteCarlo.DayToDollars,
			CurvePoints:  cfg.MonteCarlo.CurvePoints,
		}
		if mcIters > 0 {
			simCfg.Iterations = mcIters
		}
		if cmd.Flags().Changed("seed") {
			simCfg.Seed = mcSeed
		}

		result := sim.Run(evmRows, risks, deliveries, simCfg)

		if err := st.WriteRuns(result.Runs); err != nil {
			return err
		}
		if err := st.WriteSummary(result.Summary); err != nil {
			return err
		}
		if err := st.WriteCurve(result.Curve); err != nil {
			return err
		}

		zap.L().Info("montecarlo: forecast written",
			zap.Int("iterations", simCfg.Iterations),
			zap.Uint64("seed", simCfg.Seed),
			zap.Int("runs", len(result.Runs)),
			zap.Int("projects", len(result.Summary)),
			zap.String("out", st.Path(store.SummaryFile)),
		)
		return nil
	},
}

func init() {
	montecarloCmd.Flags().IntVar(&mcIters, "iters", 0, "simulation iterations (default from config)")
	montecarloCmd.Flags().Uint64Var(&mcSeed, "seed", 0, "random seed (default from config)")
	rootCmd.AddCommand(montecarloCmd)
}
