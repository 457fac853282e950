package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gridline-analytics/sitecast/internal/alerts"
	"github.com/gridline-analytics/sitecast/internal/evm"
	"github.com/gridline-analytics/sitecast/internal/procurement"
	"github.com/gridline-analytics/sitecast/internal/sim"
)

var pipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Run the full batch pipeline",
	Long:  "Runs ingest, procurement, EVM and Monte Carlo in dependency order, then evaluates alerts. Equivalent to invoking the stages one by one.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		st := processedStore()

		// Stage 1: ingest.
		schedule, err := loadScheduleFacts()
		if err != nil {
			return err
		}
		if err := st.WriteScheduleFacts(schedule); err != nil {
			return err
		}
		zap.L().Info("pipeline: ingest done", zap.Int("rows", len(schedule)))

		// Stage 2: procurement impacts (optional input).
		deliveries, err := loadDeliveries()
		if err != nil {
			return err
		}
		if deliveries != nil {
			if err := st.WriteImpacts(procurement.Impacts(deliveries)); err != nil {
				return err
			}
			zap.L().Info("pipeline: procurement done", zap.Int("deliveries", len(deliveries)))
		}

		// Stage 3: EVM timeseries.
		method, err := evm.ParseEACMethod(cfg.EVM.EACMethod)
		if err != nil {
			return err
		}
		cost, err := loadCostFacts()
		if err != nil {
			return err
		}
		rows := evm.BuildTimeseries(schedule, cost, method)
		if err := st.WriteEVMTimeseries(rows); err != nil {
			return err
		}
		zap.L().Info("pipeline: evm done", zap.Int("rows", len(rows)))

		// Stage 4: Monte Carlo forecast.
		risks, err := loadRisks()
		if err != nil {
			return err
		}
		result := sim.Run(rows, risks, deliveries, sim.Config{
			Iterations:   cfg.MonteCarlo.Iterations,
			Seed:         cfg.MonteCarlo.Seed,
			DayToDollars: cfg.MonteCarlo.DayToDollars,
			CurvePoints:  cfg.MonteCarlo.CurvePoints,
		})
		if err := st.WriteRuns(result.Runs); err != nil {
			return err
		}
		if err := st.WriteSummary(result.Summary); err != nil {
			return err
		}
		if err := st.WriteCurve(result.Curve); err != nil {
			return err
		}
		zap.L().Info("pipeline: montecarlo done", zap.Int("projects", len(result.Summary)))

		// Stage 5: alerts.
		th, err := loadAlertThresholds()
		if err != nil {
			return err
		}
		built := alerts.Build(rows, result.Summary, th)
		if err := alerts.AppendOutbox(st.Path(alerts.OutboxFile), built); err != nil {
			return err
		}

		zap.L().Info("pipeline: complete", zap.Int("alerts", len(built)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pipelineCmd)
}
