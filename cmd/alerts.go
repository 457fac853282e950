package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gridline-analytics/sitecast/internal/alerts"
)

var (
	alertsConfigFile string
	alertsProd       bool
)

var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "Evaluate KPI thresholds and append breaches to the outbox",
	RunE: func(cmd *cobra.Command, _ []string) error {
		th, err := loadAlertThresholds()
		if err != nil {
			return err
		}

		st := processedStore()
		evmRows, err := st.ReadEVMTimeseries()
		if err != nil {
			return err
		}
		summaries, err := st.ReadSummary()
		if err != nil {
			return err
		}

		built := alerts.Build(evmRows, summaries, th)
		outPath := st.Path(alerts.OutboxFile)
		if err := alerts.AppendOutbox(outPath, built); err != nil {
			return err
		}

		zap.L().Info("alerts: outbox updated",
			zap.Int("alerts", len(built)),
			zap.String("out", outPath),
			zap.Bool("dry_run", !alertsProd),
		)
		return nil
	},
}

func init() {
	alertsCmd.Flags().StringVar(&alertsConfigFile, "config", "", "thresholds YAML file (default from config)")
	alertsCmd.Flags().BoolVar(&alertsProd, "prod", false, "mark the run as production rather than dry-run")
	rootCmd.AddCommand(alertsCmd)
}

// loadAlertThresholds resolves thresholds from the YAML file when one is
// configured, otherwise from the main config values.
func loadAlertThresholds() (alerts.Thresholds, error) {
	path := alertsConfigFile
	if path == "" {
		path = cfg.Alerts.ThresholdsFile
	}
	if path != "" {
		return alerts.LoadThresholds(path)
	}

	th := alerts.DefaultThresholds()
	if cfg.Alerts.CPIRed > 0 {
		th.CPIRed = cfg.Alerts.CPIRed
	}
	if cfg.Alerts.SPIRed > 0 {
		th.SPIRed = cfg.Alerts.SPIRed
	}
	return th, nil
}
