package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gridline-analytics/sitecast/internal/evm"
	"github.com/gridline-analytics/sitecast/internal/store"
)

var evmEACMethod string

var evmCmd = &cobra.Command{
	Use:   "evm",
	Short: "Build the earned-value timeseries",
	Long:  "Joins the staged schedule facts with the cost ERP export and computes CPI, SPI, CV, SV, EAC and VAC per work element and period.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		methodName := evmEACMethod
		if methodName == "" {
			methodName = cfg.EVM.EACMethod
		}
		method, err := evm.ParseEACMethod(methodName)
		if err != nil {
			return err
		}

		st := processedStore()
		schedule, err := st.ReadScheduleFacts()
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

		zap.L().Info("evm: timeseries written",
			zap.Int("rows", len(rows)),
			zap.String("eac_method", string(method)),
			zap.String("out", st.Path(store.EVMTimeseriesFile)),
		)
		return nil
	},
}

func init() {
	evmCmd.Flags().StringVar(&evmEACMethod, "eac-method", "", "EAC convention: cpi or transparent (default from config)")
	rootCmd.AddCommand(evmCmd)
}
