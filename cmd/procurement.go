package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gridline-analytics/sitecast/internal/procurement"
	"github.com/gridline-analytics/sitecast/internal/store"
)

var procurementCmd = &cobra.Command{
	Use:   "procurement",
	Short: "Compute vendor delay impacts from the procurement history",
	RunE: func(cmd *cobra.Command, _ []string) error {
		deliveries, err := loadDeliveries()
		if err != nil {
			return err
		}
		if deliveries == nil {
			return eris.Errorf("procurement: no %s in %s", procureCSV, samplesDir())
		}

		impacts := procurement.Impacts(deliveries)

		st := processedStore()
		if err := st.WriteImpacts(impacts); err != nil {
			return err
		}

		zap.L().Info("procurement: impacts written",
			zap.Int("rows", len(impacts)),
			zap.String("out", st.Path(store.ImpactsFile)),
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(procurementCmd)
}
