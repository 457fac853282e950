package main

import (
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gridline-analytics/sitecast/internal/ingest"
	"github.com/gridline-analytics/sitecast/internal/model"
	"github.com/gridline-analytics/sitecast/internal/store"
)

// Sample input file names under the samples directory.
const (
	scheduleCSV  = "schedule_activities.csv"
	scheduleXLSX = "schedule_activities.xlsx"
	costCSV      = "cost_erp.csv"
	riskCSV      = "risk_register.csv"
	procureCSV   = "procurement.csv"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Validate and stage the schedule export",
	Long:  "Reads the schedule activity export (CSV or XLSX) from the samples directory, validates its schema, and writes the staged schedule facts to the processed directory.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		facts, err := loadScheduleFacts()
		if err != nil {
			return err
		}

		st := processedStore()
		if err := st.WriteScheduleFacts(facts); err != nil {
			return err
		}

		zap.L().Info("ingest: schedule staged",
			zap.Int("rows", len(facts)),
			zap.String("out", st.Path(store.ScheduleFile)),
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

// loadScheduleFacts reads the schedule export, preferring CSV and falling
// back to XLSX when only the workbook is present.
func loadScheduleFacts() ([]model.ScheduleFact, error) {
	csvPath := filepath.Join(samplesDir(), scheduleCSV)
	if _, err := os.Stat(csvPath); err == nil {
		t, err := ingest.ReadCSV(csvPath)
		if err != nil {
			return nil, err
		}
		return ingest.ScheduleFacts(t)
	}

	xlsxPath := filepath.Join(samplesDir(), scheduleXLSX)
	if _, err := os.Stat(xlsxPath); err != nil {
		return nil, eris.Errorf("ingest: no %s or %s in %s", scheduleCSV, scheduleXLSX, samplesDir())
	}
	t, err := ingest.ReadXLSX(xlsxPath, ingest.XLSXOptions{})
	if err != nil {
		return nil, err
	}
	return ingest.ScheduleFacts(t)
}

// loadCostFacts reads and validates the cost ERP export.
func loadCostFacts() ([]model.CostFact, error) {
	t, err := ingest.ReadCSV(filepath.Join(samplesDir(), costCSV))
	if err != nil {
		return nil, err
	}
	return ingest.CostFacts(t)
}

// loadRisks reads the risk register. Malformed numeric cells default to
// zero rather than failing the run.
func loadRisks() ([]model.Risk, error) {
	t, err := ingest.ReadCSV(filepath.Join(samplesDir(), riskCSV))
	if err != nil {
		return nil, err
	}
	return ingest.Risks(t), nil
}

// loadDeliveries reads the procurement history. The file is optional.
func loadDeliveries() ([]model.Delivery, error) {
	path := filepath.Join(samplesDir(), procureCSV)
	if _, err := os.Stat(path); err != nil {
		return nil, nil
	}
	t, err := ingest.ReadCSV(path)
	if err != nil {
		return nil, err
	}
	return ingest.Deliveries(t)
}
