package alerts

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gridline-analytics/sitecast/internal/model"
)

// Alert is a single outbox entry: a threshold breach on a work element
// or a per-project Monte Carlo summary for the executive view.
type Alert struct {
	ID              string                     `json:"id"`
	TS              time.Time                  `json:"ts"`
	ProjectID       string                     `json:"project_id"`
	WorkElementID   string                     `json:"work_element_id,omitempty"`
	Trigger         string                     `json:"trigger"`
	KPIs            map[string]model.JSONFloat `json:"kpis"`
	Narrative       string                     `json:"narrative"`
	Recommendations []string                   `json:"recommendations"`
}

// Build evaluates the latest EVM period of every work element against the
// thresholds and appends one Monte Carlo summary alert per project. Breach
// checks skip KPIs that are NaN.
func Build(evm []model.EVMRow, summaries []model.Summary, th Thresholds) []Alert {
	now := time.Now().UTC()
	var alerts []Alert

	for _, row := range latestByElement(evm) {
		var triggers []string
		if !math.IsNaN(row.CPI) && row.CPI < th.CPIRed {
			triggers = append(triggers, fmt.Sprintf("CPI<%.2f", th.CPIRed))
		}
		if !math.IsNaN(row.SPI) && row.SPI < th.SPIRed {
			triggers = append(triggers, fmt.Sprintf("SPI<%.2f", th.SPIRed))
		}
		if !math.IsNaN(row.VAC) && row.VAC < 0 {
			triggers = append(triggers, "VAC<0")
		}
		if len(triggers) == 0 {
			continue
		}
		alerts = append(alerts, Alert{
			ID:            uuid.NewString(),
			TS:            now,
			ProjectID:     row.ProjectID,
			WorkElementID: row.WorkElementID,
			Trigger:       strings.Join(triggers, "|"),
			KPIs: map[string]model.JSONFloat{
				"CPI": model.JSONFloat(row.CPI),
				"SPI": model.JSONFloat(row.SPI),
				"EAC": model.JSONFloat(row.EAC),
				"VAC": model.JSONFloat(row.VAC),
				"BAC": model.JSONFloat(row.BAC),
			},
			Narrative: fmt.Sprintf("EVM thresholds breached for %s/%s", row.ProjectID, row.WorkElementID),
			Recommendations: []string{
				"Escalate to PM",
				"Review critical path",
				"Accelerate POs",
			},
		})
	}

	for _, s := range summaries {
		alerts = append(alerts, Alert{
			ID:        uuid.NewString(),
			TS:        now,
			ProjectID: s.ProjectID,
			Trigger:   "P80 summary",
			KPIs: map[string]model.JSONFloat{
				"P80_EAC": model.JSONFloat(s.EACP80),
				"EAC_P50": model.JSONFloat(s.EACP50),
			},
			Narrative:       "Monte Carlo summary for executive view",
			Recommendations: []string{"Review contingency"},
		})
	}

	return alerts
}

// latestByElement reduces the timeseries to the most recent period of each
// (ProjectID, WorkElementID), ordered canonically.
func latestByElement(evm []model.EVMRow) []model.EVMRow {
	type key struct{ proj, wbs string }
	latest := make(map[key]model.EVMRow)
	for _, row := range evm {
		k := key{row.ProjectID, row.WorkElementID}
		cur, ok := latest[k]
		// Periods are "YYYY-MM", so string order is chronological.
		if !ok || row.Period > cur.Period {
			latest[k] = row
		}
	}

	rows := make([]model.EVMRow, 0, len(latest))
	for _, row := range latest {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].ProjectID != rows[j].ProjectID {
			return rows[i].ProjectID < rows[j].ProjectID
		}
		return rows[i].WorkElementID < rows[j].WorkElementID
	})
	return rows
}
