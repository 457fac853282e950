// Package narrative builds per-project variance narratives from the
// persisted EVM and Monte Carlo tables, rule-based with an optional
// LLM-composed summary.
package narrative

import (
	"math"
	"sort"

	"github.com/rotisserie/eris"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gridline-analytics/sitecast/internal/model"
)

// Contributor names a driver of forecast spread and its dollar and
// schedule impact.
type Contributor struct {
	Name          string          `json:"name"`
	Type          string          `json:"type"`
	ImpactDollars model.JSONFloat `json:"impact_dollars"`
	ImpactDays    model.JSONFloat `json:"impact_days"`
}

// Narrative is one variance narrative entry, appended to the JSONL log.
type Narrative struct {
	Level           string                     `json:"level"`
	ID              string                     `json:"id"`
	KPIs            map[string]model.JSONFloat `json:"kpis"`
	Summary         string                     `json:"summary"`
	RootCauses      []string                   `json:"root_causes"`
	Recommendations []string                   `json:"recommendations"`
	Confidence      float64                    `json:"confidence"`
	Contributors    []Contributor              `json:"contributors"`
}

var dollars = message.NewPrinter(language.English)

// Build assembles the rule-based narrative for a project from its latest
// EVM row and its Monte Carlo summary. It errors only when the project is
// absent from both tables.
func Build(projectID string, evm []model.EVMRow, summaries []model.Summary) (*Narrative, error) {
	last, haveEVM := latestRow(projectID, evm)
	summ, haveSumm := projectSummary(projectID, summaries)
	if !haveEVM && !haveSumm {
		return nil, eris.Errorf("narrative: no data for project %s", projectID)
	}

	cpi, spi, eac, vac := 1.0, 1.0, 0.0, 0.0
	if haveEVM {
		cpi, spi, eac, vac = orDefault(last.CPI, 1), orDefault(last.SPI, 1), orDefault(last.EAC, 0), orDefault(last.VAC, 0)
	}
	p50, p80 := 0.0, 0.0
	finishSpread := 0.0
	if haveSumm {
		p50, p80 = orDefault(summ.EACP50, 0), orDefault(summ.EACP80, 0)
		finishSpread = orDefault(summ.FinishP80, 0) - orDefault(summ.FinishP50, 0)
	}

	return &Narrative{
		Level: "project",
		ID:    projectID,
		KPIs: map[string]model.JSONFloat{
			"CPI":            model.JSONFloat(cpi),
			"SPI":            model.JSONFloat(spi),
			"EAC":            model.JSONFloat(eac),
			"VAC":            model.JSONFloat(vac),
			"P80_EAC":        model.JSONFloat(p80),
			"P80_FinishDate": model.JSONFloat(math.NaN()),
		},
		Summary: dollars.Sprintf("CPI %.2f, SPI %.2f. P50 $%.0f, P80 $%.0f.", cpi, spi, p50, p80),
		RootCauses: []string{
			"Procurement delays",
			"Productivity variance",
		},
		Recommendations: []string{
			"Expedite critical POs",
			"Reallocate resources",
		},
		Confidence: 0.8,
		Contributors: []Contributor{{
			Name:          "Top drivers",
			Type:          "risk",
			ImpactDollars: model.JSONFloat(p80 - p50),
			ImpactDays:    model.JSONFloat(finishSpread),
		}},
	}, nil
}

// latestRow returns the chronologically last timeseries row for a project.
func latestRow(projectID string, evm []model.EVMRow) (model.EVMRow, bool) {
	var rows []model.EVMRow
	for _, r := range evm {
		if r.ProjectID == projectID {
			rows = append(rows, r)
		}
	}
	if len(rows) == 0 {
		return model.EVMRow{}, false
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Period < rows[j].Period })
	return rows[len(rows)-1], true
}

func projectSummary(projectID string, summaries []model.Summary) (model.Summary, bool) {
	for _, s := range summaries {
		if s.ProjectID == projectID {
			return s, true
		}
	}
	return model.Summary{}, false
}

func orDefault(v, def float64) float64 {
	if math.IsNaN(v) {
		return def
	}
	return v
}
