package ingest

import (
	"github.com/gridline-analytics/sitecast/internal/model"
)

// Column names accepted in the sample files. WBS and BAC are the short forms
// most schedule and cost exports use.
const (
	colProjectID        = "ProjectID"
	colWorkElement      = "WorkElementID"
	colWorkElementAlt   = "WBS"
	colPercentComplete  = "PercentComplete"
	colBudgetAtCompl    = "BudgetAtCompletion"
	colBudgetAtComplAlt = "BAC"
	colPeriod           = "Period"
	colActualCost       = "ActualCost"
	colBudget           = "Budget"
)

// ScheduleFacts parses a schedule table. A *SchemaError is returned when
// required columns are absent; unparseable numeric cells become NaN.
func ScheduleFacts(t *Table) ([]model.ScheduleFact, error) {
	if err := t.requireColumns(
		column{name: colProjectID},
		column{name: colWorkElement, aliases: []string{colWorkElementAlt}},
		column{name: colPercentComplete},
		column{name: colBudgetAtCompl, aliases: []string{colBudgetAtComplAlt}},
	); err != nil {
		return nil, err
	}

	proj := t.Col(colProjectID)
	wbs := t.Col(colWorkElement, colWorkElementAlt)
	pc := t.Col(colPercentComplete)
	bac := t.Col(colBudgetAtCompl, colBudgetAtComplAlt)

	facts := make([]model.ScheduleFact, 0, len(t.Rows))
	for _, row := range t.Rows {
		facts = append(facts, model.ScheduleFact{
			ProjectID:          Cell(row, proj),
			WorkElementID:      Cell(row, wbs),
			PercentComplete:    Float(Cell(row, pc)),
			BudgetAtCompletion: Float(Cell(row, bac)),
		})
	}
	return facts, nil
}

// CostFacts parses a cost-ledger table.
func CostFacts(t *Table) ([]model.CostFact, error) {
	if err := t.requireColumns(
		column{name: colProjectID},
		column{name: colWorkElement, aliases: []string{colWorkElementAlt}},
		column{name: colPeriod},
		column{name: colActualCost},
		column{name: colBudget},
	); err != nil {
		return nil, err
	}

	proj := t.Col(colProjectID)
	wbs := t.Col(colWorkElement, colWorkElementAlt)
	period := t.Col(colPeriod)
	ac := t.Col(colActualCost)
	budget := t.Col(colBudget)

	facts := make([]model.CostFact, 0, len(t.Rows))
	for _, row := range t.Rows {
		facts = append(facts, model.CostFact{
			ProjectID:     Cell(row, proj),
			WorkElementID: Cell(row, wbs),
			Period:        Cell(row, period),
			ActualCost:    Float(Cell(row, ac)),
			Budget:        Float(Cell(row, budget)),
		})
	}
	return facts, nil
}

// Risks parses a risk register. Missing numeric columns are not a schema
// error: they default to zero so the simulation proceeds with those risks
// contributing no impact.
func Risks(t *Table) []model.Risk {
	id := t.Col("RiskID")
	prob := t.Col("Probability")
	costLow := t.Col("CostLow")
	costML := t.Col("CostML")
	costHigh := t.Col("CostHigh")
	daysLow := t.Col("SchedDaysLow")
	daysML := t.Col("SchedDaysML")
	daysHigh := t.Col("SchedDaysHigh")

	risks := make([]model.Risk, 0, len(t.Rows))
	for _, row := range t.Rows {
		risks = append(risks, model.Risk{
			RiskID:        Cell(row, id),
			Probability:   FloatOrZero(Cell(row, prob)),
			CostLow:       FloatOrZero(Cell(row, costLow)),
			CostML:        FloatOrZero(Cell(row, costML)),
			CostHigh:      FloatOrZero(Cell(row, costHigh)),
			SchedDaysLow:  FloatOrZero(Cell(row, daysLow)),
			SchedDaysML:   FloatOrZero(Cell(row, daysML)),
			SchedDaysHigh: FloatOrZero(Cell(row, daysHigh)),
		})
	}
	return risks
}

// Deliveries parses a procurement history table. The two delivery dates are
// required; quantity, unit cost, work element and vendor are optional.
func Deliveries(t *Table) ([]model.Delivery, error) {
	if err := t.requireColumns(
		column{name: "PlannedDelivery"},
		column{name: "ActualDelivery"},
	); err != nil {
		return nil, err
	}

	planned := t.Col("PlannedDelivery")
	actual := t.Col("ActualDelivery")
	wbs := t.Col(colWorkElement, colWorkElementAlt)
	vendor := t.Col("Vendor")
	qty := t.Col("Qty")
	unitCost := t.Col("UnitCost")

	deliveries := make([]model.Delivery, 0, len(t.Rows))
	for _, row := range t.Rows {
		deliveries = append(deliveries, model.Delivery{
			WorkElementID:   Cell(row, wbs),
			Vendor:          Cell(row, vendor),
			PlannedDelivery: Date(Cell(row, planned)),
			ActualDelivery:  Date(Cell(row, actual)),
			Qty:             FloatOrZero(Cell(row, qty)),
			UnitCost:        FloatOrZero(Cell(row, unitCost)),
		})
	}
	return deliveries, nil
}
