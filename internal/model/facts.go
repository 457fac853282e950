// Package model holds the shared row types exchanged between pipeline stages.
package model

import "time"

// ScheduleFact is one schedule export row. Multiple rows per
// (ProjectID, WorkElementID) are aggregated by the timeseries builder.
type ScheduleFact struct {
	ProjectID          string
	WorkElementID      string
	PercentComplete    float64 // expected in [0,1], not enforced
	BudgetAtCompletion float64
}

// CostFact is one cost-ledger row at monthly granularity. Budget serves as
// the Planned Value source once aggregated per period.
type CostFact struct {
	ProjectID     string
	WorkElementID string
	Period        string // "YYYY-MM"
	ActualCost    float64
	Budget        float64
}

// Risk is one risk-register entry. Missing numeric fields default to zero so
// a sparse register still simulates.
type Risk struct {
	RiskID        string
	Probability   float64
	CostLow       float64
	CostML        float64
	CostHigh      float64
	SchedDaysLow  float64
	SchedDaysML   float64
	SchedDaysHigh float64
}

// Delivery is one procurement delivery row.
type Delivery struct {
	WorkElementID   string
	Vendor          string
	PlannedDelivery time.Time
	ActualDelivery  time.Time
	Qty             float64
	UnitCost        float64
}
