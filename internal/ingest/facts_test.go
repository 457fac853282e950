package ingest

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTable(t *testing.T, csv string) *Table {
	t.Helper()
	tbl, err := ParseCSV(strings.NewReader(strings.TrimSpace(csv)), "test.csv")
	require.NoError(t, err)
	return tbl
}

func TestScheduleFacts(t *testing.T) {
	t.Parallel()

	tbl := mustTable(t, `
ProjectID,WBS,PercentComplete,BAC
P1,W1,0.5,1000
P1,W2,not-a-number,
`)

	facts, err := ScheduleFacts(tbl)
	require.NoError(t, err)
	require.Len(t, facts, 2)

	assert.Equal(t, "P1", facts[0].ProjectID)
	assert.Equal(t, "W1", facts[0].WorkElementID)
	assert.InDelta(t, 0.5, facts[0].PercentComplete, 1e-9)
	assert.InDelta(t, 1000, facts[0].BudgetAtCompletion, 1e-9)

	// Unparseable and empty numeric cells coerce to NaN, not an error.
	assert.True(t, math.IsNaN(facts[1].PercentComplete))
	assert.True(t, math.IsNaN(facts[1].BudgetAtCompletion))
}

func TestScheduleFactsLongColumnNames(t *testing.T) {
	t.Parallel()

	tbl := mustTable(t, `
ProjectID,WorkElementID,PercentComplete,BudgetAtCompletion
P1,W1,1.0,50
`)

	facts, err := ScheduleFacts(tbl)
	require.NoError(t, err)
	require.Len(t, facts, 1)
	assert.Equal(t, "W1", facts[0].WorkElementID)
	assert.InDelta(t, 50, facts[0].BudgetAtCompletion, 1e-9)
}

func TestScheduleFactsSchemaError(t *testing.T) {
	t.Parallel()

	tbl := mustTable(t, `
ProjectID,SomethingElse
P1,x
`)

	_, err := ScheduleFacts(tbl)
	require.Error(t, err)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	// Every missing column is named, not just the first.
	assert.Equal(t, []string{"WorkElementID", "PercentComplete", "BudgetAtCompletion"}, schemaErr.Missing)
	assert.Contains(t, schemaErr.Error(), "test.csv")
	assert.Contains(t, schemaErr.Error(), "PercentComplete")
}

func TestCostFacts(t *testing.T) {
	t.Parallel()

	tbl := mustTable(t, `
ProjectID,WBS,Period,ActualCost,Budget
P1,W1,2025-01,400,500
P1,W1,2025-01,oops,100
`)

	facts, err := CostFacts(tbl)
	require.NoError(t, err)
	require.Len(t, facts, 2)
	assert.Equal(t, "2025-01", facts[0].Period)
	assert.InDelta(t, 400, facts[0].ActualCost, 1e-9)
	assert.True(t, math.IsNaN(facts[1].ActualCost))
	assert.InDelta(t, 100, facts[1].Budget, 1e-9)
}

func TestCostFactsSchemaError(t *testing.T) {
	t.Parallel()

	tbl := mustTable(t, `
ProjectID,WBS
P1,W1
`)

	_, err := CostFacts(tbl)
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, []string{"Period", "ActualCost", "Budget"}, schemaErr.Missing)
}

func TestRisksDefaultsMissingColumnsToZero(t *testing.T) {
	t.Parallel()

	// Only two of the numeric columns exist; the rest default to zero and
	// never produce a schema error.
	tbl := mustTable(t, `
RiskID,Probability,CostML
R1,0.4,50000
R2,,junk
`)

	risks := Risks(tbl)
	require.Len(t, risks, 2)

	assert.Equal(t, "R1", risks[0].RiskID)
	assert.InDelta(t, 0.4, risks[0].Probability, 1e-9)
	assert.InDelta(t, 50000, risks[0].CostML, 1e-9)
	assert.InDelta(t, 0, risks[0].CostLow, 1e-9)
	assert.InDelta(t, 0, risks[0].CostHigh, 1e-9)
	assert.InDelta(t, 0, risks[0].SchedDaysHigh, 1e-9)

	// Blank and unparseable cells also default to zero.
	assert.InDelta(t, 0, risks[1].Probability, 1e-9)
	assert.InDelta(t, 0, risks[1].CostML, 1e-9)
}

func TestDeliveries(t *testing.T) {
	t.Parallel()

	tbl := mustTable(t, `
WBS,Vendor,PlannedDelivery,ActualDelivery,Qty,UnitCost
W1,Acme,2025-01-10,2025-01-22,100,50
W2,Bolt,2025-02-01,not-a-date,10,5
`)

	deliveries, err := Deliveries(tbl)
	require.NoError(t, err)
	require.Len(t, deliveries, 2)

	assert.Equal(t, "Acme", deliveries[0].Vendor)
	assert.Equal(t, 10, deliveries[0].PlannedDelivery.Day())
	assert.Equal(t, 22, deliveries[0].ActualDelivery.Day())
	assert.InDelta(t, 100, deliveries[0].Qty, 1e-9)

	// Unparseable dates yield the zero time.
	assert.True(t, deliveries[1].ActualDelivery.IsZero())
}

func TestDeliveriesSchemaError(t *testing.T) {
	t.Parallel()

	tbl := mustTable(t, `
WBS,Qty
W1,5
`)

	_, err := Deliveries(tbl)
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, []string{"PlannedDelivery", "ActualDelivery"}, schemaErr.Missing)
}
