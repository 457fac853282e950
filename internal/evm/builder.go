package evm

import (
	"math"
	"sort"

	"github.com/gridline-analytics/sitecast/internal/model"
)

// elementKey identifies a work element within a project.
type elementKey struct {
	project string
	element string
}

type periodKey struct {
	project string
	element string
	period  string
}

// elementAgg is the per-element schedule aggregate.
type elementAgg struct {
	ev  float64
	bac float64
}

// BuildTimeseries joins schedule-derived earned value with the cost ledger
// and derives KPIs for every (project, work element, period) cell.
//
// Schedule facts aggregate per element (PercentComplete by mean, budget by
// sum); EV = BAC x mean(PercentComplete) and is broadcast to every period of
// the element. Cost facts aggregate per period (ActualCost sum -> AC, Budget
// sum -> PV). The join is a left join from the cost side: periods with no
// schedule aggregate keep NaN EV/BAC rather than being dropped. NaN input
// cells are skipped by the aggregation, matching the coercion contract of
// the ingest layer.
func BuildTimeseries(schedule []model.ScheduleFact, cost []model.CostFact, method EACMethod) []model.EVMRow {
	elements := aggregateSchedule(schedule)

	type costAgg struct {
		ac float64
		pv float64
	}
	periods := make(map[periodKey]*costAgg)
	for _, c := range cost {
		k := periodKey{c.ProjectID, c.WorkElementID, c.Period}
		agg, ok := periods[k]
		if !ok {
			agg = &costAgg{}
			periods[k] = agg
		}
		if !math.IsNaN(c.ActualCost) {
			agg.ac += c.ActualCost
		}
		if !math.IsNaN(c.Budget) {
			agg.pv += c.Budget
		}
	}

	rows := make([]model.EVMRow, 0, len(periods))
	for k, agg := range periods {
		ev, bac := math.NaN(), math.NaN()
		if el, ok := elements[elementKey{k.project, k.element}]; ok {
			ev, bac = el.ev, el.bac
		}

		m := Compute(Inputs{PV: agg.pv, EV: ev, AC: agg.ac, BAC: bac}, method)
		rows = append(rows, model.EVMRow{
			ProjectID:     k.project,
			WorkElementID: k.element,
			Period:        k.period,
			EV:            ev,
			PV:            agg.pv,
			AC:            agg.ac,
			BAC:           bac,
			CPI:           m.CPI,
			SPI:           m.SPI,
			EAC:           m.EAC,
			VAC:           m.VAC,
			CV:            m.CV,
			SV:            m.SV,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].ProjectID != rows[j].ProjectID {
			return rows[i].ProjectID < rows[j].ProjectID
		}
		if rows[i].WorkElementID != rows[j].WorkElementID {
			return rows[i].WorkElementID < rows[j].WorkElementID
		}
		return rows[i].Period < rows[j].Period
	})
	return rows
}

// aggregateSchedule reduces schedule facts to one EV/BAC pair per element.
func aggregateSchedule(schedule []model.ScheduleFact) map[elementKey]elementAgg {
	type acc struct {
		pcSum   float64
		pcCount int
		bacSum  float64
	}
	accs := make(map[elementKey]*acc)
	for _, s := range schedule {
		k := elementKey{s.ProjectID, s.WorkElementID}
		a, ok := accs[k]
		if !ok {
			a = &acc{}
			accs[k] = a
		}
		if !math.IsNaN(s.PercentComplete) {
			a.pcSum += s.PercentComplete
			a.pcCount++
		}
		if !math.IsNaN(s.BudgetAtCompletion) {
			a.bacSum += s.BudgetAtCompletion
		}
	}

	out := make(map[elementKey]elementAgg, len(accs))
	for k, a := range accs {
		meanPC := math.NaN()
		if a.pcCount > 0 {
			meanPC = a.pcSum / float64(a.pcCount)
		}
		out[k] = elementAgg{ev: a.bacSum * meanPC, bac: a.bacSum}
	}
	return out
}
