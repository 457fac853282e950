// Package procurement derives delivery-delay impacts from procurement
// history.
package procurement

import (
	"sort"

	"github.com/gridline-analytics/sitecast/internal/model"
)

// delayCostScale converts delay-days x quantity x unit cost into a dollar
// impact estimate.
const delayCostScale = 0.001

// DelayDays returns the delivery slip in whole days. Rows with a missing
// planned or actual date count as zero delay.
func DelayDays(d model.Delivery) float64 {
	if d.PlannedDelivery.IsZero() || d.ActualDelivery.IsZero() {
		return 0
	}
	return float64(int(d.ActualDelivery.Sub(d.PlannedDelivery).Hours() / 24))
}

// DelayCost estimates the dollar impact of one delivery. Early deliveries
// (negative delay) cost nothing.
func DelayCost(d model.Delivery) float64 {
	days := DelayDays(d)
	if days < 0 {
		days = 0
	}
	return days * d.Qty * d.UnitCost * delayCostScale
}

// Impacts aggregates delay days and delay cost per (work element, vendor),
// sorted by work element then vendor.
func Impacts(deliveries []model.Delivery) []model.DelayImpact {
	type key struct {
		wbs    string
		vendor string
	}
	accs := make(map[key]*model.DelayImpact)
	for _, d := range deliveries {
		k := key{d.WorkElementID, d.Vendor}
		agg, ok := accs[k]
		if !ok {
			agg = &model.DelayImpact{WorkElementID: d.WorkElementID, Vendor: d.Vendor}
			accs[k] = agg
		}
		agg.DelayDays += DelayDays(d)
		agg.DelayCost += DelayCost(d)
	}

	out := make([]model.DelayImpact, 0, len(accs))
	for _, agg := range accs {
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].WorkElementID != out[j].WorkElementID {
			return out[i].WorkElementID < out[j].WorkElementID
		}
		return out[i].Vendor < out[j].Vendor
	})
	return out
}
