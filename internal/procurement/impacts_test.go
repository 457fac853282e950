package procurement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridline-analytics/sitecast/internal/model"
)

var day = 24 * time.Hour

func delivery(wbs, vendor string, delayDays int, qty, unitCost float64) model.Delivery {
	planned := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	return model.Delivery{
		WorkElementID:   wbs,
		Vendor:          vendor,
		PlannedDelivery: planned,
		ActualDelivery:  planned.Add(time.Duration(delayDays) * day),
		Qty:             qty,
		UnitCost:        unitCost,
	}
}

func TestDelayDays(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 12, DelayDays(delivery("W1", "V1", 12, 1, 1)), 1e-9)
	assert.InDelta(t, -3, DelayDays(delivery("W1", "V1", -3, 1, 1)), 1e-9)
	assert.InDelta(t, 0, DelayDays(model.Delivery{}), 1e-9)

	// Missing actual date counts as no delay.
	d := delivery("W1", "V1", 5, 1, 1)
	d.ActualDelivery = time.Time{}
	assert.InDelta(t, 0, DelayDays(d), 1e-9)
}

func TestDelayCost(t *testing.T) {
	t.Parallel()

	// 10 days x 200 units x $50 x 0.001
	assert.InDelta(t, 100, DelayCost(delivery("W1", "V1", 10, 200, 50)), 1e-9)

	// Early delivery costs nothing.
	assert.InDelta(t, 0, DelayCost(delivery("W1", "V1", -4, 200, 50)), 1e-9)
}

func TestImpactsAggregation(t *testing.T) {
	t.Parallel()

	deliveries := []model.Delivery{
		delivery("W2", "Acme", 10, 100, 10),
		delivery("W1", "Acme", 5, 10, 100),
		delivery("W1", "Acme", -2, 10, 100), // early: days count, cost floored
		delivery("W1", "Bolt", 3, 1, 1),
	}

	impacts := Impacts(deliveries)
	require.Len(t, impacts, 3)

	// Sorted by work element then vendor.
	assert.Equal(t, "W1", impacts[0].WorkElementID)
	assert.Equal(t, "Acme", impacts[0].Vendor)
	assert.InDelta(t, 3, impacts[0].DelayDays, 1e-9) // 5 + (-2)
	assert.InDelta(t, 5, impacts[0].DelayCost, 1e-9) // 5*10*100*0.001 + 0

	assert.Equal(t, "W1", impacts[1].WorkElementID)
	assert.Equal(t, "Bolt", impacts[1].Vendor)

	assert.Equal(t, "W2", impacts[2].WorkElementID)
	assert.InDelta(t, 10, impacts[2].DelayDays, 1e-9)
	assert.InDelta(t, 10, impacts[2].DelayCost, 1e-9)
}
