package evm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTransparent(t *testing.T) {
	t.Parallel()

	// Executive-report example: over cost, behind schedule.
	m := Compute(Inputs{PV: 400000, EV: 350000, AC: 420000, BAC: 1000000}, EACTransparent)

	assert.InDelta(t, 350000.0/420000.0, m.CPI, 1e-6)
	assert.InDelta(t, 0.875, m.SPI, 1e-6)
	assert.InDelta(t, -70000, m.CV, 1e-6)
	assert.InDelta(t, -50000, m.SV, 1e-6)
	assert.InDelta(t, 1070000, m.EAC, 1e-6)
	assert.InDelta(t, -70000, m.VAC, 1e-6)
}

func TestComputeViaCPI(t *testing.T) {
	t.Parallel()

	m := Compute(Inputs{PV: 500, EV: 500, AC: 400, BAC: 1000}, EACViaCPI)

	assert.InDelta(t, 1.25, m.CPI, 1e-6)
	assert.InDelta(t, 1.0, m.SPI, 1e-6)
	assert.InDelta(t, 100, m.CV, 1e-6)
	assert.InDelta(t, 0, m.SV, 1e-6)
	assert.InDelta(t, 800, m.EAC, 1e-6) // 1000 / 1.25
	assert.InDelta(t, 200, m.VAC, 1e-6)
}

func TestComputeZeroDenominators(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		in     Inputs
		method EACMethod
		check  func(t *testing.T, m Metrics)
	}{
		{
			name:   "AC zero: CPI undefined, cpi EAC undefined",
			in:     Inputs{PV: 100, EV: 50, AC: 0, BAC: 200},
			method: EACViaCPI,
			check: func(t *testing.T, m Metrics) {
				assert.True(t, math.IsNaN(m.CPI))
				assert.True(t, math.IsNaN(m.EAC))
				assert.True(t, math.IsNaN(m.VAC))
				assert.InDelta(t, 50, m.CV, 1e-6)
			},
		},
		{
			name:   "AC zero: transparent EAC still defined",
			in:     Inputs{PV: 100, EV: 50, AC: 0, BAC: 200},
			method: EACTransparent,
			check: func(t *testing.T, m Metrics) {
				assert.True(t, math.IsNaN(m.CPI))
				assert.InDelta(t, 150, m.EAC, 1e-6)
				assert.InDelta(t, 50, m.VAC, 1e-6)
			},
		},
		{
			name:   "PV zero: SPI undefined, SV defined",
			in:     Inputs{PV: 0, EV: 50, AC: 40, BAC: 200},
			method: EACViaCPI,
			check: func(t *testing.T, m Metrics) {
				assert.True(t, math.IsNaN(m.SPI))
				assert.InDelta(t, 50, m.SV, 1e-6)
			},
		},
		{
			name:   "CPI zero: cpi EAC undefined rather than infinite",
			in:     Inputs{PV: 100, EV: 0, AC: 40, BAC: 200},
			method: EACViaCPI,
			check: func(t *testing.T, m Metrics) {
				assert.InDelta(t, 0, m.CPI, 1e-9)
				assert.True(t, math.IsNaN(m.EAC))
				assert.True(t, math.IsNaN(m.VAC))
			},
		},
		{
			name:   "all zero: no panic, differences zero",
			in:     Inputs{},
			method: EACTransparent,
			check: func(t *testing.T, m Metrics) {
				assert.True(t, math.IsNaN(m.CPI))
				assert.True(t, math.IsNaN(m.SPI))
				assert.InDelta(t, 0, m.CV, 1e-9)
				assert.InDelta(t, 0, m.SV, 1e-9)
				assert.InDelta(t, 0, m.EAC, 1e-9)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tt.check(t, Compute(tt.in, tt.method))
		})
	}
}

func TestParseEACMethod(t *testing.T) {
	t.Parallel()

	m, err := ParseEACMethod("cpi")
	require.NoError(t, err)
	assert.Equal(t, EACViaCPI, m)

	m, err = ParseEACMethod("transparent")
	require.NoError(t, err)
	assert.Equal(t, EACTransparent, m)

	_, err = ParseEACMethod("optimistic")
	assert.Error(t, err)
}
