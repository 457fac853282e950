// Package evm computes earned-value KPIs and the per-period EVM timeseries.
//
// Undefined results (zero denominators, unmatched joins, unparseable input
// cells) are NaN sentinels, never errors: batch runs always complete and
// downstream aggregation skips the sentinel.
package evm

import (
	"math"

	"github.com/rotisserie/eris"
)

// EACMethod names an Estimate-at-Completion convention. The two conventions
// coexist in reporting practice, so callers pick one explicitly instead of
// the package guessing.
type EACMethod string

const (
	// EACViaCPI assumes remaining work proceeds at the current cost
	// efficiency: EAC = BAC / CPI. Undefined when CPI is undefined or zero.
	EACViaCPI EACMethod = "cpi"

	// EACTransparent assumes remaining work proceeds at the planned rate:
	// EAC = AC + (BAC - EV). Always defined.
	EACTransparent EACMethod = "transparent"
)

// ParseEACMethod validates a method name from config or a CLI flag.
func ParseEACMethod(s string) (EACMethod, error) {
	switch EACMethod(s) {
	case EACViaCPI, EACTransparent:
		return EACMethod(s), nil
	}
	return "", eris.Errorf("evm: unknown eac method %q (want %q or %q)", s, EACViaCPI, EACTransparent)
}

// Inputs are the four base earned-value quantities for one record.
// Any finite value including zero is permitted.
type Inputs struct {
	PV  float64
	EV  float64
	AC  float64
	BAC float64
}

// Metrics are the derived KPIs for one record.
type Metrics struct {
	CPI float64
	SPI float64
	CV  float64
	SV  float64
	EAC float64
	VAC float64
}

// Compute derives the KPIs for a single record. CPI and SPI are NaN when
// their denominator is zero; CV and SV are always defined. The EAC
// convention is selected by method and VAC = BAC - EAC inherits its NaN.
func Compute(in Inputs, method EACMethod) Metrics {
	m := Metrics{
		CPI: math.NaN(),
		SPI: math.NaN(),
		CV:  in.EV - in.AC,
		SV:  in.EV - in.PV,
	}
	if in.AC != 0 {
		m.CPI = in.EV / in.AC
	}
	if in.PV != 0 {
		m.SPI = in.EV / in.PV
	}

	switch method {
	case EACTransparent:
		m.EAC = in.AC + (in.BAC - in.EV)
	default: // EACViaCPI
		if math.IsNaN(m.CPI) || m.CPI == 0 {
			m.EAC = math.NaN()
		} else {
			m.EAC = in.BAC / m.CPI
		}
	}

	m.VAC = in.BAC - m.EAC
	return m
}
