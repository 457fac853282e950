// Package sim implements the PERT sampler and the Monte Carlo forecasting
// engine.
package sim

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// epsilon floors the Beta shape parameters and breaks high <= low ties.
const epsilon = 1e-9

// Triple is a three-point (low, most-likely, high) estimate.
type Triple struct {
	Low  float64
	Mode float64
	High float64
}

// Sampler draws PERT-distributed variates from a single seeded source.
// All draws of one simulation run share the source, so the full sequence is
// reproducible from the seed alone.
type Sampler struct {
	src *rand.Rand
}

// NewSampler creates a Sampler seeded with the given value.
func NewSampler(seed uint64) *Sampler {
	return &Sampler{src: rand.New(rand.NewPCG(seed, 0))}
}

// Uniform draws one uniform variate in [0, 1).
func (s *Sampler) Uniform() float64 {
	return s.src.Float64()
}

// PERT draws one sample from the Beta distribution derived from t, rescaled
// to [t.Low, t.High]. A degenerate interval (high <= low) is widened by
// epsilon; a NaN parameter yields a NaN sample rather than a panic.
func (s *Sampler) PERT(t Triple) float64 {
	low, span, beta, ok := pertBeta(t)
	if !ok {
		return math.NaN()
	}
	beta.Src = s.src
	return low + span*beta.Rand()
}

// PERTVector draws n samples from one triple.
func (s *Sampler) PERTVector(t Triple, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = s.PERT(t)
	}
	return out
}

// PERTMatrix draws an (iters x len(triples)) sample matrix, one column per
// triple, in row-major draw order.
func (s *Sampler) PERTMatrix(triples []Triple, iters int) [][]float64 {
	out := make([][]float64, iters)
	for i := range out {
		row := make([]float64, len(triples))
		for j, t := range triples {
			row[j] = s.PERT(t)
		}
		out[i] = row
	}
	return out
}

// pertBeta maps a PERT triple onto Beta shape parameters. Reports ok=false
// when any parameter is NaN, in which case the sample is undefined.
func pertBeta(t Triple) (low, span float64, beta distuv.Beta, ok bool) {
	low, mode, high := t.Low, t.Mode, t.High
	if math.IsNaN(low) || math.IsNaN(mode) || math.IsNaN(high) {
		return 0, 0, distuv.Beta{}, false
	}

	// Tie-break, not an error: a point estimate still needs a nonzero span.
	if high <= low {
		high = low + epsilon
	}
	span = high - low

	alpha := 1 + 4*(mode-low)/span
	bta := 1 + 4*(high-mode)/span
	if alpha < epsilon {
		alpha = epsilon
	}
	if bta < epsilon {
		bta = epsilon
	}

	return low, span, distuv.Beta{Alpha: alpha, Beta: bta}, true
}
