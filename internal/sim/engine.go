package sim

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/gridline-analytics/sitecast/internal/model"
	"github.com/gridline-analytics/sitecast/internal/procurement"
)

// Config holds the tunables of one Monte Carlo run. Zero fields take the
// defaults below.
type Config struct {
	Iterations   int
	Seed         uint64
	DayToDollars float64
	CurvePoints  int
}

const (
	defaultIterations   = 5000
	defaultDayToDollars = 15000.0
	defaultCurvePoints  = 100
)

// defaultDelayTriple is used when no procurement history is available.
var defaultDelayTriple = Triple{Low: 0, Mode: 5, High: 15}

func (c Config) withDefaults() Config {
	if c.Iterations <= 0 {
		c.Iterations = defaultIterations
	}
	if c.DayToDollars == 0 {
		c.DayToDollars = defaultDayToDollars
	}
	if c.CurvePoints < 2 {
		c.CurvePoints = defaultCurvePoints
	}
	return c
}

// Result bundles the three output tables of a run.
type Result struct {
	Runs    []model.Run
	Summary []model.Summary
	Curve   []model.CurvePoint
}

// Run simulates every project found in the EVM timeseries and aggregates
// percentile summaries and CDF curves. The same config, inputs and seed
// reproduce the exact same samples.
//
// Per project and iteration: each risk fires independently against its
// probability; fired cost and schedule-day impacts are PERT samples summed
// across risks; one procurement delay sample is added to the schedule
// impact; schedule days convert to dollars at DayToDollars.
func Run(evmRows []model.EVMRow, risks []model.Risk, deliveries []model.Delivery, cfg Config) Result {
	cfg = cfg.withDefaults()
	s := NewSampler(cfg.Seed)

	baselines, projects := baselines(evmRows)

	probs := make([]float64, len(risks))
	costTriples := make([]Triple, len(risks))
	dayTriples := make([]Triple, len(risks))
	for i, r := range risks {
		probs[i] = r.Probability
		costTriples[i] = Triple{Low: r.CostLow, Mode: r.CostML, High: r.CostHigh}
		dayTriples[i] = Triple{Low: r.SchedDaysLow, Mode: r.SchedDaysML, High: r.SchedDaysHigh}
	}

	procTriple := delayTriple(deliveries)

	var runs []model.Run
	for _, proj := range projects {
		base := baselines[proj]

		gates := make([][]bool, cfg.Iterations)
		for i := range gates {
			row := make([]bool, len(risks))
			for j := range row {
				row[j] = s.Uniform() <= probs[j]
			}
			gates[i] = row
		}

		costs := s.PERTMatrix(costTriples, cfg.Iterations)
		days := s.PERTMatrix(dayTriples, cfg.Iterations)
		procDays := s.PERTVector(procTriple, cfg.Iterations)

		for i := 0; i < cfg.Iterations; i++ {
			var costImpact, dayImpact float64
			for j := range risks {
				if gates[i][j] {
					costImpact += costs[i][j]
					dayImpact += days[i][j]
				}
			}
			finishDays := dayImpact + procDays[i]
			runs = append(runs, model.Run{
				ProjectID:              proj,
				EAC:                    base + costImpact + finishDays*cfg.DayToDollars,
				FinishDaysOverBaseline: finishDays,
			})
		}
	}

	return Result{
		Runs:    runs,
		Summary: summarize(runs, projects),
		Curve:   curves(runs, projects, cfg.CurvePoints),
	}
}

// baselines derives the baseline EAC per project: the mean of the project's
// EAC rows, falling back to mean BAC when no cost-variance data exists yet
// (no EAC computed, or zero).
func baselines(evmRows []model.EVMRow) (map[string]float64, []string) {
	type acc struct {
		eacSum float64
		eacN   int
		bacSum float64
		bacN   int
	}
	accs := make(map[string]*acc)
	var projects []string
	for _, r := range evmRows {
		a, ok := accs[r.ProjectID]
		if !ok {
			a = &acc{}
			accs[r.ProjectID] = a
			projects = append(projects, r.ProjectID)
		}
		if !math.IsNaN(r.EAC) {
			a.eacSum += r.EAC
			a.eacN++
		}
		if !math.IsNaN(r.BAC) {
			a.bacSum += r.BAC
			a.bacN++
		}
	}
	sort.Strings(projects)

	out := make(map[string]float64, len(accs))
	for proj, a := range accs {
		eac, bac := math.NaN(), math.NaN()
		if a.eacN > 0 {
			eac = a.eacSum / float64(a.eacN)
		}
		if a.bacN > 0 {
			bac = a.bacSum / float64(a.bacN)
		}
		if math.IsNaN(eac) || eac == 0 {
			eac = bac
		}
		out[proj] = eac
	}
	return out, projects
}

// delayTriple builds an empirical PERT triple from observed delivery delays,
// or the fixed default when no history is available.
func delayTriple(deliveries []model.Delivery) Triple {
	if len(deliveries) == 0 {
		return defaultDelayTriple
	}

	var sum, max float64
	for i, d := range deliveries {
		days := procurement.DelayDays(d)
		sum += days
		if i == 0 || days > max {
			max = days
		}
	}
	mean := sum / float64(len(deliveries))

	return Triple{
		Low:  0,
		Mode: math.Max(1, mean),
		High: math.Max(2, max),
	}
}

func summarize(runs []model.Run, projects []string) []model.Summary {
	byProject := groupRuns(runs)

	out := make([]model.Summary, 0, len(projects))
	for _, proj := range projects {
		g := byProject[proj]
		out = append(out, model.Summary{
			ProjectID: proj,
			EACP10:    Percentile(g.eac, 10),
			EACP50:    Percentile(g.eac, 50),
			EACP80:    Percentile(g.eac, 80),
			FinishP10: Percentile(g.finish, 10),
			FinishP50: Percentile(g.finish, 50),
			FinishP80: Percentile(g.finish, 80),
		})
	}
	return out
}

// curves samples each project's empirical EAC CDF at evenly spaced points
// across [min, max]. Non-decreasing in Value by construction.
func curves(runs []model.Run, projects []string, points int) []model.CurvePoint {
	byProject := groupRuns(runs)

	var out []model.CurvePoint
	for _, proj := range projects {
		g := byProject[proj]
		if len(g.eac) == 0 {
			continue
		}

		xs := make([]float64, points)
		floats.Span(xs, floats.Min(g.eac), floats.Max(g.eac))

		for _, x := range xs {
			below := 0
			for _, v := range g.eac {
				if v <= x {
					below++
				}
			}
			out = append(out, model.CurvePoint{
				ProjectID: proj,
				Metric:    "EAC",
				Value:     x,
				CDF:       float64(below) / float64(len(g.eac)),
			})
		}
	}
	return out
}

type runGroup struct {
	eac    []float64
	finish []float64
}

func groupRuns(runs []model.Run) map[string]*runGroup {
	out := make(map[string]*runGroup)
	for _, r := range runs {
		g, ok := out[r.ProjectID]
		if !ok {
			g = &runGroup{}
			out[r.ProjectID] = g
		}
		g.eac = append(g.eac, r.EAC)
		g.finish = append(g.finish, r.FinishDaysOverBaseline)
	}
	return out
}
