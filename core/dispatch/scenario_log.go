package dispatch

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// RunSummary is the cost outcome of one dispatch pass.
type RunSummary struct {
	RunID    string
	Totals   CostTotals
	Unserved float64
	// Assets holds per-asset cost records in dispatch order.
	Assets []AssetCost
}

// Summarise captures the current pass of l.
func Summarise(l *Log) RunSummary {
	return RunSummary{
		RunID:    l.RunID(),
		Totals:   l.AnnualCostTotals(),
		Unserved: l.Report().Unserved(),
		Assets:   l.AnnualCosts(),
	}
}

// ScenarioLog collects run summaries for a caller repeating a scenario,
// e.g. over sampled demand years.
type ScenarioLog struct {
	runs []RunSummary
}

// Add records the current pass of l.
func (s *ScenarioLog) Add(l *Log) RunSummary {
	sum := Summarise(l)
	s.runs = append(s.runs, sum)
	return sum
}

// Runs returns the recorded summaries in insertion order.
func (s *ScenarioLog) Runs() []RunSummary { return append([]RunSummary(nil), s.runs...) }

// Len is the number of recorded runs.
func (s *ScenarioLog) Len() int { return len(s.runs) }

// Stat is the mean and sample standard deviation of a quantity across runs.
// StdDev is NaN with fewer than two samples.
type Stat struct {
	Mean   float64
	StdDev float64
	N      int
}

func describe(xs []float64) Stat {
	st := Stat{Mean: math.NaN(), StdDev: math.NaN(), N: len(xs)}
	if len(xs) == 0 {
		return st
	}
	if len(xs) == 1 {
		st.Mean = xs[0]
		return st
	}
	st.Mean, st.StdDev = stat.MeanStdDev(xs, nil)
	return st
}

// AnnualCost describes total annual system cost across runs.
func (s *ScenarioLog) AnnualCost() Stat {
	xs := make([]float64, len(s.runs))
	for i, r := range s.runs {
		xs[i] = r.Totals.AnnualCost
	}
	return describe(xs)
}

// LevelizedCost describes the system levelized cost across runs. Runs
// without delivered energy are skipped.
func (s *ScenarioLog) LevelizedCost() Stat {
	var xs []float64
	for _, r := range s.runs {
		if !math.IsNaN(r.Totals.LevelizedCost) {
			xs = append(xs, r.Totals.LevelizedCost)
		}
	}
	return describe(xs)
}

// Unserved describes unserved energy across runs.
func (s *ScenarioLog) Unserved() Stat {
	xs := make([]float64, len(s.runs))
	for i, r := range s.runs {
		xs[i] = r.Unserved
	}
	return describe(xs)
}

// AssetEnergy describes the delivered energy of one asset across the runs
// in which it was dispatched.
func (s *ScenarioLog) AssetEnergy(name string) Stat {
	var xs []float64
	for _, r := range s.runs {
		for _, a := range r.Assets {
			if a.Name == name {
				xs = append(xs, a.Energy)
			}
		}
	}
	return describe(xs)
}
