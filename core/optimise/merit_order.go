package optimise

import (
	"errors"
	"fmt"

	"github.com/kilianp07/dispatchsim/core/asset"
	"github.com/kilianp07/dispatchsim/core/demand"
	"github.com/kilianp07/dispatchsim/core/technology"
)

// ErrNoDemand is returned when MeritOrder is used without a demand curve.
var ErrNoDemand = errors.New("merit order requires a demand curve")

// MeritOrder ranks assets on the breakeven envelope of their screening
// curves and sizes each asset to its tranche of peak demand.
type MeritOrder struct {
	Demand *demand.AnnualCurve
}

// NewMeritOrder returns a MeritOrder optimiser for the given demand.
func NewMeritOrder(d *demand.AnnualCurve) *MeritOrder {
	return &MeritOrder{Demand: d}
}

func (m *MeritOrder) Name() string { return "merit_order" }

// Allocation is a ranked tranche resolved to its asset.
type Allocation struct {
	Tranche
	Asset    asset.Asset `json:"-"`
	Capacity float64     `json:"capacity"`
}

// Rank computes the envelope tranches for assets without modifying them.
// Tranche sizes are fractions of peak demand; Capacity is in demand units.
func (m *MeritOrder) Rank(assets []asset.Asset) ([]Allocation, error) {
	if m.Demand == nil {
		return nil, ErrNoDemand
	}
	ldc, err := m.Demand.UnitLDC()
	if err != nil {
		return nil, err
	}
	periods := float64(m.Demand.Periods())
	cands, err := candidates(assets, periods)
	if err != nil {
		return nil, err
	}
	tranches, err := Envelope(cands, ldc, periods)
	if err != nil {
		return nil, err
	}
	peak := m.Demand.Peak()
	out := make([]Allocation, len(tranches))
	for i, tr := range tranches {
		out[i] = Allocation{Tranche: tr, Asset: assets[tr.Index], Capacity: tr.Size * peak}
	}
	return out, nil
}

// Optimise orders assets by envelope rank and sets each capacity to its
// tranche. Assets never reached by the envelope follow in insertion order
// with zero capacity. An asset met twice keeps its first rank and the sum
// of its tranches. The criterion is not used.
func (m *MeritOrder) Optimise(assets []asset.Asset, _ string) ([]asset.Asset, error) {
	allocs, err := m.Rank(assets)
	if err != nil {
		return nil, err
	}
	capacity := make(map[int]float64, len(allocs))
	ranked := make([]int, 0, len(assets))
	for _, al := range allocs {
		if _, seen := capacity[al.Index]; !seen {
			ranked = append(ranked, al.Index)
		}
		capacity[al.Index] += al.Capacity
	}
	out := make([]asset.Asset, 0, len(assets))
	for _, idx := range ranked {
		a := assets[idx]
		a.SetCapacity(capacity[idx])
		out = append(out, a)
	}
	for i, a := range assets {
		if _, ok := capacity[i]; ok {
			continue
		}
		a.SetCapacity(0)
		out = append(out, a)
	}
	return out, nil
}

func candidates(assets []asset.Asset, periods float64) ([]Candidate, error) {
	cands := make([]Candidate, len(assets))
	for i, a := range assets {
		tech := a.Technology()
		if tech == nil {
			return nil, fmt.Errorf("%w: asset %s has no technology", technology.ErrConfiguration, a.Name())
		}
		full, err := tech.PeriodCost(periods)
		if err != nil {
			return nil, fmt.Errorf("screening curve %s: %w", a.Name(), err)
		}
		cands[i] = Candidate{Name: a.Name(), FullPeriodCost: full}
		for j, b := range assets {
			if i == j || b.Technology() == nil {
				continue
			}
			x, ok, err := tech.Breakeven(b.Technology())
			if err != nil {
				return nil, fmt.Errorf("breakeven %s/%s: %w", a.Name(), b.Name(), err)
			}
			if ok {
				cands[i].Intercepts = append(cands[i].Intercepts, Intercept{With: j, Duration: x})
			}
		}
	}
	return cands, nil
}
