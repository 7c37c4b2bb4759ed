package dispatch

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"

	"github.com/kilianp07/dispatchsim/core/asset"
)

var (
	// ErrDuplicateDispatch is returned when an asset is logged twice in one pass.
	ErrDuplicateDispatch = errors.New("asset already dispatched in this pass")
	// ErrLengthMismatch is returned when a dispatch series and the demand differ in length.
	ErrLengthMismatch = errors.New("dispatch length does not match demand")
)

// AssetCost is the cost accounting of one dispatched asset.
type AssetCost struct {
	Name string
	// Energy is the delivered energy over the pass.
	Energy     float64
	AnnualCost float64
	// LevelizedCost is NaN when the asset delivered no energy.
	LevelizedCost float64
	HasAnnual     bool
	HasLevelized  bool
}

// LogOption attaches optional cost figures to a Log call.
type LogOption func(*AssetCost)

// WithAnnualCost records the annual dispatch cost of the asset.
func WithAnnualCost(v float64) LogOption {
	return func(c *AssetCost) { c.AnnualCost, c.HasAnnual = v, true }
}

// WithLevelizedCost records the levelized cost of the asset.
func WithLevelizedCost(v float64) LogOption {
	return func(c *AssetCost) { c.LevelizedCost, c.HasLevelized = v, true }
}

// Log is the residual demand ledger of one dispatch pass. Each asset is
// logged once, in dispatch order, and its output is subtracted from the
// residual demand. A Log belongs to a single scenario and is not safe for
// concurrent use.
type Log struct {
	runID    uuid.UUID
	demand   []float64
	residual []float64
	dispatch map[string][]float64
	order    []string
	costs    map[string]AssetCost
}

// NewLog creates a ledger seeded with demand.
func NewLog(demand []float64) *Log {
	l := &Log{demand: append([]float64(nil), demand...)}
	l.Clear(nil)
	return l
}

// Clear starts a new pass. A non-nil newDemand replaces the demand series;
// residual demand is reset and all records are dropped.
func (l *Log) Clear(newDemand []float64) {
	if newDemand != nil {
		l.demand = append([]float64(nil), newDemand...)
	}
	l.runID = uuid.New()
	l.residual = append([]float64(nil), l.demand...)
	l.dispatch = make(map[string][]float64)
	l.order = nil
	l.costs = make(map[string]AssetCost)
}

// Log subtracts dispatch from the residual demand and records it under name.
func (l *Log) Log(name string, dispatch []float64, opts ...LogOption) error {
	if _, ok := l.dispatch[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateDispatch, name)
	}
	if len(dispatch) != len(l.residual) {
		return fmt.Errorf("%w: %s has %d periods, demand has %d", ErrLengthMismatch, name, len(dispatch), len(l.residual))
	}
	rec := append([]float64(nil), dispatch...)
	floats.Sub(l.residual, rec)
	l.dispatch[name] = rec
	l.order = append(l.order, name)

	cost := AssetCost{Name: name, Energy: asset.DeliveredEnergy(rec), LevelizedCost: math.NaN()}
	for _, o := range opts {
		o(&cost)
	}
	l.costs[name] = cost
	return nil
}

// RunID identifies the current pass.
func (l *Log) RunID() string { return l.runID.String() }

// Demand returns a copy of the demand series.
func (l *Log) Demand() []float64 { return append([]float64(nil), l.demand...) }

// ResidualDemand returns a copy of the demand still unmet.
func (l *Log) ResidualDemand() []float64 { return append([]float64(nil), l.residual...) }

// Order returns asset names in the order they were dispatched.
func (l *Log) Order() []string { return append([]string(nil), l.order...) }

// Dispatch returns the recorded series for name.
func (l *Log) Dispatch(name string) ([]float64, bool) {
	d, ok := l.dispatch[name]
	if !ok {
		return nil, false
	}
	return append([]float64(nil), d...), true
}

// Periods is the length of the demand series.
func (l *Log) Periods() int { return len(l.demand) }

// AnnualCosts returns cost records in dispatch order.
func (l *Log) AnnualCosts() []AssetCost {
	out := make([]AssetCost, 0, len(l.order))
	for _, name := range l.order {
		out = append(out, l.costs[name])
	}
	return out
}

// CostTotals aggregates the cost records of a pass.
type CostTotals struct {
	AnnualCost float64
	Energy     float64
	// LevelizedCost is the system cost per delivered energy unit, NaN when no
	// energy was delivered.
	LevelizedCost float64
	// Undefined lists assets whose levelized cost is NaN.
	Undefined []string
}

// AnnualCostTotals sums annual costs and delivered energy across assets.
// Undefined levelized costs are skipped and listed.
func (l *Log) AnnualCostTotals() CostTotals {
	var t CostTotals
	for _, c := range l.AnnualCosts() {
		if c.HasAnnual {
			t.AnnualCost += c.AnnualCost
		}
		t.Energy += c.Energy
		if c.HasLevelized && math.IsNaN(c.LevelizedCost) {
			t.Undefined = append(t.Undefined, c.Name)
		}
	}
	t.LevelizedCost = math.NaN()
	if t.Energy > 0 {
		t.LevelizedCost = t.AnnualCost / t.Energy
	}
	return t
}
