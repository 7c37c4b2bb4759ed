// Package capacity enforces a portfolio-wide capacity budget.
package capacity

import (
	"math"

	"github.com/kilianp07/dispatchsim/core/asset"
	"github.com/kilianp07/dispatchsim/core/logger"
)

// Capper removes firm capacity from assets until the exceedance is gone.
// Implementations never raise an asset's capacity, never remove more than
// its full capacity and never fail; clamping is reported in the Result.
type Capper interface {
	Name() string
	Cap(assets []asset.Asset, exceedance float64) Result
}

// Adjustment records the change applied to one asset.
type Adjustment struct {
	Name    string  `json:"name"`
	Before  float64 `json:"before"`
	After   float64 `json:"after"`
	Clamped bool    `json:"clamped"`
}

// Result describes one capping pass for auditing.
type Result struct {
	Requested   float64      `json:"requested"`
	Removed     float64      `json:"removed"`
	Adjustments []Adjustment `json:"adjustments"`
}

// Clamped reports whether any asset hit zero capacity.
func (r Result) Clamped() bool {
	for _, a := range r.Adjustments {
		if a.Clamped {
			return true
		}
	}
	return false
}

// Unmet is the exceedance that could not be removed.
func (r Result) Unmet() float64 { return math.Max(0, r.Requested-r.Removed) }

// NopCapper leaves capacities untouched.
type NopCapper struct{}

func (NopCapper) Name() string { return "nop" }
func (NopCapper) Cap(_ []asset.Asset, exceedance float64) Result {
	return Result{Requested: math.Max(0, exceedance)}
}

// reduceFirm lowers the firm capacity of a by amount and returns the
// adjustment. The nameplate is scaled through the firm factor.
func reduceFirm(a asset.Asset, amount float64) Adjustment {
	before := a.Capacity()
	firm := a.FirmCapacity()
	next := firm - amount
	clamped := false
	if next <= 0 {
		next = 0
		clamped = amount > firm
	}
	after := 0.0
	if f := a.FirmFactor(); f > 0 {
		after = math.Min(before, next/f)
	}
	a.SetCapacity(after)
	return Adjustment{Name: a.Name(), Before: before, After: after, Clamped: clamped}
}

func firmTotal(assets []asset.Asset) float64 {
	var total float64
	for _, a := range assets {
		total += a.FirmCapacity()
	}
	return total
}

func logResult(log logger.Logger, name string, res Result) {
	if log == nil {
		return
	}
	if res.Clamped() || res.Unmet() > 0 {
		log.Warnf("%s capper: removed %.3f of %.3f, %.3f unmet", name, res.Removed, res.Requested, res.Unmet())
		return
	}
	log.Infof("%s capper: removed %.3f across %d assets", name, res.Removed, len(res.Adjustments))
}
