// Package asset defines installed quantities of a technology that can be
// dispatched against residual demand.
package asset

import (
	"fmt"

	"github.com/kilianp07/dispatchsim/core/technology"
)

// Kind tags the asset variant.
type Kind int

const (
	KindGenerator Kind = iota + 1
	KindStorage
	KindPassiveGenerator
)

func (k Kind) String() string {
	switch k {
	case KindGenerator:
		return "generator"
	case KindStorage:
		return "storage"
	case KindPassiveGenerator:
		return "passive_generator"
	}
	return "unknown"
}

// Asset is an installed capacity of one Technology.
type Asset interface {
	Name() string
	Kind() Kind
	Technology() *technology.Technology
	// Capacity is the nameplate capacity.
	Capacity() float64
	SetCapacity(capacity float64)
	// FirmCapacity is the share of nameplate reliably available for dispatch.
	FirmCapacity() float64
	FirmFactor() float64
	// Dispatch returns the output for each period given the demand left by
	// higher priority assets. It does not modify the asset.
	Dispatch(residual []float64) []float64
	AnnualDispatchCost(dispatch []float64) (float64, error)
	// LevelizedCost returns NaN when nothing was dispatched.
	LevelizedCost(dispatch []float64) (float64, error)
	Details() Details
}

// Details summarises an asset for reporting.
type Details struct {
	Name         string  `json:"name"`
	Kind         string  `json:"kind"`
	Technology   string  `json:"technology"`
	Capacity     float64 `json:"capacity"`
	FirmCapacity float64 `json:"firm_capacity"`
}

// base holds the state shared by all variants.
type base struct {
	name       string
	capacity   float64
	tech       *technology.Technology
	constraint Constraint
	firmFactor float64
}

func newBase(name string, capacity float64, tech *technology.Technology, c Constraint) base {
	if capacity < 0 {
		capacity = 0
	}
	return base{name: name, capacity: capacity, tech: tech, constraint: c, firmFactor: 1}
}

func (b *base) Name() string                       { return b.name }
func (b *base) Technology() *technology.Technology { return b.tech }
func (b *base) Capacity() float64                  { return b.capacity }
func (b *base) FirmFactor() float64                { return b.firmFactor }
func (b *base) FirmCapacity() float64              { return b.capacity * b.firmFactor }

// SetCapacity updates the nameplate capacity. Negative values are clamped to zero.
func (b *base) SetCapacity(capacity float64) {
	if capacity < 0 {
		capacity = 0
	}
	b.capacity = capacity
}

// SetFirmFactor sets the capacity credit, clamped to [0,1].
func (b *base) SetFirmFactor(f float64) {
	switch {
	case f < 0:
		f = 0
	case f > 1:
		f = 1
	}
	b.firmFactor = f
}

// limit returns the maximum output in period t.
func (b *base) limit(t int) float64 {
	if b.constraint == nil {
		return b.capacity
	}
	return b.capacity * b.constraint.Factor(t)
}

// AnnualDispatchCost returns fixed costs of the nameplate capacity plus the
// marginal cost of the energy delivered.
func (b *base) AnnualDispatchCost(dispatch []float64) (float64, error) {
	if b.tech == nil {
		return 0, fmt.Errorf("%w: asset %s has no technology", technology.ErrConfiguration, b.name)
	}
	fixed, err := b.tech.TotalFixedCost()
	if err != nil {
		return 0, fmt.Errorf("asset %s: %w", b.name, err)
	}
	return b.capacity*fixed + b.tech.ShortRunMarginalCost()*DeliveredEnergy(dispatch), nil
}

func (b *base) LevelizedCost(dispatch []float64) (float64, error) {
	total, err := b.AnnualDispatchCost(dispatch)
	if err != nil {
		return 0, err
	}
	return Levelized(total, dispatch), nil
}

func (b *base) details(k Kind) Details {
	d := Details{Name: b.name, Kind: k.String(), Capacity: b.capacity, FirmCapacity: b.FirmCapacity()}
	if b.tech != nil {
		d.Technology = b.tech.Name
	}
	return d
}
