package asset

import (
	"math"

	"github.com/kilianp07/dispatchsim/core/technology"
)

// Generator is a dispatchable generator following residual demand.
type Generator struct {
	base
}

// NewGenerator returns a generator. A nil constraint means the generator can
// run at nameplate capacity in every period.
func NewGenerator(name string, capacity float64, tech *technology.Technology, c Constraint) *Generator {
	return &Generator{base: newBase(name, capacity, tech, c)}
}

func (g *Generator) Kind() Kind { return KindGenerator }

// Dispatch supplies min(residual, capacity × constraint) in every period.
func (g *Generator) Dispatch(residual []float64) []float64 {
	return followResidual(residual, g.limit)
}

func (g *Generator) Details() Details { return g.details(KindGenerator) }

// PassiveGenerator produces according to an availability profile, such as
// wind or solar. Output above residual demand is curtailed.
type PassiveGenerator struct {
	base
}

// NewPassiveGenerator returns a passive generator. The profile is the
// per-unit output available in each period.
func NewPassiveGenerator(name string, capacity float64, tech *technology.Technology, availability Constraint) *PassiveGenerator {
	if availability == nil {
		availability = Scalar(0)
	}
	return &PassiveGenerator{base: newBase(name, capacity, tech, availability)}
}

func (p *PassiveGenerator) Kind() Kind { return KindPassiveGenerator }

func (p *PassiveGenerator) Dispatch(residual []float64) []float64 {
	return followResidual(residual, p.limit)
}

// Available returns the uncurtailed output for the given number of periods.
func (p *PassiveGenerator) Available(periods int) []float64 {
	out := make([]float64, periods)
	for t := range out {
		out[t] = p.limit(t)
	}
	return out
}

// Curtailment returns the available output that was not dispatched.
func (p *PassiveGenerator) Curtailment(dispatch []float64) []float64 {
	out := p.Available(len(dispatch))
	for t, d := range dispatch {
		out[t] = math.Max(0, out[t]-d)
	}
	return out
}

func (p *PassiveGenerator) Details() Details { return p.details(KindPassiveGenerator) }

func followResidual(residual []float64, limit func(int) float64) []float64 {
	out := make([]float64, len(residual))
	for t, r := range residual {
		d := math.Min(r, limit(t))
		if d > 0 {
			out[t] = d
		}
	}
	return out
}
