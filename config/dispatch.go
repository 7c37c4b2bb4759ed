package config

import "github.com/kilianp07/dispatchsim/core/dispatch"

// DispatchConfig controls how a pass is run.
type DispatchConfig struct {
	// AnnualCosts and LevelizedCost default to true.
	AnnualCosts   *bool `json:"annual_costs"`
	LevelizedCost *bool `json:"levelized_cost"`
	// Optimise ranks the groups before dispatching. Defaults to true.
	Optimise *bool `json:"optimise"`
	// CapCapacities enforces the nominal capacity cap after ranking.
	CapCapacities bool `json:"cap_capacities"`
}

// SetDefaults turns on cost logging and ranking.
func (c *DispatchConfig) SetDefaults() {
	t := true
	if c.AnnualCosts == nil {
		c.AnnualCosts = &t
	}
	if c.LevelizedCost == nil {
		c.LevelizedCost = &t
	}
	if c.Optimise == nil {
		c.Optimise = &t
	}
}

// Options converts the section to dispatch options.
func (c DispatchConfig) Options() dispatch.DispatchOptions {
	return dispatch.DispatchOptions{
		AnnualCosts:   c.AnnualCosts == nil || *c.AnnualCosts,
		LevelizedCost: c.LevelizedCost == nil || *c.LevelizedCost,
	}
}

// ShouldOptimise reports whether groups are ranked before dispatch.
func (c DispatchConfig) ShouldOptimise() bool { return c.Optimise == nil || *c.Optimise }
