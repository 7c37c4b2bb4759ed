package config

import "github.com/kilianp07/dispatchsim/core/factory"

// ComponentsConfig lists the pluggable components of a scenario. Each
// component is defined solely by its type and an arbitrary configuration map.
type ComponentsConfig struct {
	Optimiser factory.ModuleConfig `json:"optimiser"`
	Capper    factory.ModuleConfig `json:"capper"`
}

// SetDefaults selects merit-order ranking and proportional capping.
func (c *ComponentsConfig) SetDefaults() {
	if c.Optimiser.Type == "" {
		c.Optimiser.Type = "merit_order"
	}
	if c.Capper.Type == "" {
		c.Capper.Type = "proportional"
	}
}
