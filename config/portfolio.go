package config

import (
	"errors"
	"fmt"

	"github.com/kilianp07/dispatchsim/core/dispatch"
	"github.com/kilianp07/dispatchsim/core/technology"
)

// Asset kinds accepted in AssetConfig.Kind.
const (
	KindGenerator        = "generator"
	KindStorage          = "storage"
	KindPassiveGenerator = "passive_generator"
)

// PortfolioConfig lists the technologies and assets of a scenario.
type PortfolioConfig struct {
	NominalCapacityCap float64 `json:"nominal_capacity_cap"`
	// DeploymentOrder lists category names; empty means passive, storage, generators.
	DeploymentOrder []string `json:"deployment_order"`
	// Criterion is the technology attribute used by criterion based optimisers.
	Criterion    string                  `json:"criterion"`
	Technologies []technology.Technology `json:"technologies"`
	Assets       []AssetConfig           `json:"assets"`
}

// AssetConfig describes one asset.
type AssetConfig struct {
	Name       string  `json:"name"`
	Kind       string  `json:"kind"`
	Technology string  `json:"technology"`
	Capacity   float64 `json:"capacity"`
	// FirmFactor defaults to 1 when unset.
	FirmFactor *float64 `json:"firm_factor"`
	// Availability is a scalar operating limit as a fraction of capacity.
	Availability *float64 `json:"availability"`
	// Profile is a cyclic per-period operating limit. It takes precedence
	// over Availability.
	Profile       []float64 `json:"profile"`
	DurationHours float64   `json:"duration_hours"`
	Efficiency    float64   `json:"efficiency"`
	InitialSoC    float64   `json:"initial_soc"`
}

// SetDefaults fills the deployment order and criterion.
func (c *PortfolioConfig) SetDefaults() {
	if len(c.DeploymentOrder) == 0 {
		for _, cat := range dispatch.DefaultDeploymentOrder {
			c.DeploymentOrder = append(c.DeploymentOrder, cat.String())
		}
	}
	if c.Criterion == "" {
		c.Criterion = technology.CriterionShortRunMarginalCost
	}
	for i := range c.Assets {
		if c.Assets[i].Kind == "" {
			c.Assets[i].Kind = KindGenerator
		}
	}
}

// Validate checks names, references and numeric ranges.
func (c PortfolioConfig) Validate() error {
	if c.NominalCapacityCap < 0 {
		return errors.New("nominal_capacity_cap must be >= 0")
	}
	if _, err := c.Order(); err != nil {
		return err
	}
	techs := make(map[string]bool, len(c.Technologies))
	for i, t := range c.Technologies {
		if t.Name == "" {
			return fmt.Errorf("technology %d: name is required", i)
		}
		if techs[t.Name] {
			return fmt.Errorf("technology %s defined twice", t.Name)
		}
		if err := t.Validate(); err != nil {
			return err
		}
		techs[t.Name] = true
	}
	names := make(map[string]bool, len(c.Assets))
	for i, a := range c.Assets {
		if a.Name == "" {
			return fmt.Errorf("asset %d: name is required", i)
		}
		if names[a.Name] {
			return fmt.Errorf("%w: %s", dispatch.ErrDuplicateAsset, a.Name)
		}
		names[a.Name] = true
		if !techs[a.Technology] {
			return fmt.Errorf("asset %s: unknown technology %q", a.Name, a.Technology)
		}
		switch a.Kind {
		case KindGenerator, KindStorage, KindPassiveGenerator:
		default:
			return fmt.Errorf("asset %s: unknown kind %q", a.Name, a.Kind)
		}
		if a.Capacity < 0 {
			return fmt.Errorf("asset %s: capacity must be >= 0", a.Name)
		}
		if a.FirmFactor != nil && (*a.FirmFactor < 0 || *a.FirmFactor > 1) {
			return fmt.Errorf("asset %s: firm_factor must be in [0,1]", a.Name)
		}
		if a.Kind == KindStorage && a.DurationHours <= 0 {
			return fmt.Errorf("asset %s: storage needs duration_hours > 0", a.Name)
		}
	}
	return nil
}

// Order parses DeploymentOrder.
func (c PortfolioConfig) Order() ([]dispatch.Category, error) {
	out := make([]dispatch.Category, len(c.DeploymentOrder))
	for i, s := range c.DeploymentOrder {
		cat, err := dispatch.ParseCategory(s)
		if err != nil {
			return nil, err
		}
		out[i] = cat
	}
	return out, nil
}
