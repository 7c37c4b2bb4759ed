// Package scenarios runs yaml regression scenarios through the full
// simulation stack and checks their dispatch outcome.
package scenarios

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/dispatchsim/config"
	"github.com/kilianp07/dispatchsim/core/factory"
	"github.com/kilianp07/dispatchsim/core/technology"
)

type TechnologyDef struct {
	Name        string  `yaml:"name"`
	CapitalCost float64 `yaml:"capital_cost"`
	Life        float64 `yaml:"life"`
	FixedOM     float64 `yaml:"fixed_om"`
	VariableOM  float64 `yaml:"variable_om"`
	FuelCost    float64 `yaml:"fuel_cost"`
}

func (t TechnologyDef) ToModel() technology.Technology {
	return technology.Technology{
		Name:        t.Name,
		CapitalCost: t.CapitalCost,
		Life:        t.Life,
		FixedOM:     t.FixedOM,
		VariableOM:  t.VariableOM,
		FuelCost:    t.FuelCost,
	}
}

type AssetDef struct {
	Name       string    `yaml:"name"`
	Kind       string    `yaml:"kind"`
	Technology string    `yaml:"technology"`
	Capacity   float64   `yaml:"capacity"`
	Profile    []float64 `yaml:"profile,omitempty"`
}

func (a AssetDef) ToModel() config.AssetConfig {
	return config.AssetConfig{Name: a.Name, Kind: a.Kind, Technology: a.Technology, Capacity: a.Capacity, Profile: a.Profile}
}

type Expected struct {
	Order    []string           `yaml:"order"`
	Unserved float64            `yaml:"unserved"`
	Energy   map[string]float64 `yaml:"energy"`
	Capacity float64            `yaml:"capacity,omitempty"`
}

type Scenario struct {
	Name               string          `yaml:"name"`
	Description        string          `yaml:"description,omitempty"`
	Optimiser          string          `yaml:"optimiser"`
	Capper             string          `yaml:"capper,omitempty"`
	NominalCapacityCap float64         `yaml:"nominal_capacity_cap"`
	CapCapacities      bool            `yaml:"cap_capacities,omitempty"`
	Technologies       []TechnologyDef `yaml:"technologies"`
	Assets             []AssetDef      `yaml:"assets"`
	Demand             []float64       `yaml:"demand"`
	Expected           Expected        `yaml:"expected"`
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

// ToConfig converts the scenario into a validated configuration.
func (s *Scenario) ToConfig() (*config.Config, error) {
	cfg := &config.Config{
		Name:    s.Name,
		Logging: config.LoggingConfig{Level: "error"},
		Components: config.ComponentsConfig{
			Optimiser: factory.ModuleConfig{Type: s.Optimiser},
			Capper:    factory.ModuleConfig{Type: s.Capper},
		},
		Portfolio: config.PortfolioConfig{NominalCapacityCap: s.NominalCapacityCap},
		Demand:    config.DemandConfig{Values: s.Demand},
		Dispatch:  config.DispatchConfig{CapCapacities: s.CapCapacities},
	}
	for _, t := range s.Technologies {
		cfg.Portfolio.Technologies = append(cfg.Portfolio.Technologies, t.ToModel())
	}
	for _, a := range s.Assets {
		cfg.Portfolio.Assets = append(cfg.Portfolio.Assets, a.ToModel())
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
