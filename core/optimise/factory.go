package optimise

import (
	"github.com/kilianp07/dispatchsim/core/demand"
	"github.com/kilianp07/dispatchsim/core/factory"
)

// DemandAware is implemented by optimisers that rank against a demand curve.
type DemandAware interface {
	UseDemand(d *demand.AnnualCurve)
}

// UseDemand sets the demand curve used for ranking.
func (m *MeritOrder) UseDemand(d *demand.AnnualCurve) { m.Demand = d }

var registry = factory.NewRegistry[Optimiser]()

func init() {
	_ = registry.Register("short_run_marginal_cost", func(map[string]any) (Optimiser, error) {
		return ShortRunMarginalCost{}, nil
	})
	_ = registry.Register("merit_order", func(map[string]any) (Optimiser, error) {
		return NewMeritOrder(nil), nil
	})
}

// Register adds an optimiser factory identified by name.
func Register(name string, f factory.Factory[Optimiser]) error {
	return registry.Register(name, f)
}

// New creates the optimiser described by cfg. Demand-aware optimisers are
// bound to d when it is not nil.
func New(cfg factory.ModuleConfig, d *demand.AnnualCurve) (Optimiser, error) {
	if cfg.Type == "" {
		cfg.Type = "short_run_marginal_cost"
	}
	opt, err := registry.Create(cfg)
	if err != nil {
		return nil, err
	}
	if da, ok := opt.(DemandAware); ok && d != nil {
		da.UseDemand(d)
	}
	return opt, nil
}
