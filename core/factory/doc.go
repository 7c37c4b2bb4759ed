// Package factory provides a small generic registry used to instantiate modules
// from configuration. Modules are defined by a type string and a map of raw
// settings. Factories decode the settings into typed structs and return the
// concrete implementation.
//
// Optimisers, capacity cappers and metrics sinks are all built this way:
//
//	reg := factory.NewRegistry[optimise.Optimiser]()
//	reg.Register("short_run_marginal_cost", func(conf map[string]any) (optimise.Optimiser, error) {
//	    return optimise.ShortRunMarginalCost{}, nil
//	})
//	opt, err := reg.Create(factory.ModuleConfig{Type: "short_run_marginal_cost"})
package factory
