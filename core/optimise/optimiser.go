// Package optimise ranks assets into a dispatch order.
//
// Two strategies are available:
//   - ShortRunMarginalCost: stable ascending sort on a technology criterion.
//   - MeritOrder: traversal of the breakeven envelope of screening curves.
package optimise

import (
	"fmt"
	"sort"

	"github.com/kilianp07/dispatchsim/core/asset"
	"github.com/kilianp07/dispatchsim/core/technology"
)

// Optimiser returns assets in dispatch order. Implementations must not drop
// or duplicate assets.
type Optimiser interface {
	Name() string
	Optimise(assets []asset.Asset, criterion string) ([]asset.Asset, error)
}

// ShortRunMarginalCost sorts assets by a numeric technology attribute.
// Ties keep their insertion order.
type ShortRunMarginalCost struct{}

func (ShortRunMarginalCost) Name() string { return "short_run_marginal_cost" }

// Optimise ranks on criterion, defaulting to the short-run marginal cost.
func (ShortRunMarginalCost) Optimise(assets []asset.Asset, criterion string) ([]asset.Asset, error) {
	if criterion == "" {
		criterion = technology.CriterionShortRunMarginalCost
	}
	type ranked struct {
		a     asset.Asset
		value float64
	}
	list := make([]ranked, len(assets))
	for i, a := range assets {
		tech := a.Technology()
		if tech == nil {
			return nil, fmt.Errorf("%w: asset %s has no technology", technology.ErrConfiguration, a.Name())
		}
		v, err := tech.Criterion(criterion)
		if err != nil {
			return nil, fmt.Errorf("rank %s: %w", a.Name(), err)
		}
		list[i] = ranked{a: a, value: v}
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].value < list[j].value })
	out := make([]asset.Asset, len(list))
	for i, r := range list {
		out[i] = r.a
	}
	return out, nil
}
