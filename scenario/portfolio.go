package scenario

import (
	"fmt"

	"github.com/kilianp07/dispatchsim/config"
	"github.com/kilianp07/dispatchsim/core/asset"
	"github.com/kilianp07/dispatchsim/core/capacity"
	"github.com/kilianp07/dispatchsim/core/dispatch"
	"github.com/kilianp07/dispatchsim/core/optimise"
	"github.com/kilianp07/dispatchsim/core/technology"
)

// Technologies indexes the configured technologies by name. Assets built
// from the same entry share one *Technology.
func Technologies(cfg config.PortfolioConfig) (map[string]*technology.Technology, error) {
	out := make(map[string]*technology.Technology, len(cfg.Technologies))
	for i := range cfg.Technologies {
		t := cfg.Technologies[i]
		if err := t.Validate(); err != nil {
			return nil, err
		}
		if _, ok := out[t.Name]; ok {
			return nil, fmt.Errorf("%w: technology %s defined twice", technology.ErrConfiguration, t.Name)
		}
		out[t.Name] = &t
	}
	return out, nil
}

// NewAsset builds one asset from its configuration.
func NewAsset(a config.AssetConfig, techs map[string]*technology.Technology) (asset.Asset, dispatch.Category, error) {
	tech, ok := techs[a.Technology]
	if !ok {
		return nil, 0, fmt.Errorf("asset %s: unknown technology %q", a.Name, a.Technology)
	}
	var c asset.Constraint
	switch {
	case len(a.Profile) > 0:
		c = asset.Profile(a.Profile)
	case a.Availability != nil:
		c = asset.Scalar(*a.Availability)
	}
	var (
		out interface {
			asset.Asset
			SetFirmFactor(float64)
		}
		cat dispatch.Category
	)
	switch a.Kind {
	case config.KindGenerator, "":
		out, cat = asset.NewGenerator(a.Name, a.Capacity, tech, c), dispatch.Generators
	case config.KindPassiveGenerator:
		out, cat = asset.NewPassiveGenerator(a.Name, a.Capacity, tech, c), dispatch.PassiveGenerators
	case config.KindStorage:
		s := asset.NewStorage(a.Name, a.Capacity, tech, c, a.DurationHours, a.Efficiency)
		s.InitialSoC = a.InitialSoC
		out, cat = s, dispatch.Storages
	default:
		return nil, 0, fmt.Errorf("asset %s: unknown kind %q", a.Name, a.Kind)
	}
	if a.FirmFactor != nil {
		out.SetFirmFactor(*a.FirmFactor)
	}
	return out, cat, nil
}

// BuildGroups creates the dispatch groups of the portfolio in configuration
// order.
func BuildGroups(cfg config.PortfolioConfig, opt optimise.Optimiser, capper capacity.Capper, opts ...dispatch.Option) (*dispatch.Groups, error) {
	techs, err := Technologies(cfg)
	if err != nil {
		return nil, err
	}
	byCat := make(map[dispatch.Category][]asset.Asset)
	for _, ac := range cfg.Assets {
		a, cat, err := NewAsset(ac, techs)
		if err != nil {
			return nil, err
		}
		byCat[cat] = append(byCat[cat], a)
	}
	groups := make(map[dispatch.Category]*dispatch.RankedGroup, 3)
	for _, cat := range dispatch.DefaultDeploymentOrder {
		g, err := dispatch.NewRankedGroup(cfg.Criterion, byCat[cat]...)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", cat, err)
		}
		groups[cat] = g
	}
	if len(cfg.DeploymentOrder) > 0 {
		order, err := cfg.Order()
		if err != nil {
			return nil, err
		}
		opts = append([]dispatch.Option{dispatch.WithDeploymentOrder(order...)}, opts...)
	}
	return dispatch.NewGroups(
		groups[dispatch.PassiveGenerators],
		groups[dispatch.Storages],
		groups[dispatch.Generators],
		cfg.NominalCapacityCap,
		opt,
		capper,
		opts...,
	)
}
