package dispatch

import (
	"errors"
	"fmt"
	"math"

	"github.com/kilianp07/dispatchsim/core/asset"
	"github.com/kilianp07/dispatchsim/core/optimise"
)

var (
	// ErrDuplicateAsset is returned when two assets share a name.
	ErrDuplicateAsset = errors.New("duplicate asset name")
	// ErrUnknownAsset is returned when a capacity update names no asset.
	ErrUnknownAsset = errors.New("unknown asset")
)

// DispatchOptions selects which costs are logged for each asset.
type DispatchOptions struct {
	AnnualCosts   bool
	LevelizedCost bool
}

// DefaultDispatchOptions logs both annual and levelized costs.
var DefaultDispatchOptions = DispatchOptions{AnnualCosts: true, LevelizedCost: true}

// RankedGroup is an ordered set of assets. The slice order is the dispatch
// priority.
type RankedGroup struct {
	assets    []asset.Asset
	criterion string
}

// NewRankedGroup returns a group in the given order. criterion is the
// attribute passed to the optimiser.
func NewRankedGroup(criterion string, assets ...asset.Asset) (*RankedGroup, error) {
	if err := checkUnique(assets); err != nil {
		return nil, err
	}
	return &RankedGroup{assets: append([]asset.Asset(nil), assets...), criterion: criterion}, nil
}

func checkUnique(assets []asset.Asset) error {
	seen := make(map[string]struct{}, len(assets))
	for _, a := range assets {
		if a == nil {
			return fmt.Errorf("nil asset")
		}
		if _, ok := seen[a.Name()]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateAsset, a.Name())
		}
		seen[a.Name()] = struct{}{}
	}
	return nil
}

// Criterion is the ranking attribute name.
func (g *RankedGroup) Criterion() string { return g.criterion }

// Len is the number of assets.
func (g *RankedGroup) Len() int { return len(g.assets) }

// Assets returns the assets in rank order.
func (g *RankedGroup) Assets() []asset.Asset { return append([]asset.Asset(nil), g.assets...) }

// Names returns asset names in rank order.
func (g *RankedGroup) Names() []string {
	out := make([]string, len(g.assets))
	for i, a := range g.assets {
		out[i] = a.Name()
	}
	return out
}

// AssetByName looks an asset up by name.
func (g *RankedGroup) AssetByName(name string) (asset.Asset, bool) {
	for _, a := range g.assets {
		if a.Name() == name {
			return a, true
		}
	}
	return nil, false
}

// TotalCapacity sums the firm capacity of the group.
func (g *RankedGroup) TotalCapacity() float64 {
	var total float64
	for _, a := range g.assets {
		total += a.FirmCapacity()
	}
	return total
}

// RankAssets replaces the order with the optimiser's ranking.
func (g *RankedGroup) RankAssets(opt optimise.Optimiser) error {
	if len(g.assets) == 0 {
		return nil
	}
	ranked, err := opt.Optimise(g.Assets(), g.criterion)
	if err != nil {
		return err
	}
	if len(ranked) != len(g.assets) {
		return fmt.Errorf("optimiser %s returned %d assets for %d", opt.Name(), len(ranked), len(g.assets))
	}
	if err := checkUnique(ranked); err != nil {
		return fmt.Errorf("optimiser %s: %w", opt.Name(), err)
	}
	g.assets = ranked
	return nil
}

// Dispatch dispatches each asset in rank order against the residual demand
// of log and records its output and costs.
func (g *RankedGroup) Dispatch(log *Log, opts DispatchOptions) error {
	for _, a := range g.assets {
		out := a.Dispatch(log.ResidualDemand())
		var logOpts []LogOption
		annual, haveAnnual := 0.0, false
		if opts.AnnualCosts {
			c, err := a.AnnualDispatchCost(out)
			if err != nil {
				return fmt.Errorf("annual cost %s: %w", a.Name(), err)
			}
			annual, haveAnnual = c, true
			logOpts = append(logOpts, WithAnnualCost(c))
		}
		if opts.LevelizedCost {
			var lc float64
			if haveAnnual {
				lc = asset.Levelized(annual, out)
			} else {
				c, err := a.LevelizedCost(out)
				if err != nil {
					return fmt.Errorf("levelized cost %s: %w", a.Name(), err)
				}
				lc = c
			}
			logOpts = append(logOpts, WithLevelizedCost(lc))
		}
		if err := log.Log(a.Name(), out, logOpts...); err != nil {
			return err
		}
	}
	return nil
}

// UpdateCapacities sets nameplate capacities by asset name.
func (g *RankedGroup) UpdateCapacities(capacities map[string]float64) error {
	for name, c := range capacities {
		a, ok := g.AssetByName(name)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownAsset, name)
		}
		a.SetCapacity(c)
	}
	return nil
}

// Record is one row of the ranked group table.
type Record struct {
	Rank         int
	Name         string
	Technology   string
	Criterion    float64
	Capacity     float64
	FirmCapacity float64
}

// Records returns the ranked table. The criterion is NaN when it cannot be
// evaluated for an asset.
func (g *RankedGroup) Records() []Record {
	out := make([]Record, len(g.assets))
	for i, a := range g.assets {
		d := a.Details()
		r := Record{Rank: i + 1, Name: d.Name, Technology: d.Technology, Criterion: math.NaN(), Capacity: d.Capacity, FirmCapacity: d.FirmCapacity}
		if tech := a.Technology(); tech != nil && g.criterion != "" {
			if v, err := tech.Criterion(g.criterion); err == nil {
				r.Criterion = v
			}
		}
		out[i] = r
	}
	return out
}
