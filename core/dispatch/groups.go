package dispatch

import (
	"fmt"
	"math"
	"strconv"

	"github.com/kilianp07/dispatchsim/core/asset"
	"github.com/kilianp07/dispatchsim/core/capacity"
	"github.com/kilianp07/dispatchsim/core/events"
	"github.com/kilianp07/dispatchsim/core/logger"
	"github.com/kilianp07/dispatchsim/core/optimise"
	"github.com/kilianp07/dispatchsim/internal/eventbus"
)

// Groups orchestrates the three asset categories of a portfolio. Categories
// are ranked independently and dispatched strictly in deployment order, so
// each asset sees the residual demand left by every asset before it.
type Groups struct {
	groups             map[Category]*RankedGroup
	order              []Category
	nominalCapacityCap float64
	optimiser          optimise.Optimiser
	capper             capacity.Capper
	log                *Log
	logger             logger.Logger
	bus                eventbus.EventBus
}

// Option configures Groups.
type Option func(*Groups)

// WithDeploymentOrder overrides DefaultDeploymentOrder.
func WithDeploymentOrder(order ...Category) Option {
	return func(g *Groups) { g.order = append([]Category(nil), order...) }
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(g *Groups) { g.logger = logger.OrNop(l) }
}

// WithEventBus publishes ranking, dispatch and capping events on bus.
func WithEventBus(bus eventbus.EventBus) Option {
	return func(g *Groups) { g.bus = bus }
}

// NewGroups assembles a portfolio. Nil groups are treated as empty. Asset
// names must be unique across all categories.
func NewGroups(passive, storages, generators *RankedGroup, nominalCapacityCap float64, opt optimise.Optimiser, capper capacity.Capper, opts ...Option) (*Groups, error) {
	if opt == nil {
		return nil, fmt.Errorf("dispatch: nil optimiser provided to NewGroups")
	}
	if capper == nil {
		capper = capacity.NopCapper{}
	}
	g := &Groups{
		groups: map[Category]*RankedGroup{
			PassiveGenerators: orEmpty(passive),
			Storages:          orEmpty(storages),
			Generators:        orEmpty(generators),
		},
		order:              append([]Category(nil), DefaultDeploymentOrder...),
		nominalCapacityCap: nominalCapacityCap,
		optimiser:          opt,
		capper:             capper,
		logger:             logger.NopLogger{},
	}
	for _, o := range opts {
		o(g)
	}
	if err := validateOrder(g.order); err != nil {
		return nil, err
	}
	if err := checkUnique(g.AllAssets()); err != nil {
		return nil, err
	}
	return g, nil
}

func orEmpty(g *RankedGroup) *RankedGroup {
	if g == nil {
		return &RankedGroup{}
	}
	return g
}

// Group returns the group of category c.
func (g *Groups) Group(c Category) *RankedGroup { return g.groups[c] }

// DeploymentOrder returns the category dispatch order.
func (g *Groups) DeploymentOrder() []Category { return append([]Category(nil), g.order...) }

// OrderedDeployment returns the groups in deployment order.
func (g *Groups) OrderedDeployment() []*RankedGroup {
	out := make([]*RankedGroup, len(g.order))
	for i, c := range g.order {
		out[i] = g.groups[c]
	}
	return out
}

// AllAssets lists every asset in deployment and rank order.
func (g *Groups) AllAssets() []asset.Asset {
	var out []asset.Asset
	for _, grp := range g.OrderedDeployment() {
		out = append(out, grp.assets...)
	}
	return out
}

// AllAssetNames lists every asset name in deployment and rank order.
func (g *Groups) AllAssetNames() []string {
	var out []string
	for _, grp := range g.OrderedDeployment() {
		out = append(out, grp.Names()...)
	}
	return out
}

// AssetCapacities maps asset names to firm capacity.
func (g *Groups) AssetCapacities() map[string]float64 {
	out := make(map[string]float64)
	for _, a := range g.AllAssets() {
		out[a.Name()] = a.FirmCapacity()
	}
	return out
}

// NominalCapacityCap is the capacity budget of the portfolio.
func (g *Groups) NominalCapacityCap() float64 { return g.nominalCapacityCap }

// TotalCapacity sums firm capacity across categories.
func (g *Groups) TotalCapacity() float64 {
	var total float64
	for _, grp := range g.groups {
		total += grp.TotalCapacity()
	}
	return total
}

// CapacityExceedance is the firm capacity above the nominal cap, or zero.
func (g *Groups) CapacityExceedance() float64 {
	return math.Max(0, g.TotalCapacity()-g.nominalCapacityCap)
}

// CapCapacities runs the capper when the portfolio exceeds its nominal cap.
func (g *Groups) CapCapacities() capacity.Result {
	exceedance := g.CapacityExceedance()
	if exceedance <= 0 {
		return capacity.Result{}
	}
	res := g.capper.Cap(g.AllAssets(), exceedance)
	capEvents.WithLabelValues(g.capper.Name(), strconv.FormatBool(res.Clamped())).Inc()
	if res.Clamped() {
		g.logger.Warnf("capacity cap %.3f: %s clamped assets, %.3f unmet", g.nominalCapacityCap, g.capper.Name(), res.Unmet())
	}
	g.publish(events.CapacityCappedEvent{
		Strategy:   g.capper.Name(),
		Exceedance: exceedance,
		Removed:    res.Removed,
		Clamped:    res.Clamped(),
	})
	return res
}

// UpdateCapacities sets nameplate capacities by asset name and optionally
// caps the portfolio afterwards.
func (g *Groups) UpdateCapacities(capacities map[string]float64, capAfter bool) (capacity.Result, error) {
	index := make(map[string]asset.Asset)
	for _, a := range g.AllAssets() {
		index[a.Name()] = a
	}
	for name := range capacities {
		if _, ok := index[name]; !ok {
			return capacity.Result{}, fmt.Errorf("%w: %s", ErrUnknownAsset, name)
		}
	}
	for name, c := range capacities {
		index[name].SetCapacity(c)
	}
	if !capAfter {
		return capacity.Result{}, nil
	}
	return g.CapCapacities(), nil
}

// OptimiseGroups ranks each category independently with the shared optimiser.
func (g *Groups) OptimiseGroups() error {
	for _, c := range g.order {
		grp := g.groups[c]
		err := grp.RankAssets(g.optimiser)
		g.publish(events.GroupRankedEvent{Category: c.String(), Optimiser: g.optimiser.Name(), Order: grp.Names(), Err: err})
		if err != nil {
			g.logger.Errorf("ranking %s with %s failed: %v", c, g.optimiser.Name(), err)
			return fmt.Errorf("rank %s: %w", c, err)
		}
		rankedAssets.WithLabelValues(c.String(), g.optimiser.Name()).Set(float64(grp.Len()))
		g.logger.Debugw("group ranked", logger.Fields{"category": c.String(), "order": grp.Names()})
	}
	return nil
}

// Log returns the ledger of the last pass, or nil before the first dispatch.
func (g *Groups) Log() *Log { return g.log }

// Dispatch runs one pass against demand. The ledger is created on first use
// and cleared on later calls, so each pass starts from the full demand.
func (g *Groups) Dispatch(demand []float64, opts DispatchOptions) (*Log, error) {
	if g.log == nil {
		g.log = NewLog(demand)
	} else {
		g.log.Clear(demand)
	}
	for _, c := range g.order {
		start := len(g.log.order)
		if err := g.groups[c].Dispatch(g.log, opts); err != nil {
			return g.log, fmt.Errorf("dispatch %s: %w", c, err)
		}
		g.observe(c, start)
	}
	report := g.log.Report()
	unservedEnergy.Set(report.Unserved())
	totals := g.log.AnnualCostTotals()
	g.logger.Infof("run %s dispatched %d assets, annual cost %.2f, unserved %.3f",
		g.log.RunID(), len(report.Columns), totals.AnnualCost, report.Unserved())
	return g.log, nil
}

// observe emits metrics and events for the assets logged since position start.
func (g *Groups) observe(c Category, start int) {
	for i := start; i < len(g.log.order); i++ {
		cost := g.log.costs[g.log.order[i]]
		assetsDispatched.WithLabelValues(c.String()).Inc()
		energyDispatched.WithLabelValues(c.String()).Add(cost.Energy)
		g.publish(events.AssetDispatchedEvent{
			RunID:         g.log.RunID(),
			Category:      c.String(),
			Asset:         cost.Name,
			Position:      i,
			Energy:        cost.Energy,
			AnnualCost:    cost.AnnualCost,
			LevelizedCost: cost.LevelizedCost,
		})
	}
}

func (g *Groups) publish(e eventbus.Event) {
	if g.bus != nil {
		g.bus.Publish(e)
	}
}
