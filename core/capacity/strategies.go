package capacity

import (
	"github.com/kilianp07/dispatchsim/core/asset"
	"github.com/kilianp07/dispatchsim/core/logger"
)

// ProportionalCapper reduces every asset in proportion to its firm capacity.
type ProportionalCapper struct {
	logger logger.Logger
}

// NewProportionalCapper returns a ProportionalCapper logging to log.
func NewProportionalCapper(log logger.Logger) *ProportionalCapper {
	return &ProportionalCapper{logger: log}
}

func (*ProportionalCapper) Name() string { return "proportional" }

// SetLogger replaces the logger.
func (p *ProportionalCapper) SetLogger(l logger.Logger) { p.logger = l }

func (p *ProportionalCapper) Cap(assets []asset.Asset, exceedance float64) Result {
	res := Result{Requested: exceedance}
	total := firmTotal(assets)
	if exceedance <= 0 || total <= 0 {
		res.Requested = max(0, exceedance)
		return res
	}
	for _, a := range assets {
		firm := a.FirmCapacity()
		if firm <= 0 {
			continue
		}
		adj := reduceFirm(a, exceedance*firm/total)
		res.Removed += firm - a.FirmCapacity()
		res.Adjustments = append(res.Adjustments, adj)
	}
	logResult(p.logger, p.Name(), res)
	return res
}

// PriorityCapper removes capacity from the lowest priority asset first,
// walking the slice from its end.
type PriorityCapper struct {
	logger logger.Logger
}

// NewPriorityCapper returns a PriorityCapper logging to log.
func NewPriorityCapper(log logger.Logger) *PriorityCapper {
	return &PriorityCapper{logger: log}
}

func (*PriorityCapper) Name() string { return "priority" }

// SetLogger replaces the logger.
func (p *PriorityCapper) SetLogger(l logger.Logger) { p.logger = l }

func (p *PriorityCapper) Cap(assets []asset.Asset, exceedance float64) Result {
	res := Result{Requested: max(0, exceedance)}
	remaining := exceedance
	for i := len(assets) - 1; i >= 0 && remaining > 0; i-- {
		a := assets[i]
		firm := a.FirmCapacity()
		if firm <= 0 {
			continue
		}
		cut := min(firm, remaining)
		adj := reduceFirm(a, cut)
		adj.Clamped = cut == firm
		removed := firm - a.FirmCapacity()
		res.Removed += removed
		remaining -= removed
		res.Adjustments = append(res.Adjustments, adj)
	}
	if len(res.Adjustments) > 0 {
		logResult(p.logger, p.Name(), res)
	}
	return res
}
