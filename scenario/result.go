package scenario

import (
	"time"

	"github.com/kilianp07/dispatchsim/core/dispatch"
	coremetrics "github.com/kilianp07/dispatchsim/core/metrics"
)

// NewRunResult summarises the last pass of g for metrics sinks.
func NewRunResult(name string, g *dispatch.Groups, at time.Time) coremetrics.RunResult {
	l := g.Log()
	if l == nil {
		return coremetrics.RunResult{Scenario: name, Time: at, TotalCapacity: g.TotalCapacity()}
	}
	category := make(map[string]string)
	for _, c := range g.DeploymentOrder() {
		for _, n := range g.Group(c).Names() {
			category[n] = c.String()
		}
	}
	var demandTotal float64
	for _, d := range l.Demand() {
		demandTotal += d
	}
	report := l.Report()
	totals := l.AnnualCostTotals()
	res := coremetrics.RunResult{
		RunID:         l.RunID(),
		Scenario:      name,
		Time:          at,
		Periods:       l.Periods(),
		Demand:        demandTotal,
		Unserved:      report.Unserved(),
		TotalCapacity: g.TotalCapacity(),
		AnnualCost:    totals.AnnualCost,
		Energy:        totals.Energy,
		LevelizedCost: coremetrics.Float(totals.LevelizedCost),
	}
	for i, c := range l.AnnualCosts() {
		ar := coremetrics.AssetResult{
			Asset:         c.Name,
			Category:      category[c.Name],
			Position:      i,
			Energy:        c.Energy,
			AnnualCost:    c.AnnualCost,
			LevelizedCost: coremetrics.Float(c.LevelizedCost),
		}
		for _, a := range g.AllAssets() {
			if a.Name() == c.Name {
				d := a.Details()
				ar.Technology, ar.Capacity = d.Technology, d.Capacity
				break
			}
		}
		res.Assets = append(res.Assets, ar)
	}
	return res
}
