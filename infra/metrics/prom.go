package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/dispatchsim/core/metrics"
)

// PromSink exposes the last run of each scenario as Prometheus gauges.
type PromSink struct {
	runs        *prometheus.CounterVec
	assetEnergy *prometheus.GaugeVec
	assetCost   *prometheus.GaugeVec
	assetLCOE   *prometheus.GaugeVec
	assetCap    *prometheus.GaugeVec
	unserved    *prometheus.GaugeVec
	systemCost  *prometheus.GaugeVec
	systemLCOE  *prometheus.GaugeVec
	capRemoved  *prometheus.GaugeVec
}

// NewPromSink registers run metrics on the default Prometheus registerer.
// The Prometheus server should be started separately with StartPromServer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer. Collectors
// already registered by an earlier sink are reused.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	assetLabels := []string{"scenario", "asset", "category"}
	s := &PromSink{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatch_runs_total",
			Help: "Number of dispatch passes recorded",
		}, []string{"scenario"}),
		assetEnergy: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "asset_energy",
			Help: "Energy delivered by the asset in the last pass",
		}, assetLabels),
		assetCost: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "asset_annual_cost",
			Help: "Annual dispatch cost of the asset in the last pass",
		}, assetLabels),
		assetLCOE: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "asset_levelized_cost",
			Help: "Levelized cost of the asset in the last pass, absent when it delivered no energy",
		}, assetLabels),
		assetCap: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "asset_capacity",
			Help: "Nameplate capacity of the asset",
		}, assetLabels),
		unserved: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "run_unserved_energy",
			Help: "Positive residual demand after the last pass",
		}, []string{"scenario"}),
		systemCost: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "run_annual_cost",
			Help: "Total annual system cost of the last pass",
		}, []string{"scenario"}),
		systemLCOE: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "run_levelized_cost",
			Help: "System levelized cost of the last pass",
		}, []string{"scenario"}),
		capRemoved: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "capacity_cap_removed",
			Help: "Capacity removed by the last capping pass",
		}, []string{"scenario", "strategy"}),
	}
	var err error
	s.runs, err = register(reg, s.runs)
	if err != nil {
		return nil, err
	}
	for _, g := range []**prometheus.GaugeVec{&s.assetEnergy, &s.assetCost, &s.assetLCOE, &s.assetCap, &s.unserved, &s.systemCost, &s.systemLCOE, &s.capRemoved} {
		if *g, err = register(reg, *g); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordRun updates the gauges of the scenario with res.
func (s *PromSink) RecordRun(res coremetrics.RunResult) error {
	s.runs.WithLabelValues(res.Scenario).Inc()
	s.unserved.WithLabelValues(res.Scenario).Set(res.Unserved)
	s.systemCost.WithLabelValues(res.Scenario).Set(res.AnnualCost)
	if res.LevelizedCost != nil {
		s.systemLCOE.WithLabelValues(res.Scenario).Set(*res.LevelizedCost)
	} else {
		s.systemLCOE.DeleteLabelValues(res.Scenario)
	}
	for _, a := range res.Assets {
		s.assetEnergy.WithLabelValues(res.Scenario, a.Asset, a.Category).Set(a.Energy)
		s.assetCost.WithLabelValues(res.Scenario, a.Asset, a.Category).Set(a.AnnualCost)
		s.assetCap.WithLabelValues(res.Scenario, a.Asset, a.Category).Set(a.Capacity)
		if a.LevelizedCost != nil {
			s.assetLCOE.WithLabelValues(res.Scenario, a.Asset, a.Category).Set(*a.LevelizedCost)
		} else {
			s.assetLCOE.DeleteLabelValues(res.Scenario, a.Asset, a.Category)
		}
	}
	return nil
}

// RecordCapacityCap sets the removed capacity of the last capping pass.
func (s *PromSink) RecordCapacityCap(ev coremetrics.CapacityCapEvent) error {
	s.capRemoved.WithLabelValues(ev.Scenario, ev.Strategy).Set(ev.Removed)
	return nil
}
