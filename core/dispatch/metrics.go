package dispatch

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	assetsDispatched *prometheus.CounterVec
	energyDispatched *prometheus.CounterVec
	unservedEnergy   prometheus.Gauge
	capEvents        *prometheus.CounterVec
	rankedAssets     *prometheus.GaugeVec
)

// newCollectors creates new metric collectors.
func newCollectors() (*prometheus.CounterVec, *prometheus.CounterVec, prometheus.Gauge, *prometheus.CounterVec, *prometheus.GaugeVec) {
	assets := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dispatch_assets_total",
			Help: "Number of assets dispatched",
		},
		[]string{"category"},
	)
	energy := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dispatch_energy_total",
			Help: "Energy delivered by dispatched assets",
		},
		[]string{"category"},
	)
	unserved := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "dispatch_unserved_energy",
			Help: "Positive residual demand left after the last dispatch pass",
		},
	)
	capped := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "capacity_cap_events_total",
			Help: "Number of capacity capping passes",
		},
		[]string{"strategy", "clamped"},
	)
	ranked := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ranked_assets",
			Help: "Number of assets in each ranked category",
		},
		[]string{"category", "optimiser"},
	)
	return assets, energy, unserved, capped, ranked
}

func init() {
	assetsDispatched, energyDispatched, unservedEnergy, capEvents, rankedAssets = newCollectors()
	MustRegisterMetrics(nil)
}

// MustRegisterMetrics registers dispatch metrics on the provided registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func MustRegisterMetrics(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(assetsDispatched, energyDispatched, unservedEnergy, capEvents, rankedAssets)
}

// ResetMetrics reinitializes metrics collectors for testing purposes and
// registers them on the provided registry if not nil.
func ResetMetrics(reg prometheus.Registerer) {
	assetsDispatched, energyDispatched, unservedEnergy, capEvents, rankedAssets = newCollectors()
	if reg != nil {
		MustRegisterMetrics(reg)
	}
}
