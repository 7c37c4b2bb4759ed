package dispatch

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestMetricsRegistration(t *testing.T) {
	ResetMetrics(nil)
	t.Cleanup(func() { ResetMetrics(nil) })
	reg := prometheus.NewRegistry()
	MustRegisterMetrics(reg)
	// touch metrics so they are exported
	assetsDispatched.WithLabelValues("generators").Inc()
	energyDispatched.WithLabelValues("generators").Add(1)
	unservedEnergy.Set(0)
	capEvents.WithLabelValues("proportional", "false").Inc()
	rankedAssets.WithLabelValues("generators", "merit_order").Set(2)
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	names := map[string]bool{}
	for _, mf := range mfs {
		names[*mf.Name] = true
	}
	expected := []string{
		"dispatch_assets_total",
		"dispatch_energy_total",
		"dispatch_unserved_energy",
		"capacity_cap_events_total",
		"ranked_assets",
	}
	for _, n := range expected {
		if !names[n] {
			t.Errorf("metric %s not registered", n)
		}
	}
}
