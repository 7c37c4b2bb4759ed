package scenarios

import (
	"context"
	"math"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/dispatchsim/app"
	"github.com/kilianp07/dispatchsim/infra/logger"
	"github.com/kilianp07/dispatchsim/infra/metrics"
)

const tolerance = 1e-6

func RunScenario(t *testing.T, sc *Scenario) {
	reg := prometheus.NewRegistry()
	sink, err := metrics.NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("prom sink: %v", err)
	}
	cfg, err := sc.ToConfig()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	svc, err := app.New(cfg, app.WithSink(sink), app.WithLogger(logger.NopLogger{}))
	if err != nil {
		t.Fatalf("service: %v", err)
	}
	res, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if err := svc.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if want := sc.Expected.Order; len(want) > 0 {
		got := svc.Groups.AllAssetNames()
		if !equalNames(got, want) {
			t.Errorf("scenario %s expected order %v, got %v", sc.Name, want, got)
		}
	}
	if math.Abs(res.Unserved-sc.Expected.Unserved) > tolerance {
		t.Errorf("scenario %s expected %.3f unserved, got %.3f", sc.Name, sc.Expected.Unserved, res.Unserved)
	}
	for _, a := range res.Assets {
		want, ok := sc.Expected.Energy[a.Asset]
		if ok && math.Abs(a.Energy-want) > tolerance {
			t.Errorf("scenario %s expected %s energy %.3f, got %.3f", sc.Name, a.Asset, want, a.Energy)
		}
	}
	if sc.Expected.Capacity > 0 && math.Abs(res.TotalCapacity-sc.Expected.Capacity) > tolerance {
		t.Errorf("scenario %s expected capacity %.3f, got %.3f", sc.Name, sc.Expected.Capacity, res.TotalCapacity)
	}
	if got := gaugeValue(t, reg, "run_unserved_energy"); math.Abs(got-res.Unserved) > tolerance {
		t.Errorf("scenario %s exported %.3f unserved, want %.3f", sc.Name, got, res.Unserved)
	}
}

func gaugeValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range mfs {
		if mf.GetName() == name && len(mf.GetMetric()) > 0 {
			return mf.GetMetric()[0].GetGauge().GetValue()
		}
	}
	t.Fatalf("metric %s not found", name)
	return 0
}

func equalNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
