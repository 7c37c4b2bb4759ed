package metrics

import (
	"math"
	"time"
)

// AssetResult is the outcome of one asset in a dispatch pass.
type AssetResult struct {
	Asset      string  `json:"asset"`
	Category   string  `json:"category"`
	Technology string  `json:"technology"`
	Position   int     `json:"position"`
	Capacity   float64 `json:"capacity"`
	Energy     float64 `json:"energy"`
	AnnualCost float64 `json:"annual_cost"`
	// LevelizedCost is nil when the asset delivered no energy.
	LevelizedCost *float64 `json:"levelized_cost"`
}

// RunResult summarises one dispatch pass.
type RunResult struct {
	RunID         string        `json:"run_id"`
	Scenario      string        `json:"scenario"`
	Time          time.Time     `json:"time"`
	Periods       int           `json:"periods"`
	Demand        float64       `json:"demand"`
	Unserved      float64       `json:"unserved"`
	TotalCapacity float64       `json:"total_capacity"`
	AnnualCost    float64       `json:"annual_cost"`
	Energy        float64       `json:"energy"`
	LevelizedCost *float64      `json:"levelized_cost"`
	Assets        []AssetResult `json:"assets"`
}

// MetricsSink records dispatch run results for observability purposes.
type MetricsSink interface {
	RecordRun(res RunResult) error
}

// CapacityCapEvent describes one capping pass.
type CapacityCapEvent struct {
	Scenario   string
	Strategy   string
	Exceedance float64
	Removed    float64
	Clamped    bool
	Time       time.Time
}

// CapacityCapRecorder is implemented by sinks able to record capping passes.
type CapacityCapRecorder interface {
	RecordCapacityCap(ev CapacityCapEvent) error
}

// Closer is implemented by sinks holding network resources.
type Closer interface {
	Close() error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordRun(RunResult) error                { return nil }
func (NopSink) RecordCapacityCap(CapacityCapEvent) error { return nil }

// Float returns a pointer to v, or nil when v is NaN.
func Float(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}
