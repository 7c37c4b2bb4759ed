package metrics

import "errors"

// MultiSink fans out run results to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordRun forwards the result to every sink. A failing sink does not stop
// the others; errors are joined.
func (m *MultiSink) RecordRun(res RunResult) error {
	var errs []error
	for _, s := range m.Sinks {
		if err := s.RecordRun(res); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RecordCapacityCap forwards capping passes when supported by the sink.
func (m *MultiSink) RecordCapacityCap(ev CapacityCapEvent) error {
	var errs []error
	for _, s := range m.Sinks {
		if rec, ok := s.(CapacityCapRecorder); ok {
			if err := rec.RecordCapacityCap(ev); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// Close closes every sink that holds resources.
func (m *MultiSink) Close() error {
	var errs []error
	for _, s := range m.Sinks {
		if c, ok := s.(Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
