// Package metrics defines the sinks that receive the results of dispatch
// runs. Sinks like PromSink and InfluxSink in infra/metrics record a
// RunResult per pass and can be combined with NewMultiSink. The factory
// helpers return a MultiSink automatically when multiple sinks are
// configured.
package metrics
