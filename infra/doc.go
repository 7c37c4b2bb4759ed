// Package infra contains technical adapters such as the zerolog logger,
// the MQTT client and the metrics sinks. These packages depend only on the
// interfaces defined in the core packages.
package infra
