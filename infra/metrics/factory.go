package metrics

import (
	"fmt"

	"github.com/kilianp07/dispatchsim/core/factory"
	coremetrics "github.com/kilianp07/dispatchsim/core/metrics"
	"github.com/kilianp07/dispatchsim/infra/mqtt"
)

// init registers built-in metrics sinks.
func init() {
	_ = coremetrics.RegisterMetricsSink("prometheus", func(map[string]any) (coremetrics.MetricsSink, error) {
		return NewPromSink()
	})

	_ = coremetrics.RegisterMetricsSink("influx", func(conf map[string]any) (coremetrics.MetricsSink, error) {
		var c struct {
			URL    string `json:"url"`
			Token  string `json:"token"`
			Org    string `json:"org"`
			Bucket string `json:"bucket"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		if c.URL == "" {
			return nil, fmt.Errorf("influx sink: url is required")
		}
		return NewInfluxSinkWithFallback(c.URL, c.Token, c.Org, c.Bucket), nil
	})

	_ = coremetrics.RegisterMetricsSink("mqtt", func(conf map[string]any) (coremetrics.MetricsSink, error) {
		var c struct {
			TopicPrefix string      `json:"topic_prefix"`
			Client      mqtt.Config `json:"client"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		cli, err := mqtt.NewPahoClient(c.Client)
		if err != nil {
			return nil, fmt.Errorf("mqtt sink: %w", err)
		}
		return NewMqttSink(cli, c.TopicPrefix), nil
	})
}
