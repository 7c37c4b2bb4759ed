package metrics

import (
	"encoding/json"
	"fmt"
	"strings"

	coremetrics "github.com/kilianp07/dispatchsim/core/metrics"
	coremqtt "github.com/kilianp07/dispatchsim/core/mqtt"
)

// MqttSink publishes run summaries as JSON documents. Runs go to
// <prefix>/runs/<scenario> and capping passes to <prefix>/capacity/<scenario>.
type MqttSink struct {
	pub    coremqtt.Publisher
	prefix string
}

// NewMqttSink returns a sink publishing through pub under prefix.
func NewMqttSink(pub coremqtt.Publisher, prefix string) *MqttSink {
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix == "" {
		prefix = "dispatchsim"
	}
	return &MqttSink{pub: pub, prefix: prefix}
}

func (s *MqttSink) topic(kind, scenario string) string {
	if scenario == "" {
		scenario = "default"
	}
	return fmt.Sprintf("%s/%s/%s", s.prefix, kind, scenario)
}

// RecordRun publishes res.
func (s *MqttSink) RecordRun(res coremetrics.RunResult) error {
	payload, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("encode run %s: %w", res.RunID, err)
	}
	return s.pub.Publish(s.topic("runs", res.Scenario), payload)
}

// RecordCapacityCap publishes ev.
func (s *MqttSink) RecordCapacityCap(ev coremetrics.CapacityCapEvent) error {
	payload, err := json.Marshal(struct {
		Strategy   string  `json:"strategy"`
		Exceedance float64 `json:"exceedance"`
		Removed    float64 `json:"removed"`
		Clamped    bool    `json:"clamped"`
		Time       int64   `json:"timestamp"`
	}{ev.Strategy, ev.Exceedance, ev.Removed, ev.Clamped, ev.Time.UnixMilli()})
	if err != nil {
		return err
	}
	return s.pub.Publish(s.topic("capacity", ev.Scenario), payload)
}

// Close disconnects the publisher.
func (s *MqttSink) Close() error {
	s.pub.Disconnect()
	return nil
}
