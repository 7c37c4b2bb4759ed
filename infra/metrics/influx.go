package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/dispatchsim/core/metrics"
	"github.com/kilianp07/dispatchsim/infra/logger"
)

// InfluxSink writes run results to an InfluxDB instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.MetricsSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordRun writes one asset_dispatch point per asset followed by a
// run_summary point.
func (s *InfluxSink) RecordRun(res coremetrics.RunResult) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, a := range res.Assets {
		p := write.NewPointWithMeasurement("asset_dispatch").
			AddTag("run_id", res.RunID).
			AddTag("scenario", res.Scenario).
			AddTag("asset", a.Asset).
			AddTag("category", a.Category).
			AddTag("technology", a.Technology).
			AddField("position", a.Position).
			AddField("capacity", round3(a.Capacity)).
			AddField("energy", round3(a.Energy)).
			AddField("annual_cost", round3(a.AnnualCost))
		if a.LevelizedCost != nil {
			p = p.AddField("levelized_cost", round3(*a.LevelizedCost))
		}
		p = p.SetTime(res.Time)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	p := write.NewPointWithMeasurement("run_summary").
		AddTag("run_id", res.RunID).
		AddTag("scenario", res.Scenario).
		AddField("periods", res.Periods).
		AddField("demand", round3(res.Demand)).
		AddField("unserved", round3(res.Unserved)).
		AddField("total_capacity", round3(res.TotalCapacity)).
		AddField("annual_cost", round3(res.AnnualCost)).
		AddField("energy", round3(res.Energy))
	if res.LevelizedCost != nil {
		p = p.AddField("levelized_cost", round3(*res.LevelizedCost))
	}
	p = p.SetTime(res.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordCapacityCap writes a capacity_cap point.
func (s *InfluxSink) RecordCapacityCap(ev coremetrics.CapacityCapEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("capacity_cap").
		AddTag("scenario", ev.Scenario).
		AddTag("strategy", ev.Strategy).
		AddTag("clamped", strconv.FormatBool(ev.Clamped)).
		AddField("exceedance", round3(ev.Exceedance)).
		AddField("removed", round3(ev.Removed)).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the client resources.
func (s *InfluxSink) Close() error {
	s.client.Close()
	return nil
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
