// Package app wires a scenario configuration into a runnable simulation.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/kilianp07/dispatchsim/config"
	"github.com/kilianp07/dispatchsim/core/capacity"
	"github.com/kilianp07/dispatchsim/core/demand"
	"github.com/kilianp07/dispatchsim/core/dispatch"
	coremetrics "github.com/kilianp07/dispatchsim/core/metrics"
	"github.com/kilianp07/dispatchsim/core/monitoring"
	"github.com/kilianp07/dispatchsim/core/optimise"
	"github.com/kilianp07/dispatchsim/infra/logger"
	"github.com/kilianp07/dispatchsim/infra/metrics"
	"github.com/kilianp07/dispatchsim/internal/eventbus"
	"github.com/kilianp07/dispatchsim/scenario"
)

// Service owns the groups, demand and sinks of one scenario.
type Service struct {
	Groups    *dispatch.Groups
	Demand    *demand.AnnualCurve
	Scenarios dispatch.ScenarioLog

	cfg       *config.Config
	sink      coremetrics.MetricsSink
	bus       eventbus.EventBus
	collector <-chan struct{}
	cancel    context.CancelFunc
	log       logger.Logger
	logFile   io.Closer
	ranked    bool
}

// Option customises a Service.
type Option func(*Service)

// WithSink replaces the sinks configured in the metrics section.
func WithSink(s coremetrics.MetricsSink) Option {
	return func(svc *Service) { svc.sink = s }
}

// WithLogger replaces the service logger.
func WithLogger(l logger.Logger) Option {
	return func(svc *Service) { svc.log = l }
}

// New creates a Service from the configuration.
func New(cfg *config.Config, opts ...Option) (*Service, error) {
	if cfg == nil {
		return nil, errors.New("nil config")
	}
	if err := logger.SetLevel(cfg.Logging.Level); err != nil {
		return nil, err
	}
	svc := &Service{cfg: cfg}
	logOpts := logger.Options{Format: cfg.Logging.Format}
	if cfg.Logging.File != "" {
		w, err := logger.NewRotatingWriter(cfg.Logging.File, logger.RotationOptions{
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
			MaxAgeDays: cfg.Logging.MaxAgeDays,
		})
		if err != nil {
			return nil, fmt.Errorf("log file: %w", err)
		}
		logOpts.Out, svc.logFile = w, w
	}
	newLogger := func(component string) logger.Logger {
		return logger.NewWithOptions(component, logOpts)
	}
	for _, o := range opts {
		o(svc)
	}
	if svc.log == nil {
		svc.log = newLogger("service")
	}

	if err := svc.build(newLogger); err != nil {
		if svc.logFile != nil {
			_ = svc.logFile.Close()
		}
		return nil, err
	}
	return svc, nil
}

func (s *Service) build(newLogger func(string) logger.Logger) error {
	cfg := s.cfg
	curve, err := scenario.LoadDemand(cfg.Demand)
	if err != nil {
		return fmt.Errorf("demand: %w", err)
	}
	opt, err := optimise.New(cfg.Components.Optimiser, curve)
	if err != nil {
		return fmt.Errorf("optimiser: %w", err)
	}
	capper, err := capacity.New(cfg.Components.Capper, newLogger("capper"))
	if err != nil {
		return fmt.Errorf("capper: %w", err)
	}
	if s.sink == nil {
		s.sink, err = coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
		if err != nil {
			return fmt.Errorf("metrics sink: %w", err)
		}
	}

	bus := eventbus.New()
	groups, err := scenario.BuildGroups(cfg.Portfolio, opt, capper,
		dispatch.WithLogger(newLogger("dispatch")),
		dispatch.WithEventBus(bus),
	)
	if err != nil {
		bus.Close()
		return fmt.Errorf("portfolio: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.Groups = groups
	s.Demand = curve
	s.bus = bus
	s.cancel = cancel
	s.collector = metrics.StartEventCollector(ctx, bus, s.sink, cfg.Name)
	s.log.Infof("scenario %s: %d assets, %d periods, optimiser %s, capper %s",
		cfg.Name, len(groups.AllAssets()), curve.Periods(), opt.Name(), capper.Name())
	return nil
}

// Name is the scenario name.
func (s *Service) Name() string { return s.cfg.Name }

// Ranking is the ranked table of one category.
type Ranking struct {
	Category string
	Records  []dispatch.Record
}

// prepare ranks the groups once and enforces the capacity cap when enabled.
func (s *Service) prepare() error {
	if s.ranked {
		return nil
	}
	if s.cfg.Dispatch.ShouldOptimise() {
		if err := s.Groups.OptimiseGroups(); err != nil {
			return err
		}
	}
	if s.cfg.Dispatch.CapCapacities {
		res := s.Groups.CapCapacities()
		if res.Removed > 0 {
			s.log.Infof("capacity capped to %.3f, removed %.3f", s.Groups.NominalCapacityCap(), res.Removed)
		}
	}
	s.ranked = true
	return nil
}

// Rank returns the ranked tables in deployment order.
func (s *Service) Rank() ([]Ranking, error) {
	if err := s.prepare(); err != nil {
		return nil, err
	}
	var out []Ranking
	for _, c := range s.Groups.DeploymentOrder() {
		out = append(out, Ranking{Category: c.String(), Records: s.Groups.Group(c).Records()})
	}
	return out, nil
}

// Run dispatches the configured demand once.
func (s *Service) Run(ctx context.Context) (coremetrics.RunResult, error) {
	return s.RunDemand(ctx, s.Demand.Values())
}

// RunDemand dispatches the portfolio against values, records the result in
// the metrics sink and adds it to Scenarios. Callers repeating a scenario
// over sampled demand years call it once per sample.
func (s *Service) RunDemand(ctx context.Context, values []float64) (coremetrics.RunResult, error) {
	if err := ctx.Err(); err != nil {
		return coremetrics.RunResult{}, err
	}
	if err := s.prepare(); err != nil {
		return coremetrics.RunResult{}, err
	}
	l, err := s.Groups.Dispatch(values, s.cfg.Dispatch.Options())
	if err != nil {
		return coremetrics.RunResult{}, err
	}
	res := scenario.NewRunResult(s.cfg.Name, s.Groups, time.Now())
	if err := s.sink.RecordRun(res); err != nil {
		s.log.Errorf("record run %s: %v", res.RunID, err)
		monitoring.CaptureException(err, map[string]string{"scenario": s.cfg.Name, "run_id": res.RunID})
	}
	s.Scenarios.Add(l)
	return res, nil
}

// ServeMetrics exposes /metrics on the configured address until ctx is
// canceled. It is a no-op when no address is configured.
func (s *Service) ServeMetrics(ctx context.Context, addr string) {
	if addr == "" {
		addr = s.cfg.Metrics.PrometheusAddr
	}
	if addr == "" {
		return
	}
	go func() {
		if err := metrics.StartPromServer(ctx, addr); err != nil {
			s.log.Errorf("prom server: %v", err)
		}
	}()
}

// Close flushes pending events and releases the sinks and the log file.
func (s *Service) Close() error {
	s.bus.Close()
	<-s.collector
	s.cancel()
	var errs []error
	if c, ok := s.sink.(coremetrics.Closer); ok {
		errs = append(errs, c.Close())
	}
	if s.logFile != nil {
		errs = append(errs, s.logFile.Close())
	}
	return errors.Join(errs...)
}
