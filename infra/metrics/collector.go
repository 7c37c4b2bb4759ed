package metrics

import (
	"context"
	"time"

	"github.com/kilianp07/dispatchsim/core/events"
	coremetrics "github.com/kilianp07/dispatchsim/core/metrics"
	"github.com/kilianp07/dispatchsim/infra/logger"
	"github.com/kilianp07/dispatchsim/internal/eventbus"
)

// StartEventCollector subscribes to the event bus and forwards capping
// passes to sinks able to record them. It stops when the context is
// canceled or the bus is closed; the returned channel is closed on exit.
func StartEventCollector(ctx context.Context, bus eventbus.EventBus, sink coremetrics.MetricsSink, scenario string) <-chan struct{} {
	done := make(chan struct{})
	rec, ok := sink.(coremetrics.CapacityCapRecorder)
	if bus == nil || !ok {
		close(done)
		return done
	}
	log := logger.New("event-collector")
	sub := bus.Subscribe()
	go func() {
		defer close(done)
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				e, ok := ev.(events.CapacityCappedEvent)
				if !ok {
					continue
				}
				if err := rec.RecordCapacityCap(coremetrics.CapacityCapEvent{
					Scenario:   scenario,
					Strategy:   e.Strategy,
					Exceedance: e.Exceedance,
					Removed:    e.Removed,
					Clamped:    e.Clamped,
					Time:       time.Now(),
				}); err != nil {
					log.Errorf("record capacity cap: %v", err)
				}
			}
		}
	}()
	return done
}
