package capacity

import (
	"github.com/kilianp07/dispatchsim/core/factory"
	"github.com/kilianp07/dispatchsim/core/logger"
)

var registry = factory.NewRegistry[Capper]()

func init() {
	_ = registry.Register("nop", func(map[string]any) (Capper, error) { return NopCapper{}, nil })
	_ = registry.Register("proportional", func(map[string]any) (Capper, error) { return NewProportionalCapper(nil), nil })
	_ = registry.Register("priority", func(map[string]any) (Capper, error) { return NewPriorityCapper(nil), nil })
}

// Register adds a capper factory identified by name.
func Register(name string, f factory.Factory[Capper]) error {
	return registry.Register(name, f)
}

// New creates the capper described by cfg, defaulting to proportional.
// Cappers that log receive log.
func New(cfg factory.ModuleConfig, log logger.Logger) (Capper, error) {
	if cfg.Type == "" {
		cfg.Type = "proportional"
	}
	c, err := registry.Create(cfg)
	if err != nil {
		return nil, err
	}
	if l, ok := c.(interface{ SetLogger(logger.Logger) }); ok {
		l.SetLogger(log)
	}
	return c, nil
}
