package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/dispatchsim/core/metrics"
)

// EnvPrefix marks environment overrides. DS_PORTFOLIO__NOMINAL_CAPACITY_CAP
// overrides portfolio.nominal_capacity_cap.
const EnvPrefix = "DS_"

// Config describes one dispatch scenario.
type Config struct {
	Name       string           `json:"name"`
	Logging    LoggingConfig    `json:"logging"`
	Metrics    metrics.Config   `json:"metrics"`
	Components ComponentsConfig `json:"components"`
	Portfolio  PortfolioConfig  `json:"portfolio"`
	Demand     DemandConfig     `json:"demand"`
	Dispatch   DispatchConfig   `json:"dispatch"`
	Sentry     SentryConfig     `json:"sentry"`
}

// Load reads a yaml or json scenario file, applies environment overrides,
// defaults and validation. Relative demand paths are resolved against the
// directory of the file.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	prefix := strings.ToLower(EnvPrefix)
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), prefix)
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	if cfg.Demand.Path != "" && !filepath.IsAbs(cfg.Demand.Path) {
		cfg.Demand.Path = filepath.Join(filepath.Dir(path), cfg.Demand.Path)
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults applies defaults to every section.
func (c *Config) SetDefaults() {
	if c.Name == "" {
		c.Name = "default"
	}
	c.Logging.SetDefaults()
	c.Components.SetDefaults()
	c.Portfolio.SetDefaults()
	c.Demand.SetDefaults()
	c.Dispatch.SetDefaults()
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.Portfolio.Validate(); err != nil {
		return fmt.Errorf("portfolio: %w", err)
	}
	if err := c.Demand.Validate(); err != nil {
		return fmt.Errorf("demand: %w", err)
	}
	return nil
}
