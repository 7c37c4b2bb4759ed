package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// DemandConfig locates the demand series of a scenario. Values inline in
// the config take precedence over Path.
type DemandConfig struct {
	Path string `json:"path"`
	// Format is "csv" or "json"; inferred from the path extension when empty.
	Format string `json:"format"`
	// Column selects the CSV column by header name; the last column is used
	// when empty.
	Column string    `json:"column"`
	Scale  float64   `json:"scale"`
	Unit   string    `json:"unit"`
	Values []float64 `json:"values"`
}

// SetDefaults infers the format and applies a unit scale.
func (c *DemandConfig) SetDefaults() {
	if c.Format == "" && c.Path != "" {
		c.Format = strings.TrimPrefix(strings.ToLower(filepath.Ext(c.Path)), ".")
	}
	if c.Scale == 0 {
		c.Scale = 1
	}
	if c.Unit == "" {
		c.Unit = "MW"
	}
}

// Validate checks that a demand source is configured.
func (c DemandConfig) Validate() error {
	if len(c.Values) > 0 {
		return nil
	}
	if c.Path == "" {
		return errors.New("path or values is required")
	}
	if c.Format != "csv" && c.Format != "json" {
		return fmt.Errorf("unsupported format %q", c.Format)
	}
	if c.Scale < 0 {
		return errors.New("scale must be >= 0")
	}
	return nil
}
