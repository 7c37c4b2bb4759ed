package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kilianp07/dispatchsim/core/dispatch"
	"github.com/kilianp07/dispatchsim/core/technology"
)

const scenarioYAML = `name: "island"
logging:
  level: "debug"
metrics:
  sinks:
    - type: "nop"
components:
  optimiser:
    type: "short_run_marginal_cost"
  capper:
    type: "priority"
portfolio:
  nominal_capacity_cap: 120
  deployment_order: ["passive", "storages", "generators"]
  technologies:
    - name: "ccgt"
      capital_cost: 1000
      life: 25
      fixed_om: 20
      variable_om: 3
      fuel_cost: 40
      interest_rate: 0.05
    - name: "pv"
      capital_cost: 800
      life: 20
  assets:
    - name: "gas-1"
      technology: "ccgt"
      capacity: 80
      firm_factor: 0.9
    - name: "solar"
      kind: "passive_generator"
      technology: "pv"
      capacity: 30
      profile: [0, 0.5, 1, 0.5]
demand:
  path: "demand.csv"
  column: "load"
dispatch:
  levelized_cost: false
`

func writeScenario(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

//nolint:gocyclo
func TestLoad(t *testing.T) {
	path := writeScenario(t, "scenario.yaml", scenarioYAML)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	order, err := cfg.Portfolio.Order()
	if err != nil {
		t.Fatalf("order: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"name", cfg.Name, "island"},
		{"logging.level", cfg.Logging.Level, "debug"},
		{"logging.format", cfg.Logging.Format, "json"},
		{"metrics_sink", len(cfg.Metrics.Sinks) == 1 && cfg.Metrics.Sinks[0].Type == "nop", true},
		{"optimiser", cfg.Components.Optimiser.Type, "short_run_marginal_cost"},
		{"capper", cfg.Components.Capper.Type, "priority"},
		{"cap", cfg.Portfolio.NominalCapacityCap, 120.0},
		{"order", order[0], dispatch.PassiveGenerators},
		{"criterion", cfg.Portfolio.Criterion, "short_run_marginal_cost"},
		{"tech.fuel_cost", cfg.Portfolio.Technologies[0].FuelCost, 40.0},
		{"asset.kind default", cfg.Portfolio.Assets[0].Kind, KindGenerator},
		{"asset.firm_factor", *cfg.Portfolio.Assets[0].FirmFactor, 0.9},
		{"asset.profile", len(cfg.Portfolio.Assets[1].Profile), 4},
		{"demand.path", cfg.Demand.Path, filepath.Join(filepath.Dir(path), "demand.csv")},
		{"demand.format", cfg.Demand.Format, "csv"},
		{"demand.scale", cfg.Demand.Scale, 1.0},
		{"dispatch.levelized", cfg.Dispatch.Options().LevelizedCost, false},
		{"dispatch.annual", cfg.Dispatch.Options().AnnualCosts, true},
		{"dispatch.optimise", cfg.Dispatch.ShouldOptimise(), true},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s mismatch: got %v want %v", c.name, c.got, c.want)
		}
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeScenario(t, "scenario.yaml", scenarioYAML)
	t.Setenv("DS_PORTFOLIO__NOMINAL_CAPACITY_CAP", "75")
	t.Setenv("DS_LOGGING__FORMAT", "console")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Portfolio.NominalCapacityCap != 75 {
		t.Errorf("cap override not applied: %v", cfg.Portfolio.NominalCapacityCap)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("format override not applied: %v", cfg.Logging.Format)
	}
}

func TestLoad_JSONDefaults(t *testing.T) {
	path := writeScenario(t, "scenario.json", `{"demand":{"values":[1,2,3]}}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Components.Optimiser.Type != "merit_order" || cfg.Components.Capper.Type != "proportional" {
		t.Errorf("component defaults not applied: %+v", cfg.Components)
	}
	if len(cfg.Portfolio.DeploymentOrder) != 3 || cfg.Portfolio.DeploymentOrder[2] != "generators" {
		t.Errorf("order default not applied: %v", cfg.Portfolio.DeploymentOrder)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load("scenario.toml"); err == nil {
		t.Fatal("expected unsupported format error")
	}
	cases := map[string]string{
		"no demand":       `{}`,
		"bad level":       `{"logging":{"level":"loud"},"demand":{"values":[1]}}`,
		"unknown tech":    `{"portfolio":{"assets":[{"name":"a","technology":"x"}]},"demand":{"values":[1]}}`,
		"bad order":       `{"portfolio":{"deployment_order":["generators","generators","storages"]},"demand":{"values":[1]}}`,
		"bad category":    `{"portfolio":{"deployment_order":["wind"]},"demand":{"values":[1]}}`,
		"zero life":       `{"portfolio":{"technologies":[{"name":"t","capital_cost":1}]},"demand":{"values":[1]}}`,
		"storage no hour": `{"portfolio":{"technologies":[{"name":"t","life":1}],"assets":[{"name":"b","kind":"storage","technology":"t"}]},"demand":{"values":[1]}}`,
		"bad demand fmt":  `{"demand":{"path":"load.parquet"}}`,
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeScenario(t, "scenario.json", data)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestPortfolioValidate_DuplicateAsset(t *testing.T) {
	p := PortfolioConfig{
		Assets: []AssetConfig{{Name: "a", Kind: KindGenerator, Technology: "t"}, {Name: "a", Kind: KindGenerator, Technology: "t"}},
	}
	p.Technologies = append(p.Technologies, techFixture())
	p.SetDefaults()
	if err := p.Validate(); !errors.Is(err, dispatch.ErrDuplicateAsset) {
		t.Fatalf("expected duplicate asset error got %v", err)
	}
}

func techFixture() technology.Technology {
	return technology.Technology{Name: "t", CapitalCost: 10, Life: 5}
}
