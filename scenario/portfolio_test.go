package scenario

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/dispatchsim/config"
	"github.com/kilianp07/dispatchsim/core/asset"
	"github.com/kilianp07/dispatchsim/core/capacity"
	"github.com/kilianp07/dispatchsim/core/dispatch"
	"github.com/kilianp07/dispatchsim/core/optimise"
	"github.com/kilianp07/dispatchsim/core/technology"
)

func ptr(v float64) *float64 { return &v }

func portfolioConfig() config.PortfolioConfig {
	p := config.PortfolioConfig{
		NominalCapacityCap: 100,
		Technologies: []technology.Technology{
			{Name: "ccgt", CapitalCost: 200, Life: 10, VariableOM: 40},
			{Name: "ocgt", CapitalCost: 50, Life: 10, VariableOM: 90},
			{Name: "pv", CapitalCost: 80, Life: 10},
			{Name: "li-ion", CapitalCost: 120, Life: 10, VariableOM: 1},
		},
		Assets: []config.AssetConfig{
			{Name: "peaker", Technology: "ocgt", Capacity: 10},
			{Name: "gas", Technology: "ccgt", Capacity: 20, FirmFactor: ptr(0.5)},
			{Name: "solar", Kind: config.KindPassiveGenerator, Technology: "pv", Capacity: 15, Profile: []float64{0, 1}},
			{Name: "battery", Kind: config.KindStorage, Technology: "li-ion", Capacity: 5, DurationHours: 2, Efficiency: 0.9, InitialSoC: 0.5},
		},
	}
	p.SetDefaults()
	return p
}

func TestBuildGroups(t *testing.T) {
	g, err := BuildGroups(portfolioConfig(), optimise.ShortRunMarginalCost{}, capacity.NopCapper{})
	require.NoError(t, err)
	assert.Equal(t, []string{"solar"}, g.Group(dispatch.PassiveGenerators).Names())
	assert.Equal(t, []string{"battery"}, g.Group(dispatch.Storages).Names())
	assert.Equal(t, []string{"peaker", "gas"}, g.Group(dispatch.Generators).Names())
	assert.InDelta(t, 10+10+15+5, g.TotalCapacity(), 1e-9)

	require.NoError(t, g.OptimiseGroups())
	assert.Equal(t, []string{"gas", "peaker"}, g.Group(dispatch.Generators).Names())

	b, ok := g.Group(dispatch.Storages).AssetByName("battery")
	require.True(t, ok)
	st, ok := b.(*asset.Storage)
	require.True(t, ok)
	assert.InDelta(t, 0.5, st.InitialSoC, 1e-9)
	assert.InDelta(t, 10, st.EnergyCapacity(), 1e-9)
}

func TestBuildGroups_SharedTechnology(t *testing.T) {
	p := portfolioConfig()
	p.Assets = append(p.Assets, config.AssetConfig{Name: "gas-2", Kind: config.KindGenerator, Technology: "ccgt", Capacity: 1})
	g, err := BuildGroups(p, optimise.ShortRunMarginalCost{}, nil)
	require.NoError(t, err)
	a, _ := g.Group(dispatch.Generators).AssetByName("gas")
	b, _ := g.Group(dispatch.Generators).AssetByName("gas-2")
	if a.Technology() != b.Technology() {
		t.Fatal("assets of one technology should share it")
	}
}

func TestBuildGroups_Errors(t *testing.T) {
	p := portfolioConfig()
	p.Assets[0].Technology = "nuclear"
	if _, err := BuildGroups(p, optimise.ShortRunMarginalCost{}, nil); err == nil {
		t.Fatal("expected unknown technology error")
	}

	p = portfolioConfig()
	p.Assets[1].Name = "peaker"
	if _, err := BuildGroups(p, optimise.ShortRunMarginalCost{}, nil); !errors.Is(err, dispatch.ErrDuplicateAsset) {
		t.Fatalf("expected duplicate error got %v", err)
	}

	p = portfolioConfig()
	p.Technologies[0].Life = 0
	if _, err := BuildGroups(p, optimise.ShortRunMarginalCost{}, nil); !errors.Is(err, technology.ErrConfiguration) {
		t.Fatalf("expected configuration error got %v", err)
	}
}

func TestNewRunResult(t *testing.T) {
	g, err := BuildGroups(portfolioConfig(), optimise.ShortRunMarginalCost{}, nil)
	require.NoError(t, err)
	now := time.Now()
	empty := NewRunResult("base", g, now)
	assert.Empty(t, empty.Assets)

	require.NoError(t, g.OptimiseGroups())
	_, err = g.Dispatch([]float64{30, 40}, dispatch.DefaultDispatchOptions)
	require.NoError(t, err)

	res := NewRunResult("base", g, now)
	assert.Equal(t, g.Log().RunID(), res.RunID)
	assert.Equal(t, 2, res.Periods)
	assert.InDelta(t, 70, res.Demand, 1e-9)
	require.Len(t, res.Assets, 4)
	assert.Equal(t, "solar", res.Assets[0].Asset)
	assert.Equal(t, "passive_generators", res.Assets[0].Category)
	assert.Equal(t, "pv", res.Assets[0].Technology)
	assert.Equal(t, "generators", res.Assets[3].Category)
	assert.Equal(t, 3, res.Assets[3].Position)
}
