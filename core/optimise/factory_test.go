package optimise

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kilianp07/dispatchsim/core/asset"
	"github.com/kilianp07/dispatchsim/core/factory"
)

func TestNew_Builtins(t *testing.T) {
	opt, err := New(factory.ModuleConfig{}, nil)
	require.NoError(t, err)
	if opt.Name() != "short_run_marginal_cost" {
		t.Fatalf("unexpected default %s", opt.Name())
	}

	d := linearDemand(t)
	opt, err = New(factory.ModuleConfig{Type: "merit_order"}, d)
	require.NoError(t, err)
	mo, ok := opt.(*MeritOrder)
	if !ok || mo.Demand != d {
		t.Fatalf("merit order not bound to demand: %T", opt)
	}

	if _, err := New(factory.ModuleConfig{Type: "genetic"}, d); err == nil {
		t.Fatal("expected unknown type error")
	}
}

func TestNew_MeritOrderWithoutDemand(t *testing.T) {
	opt, err := New(factory.ModuleConfig{Type: "merit_order"}, nil)
	require.NoError(t, err)
	_, err = opt.Optimise([]asset.Asset{asset.NewGenerator("gas", 1, tech("gas", 20, 40), nil)}, "")
	if !errors.Is(err, ErrNoDemand) {
		t.Fatalf("expected ErrNoDemand got %v", err)
	}
}
