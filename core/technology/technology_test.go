package technology

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCRF_Reference(t *testing.T) {
	tech := Technology{Name: "ccgt", Life: 20, InterestRate: 0.03}
	crf, err := tech.CRF()
	require.NoError(t, err)
	assert.InDelta(t, 0.06722, crf, 1e-5)
}

func TestCRF_StraightLineFallback(t *testing.T) {
	tech := Technology{Name: "wind", Life: 10}
	crf, err := tech.CRF()
	require.NoError(t, err)
	if crf != 0.1 {
		t.Fatalf("expected 0.1 got %v", crf)
	}
}

func TestCRF_InvalidParameters(t *testing.T) {
	cases := []Technology{
		{Name: "zero-life", Life: 0, InterestRate: 0.05},
		{Name: "negative-life", Life: -3, InterestRate: 0.05},
		{Name: "negative-rate", Life: 10, InterestRate: -0.01},
	}
	for _, tc := range cases {
		if _, err := tc.CRF(); !errors.Is(err, ErrConfiguration) {
			t.Fatalf("%s: expected configuration error got %v", tc.Name, err)
		}
		if err := tc.Validate(); !errors.Is(err, ErrConfiguration) {
			t.Fatalf("%s: validate should fail, got %v", tc.Name, err)
		}
	}
}

func TestTotalFixedCost(t *testing.T) {
	tech := Technology{Name: "coal", CapitalCost: 1000, Life: 10, FixedOM: 25}
	fixed, err := tech.TotalFixedCost()
	require.NoError(t, err)
	assert.InDelta(t, 125.0, fixed, 1e-9)
}

func TestCriterion(t *testing.T) {
	tech := Technology{Name: "ocgt", CapitalCost: 500, Life: 25, VariableOM: 4, FuelCost: 60, InterestRate: 0.05}
	v, err := tech.Criterion(CriterionShortRunMarginalCost)
	require.NoError(t, err)
	assert.Equal(t, 64.0, v)

	v, err = tech.Criterion(CriterionVariableOM)
	require.NoError(t, err)
	assert.Equal(t, 4.0, v)

	_, err = tech.Criterion("colour")
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestBreakeven(t *testing.T) {
	base := &Technology{Name: "base", CapitalCost: 1000, Life: 10, VariableOM: 10}
	peak := &Technology{Name: "peak", CapitalCost: 200, Life: 10, VariableOM: 50}
	x, ok, err := base.Breakeven(peak)
	require.NoError(t, err)
	require.True(t, ok)
	// 100 + 10x = 20 + 50x
	assert.InDelta(t, 2.0, x, 1e-9)

	y, ok, err := peak.Breakeven(base)
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, x, y, 1e-9)

	a, _ := base.PeriodCost(x)
	b, _ := peak.PeriodCost(x)
	assert.InDelta(t, a, b, 1e-9)
}

func TestBreakeven_Parallel(t *testing.T) {
	a := &Technology{Name: "a", CapitalCost: 100, Life: 5, VariableOM: 3}
	b := &Technology{Name: "b", CapitalCost: 300, Life: 5, VariableOM: 3}
	_, ok, err := a.Breakeven(b)
	require.NoError(t, err)
	if ok {
		t.Fatalf("parallel curves should not intersect")
	}
}
