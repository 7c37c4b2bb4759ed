package technology

import (
	"errors"
	"fmt"
	"math"
)

// ErrConfiguration indicates missing or degenerate economic parameters.
var ErrConfiguration = errors.New("technology configuration")

// Technology describes the static costs of a generation or storage technology.
type Technology struct {
	Name          string  `json:"name"`
	ResourceClass string  `json:"resource_class"`
	CapitalCost   float64 `json:"capital_cost"` // per capacity unit
	Life          float64 `json:"life"`         // economic life in years
	FixedOM       float64 `json:"fixed_om"`     // per capacity unit and year
	VariableOM    float64 `json:"variable_om"`  // per energy unit
	FuelCost      float64 `json:"fuel_cost"`    // per energy unit
	InterestRate  float64 `json:"interest_rate"`
}

// Criterion names accepted by Technology.Criterion.
const (
	CriterionCapitalCost          = "capital_cost"
	CriterionLife                 = "life"
	CriterionFixedOM              = "fixed_om"
	CriterionVariableOM           = "variable_om"
	CriterionFuelCost             = "fuel_cost"
	CriterionInterestRate         = "interest_rate"
	CriterionShortRunMarginalCost = "short_run_marginal_cost"
	CriterionTotalFixedCost       = "total_fixed_cost"
	CriterionAnnualisedCapital    = "annualised_capital"
	CriterionCRF                  = "crf"
)

// Validate checks that the derived costs are defined.
func (t *Technology) Validate() error {
	if t == nil {
		return fmt.Errorf("%w: nil technology", ErrConfiguration)
	}
	if t.Name == "" {
		return fmt.Errorf("%w: name is required", ErrConfiguration)
	}
	if _, err := t.CRF(); err != nil {
		return err
	}
	if t.CapitalCost < 0 || t.FixedOM < 0 || t.VariableOM < 0 || t.FuelCost < 0 {
		return fmt.Errorf("%w: %s has negative cost", ErrConfiguration, t.Name)
	}
	return nil
}

// CRF returns the capital recovery factor, the ratio of a constant annuity to
// the present value of receiving it over the economic life. A zero interest
// rate falls back to straight-line recovery 1/L.
func (t *Technology) CRF() (float64, error) {
	if t.Life <= 0 || math.IsNaN(t.Life) || math.IsInf(t.Life, 0) {
		return 0, fmt.Errorf("%w: %s life must be positive, got %v", ErrConfiguration, t.Name, t.Life)
	}
	r := t.InterestRate
	if r < 0 || math.IsNaN(r) {
		return 0, fmt.Errorf("%w: %s interest rate must be >= 0, got %v", ErrConfiguration, t.Name, r)
	}
	if r == 0 {
		return 1 / t.Life, nil
	}
	growth := math.Pow(1+r, t.Life)
	return r * growth / (growth - 1), nil
}

// AnnualisedCapital is the capital cost multiplied by the CRF.
func (t *Technology) AnnualisedCapital() (float64, error) {
	crf, err := t.CRF()
	if err != nil {
		return 0, err
	}
	return t.CapitalCost * crf, nil
}

// TotalFixedCost is the sum of all annual fixed costs per capacity unit.
func (t *Technology) TotalFixedCost() (float64, error) {
	capital, err := t.AnnualisedCapital()
	if err != nil {
		return 0, err
	}
	return capital + t.FixedOM, nil
}

// ShortRunMarginalCost is the cost of producing one more energy unit.
func (t *Technology) ShortRunMarginalCost() float64 {
	return t.VariableOM + t.FuelCost
}

// Criterion returns the numeric attribute identified by name. It is used by
// optimisers ranking assets on a configurable attribute.
func (t *Technology) Criterion(name string) (float64, error) {
	switch name {
	case CriterionCapitalCost:
		return t.CapitalCost, nil
	case CriterionLife:
		return t.Life, nil
	case CriterionFixedOM:
		return t.FixedOM, nil
	case CriterionVariableOM:
		return t.VariableOM, nil
	case CriterionFuelCost:
		return t.FuelCost, nil
	case CriterionInterestRate:
		return t.InterestRate, nil
	case CriterionShortRunMarginalCost:
		return t.ShortRunMarginalCost(), nil
	case CriterionTotalFixedCost:
		return t.TotalFixedCost()
	case CriterionAnnualisedCapital:
		return t.AnnualisedCapital()
	case CriterionCRF:
		return t.CRF()
	}
	return 0, fmt.Errorf("%w: unknown criterion %q", ErrConfiguration, name)
}
