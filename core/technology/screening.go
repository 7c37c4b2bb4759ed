package technology

import "math"

// PeriodCost returns the screening curve value: the cost per capacity unit of
// running for the given number of periods in a year.
func (t *Technology) PeriodCost(periods float64) (float64, error) {
	fixed, err := t.TotalFixedCost()
	if err != nil {
		return 0, err
	}
	return fixed + t.ShortRunMarginalCost()*periods, nil
}

// Breakeven returns the duration at which the screening curves of t and other
// cost the same. ok is false when the curves are parallel.
func (t *Technology) Breakeven(other *Technology) (x float64, ok bool, err error) {
	fa, err := t.TotalFixedCost()
	if err != nil {
		return 0, false, err
	}
	fb, err := other.TotalFixedCost()
	if err != nil {
		return 0, false, err
	}
	va, vb := t.ShortRunMarginalCost(), other.ShortRunMarginalCost()
	if va == vb {
		return 0, false, nil
	}
	x = (fb - fa) / (va - vb)
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, false, nil
	}
	return x, true, nil
}
