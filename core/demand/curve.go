// Package demand models annual demand series and their load-duration curves.
package demand

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
)

// ErrInvalidCurve is returned for empty or non-finite demand series.
var ErrInvalidCurve = errors.New("invalid demand curve")

// AnnualCurve is an ordered demand series with one value per period.
type AnnualCurve struct {
	Name   string
	Unit   string
	values []float64
}

// NewAnnualCurve validates and copies values.
func NewAnnualCurve(name, unit string, values []float64) (*AnnualCurve, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: %s has no periods", ErrInvalidCurve, name)
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: %s period %d is not finite", ErrInvalidCurve, name, i)
		}
	}
	return &AnnualCurve{Name: name, Unit: unit, values: append([]float64(nil), values...)}, nil
}

// Values returns a copy of the series.
func (c *AnnualCurve) Values() []float64 { return append([]float64(nil), c.values...) }

// Periods is the number of periods in the series.
func (c *AnnualCurve) Periods() int { return len(c.values) }

// Peak is the maximum demand value.
func (c *AnnualCurve) Peak() float64 { return floats.Max(c.values) }

// Total is the demand summed over all periods.
func (c *AnnualCurve) Total() float64 { return floats.Sum(c.values) }

// Normalised returns the series scaled so that its peak equals one.
func (c *AnnualCurve) Normalised() []float64 {
	out := c.Values()
	if peak := c.Peak(); peak != 0 {
		floats.Scale(1/peak, out)
	}
	return out
}

// UnitLDC returns the load-duration curve of the normalised series.
func (c *AnnualCurve) UnitLDC() (*LoadDurationCurve, error) {
	return NewLoadDurationCurve(c.Normalised())
}

// LDC returns the load-duration curve in absolute demand units.
func (c *AnnualCurve) LDC() (*LoadDurationCurve, error) {
	return NewLoadDurationCurve(c.values)
}

// LoadDurationCurve maps a duration, the number of periods a level is
// exceeded, to that demand level. Between integer durations the curve is
// linearly interpolated and it is clamped outside [0, periods].
type LoadDurationCurve struct {
	pl      interp.PiecewiseLinear
	periods int
	peak    float64
}

// NewLoadDurationCurve sorts values descending and fits the curve through
// (0, peak), (1, s0), ..., (n, s[n-1]).
func NewLoadDurationCurve(values []float64) (*LoadDurationCurve, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: no periods", ErrInvalidCurve)
	}
	sorted := append([]float64(nil), values...)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))

	xs := make([]float64, len(sorted)+1)
	ys := make([]float64, len(sorted)+1)
	ys[0] = sorted[0]
	for i, v := range sorted {
		xs[i+1] = float64(i + 1)
		ys[i+1] = v
	}
	l := &LoadDurationCurve{periods: len(sorted), peak: sorted[0]}
	if err := l.pl.Fit(xs, ys); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCurve, err)
	}
	return l, nil
}

// DemandAt returns the demand level exceeded for duration periods.
func (l *LoadDurationCurve) DemandAt(duration float64) float64 {
	return l.pl.Predict(duration)
}

// Periods is the length of the underlying series.
func (l *LoadDurationCurve) Periods() int { return l.periods }

// Peak is the demand level at zero duration.
func (l *LoadDurationCurve) Peak() float64 { return l.peak }
