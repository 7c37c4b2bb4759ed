package asset

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// DeliveredEnergy sums the positive part of a dispatch series. Charging
// periods of storage are negative and do not count as delivered energy.
func DeliveredEnergy(dispatch []float64) float64 {
	var e float64
	for _, d := range dispatch {
		if d > 0 {
			e += d
		}
	}
	return e
}

// NetEnergy is the plain sum of a dispatch series.
func NetEnergy(dispatch []float64) float64 { return floats.Sum(dispatch) }

// Levelized divides a precomputed annual cost by the delivered energy. It
// returns NaN when no energy was delivered; callers check with math.IsNaN
// before aggregating.
func Levelized(total float64, dispatch []float64) float64 {
	e := DeliveredEnergy(dispatch)
	if e == 0 {
		return math.NaN()
	}
	return total / e
}

// PeriodCosts spreads the levelized cost over the dispatch series. An
// undefined levelized cost yields zero cost in every period.
func PeriodCosts(dispatch []float64, levelized float64) []float64 {
	out := make([]float64, len(dispatch))
	if math.IsNaN(levelized) {
		return out
	}
	for i, d := range dispatch {
		if d > 0 {
			out[i] = d * levelized
		}
	}
	return out
}
