package asset

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/dispatchsim/core/technology"
)

// Storage is an energy store that shaves residual demand peaks. It charges
// while residual demand is below its mean and discharges above it. Charging
// is reported as negative dispatch so that residual demand grows by the
// energy drawn.
type Storage struct {
	base
	// DurationHours is the energy capacity divided by the power capacity.
	DurationHours float64
	// Efficiency is the round-trip efficiency applied when charging.
	Efficiency float64
	// InitialSoC is the initial state of charge as a fraction of energy capacity.
	InitialSoC float64
}

// NewStorage returns a storage asset. capacity is the power capacity.
func NewStorage(name string, capacity float64, tech *technology.Technology, c Constraint, durationHours, efficiency float64) *Storage {
	if efficiency <= 0 || efficiency > 1 {
		efficiency = 1
	}
	if durationHours < 0 {
		durationHours = 0
	}
	return &Storage{base: newBase(name, capacity, tech, c), DurationHours: durationHours, Efficiency: efficiency}
}

func (s *Storage) Kind() Kind { return KindStorage }

// EnergyCapacity is the maximum stored energy.
func (s *Storage) EnergyCapacity() float64 { return s.capacity * s.DurationHours }

// Dispatch walks the residual demand once, tracking the state of charge.
func (s *Storage) Dispatch(residual []float64) []float64 {
	out := make([]float64, len(residual))
	energy := s.EnergyCapacity()
	if len(residual) == 0 || energy == 0 || s.capacity == 0 {
		return out
	}
	threshold := math.Max(0, stat.Mean(residual, nil))
	soc := math.Min(math.Max(s.InitialSoC, 0), 1) * energy
	for t, r := range residual {
		power := s.limit(t)
		switch {
		case r > threshold:
			d := math.Min(math.Min(power, r-threshold), soc)
			if d > 0 {
				out[t] = d
				soc -= d
			}
		case r < threshold:
			c := math.Min(math.Min(power, threshold-r), (energy-soc)/s.Efficiency)
			if c > 0 {
				out[t] = -c
				soc += c * s.Efficiency
			}
		}
	}
	return out
}

func (s *Storage) Details() Details { return s.details(KindStorage) }
