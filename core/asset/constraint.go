package asset

// Constraint bounds dispatch as a fraction of nameplate capacity per period.
// A nil Constraint leaves the asset bounded by capacity only.
type Constraint interface {
	Factor(period int) float64
}

// Scalar applies the same availability factor to every period.
type Scalar float64

func (s Scalar) Factor(int) float64 { return clampFactor(float64(s)) }

// Profile is a time-varying availability factor. Profiles shorter than the
// demand series repeat cyclically, so a 24 value profile describes a day.
type Profile []float64

func (p Profile) Factor(period int) float64 {
	if len(p) == 0 {
		return 1
	}
	if period < 0 {
		period = 0
	}
	return clampFactor(p[period%len(p)])
}

func clampFactor(f float64) float64 {
	if f < 0 || f != f {
		return 0
	}
	return f
}
