package optimise

import (
	"errors"
	"fmt"
)

// ErrEnvelopeOverflow is returned when the breakeven traversal yields more
// ranks than candidates plus one, meaning the cost curves are cyclic or
// numerically corrupt.
var ErrEnvelopeOverflow = errors.New("merit order envelope overflow")

// Intercept is a breakeven point between a candidate and another candidate.
type Intercept struct {
	// With is the index of the other candidate.
	With int
	// Duration is the number of periods at which both curves cost the same.
	Duration float64
}

// Candidate is one screening curve reduced to what the traversal needs.
type Candidate struct {
	Name           string
	FullPeriodCost float64
	Intercepts     []Intercept
}

// Tranche is the capacity slice assigned to one candidate, in the units of
// the duration curve.
type Tranche struct {
	Index    int     `json:"-"`
	Name     string  `json:"name"`
	Rank     int     `json:"rank"`
	DeployAt float64 `json:"deploy_at"`
	Size     float64 `json:"size"`
}

// DurationCurve converts a duration into the demand level exceeded for that
// long. demand.LoadDurationCurve satisfies it.
type DurationCurve interface {
	DemandAt(duration float64) float64
	Peak() float64
}

// Envelope ranks candidates by walking the breakeven envelope from the full
// period down to zero. The candidate cheapest over the full period is on duty
// at every load level; each subsequent rank starts at the demand level found
// at the largest remaining intercept of the current rank. Ties are broken by
// candidate name.
func Envelope(cands []Candidate, ldc DurationCurve, periods float64) ([]Tranche, error) {
	if len(cands) == 0 {
		return nil, nil
	}
	current := 0
	for i := 1; i < len(cands); i++ {
		a, b := cands[i], cands[current]
		if a.FullPeriodCost < b.FullPeriodCost || (a.FullPeriodCost == b.FullPeriodCost && a.Name < b.Name) {
			current = i
		}
	}

	tranches := []Tranche{{Index: current, Name: cands[current].Name, Rank: 1, DeployAt: 0}}
	upper, lower := periods, 0.0
	for {
		next, ok := largestIntercept(cands, cands[current].Intercepts, lower, upper)
		if !ok {
			break
		}
		level := ldc.DemandAt(next.Duration)
		last := &tranches[len(tranches)-1]
		last.Size = level - last.DeployAt

		rank := last.Rank + 1
		if rank > len(cands)+1 {
			return nil, fmt.Errorf("%w: rank %d exceeds %d candidates", ErrEnvelopeOverflow, rank, len(cands))
		}
		tranches = append(tranches, Tranche{Index: next.With, Name: cands[next.With].Name, Rank: rank, DeployAt: level})
		current = next.With
		upper = next.Duration
	}
	last := &tranches[len(tranches)-1]
	last.Size = ldc.Peak() - last.DeployAt
	return tranches, nil
}

// largestIntercept returns the intercept strictly inside (lower, upper) with
// the largest duration.
func largestIntercept(cands []Candidate, list []Intercept, lower, upper float64) (Intercept, bool) {
	var (
		best  Intercept
		found bool
	)
	for _, ic := range list {
		if ic.With < 0 || ic.With >= len(cands) {
			continue
		}
		if !(lower < ic.Duration && ic.Duration < upper) {
			continue
		}
		if !found || ic.Duration > best.Duration ||
			(ic.Duration == best.Duration && cands[ic.With].Name < cands[best.With].Name) {
			best = ic
			found = true
		}
	}
	return best, found
}
