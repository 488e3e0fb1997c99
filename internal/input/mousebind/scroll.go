package mousebind

import "math"

// Scroll step thresholds.
const (
	// DiscreteStep is one wheel detent in high-resolution units.
	DiscreteStep = 120
	// ContinuousStep is the touchpad distance per step.
	ContinuousStep = 10
)

// ScrollAccumulator converts scroll deltas on one axis into discrete steps,
// carrying the remainder between events of the same source.
type ScrollAccumulator struct {
	acc      float64
	discrete bool
}

// Add accumulates delta and returns the signed number of whole steps. A
// zero delta marks the end of a scroll sequence and clears the remainder.
// A remainder never carries over from wheel to touchpad or back, since
// the two count in different units.
func (a *ScrollAccumulator) Add(delta float64, discrete bool) int {
	if delta == 0 {
		a.acc = 0
		return 0
	}
	if discrete != a.discrete {
		a.acc = 0
		a.discrete = discrete
	}
	threshold := float64(ContinuousStep)
	if discrete {
		threshold = DiscreteStep
	}
	a.acc += delta
	steps := math.Trunc(a.acc / threshold)
	a.acc = math.Mod(a.acc, threshold)
	return int(steps)
}

// Remainder returns the carried partial step.
func (a *ScrollAccumulator) Remainder() float64 {
	return a.acc
}

// Reset clears the remainder.
func (a *ScrollAccumulator) Reset() {
	a.acc = 0
}
