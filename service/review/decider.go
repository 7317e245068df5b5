package review

import "math/rand"

// Decider decides whether a rubric entry needs correction.
type Decider interface {
	NeedsCorrection(rng *rand.Rand, question int) bool
}

// Chance corrects with the given percent probability.
type Chance int

// NeedsCorrection flips a coin weighted by the percent.
func (c Chance) NeedsCorrection(rng *rand.Rand, _ int) bool {
	if c <= 0 {
		return false
	}
	if c >= 100 {
		return true
	}
	return rng.Intn(100) < int(c)
}

// DefaultChance is the reference correction probability.
const DefaultChance Chance = 30

// Always corrects every entry.
var Always Decider = Chance(100)

// Never corrects any entry.
var Never Decider = Chance(0)
