package rating

import "math"

// Match results from the perspective of one side.
const (
	Win  = 1.0
	Draw = 0.5
	Loss = 0.0
)

// DefaultK is the rating volatility used when the caller doesn't pick one.
const DefaultK = 32.0

// ExpectedScore returns the expected score for a competitor rated a against
// one rated b. Always within (0, 1), and ExpectedScore(a, b) and
// ExpectedScore(b, a) sum to 1.
func ExpectedScore(a, b float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, (b-a)/400.0))
}

// Delta returns the rating change for a competitor rated a after a match
// against one rated b. A positive streak bonus scales winnings only: losses
// are never amplified, so a bonus carried by the losing side stays inert.
func Delta(a, b, result, k, streakBonus float64) float64 {
	d := k * (result - ExpectedScore(a, b))
	if d > 0 && streakBonus != 0 {
		d *= 1.0 + streakBonus
	}
	return d
}

// PairedDelta returns the deltas for both sides of a match given the result
// for the first one. The second delta mirrors the first, keeping the total
// rating in the pool unchanged; bonusB is accepted for call-site symmetry
// but cannot break that conservation.
func PairedDelta(a, b, resultA, k, bonusA, bonusB float64) (deltaA, deltaB float64) {
	deltaA = Delta(a, b, resultA, k, bonusA)
	return deltaA, -deltaA
}
