package services

import "math"

// difficultyScale controls how quickly the difficulty score saturates toward
// the ends of the scale. Changing it would reassign every existing puzzle's
// bucket, so it must stay at 300.
const difficultyScale = 300.0

// NewAverage folds one new sample into a running mean. A nil prior average
// contributes nothing, which makes the function defined for priorCount == 0.
func NewAverage(priorAverage *float64, priorCount int, sample float64) float64 {
	prior := 0.0
	if priorAverage != nil {
		prior = *priorAverage
	}
	return (prior*float64(priorCount) + sample) / float64(priorCount+1)
}

// DifficultyScore maps an average solve time weighted by the submitting
// user's ordinal rating onto (-1, 1). A zero product maps to exactly 0, and
// the score saturates toward +1 as the weighted time grows.
func DifficultyScore(averageTime float64, difficultyRating int) float64 {
	weighted := averageTime * float64(difficultyRating)
	score := 2 * (1/(1+math.Exp(-weighted/difficultyScale)) - 0.5)
	// Extreme weighted times underflow the exponential and would land
	// exactly on an interval end; clamp those to the nearest representable
	// value inside it. Non-saturated scores pass through unchanged.
	return math.Max(math.Nextafter(-1, 0), math.Min(score, math.Nextafter(1, 0)))
}
