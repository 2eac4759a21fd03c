package config

import "math"

// DifficultyRange is a half-open numeric range [Min, Max) over the aggregate
// difficulty score of a puzzle.
type DifficultyRange struct {
	Min float64
	Max float64
}

// DifficultyRanges maps bucket names to ranges over the aggregate difficulty
// score, which lives in (-1, 1). The top bucket ends just past 1 so a stored
// score of exactly 1, written before scores were clamped, still classifies
// as hard.
var DifficultyRanges = map[string]DifficultyRange{
	"easy":   {Min: -1, Max: -0.33},
	"medium": {Min: -0.33, Max: 0.33},
	"hard":   {Min: 0.33, Max: math.Nextafter(1, 2)},
}

// RatingLabels maps a user's ordinal difficulty rating to its display label.
var RatingLabels = map[int]string{
	1: "easy",
	2: "medium",
	3: "hard",
}

// Duration bucket bounds over averageTime, in seconds. Short is strictly
// below the lower bound, long strictly above the upper bound, medium is
// inclusive on both ends.
const (
	DurationShortMax = 120.0
	DurationLongMin  = 600.0
)

// RatingLabel returns the label for an ordinal rating, or "" if the rating is
// not in the table.
func RatingLabel(rating int) string {
	return RatingLabels[rating]
}
