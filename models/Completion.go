package models

import "time"

// Completion tracks one user's progress on one puzzle. The record is created
// lazily on first download and updated at most once more, when the user
// completes the puzzle. The composite unique index enforces at most one
// record per (puzzle, user) pair.
type Completion struct {
	ID               string    `gorm:"type:uuid;default:gen_random_uuid();primary_key" json:"id"`
	PuzzleID         uint      `gorm:"not null;column:puzzle_id;uniqueIndex:idx_completions_puzzle_user" json:"puzzle_id"`
	UserID           string    `gorm:"type:uuid;not null;column:user_id;uniqueIndex:idx_completions_puzzle_user" json:"user_id"`
	Completed        bool      `gorm:"not null;default:false" json:"completed"`
	Liked            *bool     `json:"liked"`
	TimeTaken        *float64  `gorm:"column:time_taken" json:"time_taken"`
	ComponentsUsed   *int      `gorm:"column:components_used" json:"components_used"`
	NandsUsed        *int      `gorm:"column:nands_used" json:"nands_used"`
	DifficultyRating *int      `gorm:"column:difficulty_rating" json:"difficulty_rating"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
