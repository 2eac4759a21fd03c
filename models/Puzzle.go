package models

import "time"

// Puzzle represents a logic puzzle and its running aggregate statistics.
// Data holds the compressed game definition; it is never serialized in
// listings and never mutated after submission, only replaced wholesale.
// AuthorName is a snapshot taken at submission time and intentionally does
// not track later display-name changes.
type Puzzle struct {
	ID                uint      `gorm:"primary_key" json:"id"`
	ShortKey          string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_puzzles_author_short_key" json:"short_key"`
	Title             string    `gorm:"type:varchar(100);not null" json:"title"`
	Description       string    `gorm:"type:varchar(255);not null" json:"description"`
	Data              string    `gorm:"type:text;not null" json:"-"`
	MinimumComponents int       `gorm:"not null;default:1;column:minimum_components" json:"minimum_components"`
	Author            *string   `gorm:"type:uuid;uniqueIndex:idx_puzzles_author_short_key" json:"author"`
	AuthorName        string    `gorm:"type:varchar(100);column:author_name" json:"author_name"`
	Completions       int       `gorm:"not null;default:0" json:"completions"`
	Downloads         int       `gorm:"not null;default:0" json:"downloads"`
	Likes             int       `gorm:"not null;default:0" json:"likes"`
	AverageTime       *float64  `gorm:"column:average_time" json:"average_time"`
	Difficulty        *float64  `json:"difficulty"`
	CreatedAt         time.Time `json:"created_at"`
}

// Official reports whether the puzzle is a house puzzle (no author).
func (p *Puzzle) Official() bool {
	return p.Author == nil
}
