package puzzles

import (
	"api/services"
	"api/utils/response"

	"github.com/gin-gonic/gin"
)

// Error message constants
const (
	ErrPuzzleNotFound     = "Puzzle not found"
	ErrInvalidPuzzleID    = "Invalid puzzle ID"
	ErrInvalidCategory    = "Invalid category"
	ErrFetchPuzzlesFailed = "Failed to fetch puzzles"
	ErrSubmitFailed       = "Failed to submit puzzle"
	ErrDecodeFailed       = "Failed to decode puzzle data"
	ErrCompleteFailed     = "Failed to record completion"
	ErrDeleteFailed       = "Failed to delete puzzle"

	GameDataCacheKey = "puzzle_game:"
)

// SubmitRequest is the body of a puzzle submission. Data is the already
// encoded game blob; the server never inspects it.
type SubmitRequest struct {
	ShortKey          string `json:"short_key" binding:"required"`
	Title             string `json:"title" binding:"required"`
	Description       string `json:"description" binding:"required"`
	Data              string `json:"data" binding:"required"`
	MinimumComponents int    `json:"minimum_components" binding:"omitempty,min=1"`
}

// SearchRequest is the body of a catalog search
type SearchRequest struct {
	SearchTerm       string `json:"search_term"`
	Duration         string `json:"duration"`
	Difficulty       string `json:"difficulty"`
	IncludeCompleted bool   `json:"include_completed"`
}

// CompleteRequest carries the completion sample of a solved puzzle
type CompleteRequest struct {
	Time             float64 `json:"time" binding:"min=0"`
	Liked            bool    `json:"liked"`
	ComponentsUsed   int     `json:"components_used" binding:"min=0"`
	NandsUsed        int     `json:"nands_used" binding:"min=0"`
	DifficultyRating int     `json:"difficulty_rating" binding:"required,min=1,max=3"`
}

// DownloadResponse pairs the decoded game data with the viewer's metadata
type DownloadResponse struct {
	Game map[string]interface{}  `json:"game"`
	Meta services.PuzzleMetadata `json:"meta"`
}

// DeleteResponse reports whether anything was deleted. Absent or not-owned
// puzzles yield success=false, not an error.
type DeleteResponse struct {
	Success bool `json:"success"`
}

func respondWithError(c *gin.Context, status int, message string) {
	response.Error(c, status, message)
}
