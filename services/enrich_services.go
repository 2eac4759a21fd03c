package services

import (
	"context"
	"time"

	"api/config"
	"api/models"
)

// PuzzleMetadata is the viewer-scoped projection of a puzzle: every aggregate
// field except the game-data blob, plus the viewer's own completion state.
type PuzzleMetadata struct {
	ID                uint      `json:"id"`
	ShortKey          string    `json:"short_key"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	MinimumComponents int       `json:"minimum_components"`
	Author            *string   `json:"author"`
	AuthorName        string    `json:"author_name"`
	Completions       int       `json:"completions"`
	Downloads         int       `json:"downloads"`
	Likes             int       `json:"likes"`
	AverageTime       *float64  `json:"average_time"`
	Difficulty        *float64  `json:"difficulty"`
	CreatedAt         time.Time `json:"created_at"`
	Completed         bool      `json:"completed"`
	Liked             bool      `json:"liked"`
	DifficultyRating  string    `json:"difficulty_rating,omitempty"`
}

// Enricher joins puzzles with the viewer's completion records to build
// metadata projections.
type Enricher struct {
	completions CompletionStore
}

func NewEnricher(completions CompletionStore) *Enricher {
	return &Enricher{completions: completions}
}

// Enrich builds the projection of one puzzle for one viewer. A viewer with
// no completion record gets completed=false, liked=false and no rating
// label. The rating label reflects the viewer's own ordinal rating, not the
// aggregate difficulty.
func (e *Enricher) Enrich(ctx context.Context, puzzle *models.Puzzle, viewerID string) (PuzzleMetadata, error) {
	meta := PuzzleMetadata{
		ID:                puzzle.ID,
		ShortKey:          puzzle.ShortKey,
		Title:             puzzle.Title,
		Description:       puzzle.Description,
		MinimumComponents: puzzle.MinimumComponents,
		Author:            puzzle.Author,
		AuthorName:        puzzle.AuthorName,
		Completions:       puzzle.Completions,
		Downloads:         puzzle.Downloads,
		Likes:             puzzle.Likes,
		AverageTime:       puzzle.AverageTime,
		Difficulty:        puzzle.Difficulty,
		CreatedAt:         puzzle.CreatedAt,
	}

	records, err := e.completions.Find(ctx, puzzle.ID, viewerID)
	if err != nil {
		return PuzzleMetadata{}, err
	}
	if len(records) == 0 {
		return meta, nil
	}

	record := records[0]
	meta.Completed = record.Completed
	if record.Liked != nil {
		meta.Liked = *record.Liked
	}
	if record.DifficultyRating != nil && *record.DifficultyRating >= 0 {
		meta.DifficultyRating = config.RatingLabel(*record.DifficultyRating)
	}
	return meta, nil
}

// EnrichAll enriches a list puzzle by puzzle. Each lookup is independent,
// there is no cross-puzzle state.
func (e *Enricher) EnrichAll(ctx context.Context, puzzles []models.Puzzle, viewerID string) ([]PuzzleMetadata, error) {
	metas := make([]PuzzleMetadata, 0, len(puzzles))
	for i := range puzzles {
		meta, err := e.Enrich(ctx, &puzzles[i], viewerID)
		if err != nil {
			return nil, err
		}
		metas = append(metas, meta)
	}
	return metas, nil
}
