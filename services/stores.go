package services

import (
	"context"

	"api/models"
)

// PuzzleStore persists puzzle records and their aggregate statistics.
// Implementations return an apperr.ErrNotFound kind when a referenced puzzle
// does not exist and wrap other failures as apperr.ErrStorage.
type PuzzleStore interface {
	ByID(ctx context.Context, id uint) (*models.Puzzle, error)
	Official(ctx context.Context) ([]models.Puzzle, error)
	ByAuthor(ctx context.Context, authorID string) ([]models.Puzzle, error)
	CompletedBy(ctx context.Context, userID string) ([]models.Puzzle, error)
	Newest(ctx context.Context) ([]models.Puzzle, error)
	TopRated(ctx context.Context) ([]models.Puzzle, error)
	ByDifficultyRange(ctx context.Context, min, max float64) ([]models.Puzzle, error)
	Search(ctx context.Context, term string) ([]models.Puzzle, error)
	Create(ctx context.Context, puzzle *models.Puzzle) error
	Save(ctx context.Context, puzzle *models.Puzzle) error
	Delete(ctx context.Context, id uint) error
}

// CompletionStore persists per-(puzzle, user) completion records.
type CompletionStore interface {
	// Find returns all records matching the pair. The store enforces a
	// uniqueness constraint, so more than one match is an inconsistency
	// the caller must surface.
	Find(ctx context.Context, puzzleID uint, userID string) ([]models.Completion, error)
	Create(ctx context.Context, record *models.Completion) error
	Save(ctx context.Context, record *models.Completion) error
}
