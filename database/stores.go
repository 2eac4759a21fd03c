package database

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"api/metrics"
	"api/models"
	"api/utils/apperr"
)

// PuzzleStore is the gorm-backed implementation of services.PuzzleStore.
type PuzzleStore struct {
	db *gorm.DB
}

func NewPuzzleStore(db *gorm.DB) *PuzzleStore {
	return &PuzzleStore{db: db}
}

func (s *PuzzleStore) ByID(ctx context.Context, id uint) (*models.Puzzle, error) {
	defer record("select", "puzzles", time.Now())
	var puzzle models.Puzzle
	if err := s.db.WithContext(ctx).First(&puzzle, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("puzzle %d", id)
		}
		return nil, apperr.Storage("fetch puzzle", err)
	}
	return &puzzle, nil
}

func (s *PuzzleStore) Official(ctx context.Context) ([]models.Puzzle, error) {
	return s.findMany(ctx, s.db.WithContext(ctx).Where("author IS NULL"))
}

func (s *PuzzleStore) ByAuthor(ctx context.Context, authorID string) ([]models.Puzzle, error) {
	return s.findMany(ctx, s.db.WithContext(ctx).Where("author = ?", authorID))
}

func (s *PuzzleStore) CompletedBy(ctx context.Context, userID string) ([]models.Puzzle, error) {
	defer record("select", "puzzles", time.Now())
	var puzzles []models.Puzzle
	err := s.db.WithContext(ctx).Raw(`
		SELECT p.*
		FROM puzzles p
		JOIN completions c ON c.puzzle_id = p.id
		WHERE c.user_id = ? AND c.completed = true
	`, userID).Scan(&puzzles).Error
	if err != nil {
		return nil, apperr.Storage("fetch completed puzzles", err)
	}
	return puzzles, nil
}

func (s *PuzzleStore) Newest(ctx context.Context) ([]models.Puzzle, error) {
	return s.findMany(ctx, s.db.WithContext(ctx).Order("created_at DESC"))
}

func (s *PuzzleStore) TopRated(ctx context.Context) ([]models.Puzzle, error) {
	return s.findMany(ctx, s.db.WithContext(ctx).Order("likes DESC"))
}

func (s *PuzzleStore) ByDifficultyRange(ctx context.Context, min, max float64) ([]models.Puzzle, error) {
	return s.findMany(ctx, s.db.WithContext(ctx).Where("difficulty >= ? AND difficulty < ?", min, max))
}

// Search matches the term as a case-insensitive substring of title or
// description.
func (s *PuzzleStore) Search(ctx context.Context, term string) ([]models.Puzzle, error) {
	pattern := "%" + term + "%"
	return s.findMany(ctx, s.db.WithContext(ctx).Where("title ILIKE ? OR description ILIKE ?", pattern, pattern))
}

func (s *PuzzleStore) Create(ctx context.Context, puzzle *models.Puzzle) error {
	defer record("insert", "puzzles", time.Now())
	if err := s.db.WithContext(ctx).Create(puzzle).Error; err != nil {
		return apperr.Storage("create puzzle", err)
	}
	return nil
}

func (s *PuzzleStore) Save(ctx context.Context, puzzle *models.Puzzle) error {
	defer record("update", "puzzles", time.Now())
	if err := s.db.WithContext(ctx).Save(puzzle).Error; err != nil {
		return apperr.Storage("save puzzle", err)
	}
	return nil
}

func (s *PuzzleStore) Delete(ctx context.Context, id uint) error {
	defer record("delete", "puzzles", time.Now())
	if err := s.db.WithContext(ctx).Delete(&models.Puzzle{}, id).Error; err != nil {
		return apperr.Storage("delete puzzle", err)
	}
	return nil
}

func (s *PuzzleStore) findMany(ctx context.Context, tx *gorm.DB) ([]models.Puzzle, error) {
	defer record("select", "puzzles", time.Now())
	var puzzles []models.Puzzle
	if err := tx.Find(&puzzles).Error; err != nil {
		return nil, apperr.Storage("fetch puzzles", err)
	}
	return puzzles, nil
}

// CompletionStore is the gorm-backed implementation of
// services.CompletionStore.
type CompletionStore struct {
	db *gorm.DB
}

func NewCompletionStore(db *gorm.DB) *CompletionStore {
	return &CompletionStore{db: db}
}

func (s *CompletionStore) Find(ctx context.Context, puzzleID uint, userID string) ([]models.Completion, error) {
	defer record("select", "completions", time.Now())
	var records []models.Completion
	err := s.db.WithContext(ctx).
		Where("puzzle_id = ? AND user_id = ?", puzzleID, userID).
		Find(&records).Error
	if err != nil {
		return nil, apperr.Storage("fetch completion", err)
	}
	return records, nil
}

func (s *CompletionStore) Create(ctx context.Context, completion *models.Completion) error {
	defer record("insert", "completions", time.Now())
	if err := s.db.WithContext(ctx).Create(completion).Error; err != nil {
		return apperr.Storage("create completion", err)
	}
	return nil
}

func (s *CompletionStore) Save(ctx context.Context, completion *models.Completion) error {
	defer record("update", "completions", time.Now())
	if err := s.db.WithContext(ctx).Save(completion).Error; err != nil {
		return apperr.Storage("save completion", err)
	}
	return nil
}

func record(operation, table string, start time.Time) {
	metrics.RecordDBOperation(operation, table, start)
}
