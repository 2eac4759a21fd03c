package services

import (
	"context"
	"sync"

	"api/metrics"
	"api/models"
	"api/utils/apperr"
)

// CompletionSample carries the fields a user submits when completing a
// puzzle.
type CompletionSample struct {
	Time             float64
	Liked            bool
	ComponentsUsed   int
	NandsUsed        int
	DifficultyRating int
}

// CompletionTracker owns the download and completion transitions: the lazy
// creation of a completion record on first download and the one-time flip to
// completed with the aggregate statistics recompute.
type CompletionTracker struct {
	puzzles     PuzzleStore
	completions CompletionStore

	// One mutex per puzzle id serializes the read-modify-write of the
	// aggregate under concurrent completions. Entries are never evicted;
	// a mutex is two words and the puzzle set is small.
	locks sync.Map
}

func NewCompletionTracker(puzzles PuzzleStore, completions CompletionStore) *CompletionTracker {
	return &CompletionTracker{puzzles: puzzles, completions: completions}
}

func (t *CompletionTracker) lock(puzzleID uint) *sync.Mutex {
	mu, _ := t.locks.LoadOrStore(puzzleID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// RecordDownload ensures a completion record exists for the pair and counts
// the download. Only the creating call increments the puzzle's download
// counter; repeated downloads return the existing record untouched.
func (t *CompletionTracker) RecordDownload(ctx context.Context, puzzleID uint, userID string) (*models.Completion, *models.Puzzle, error) {
	mu := t.lock(puzzleID)
	mu.Lock()
	defer mu.Unlock()

	puzzle, err := t.puzzles.ByID(ctx, puzzleID)
	if err != nil {
		return nil, nil, err
	}

	records, err := t.completions.Find(ctx, puzzleID, userID)
	if err != nil {
		return nil, nil, err
	}
	if len(records) > 0 {
		return &records[0], puzzle, nil
	}

	record := &models.Completion{
		PuzzleID: puzzleID,
		UserID:   userID,
	}
	if err := t.completions.Create(ctx, record); err != nil {
		return nil, nil, err
	}

	puzzle.Downloads++
	if err := t.puzzles.Save(ctx, puzzle); err != nil {
		// The record exists but the counter didn't move. Surface it, the
		// next download of this pair will not retry the increment.
		return nil, nil, apperr.Inconsistency("completion record %s created but download counter update failed: %v", record.ID, err)
	}

	metrics.PuzzleDownloads.Inc()
	return record, puzzle, nil
}

// RecordCompletion marks the pair's record completed, stores the sample and
// recomputes the puzzle aggregate from its pre-update statistics. The record
// is written first, then the aggregate; a failure in between surfaces as an
// inconsistency rather than a silent partial write.
func (t *CompletionTracker) RecordCompletion(ctx context.Context, puzzleID uint, userID string, sample CompletionSample) (*models.Completion, error) {
	mu := t.lock(puzzleID)
	mu.Lock()
	defer mu.Unlock()

	puzzle, err := t.puzzles.ByID(ctx, puzzleID)
	if err != nil {
		return nil, err
	}

	records, err := t.completions.Find(ctx, puzzleID, userID)
	if err != nil {
		return nil, err
	}
	if len(records) > 1 {
		// The store's unique index should make this unreachable.
		return nil, apperr.Inconsistency("%d completion records for puzzle %d user %s", len(records), puzzleID, userID)
	}

	var record *models.Completion
	if len(records) == 1 {
		record = &records[0]
		record.Completed = true
		record.Liked = &sample.Liked
		record.TimeTaken = &sample.Time
		record.ComponentsUsed = &sample.ComponentsUsed
		record.NandsUsed = &sample.NandsUsed
		record.DifficultyRating = &sample.DifficultyRating
		if err := t.completions.Save(ctx, record); err != nil {
			return nil, err
		}
	}

	// Aggregate recompute uses the puzzle's pre-update statistics.
	newAverage := NewAverage(puzzle.AverageTime, puzzle.Completions, sample.Time)
	difficulty := DifficultyScore(newAverage, sample.DifficultyRating)

	puzzle.Completions++
	puzzle.AverageTime = &newAverage
	puzzle.Difficulty = &difficulty
	if sample.Liked {
		puzzle.Likes++
	}
	if err := t.puzzles.Save(ctx, puzzle); err != nil {
		return nil, apperr.Inconsistency("completion recorded for puzzle %d user %s but aggregate update failed: %v", puzzleID, userID, err)
	}

	metrics.PuzzleCompletions.Inc()
	return record, nil
}
