package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"api/models"
	"api/utils/apperr"
)

func TestRecordDownload(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown puzzle fails with not found", func(t *testing.T) {
		tracker := NewCompletionTracker(newFakePuzzleStore(), newFakeCompletionStore())
		_, _, err := tracker.RecordDownload(ctx, 42, "user-1")
		require.True(t, apperr.IsNotFound(err))
	})

	t.Run("first download creates the record and counts once", func(t *testing.T) {
		puzzles := newFakePuzzleStore()
		puzzle := puzzles.add(models.Puzzle{Title: "XOR Gate"})
		completions := newFakeCompletionStore()
		tracker := NewCompletionTracker(puzzles, completions)

		record, updated, err := tracker.RecordDownload(ctx, puzzle.ID, "user-1")
		require.NoError(t, err)
		require.False(t, record.Completed)
		require.Nil(t, record.Liked)
		require.Equal(t, 1, updated.Downloads)

		// Second download is a no-op on the counter and returns the same
		// record identity
		again, updated, err := tracker.RecordDownload(ctx, puzzle.ID, "user-1")
		require.NoError(t, err)
		require.Equal(t, record.ID, again.ID)
		require.Equal(t, 1, updated.Downloads)
	})

	t.Run("different users each count one download", func(t *testing.T) {
		puzzles := newFakePuzzleStore()
		puzzle := puzzles.add(models.Puzzle{Title: "AND Gate"})
		tracker := NewCompletionTracker(puzzles, newFakeCompletionStore())

		_, _, err := tracker.RecordDownload(ctx, puzzle.ID, "user-1")
		require.NoError(t, err)
		_, updated, err := tracker.RecordDownload(ctx, puzzle.ID, "user-2")
		require.NoError(t, err)
		require.Equal(t, 2, updated.Downloads)
	})
}

func TestRecordCompletion(t *testing.T) {
	ctx := context.Background()

	sample := CompletionSample{
		Time:             130,
		Liked:            true,
		ComponentsUsed:   7,
		NandsUsed:        21,
		DifficultyRating: 2,
	}

	t.Run("unknown puzzle fails with not found", func(t *testing.T) {
		tracker := NewCompletionTracker(newFakePuzzleStore(), newFakeCompletionStore())
		_, err := tracker.RecordCompletion(ctx, 42, "user-1", sample)
		require.True(t, apperr.IsNotFound(err))
	})

	t.Run("first completion sets the aggregate from scratch", func(t *testing.T) {
		puzzles := newFakePuzzleStore()
		puzzle := puzzles.add(models.Puzzle{Title: "XOR Gate"})
		completions := newFakeCompletionStore()
		tracker := NewCompletionTracker(puzzles, completions)

		_, _, err := tracker.RecordDownload(ctx, puzzle.ID, "user-1")
		require.NoError(t, err)

		record, err := tracker.RecordCompletion(ctx, puzzle.ID, "user-1", sample)
		require.NoError(t, err)
		require.True(t, record.Completed)
		require.NotNil(t, record.Liked)
		require.True(t, *record.Liked)
		require.Equal(t, 130.0, *record.TimeTaken)
		require.Equal(t, 7, *record.ComponentsUsed)
		require.Equal(t, 21, *record.NandsUsed)
		require.Equal(t, 2, *record.DifficultyRating)

		updated, err := puzzles.ByID(ctx, puzzle.ID)
		require.NoError(t, err)
		require.Equal(t, 1, updated.Completions)
		require.Equal(t, 1, updated.Likes)
		require.InDelta(t, 130, *updated.AverageTime, 1e-9)
		require.InDelta(t, DifficultyScore(130, 2), *updated.Difficulty, 1e-9)
	})

	t.Run("second completion folds into the running mean", func(t *testing.T) {
		puzzles := newFakePuzzleStore()
		avg := 100.0
		puzzle := puzzles.add(models.Puzzle{Title: "Adder", Completions: 1, AverageTime: &avg})
		tracker := NewCompletionTracker(puzzles, newFakeCompletionStore())

		_, _, err := tracker.RecordDownload(ctx, puzzle.ID, "user-2")
		require.NoError(t, err)

		_, err = tracker.RecordCompletion(ctx, puzzle.ID, "user-2", sample)
		require.NoError(t, err)

		updated, err := puzzles.ByID(ctx, puzzle.ID)
		require.NoError(t, err)
		require.Equal(t, 2, updated.Completions)
		require.InDelta(t, 115, *updated.AverageTime, 1e-9)
		require.InDelta(t, DifficultyScore(115, 2), *updated.Difficulty, 1e-9)
	})

	t.Run("likes stay untouched when the user did not like", func(t *testing.T) {
		puzzles := newFakePuzzleStore()
		puzzle := puzzles.add(models.Puzzle{Title: "NOT Gate", Likes: 3})
		tracker := NewCompletionTracker(puzzles, newFakeCompletionStore())

		_, _, err := tracker.RecordDownload(ctx, puzzle.ID, "user-1")
		require.NoError(t, err)

		disliked := sample
		disliked.Liked = false
		_, err = tracker.RecordCompletion(ctx, puzzle.ID, "user-1", disliked)
		require.NoError(t, err)

		updated, err := puzzles.ByID(ctx, puzzle.ID)
		require.NoError(t, err)
		require.Equal(t, 3, updated.Likes)
	})

	t.Run("completion without a download still updates the aggregate", func(t *testing.T) {
		puzzles := newFakePuzzleStore()
		puzzle := puzzles.add(models.Puzzle{Title: "Latch"})
		tracker := NewCompletionTracker(puzzles, newFakeCompletionStore())

		record, err := tracker.RecordCompletion(ctx, puzzle.ID, "user-1", sample)
		require.NoError(t, err)
		require.Nil(t, record)

		updated, err := puzzles.ByID(ctx, puzzle.ID)
		require.NoError(t, err)
		require.Equal(t, 1, updated.Completions)
	})

	t.Run("duplicate records surface as inconsistency", func(t *testing.T) {
		puzzles := newFakePuzzleStore()
		puzzle := puzzles.add(models.Puzzle{Title: "Mux"})
		completions := newFakeCompletionStore()
		require.NoError(t, completions.Create(ctx, &models.Completion{PuzzleID: puzzle.ID, UserID: "user-1"}))
		require.NoError(t, completions.Create(ctx, &models.Completion{PuzzleID: puzzle.ID, UserID: "user-1"}))

		tracker := NewCompletionTracker(puzzles, completions)
		_, err := tracker.RecordCompletion(ctx, puzzle.ID, "user-1", sample)
		require.ErrorIs(t, err, apperr.ErrInconsistency)
	})

	t.Run("aggregate write failure surfaces as inconsistency", func(t *testing.T) {
		puzzles := newFakePuzzleStore()
		puzzle := puzzles.add(models.Puzzle{Title: "Decoder"})
		completions := newFakeCompletionStore()
		tracker := NewCompletionTracker(puzzles, completions)

		_, _, err := tracker.RecordDownload(ctx, puzzle.ID, "user-1")
		require.NoError(t, err)

		puzzles.saveErr = errors.New("connection reset")
		_, err = tracker.RecordCompletion(ctx, puzzle.ID, "user-1", sample)
		require.ErrorIs(t, err, apperr.ErrInconsistency)

		// The completion record write went through before the failure
		records, err := completions.Find(ctx, puzzle.ID, "user-1")
		require.NoError(t, err)
		require.Len(t, records, 1)
		require.True(t, records[0].Completed)
	})
}
