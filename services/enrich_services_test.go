package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"api/models"
)

func TestEnrich(t *testing.T) {
	ctx := context.Background()

	t.Run("no record yields viewer defaults", func(t *testing.T) {
		enricher := NewEnricher(newFakeCompletionStore())
		avg := 90.0
		puzzle := models.Puzzle{ID: 1, Title: "XOR Gate", Data: "blob", AverageTime: &avg}

		meta, err := enricher.Enrich(ctx, &puzzle, "viewer")
		require.NoError(t, err)
		require.False(t, meta.Completed)
		require.False(t, meta.Liked)
		require.Empty(t, meta.DifficultyRating)
		require.Equal(t, "XOR Gate", meta.Title)
		require.Equal(t, 90.0, *meta.AverageTime)
	})

	t.Run("viewer state comes from the viewer's record", func(t *testing.T) {
		completions := newFakeCompletionStore()
		liked := true
		rating := 3
		require.NoError(t, completions.Create(ctx, &models.Completion{
			PuzzleID: 1, UserID: "viewer", Completed: true, Liked: &liked, DifficultyRating: &rating,
		}))
		enricher := NewEnricher(completions)

		meta, err := enricher.Enrich(ctx, &models.Puzzle{ID: 1}, "viewer")
		require.NoError(t, err)
		require.True(t, meta.Completed)
		require.True(t, meta.Liked)
		require.Equal(t, "hard", meta.DifficultyRating)

		// Another viewer of the same puzzle still gets defaults
		other, err := enricher.Enrich(ctx, &models.Puzzle{ID: 1}, "someone-else")
		require.NoError(t, err)
		require.False(t, other.Completed)
		require.False(t, other.Liked)
	})

	t.Run("rating outside the label table yields no label", func(t *testing.T) {
		completions := newFakeCompletionStore()
		rating := 9
		require.NoError(t, completions.Create(ctx, &models.Completion{
			PuzzleID: 1, UserID: "viewer", Completed: true, DifficultyRating: &rating,
		}))
		enricher := NewEnricher(completions)

		meta, err := enricher.Enrich(ctx, &models.Puzzle{ID: 1}, "viewer")
		require.NoError(t, err)
		require.Empty(t, meta.DifficultyRating)
	})

	t.Run("batch enrichment is per puzzle", func(t *testing.T) {
		completions := newFakeCompletionStore()
		require.NoError(t, completions.Create(ctx, &models.Completion{
			PuzzleID: 2, UserID: "viewer", Completed: true,
		}))
		enricher := NewEnricher(completions)

		metas, err := enricher.EnrichAll(ctx, []models.Puzzle{{ID: 1}, {ID: 2}, {ID: 3}}, "viewer")
		require.NoError(t, err)
		require.Len(t, metas, 3)
		require.False(t, metas[0].Completed)
		require.True(t, metas[1].Completed)
		require.False(t, metas[2].Completed)
	})
}
