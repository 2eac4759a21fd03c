package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"api/models"
	"api/utils/apperr"
)

func newCatalogFixture() (*fakePuzzleStore, *fakeCompletionStore, *CatalogService) {
	puzzles := newFakePuzzleStore()
	completions := newFakeCompletionStore()
	catalog := NewCatalogService(puzzles, NewEnricher(completions))
	return puzzles, completions, catalog
}

func TestList(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown category fails with invalid argument", func(t *testing.T) {
		_, _, catalog := newCatalogFixture()
		_, err := catalog.List(ctx, "weird", "viewer")
		require.True(t, apperr.IsInvalidArgument(err))
	})

	t.Run("official returns only house puzzles", func(t *testing.T) {
		puzzles, _, catalog := newCatalogFixture()
		author := "author-1"
		puzzles.add(models.Puzzle{Title: "house", Author: nil})
		puzzles.add(models.Puzzle{Title: "user made", Author: &author})

		metas, err := catalog.List(ctx, "official", "viewer")
		require.NoError(t, err)
		require.Len(t, metas, 1)
		require.Equal(t, "house", metas[0].Title)
	})

	t.Run("mine returns the viewer's puzzles", func(t *testing.T) {
		puzzles, _, catalog := newCatalogFixture()
		mine, other := "viewer", "someone"
		puzzles.add(models.Puzzle{Title: "mine", Author: &mine})
		puzzles.add(models.Puzzle{Title: "theirs", Author: &other})

		metas, err := catalog.List(ctx, "mine", "viewer")
		require.NoError(t, err)
		require.Len(t, metas, 1)
		require.Equal(t, "mine", metas[0].Title)
	})

	t.Run("new orders by creation time descending", func(t *testing.T) {
		puzzles, _, catalog := newCatalogFixture()
		now := time.Now()
		puzzles.add(models.Puzzle{Title: "old", CreatedAt: now.Add(-time.Hour)})
		puzzles.add(models.Puzzle{Title: "fresh", CreatedAt: now})

		metas, err := catalog.List(ctx, "new", "viewer")
		require.NoError(t, err)
		require.Equal(t, []string{"fresh", "old"}, []string{metas[0].Title, metas[1].Title})
	})

	t.Run("top-rated orders by likes descending", func(t *testing.T) {
		puzzles, _, catalog := newCatalogFixture()
		puzzles.add(models.Puzzle{Title: "meh", Likes: 1})
		puzzles.add(models.Puzzle{Title: "loved", Likes: 10})

		metas, err := catalog.List(ctx, "top-rated", "viewer")
		require.NoError(t, err)
		require.Equal(t, "loved", metas[0].Title)
	})

	t.Run("difficulty buckets use the range table", func(t *testing.T) {
		puzzles, _, catalog := newCatalogFixture()
		easy, hard := -0.8, 0.9
		puzzles.add(models.Puzzle{Title: "easy one", Difficulty: &easy})
		puzzles.add(models.Puzzle{Title: "hard one", Difficulty: &hard})
		puzzles.add(models.Puzzle{Title: "unrated"})

		metas, err := catalog.List(ctx, "easy", "viewer")
		require.NoError(t, err)
		require.Len(t, metas, 1)
		require.Equal(t, "easy one", metas[0].Title)

		metas, err = catalog.List(ctx, "hard", "viewer")
		require.NoError(t, err)
		require.Len(t, metas, 1)
		require.Equal(t, "hard one", metas[0].Title)
	})

	t.Run("results are enriched for the viewer", func(t *testing.T) {
		puzzles, completions, catalog := newCatalogFixture()
		p := puzzles.add(models.Puzzle{Title: "house"})
		require.NoError(t, completions.Create(ctx, &models.Completion{
			PuzzleID: p.ID, UserID: "viewer", Completed: true,
		}))

		metas, err := catalog.List(ctx, "official", "viewer")
		require.NoError(t, err)
		require.True(t, metas[0].Completed)
	})
}

func TestSearch(t *testing.T) {
	ctx := context.Background()

	anyCriteria := func(term string) SearchCriteria {
		return SearchCriteria{SearchTerm: term, Duration: "any", Difficulty: "any", IncludeCompleted: true}
	}

	t.Run("matches title or description substring", func(t *testing.T) {
		puzzles, _, catalog := newCatalogFixture()
		puzzles.add(models.Puzzle{Title: "Full Adder", Description: "carry chains"})
		puzzles.add(models.Puzzle{Title: "Latch", Description: "an adder-free puzzle"})
		puzzles.add(models.Puzzle{Title: "Mux", Description: "selection"})

		metas, err := catalog.Search(ctx, anyCriteria("adder"), "viewer")
		require.NoError(t, err)
		require.Len(t, metas, 2)
	})

	t.Run("filter composition", func(t *testing.T) {
		// A: easy, short, completed by the viewer. B: hard, long. C: short,
		// untouched. Searching short+not-completed must keep only C.
		puzzles, completions, catalog := newCatalogFixture()
		easyScore, hardScore := -0.5, 0.7
		timeA, timeB, timeC := 90.0, 700.0, 90.0
		a := puzzles.add(models.Puzzle{Title: "gate A", Difficulty: &easyScore, AverageTime: &timeA})
		puzzles.add(models.Puzzle{Title: "gate B", Difficulty: &hardScore, AverageTime: &timeB})
		c := puzzles.add(models.Puzzle{Title: "gate C", AverageTime: &timeC})
		require.NoError(t, completions.Create(ctx, &models.Completion{
			PuzzleID: a.ID, UserID: "viewer", Completed: true,
		}))

		metas, err := catalog.Search(ctx, SearchCriteria{
			SearchTerm: "gate",
			Duration:   "short",
			Difficulty: "any",
		}, "viewer")
		require.NoError(t, err)
		require.Len(t, metas, 1)
		require.Equal(t, c.ID, metas[0].ID)
	})

	t.Run("duration buckets are inclusive in the middle", func(t *testing.T) {
		puzzles, _, catalog := newCatalogFixture()
		low, mid, high := 120.0, 360.0, 600.0
		over := 600.5
		puzzles.add(models.Puzzle{Title: "gate low", AverageTime: &low})
		puzzles.add(models.Puzzle{Title: "gate mid", AverageTime: &mid})
		puzzles.add(models.Puzzle{Title: "gate high", AverageTime: &high})
		puzzles.add(models.Puzzle{Title: "gate over", AverageTime: &over})
		puzzles.add(models.Puzzle{Title: "gate untimed"})

		criteria := anyCriteria("gate")
		criteria.Duration = "medium"
		metas, err := catalog.Search(ctx, criteria, "viewer")
		require.NoError(t, err)
		require.Len(t, metas, 3)

		criteria.Duration = "long"
		metas, err = catalog.Search(ctx, criteria, "viewer")
		require.NoError(t, err)
		require.Len(t, metas, 1)
		require.Equal(t, "gate over", metas[0].Title)
	})

	t.Run("null average time never matches a duration bucket", func(t *testing.T) {
		puzzles, _, catalog := newCatalogFixture()
		puzzles.add(models.Puzzle{Title: "gate untimed"})

		criteria := anyCriteria("gate")
		criteria.Duration = "short"
		metas, err := catalog.Search(ctx, criteria, "viewer")
		require.NoError(t, err)
		require.Empty(t, metas)
	})

	t.Run("difficulty filter drops unscored puzzles", func(t *testing.T) {
		puzzles, _, catalog := newCatalogFixture()
		hardScore := 0.7
		puzzles.add(models.Puzzle{Title: "gate scored", Difficulty: &hardScore})
		puzzles.add(models.Puzzle{Title: "gate unscored"})

		criteria := anyCriteria("gate")
		criteria.Difficulty = "hard"
		metas, err := catalog.Search(ctx, criteria, "viewer")
		require.NoError(t, err)
		require.Len(t, metas, 1)
		require.Equal(t, "gate scored", metas[0].Title)
	})

	t.Run("unknown buckets fail with invalid argument", func(t *testing.T) {
		_, _, catalog := newCatalogFixture()

		criteria := anyCriteria("gate")
		criteria.Difficulty = "impossible"
		_, err := catalog.Search(ctx, criteria, "viewer")
		require.True(t, apperr.IsInvalidArgument(err))

		criteria = anyCriteria("gate")
		criteria.Duration = "instant"
		_, err = catalog.Search(ctx, criteria, "viewer")
		require.True(t, apperr.IsInvalidArgument(err))
	})
}
