package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDifficultyRanges(t *testing.T) {
	t.Run("buckets tile the score interval", func(t *testing.T) {
		require.Equal(t, DifficultyRanges["easy"].Max, DifficultyRanges["medium"].Min)
		require.Equal(t, DifficultyRanges["medium"].Max, DifficultyRanges["hard"].Min)
	})

	t.Run("hard includes a legacy score of exactly one", func(t *testing.T) {
		hard := DifficultyRanges["hard"]
		require.Greater(t, hard.Max, 1.0)
	})
}

func TestRatingLabel(t *testing.T) {
	require.Equal(t, "easy", RatingLabel(1))
	require.Equal(t, "medium", RatingLabel(2))
	require.Equal(t, "hard", RatingLabel(3))
	require.Empty(t, RatingLabel(0))
	require.Empty(t, RatingLabel(9))
}
