package services

import (
	"context"

	"api/config"
	"api/models"
	"api/utils/apperr"
)

// SearchCriteria carries the parsed search request. Duration and Difficulty
// are bucket names or "any"; SearchTerm matches title or description as a
// case-insensitive substring.
type SearchCriteria struct {
	SearchTerm       string
	Duration         string
	Difficulty       string
	IncludeCompleted bool
}

// CatalogService builds category and search listings over the puzzle store
// and enriches every result for the viewer.
type CatalogService struct {
	puzzles  PuzzleStore
	enricher *Enricher
}

func NewCatalogService(puzzles PuzzleStore, enricher *Enricher) *CatalogService {
	return &CatalogService{puzzles: puzzles, enricher: enricher}
}

// List returns the enriched puzzles of one category. Unknown categories fail
// with an invalid-argument error.
func (s *CatalogService) List(ctx context.Context, category, viewerID string) ([]PuzzleMetadata, error) {
	var puzzles []models.Puzzle
	var err error

	switch category {
	case "official":
		puzzles, err = s.puzzles.Official(ctx)
	case "completed":
		puzzles, err = s.puzzles.CompletedBy(ctx, viewerID)
	case "mine":
		puzzles, err = s.puzzles.ByAuthor(ctx, viewerID)
	case "new":
		puzzles, err = s.puzzles.Newest(ctx)
	case "top-rated":
		puzzles, err = s.puzzles.TopRated(ctx)
	case "easy", "medium", "hard":
		r := config.DifficultyRanges[category]
		puzzles, err = s.puzzles.ByDifficultyRange(ctx, r.Min, r.Max)
	default:
		return nil, apperr.InvalidArgument("unknown category %q", category)
	}
	if err != nil {
		return nil, err
	}

	return s.enricher.EnrichAll(ctx, puzzles, viewerID)
}

// Search fetches puzzles matching the search term, enriches them, then
// applies the post-filters in order: completed, difficulty, duration. Every
// filter is a pure predicate over the already-enriched projection.
func (s *CatalogService) Search(ctx context.Context, criteria SearchCriteria, viewerID string) ([]PuzzleMetadata, error) {
	puzzles, err := s.puzzles.Search(ctx, criteria.SearchTerm)
	if err != nil {
		return nil, err
	}

	metas, err := s.enricher.EnrichAll(ctx, puzzles, viewerID)
	if err != nil {
		return nil, err
	}

	if !criteria.IncludeCompleted {
		metas = filter(metas, func(m PuzzleMetadata) bool { return !m.Completed })
	}
	if criteria.Difficulty != "any" {
		r, ok := config.DifficultyRanges[criteria.Difficulty]
		if !ok {
			return nil, apperr.InvalidArgument("unknown difficulty bucket %q", criteria.Difficulty)
		}
		metas = filter(metas, func(m PuzzleMetadata) bool {
			return m.Difficulty != nil && *m.Difficulty >= r.Min && *m.Difficulty < r.Max
		})
	}
	if criteria.Duration != "any" {
		pred, err := durationPredicate(criteria.Duration)
		if err != nil {
			return nil, err
		}
		metas = filter(metas, pred)
	}

	return metas, nil
}

func durationPredicate(bucket string) (func(PuzzleMetadata) bool, error) {
	switch bucket {
	case "short":
		return func(m PuzzleMetadata) bool {
			return m.AverageTime != nil && *m.AverageTime < config.DurationShortMax
		}, nil
	case "medium":
		return func(m PuzzleMetadata) bool {
			return m.AverageTime != nil &&
				*m.AverageTime >= config.DurationShortMax && *m.AverageTime <= config.DurationLongMin
		}, nil
	case "long":
		return func(m PuzzleMetadata) bool {
			return m.AverageTime != nil && *m.AverageTime > config.DurationLongMin
		}, nil
	default:
		return nil, apperr.InvalidArgument("unknown duration bucket %q", bucket)
	}
}

func filter(metas []PuzzleMetadata, keep func(PuzzleMetadata) bool) []PuzzleMetadata {
	out := metas[:0]
	for _, m := range metas {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out
}
