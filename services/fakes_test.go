package services

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"api/models"
	"api/utils/apperr"
)

// fakePuzzleStore is an in-memory PuzzleStore for engine tests.
type fakePuzzleStore struct {
	puzzles   map[uint]*models.Puzzle
	nextID    uint
	saveErr   error
	saveLog   []uint
	deleteLog []uint
}

func newFakePuzzleStore() *fakePuzzleStore {
	return &fakePuzzleStore{puzzles: make(map[uint]*models.Puzzle), nextID: 1}
}

func (s *fakePuzzleStore) add(p models.Puzzle) *models.Puzzle {
	if p.ID == 0 {
		p.ID = s.nextID
		s.nextID++
	} else if p.ID >= s.nextID {
		s.nextID = p.ID + 1
	}
	copied := p
	s.puzzles[copied.ID] = &copied
	return &copied
}

func (s *fakePuzzleStore) ByID(_ context.Context, id uint) (*models.Puzzle, error) {
	p, ok := s.puzzles[id]
	if !ok {
		return nil, apperr.NotFound("puzzle %d", id)
	}
	copied := *p
	return &copied, nil
}

func (s *fakePuzzleStore) Official(_ context.Context) ([]models.Puzzle, error) {
	return s.collect(func(p *models.Puzzle) bool { return p.Author == nil }), nil
}

func (s *fakePuzzleStore) ByAuthor(_ context.Context, authorID string) ([]models.Puzzle, error) {
	return s.collect(func(p *models.Puzzle) bool { return p.Author != nil && *p.Author == authorID }), nil
}

func (s *fakePuzzleStore) CompletedBy(_ context.Context, _ string) ([]models.Puzzle, error) {
	return nil, nil
}

func (s *fakePuzzleStore) Newest(_ context.Context) ([]models.Puzzle, error) {
	out := s.collect(func(*models.Puzzle) bool { return true })
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *fakePuzzleStore) TopRated(_ context.Context) ([]models.Puzzle, error) {
	out := s.collect(func(*models.Puzzle) bool { return true })
	sort.Slice(out, func(i, j int) bool { return out[i].Likes > out[j].Likes })
	return out, nil
}

func (s *fakePuzzleStore) ByDifficultyRange(_ context.Context, min, max float64) ([]models.Puzzle, error) {
	return s.collect(func(p *models.Puzzle) bool {
		return p.Difficulty != nil && *p.Difficulty >= min && *p.Difficulty < max
	}), nil
}

func (s *fakePuzzleStore) Search(_ context.Context, term string) ([]models.Puzzle, error) {
	lower := strings.ToLower(term)
	return s.collect(func(p *models.Puzzle) bool {
		return strings.Contains(strings.ToLower(p.Title), lower) ||
			strings.Contains(strings.ToLower(p.Description), lower)
	}), nil
}

func (s *fakePuzzleStore) Create(_ context.Context, puzzle *models.Puzzle) error {
	created := s.add(*puzzle)
	*puzzle = *created
	return nil
}

func (s *fakePuzzleStore) Save(_ context.Context, puzzle *models.Puzzle) error {
	s.saveLog = append(s.saveLog, puzzle.ID)
	if s.saveErr != nil {
		return s.saveErr
	}
	copied := *puzzle
	s.puzzles[puzzle.ID] = &copied
	return nil
}

func (s *fakePuzzleStore) Delete(_ context.Context, id uint) error {
	s.deleteLog = append(s.deleteLog, id)
	delete(s.puzzles, id)
	return nil
}

func (s *fakePuzzleStore) collect(keep func(*models.Puzzle) bool) []models.Puzzle {
	var out []models.Puzzle
	for _, p := range s.puzzles {
		if keep(p) {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type pairKey struct {
	puzzleID uint
	userID   string
}

// fakeCompletionStore is an in-memory CompletionStore. Extra records can be
// injected to exercise the multiple-match inconsistency path.
type fakeCompletionStore struct {
	records map[pairKey][]models.Completion
}

func newFakeCompletionStore() *fakeCompletionStore {
	return &fakeCompletionStore{records: make(map[pairKey][]models.Completion)}
}

func (s *fakeCompletionStore) Find(_ context.Context, puzzleID uint, userID string) ([]models.Completion, error) {
	return append([]models.Completion(nil), s.records[pairKey{puzzleID, userID}]...), nil
}

func (s *fakeCompletionStore) Create(_ context.Context, record *models.Completion) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	key := pairKey{record.PuzzleID, record.UserID}
	s.records[key] = append(s.records[key], *record)
	return nil
}

func (s *fakeCompletionStore) Save(_ context.Context, record *models.Completion) error {
	key := pairKey{record.PuzzleID, record.UserID}
	for i, existing := range s.records[key] {
		if existing.ID == record.ID {
			s.records[key][i] = *record
			return nil
		}
	}
	s.records[key] = append(s.records[key], *record)
	return nil
}
