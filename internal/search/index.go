package search

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"tutorsite/internal/models"
)

// IndexVersion identifies the searchable text layout.
const IndexVersion = "1.0.0"

// ErrDuplicateID is returned when two questions share an id.
var ErrDuplicateID = errors.New("duplicate question id")

// ValidationError identifies the question that failed validation.
type ValidationError struct {
	Index int
	ID    string
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("question %d (%q): %s: %v", e.Index, e.ID, e.Field, e.Err)
	}
	return fmt.Sprintf("question %d (%q): %s is required", e.Index, e.ID, e.Field)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Index is the read-only search view of a question set.
type Index struct {
	entries []models.SearchIndexEntry
	byID    map[string]int
	stats   models.IndexStats
}

// BuildIndex projects questions into index entries, preserving order.
// It fails on the first question missing a required field.
func BuildIndex(questions []models.FAQQuestion) (*Index, error) {
	idx := &Index{
		entries: make([]models.SearchIndexEntry, len(questions)),
		byID:    make(map[string]int, len(questions)),
		stats: models.IndexStats{
			Version:                IndexVersion,
			BuiltAt:                time.Now(),
			QuestionCount:          len(questions),
			CategoryDistribution:   make(map[string]int),
			DifficultyDistribution: make(map[string]int),
			SegmentDistribution:    make(map[string]int),
		},
	}

	for i, q := range questions {
		if err := validateQuestion(i, &q); err != nil {
			return nil, err
		}
		if _, exists := idx.byID[q.ID]; exists {
			return nil, &ValidationError{Index: i, ID: q.ID, Field: "id", Err: ErrDuplicateID}
		}

		idx.byID[q.ID] = i
		idx.entries[i] = models.SearchIndexEntry{
			FAQQuestion:    q,
			Position:       i,
			SearchableText: searchableText(&q),
			QuestionText:   strings.ToLower(q.Question),
		}

		idx.stats.CategoryDistribution[q.Category]++
		if q.Difficulty != "" {
			idx.stats.DifficultyDistribution[q.Difficulty]++
		}
		if q.ClientSegment != "" {
			idx.stats.SegmentDistribution[q.ClientSegment]++
		}
	}
	idx.stats.CategoryCount = len(idx.stats.CategoryDistribution)

	return idx, nil
}

func validateQuestion(i int, q *models.FAQQuestion) error {
	switch {
	case strings.TrimSpace(q.ID) == "":
		return &ValidationError{Index: i, ID: q.ID, Field: "id"}
	case strings.TrimSpace(q.Question) == "":
		return &ValidationError{Index: i, ID: q.ID, Field: "question"}
	case strings.TrimSpace(q.Answer) == "":
		return &ValidationError{Index: i, ID: q.ID, Field: "answer"}
	}
	return nil
}

// searchableText concatenates question, answer, category and tags, lowercased.
func searchableText(q *models.FAQQuestion) string {
	parts := make([]string, 0, 3+len(q.Tags))
	parts = append(parts, q.Question, q.Answer, q.Category)
	parts = append(parts, q.Tags...)
	return strings.ToLower(strings.Join(parts, " "))
}

// Entries returns the indexed entries in content order. Callers must not modify them.
func (idx *Index) Entries() []models.SearchIndexEntry {
	return idx.entries
}

// Len returns the number of indexed questions.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Lookup returns the entry with the given id.
func (idx *Index) Lookup(id string) (*models.SearchIndexEntry, bool) {
	i, ok := idx.byID[id]
	if !ok {
		return nil, false
	}
	return &idx.entries[i], true
}

// Stats returns the distributions computed at build time.
func (idx *Index) Stats() models.IndexStats {
	return idx.stats
}
