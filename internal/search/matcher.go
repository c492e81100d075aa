package search

import (
	"sort"
	"strings"
	"unicode/utf8"

	"tutorsite/internal/models"
)

// Scoring weights.
const (
	ExactMatchScore    = 100.0
	QuestionMatchBonus = 50.0
	FuzzyMatchWeight   = 30.0
)

// MinQueryLength is the shortest query, in runes, that is matched at all.
const MinQueryLength = 2

// DefaultMaxResults bounds the ranked result list.
const DefaultMaxResults = 50

// Matcher scores index entries against a query.
type Matcher struct {
	// Fuzzy enables the word-overlap fallback.
	Fuzzy bool
	// MaxResults bounds the result list; zero means DefaultMaxResults.
	MaxResults int
}

// NormalizeQuery trims and lowercases a raw query.
func NormalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// Match returns the entries matching query, highest score first, truncated
// to MaxResults. Empty and too-short queries return no results.
func (m Matcher) Match(query string, entries []models.SearchIndexEntry) []models.ScoredResult {
	results := m.Rank(query, entries)
	if limit := m.maxResults(); len(results) > limit {
		results = results[:limit]
	}
	return results
}

// Rank is Match without the final truncation. MaxResults still decides
// whether the word-overlap fallback runs.
func (m Matcher) Rank(query string, entries []models.SearchIndexEntry) []models.ScoredResult {
	q := NormalizeQuery(query)
	if utf8.RuneCountInString(q) < MinQueryLength {
		return []models.ScoredResult{}
	}
	maxResults := m.maxResults()

	results := make([]models.ScoredResult, 0)
	matched := make([]bool, len(entries))

	for i := range entries {
		e := &entries[i]
		if !strings.Contains(e.SearchableText, q) {
			continue
		}
		score := ExactMatchScore
		if strings.Contains(e.QuestionText, q) {
			score += QuestionMatchBonus
		}
		matched[i] = true
		results = append(results, models.ScoredResult{Entry: e, Score: score})
	}

	if m.Fuzzy && len(results) < maxResults {
		words := strings.Fields(q)
		for i := range entries {
			if matched[i] {
				continue
			}
			e := &entries[i]
			if ratio := wordOverlap(e.SearchableText, words); ratio > 0 {
				results = append(results, models.ScoredResult{Entry: e, Score: ratio * FuzzyMatchWeight})
			}
		}
	}

	sort.SliceStable(results, func(a, b int) bool {
		if results[a].Score != results[b].Score {
			return results[a].Score > results[b].Score
		}
		return results[a].Entry.Position < results[b].Entry.Position
	})
	return results
}

func (m Matcher) maxResults() int {
	if m.MaxResults <= 0 {
		return DefaultMaxResults
	}
	return m.MaxResults
}

// wordOverlap returns the fraction of words contained in text.
func wordOverlap(text string, words []string) float64 {
	if len(words) == 0 {
		return 0
	}
	hits := 0
	for _, w := range words {
		if strings.Contains(text, w) {
			hits++
		}
	}
	return float64(hits) / float64(len(words))
}
