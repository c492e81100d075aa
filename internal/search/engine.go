package search

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"tutorsite/internal/models"
)

const historySize = 100

// Options configures an Engine.
type Options struct {
	Fuzzy      bool
	MaxResults int
	// Categories supplies category display names for suggestions.
	Categories []models.FAQCategory
}

// Engine runs filtered, paginated searches over an Index. It is safe for
// concurrent use; the index is never modified.
type Engine struct {
	index      *Index
	matcher    Matcher
	categories []string

	mu      sync.Mutex
	history []string
}

// NewEngine creates an engine over idx.
func NewEngine(idx *Index, opts Options) *Engine {
	names := make([]string, 0, len(opts.Categories))
	for _, c := range opts.Categories {
		if c.Name != "" {
			names = append(names, c.Name)
		}
	}
	return &Engine{
		index:      idx,
		matcher:    Matcher{Fuzzy: opts.Fuzzy, MaxResults: opts.MaxResults},
		categories: names,
	}
}

// Index returns the engine's index.
func (e *Engine) Index() *Index {
	return e.index
}

// Search ranks, filters and paginates results for query. The returned
// metadata counts every ranked match, not just the page.
func (e *Engine) Search(ctx context.Context, query string, filters models.SearchFilters) models.SearchResponse {
	start := time.Now()
	q := NormalizeQuery(query)

	var ranked []models.ScoredResult
	if ctx.Err() == nil {
		ranked = e.match(q, filters)
	}
	limit := filters.Limit
	if limit <= 0 {
		limit = e.matcher.maxResults()
	}
	page := Paginate(ranked, limit, filters.Offset)

	terms := Terms(q)
	results := make([]models.ScoredResult, len(page.Results))
	for i, r := range page.Results {
		HighlightResult(&r, terms)
		results[i] = r
	}

	if len(ranked) > 0 {
		e.remember(q)
	}

	suggestions := []string{}
	if utf8.RuneCountInString(q) >= MinQueryLength {
		suggestions = e.Suggestions(q, 5)
	}

	elapsed := float64(time.Since(start).Microseconds()) / 1000
	return models.SearchResponse{
		Results: results,
		Metadata: models.SearchMetadata{
			Query:         q,
			TotalResults:  page.Total,
			ExecutionTime: math.Round(elapsed*100) / 100,
			Limit:         page.Limit,
			Offset:        page.Offset,
			Suggestions:   suggestions,
		},
	}
}

// Rank returns the full ranked list for query without pagination or highlighting.
func (e *Engine) Rank(ctx context.Context, query string, filters models.SearchFilters) ([]models.ScoredResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return e.match(NormalizeQuery(query), filters), nil
}

// match ranks every filtered entry; pagination bounds the page, not the
// ranking. A panic is logged and reported as no results.
func (e *Engine) match(q string, filters models.SearchFilters) (results []models.ScoredResult) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("matcher panicked", "query", q, "panic", r)
			results = []models.ScoredResult{}
		}
	}()
	return e.matcher.Rank(q, e.filter(filters))
}

func (e *Engine) filter(f models.SearchFilters) []models.SearchIndexEntry {
	entries := e.index.Entries()
	if f.Category == "" && f.Difficulty == "" && f.ClientSegment == "" && f.Featured == nil {
		return entries
	}

	filtered := make([]models.SearchIndexEntry, 0, len(entries))
	for i := range entries {
		q := &entries[i].FAQQuestion
		if f.Category != "" && q.Category != f.Category {
			continue
		}
		if f.Difficulty != "" && q.Difficulty != f.Difficulty {
			continue
		}
		if !q.MatchesSegment(f.ClientSegment) {
			continue
		}
		if f.Featured != nil && q.Featured != *f.Featured {
			continue
		}
		filtered = append(filtered, entries[i])
	}
	return filtered
}

// Suggestions returns up to limit tags, search keywords and category names
// containing query, excluding exact matches.
func (e *Engine) Suggestions(query string, limit int) []string {
	q := NormalizeQuery(query)
	suggestions := []string{}
	if q == "" || limit <= 0 {
		return suggestions
	}

	seen := make(map[string]bool)
	add := func(s string) bool {
		ls := strings.ToLower(s)
		if ls == q || !strings.Contains(ls, q) || seen[ls] {
			return false
		}
		seen[ls] = true
		suggestions = append(suggestions, s)
		return len(suggestions) >= limit
	}

	entries := e.index.Entries()
	for i := range entries {
		for _, k := range entries[i].SearchKeywords {
			if add(k) {
				return suggestions
			}
		}
		for _, t := range entries[i].Tags {
			if add(t) {
				return suggestions
			}
		}
	}
	for _, name := range e.categories {
		if add(name) {
			return suggestions
		}
	}
	return suggestions
}

func (e *Engine) remember(q string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.history = append([]string{q}, e.history...)
	if len(e.history) > historySize {
		e.history = e.history[:historySize]
	}
}

// History returns recent successful queries, newest first.
func (e *Engine) History() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, len(e.history))
	copy(out, e.history)
	return out
}
