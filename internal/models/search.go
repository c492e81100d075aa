package models

import (
	"html/template"
	"time"
)

// SearchIndexEntry is the read-only, precomputed search projection of a question.
type SearchIndexEntry struct {
	FAQQuestion
	Position       int    `json:"-"`
	SearchableText string `json:"-"`
	QuestionText   string `json:"-"`
}

// Span is a half-open byte range [Start, End) of a highlighted match.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Highlighted carries the emphasised rendering of a result.
type Highlighted struct {
	Question      template.HTML `json:"question"`
	Answer        template.HTML `json:"answer"`
	QuestionSpans []Span        `json:"questionSpans"`
	AnswerSpans   []Span        `json:"answerSpans"`
}

// ScoredResult pairs an index entry with its relevance score.
type ScoredResult struct {
	Entry       *SearchIndexEntry `json:"item"`
	Score       float64           `json:"score"`
	Highlighted *Highlighted      `json:"highlighted,omitempty"`
}

// SearchFilters narrows a search. The engine never mutates it.
type SearchFilters struct {
	Category      string
	Difficulty    string
	ClientSegment string
	Featured      *bool
	Limit         int
	Offset        int
}

// SearchMetadata describes a search execution.
type SearchMetadata struct {
	Query         string   `json:"query"`
	TotalResults  int      `json:"totalResults"`
	ExecutionTime float64  `json:"executionTime"`
	Cached        bool     `json:"cached"`
	Generation    uint64   `json:"generation,omitempty"`
	Limit         int      `json:"limit"`
	Offset        int      `json:"offset"`
	Suggestions   []string `json:"suggestions"`
}

// SearchResponse is the payload of the search endpoint.
type SearchResponse struct {
	Results  []ScoredResult `json:"results"`
	Metadata SearchMetadata `json:"metadata"`
}

// IndexStats summarises the content of a built index.
type IndexStats struct {
	Version                string         `json:"version"`
	BuiltAt                time.Time      `json:"builtAt"`
	QuestionCount          int            `json:"questionCount"`
	CategoryCount          int            `json:"categoryCount"`
	CategoryDistribution   map[string]int `json:"categoryDistribution"`
	DifficultyDistribution map[string]int `json:"difficultyDistribution"`
	SegmentDistribution    map[string]int `json:"segmentDistribution"`
}
