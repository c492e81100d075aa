package models

import "time"

// Search query outcome constants
const (
	OutcomeHit  = "hit"
	OutcomeMiss = "miss"
)

// SearchEvent is one search performed by a visitor, reported by the page.
type SearchEvent struct {
	Query         string    `json:"query"`
	ResultCount   int       `json:"resultCount"`
	ExecutionTime float64   `json:"executionTime"`
	SelectedID    string    `json:"selectedId,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// Outcome classifies the event as a hit or a miss.
func (e SearchEvent) Outcome() string {
	if e.ResultCount > 0 {
		return OutcomeHit
	}
	return OutcomeMiss
}

// EventBatch is the body posted to the analytics endpoint.
type EventBatch struct {
	SessionID string        `json:"sessionId"`
	Events    []SearchEvent `json:"events"`
}

// QueryCount is a query with its number of occurrences.
type QueryCount struct {
	Query string `json:"query"`
	Count int    `json:"count"`
}

// SearchSummary aggregates a set of search events.
type SearchSummary struct {
	Count           int          `json:"count"`
	Sessions        int          `json:"sessions"`
	AvgExecutionMs  float64      `json:"avgExecutionMs"`
	MinExecutionMs  float64      `json:"minExecutionMs"`
	MaxExecutionMs  float64      `json:"maxExecutionMs"`
	P95ExecutionMs  float64      `json:"p95ExecutionMs"`
	ZeroResultRatio float64      `json:"zeroResultRatio"`
	SelectionRatio  float64      `json:"selectionRatio"`
	TopQueries      []QueryCount `json:"topQueries"`
}

// SearchQueryStat is a persisted per-query count by outcome.
type SearchQueryStat struct {
	Query      string    `json:"query"`
	Outcome    string    `json:"outcome"`
	Count      int64     `json:"count"`
	LastSeenAt time.Time `json:"lastSeenAt"`
}
