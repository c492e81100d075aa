package db

import (
	"context"
	"fmt"

	"tutorsite/internal/models"
)

// QueryOutcomeCount is a batched increment for one query and outcome.
type QueryOutcomeCount struct {
	Query   string
	Outcome string
	Count   int64
}

// SessionActivity is a batched increment for one visitor session.
type SessionActivity struct {
	SessionID   string
	Searches    int
	ZeroResults int
	Selections  int
}

// IncrementSearchQuery upserts a single query count by outcome.
func (d *DB) IncrementSearchQuery(ctx context.Context, query, outcome string) error {
	_, err := d.Pool.Exec(ctx, upsertSearchQuery, query, outcome, int64(1))
	return err
}

const upsertSearchQuery = `
		INSERT INTO search_queries (query, outcome, count, last_seen_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (query, outcome) DO UPDATE
		SET count = search_queries.count + EXCLUDED.count, last_seen_at = NOW()
	`

const upsertSearchSession = `
		INSERT INTO search_sessions (session_id, search_count, zero_results, selections, first_seen_at, last_seen_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (session_id) DO UPDATE
		SET search_count = search_sessions.search_count + EXCLUDED.search_count,
			zero_results = search_sessions.zero_results + EXCLUDED.zero_results,
			selections = search_sessions.selections + EXCLUDED.selections,
			last_seen_at = NOW()
	`

// RecordSearchBatch applies aggregated query and session counts in one transaction.
func (d *DB) RecordSearchBatch(ctx context.Context, queries []QueryOutcomeCount, sessions []SessionActivity) error {
	if len(queries) == 0 && len(sessions) == 0 {
		return nil
	}

	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, q := range queries {
		if _, err := tx.Exec(ctx, upsertSearchQuery, q.Query, q.Outcome, q.Count); err != nil {
			return fmt.Errorf("failed to record query %q: %w", q.Query, err)
		}
	}
	for _, s := range sessions {
		if _, err := tx.Exec(ctx, upsertSearchSession, s.SessionID, s.Searches, s.ZeroResults, s.Selections); err != nil {
			return fmt.Errorf("failed to record session %s: %w", s.SessionID, err)
		}
	}

	return tx.Commit(ctx)
}

// GetTopSearchQueries returns the most frequent queries for an outcome.
func (d *DB) GetTopSearchQueries(ctx context.Context, outcome string, limit int) ([]models.SearchQueryStat, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT query, outcome, count, last_seen_at
		FROM search_queries
		WHERE outcome = $1
		ORDER BY count DESC, last_seen_at DESC
		LIMIT $2
	`, outcome, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []models.SearchQueryStat
	for rows.Next() {
		var s models.SearchQueryStat
		if err := rows.Scan(&s.Query, &s.Outcome, &s.Count, &s.LastSeenAt); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
