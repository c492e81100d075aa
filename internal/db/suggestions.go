package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"tutorsite/internal/models"
)

// suggestionColumns is the standard column list for suggestion queries,
// including the vote tally.
const suggestionColumns = `s.id, s.question, s.answer, s.category, s.tags, s.suggested_by, s.is_anonymous,
	s.status, s.spam_score, s.created_at, s.updated_at,
	COUNT(v.vote_type) FILTER (WHERE v.vote_type = 'upvote') AS upvotes,
	COUNT(v.vote_type) FILTER (WHERE v.vote_type = 'downvote') AS downvotes`

const suggestionFrom = `FROM faq_suggestions s
	LEFT JOIN faq_suggestion_votes v ON v.suggestion_id = s.id`

// scanSuggestion scans a row into a Suggestion.
func scanSuggestion(row pgx.Row) (*models.Suggestion, error) {
	var s models.Suggestion
	err := row.Scan(
		&s.ID,
		&s.Question,
		&s.Answer,
		&s.Category,
		&s.Tags,
		&s.SuggestedBy,
		&s.IsAnonymous,
		&s.Status,
		&s.SpamScore,
		&s.CreatedAt,
		&s.UpdatedAt,
		&s.Votes.Up,
		&s.Votes.Down,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSuggestionNotFound
	}
	if err != nil {
		return nil, err
	}
	s.Votes.Net = s.Votes.Up - s.Votes.Down
	return &s, nil
}

// CreateSuggestion stores a new suggestion submitted from sessionID. An empty
// status is stored as pending. At most pendingLimit suggestions awaiting
// moderation are accepted per session.
func (d *DB) CreateSuggestion(ctx context.Context, s *models.Suggestion, sessionID string, pendingLimit int) error {
	if pendingLimit > 0 && sessionID != "" {
		var pending int
		err := d.Pool.QueryRow(ctx, `
			SELECT COUNT(*) FROM faq_suggestions WHERE session_id = $1 AND status IN ('pending', 'under_review')
		`, sessionID).Scan(&pending)
		if err != nil {
			return fmt.Errorf("failed to count pending suggestions: %w", err)
		}
		if pending >= pendingLimit {
			return ErrPendingLimitReached
		}
	}

	if s.Tags == nil {
		s.Tags = []string{}
	}
	if s.Status == "" {
		s.Status = models.SuggestionPending
	}

	err := d.Pool.QueryRow(ctx, `
		INSERT INTO faq_suggestions (question, answer, category, tags, suggested_by, is_anonymous, session_id, status, spam_score)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`, s.Question, s.Answer, s.Category, s.Tags, s.SuggestedBy, s.IsAnonymous, sessionID, s.Status, s.SpamScore).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateSuggestion
		}
		return err
	}
	return nil
}

// GetSuggestionByID returns a suggestion with its vote tally.
func (d *DB) GetSuggestionByID(ctx context.Context, id uuid.UUID) (*models.Suggestion, error) {
	row := d.Pool.QueryRow(ctx, `SELECT `+suggestionColumns+` `+suggestionFrom+`
		WHERE s.id = $1
		GROUP BY s.id`, id)
	return scanSuggestion(row)
}

// ListSuggestions returns suggestions matching the filters, newest first, and
// the total number of matches.
func (d *DB) ListSuggestions(ctx context.Context, f models.SuggestionFilters) ([]models.Suggestion, int, error) {
	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	var total int
	err := d.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM faq_suggestions
		WHERE ($1 = '' OR status = $1) AND ($2 = '' OR category = $2)
	`, f.Status, f.Category).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count suggestions: %w", err)
	}

	rows, err := d.Pool.Query(ctx, `SELECT `+suggestionColumns+` `+suggestionFrom+`
		WHERE ($1 = '' OR s.status = $1) AND ($2 = '' OR s.category = $2)
		GROUP BY s.id
		ORDER BY s.created_at DESC
		LIMIT $3 OFFSET $4`, f.Status, f.Category, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	suggestions := []models.Suggestion{}
	for rows.Next() {
		s, err := scanSuggestion(rows)
		if err != nil {
			return nil, 0, err
		}
		suggestions = append(suggestions, *s)
	}
	return suggestions, total, rows.Err()
}

// VoteSuggestion records voterID's vote, replacing any earlier vote, and
// returns the updated tally.
func (d *DB) VoteSuggestion(ctx context.Context, id uuid.UUID, voterID, voteType string) (models.Votes, error) {
	_, err := d.Pool.Exec(ctx, `
		INSERT INTO faq_suggestion_votes (suggestion_id, voter_id, vote_type)
		VALUES ($1, $2, $3)
		ON CONFLICT (suggestion_id, voter_id) DO UPDATE
		SET vote_type = EXCLUDED.vote_type, created_at = NOW()
	`, id, voterID, voteType)
	if err != nil {
		if isForeignKeyViolation(err) {
			return models.Votes{}, ErrSuggestionNotFound
		}
		return models.Votes{}, err
	}

	var v models.Votes
	err = d.Pool.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE vote_type = 'upvote'),
			COUNT(*) FILTER (WHERE vote_type = 'downvote')
		FROM faq_suggestion_votes
		WHERE suggestion_id = $1
	`, id).Scan(&v.Up, &v.Down)
	if err != nil {
		return models.Votes{}, err
	}
	v.Net = v.Up - v.Down
	return v, nil
}
