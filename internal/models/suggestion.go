package models

import (
	"time"

	"github.com/google/uuid"
)

// Suggestion status constants
const (
	SuggestionPending     = "pending"
	SuggestionUnderReview = "under_review"
	SuggestionApproved    = "approved"
	SuggestionRejected    = "rejected"
)

// Vote type constants
const (
	VoteUp   = "upvote"
	VoteDown = "downvote"
)

// Votes holds the tally for a suggestion.
type Votes struct {
	Up   int `json:"upvotes"`
	Down int `json:"downvotes"`
	Net  int `json:"netVotes"`
}

// Suggestion is a visitor-submitted FAQ question awaiting moderation.
type Suggestion struct {
	ID          uuid.UUID `json:"id"`
	Question    string    `json:"question"`
	Answer      string    `json:"answer"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	SuggestedBy string    `json:"suggestedBy,omitempty"`
	IsAnonymous bool      `json:"isAnonymous"`
	Status      string    `json:"status"`
	SpamScore   float64   `json:"-"`
	Votes       Votes     `json:"votes"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// IsPending returns true if the suggestion has not been moderated yet.
func (s *Suggestion) IsPending() bool {
	return s.Status == SuggestionPending
}

// IsUnderReview returns true if the suggestion was held for a closer spam check.
func (s *Suggestion) IsUnderReview() bool {
	return s.Status == SuggestionUnderReview
}

// IsApproved returns true if a moderator approved the suggestion.
func (s *Suggestion) IsApproved() bool {
	return s.Status == SuggestionApproved
}

// DisplayName returns the name shown next to the suggestion.
func (s *Suggestion) DisplayName() string {
	if s.IsAnonymous || s.SuggestedBy == "" {
		return "Anonymous"
	}
	return s.SuggestedBy
}

// SuggestionFilters narrows a suggestion listing.
type SuggestionFilters struct {
	Status   string
	Category string
	Limit    int
	Offset   int
}
