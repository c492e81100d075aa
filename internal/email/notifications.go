package email

import (
	"context"
	"log"

	"tutorsite/internal/config"
	"tutorsite/internal/models"
)

// MissedSearchSource is an interface for reading zero-result search counts.
type MissedSearchSource interface {
	GetTopSearchQueries(ctx context.Context, outcome string, limit int) ([]models.SearchQueryStat, error)
}

// Notifier sends email notifications for various events.
type Notifier struct {
	service   *Service
	templates *Templates
	cfg       *config.Config
	db        MissedSearchSource
}

// NewNotifier creates a new email notifier. db may be nil when no database
// is configured.
func NewNotifier(cfg *config.Config, db MissedSearchSource) *Notifier {
	return &Notifier{
		service:   NewService(cfg),
		templates: NewTemplates(cfg),
		cfg:       cfg,
		db:        db,
	}
}

// NotifySuggestionSubmitted notifies moderators that a visitor suggested a question.
func (n *Notifier) NotifySuggestionSubmitted(ctx context.Context, s *models.Suggestion) {
	if !n.service.IsEnabled() || !n.cfg.EmailNotifyOnSuggestion {
		return
	}

	emails := n.cfg.ModeratorRecipients()
	if len(emails) == 0 {
		log.Println("No moderator emails configured for suggestion notification")
		return
	}

	subject, htmlBody, textBody := n.templates.SuggestionSubmitted(s)
	n.service.SendAsync(emails, subject, htmlBody, textBody)
}

// NotifyMissedSearches sends moderators the most frequent searches that
// returned no results.
func (n *Notifier) NotifyMissedSearches(ctx context.Context, limit int) {
	if !n.service.IsEnabled() || n.db == nil {
		return
	}

	emails := n.cfg.ModeratorRecipients()
	if len(emails) == 0 {
		return
	}

	stats, err := n.db.GetTopSearchQueries(ctx, models.OutcomeMiss, limit)
	if err != nil {
		log.Printf("Failed to get missed searches: %v", err)
		return
	}

	if len(stats) == 0 {
		return
	}

	subject, htmlBody, textBody := n.templates.MissedSearches(stats)
	n.service.SendAsync(emails, subject, htmlBody, textBody)
}
