package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"tutorsite/internal/config"
	"tutorsite/internal/db"
	"tutorsite/internal/middleware"
	"tutorsite/internal/models"
	"tutorsite/internal/validation"
)

// SuggestionStore persists visitor suggestions. *db.DB implements it.
type SuggestionStore interface {
	CreateSuggestion(ctx context.Context, s *models.Suggestion, sessionID string, pendingLimit int) error
	ListSuggestions(ctx context.Context, f models.SuggestionFilters) ([]models.Suggestion, int, error)
	VoteSuggestion(ctx context.Context, id uuid.UUID, voterID, voteType string) (models.Votes, error)
}

// SuggestionNotifier tells moderators about new suggestions. *email.Notifier implements it.
type SuggestionNotifier interface {
	NotifySuggestionSubmitted(ctx context.Context, s *models.Suggestion)
}

// SuggestionHandler handles visitor FAQ suggestions via JSON API.
type SuggestionHandler struct {
	store    SuggestionStore
	cfg      *config.Config
	notifier SuggestionNotifier
}

// NewSuggestionHandler creates a new API suggestion handler.
func NewSuggestionHandler(store SuggestionStore, cfg *config.Config, notifier SuggestionNotifier) *SuggestionHandler {
	return &SuggestionHandler{store: store, cfg: cfg, notifier: notifier}
}

// List returns suggestions. Visitors only see approved ones unless a status is given.
func (h *SuggestionHandler) List(c fiber.Ctx) error {
	status := c.Query("status", models.SuggestionApproved)
	if !validation.ValidateStatus(status) {
		return jsonError(c, fiber.StatusBadRequest, "unknown status")
	}

	limit, err := intParam(c, "limit")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}
	offset, err := intParam(c, "offset")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	f := models.SuggestionFilters{
		Status:   status,
		Category: strings.ToLower(strings.TrimSpace(c.Query("category"))),
		Limit:    limit,
		Offset:   offset,
	}

	suggestions, total, err := h.store.ListSuggestions(c.Context(), f)
	if err != nil {
		log.Printf("Failed to list suggestions: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch suggestions")
	}

	return jsonSuccess(c, fiber.Map{
		"suggestions": suggestions,
		"total":       total,
	})
}

// Create stores a new suggestion after validation and spam checks. Content
// that scores above validation.ReviewSpamScore is stored under review.
func (h *SuggestionHandler) Create(c fiber.Ctx) error {
	var body struct {
		Question    string   `json:"question"`
		Answer      string   `json:"answer"`
		Category    string   `json:"category"`
		Tags        []string `json:"tags"`
		SuggestedBy string   `json:"suggestedBy"`
		IsAnonymous bool     `json:"isAnonymous"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	body.Category = strings.ToLower(strings.TrimSpace(body.Category))
	if errs := validation.ValidateSuggestion(body.Question, body.Answer, body.Category, body.Tags); len(errs) > 0 {
		return jsonError(c, fiber.StatusBadRequest, strings.Join(errs, ". "))
	}

	spam := validation.DetectSpam(body.Question + " " + body.Answer)
	if spam.IsSpam(h.cfg.SuggestionSpamThreshold) {
		return jsonError(c, fiber.StatusUnprocessableEntity, "content flagged as potential spam")
	}

	name := strings.TrimSpace(body.SuggestedBy)
	if len([]rune(name)) > validation.MaxNameLength {
		name = string([]rune(name)[:validation.MaxNameLength])
	}

	s := &models.Suggestion{
		Question:    strings.TrimSpace(body.Question),
		Answer:      strings.TrimSpace(body.Answer),
		Category:    body.Category,
		Tags:        validation.NormalizeTags(body.Tags),
		SuggestedBy: name,
		IsAnonymous: body.IsAnonymous || name == "",
		SpamScore:   spam.Score,
	}
	if spam.NeedsReview(h.cfg.SuggestionSpamThreshold) {
		s.Status = models.SuggestionUnderReview
	}

	err := h.store.CreateSuggestion(c.Context(), s, middleware.VisitorID(c), h.cfg.SuggestionPendingLimit)
	if err != nil {
		switch {
		case errors.Is(err, db.ErrDuplicateSuggestion):
			return jsonError(c, fiber.StatusConflict, "this question has already been suggested")
		case errors.Is(err, db.ErrPendingLimitReached):
			return jsonError(c, fiber.StatusTooManyRequests, "too many suggestions awaiting review")
		}
		log.Printf("Failed to create suggestion: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "failed to save suggestion")
	}

	if h.notifier != nil {
		h.notifier.NotifySuggestionSubmitted(c.Context(), s)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "ok",
		"data":   s,
	})
}

// Vote records the visitor's vote on a suggestion.
func (h *SuggestionHandler) Vote(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid suggestion id")
	}

	var body struct {
		VoteType string `json:"voteType"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if !validation.ValidateVoteType(body.VoteType) {
		return jsonError(c, fiber.StatusBadRequest, "voteType must be upvote or downvote")
	}

	if validation.IsSuspiciousUserAgent(c.Get(fiber.HeaderUserAgent)) {
		return jsonError(c, fiber.StatusForbidden, "vote rejected")
	}

	voter := middleware.VisitorID(c)
	if voter == "" {
		return jsonError(c, fiber.StatusBadRequest, "visitor session required")
	}

	votes, err := h.store.VoteSuggestion(c.Context(), id, voter, body.VoteType)
	if err != nil {
		if errors.Is(err, db.ErrSuggestionNotFound) {
			return jsonError(c, fiber.StatusNotFound, "suggestion not found")
		}
		log.Printf("Failed to record vote on %s: %v", id, err)
		return jsonError(c, fiber.StatusInternalServerError, "failed to record vote")
	}

	return jsonSuccess(c, votes)
}
