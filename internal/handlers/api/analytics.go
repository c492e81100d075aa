package api

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v3"

	"tutorsite/internal/analytics"
	"tutorsite/internal/middleware"
	"tutorsite/internal/models"
	"tutorsite/internal/validation"
)

// MaxEventsPerBatch bounds a single analytics post.
const MaxEventsPerBatch = 100

// AnalyticsHandler accepts search events batched by the FAQ pages.
type AnalyticsHandler struct {
	aggregator *analytics.Aggregator
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(aggregator *analytics.Aggregator) *AnalyticsHandler {
	return &AnalyticsHandler{aggregator: aggregator}
}

// RecordSearchEvents records a batch and returns its summary.
func (h *AnalyticsHandler) RecordSearchEvents(c fiber.Ctx) error {
	var batch models.EventBatch
	if err := json.Unmarshal(c.Body(), &batch); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if len(batch.Events) == 0 {
		return jsonError(c, fiber.StatusBadRequest, "events are required")
	}
	if len(batch.Events) > MaxEventsPerBatch {
		return jsonError(c, fiber.StatusRequestEntityTooLarge, "too many events in one batch")
	}

	now := time.Now()
	for i := range batch.Events {
		e := &batch.Events[i]
		if e.ResultCount < 0 || e.ExecutionTime < 0 {
			return jsonError(c, fiber.StatusBadRequest, "resultCount and executionTime must not be negative")
		}
		e.Query = validation.NormalizeQuery(e.Query)
		if e.Timestamp.IsZero() || e.Timestamp.After(now) {
			e.Timestamp = now
		}
	}

	// The server-issued visitor id wins over whatever the client sent
	sessionID := middleware.VisitorID(c)
	if sessionID == "" {
		sessionID = batch.SessionID
	}

	h.aggregator.Record(sessionID, batch.Events...)

	return jsonSuccess(c, fiber.Map{
		"accepted": len(batch.Events),
		"summary":  analytics.Summarize(batch.Events),
	})
}
