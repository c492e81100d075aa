package api

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"

	"tutorsite/internal/search"
)

// Pinger checks a dependency. *db.DB implements it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports service readiness.
type HealthHandler struct {
	db     Pinger
	engine *search.Engine
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(database Pinger, engine *search.Engine) *HealthHandler {
	return &HealthHandler{db: database, engine: engine}
}

// Healthz returns 200 when the index is loaded and the database answers.
func (h *HealthHandler) Healthz(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		return jsonError(c, fiber.StatusServiceUnavailable, "database unavailable")
	}

	return jsonSuccess(c, fiber.Map{
		"database":  "ok",
		"questions": h.engine.Index().Len(),
	})
}
