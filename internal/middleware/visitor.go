package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/session"
	"github.com/google/uuid"
)

// VisitorKey is the session and locals key holding the anonymous visitor id.
const VisitorKey = "visitor_id"

// Visitor assigns each browser session a stable anonymous id, used for
// analytics sessions, suggestion limits and one-vote-per-visitor.
// Without session middleware every request gets a fresh id.
func Visitor(c fiber.Ctx) error {
	var id string

	if sess := session.FromContext(c); sess != nil {
		if v, ok := sess.Get(VisitorKey).(string); ok && v != "" {
			id = v
		} else {
			id = uuid.NewString()
			sess.Set(VisitorKey, id)
		}
	} else {
		id = uuid.NewString()
	}

	c.Locals(VisitorKey, id)
	return c.Next()
}

// VisitorID returns the visitor id set by Visitor, or "" if it did not run.
func VisitorID(c fiber.Ctx) string {
	id, _ := c.Locals(VisitorKey).(string)
	return id
}

// PerVisitorLimiter limits requests per visitor id, falling back to the
// client IP. storage may be nil for in-memory counting.
func PerVisitorLimiter(max int, window time.Duration, storage fiber.Storage) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		Storage:    storage,
		KeyGenerator: func(c fiber.Ctx) string {
			if id := VisitorID(c); id != "" {
				return "visitor:" + id
			}
			return c.IP()
		},
		LimitReached: func(c fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"status": "error",
				"error":  "Too many requests. Please try again later.",
			})
		},
	})
}
