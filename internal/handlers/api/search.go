package api

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"tutorsite/internal/cache"
	"tutorsite/internal/metrics"
	"tutorsite/internal/models"
	"tutorsite/internal/search"
	"tutorsite/internal/validation"
)

// maxPageSize bounds the limit query parameter.
const maxPageSize = 100

// SearchHandler serves FAQ search over JSON.
type SearchHandler struct {
	engine *search.Engine
	cache  cache.Cache
}

// NewSearchHandler creates a new search handler. responses may be nil to
// disable caching.
func NewSearchHandler(engine *search.Engine, responses cache.Cache) *SearchHandler {
	return &SearchHandler{engine: engine, cache: responses}
}

// Search ranks FAQ entries for the q parameter. The body is the bare
// {results, metadata} object rather than the usual envelope.
func (h *SearchHandler) Search(c fiber.Ctx) error {
	start := time.Now()

	filters, err := ParseFilters(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var gen uint64
	if raw := c.Query("gen"); raw != "" {
		gen, err = strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return jsonError(c, fiber.StatusBadRequest, "gen must be a non-negative integer")
		}
	}

	query := validation.NormalizeQuery(c.Query("q"))
	key := cache.Key(search.NormalizeQuery(query), filters)

	if h.cache != nil {
		if resp, ok := h.cache.Get(c.Context(), key); ok {
			resp.Metadata.Cached = true
			resp.Metadata.Generation = gen
			resp.Metadata.ExecutionTime = elapsedMs(start)
			metrics.ObserveSearch(resp.Metadata.TotalResults, true, time.Since(start))
			return c.JSON(resp)
		}
	}

	resp := h.engine.Search(c.Context(), query, filters)
	metrics.ObserveSearch(resp.Metadata.TotalResults, false, time.Since(start))

	if h.cache != nil && resp.Metadata.TotalResults > 0 {
		h.cache.Set(c.Context(), key, resp)
	}

	resp.Metadata.Generation = gen
	return c.JSON(resp)
}

// IndexStats returns statistics about the loaded FAQ index.
func (h *SearchHandler) IndexStats(c fiber.Ctx) error {
	return jsonSuccess(c, h.engine.Index().Stats())
}

// Suggest returns tags, keywords and category names related to q.
func (h *SearchHandler) Suggest(c fiber.Ctx) error {
	query := validation.NormalizeQuery(c.Query("q"))
	return jsonSuccess(c, h.engine.Suggestions(query, 5))
}

// ParseFilters reads search filters from query parameters.
func ParseFilters(c fiber.Ctx) (models.SearchFilters, error) {
	var f models.SearchFilters

	limit, err := intParam(c, "limit")
	if err != nil {
		return f, err
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset, err := intParam(c, "offset")
	if err != nil {
		return f, err
	}

	f.Limit = limit
	f.Offset = offset
	f.Category = strings.ToLower(strings.TrimSpace(c.Query("category")))
	f.Difficulty = strings.ToLower(strings.TrimSpace(c.Query("difficulty")))
	f.ClientSegment = strings.ToLower(strings.TrimSpace(c.Query("segment")))

	if !validation.ValidateDifficulty(f.Difficulty) {
		return f, fiber.NewError(fiber.StatusBadRequest, "unknown difficulty")
	}
	if !validation.ValidateSegment(f.ClientSegment) {
		return f, fiber.NewError(fiber.StatusBadRequest, "unknown client segment")
	}

	f.Featured, err = validation.ParseOptionalBool(c.Query("featured"))
	if err != nil {
		return f, fiber.NewError(fiber.StatusBadRequest, "featured must be true or false")
	}

	return f, nil
}

func intParam(c fiber.Ctx, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, name+" must be a non-negative integer")
	}
	return n, nil
}

func elapsedMs(start time.Time) float64 {
	us := time.Since(start).Microseconds()
	return float64(us/10) / 100
}
