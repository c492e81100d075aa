package handlers

import (
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gofiber/fiber/v3"

	"tutorsite/internal/config"
	"tutorsite/internal/content"
	"tutorsite/internal/models"
	"tutorsite/internal/search"
	"tutorsite/internal/validation"
)

const (
	searchPageSize = 20
	livePageSize   = 8
)

// FAQHandler renders the FAQ pages.
type FAQHandler struct {
	engine  *search.Engine
	content *content.Content
	cfg     *config.Config
}

// NewFAQHandler creates a new FAQ handler.
func NewFAQHandler(engine *search.Engine, faq *content.Content, cfg *config.Config) *FAQHandler {
	return &FAQHandler{engine: engine, content: faq, cfg: cfg}
}

// Index renders every question grouped by category.
func (h *FAQHandler) Index(c fiber.Ctx) error {
	return c.Render("index", MergeBranding(fiber.Map{
		"Title":      "FAQ",
		"Categories": h.content.Categories,
		"Featured":   h.content.Featured(),
		"Query":      "",
	}, h.cfg))
}

// Search renders the full results page for q.
func (h *FAQHandler) Search(c fiber.Ctx) error {
	query := validation.NormalizeQuery(c.Query("q"))
	category := strings.ToLower(strings.TrimSpace(c.Query("category")))

	offset, err := strconv.Atoi(c.Query("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	resp := h.engine.Search(c.Context(), query, models.SearchFilters{
		Category: category,
		Limit:    searchPageSize,
		Offset:   offset,
	})
	next := offset + len(resp.Results)

	return c.Render("search", MergeBranding(fiber.Map{
		"Title":      "Search",
		"Query":      query,
		"Category":   category,
		"Results":    resp.Results,
		"Metadata":   resp.Metadata,
		"HasMore":    next < resp.Metadata.TotalResults,
		"NextOffset": next,
	}, h.cfg))
}

// Live renders the search-as-you-type partial. The active and key
// parameters carry keyboard navigation state between requests.
func (h *FAQHandler) Live(c fiber.Ctx) error {
	query := validation.NormalizeQuery(c.Query("q"))
	if utf8.RuneCountInString(query) < search.MinQueryLength {
		return c.SendString("")
	}

	active, err := strconv.Atoi(c.Query("active", "-1"))
	if err != nil {
		active = -1
	}

	resp := h.engine.Search(c.Context(), query, models.SearchFilters{Limit: livePageSize})

	nav := search.NewNavigator(len(resp.Results))
	nav.SetActive(active)

	switch nav.Handle(search.ParseKey(c.Query("key"))) {
	case search.IntentClear:
		c.Set("HX-Trigger", "faq-search-cleared")
		return c.SendString("")
	case search.IntentSelect:
		id := resp.Results[nav.Active()].Entry.ID
		c.Set("HX-Redirect", "/#faq-"+url.PathEscape(id))
		return c.SendString("")
	}

	if err := c.Render("partials/results", fiber.Map{
		"Query":      query,
		"Results":    resp.Results,
		"Total":      resp.Metadata.TotalResults,
		"Active":     nav.Active(),
		"Generation": c.Query("gen"),
	}, ""); err != nil {
		return htmxError(c, "Search is unavailable right now.")
	}
	return nil
}
