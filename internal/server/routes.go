package server

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tutorsite/internal/analytics"
	"tutorsite/internal/cache"
	"tutorsite/internal/content"
	"tutorsite/internal/handlers"
	"tutorsite/internal/handlers/api"
	"tutorsite/internal/middleware"
	"tutorsite/internal/search"
)

// Deps are the services the routes are built on. *db.DB satisfies both
// Suggestions and Health; *email.Notifier satisfies Notifier.
type Deps struct {
	Engine     *search.Engine
	Content    *content.Content
	Cache      cache.Cache
	Aggregator *analytics.Aggregator

	Suggestions api.SuggestionStore
	Notifier    api.SuggestionNotifier
	Health      api.Pinger
}

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(deps Deps) {
	// Initialize handlers
	faqHandler := handlers.NewFAQHandler(deps.Engine, deps.Content, s.Cfg)
	searchHandler := api.NewSearchHandler(deps.Engine, deps.Cache)
	analyticsHandler := api.NewAnalyticsHandler(deps.Aggregator)
	suggestionHandler := api.NewSuggestionHandler(deps.Suggestions, s.Cfg, deps.Notifier)
	healthHandler := api.NewHealthHandler(deps.Health, deps.Engine)

	// FAQ pages
	s.App.Get("/", faqHandler.Index)
	s.App.Get("/faq/search", faqHandler.Search)
	s.App.Get("/faq/live", faqHandler.Live)

	// Search API
	s.App.Get("/api/search", searchHandler.Search)
	s.App.Get("/search", searchHandler.Search)
	s.App.Get("/api/faq/index", searchHandler.IndexStats)
	s.App.Get("/api/faq/suggest", searchHandler.Suggest)

	// Analytics
	s.App.Post("/api/analytics/search-events", analyticsHandler.RecordSearchEvents)

	// Visitor suggestions
	voteLimiter := middleware.PerVisitorLimiter(s.Cfg.SuggestionVotesPerMinute, time.Minute, s.Storage)
	s.App.Get("/api/faq/suggestions", suggestionHandler.List)
	s.App.Post("/api/faq/suggestions", suggestionHandler.Create)
	s.App.Post("/api/faq/suggestions/:id/vote", voteLimiter, suggestionHandler.Vote)

	// Operations
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	s.App.Get("/healthz", healthHandler.Healthz)

	log.Printf("Serving %d FAQ questions", deps.Engine.Index().Len())
}
