package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/storage/redis/v3"

	"tutorsite/internal/analytics"
	"tutorsite/internal/cache"
	"tutorsite/internal/config"
	"tutorsite/internal/content"
	"tutorsite/internal/db"
	"tutorsite/internal/email"
	"tutorsite/internal/jobs"
	"tutorsite/internal/metrics"
	"tutorsite/internal/search"
	"tutorsite/internal/server"
	"tutorsite/internal/validation"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()

	// Load FAQ content and build the search index
	faq, err := content.Load(cfg.ContentFile)
	if err != nil {
		log.Fatalf("Failed to load FAQ content: %v", err)
	}
	idx, err := search.BuildIndex(faq.Questions)
	if err != nil {
		log.Fatalf("Failed to build search index: %v", err)
	}
	engine := search.NewEngine(idx, search.Options{
		Fuzzy:      cfg.SearchFuzzy,
		MaxResults: cfg.SearchMaxResults,
		Categories: faq.Categories,
	})
	log.Printf("Indexed %d questions from %s (version %s)", idx.Len(), cfg.ContentFile, faq.Version)

	// Initialize database
	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Run migrations
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed successfully")

	metrics.Init(database, cfg.MetricsTopQueries)

	// Redis backs the rate limiters and the response cache when configured
	var storage fiber.Storage
	var responses cache.Cache
	if cfg.RedisURL != "" {
		store := redis.New(redis.Config{URL: cfg.RedisURL})
		defer store.Close()
		storage = store
		responses = cache.NewShared(store, cfg.SearchCacheTTL)
		log.Println("Using Redis for rate limiting and search caching")
	} else {
		responses = cache.NewLRU(cfg.SearchCacheSize, cfg.SearchCacheTTL)
	}

	// Background jobs
	aggregator := analytics.New(validation.MaxQueryLength)
	notifier := email.NewNotifier(cfg, database)

	flusher := jobs.NewAnalyticsFlusher(aggregator, database, cfg.AnalyticsFlushInterval)
	flushed := make(chan struct{})
	go func() {
		flusher.Start(ctx)
		close(flushed)
	}()

	reporter := jobs.NewMissedSearchReporter(notifier, cfg.MissedSearchReportInterval)
	go reporter.Start(ctx)

	srv := server.New(cfg, storage)
	srv.RegisterRoutes(server.Deps{
		Engine:      engine,
		Content:     faq,
		Cache:       responses,
		Aggregator:  aggregator,
		Suggestions: database,
		Notifier:    notifier,
		Health:      database,
	})

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("Server started on %s", cfg.ServerAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := srv.Shutdown(); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	// Stop background jobs and wait for the final analytics flush
	cancel()
	<-flushed
	log.Println("Server exited")
}
