// Package testutil provides test utilities and helpers.
package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/pashagolub/pgxmock/v4"

	"tutorsite/internal/db"
	"tutorsite/internal/models"
	"tutorsite/internal/search"
)

// TestDB connects to TEST_DATABASE_URL, runs migrations and returns a cleanup
// function. The test is skipped when the variable is unset.
func TestDB(t *testing.T) (*db.DB, func()) {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	database, err := db.New(ctx, connString)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	// Run migrations
	if err := database.RunMigrations(connString); err != nil {
		database.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	cleanup := func() {
		cleanupTestData(ctx, database.Pool)
		database.Close()
	}

	// Clean before test
	cleanupTestData(ctx, database.Pool)

	return database, cleanup
}

// cleanupTestData removes all test data from the database.
func cleanupTestData(ctx context.Context, pool db.Pool) {
	// Delete in order to respect foreign keys
	pool.Exec(ctx, "DELETE FROM faq_suggestion_votes")
	pool.Exec(ctx, "DELETE FROM faq_suggestions")
	pool.Exec(ctx, "DELETE FROM search_sessions")
	pool.Exec(ctx, "DELETE FROM search_queries")
}

// MockDB returns a DB backed by pgxmock. Unmet expectations fail the test.
func MockDB(t *testing.T) (*db.DB, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet database expectations: %v", err)
		}
		mock.Close()
	})

	return db.NewWithPool(mock), mock
}

// SampleCategories returns a small FAQ content set covering every filter.
func SampleCategories() []models.FAQCategory {
	return []models.FAQCategory{
		{
			ID: "booking", Name: "Booking", Order: 1,
			Questions: []models.FAQQuestion{
				{
					ID: "book-1", Question: "How do I book a tutor?", Answer: "Complete the enquiry form and we call you back.",
					Category: "booking", Tags: []string{"enquiry"}, SearchKeywords: []string{"booking process"},
					Priority: 9, Featured: true, Difficulty: models.DifficultyBasic, ClientSegment: models.SegmentAll,
				},
			},
		},
		{
			ID: "pricing", Name: "Pricing", Order: 2,
			Questions: []models.FAQQuestion{
				{
					ID: "fees-1", Question: "What are your fees?", Answer: "Fees depend on the tutor tier you book.",
					Category: "pricing", Tags: []string{"fees", "pricing"}, SearchKeywords: []string{"tutor fees"},
					Priority: 8, Difficulty: models.DifficultyBasic, ClientSegment: models.SegmentComparisonShopper,
				},
			},
		},
		{
			ID: "programmes", Name: "Programmes", Order: 3,
			Questions: []models.FAQQuestion{
				{
					ID: "oxb-1", Question: "Do you prepare students for Oxbridge interviews?", Answer: "Yes, our interview coaching covers every college.",
					Category: "programmes", Tags: []string{"oxbridge", "interviews"},
					Priority: 7, Difficulty: models.DifficultyAdvanced, ClientSegment: models.SegmentOxbridgePrep,
				},
				{
					ID: "11p-1", Question: "When should 11+ preparation start?", Answer: "Most families start a year ahead of the exam.",
					Category: "programmes", Tags: []string{"11 plus", "exam"},
					Priority: 6, Difficulty: models.DifficultyIntermediate, ClientSegment: models.SegmentElevenPlus,
				},
			},
		},
	}
}

// SampleQuestions flattens SampleCategories in category order.
func SampleQuestions() []models.FAQQuestion {
	var out []models.FAQQuestion
	for _, c := range SampleCategories() {
		out = append(out, c.Questions...)
	}
	return out
}

// NewEngine builds a search engine over the sample content.
func NewEngine(t *testing.T) *search.Engine {
	t.Helper()

	idx, err := search.BuildIndex(SampleQuestions())
	if err != nil {
		t.Fatalf("failed to build index: %v", err)
	}
	return search.NewEngine(idx, search.Options{
		Fuzzy:      true,
		MaxResults: search.DefaultMaxResults,
		Categories: SampleCategories(),
	})
}
