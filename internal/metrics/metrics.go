package metrics

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"tutorsite/internal/models"
)

var (
	searchQueryDesc = prometheus.NewDesc(
		"tutorsite_search_queries_total",
		"Visitor search count for the most frequent queries by outcome",
		[]string{"query", "outcome"},
		nil,
	)

	searchRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tutorsite_search_requests_total",
			Help: "Search requests served by outcome and cache status",
		},
		[]string{"outcome", "cached"},
	)

	searchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tutorsite_search_duration_seconds",
			Help:    "Time spent ranking a search query",
			Buckets: []float64{.0001, .0005, .001, .0025, .005, .01, .025, .05, .1},
		},
	)
)

// DefaultTopQueries is the number of queries exported per outcome.
const DefaultTopQueries = 25

// QueryStatsSource provides persisted search query counts. *db.DB implements it.
type QueryStatsSource interface {
	GetTopSearchQueries(ctx context.Context, outcome string, limit int) ([]models.SearchQueryStat, error)
}

// SearchQueryCollector is a custom Prometheus collector that reads the most
// frequent search queries from the database on each scrape. Only the top
// queries per outcome are exported so free-text queries cannot grow the
// series count without bound.
type SearchQueryCollector struct {
	source QueryStatsSource
	topN   int
}

// NewSearchQueryCollector creates a collector exporting at most topN queries
// per outcome. A non-positive topN means DefaultTopQueries.
func NewSearchQueryCollector(source QueryStatsSource, topN int) *SearchQueryCollector {
	if topN <= 0 {
		topN = DefaultTopQueries
	}
	return &SearchQueryCollector{source: source, topN: topN}
}

// Describe sends the metric descriptor to the channel.
func (c *SearchQueryCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- searchQueryDesc
}

// Collect emits the top queries for each outcome as counters.
func (c *SearchQueryCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, outcome := range []string{models.OutcomeHit, models.OutcomeMiss} {
		stats, err := c.source.GetTopSearchQueries(ctx, outcome, c.topN)
		if err != nil {
			slog.Error("failed to collect search query metrics", "outcome", outcome, "error", err)
			continue
		}
		for _, s := range stats {
			ch <- prometheus.MustNewConstMetric(
				searchQueryDesc,
				prometheus.CounterValue,
				float64(s.Count),
				s.Query,
				s.Outcome,
			)
		}
	}
}

var initOnce sync.Once

// Init registers the collectors with the default registry. source may be nil
// when no database is configured; topN bounds the per-outcome query series.
// Must be called once at startup.
func Init(source QueryStatsSource, topN int) {
	initOnce.Do(func() {
		prometheus.MustRegister(searchRequests, searchDuration)
		if source != nil {
			prometheus.MustRegister(NewSearchQueryCollector(source, topN))
		}
	})
}

// ObserveSearch records one served search.
func ObserveSearch(resultCount int, cached bool, elapsed time.Duration) {
	outcome := models.OutcomeHit
	if resultCount == 0 {
		outcome = models.OutcomeMiss
	}
	c := "false"
	if cached {
		c = "true"
	}
	searchRequests.WithLabelValues(outcome, c).Inc()
	if !cached {
		searchDuration.Observe(elapsed.Seconds())
	}
}
