package jobs

import (
	"context"
	"log"
	"time"

	"tutorsite/internal/analytics"
)

// flushTimeout bounds a single flush, including the final one on shutdown.
const flushTimeout = 10 * time.Second

// AnalyticsFlusher periodically writes aggregated search analytics to the database.
type AnalyticsFlusher struct {
	aggregator *analytics.Aggregator
	sink       analytics.Sink
	interval   time.Duration
}

// NewAnalyticsFlusher creates a new analytics flusher. A non-positive
// interval falls back to one minute.
func NewAnalyticsFlusher(aggregator *analytics.Aggregator, sink analytics.Sink, interval time.Duration) *AnalyticsFlusher {
	if interval <= 0 {
		interval = time.Minute
	}
	return &AnalyticsFlusher{
		aggregator: aggregator,
		sink:       sink,
		interval:   interval,
	}
}

// Start runs the flush loop until ctx is cancelled, then flushes once more.
func (f *AnalyticsFlusher) Start(ctx context.Context) {
	log.Printf("Analytics flusher started (interval: %v)", f.interval)

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// Parent context is gone; use a fresh one for the last flush
			f.flush(context.Background())
			log.Println("Analytics flusher stopped")
			return
		case <-ticker.C:
			f.flush(ctx)
		}
	}
}

// flush writes pending events, logging rather than returning failures.
func (f *AnalyticsFlusher) flush(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, flushTimeout)
	defer cancel()

	n, err := f.aggregator.Flush(ctx, f.sink)
	if err != nil {
		log.Printf("Analytics flusher: failed to flush: %v", err)
		return
	}
	if n > 0 {
		log.Printf("Analytics flusher: flushed %d search events", n)
	}
}
