package jobs

import (
	"context"
	"log"
	"time"
)

// missedSearchLimit is the number of queries included in a digest.
const missedSearchLimit = 20

// MissedSearchNotifier sends the missed-search digest. *email.Notifier implements it.
type MissedSearchNotifier interface {
	NotifyMissedSearches(ctx context.Context, limit int)
}

// MissedSearchReporter periodically emails moderators the searches that
// found no FAQ answer.
type MissedSearchReporter struct {
	notifier MissedSearchNotifier
	interval time.Duration
}

// NewMissedSearchReporter creates a new missed search reporter.
func NewMissedSearchReporter(notifier MissedSearchNotifier, interval time.Duration) *MissedSearchReporter {
	return &MissedSearchReporter{notifier: notifier, interval: interval}
}

// Start runs the report loop until ctx is cancelled.
func (r *MissedSearchReporter) Start(ctx context.Context) {
	if r.interval <= 0 {
		log.Println("Missed search reporter disabled")
		return
	}
	log.Printf("Missed search reporter started (interval: %v)", r.interval)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Missed search reporter stopped")
			return
		case <-ticker.C:
			r.notifier.NotifyMissedSearches(ctx, missedSearchLimit)
		}
	}
}
