package analytics

import (
	"context"
	"sort"
	"strings"
	"sync"

	"tutorsite/internal/db"
	"tutorsite/internal/models"
)

// Sink persists aggregated counts. *db.DB implements it.
type Sink interface {
	RecordSearchBatch(ctx context.Context, queries []db.QueryOutcomeCount, sessions []db.SessionActivity) error
}

type queryKey struct {
	query   string
	outcome string
}

// Aggregator accumulates search events between flushes. It is safe for
// concurrent use.
type Aggregator struct {
	mu       sync.Mutex
	events   []models.SearchEvent
	queries  map[queryKey]int64
	sessions map[string]*db.SessionActivity
	maxQuery int
}

// New creates an empty aggregator. Queries longer than maxQueryLen runes are
// truncated before counting; zero means no limit.
func New(maxQueryLen int) *Aggregator {
	a := &Aggregator{maxQuery: maxQueryLen}
	a.reset()
	return a
}

func (a *Aggregator) reset() {
	a.events = nil
	a.queries = make(map[queryKey]int64)
	a.sessions = make(map[string]*db.SessionActivity)
}

// Record adds events reported by sessionID. Without a session, events with
// an empty query carry nothing to persist and are ignored.
func (a *Aggregator) Record(sessionID string, events ...models.SearchEvent) {
	if len(events) == 0 {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	var activity *db.SessionActivity
	if sessionID != "" {
		activity = a.sessions[sessionID]
		if activity == nil {
			activity = &db.SessionActivity{SessionID: sessionID}
			a.sessions[sessionID] = activity
		}
	}

	for _, e := range events {
		q := a.normalize(e.Query)
		if q == "" && activity == nil {
			continue
		}
		a.events = append(a.events, e)
		if activity != nil {
			activity.Searches++
			if e.ResultCount == 0 {
				activity.ZeroResults++
			}
			if e.SelectedID != "" {
				activity.Selections++
			}
		}

		if q == "" {
			continue
		}
		a.queries[queryKey{query: q, outcome: e.Outcome()}]++
	}
}

func (a *Aggregator) normalize(query string) string {
	q := strings.ToLower(strings.TrimSpace(query))
	if a.maxQuery > 0 {
		if r := []rune(q); len(r) > a.maxQuery {
			q = string(r[:a.maxQuery])
		}
	}
	return q
}

// Summary summarizes everything recorded since the last flush or reset.
func (a *Aggregator) Summary() models.SearchSummary {
	a.mu.Lock()
	events := make([]models.SearchEvent, len(a.events))
	copy(events, a.events)
	sessions := len(a.sessions)
	a.mu.Unlock()

	s := Summarize(events)
	s.Sessions = sessions
	return s
}

// Pending returns the number of events waiting to be flushed.
func (a *Aggregator) Pending() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.events)
}

// Reset discards everything recorded.
func (a *Aggregator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.reset()
}

// Flush writes the accumulated counts to sink and resets the aggregator.
// On failure the counts are merged back so the next flush retries them.
func (a *Aggregator) Flush(ctx context.Context, sink Sink) (int, error) {
	a.mu.Lock()
	queries := a.queries
	sessions := a.sessions
	events := a.events
	a.reset()
	a.mu.Unlock()

	if len(queries) == 0 && len(sessions) == 0 {
		return 0, nil
	}

	batch := make([]db.QueryOutcomeCount, 0, len(queries))
	for k, n := range queries {
		batch = append(batch, db.QueryOutcomeCount{Query: k.query, Outcome: k.outcome, Count: n})
	}
	sort.Slice(batch, func(i, j int) bool {
		if batch[i].Query != batch[j].Query {
			return batch[i].Query < batch[j].Query
		}
		return batch[i].Outcome < batch[j].Outcome
	})

	activity := make([]db.SessionActivity, 0, len(sessions))
	for _, s := range sessions {
		activity = append(activity, *s)
	}
	sort.Slice(activity, func(i, j int) bool {
		return activity[i].SessionID < activity[j].SessionID
	})

	if err := sink.RecordSearchBatch(ctx, batch, activity); err != nil {
		a.restore(queries, sessions, events)
		return 0, err
	}
	return len(events), nil
}

func (a *Aggregator) restore(queries map[queryKey]int64, sessions map[string]*db.SessionActivity, events []models.SearchEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.events = append(events, a.events...)
	for k, n := range queries {
		a.queries[k] += n
	}
	for id, s := range sessions {
		cur := a.sessions[id]
		if cur == nil {
			a.sessions[id] = s
			continue
		}
		cur.Searches += s.Searches
		cur.ZeroResults += s.ZeroResults
		cur.Selections += s.Selections
	}
}
