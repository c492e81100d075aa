package search

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"tutorsite/internal/models"
)

// DefaultDebounce is the input quiet period before a search runs.
const DefaultDebounce = 300 * time.Millisecond

// SearchFunc runs one settled query. It should return promptly when ctx is cancelled.
type SearchFunc func(ctx context.Context, query string) ([]models.ScoredResult, error)

// Update is delivered for every settled or cleared query.
type Update struct {
	Query      string
	Generation uint64
	Results    []models.ScoredResult
	Cleared    bool
}

// Controller debounces query input. Every Input starts a new generation;
// only the result of the current generation is delivered, so a slow search
// for an old query never overwrites a newer one.
type Controller struct {
	search   SearchFunc
	onUpdate func(Update)
	delay    time.Duration

	// deliver orders updates so a cleared list is never followed by a stale one.
	deliver sync.Mutex

	mu     sync.Mutex
	gen    uint64
	timer  *time.Timer
	cancel context.CancelFunc
	closed bool
}

// NewController returns a controller calling search after delay of input
// quiet and onUpdate with each delivered update. A zero delay uses DefaultDebounce.
func NewController(search SearchFunc, onUpdate func(Update), delay time.Duration) *Controller {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Controller{search: search, onUpdate: onUpdate, delay: delay}
}

// Input records a new query value. An empty value clears immediately.
func (c *Controller) Input(query string) {
	if strings.TrimSpace(query) == "" {
		c.Clear()
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	c.gen++
	c.stopLocked()
	gen := c.gen
	c.timer = time.AfterFunc(c.delay, func() { c.fire(gen, query) })
}

// Clear cancels pending and in-flight searches and delivers an empty update.
// It must not be called from onUpdate.
func (c *Controller) Clear() {
	c.deliver.Lock()
	defer c.deliver.Unlock()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.gen++
	c.stopLocked()
	gen := c.gen
	c.mu.Unlock()

	c.onUpdate(Update{Generation: gen, Results: []models.ScoredResult{}, Cleared: true})
}

// Close cancels outstanding work. No updates are delivered afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.stopLocked()
	c.closed = true
}

// Generation returns the current input generation.
func (c *Controller) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

func (c *Controller) stopLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Controller) fire(gen uint64, query string) {
	c.mu.Lock()
	if c.closed || gen != c.gen {
		c.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.timer = nil
	c.mu.Unlock()
	defer cancel()

	results, err := c.search(ctx, query)
	if err != nil {
		slog.Warn("search failed", "query", query, "error", err)
		results = []models.ScoredResult{}
	}

	c.deliver.Lock()
	defer c.deliver.Unlock()

	c.mu.Lock()
	if c.closed || gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.cancel = nil
	c.mu.Unlock()

	c.onUpdate(Update{Query: query, Generation: gen, Results: results})
}
