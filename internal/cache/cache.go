// Package cache stores rendered search responses keyed by normalized query
// and filters.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"tutorsite/internal/models"
)

// Cache is a search response cache. Implementations must be safe for
// concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (models.SearchResponse, bool)
	Set(ctx context.Context, key string, resp models.SearchResponse)
}

// Key builds the cache key for a normalized query and its filters.
func Key(query string, f models.SearchFilters) string {
	featured := ""
	if f.Featured != nil {
		featured = strconv.FormatBool(*f.Featured)
	}
	return strings.Join([]string{
		"search",
		query,
		f.Category,
		f.Difficulty,
		f.ClientSegment,
		featured,
		strconv.Itoa(f.Limit),
		strconv.Itoa(f.Offset),
	}, "|")
}

// LRU is an in-process cache with per-entry expiry.
type LRU struct {
	lru *expirable.LRU[string, models.SearchResponse]
}

// NewLRU creates an LRU cache holding at most size responses for ttl.
func NewLRU(size int, ttl time.Duration) *LRU {
	if size <= 0 {
		size = 512
	}
	return &LRU{lru: expirable.NewLRU[string, models.SearchResponse](size, nil, ttl)}
}

func (c *LRU) Get(_ context.Context, key string) (models.SearchResponse, bool) {
	return c.lru.Get(key)
}

func (c *LRU) Set(_ context.Context, key string, resp models.SearchResponse) {
	c.lru.Add(key, resp)
}

// Len returns the number of cached responses.
func (c *LRU) Len() int {
	return c.lru.Len()
}

// Store is the subset of fiber.Storage the shared cache needs.
// github.com/gofiber/storage/redis/v3 satisfies it.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, val []byte, exp time.Duration) error
}

// Shared caches JSON-encoded responses in a fiber storage backend so that
// every instance behind a load balancer sees the same entries.
type Shared struct {
	store  Store
	ttl    time.Duration
	prefix string
}

// NewShared creates a cache over store.
func NewShared(store Store, ttl time.Duration) *Shared {
	return &Shared{store: store, ttl: ttl, prefix: "tutorsite:"}
}

func (c *Shared) Get(_ context.Context, key string) (models.SearchResponse, bool) {
	var resp models.SearchResponse
	data, err := c.store.Get(c.prefix + key)
	if err != nil {
		slog.Warn("search cache read failed", "key", key, "error", err)
		return resp, false
	}
	if len(data) == 0 {
		return resp, false
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		slog.Warn("search cache entry corrupt", "key", key, "error", err)
		return resp, false
	}
	return resp, true
}

func (c *Shared) Set(_ context.Context, key string, resp models.SearchResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		slog.Warn("search cache encode failed", "key", key, "error", err)
		return
	}
	if err := c.store.Set(c.prefix+key, data, c.ttl); err != nil {
		slog.Warn("search cache write failed", "key", key, "error", fmt.Errorf("set: %w", err))
	}
}
