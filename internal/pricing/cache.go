package pricing

import (
	"context"
	"sync"
	"time"

	"github.com/mlefevre/savings-tracker-backend/internal/model"
)

// Cache is a time-boxed memoization wrapper around a Provider. It is an
// explicit, injectable collaborator rather than package-level state, so the
// calculation code stays pure and tests never need to flush a global.
//
// Only current prices are cached; history queries pass through.
type Cache struct {
	provider Provider
	ttl      time.Duration
	now      func() time.Time

	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	price     float64
	fetchedAt time.Time
}

// NewCache wraps a Provider with a TTL cache. A ttl of zero disables caching.
func NewCache(provider Provider, ttl time.Duration) *Cache {
	return &Cache{
		provider: provider,
		ttl:      ttl,
		now:      time.Now,
		entries:  make(map[string]cacheEntry),
	}
}

// CurrentPrice returns the cached price for a ticker when the entry is still
// fresh, otherwise asks the wrapped provider. Provider failures are not
// cached.
func (c *Cache) CurrentPrice(ctx context.Context, ticker string) (float64, error) {
	c.mu.Lock()
	entry, ok := c.entries[ticker]
	fresh := ok && c.now().Sub(entry.fetchedAt) < c.ttl
	c.mu.Unlock()

	if fresh {
		return entry.price, nil
	}

	// Concurrent misses on the same ticker each hit the provider and the
	// last write wins. No request coalescing: at a handful of tickers per
	// account the duplicate fetch is cheaper than the machinery.
	price, err := c.provider.CurrentPrice(ctx, ticker)
	if err != nil {
		return 0, err
	}

	c.mu.Lock()
	c.entries[ticker] = cacheEntry{price: price, fetchedAt: c.now()}
	c.mu.Unlock()

	return price, nil
}

// History passes through to the wrapped provider.
func (c *Cache) History(ctx context.Context, ticker string, from, to time.Time) ([]model.PricePoint, error) {
	return c.provider.History(ctx, ticker, from, to)
}
