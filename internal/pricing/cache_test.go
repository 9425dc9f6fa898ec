package pricing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mlefevre/savings-tracker-backend/internal/model"
)

// countingProvider records how many live lookups were made per ticker.
type countingProvider struct {
	price float64
	err   error
	calls map[string]int
}

func (p *countingProvider) CurrentPrice(_ context.Context, ticker string) (float64, error) {
	if p.calls == nil {
		p.calls = make(map[string]int)
	}
	p.calls[ticker]++
	if p.err != nil {
		return 0, p.err
	}
	return p.price, nil
}

func (p *countingProvider) History(_ context.Context, _ string, _, _ time.Time) ([]model.PricePoint, error) {
	return nil, nil
}

// WHY: repeated lookups within the TTL must be served from the cache so a
// single page load does not hammer the external API once per position.
func TestCache_ServesFreshEntries(t *testing.T) {
	provider := &countingProvider{price: 42.5}
	cache := NewCache(provider, time.Minute)

	clock := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return clock }

	for i := 0; i < 3; i++ {
		price, err := cache.CurrentPrice(context.Background(), "CW8.PA")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if price != 42.5 {
			t.Errorf("expected price 42.5, got %v", price)
		}
	}

	if provider.calls["CW8.PA"] != 1 {
		t.Errorf("expected 1 provider call, got %d", provider.calls["CW8.PA"])
	}
}

// WHY: a stale entry must trigger a fresh lookup, otherwise valuations would
// keep showing an old price indefinitely.
func TestCache_RefetchesAfterTTL(t *testing.T) {
	provider := &countingProvider{price: 42.5}
	cache := NewCache(provider, time.Minute)

	clock := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return clock }

	if _, err := cache.CurrentPrice(context.Background(), "CW8.PA"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	clock = clock.Add(time.Minute + time.Second)
	provider.price = 43.1

	price, err := cache.CurrentPrice(context.Background(), "CW8.PA")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if price != 43.1 {
		t.Errorf("expected refreshed price 43.1, got %v", price)
	}
	if provider.calls["CW8.PA"] != 2 {
		t.Errorf("expected 2 provider calls, got %d", provider.calls["CW8.PA"])
	}
}

// WHY: provider failures must not be memoized, so the next request retries
// instead of serving a cached error state.
func TestCache_DoesNotCacheFailures(t *testing.T) {
	provider := &countingProvider{err: errors.New("network down")}
	cache := NewCache(provider, time.Minute)

	clock := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return clock }

	if _, err := cache.CurrentPrice(context.Background(), "CW8.PA"); err == nil {
		t.Fatal("expected error from failing provider")
	}

	provider.err = nil
	provider.price = 40.0

	price, err := cache.CurrentPrice(context.Background(), "CW8.PA")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if price != 40.0 {
		t.Errorf("expected price 40.0, got %v", price)
	}
	if provider.calls["CW8.PA"] != 2 {
		t.Errorf("expected 2 provider calls, got %d", provider.calls["CW8.PA"])
	}
}

// WHY: tickers are cached independently, one entry must never answer for
// another symbol.
func TestCache_EntriesPerTicker(t *testing.T) {
	provider := &countingProvider{price: 10.0}
	cache := NewCache(provider, time.Minute)

	clock := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return clock }

	if _, err := cache.CurrentPrice(context.Background(), "CW8.PA"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := cache.CurrentPrice(context.Background(), "ESE.PA"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if provider.calls["CW8.PA"] != 1 || provider.calls["ESE.PA"] != 1 {
		t.Errorf("expected one call per ticker, got %v", provider.calls)
	}
}
