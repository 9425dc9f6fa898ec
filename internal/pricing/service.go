package pricing

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mlefevre/savings-tracker-backend/internal/model"
)

// maxConcurrentLookups bounds the fan-out against the external provider.
const maxConcurrentLookups = 4

// Store persists one dated price row per ticker per day, appended by the
// scheduled refresh. The accumulated rows back the history endpoint and the
// newest row is the fallback when the live provider fails. Implemented by
// repository.PriceRepository.
type Store interface {
	GetLatestPrice(ticker string) (model.AssetPrice, error)
	GetPriceHistory(ticker string, from, to time.Time) ([]model.PricePoint, error)
	UpsertPrice(ctx context.Context, ticker string, date time.Time, price float64) error
}

// Service resolves prices for the valuation layer. A failed or missing price
// is never fatal for an aggregation: the ticker is simply absent from the
// returned map and the position fold values it at 0 with a warning.
type Service struct {
	provider Provider
	store    Store
}

// NewService creates a price Service. The store may be nil, in which case no
// fallback or refresh persistence happens.
func NewService(provider Provider, store Store) *Service {
	return &Service{provider: provider, store: store}
}

// CurrentPrice resolves a single ticker, falling back to the stored price
// when the provider fails.
func (s *Service) CurrentPrice(ctx context.Context, ticker string) (float64, error) {
	price, err := s.provider.CurrentPrice(ctx, ticker)
	if err == nil {
		return price, nil
	}

	if s.store != nil {
		if stored, storeErr := s.store.GetLatestPrice(ticker); storeErr == nil {
			log.Printf("live price lookup for %s failed (%v), using stored price from %s",
				ticker, err, stored.Date.Format("2006-01-02"))
			return stored.Price, nil
		}
	}

	return 0, err
}

// History returns the historical price series for a ticker. Stored rows are
// preferred; the provider only fills in when the store has nothing for the
// range (a ticker the scheduler has not picked up yet).
func (s *Service) History(ctx context.Context, ticker string, from, to time.Time) ([]model.PricePoint, error) {
	if s.store != nil {
		points, err := s.store.GetPriceHistory(ticker, from, to)
		if err != nil {
			log.Printf("stored history lookup for %s failed: %v", ticker, err)
		} else if len(points) > 0 {
			return points, nil
		}
	}

	return s.provider.History(ctx, ticker, from, to)
}

// PricesFor resolves current prices for a set of tickers concurrently.
// Tickers that cannot be resolved are omitted from the map and logged; the
// lookup never fails as a whole.
func (s *Service) PricesFor(ctx context.Context, tickers []string) map[string]float64 {
	prices := make(map[string]float64, len(tickers))

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)

	for _, ticker := range tickers {
		ticker := ticker
		g.Go(func() error {
			price, err := s.CurrentPrice(ctx, ticker)
			if err != nil {
				log.Printf("price lookup for %s failed: %v", ticker, err)
				return nil
			}
			mu.Lock()
			prices[ticker] = price
			mu.Unlock()
			return nil
		})
	}

	// Workers swallow their errors; Wait only synchronizes.
	_ = g.Wait()

	return prices
}

// RefreshStored fetches the current price for every ticker and persists it to
// the store. Returns the number of tickers successfully refreshed.
func (s *Service) RefreshStored(ctx context.Context, tickers []string) (int, error) {
	if s.store == nil {
		return 0, nil
	}

	var mu sync.Mutex
	updated := 0

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)

	for _, ticker := range tickers {
		ticker := ticker
		g.Go(func() error {
			price, err := s.provider.CurrentPrice(ctx, ticker)
			if err != nil {
				log.Printf("price refresh for %s failed: %v", ticker, err)
				return nil
			}
			if err := s.store.UpsertPrice(ctx, ticker, time.Now().UTC(), price); err != nil {
				log.Printf("failed to store refreshed price for %s: %v", ticker, err)
				return nil
			}
			mu.Lock()
			updated++
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return updated, err
	}

	return updated, nil
}
