package pricing

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mlefevre/savings-tracker-backend/internal/apperrors"
	"github.com/mlefevre/savings-tracker-backend/internal/model"
)

// scriptedProvider serves canned answers and records history calls.
type scriptedProvider struct {
	price        float64
	err          error
	history      []model.PricePoint
	historyCalls int
}

func (p *scriptedProvider) CurrentPrice(_ context.Context, _ string) (float64, error) {
	if p.err != nil {
		return 0, p.err
	}
	return p.price, nil
}

func (p *scriptedProvider) History(_ context.Context, _ string, _, _ time.Time) ([]model.PricePoint, error) {
	p.historyCalls++
	return p.history, p.err
}

// fakeStore is an in-memory Store keyed by ticker. Upserts arrive from the
// refresh fan-out, so writes are locked.
type fakeStore struct {
	mu   sync.Mutex
	rows map[string][]model.PricePoint
}

func (s *fakeStore) GetLatestPrice(ticker string) (model.AssetPrice, error) {
	points := s.rows[ticker]
	if len(points) == 0 {
		return model.AssetPrice{}, apperrors.ErrPriceNotFound
	}
	latest := points[0]
	for _, p := range points[1:] {
		if p.Date.After(latest.Date) {
			latest = p
		}
	}
	return model.AssetPrice{Ticker: ticker, Date: latest.Date, Price: latest.Price}, nil
}

func (s *fakeStore) GetPriceHistory(ticker string, from, to time.Time) ([]model.PricePoint, error) {
	points := []model.PricePoint{}
	for _, p := range s.rows[ticker] {
		if p.Date.Before(from) || p.Date.After(to) {
			continue
		}
		points = append(points, p)
	}
	return points, nil
}

func (s *fakeStore) UpsertPrice(_ context.Context, ticker string, date time.Time, price float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rows == nil {
		s.rows = make(map[string][]model.PricePoint)
	}
	s.rows[ticker] = append(s.rows[ticker], model.PricePoint{Date: date, Price: price})
	return nil
}

// WHY: the history endpoint serves the series the scheduler accumulated; the
// live provider must not be consulted when stored rows cover the request.
func TestService_HistoryPrefersStoredRows(t *testing.T) {
	stored := []model.PricePoint{
		{Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), Price: 100},
		{Date: time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), Price: 101},
	}
	provider := &scriptedProvider{history: []model.PricePoint{{Price: 999}}}
	service := NewService(provider, &fakeStore{rows: map[string][]model.PricePoint{"CW8.PA": stored}})

	points, err := service.History(context.Background(),
		"CW8.PA", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(points) != 2 || points[0].Price != 100 || points[1].Price != 101 {
		t.Errorf("expected the stored series, got %+v", points)
	}
	if provider.historyCalls != 0 {
		t.Errorf("expected no provider history call, got %d", provider.historyCalls)
	}
}

// WHY: a ticker the scheduler has not picked up yet still deserves an answer,
// so an empty store falls back to the live provider.
func TestService_HistoryFallsBackToProvider(t *testing.T) {
	provider := &scriptedProvider{history: []model.PricePoint{
		{Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), Price: 42},
	}}
	service := NewService(provider, &fakeStore{})

	points, err := service.History(context.Background(),
		"NEW.PA", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(points) != 1 || points[0].Price != 42 {
		t.Errorf("expected the provider series, got %+v", points)
	}
	if provider.historyCalls != 1 {
		t.Errorf("expected 1 provider history call, got %d", provider.historyCalls)
	}
}

// WHY: when the live provider is down, valuations keep working from the last
// stored price instead of zeroing every position.
func TestService_CurrentPriceFallsBackToStore(t *testing.T) {
	provider := &scriptedProvider{err: errors.New("network down")}
	store := &fakeStore{rows: map[string][]model.PricePoint{
		"CW8.PA": {{Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), Price: 99}},
	}}
	service := NewService(provider, store)

	price, err := service.CurrentPrice(context.Background(), "CW8.PA")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if price != 99 {
		t.Errorf("expected stored price 99, got %v", price)
	}
}

// WHY: each scheduled run appends a dated row per ticker, growing the stored
// series the history endpoint serves.
func TestService_RefreshStoredAppendsDatedRows(t *testing.T) {
	provider := &scriptedProvider{price: 50}
	store := &fakeStore{}
	service := NewService(provider, store)

	updated, err := service.RefreshStored(context.Background(), []string{"CW8.PA", "ESE.PA"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated != 2 {
		t.Errorf("expected 2 tickers refreshed, got %d", updated)
	}

	for _, ticker := range []string{"CW8.PA", "ESE.PA"} {
		rows := store.rows[ticker]
		if len(rows) != 1 {
			t.Fatalf("expected 1 stored row for %s, got %d", ticker, len(rows))
		}
		if rows[0].Price != 50 || rows[0].Date.IsZero() {
			t.Errorf("expected dated row at price 50 for %s, got %+v", ticker, rows[0])
		}
	}
}
