package testutil

import (
	"context"
	"time"

	"github.com/mlefevre/savings-tracker-backend/internal/model"
)

// MockPriceProvider is a pricing.Provider that serves canned prices per
// ticker, for exercising valuation and summary code without network access.
type MockPriceProvider struct {
	// Prices maps ticker to the current price to serve.
	Prices map[string]float64
	// Err, when set, is returned from every lookup.
	Err error
	// CallCount tracks how many lookups were made.
	CallCount int
}

// NewMockPriceProvider creates a mock provider serving the given prices.
func NewMockPriceProvider(prices map[string]float64) *MockPriceProvider {
	return &MockPriceProvider{Prices: prices}
}

// CurrentPrice returns the canned price for the ticker, or Err if configured.
func (m *MockPriceProvider) CurrentPrice(_ context.Context, ticker string) (float64, error) {
	m.CallCount++
	if m.Err != nil {
		return 0, m.Err
	}
	price, ok := m.Prices[ticker]
	if !ok {
		return 0, errNoPrice(ticker)
	}
	return price, nil
}

// History returns a flat two-point series at the canned price.
func (m *MockPriceProvider) History(_ context.Context, ticker string, from, to time.Time) ([]model.PricePoint, error) {
	m.CallCount++
	if m.Err != nil {
		return nil, m.Err
	}
	price, ok := m.Prices[ticker]
	if !ok {
		return nil, errNoPrice(ticker)
	}
	return []model.PricePoint{
		{Date: from, Price: price},
		{Date: to, Price: price},
	}, nil
}

type errNoPrice string

func (e errNoPrice) Error() string {
	return "no mock price for " + string(e)
}
