// Package pricing resolves current and historical market prices for tickers.
// It wraps the external lookup provider behind a small interface, adds a
// time-boxed cache, and falls back to the last stored price when the live
// provider is unreachable.
package pricing

import (
	"context"
	"fmt"
	"time"

	"github.com/mlefevre/savings-tracker-backend/internal/model"
	"github.com/mlefevre/savings-tracker-backend/internal/yahoo"
)

// Provider is the market price lookup collaborator. Both methods may fail
// (network or lookup error); callers decide how to degrade.
type Provider interface {
	CurrentPrice(ctx context.Context, ticker string) (float64, error)
	History(ctx context.Context, ticker string, from, to time.Time) ([]model.PricePoint, error)
}

// YahooProvider adapts the Yahoo Finance chart client to the Provider interface.
type YahooProvider struct {
	client yahoo.Client
}

// NewYahooProvider creates a Provider backed by the given Yahoo client.
func NewYahooProvider(client yahoo.Client) *YahooProvider {
	return &YahooProvider{client: client}
}

// CurrentPrice returns the most recent closing price for a ticker.
func (p *YahooProvider) CurrentPrice(ctx context.Context, ticker string) (float64, error) {
	result, err := p.client.QueryRecent(ctx, ticker)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch recent prices for %s: %w", ticker, err)
	}

	chart, err := p.client.ParseChart(result)
	if err != nil {
		return 0, fmt.Errorf("failed to parse chart for %s: %w", ticker, err)
	}
	if len(chart.Indicators) == 0 {
		return 0, fmt.Errorf("no price data for %s", ticker)
	}

	return chart.Indicators[len(chart.Indicators)-1].PriceClose, nil
}

// History returns the daily closing price series for a ticker within the
// inclusive date range, ordered ascending by date.
func (p *YahooProvider) History(ctx context.Context, ticker string, from, to time.Time) ([]model.PricePoint, error) {
	result, err := p.client.QueryRange(ctx, ticker, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch price history for %s: %w", ticker, err)
	}

	chart, err := p.client.ParseChart(result)
	if err != nil {
		return nil, fmt.Errorf("failed to parse chart for %s: %w", ticker, err)
	}

	points := make([]model.PricePoint, len(chart.Indicators))
	for i, ind := range chart.Indicators {
		points[i] = model.PricePoint{Date: ind.Date, Price: ind.PriceClose}
	}

	return points, nil
}
