// Package yahoo is a thin client for the Yahoo Finance chart API, used as
// the market price lookup provider for PEA account valuations.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is the interface exposed to the pricing layer, satisfied by
// FinanceClient and by test mocks.
type Client interface {
	QueryRecent(ctx context.Context, symbol string) (Response, error)
	QueryRange(ctx context.Context, symbol string, startDate, endDate time.Time) (Response, error)
	ParseChart(result Response) (PriceChart, error)
}

// FinanceClient fetches price data from the Yahoo Finance chart API.
type FinanceClient struct {
	httpClient *http.Client
}

// NewFinanceClient creates a Yahoo Finance client with default HTTP settings.
func NewFinanceClient() *FinanceClient {
	return &FinanceClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// QueryRecent fetches the last 5 days of daily price data for a symbol,
// typically to get the latest available closing price.
func (c *FinanceClient) QueryRecent(ctx context.Context, symbol string) (Response, error) {
	url := fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=1d&range=5d", symbol)
	result, err := c.query(ctx, url)
	if err != nil {
		return Response{}, err
	}
	if len(result.Chart.Result) == 0 {
		return Response{}, fmt.Errorf("no results returned for symbol %s", symbol)
	}

	return result, nil
}

// QueryRange fetches daily price data for a symbol within an inclusive date
// range, used for historical series (sparklines, backfills).
func (c *FinanceClient) QueryRange(ctx context.Context, symbol string, startDate, endDate time.Time) (Response, error) {
	url := fmt.Sprintf(
		"https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=1d&period1=%d&period2=%d",
		symbol,
		startDate.Unix(),
		endDate.Unix(),
	)
	result, err := c.query(ctx, url)
	if err != nil {
		return Response{}, err
	}
	if len(result.Chart.Result) == 0 {
		return Response{}, fmt.Errorf("no results returned for symbol %s", symbol)
	}

	return result, nil
}

// ParseChart converts a raw chart response into a structured price chart,
// validating that timestamps and close prices are present and aligned.
func (c *FinanceClient) ParseChart(yahooResult Response) (PriceChart, error) {
	if len(yahooResult.Chart.Result) == 0 {
		return PriceChart{}, fmt.Errorf("empty chart result")
	}
	result := yahooResult.Chart.Result[0]

	if len(result.Timestamp) == 0 {
		return PriceChart{}, fmt.Errorf("no price data returned")
	}
	if len(result.Indicators.Quote) == 0 || len(result.Indicators.Quote[0].Close) == 0 {
		return PriceChart{}, fmt.Errorf("no close prices returned")
	}
	if len(result.Indicators.Quote[0].Close) != len(result.Timestamp) {
		return PriceChart{}, fmt.Errorf("mismatched data lengths")
	}

	indicators := make([]Indicators, len(result.Timestamp))
	for i, v := range result.Timestamp {
		indicators[i].Date = time.Unix(v, 0).UTC()
		indicators[i].PriceOpen = result.Indicators.Quote[0].Open[i]
		indicators[i].PriceClose = result.Indicators.Quote[0].Close[i]
		indicators[i].Volume = result.Indicators.Quote[0].Volume[i]
		indicators[i].PriceHigh = result.Indicators.Quote[0].High[i]
		indicators[i].PriceLow = result.Indicators.Quote[0].Low[i]
	}

	return PriceChart{
		Symbol:           result.Meta.Symbol,
		Currency:         result.Meta.Currency,
		ExchangeName:     result.Meta.ExchangeName,
		FullExchangeName: result.Meta.FullExchangeName,
		LongName:         result.Meta.LongName,
		Shortname:        result.Meta.Shortname,
		Indicators:       indicators,
	}, nil
}

// query executes a chart API request and decodes the response.
func (c *FinanceClient) query(ctx context.Context, url string) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Response{}, err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, err
	}

	var response Response
	if err := json.Unmarshal(data, &response); err != nil {
		return Response{}, err
	}

	if response.Chart.Error != nil {
		return response, fmt.Errorf("yahoo error: %s", *response.Chart.Error)
	}

	return response, nil
}
