package model

import "time"

// PricePoint is one point of a historical price series for a ticker.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Price float64   `json:"price"`
}

// AssetPrice represents the stored latest price for a ticker, refreshed by
// the price scheduler and served to clients for sparklines and valuations.
type AssetPrice struct {
	ID          string    `json:"id"`
	Ticker      string    `json:"ticker"`
	Date        time.Time `json:"date"`
	Price       float64   `json:"price"`
	LastUpdated time.Time `json:"lastUpdated"`
}
