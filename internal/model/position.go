package model

// Position is a derived per-instrument aggregate within an account. It is
// never persisted; it is rebuilt from the full transaction ledger plus a
// current-price lookup every time it is requested.
type Position struct {
	Ticker                string  `json:"ticker"`
	Isin                  string  `json:"isin"`
	Name                  string  `json:"name"`
	Quantity              float64 `json:"quantity"`
	AverageCost           float64 `json:"averageCost"`
	TotalInvested         float64 `json:"totalInvested"`
	CurrentPrice          float64 `json:"currentPrice"`
	CurrentValue          float64 `json:"currentValue"`
	UnrealizedGainLoss    float64 `json:"unrealizedGainLoss"`
	UnrealizedGainLossPct float64 `json:"unrealizedGainLossPct"`
}
