package model

// AccountSummary is the derived headline view of a PEA account: totals from
// the position fold plus the money-weighted annualized return over the full
// transaction history. AnnualizedReturn is nil when the rate could not be
// computed (degenerate cash flows or no convergence); a nil rate is
// observationally different from a true 0% return and must stay that way.
type AccountSummary struct {
	AccountID        string   `json:"accountId"`
	TotalInvested    float64  `json:"totalInvested"`
	CurrentValue     float64  `json:"currentValue"`
	TotalGainLoss    float64  `json:"totalGainLoss"`
	AnnualizedReturn *float64 `json:"annualizedReturn"`
}

// AccountValuation is the unified per-account view used by the net-worth
// aggregation. Each account type has its own valuation strategy; IsEstimated
// is true when the value was extrapolated from the last snapshot rather than
// observed.
type AccountValuation struct {
	AccountID        string  `json:"accountId"`
	AccountName      string  `json:"accountName"`
	AccountType      string  `json:"accountType"`
	CurrentValue     float64 `json:"currentValue"`
	TotalContributed float64 `json:"totalContributed"`
	TotalGainLoss    float64 `json:"totalGainLoss"`
	GainLossPct      float64 `json:"gainLossPct"`
	LastUpdated      string  `json:"lastUpdated"`
	IsEstimated      bool    `json:"isEstimated"`
}

// NetWorthSummary is the sum of all account valuations.
type NetWorthSummary struct {
	Total    float64            `json:"total"`
	Accounts []AccountValuation `json:"accounts"`
}
