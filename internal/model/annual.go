package model

// AnnualValue is a user-entered year-end valuation for an account. It is an
// anchor point for windowed return calculation, never derived.
type AnnualValue struct {
	AccountID string  `json:"accountId"`
	Year      int     `json:"year"`
	EndValue  float64 `json:"endValue"`
}

// AnnualReturn is one row of the per-calendar-year return series. EndValue
// and Rate are nil when they could not be resolved for that year; a gap is
// valid output, not an error, and serializes as JSON null so the presentation
// layer can render "N/A" instead of a misleading 0%.
type AnnualReturn struct {
	Year     int      `json:"year"`
	EndValue *float64 `json:"endValue"`
	Rate     *float64 `json:"rate"`
}
