// Package returns computes money-weighted annualized returns (XIRR) over
// irregular, dated cash-flow streams.
//
// Sign convention: money committed (a purchase, an opening valuation) is
// negative; money received (a sale, a dividend, the terminal valuation) is
// positive.
package returns

import (
	"sort"
	"time"
)

// CashFlow is a signed amount of money moving on a calendar date.
type CashFlow struct {
	Amount float64
	When   time.Time
}

// daysPerYear is the day-count convention for annualization: actual days
// divided by 365.0. This must not change; switching to 365.25 or
// actual/actual would shift every displayed percentage.
const daysPerYear = 365.0

// Years returns the actual/365 year fraction between two dates.
func Years(from, to time.Time) float64 {
	return to.Sub(from).Hours() / 24 / daysPerYear
}

// sortedCopy returns the flows sorted by date, earliest first. Sorting is
// stable so that same-day flows keep their input order; summation order
// affects the residual at the margins and results must be reproducible
// across runs.
func sortedCopy(flows []CashFlow) []CashFlow {
	sorted := make([]CashFlow, len(flows))
	copy(sorted, flows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].When.Before(sorted[j].When)
	})
	return sorted
}
