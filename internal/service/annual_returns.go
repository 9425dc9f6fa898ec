package service

import (
	"time"

	"github.com/mlefevre/savings-tracker-backend/internal/model"
	"github.com/mlefevre/savings-tracker-backend/internal/returns"
)

// AnnualReturns slices the full transaction and valuation history into
// calendar-year windows and computes a money-weighted return for each.
//
// One row is produced for every year from the first transaction's year
// through now's year, in ascending order. For each year Y:
//
//   - endValue is the user-entered annual value for Y; for the current year
//     without one, the live currentValue. Otherwise it stays nil: the year is
//     still listed, a gap is valid output.
//   - startValue is the prior year's annual value, or 0 for the first year of
//     activity. An unresolvable start value leaves the rate nil rather than
//     fabricating a 0 opening for an account that already held assets.
//   - The flow set is a synthetic outflow of startValue on Jan 1, every
//     transaction inside the window as a signed flow (buys negative,
//     everything else positive, per the totalAmount convention), and a
//     synthetic inflow of endValue on Dec 31 (or today for the current year).
//
// A year whose flow set is degenerate or fails to converge gets a nil rate;
// one bad year never aborts the series. The computation carries no state
// between calls.
func AnnualReturns(transactions []model.Transaction, annualValues []model.AnnualValue, currentValue float64, now time.Time) []model.AnnualReturn {
	if len(transactions) == 0 {
		return []model.AnnualReturn{}
	}

	firstYear := transactions[0].Date.Year()
	for _, t := range transactions[1:] {
		if y := t.Date.Year(); y < firstYear {
			firstYear = y
		}
	}
	currentYear := now.Year()

	valueByYear := make(map[int]float64, len(annualValues))
	for _, v := range annualValues {
		valueByYear[v.Year] = v.EndValue
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	results := make([]model.AnnualReturn, 0, currentYear-firstYear+1)
	for year := firstYear; year <= currentYear; year++ {
		row := model.AnnualReturn{Year: year}

		endValue, haveEnd := valueByYear[year]
		if !haveEnd && year == currentYear {
			endValue, haveEnd = currentValue, true
		}
		if haveEnd {
			row.EndValue = floatPtr(endValue)
		}

		var startValue float64
		haveStart := year == firstYear
		if !haveStart {
			startValue, haveStart = valueByYear[year-1]
		}

		if haveEnd && haveStart {
			windowStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
			windowEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
			if year == currentYear {
				windowEnd = today
			}

			flows := []returns.CashFlow{{Amount: -startValue, When: windowStart}}
			for _, t := range transactions {
				if t.Date.Before(windowStart) || t.Date.After(windowEnd) {
					continue
				}
				amount := t.TotalAmount
				if t.Type == model.TransactionBuy {
					amount = -amount
				}
				flows = append(flows, returns.CashFlow{Amount: amount, When: t.Date})
			}
			flows = append(flows, returns.CashFlow{Amount: endValue, When: windowEnd})

			if rate, err := returns.Rate(flows); err == nil {
				row.Rate = floatPtr(rate)
			}
		}

		results = append(results, row)
	}

	return results
}
