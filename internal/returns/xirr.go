package returns

import (
	"fmt"
	"math"

	"github.com/mlefevre/savings-tracker-backend/internal/apperrors"
)

const (
	// maxIterations bounds the root-finding loop, and with it the latency of
	// a single Rate call.
	maxIterations = 100

	// tolerance is the absolute residual below which the rate is accepted.
	tolerance = 1e-6

	// minRate is the lower bound of the solution domain. Rates at or below
	// -100% are not meaningful for a cash-flow stream.
	minRate = -1 + 1e-6

	// initialGuess seeds the Newton iteration. 10% is close enough to any
	// realistic portfolio return for quadratic convergence.
	initialGuess = 0.1
)

// NoConvergenceError reports that the root-finder exhausted its iteration
// budget. It carries the last residual for diagnostics and unwraps to
// apperrors.ErrNoConvergence. Callers must treat it as "rate unknown", not
// as a zero return.
type NoConvergenceError struct {
	Iterations int
	Residual   float64
}

func (e *NoConvergenceError) Error() string {
	return fmt.Sprintf("%v after %d iterations (residual %g)", apperrors.ErrNoConvergence, e.Iterations, e.Residual)
}

func (e *NoConvergenceError) Unwrap() error { return apperrors.ErrNoConvergence }

// Rate computes the annualized internal rate of return for a set of dated
// cash flows: the rate r for which the sum of amount/(1+r)^years over all
// flows is zero, with years counted actual/365 from the earliest flow date.
//
// The flow set must contain at least two flows, at least one strictly
// negative and one strictly positive amount, and at least two distinct dates;
// otherwise the rate is mathematically undefined and Rate fails with
// apperrors.ErrDegenerateCashflows. If the iteration budget runs out the
// result is a *NoConvergenceError.
//
// A returned rate of 0.084 means 8.4% per year.
func Rate(flows []CashFlow) (float64, error) {
	if err := validate(flows); err != nil {
		return 0, err
	}

	sorted := sortedCopy(flows)
	t0 := sorted[0].When

	amounts := make([]float64, len(sorted))
	years := make([]float64, len(sorted))
	for i, f := range sorted {
		amounts[i] = f.Amount
		years[i] = Years(t0, f.When)
	}

	// Net present value of the flow set at rate r, and its derivative.
	npv := func(r float64) float64 {
		var sum float64
		for i := range amounts {
			sum += amounts[i] / math.Pow(1+r, years[i])
		}
		return sum
	}
	npvPrime := func(r float64) float64 {
		var sum float64
		for i := range amounts {
			sum -= years[i] * amounts[i] / math.Pow(1+r, years[i]+1)
		}
		return sum
	}

	rate := initialGuess
	residual := npv(rate)

	for i := 0; i < maxIterations; i++ {
		if math.Abs(residual) < tolerance {
			return rate, nil
		}

		next := rate - residual/npvPrime(rate)
		switch {
		case math.IsNaN(next) || math.IsInf(next, 0):
			// Derivative vanished or overflowed; restart from a damped step.
			next = (rate + initialGuess) / 2
		case next <= minRate:
			// Newton overshot the domain; damp towards the -100% bound
			// instead of leaving it.
			next = (rate + minRate) / 2
		}

		rate = next
		residual = npv(rate)
	}

	if math.Abs(residual) < tolerance {
		return rate, nil
	}

	// Newton failed; bisection is slower but unconditionally stable when a
	// sign change brackets the root.
	if rate, ok := bisect(npv); ok {
		return rate, nil
	}

	return 0, &NoConvergenceError{Iterations: maxIterations, Residual: residual}
}

// validate rejects cash-flow sets for which a rate is undefined.
func validate(flows []CashFlow) error {
	if len(flows) < 2 {
		return fmt.Errorf("%w: need at least 2 flows, got %d", apperrors.ErrDegenerateCashflows, len(flows))
	}

	var hasPositive, hasNegative bool
	for _, f := range flows {
		if f.Amount > 0 {
			hasPositive = true
		}
		if f.Amount < 0 {
			hasNegative = true
		}
	}
	if !hasPositive || !hasNegative {
		return fmt.Errorf("%w: flows must include at least one inflow and one outflow", apperrors.ErrDegenerateCashflows)
	}

	first, last := flows[0].When, flows[0].When
	for _, f := range flows[1:] {
		if f.When.Before(first) {
			first = f.When
		}
		if f.When.After(last) {
			last = f.When
		}
	}
	if !last.After(first) {
		return fmt.Errorf("%w: flows span zero time", apperrors.ErrDegenerateCashflows)
	}

	return nil
}

// bisect searches for a sign change of f over (minRate, hi] with hi growing
// geometrically, then halves the bracket until the residual is inside
// tolerance. Returns false when no bracket exists or the iteration budget is
// spent.
func bisect(f func(float64) float64) (float64, bool) {
	lo, hi := minRate, 1.0
	flo := f(lo)
	fhi := f(hi)
	for i := 0; flo*fhi > 0 && i < 60; i++ {
		hi *= 2
		fhi = f(hi)
	}
	if flo*fhi > 0 {
		return 0, false
	}

	for i := 0; i < maxIterations; i++ {
		mid := (lo + hi) / 2
		fmid := f(mid)
		if math.Abs(fmid) < tolerance {
			return mid, true
		}
		if flo*fmid < 0 {
			hi = mid
		} else {
			lo, flo = mid, fmid
		}
	}
	return 0, false
}
