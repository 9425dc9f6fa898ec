package returns

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/mlefevre/savings-tracker-backend/internal/apperrors"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TestRate_KnownCases tests the engine against hand-checkable flow sets.
//
// WHY: The displayed annualized return comes straight out of this function;
// a drift in the day-count convention or the solver would silently change
// every percentage shown to the user.
func TestRate_KnownCases(t *testing.T) {
	t.Run("1000 invested, 1100 back after exactly one year is 10%", func(t *testing.T) {
		flows := []CashFlow{
			{Amount: -1000, When: date(2023, 1, 1)},
			{Amount: 1100, When: date(2024, 1, 1)},
		}

		rate, err := Rate(flows)
		if err != nil {
			t.Fatalf("Rate() returned unexpected error: %v", err)
		}
		if math.Abs(rate-0.10) > 1e-4 {
			t.Errorf("Rate() = %v, want 0.10 within 1e-4", rate)
		}
	})

	t.Run("20 percent loss over one year", func(t *testing.T) {
		flows := []CashFlow{
			{Amount: -1000, When: date(2023, 1, 1)},
			{Amount: 800, When: date(2024, 1, 1)},
		}

		rate, err := Rate(flows)
		if err != nil {
			t.Fatalf("Rate() returned unexpected error: %v", err)
		}
		if math.Abs(rate-(-0.20)) > 1e-4 {
			t.Errorf("Rate() = %v, want -0.20 within 1e-4", rate)
		}
	})

	t.Run("six month gain annualizes with actual/365 day count", func(t *testing.T) {
		start := date(2023, 1, 1)
		end := date(2023, 7, 2) // 182 days
		flows := []CashFlow{
			{Amount: -1000, When: start},
			{Amount: 1050, When: end},
		}

		rate, err := Rate(flows)
		if err != nil {
			t.Fatalf("Rate() returned unexpected error: %v", err)
		}

		// 5% over 182/365 of a year: (1.05)^(365/182) - 1
		want := math.Pow(1.05, 365.0/182.0) - 1
		if math.Abs(rate-want) > 1e-4 {
			t.Errorf("Rate() = %v, want %v within 1e-4", rate, want)
		}
	})

	t.Run("multiple dated flows solve the NPV equation", func(t *testing.T) {
		t0 := date(2022, 1, 1)
		flows := []CashFlow{
			{Amount: -1000, When: t0},
			{Amount: -500, When: date(2022, 7, 1)},
			{Amount: 200, When: date(2023, 2, 15)},
			{Amount: 1600, When: date(2024, 1, 1)},
		}

		rate, err := Rate(flows)
		if err != nil {
			t.Fatalf("Rate() returned unexpected error: %v", err)
		}

		// The returned rate must actually zero out the discounted sum.
		var npv float64
		for _, f := range flows {
			npv += f.Amount / math.Pow(1+rate, Years(t0, f.When))
		}
		if math.Abs(npv) > 1e-4 {
			t.Errorf("NPV at returned rate = %v, want ~0", npv)
		}
	})
}

// TestRate_DegenerateInput tests that undefined flow sets fail loudly.
//
// WHY: The previous behavior of reporting 0% for a set with no defined rate
// made "no data" indistinguishable from genuine breakeven. The engine must
// never return a numeric rate for these inputs.
func TestRate_DegenerateInput(t *testing.T) {
	cases := []struct {
		name  string
		flows []CashFlow
	}{
		{"empty", nil},
		{"single flow", []CashFlow{
			{Amount: -1000, When: date(2023, 1, 1)},
		}},
		{"all negative", []CashFlow{
			{Amount: -1000, When: date(2023, 1, 1)},
			{Amount: -500, When: date(2023, 6, 1)},
		}},
		{"all positive", []CashFlow{
			{Amount: 1000, When: date(2023, 1, 1)},
			{Amount: 500, When: date(2023, 6, 1)},
		}},
		{"zero time span", []CashFlow{
			{Amount: -1000, When: date(2023, 1, 1)},
			{Amount: 1100, When: date(2023, 1, 1)},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Rate(tc.flows)
			if !errors.Is(err, apperrors.ErrDegenerateCashflows) {
				t.Errorf("Rate() error = %v, want ErrDegenerateCashflows", err)
			}
		})
	}
}

// TestRate_Reproducible tests that input ordering does not change the result.
//
// WHY: Floating-point summation order affects the residual at the margins;
// the engine sorts flows before iterating so identical flow sets always
// produce bit-identical rates across runs.
func TestRate_Reproducible(t *testing.T) {
	flows := []CashFlow{
		{Amount: -1000, When: date(2022, 1, 1)},
		{Amount: -250, When: date(2022, 9, 10)},
		{Amount: 400, When: date(2023, 3, 5)},
		{Amount: 1200, When: date(2024, 1, 1)},
	}
	shuffled := []CashFlow{flows[2], flows[0], flows[3], flows[1]}

	rate1, err1 := Rate(flows)
	rate2, err2 := Rate(shuffled)
	if err1 != nil || err2 != nil {
		t.Fatalf("Rate() returned unexpected errors: %v, %v", err1, err2)
	}
	if rate1 != rate2 {
		t.Errorf("Rate() not reproducible under input reordering: %v != %v", rate1, rate2)
	}
}

// TestNoConvergenceError tests the error's diagnostics and unwrapping.
//
// WHY: Callers recover from non-convergence with errors.Is against the
// sentinel; the struct must stay compatible with that pattern while keeping
// the residual available for logs.
func TestNoConvergenceError(t *testing.T) {
	err := &NoConvergenceError{Iterations: 100, Residual: 42.5}

	if !errors.Is(err, apperrors.ErrNoConvergence) {
		t.Error("NoConvergenceError does not unwrap to ErrNoConvergence")
	}
	if err.Error() == "" {
		t.Error("NoConvergenceError has empty message")
	}
}
