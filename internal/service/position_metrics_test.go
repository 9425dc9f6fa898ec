package service_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/mlefevre/savings-tracker-backend/internal/apperrors"
	"github.com/mlefevre/savings-tracker-backend/internal/model"
	"github.com/mlefevre/savings-tracker-backend/internal/service"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func buy(day time.Time, ticker string, qty, price, fees float64) model.Transaction {
	return model.Transaction{
		ID: "tx", Date: day, Type: model.TransactionBuy, Ticker: ticker,
		Quantity: qty, UnitPrice: price, Fees: fees,
		TotalAmount: qty*price + fees,
	}
}

func sell(day time.Time, ticker string, qty, price, fees float64) model.Transaction {
	return model.Transaction{
		ID: "tx", Date: day, Type: model.TransactionSell, Ticker: ticker,
		Quantity: qty, UnitPrice: price, Fees: fees,
		TotalAmount: qty*price - fees,
	}
}

func approx(got, want, tolerance float64) bool {
	return math.Abs(got-want) <= tolerance
}

// TestAggregatePositions_WeightedAverageCost tests the cost basis fold.
//
// WHY: the average cost shown to the user must be the fee-inclusive weighted
// average across buys, not the last price paid.
func TestAggregatePositions_WeightedAverageCost(t *testing.T) {
	transactions := []model.Transaction{
		buy(date(2023, 1, 10), "CW8.PA", 10, 100, 5),  // 1005 invested
		buy(date(2023, 6, 10), "CW8.PA", 10, 120, 5),  // 1205 invested
	}

	positions, err := service.AggregatePositions(transactions, map[string]float64{"CW8.PA": 130})
	if err != nil {
		t.Fatalf("AggregatePositions() returned unexpected error: %v", err)
	}

	if len(positions) != 1 {
		t.Fatalf("Expected 1 position, got %d", len(positions))
	}

	pos := positions[0]
	if pos.Quantity != 20 {
		t.Errorf("Expected quantity 20, got %v", pos.Quantity)
	}
	if !approx(pos.TotalInvested, 2210, 1e-9) {
		t.Errorf("Expected totalInvested 2210, got %v", pos.TotalInvested)
	}
	if !approx(pos.AverageCost, 110.5, 1e-9) {
		t.Errorf("Expected averageCost 110.5, got %v", pos.AverageCost)
	}
	if !approx(pos.CurrentValue, 2600, 1e-9) {
		t.Errorf("Expected currentValue 2600, got %v", pos.CurrentValue)
	}
	if !approx(pos.UnrealizedGainLoss, 390, 1e-9) {
		t.Errorf("Expected unrealized gain 390, got %v", pos.UnrealizedGainLoss)
	}
}

// TestAggregatePositions_SellReducesCostProportionally tests the sale fold.
//
// WHY: selling half the holding must halve the invested amount, keeping the
// average cost of the remainder unchanged. This proportional rule is the
// displayed cost semantics, so it must hold exactly.
func TestAggregatePositions_SellReducesCostProportionally(t *testing.T) {
	transactions := []model.Transaction{
		buy(date(2023, 1, 10), "CW8.PA", 10, 100, 0), // 1000 invested
		sell(date(2023, 7, 10), "CW8.PA", 5, 150, 0),
	}

	positions, err := service.AggregatePositions(transactions, map[string]float64{"CW8.PA": 150})
	if err != nil {
		t.Fatalf("AggregatePositions() returned unexpected error: %v", err)
	}

	pos := positions[0]
	if pos.Quantity != 5 {
		t.Errorf("Expected quantity 5, got %v", pos.Quantity)
	}
	if !approx(pos.TotalInvested, 500, 1e-9) {
		t.Errorf("Expected totalInvested 500 after selling half, got %v", pos.TotalInvested)
	}
	if !approx(pos.AverageCost, 100, 1e-9) {
		t.Errorf("Expected averageCost unchanged at 100, got %v", pos.AverageCost)
	}
}

// TestAggregatePositions_IntegrityViolations tests corrupt ledger rejection.
//
// WHY: a sell against nothing, an oversell, or out-of-order input means the
// stored ledger is wrong; folding through it anyway would display garbage
// numbers. Each case must fail loudly with ErrDataIntegrity.
func TestAggregatePositions_IntegrityViolations(t *testing.T) {
	cases := []struct {
		name         string
		transactions []model.Transaction
	}{
		{
			name: "sell with no holding",
			transactions: []model.Transaction{
				sell(date(2023, 1, 10), "CW8.PA", 5, 100, 0),
			},
		},
		{
			name: "sell exceeds held quantity",
			transactions: []model.Transaction{
				buy(date(2023, 1, 10), "CW8.PA", 5, 100, 0),
				sell(date(2023, 2, 10), "CW8.PA", 6, 100, 0),
			},
		},
		{
			name: "out of order dates",
			transactions: []model.Transaction{
				buy(date(2023, 6, 10), "CW8.PA", 5, 100, 0),
				buy(date(2023, 1, 10), "CW8.PA", 5, 100, 0),
			},
		},
		{
			name: "unknown transaction type",
			transactions: []model.Transaction{
				{ID: "tx", Date: date(2023, 1, 10), Type: "transfer", Ticker: "CW8.PA"},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.AggregatePositions(tc.transactions, nil)
			if !errors.Is(err, apperrors.ErrDataIntegrity) {
				t.Errorf("Expected ErrDataIntegrity, got %v", err)
			}
		})
	}
}

// TestAggregatePositions_SellAllWithinEpsilon tests float tolerance on a full sale.
//
// WHY: after fractional buys the held quantity accumulates float64 noise; a
// sell of the "full" holding must not be rejected over a 1e-12 discrepancy.
func TestAggregatePositions_SellAllWithinEpsilon(t *testing.T) {
	transactions := []model.Transaction{
		buy(date(2023, 1, 10), "CW8.PA", 0.1, 100, 0),
		buy(date(2023, 2, 10), "CW8.PA", 0.2, 100, 0),
		sell(date(2023, 3, 10), "CW8.PA", 0.1+0.2, 100, 0),
	}

	positions, err := service.AggregatePositions(transactions, map[string]float64{"CW8.PA": 100})
	if err != nil {
		t.Fatalf("AggregatePositions() returned unexpected error: %v", err)
	}

	if !approx(positions[0].Quantity, 0, 1e-9) {
		t.Errorf("Expected quantity ~0 after full sale, got %v", positions[0].Quantity)
	}
	if !approx(positions[0].TotalInvested, 0, 1e-9) {
		t.Errorf("Expected totalInvested ~0 after full sale, got %v", positions[0].TotalInvested)
	}
}

// TestAggregatePositions_MissingPrice tests degraded valuation.
//
// WHY: a provider outage for one ticker must not take down the whole
// aggregation; the affected position is valued at 0 and the rest are priced.
func TestAggregatePositions_MissingPrice(t *testing.T) {
	transactions := []model.Transaction{
		buy(date(2023, 1, 10), "CW8.PA", 10, 100, 0),
		buy(date(2023, 1, 10), "ESE.PA", 10, 50, 0),
	}

	positions, err := service.AggregatePositions(transactions, map[string]float64{"ESE.PA": 60})
	if err != nil {
		t.Fatalf("AggregatePositions() returned unexpected error: %v", err)
	}

	if len(positions) != 2 {
		t.Fatalf("Expected 2 positions, got %d", len(positions))
	}

	// Sorted by ticker: CW8.PA first
	if positions[0].CurrentPrice != 0 || positions[0].CurrentValue != 0 {
		t.Errorf("Expected unpriced position valued at 0, got price %v value %v",
			positions[0].CurrentPrice, positions[0].CurrentValue)
	}
	if !approx(positions[1].CurrentValue, 600, 1e-9) {
		t.Errorf("Expected priced position valued at 600, got %v", positions[1].CurrentValue)
	}
}

// TestAggregatePositions_DividendsAndFeesIgnored tests cash-flow-only types.
//
// WHY: dividends and fees affect returns, not holdings; they must neither
// change a position nor create a phantom one.
func TestAggregatePositions_DividendsAndFeesIgnored(t *testing.T) {
	transactions := []model.Transaction{
		buy(date(2023, 1, 10), "CW8.PA", 10, 100, 0),
		{ID: "tx", Date: date(2023, 3, 10), Type: model.TransactionDividend, UnitPrice: 25, TotalAmount: 25},
		{ID: "tx", Date: date(2023, 4, 10), Type: model.TransactionFee, UnitPrice: 3, TotalAmount: 3},
	}

	positions, err := service.AggregatePositions(transactions, map[string]float64{"CW8.PA": 100})
	if err != nil {
		t.Fatalf("AggregatePositions() returned unexpected error: %v", err)
	}

	if len(positions) != 1 {
		t.Fatalf("Expected 1 position, got %d", len(positions))
	}
	if !approx(positions[0].TotalInvested, 1000, 1e-9) {
		t.Errorf("Expected totalInvested 1000, got %v", positions[0].TotalInvested)
	}
}

// TestAggregatePositions_Empty tests the trivial ledger.
func TestAggregatePositions_Empty(t *testing.T) {
	positions, err := service.AggregatePositions(nil, nil)
	if err != nil {
		t.Fatalf("AggregatePositions() returned unexpected error: %v", err)
	}
	if len(positions) != 0 {
		t.Errorf("Expected no positions, got %d", len(positions))
	}
}
