package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/mlefevre/savings-tracker-backend/internal/model"
	"github.com/mlefevre/savings-tracker-backend/internal/testutil"
)

// TestValuationService_CompteCourant tests the checking account strategy.
//
// WHY: a checking account is worth exactly its last snapshot; any growth
// assumption would be invented money.
func TestValuationService_CompteCourant(t *testing.T) {
	db := testutil.SetupTestDB(t)
	account := testutil.CreateAccount(t, db, model.AccountTypeCompteCourant)
	testutil.CreateBalance(t, db, account.ID, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), 2500)

	svc := testutil.NewTestValuationService(t, db, nil)

	valuation, err := svc.ValuateAccount(context.Background(), account.ID)
	if err != nil {
		t.Fatalf("ValuateAccount() returned unexpected error: %v", err)
	}

	if valuation.CurrentValue != 2500 {
		t.Errorf("Expected value 2500, got %v", valuation.CurrentValue)
	}
	if valuation.IsEstimated {
		t.Error("Checking account valuation must not be flagged as estimated")
	}
	if valuation.LastUpdated != "2024-05-01" {
		t.Errorf("Expected lastUpdated 2024-05-01, got %s", valuation.LastUpdated)
	}
}

// TestValuationService_Interessement tests the deposit sum strategy.
func TestValuationService_Interessement(t *testing.T) {
	db := testutil.SetupTestDB(t)
	account := testutil.CreateAccount(t, db, model.AccountTypeInteressement)

	testutil.CreateDeposit(t, db, account.ID, time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC), 1000, 1150)
	testutil.CreateDeposit(t, db, account.ID, time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), 1200, 1250)

	svc := testutil.NewTestValuationService(t, db, nil)

	valuation, err := svc.ValuateAccount(context.Background(), account.ID)
	if err != nil {
		t.Fatalf("ValuateAccount() returned unexpected error: %v", err)
	}

	if valuation.TotalContributed != 2200 {
		t.Errorf("Expected contributed 2200, got %v", valuation.TotalContributed)
	}
	if valuation.CurrentValue != 2400 {
		t.Errorf("Expected value 2400, got %v", valuation.CurrentValue)
	}
	if valuation.TotalGainLoss != 200 {
		t.Errorf("Expected gain 200, got %v", valuation.TotalGainLoss)
	}
}

// TestValuationService_LivretA tests interest extrapolation.
//
// WHY: between snapshots the Livret A accrues tax-free interest at the
// configured rate; a year-old snapshot at 3% must grow by about 3%.
func TestValuationService_LivretA(t *testing.T) {
	db := testutil.SetupTestDB(t)
	account := testutil.NewAccount().
		WithType(model.AccountTypeLivretA).
		WithConfig(&model.AccountConfig{CurrentRate: 0.03}).
		Build(t, db)

	snapshotDate := time.Now().UTC().AddDate(-1, 0, 0)
	testutil.CreateBalance(t, db, account.ID, snapshotDate, 10000)

	svc := testutil.NewTestValuationService(t, db, nil)

	valuation, err := svc.ValuateAccount(context.Background(), account.ID)
	if err != nil {
		t.Fatalf("ValuateAccount() returned unexpected error: %v", err)
	}

	if !valuation.IsEstimated {
		t.Error("Extrapolated Livret A valuation must be flagged as estimated")
	}
	// One year at 3% on 10000 is about 300 of interest.
	if valuation.CurrentValue < 10280 || valuation.CurrentValue > 10320 {
		t.Errorf("Expected value near 10300, got %v", valuation.CurrentValue)
	}
}

// TestValuationService_PEL tests the tax regime selection.
//
// WHY: the net rate depends on the plan's opening date and age; a recent plan
// pays the 30% flat tax on interest, shrinking the accrual versus the gross
// rate.
func TestValuationService_PEL(t *testing.T) {
	db := testutil.SetupTestDB(t)
	account := testutil.NewAccount().
		WithType(model.AccountTypePEL).
		WithConfig(&model.AccountConfig{GrossRate: 0.02, OpeningDate: "2020-03-01"}).
		Build(t, db)

	snapshotDate := time.Now().UTC().AddDate(-1, 0, 0)
	testutil.CreateBalance(t, db, account.ID, snapshotDate, 10000)

	svc := testutil.NewTestValuationService(t, db, nil)

	valuation, err := svc.ValuateAccount(context.Background(), account.ID)
	if err != nil {
		t.Fatalf("ValuateAccount() returned unexpected error: %v", err)
	}

	// One year at 2% gross, taxed at 30%: about 140 of net interest.
	if valuation.CurrentValue < 10130 || valuation.CurrentValue > 10150 {
		t.Errorf("Expected value near 10140, got %v", valuation.CurrentValue)
	}
	if !valuation.IsEstimated {
		t.Error("Extrapolated PEL valuation must be flagged as estimated")
	}
}

// TestValuationService_AssuranceVie tests contribution accrual.
//
// WHY: between statements the contract grows by the scheduled monthly
// payments; six months at 200 per month adds 1200.
func TestValuationService_AssuranceVie(t *testing.T) {
	db := testutil.SetupTestDB(t)
	account := testutil.NewAccount().
		WithType(model.AccountTypeAssuranceVie).
		WithConfig(&model.AccountConfig{MonthlyContribution: 200}).
		Build(t, db)

	snapshotDate := time.Now().UTC().AddDate(0, -6, 0)
	testutil.CreateBalance(t, db, account.ID, snapshotDate, 5000)

	svc := testutil.NewTestValuationService(t, db, nil)

	valuation, err := svc.ValuateAccount(context.Background(), account.ID)
	if err != nil {
		t.Fatalf("ValuateAccount() returned unexpected error: %v", err)
	}

	// 6 months at 200/month on top of 5000, within a month's rounding.
	if valuation.CurrentValue < 5800 || valuation.CurrentValue > 6400 {
		t.Errorf("Expected value near 6200, got %v", valuation.CurrentValue)
	}
}

// TestValuationService_NoSnapshot tests accounts with no data yet.
func TestValuationService_NoSnapshot(t *testing.T) {
	db := testutil.SetupTestDB(t)
	account := testutil.CreateAccount(t, db, model.AccountTypeLivretA)

	svc := testutil.NewTestValuationService(t, db, nil)

	valuation, err := svc.ValuateAccount(context.Background(), account.ID)
	if err != nil {
		t.Fatalf("ValuateAccount() returned unexpected error: %v", err)
	}

	if valuation.CurrentValue != 0 {
		t.Errorf("Expected value 0 without snapshots, got %v", valuation.CurrentValue)
	}
}

// TestValuationService_NetWorth tests the aggregate across account types.
//
// WHY: the net worth view mixes valuation strategies; the total must be the
// sum of the per-account values and the accounts must come back in name order.
func TestValuationService_NetWorth(t *testing.T) {
	db := testutil.SetupTestDB(t)

	checking := testutil.NewAccount().
		WithName("A Checking").
		WithType(model.AccountTypeCompteCourant).
		Build(t, db)
	testutil.CreateBalance(t, db, checking.ID, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), 1500)

	pea := testutil.NewAccount().
		WithName("B Brokerage").
		WithType(model.AccountTypePEA).
		Build(t, db)
	testutil.NewTransaction(pea.ID).
		On(time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC)).
		WithQuantity(10).WithUnitPrice(100).
		Build(t, db)

	svc := testutil.NewTestValuationService(t, db, map[string]float64{"CW8.PA": 110})

	summary, err := svc.NetWorth(context.Background())
	if err != nil {
		t.Fatalf("NetWorth() returned unexpected error: %v", err)
	}

	if len(summary.Accounts) != 2 {
		t.Fatalf("Expected 2 accounts, got %d", len(summary.Accounts))
	}
	if summary.Accounts[0].AccountName != "A Checking" {
		t.Errorf("Expected name-ordered accounts, got %s first", summary.Accounts[0].AccountName)
	}
	if summary.Total != 2600 {
		t.Errorf("Expected total 2600, got %v", summary.Total)
	}
}
