package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mlefevre/savings-tracker-backend/internal/model"
	"github.com/mlefevre/savings-tracker-backend/internal/testutil"
)

func setupSavingsHandler(t *testing.T, prices map[string]float64) (*SavingsHandler, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	summary := testutil.NewTestSummaryService(t, db, prices)
	valuation := testutil.NewTestValuationService(t, db, prices)
	return NewSavingsHandler(summary, valuation), db
}

func TestSavingsHandler_Summary(t *testing.T) {
	t.Run("serves summary with null rate when flows are degenerate", func(t *testing.T) {
		// No resolvable price: the terminal flow is 0, the flow set is
		// single-sided, and the rate is undefined. The JSON must carry
		// an explicit null, never 0.
		handler, db := setupSavingsHandler(t, map[string]float64{})
		account := testutil.CreateAccount(t, db, model.AccountTypePEA)
		testutil.NewTransaction(account.ID).
			On(time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC)).
			WithQuantity(10).WithUnitPrice(100).
			Build(t, db)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/account/"+account.ID+"/summary",
			map[string]string{"uuid": account.ID})
		w := httptest.NewRecorder()

		handler.Summary(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var body map[string]json.RawMessage
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if string(body["annualizedReturn"]) != "null" {
			t.Errorf("Expected annualizedReturn null, got %s", body["annualizedReturn"])
		}
	})

	t.Run("returns 404 for unknown account", func(t *testing.T) {
		handler, _ := setupSavingsHandler(t, nil)

		id := testutil.MakeID()
		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/account/"+id+"/summary",
			map[string]string{"uuid": id})
		w := httptest.NewRecorder()

		handler.Summary(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestSavingsHandler_Positions(t *testing.T) {
	t.Run("returns 422 for a corrupt ledger", func(t *testing.T) {
		handler, db := setupSavingsHandler(t, map[string]float64{"CW8.PA": 100})
		account := testutil.CreateAccount(t, db, model.AccountTypePEA)
		// A sell with nothing held: stored ledger is corrupt.
		testutil.NewTransaction(account.ID).
			OfType(model.TransactionSell).
			On(time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC)).
			WithQuantity(5).WithUnitPrice(100).
			Build(t, db)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/account/"+account.ID+"/positions",
			map[string]string{"uuid": account.ID})
		w := httptest.NewRecorder()

		handler.Positions(w, req)

		if w.Code != http.StatusUnprocessableEntity {
			t.Errorf("Expected 422, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns priced positions", func(t *testing.T) {
		handler, db := setupSavingsHandler(t, map[string]float64{"CW8.PA": 110})
		account := testutil.CreateAccount(t, db, model.AccountTypePEA)
		testutil.NewTransaction(account.ID).
			On(time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC)).
			WithQuantity(10).WithUnitPrice(100).
			Build(t, db)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/account/"+account.ID+"/positions",
			map[string]string{"uuid": account.ID})
		w := httptest.NewRecorder()

		handler.Positions(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var positions []model.Position
		if err := json.NewDecoder(w.Body).Decode(&positions); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(positions) != 1 || positions[0].CurrentValue != 1100 {
			t.Errorf("Expected one position worth 1100, got %+v", positions)
		}
	})
}

func TestSavingsHandler_AnnualReturns(t *testing.T) {
	t.Run("lists every year with nullable rates", func(t *testing.T) {
		handler, db := setupSavingsHandler(t, map[string]float64{"CW8.PA": 115})
		account := testutil.CreateAccount(t, db, model.AccountTypePEA)
		testutil.NewTransaction(account.ID).
			On(time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)).
			WithQuantity(10).WithUnitPrice(100).
			Build(t, db)
		testutil.CreateAnnualValue(t, db, account.ID, 2023, 1100)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/account/"+account.ID+"/annual-returns",
			map[string]string{"uuid": account.ID})
		w := httptest.NewRecorder()

		handler.AnnualReturns(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var series []model.AnnualReturn
		if err := json.NewDecoder(w.Body).Decode(&series); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(series) == 0 || series[0].Year != 2023 {
			t.Errorf("Expected series starting at 2023, got %+v", series)
		}
	})
}

func TestSavingsHandler_NetWorth(t *testing.T) {
	handler, db := setupSavingsHandler(t, nil)
	account := testutil.CreateAccount(t, db, model.AccountTypeCompteCourant)
	testutil.CreateBalance(t, db, account.ID, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), 3000)

	req := httptest.NewRequest(http.MethodGet, "/api/networth", nil)
	w := httptest.NewRecorder()

	handler.NetWorth(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var summary model.NetWorthSummary
	if err := json.NewDecoder(w.Body).Decode(&summary); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if summary.Total != 3000 {
		t.Errorf("Expected total 3000, got %v", summary.Total)
	}
}
