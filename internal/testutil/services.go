package testutil

import (
	"database/sql"
	"testing"

	"github.com/mlefevre/savings-tracker-backend/internal/pricing"
	"github.com/mlefevre/savings-tracker-backend/internal/repository"
	"github.com/mlefevre/savings-tracker-backend/internal/service"
)

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

func NewTestAccountService(t *testing.T, db *sql.DB) *service.AccountService {
	t.Helper()

	return service.NewAccountService(repository.NewAccountRepository(db))
}

func NewTestTransactionService(t *testing.T, db *sql.DB) *service.TransactionService {
	t.Helper()

	return service.NewTransactionService(
		repository.NewTransactionRepository(db),
		repository.NewAccountRepository(db),
	)
}

func NewTestAnnualValueService(t *testing.T, db *sql.DB) *service.AnnualValueService {
	t.Helper()

	return service.NewAnnualValueService(
		repository.NewAnnualValueRepository(db),
		repository.NewAccountRepository(db),
	)
}

func NewTestBalanceService(t *testing.T, db *sql.DB) *service.BalanceService {
	t.Helper()

	return service.NewBalanceService(
		repository.NewBalanceRepository(db),
		repository.NewAccountRepository(db),
	)
}

func NewTestDepositService(t *testing.T, db *sql.DB) *service.DepositService {
	t.Helper()

	return service.NewDepositService(
		repository.NewDepositRepository(db),
		repository.NewAccountRepository(db),
	)
}

// NewTestSummaryService builds a SummaryService backed by the given canned
// prices instead of a live provider.
func NewTestSummaryService(t *testing.T, db *sql.DB, prices map[string]float64) *service.SummaryService {
	t.Helper()

	priceService := pricing.NewService(NewMockPriceProvider(prices), nil)

	return service.NewSummaryService(
		repository.NewTransactionRepository(db),
		repository.NewAnnualValueRepository(db),
		repository.NewAccountRepository(db),
		priceService,
	)
}

// NewTestValuationService builds a ValuationService backed by the given
// canned prices.
func NewTestValuationService(t *testing.T, db *sql.DB, prices map[string]float64) *service.ValuationService {
	t.Helper()

	return service.NewValuationService(
		repository.NewAccountRepository(db),
		repository.NewBalanceRepository(db),
		repository.NewDepositRepository(db),
		NewTestSummaryService(t, db, prices),
	)
}
