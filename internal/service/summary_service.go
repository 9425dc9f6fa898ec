package service

import (
	"context"
	"log"
	"time"

	"github.com/mlefevre/savings-tracker-backend/internal/model"
	"github.com/mlefevre/savings-tracker-backend/internal/pricing"
	"github.com/mlefevre/savings-tracker-backend/internal/repository"
	"github.com/mlefevre/savings-tracker-backend/internal/returns"
)

// SummaryService produces the derived views of a PEA account: current
// positions, the headline summary with its money-weighted annualized return,
// and the per-calendar-year return series.
type SummaryService struct {
	transactionRepo *repository.TransactionRepository
	annualValueRepo *repository.AnnualValueRepository
	accountRepo     *repository.AccountRepository
	priceService    *pricing.Service
	now             func() time.Time
}

// NewSummaryService creates a new SummaryService with the provided dependencies.
func NewSummaryService(
	transactionRepo *repository.TransactionRepository,
	annualValueRepo *repository.AnnualValueRepository,
	accountRepo *repository.AccountRepository,
	priceService *pricing.Service,
) *SummaryService {
	return &SummaryService{
		transactionRepo: transactionRepo,
		annualValueRepo: annualValueRepo,
		accountRepo:     accountRepo,
		priceService:    priceService,
		now:             time.Now,
	}
}

// Positions folds the account's full transaction history into its current
// holdings, valued at live prices. Tickers without a resolvable price are
// valued at zero rather than failing the whole aggregation.
func (s *SummaryService) Positions(ctx context.Context, accountID string) ([]model.Position, error) {
	if _, err := s.accountRepo.GetAccount(accountID); err != nil {
		return nil, err
	}

	transactions, err := s.transactionRepo.GetTransactions(accountID)
	if err != nil {
		return nil, err
	}

	prices := s.priceService.PricesFor(ctx, heldTickers(transactions))

	return AggregatePositions(transactions, prices)
}

// Summary computes the headline view of an account: total invested, current
// value, gain/loss, and the annualized money-weighted return over the entire
// transaction history.
//
// The return treats every transaction as a signed cash flow (buys negative)
// plus a terminal inflow of the current value dated now. When the flow set is
// degenerate or the solver fails to converge, AnnualizedReturn stays nil; the
// rest of the summary is still served. A nil rate means "unknown", which is
// not the same thing as 0%.
func (s *SummaryService) Summary(ctx context.Context, accountID string) (model.AccountSummary, error) {
	positions, err := s.Positions(ctx, accountID)
	if err != nil {
		return model.AccountSummary{}, err
	}

	transactions, err := s.transactionRepo.GetTransactions(accountID)
	if err != nil {
		return model.AccountSummary{}, err
	}

	var totalInvested, currentValue float64
	for _, p := range positions {
		totalInvested += p.TotalInvested
		currentValue += p.CurrentValue
	}

	summary := model.AccountSummary{
		AccountID:     accountID,
		TotalInvested: round(totalInvested),
		CurrentValue:  round(currentValue),
		TotalGainLoss: round(currentValue - totalInvested),
	}

	flows := summaryFlows(transactions, currentValue, s.now().UTC())

	if rate, err := returns.Rate(flows); err == nil {
		summary.AnnualizedReturn = floatPtr(rate)
	} else {
		log.Printf("annualized return unavailable for account %s: %v", accountID, err)
	}

	return summary, nil
}

// AnnualReturnSeries computes the per-calendar-year money-weighted returns
// for an account, from the first transaction's year through the current year.
func (s *SummaryService) AnnualReturnSeries(ctx context.Context, accountID string) ([]model.AnnualReturn, error) {
	if _, err := s.accountRepo.GetAccount(accountID); err != nil {
		return nil, err
	}

	transactions, err := s.transactionRepo.GetTransactions(accountID)
	if err != nil {
		return nil, err
	}

	annualValues, err := s.annualValueRepo.GetAnnualValues(accountID)
	if err != nil {
		return nil, err
	}

	prices := s.priceService.PricesFor(ctx, heldTickers(transactions))
	positions, err := AggregatePositions(transactions, prices)
	if err != nil {
		return nil, err
	}

	var currentValue float64
	for _, p := range positions {
		currentValue += p.CurrentValue
	}

	return AnnualReturns(transactions, annualValues, currentValue, s.now().UTC()), nil
}

// summaryFlows turns the full transaction history into the signed cash-flow
// set for the whole-history return: buys are outflows, everything else an
// inflow, closed by a terminal inflow of the current value dated now.
func summaryFlows(transactions []model.Transaction, currentValue float64, now time.Time) []returns.CashFlow {
	flows := make([]returns.CashFlow, 0, len(transactions)+1)
	for _, t := range transactions {
		amount := t.TotalAmount
		if t.Type == model.TransactionBuy {
			amount = -amount
		}
		flows = append(flows, returns.CashFlow{Amount: amount, When: t.Date})
	}
	return append(flows, returns.CashFlow{Amount: currentValue, When: now})
}

// heldTickers collects the distinct tickers appearing in buy and sell
// transactions, in ledger order.
func heldTickers(transactions []model.Transaction) []string {
	seen := make(map[string]bool)
	tickers := []string{}
	for _, t := range transactions {
		if t.Type != model.TransactionBuy && t.Type != model.TransactionSell {
			continue
		}
		if t.Ticker == "" || seen[t.Ticker] {
			continue
		}
		seen[t.Ticker] = true
		tickers = append(tickers, t.Ticker)
	}
	return tickers
}
