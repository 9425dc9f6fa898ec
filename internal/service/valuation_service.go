package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mlefevre/savings-tracker-backend/internal/apperrors"
	"github.com/mlefevre/savings-tracker-backend/internal/model"
	"github.com/mlefevre/savings-tracker-backend/internal/repository"
)

// Interest extrapolation constants for bank-style accounts.
const (
	daysPerYear       = 365.0
	daysPerMonth      = 30.44  // average Gregorian month length
	daysPerCivilYear  = 365.25 // used for account age, leap-year aware
	pelTaxBefore2018  = 0.172  // social levies only, pre-2018 openings under 12 years
	pelTaxFlat        = 0.30   // flat tax on interest otherwise
	pelTaxGraceYears  = 12
	pelTaxRegimeSince = 2018
)

// ValuationService computes the current value of every account type and
// aggregates them into a net-worth view. PEA accounts are valued from live
// positions; the other types extrapolate from their latest balance snapshot
// or deposit records, flagged IsEstimated.
type ValuationService struct {
	accountRepo    *repository.AccountRepository
	balanceRepo    *repository.BalanceRepository
	depositRepo    *repository.DepositRepository
	summaryService *SummaryService
	now            func() time.Time
}

// NewValuationService creates a new ValuationService with the provided dependencies.
func NewValuationService(
	accountRepo *repository.AccountRepository,
	balanceRepo *repository.BalanceRepository,
	depositRepo *repository.DepositRepository,
	summaryService *SummaryService,
) *ValuationService {
	return &ValuationService{
		accountRepo:    accountRepo,
		balanceRepo:    balanceRepo,
		depositRepo:    depositRepo,
		summaryService: summaryService,
		now:            time.Now,
	}
}

// ValuateAccount computes the current valuation of a single account using
// the strategy for its type.
func (s *ValuationService) ValuateAccount(ctx context.Context, accountID string) (model.AccountValuation, error) {
	account, err := s.accountRepo.GetAccount(accountID)
	if err != nil {
		return model.AccountValuation{}, err
	}
	return s.valuate(ctx, account)
}

// NetWorth valuates every account concurrently and sums the results.
// Accounts are returned in name order regardless of completion order.
func (s *ValuationService) NetWorth(ctx context.Context) (model.NetWorthSummary, error) {
	accounts, err := s.accountRepo.GetAccounts()
	if err != nil {
		return model.NetWorthSummary{}, err
	}

	valuations := make([]model.AccountValuation, 0, len(accounts))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for _, account := range accounts {
		account := account
		g.Go(func() error {
			valuation, err := s.valuate(ctx, account)
			if err != nil {
				return fmt.Errorf("failed to valuate account %s: %w", account.ID, err)
			}
			mu.Lock()
			valuations = append(valuations, valuation)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return model.NetWorthSummary{}, err
	}

	sort.Slice(valuations, func(i, j int) bool {
		return valuations[i].AccountName < valuations[j].AccountName
	})

	summary := model.NetWorthSummary{Accounts: valuations}
	for _, v := range valuations {
		summary.Total += v.CurrentValue
	}
	summary.Total = round(summary.Total)

	return summary, nil
}

func (s *ValuationService) valuate(ctx context.Context, account model.SavingsAccount) (model.AccountValuation, error) {
	switch account.Type {
	case model.AccountTypePEA:
		return s.valuatePEA(ctx, account)
	case model.AccountTypeCompteCourant:
		return s.valuateCompteCourant(account)
	case model.AccountTypeInteressement:
		return s.valuateInteressement(account)
	case model.AccountTypePEL:
		return s.valuatePEL(account)
	case model.AccountTypeLivretA:
		return s.valuateLivretA(account)
	case model.AccountTypeAssuranceVie:
		return s.valuateAssuranceVie(account)
	default:
		return model.AccountValuation{}, fmt.Errorf("%w: unknown account type %q", apperrors.ErrDataIntegrity, account.Type)
	}
}

// valuatePEA values a brokerage account from its live position aggregation.
func (s *ValuationService) valuatePEA(ctx context.Context, account model.SavingsAccount) (model.AccountValuation, error) {
	summary, err := s.summaryService.Summary(ctx, account.ID)
	if err != nil {
		return model.AccountValuation{}, err
	}

	return newValuation(account, summary.CurrentValue, summary.TotalInvested,
		s.now().UTC().Format("2006-01-02"), false), nil
}

// valuateCompteCourant values a checking account as its latest balance
// snapshot, with no growth assumption.
func (s *ValuationService) valuateCompteCourant(account model.SavingsAccount) (model.AccountValuation, error) {
	balance, err := s.balanceRepo.GetLatestBalance(account.ID)
	if errors.Is(err, apperrors.ErrBalanceNotFound) {
		return newValuation(account, 0, 0, "", false), nil
	}
	if err != nil {
		return model.AccountValuation{}, err
	}

	return newValuation(account, balance.Balance, balance.Balance,
		balance.Date.Format("2006-01-02"), false), nil
}

// valuateInteressement values a profit-sharing account as the sum of its
// deposits' most recent known values.
func (s *ValuationService) valuateInteressement(account model.SavingsAccount) (model.AccountValuation, error) {
	deposits, err := s.depositRepo.GetDeposits(account.ID)
	if err != nil {
		return model.AccountValuation{}, err
	}

	var contributed, value float64
	var lastValueDate time.Time
	for _, d := range deposits {
		contributed += d.DepositAmount
		value += d.CurrentValue
		if d.ValueDate.After(lastValueDate) {
			lastValueDate = d.ValueDate
		}
	}

	lastUpdated := ""
	if !lastValueDate.IsZero() {
		lastUpdated = lastValueDate.Format("2006-01-02")
	}

	return newValuation(account, value, contributed, lastUpdated, false), nil
}

// valuatePEL values a housing savings plan by accruing interest on the latest
// balance at the gross rate net of tax. Plans opened before 2018 pay only
// social levies on interest until the plan turns 12; after that, and for all
// later openings, the 30% flat tax applies.
func (s *ValuationService) valuatePEL(account model.SavingsAccount) (model.AccountValuation, error) {
	balance, err := s.balanceRepo.GetLatestBalance(account.ID)
	if errors.Is(err, apperrors.ErrBalanceNotFound) {
		return newValuation(account, 0, 0, "", false), nil
	}
	if err != nil {
		return model.AccountValuation{}, err
	}

	var grossRate float64
	var openingDate time.Time
	if account.Config != nil {
		grossRate = account.Config.GrossRate
		if account.Config.OpeningDate != "" {
			openingDate, err = time.Parse("2006-01-02", account.Config.OpeningDate)
			if err != nil {
				return model.AccountValuation{}, fmt.Errorf("invalid openingDate for account %s: %w", account.ID, err)
			}
		}
	}

	now := s.now().UTC()
	tax := pelTaxFlat
	if !openingDate.IsZero() && openingDate.Year() < pelTaxRegimeSince {
		ageYears := now.Sub(openingDate).Hours() / 24 / daysPerCivilYear
		if ageYears < pelTaxGraceYears {
			tax = pelTaxBefore2018
		}
	}

	netRate := grossRate * (1 - tax)
	days := now.Sub(balance.Date).Hours() / 24
	if days < 0 {
		days = 0
	}
	value := balance.Balance * (1 + netRate*days/daysPerYear)

	return newValuation(account, value, balance.Balance,
		balance.Date.Format("2006-01-02"), days > 0), nil
}

// valuateLivretA values a Livret A by accruing tax-free interest on the
// latest balance at the account's current rate.
func (s *ValuationService) valuateLivretA(account model.SavingsAccount) (model.AccountValuation, error) {
	balance, err := s.balanceRepo.GetLatestBalance(account.ID)
	if errors.Is(err, apperrors.ErrBalanceNotFound) {
		return newValuation(account, 0, 0, "", false), nil
	}
	if err != nil {
		return model.AccountValuation{}, err
	}

	var rate float64
	if account.Config != nil {
		rate = account.Config.CurrentRate
	}

	days := s.now().UTC().Sub(balance.Date).Hours() / 24
	if days < 0 {
		days = 0
	}
	value := balance.Balance * (1 + rate*days/daysPerYear)

	return newValuation(account, value, balance.Balance,
		balance.Date.Format("2006-01-02"), days > 0), nil
}

// valuateAssuranceVie values a life-insurance contract as the latest balance
// plus the scheduled monthly contributions made since that snapshot. Market
// growth between snapshots is not modeled; the next snapshot corrects it.
func (s *ValuationService) valuateAssuranceVie(account model.SavingsAccount) (model.AccountValuation, error) {
	balance, err := s.balanceRepo.GetLatestBalance(account.ID)
	if errors.Is(err, apperrors.ErrBalanceNotFound) {
		return newValuation(account, 0, 0, "", false), nil
	}
	if err != nil {
		return model.AccountValuation{}, err
	}

	var monthly float64
	if account.Config != nil {
		monthly = account.Config.MonthlyContribution
	}

	days := s.now().UTC().Sub(balance.Date).Hours() / 24
	if days < 0 {
		days = 0
	}
	months := math.Floor(days / daysPerMonth)
	value := balance.Balance + monthly*months

	return newValuation(account, value, value,
		balance.Date.Format("2006-01-02"), days > 0), nil
}

func newValuation(account model.SavingsAccount, value, contributed float64, lastUpdated string, estimated bool) model.AccountValuation {
	valuation := model.AccountValuation{
		AccountID:        account.ID,
		AccountName:      account.Name,
		AccountType:      account.Type,
		CurrentValue:     round(value),
		TotalContributed: round(contributed),
		TotalGainLoss:    round(value - contributed),
		LastUpdated:      lastUpdated,
		IsEstimated:      estimated,
	}
	if contributed > 0 {
		valuation.GainLossPct = round((value - contributed) / contributed * 100)
	}
	return valuation
}
