package service

import (
	"context"
	"time"

	"github.com/mlefevre/savings-tracker-backend/internal/api/request"
	"github.com/mlefevre/savings-tracker-backend/internal/model"
	"github.com/mlefevre/savings-tracker-backend/internal/repository"
)

// BalanceService handles balance snapshots for bank-style accounts.
type BalanceService struct {
	balanceRepo *repository.BalanceRepository
	accountRepo *repository.AccountRepository
}

// NewBalanceService creates a new BalanceService with the provided repository dependencies.
func NewBalanceService(
	balanceRepo *repository.BalanceRepository,
	accountRepo *repository.AccountRepository,
) *BalanceService {
	return &BalanceService{
		balanceRepo: balanceRepo,
		accountRepo: accountRepo,
	}
}

// GetBalances retrieves all balance snapshots for an account, newest first.
func (s *BalanceService) GetBalances(accountID string) ([]model.BalanceRecord, error) {
	if _, err := s.accountRepo.GetAccount(accountID); err != nil {
		return nil, err
	}
	return s.balanceRepo.GetBalances(accountID)
}

// UpsertBalance records or replaces the balance for a date. One snapshot per
// account per date.
func (s *BalanceService) UpsertBalance(ctx context.Context, accountID string, req request.UpsertBalanceRequest) (*model.BalanceRecord, error) {
	if _, err := s.accountRepo.GetAccount(accountID); err != nil {
		return nil, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, err
	}

	record := &model.BalanceRecord{
		AccountID: accountID,
		Date:      date,
		Balance:   req.Balance,
	}

	if err := s.balanceRepo.UpsertBalance(ctx, *record); err != nil {
		return nil, err
	}

	return record, nil
}
