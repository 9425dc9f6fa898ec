package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mlefevre/savings-tracker-backend/internal/api/request"
	"github.com/mlefevre/savings-tracker-backend/internal/model"
	"github.com/mlefevre/savings-tracker-backend/internal/repository"
)

// defaultLockYears is the statutory lock-in period for profit-sharing
// deposits when the account config does not override it.
const defaultLockYears = 5

// DepositService handles profit-sharing deposit records.
type DepositService struct {
	depositRepo *repository.DepositRepository
	accountRepo *repository.AccountRepository
}

// NewDepositService creates a new DepositService with the provided repository dependencies.
func NewDepositService(
	depositRepo *repository.DepositRepository,
	accountRepo *repository.AccountRepository,
) *DepositService {
	return &DepositService{
		depositRepo: depositRepo,
		accountRepo: accountRepo,
	}
}

// GetDeposits retrieves all deposits for an account, ascending by deposit date.
func (s *DepositService) GetDeposits(accountID string) ([]model.DepositRecord, error) {
	if _, err := s.accountRepo.GetAccount(accountID); err != nil {
		return nil, err
	}
	return s.depositRepo.GetDeposits(accountID)
}

// CreateDeposit records a new profit-sharing deposit. The lock end date is
// derived from the deposit date plus the account's lock period. When no
// current value is provided the deposit amount itself is used.
func (s *DepositService) CreateDeposit(ctx context.Context, accountID string, req request.CreateDepositRequest) (*model.DepositRecord, error) {
	account, err := s.accountRepo.GetAccount(accountID)
	if err != nil {
		return nil, err
	}

	depositDate, err := time.Parse("2006-01-02", req.DepositDate)
	if err != nil {
		return nil, err
	}

	lockYears := defaultLockYears
	if account.Config != nil && account.Config.LockYears > 0 {
		lockYears = account.Config.LockYears
	}

	deposit := &model.DepositRecord{
		ID:            uuid.New().String(),
		AccountID:     accountID,
		DepositDate:   depositDate,
		DepositAmount: req.DepositAmount,
		Strategy:      req.Strategy,
		LockEndDate:   depositDate.AddDate(lockYears, 0, 0),
		CurrentValue:  req.DepositAmount,
		ValueDate:     depositDate,
	}

	if req.CurrentValue > 0 {
		deposit.CurrentValue = req.CurrentValue
	}
	if req.ValueDate != "" {
		valueDate, err := time.Parse("2006-01-02", req.ValueDate)
		if err != nil {
			return nil, err
		}
		deposit.ValueDate = valueDate
	}

	if err := s.depositRepo.InsertDeposit(ctx, *deposit); err != nil {
		return nil, fmt.Errorf("failed to create deposit: %w", err)
	}

	return deposit, nil
}

// UpdateDeposit applies the provided fields to an existing deposit. Changing
// the deposit date shifts the lock end date with it.
func (s *DepositService) UpdateDeposit(ctx context.Context, depositID string, req request.UpdateDepositRequest) (*model.DepositRecord, error) {
	deposit, err := s.depositRepo.GetDeposit(depositID)
	if err != nil {
		return nil, err
	}

	if req.DepositDate != nil {
		depositDate, err := time.Parse("2006-01-02", *req.DepositDate)
		if err != nil {
			return nil, err
		}
		lockPeriod := deposit.LockEndDate.Sub(deposit.DepositDate)
		deposit.DepositDate = depositDate
		deposit.LockEndDate = depositDate.Add(lockPeriod)
	}
	if req.DepositAmount != nil {
		deposit.DepositAmount = *req.DepositAmount
	}
	if req.Strategy != nil {
		deposit.Strategy = *req.Strategy
	}
	if req.CurrentValue != nil {
		deposit.CurrentValue = *req.CurrentValue
	}
	if req.ValueDate != nil {
		valueDate, err := time.Parse("2006-01-02", *req.ValueDate)
		if err != nil {
			return nil, err
		}
		deposit.ValueDate = valueDate
	}

	if err := s.depositRepo.UpdateDeposit(ctx, deposit); err != nil {
		return nil, fmt.Errorf("failed to update deposit: %w", err)
	}

	return &deposit, nil
}

// DeleteDeposit removes a deposit record.
func (s *DepositService) DeleteDeposit(ctx context.Context, depositID string) error {
	return s.depositRepo.DeleteDeposit(ctx, depositID)
}
