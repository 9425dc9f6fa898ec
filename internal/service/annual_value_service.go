package service

import (
	"context"

	"github.com/mlefevre/savings-tracker-backend/internal/api/request"
	"github.com/mlefevre/savings-tracker-backend/internal/model"
	"github.com/mlefevre/savings-tracker-backend/internal/repository"
)

// AnnualValueService handles year-end valuation snapshots for an account.
type AnnualValueService struct {
	annualValueRepo *repository.AnnualValueRepository
	accountRepo     *repository.AccountRepository
}

// NewAnnualValueService creates a new AnnualValueService with the provided repository dependencies.
func NewAnnualValueService(
	annualValueRepo *repository.AnnualValueRepository,
	accountRepo *repository.AccountRepository,
) *AnnualValueService {
	return &AnnualValueService{
		annualValueRepo: annualValueRepo,
		accountRepo:     accountRepo,
	}
}

// GetAnnualValues retrieves all year-end values for an account, ascending by year.
func (s *AnnualValueService) GetAnnualValues(accountID string) ([]model.AnnualValue, error) {
	if _, err := s.accountRepo.GetAccount(accountID); err != nil {
		return nil, err
	}
	return s.annualValueRepo.GetAnnualValues(accountID)
}

// UpsertAnnualValue records or replaces the year-end value for a year. One
// value per account per year; re-recording overwrites.
func (s *AnnualValueService) UpsertAnnualValue(ctx context.Context, accountID string, req request.UpsertAnnualValueRequest) (*model.AnnualValue, error) {
	if _, err := s.accountRepo.GetAccount(accountID); err != nil {
		return nil, err
	}

	value := &model.AnnualValue{
		AccountID: accountID,
		Year:      req.Year,
		EndValue:  req.EndValue,
	}

	if err := s.annualValueRepo.UpsertAnnualValue(ctx, *value); err != nil {
		return nil, err
	}

	return value, nil
}

// DeleteAnnualValue removes the year-end value for a year.
func (s *AnnualValueService) DeleteAnnualValue(ctx context.Context, accountID string, year int) error {
	return s.annualValueRepo.DeleteAnnualValue(ctx, accountID, year)
}
