package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mlefevre/savings-tracker-backend/internal/api/request"
	"github.com/mlefevre/savings-tracker-backend/internal/model"
	"github.com/mlefevre/savings-tracker-backend/internal/repository"
)

// AccountService handles savings account business logic operations.
type AccountService struct {
	accountRepo *repository.AccountRepository
}

// NewAccountService creates a new AccountService with the provided repository dependencies.
func NewAccountService(accountRepo *repository.AccountRepository) *AccountService {
	return &AccountService{accountRepo: accountRepo}
}

// GetAccounts retrieves all savings accounts, ordered by name.
func (s *AccountService) GetAccounts() ([]model.SavingsAccount, error) {
	return s.accountRepo.GetAccounts()
}

// GetAccount retrieves a single savings account by its ID.
func (s *AccountService) GetAccount(accountID string) (model.SavingsAccount, error) {
	return s.accountRepo.GetAccount(accountID)
}

// CreateAccount creates a new savings account. The currency defaults to EUR
// when omitted. A newly created default account displaces the previous one.
func (s *AccountService) CreateAccount(ctx context.Context, req request.CreateAccountRequest) (*model.SavingsAccount, error) {
	account := &model.SavingsAccount{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Type:        req.Type,
		Description: req.Description,
		Currency:    req.Currency,
		IsDefault:   req.IsDefault,
		Config:      configFromRequest(req.Config),
	}
	if account.Currency == "" {
		account.Currency = "EUR"
	}

	if err := s.accountRepo.InsertAccount(ctx, *account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	if account.IsDefault {
		if err := s.accountRepo.SetDefault(ctx, account.ID); err != nil {
			return nil, fmt.Errorf("failed to set default account: %w", err)
		}
	}

	return account, nil
}

// UpdateAccount applies the provided fields to an existing account. The
// account type is immutable; changing it would invalidate the ledger and
// valuation history.
func (s *AccountService) UpdateAccount(ctx context.Context, accountID string, req request.UpdateAccountRequest) (*model.SavingsAccount, error) {
	account, err := s.accountRepo.GetAccount(accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	if req.Currency != nil {
		account.Currency = *req.Currency
	}
	if req.Config != nil {
		account.Config = configFromRequest(req.Config)
	}

	if err := s.accountRepo.UpdateAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	return &account, nil
}

// DeleteAccount removes an account and all its dependent records.
func (s *AccountService) DeleteAccount(ctx context.Context, accountID string) error {
	return s.accountRepo.DeleteAccount(ctx, accountID)
}

// SetDefaultAccount marks the given account as the default, clearing the flag
// on every other account in the same statement.
func (s *AccountService) SetDefaultAccount(ctx context.Context, accountID string) error {
	if _, err := s.accountRepo.GetAccount(accountID); err != nil {
		return err
	}
	return s.accountRepo.SetDefault(ctx, accountID)
}

func configFromRequest(config *request.AccountConfig) *model.AccountConfig {
	if config == nil {
		return nil
	}
	return &model.AccountConfig{
		OpeningDate:         config.OpeningDate,
		GrossRate:           config.GrossRate,
		CurrentRate:         config.CurrentRate,
		MonthlyContribution: config.MonthlyContribution,
		LastAnnualYield:     config.LastAnnualYield,
		LockYears:           config.LockYears,
	}
}
