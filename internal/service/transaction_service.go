package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mlefevre/savings-tracker-backend/internal/api/request"
	"github.com/mlefevre/savings-tracker-backend/internal/apperrors"
	"github.com/mlefevre/savings-tracker-backend/internal/model"
	"github.com/mlefevre/savings-tracker-backend/internal/repository"
)

// TransactionService handles ledger business logic operations.
type TransactionService struct {
	transactionRepo *repository.TransactionRepository
	accountRepo     *repository.AccountRepository
}

// NewTransactionService creates a new TransactionService with the provided repository dependencies.
func NewTransactionService(
	transactionRepo *repository.TransactionRepository,
	accountRepo *repository.AccountRepository,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
	}
}

// GetTransactions retrieves all transactions for an account, ordered by date
// then insertion order, which is the order the aggregation fold requires.
func (s *TransactionService) GetTransactions(accountID string) ([]model.Transaction, error) {
	if _, err := s.accountRepo.GetAccount(accountID); err != nil {
		return nil, err
	}
	return s.transactionRepo.GetTransactions(accountID)
}

// GetTransaction retrieves a single transaction by its ID.
func (s *TransactionService) GetTransaction(transactionID string) (model.Transaction, error) {
	return s.transactionRepo.GetTransaction(transactionID)
}

// CreateTransaction records a new ledger event. The total amount is derived
// here, once, and is authoritative afterwards:
//
//	buy:           quantity*unitPrice + fees (money out)
//	sell:          quantity*unitPrice - fees (money in)
//	dividend, fee: unitPrice as the amount, quantity ignored
//
// A sell that exceeds the quantity held for its ticker at that point is
// rejected with ErrInsufficientQuantity before anything is written.
func (s *TransactionService) CreateTransaction(ctx context.Context, req request.CreateTransactionRequest) (*model.Transaction, error) {
	if _, err := s.accountRepo.GetAccount(req.AccountID); err != nil {
		return nil, err
	}

	transactionDate, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, err
	}

	transaction := &model.Transaction{
		ID:          uuid.New().String(),
		AccountID:   req.AccountID,
		Date:        transactionDate,
		Type:        req.Type,
		AssetName:   req.AssetName,
		Isin:        req.Isin,
		Ticker:      req.Ticker,
		Quantity:    req.Quantity,
		UnitPrice:   req.UnitPrice,
		Fees:        req.Fees,
		TotalAmount: deriveTotalAmount(req.Type, req.Quantity, req.UnitPrice, req.Fees),
		CreatedAt:   time.Now().UTC(),
	}

	if transaction.Type == model.TransactionSell {
		if err := s.checkSellQuantity(req.AccountID, transaction.Ticker, transaction.Date, transaction.Quantity); err != nil {
			return nil, err
		}
	}

	if err := s.transactionRepo.InsertTransaction(ctx, *transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return transaction, nil
}

// UpdateTransaction applies the provided fields to an existing transaction
// and rederives the total amount. Edits replace the whole record.
func (s *TransactionService) UpdateTransaction(ctx context.Context, transactionID string, req request.UpdateTransactionRequest) (*model.Transaction, error) {
	transaction, err := s.transactionRepo.GetTransaction(transactionID)
	if err != nil {
		return nil, err
	}

	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return nil, err
		}
		transaction.Date = date
	}
	if req.Type != nil {
		transaction.Type = *req.Type
	}
	if req.AssetName != nil {
		transaction.AssetName = *req.AssetName
	}
	if req.Isin != nil {
		transaction.Isin = *req.Isin
	}
	if req.Ticker != nil {
		transaction.Ticker = *req.Ticker
	}
	if req.Quantity != nil {
		transaction.Quantity = *req.Quantity
	}
	if req.UnitPrice != nil {
		transaction.UnitPrice = *req.UnitPrice
	}
	if req.Fees != nil {
		transaction.Fees = *req.Fees
	}
	transaction.TotalAmount = deriveTotalAmount(transaction.Type, transaction.Quantity, transaction.UnitPrice, transaction.Fees)

	if err := s.transactionRepo.UpdateTransaction(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	return &transaction, nil
}

// DeleteTransaction removes a ledger event.
func (s *TransactionService) DeleteTransaction(ctx context.Context, transactionID string) error {
	return s.transactionRepo.DeleteTransaction(ctx, transactionID)
}

// checkSellQuantity verifies that the ledger holds enough of the ticker on
// the sale date to cover the requested quantity.
func (s *TransactionService) checkSellQuantity(accountID, ticker string, date time.Time, quantity float64) error {
	transactions, err := s.transactionRepo.GetTransactions(accountID)
	if err != nil {
		return err
	}

	var held float64
	for _, t := range transactions {
		if t.Ticker != ticker || t.Date.After(date) {
			continue
		}
		switch t.Type {
		case model.TransactionBuy:
			held += t.Quantity
		case model.TransactionSell:
			held -= t.Quantity
		}
	}

	if quantity > held+quantityEpsilon {
		return fmt.Errorf("%w: selling %v of %s but only %v held", apperrors.ErrInsufficientQuantity, quantity, ticker, held)
	}

	return nil
}

func deriveTotalAmount(transactionType string, quantity, unitPrice, fees float64) float64 {
	switch transactionType {
	case model.TransactionBuy:
		return quantity*unitPrice + fees
	case model.TransactionSell:
		return quantity*unitPrice - fees
	default:
		return unitPrice
	}
}
