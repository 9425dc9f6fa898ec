package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mlefevre/savings-tracker-backend/internal/api/request"
	"github.com/mlefevre/savings-tracker-backend/internal/apperrors"
	"github.com/mlefevre/savings-tracker-backend/internal/model"
	"github.com/mlefevre/savings-tracker-backend/internal/testutil"
)

// TestTransactionService_CreateTransaction tests amount derivation at creation.
//
// WHY: the total amount is derived exactly once, here, and every downstream
// calculation trusts it. Buys add fees to the cost, sells subtract them from
// the proceeds.
func TestTransactionService_CreateTransaction(t *testing.T) {
	t.Run("buy derives quantity*price plus fees", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		account := testutil.CreateAccount(t, db, model.AccountTypePEA)
		svc := testutil.NewTestTransactionService(t, db)

		transaction, err := svc.CreateTransaction(context.Background(), request.CreateTransactionRequest{
			AccountID: account.ID,
			Date:      "2024-01-15",
			Type:      model.TransactionBuy,
			Ticker:    "CW8.PA",
			Quantity:  10,
			UnitPrice: 100,
			Fees:      7.5,
		})
		if err != nil {
			t.Fatalf("CreateTransaction() returned unexpected error: %v", err)
		}

		if transaction.TotalAmount != 1007.5 {
			t.Errorf("Expected totalAmount 1007.5, got %v", transaction.TotalAmount)
		}
	})

	t.Run("sell derives quantity*price minus fees", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		account := testutil.CreateAccount(t, db, model.AccountTypePEA)
		testutil.NewTransaction(account.ID).WithQuantity(10).WithUnitPrice(100).Build(t, db)
		svc := testutil.NewTestTransactionService(t, db)

		transaction, err := svc.CreateTransaction(context.Background(), request.CreateTransactionRequest{
			AccountID: account.ID,
			Date:      "2024-06-15",
			Type:      model.TransactionSell,
			Ticker:    "CW8.PA",
			Quantity:  5,
			UnitPrice: 120,
			Fees:      2.5,
		})
		if err != nil {
			t.Fatalf("CreateTransaction() returned unexpected error: %v", err)
		}

		if transaction.TotalAmount != 597.5 {
			t.Errorf("Expected totalAmount 597.5, got %v", transaction.TotalAmount)
		}
	})

	t.Run("dividend carries unitPrice as amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		account := testutil.CreateAccount(t, db, model.AccountTypePEA)
		svc := testutil.NewTestTransactionService(t, db)

		transaction, err := svc.CreateTransaction(context.Background(), request.CreateTransactionRequest{
			AccountID: account.ID,
			Date:      "2024-03-15",
			Type:      model.TransactionDividend,
			UnitPrice: 42.3,
		})
		if err != nil {
			t.Fatalf("CreateTransaction() returned unexpected error: %v", err)
		}

		if transaction.TotalAmount != 42.3 {
			t.Errorf("Expected totalAmount 42.3, got %v", transaction.TotalAmount)
		}
	})

	t.Run("rejects sell exceeding held quantity", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		account := testutil.CreateAccount(t, db, model.AccountTypePEA)
		testutil.NewTransaction(account.ID).WithQuantity(10).WithUnitPrice(100).Build(t, db)
		svc := testutil.NewTestTransactionService(t, db)

		_, err := svc.CreateTransaction(context.Background(), request.CreateTransactionRequest{
			AccountID: account.ID,
			Date:      "2024-06-15",
			Type:      model.TransactionSell,
			Ticker:    "CW8.PA",
			Quantity:  11,
			UnitPrice: 120,
		})
		if !errors.Is(err, apperrors.ErrInsufficientQuantity) {
			t.Errorf("Expected ErrInsufficientQuantity, got %v", err)
		}
	})

	t.Run("rejects unknown account", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)

		_, err := svc.CreateTransaction(context.Background(), request.CreateTransactionRequest{
			AccountID: testutil.MakeID(),
			Date:      "2024-01-15",
			Type:      model.TransactionBuy,
			Ticker:    "CW8.PA",
			Quantity:  10,
			UnitPrice: 100,
		})
		if !errors.Is(err, apperrors.ErrAccountNotFound) {
			t.Errorf("Expected ErrAccountNotFound, got %v", err)
		}
	})
}

// TestTransactionService_UpdateTransaction tests amount rederivation on edit.
//
// WHY: edits replace the record; keeping a stale totalAmount after a quantity
// change would desynchronize the ledger from its own fields.
func TestTransactionService_UpdateTransaction(t *testing.T) {
	db := testutil.SetupTestDB(t)
	account := testutil.CreateAccount(t, db, model.AccountTypePEA)
	original := testutil.NewTransaction(account.ID).WithQuantity(10).WithUnitPrice(100).Build(t, db)
	svc := testutil.NewTestTransactionService(t, db)

	newQuantity := 20.0
	updated, err := svc.UpdateTransaction(context.Background(), original.ID, request.UpdateTransactionRequest{
		Quantity: &newQuantity,
	})
	if err != nil {
		t.Fatalf("UpdateTransaction() returned unexpected error: %v", err)
	}

	if updated.TotalAmount != 2000 {
		t.Errorf("Expected rederived totalAmount 2000, got %v", updated.TotalAmount)
	}
}

// TestTransactionService_DeleteTransaction tests removal.
func TestTransactionService_DeleteTransaction(t *testing.T) {
	db := testutil.SetupTestDB(t)
	account := testutil.CreateAccount(t, db, model.AccountTypePEA)
	transaction := testutil.NewTransaction(account.ID).Build(t, db)
	svc := testutil.NewTestTransactionService(t, db)

	if err := svc.DeleteTransaction(context.Background(), transaction.ID); err != nil {
		t.Fatalf("DeleteTransaction() returned unexpected error: %v", err)
	}

	if _, err := svc.GetTransaction(transaction.ID); !errors.Is(err, apperrors.ErrTransactionNotFound) {
		t.Errorf("Expected ErrTransactionNotFound after delete, got %v", err)
	}
}
