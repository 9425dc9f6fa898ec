package testutil

import (
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/mlefevre/savings-tracker-backend/internal/model"
)

// AccountBuilder provides a fluent interface for creating test accounts.
//
// Example usage:
//
//	// Simple creation with defaults (a PEA account)
//	account := testutil.NewAccount().Build(t, db)
//
//	// Customized account
//	account := testutil.NewAccount().
//	    WithName("Livret A").
//	    WithType(model.AccountTypeLivretA).
//	    WithConfig(&model.AccountConfig{CurrentRate: 0.03}).
//	    Build(t, db)
type AccountBuilder struct {
	ID          string
	Name        string
	Type        string
	Description string
	Currency    string
	IsDefault   bool
	Config      *model.AccountConfig
}

// NewAccount creates an AccountBuilder with sensible defaults.
func NewAccount() *AccountBuilder {
	return &AccountBuilder{
		ID:       MakeID(),
		Name:     MakeAccountName("Test Account"),
		Type:     model.AccountTypePEA,
		Currency: "EUR",
	}
}

// WithID sets a custom ID.
func (b *AccountBuilder) WithID(id string) *AccountBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *AccountBuilder) WithName(name string) *AccountBuilder {
	b.Name = name
	return b
}

// WithType sets the account type.
func (b *AccountBuilder) WithType(accountType string) *AccountBuilder {
	b.Type = accountType
	return b
}

// WithConfig sets the type-specific config.
func (b *AccountBuilder) WithConfig(config *model.AccountConfig) *AccountBuilder {
	b.Config = config
	return b
}

// AsDefault marks the account as the default.
func (b *AccountBuilder) AsDefault() *AccountBuilder {
	b.IsDefault = true
	return b
}

// Build creates the account in the database and returns it.
func (b *AccountBuilder) Build(t *testing.T, db *sql.DB) model.SavingsAccount {
	t.Helper()

	config := sql.NullString{}
	if b.Config != nil {
		data, err := json.Marshal(b.Config)
		if err != nil {
			t.Fatalf("Failed to marshal account config: %v", err)
		}
		config = sql.NullString{String: string(data), Valid: true}
	}

	query := `
		INSERT INTO savings_account (id, name, type, description, currency, is_default, config)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.Name, b.Type, b.Description, b.Currency, b.IsDefault, config)
	if err != nil {
		t.Fatalf("Failed to create test account: %v", err)
	}

	return model.SavingsAccount{
		ID:          b.ID,
		Name:        b.Name,
		Type:        b.Type,
		Description: b.Description,
		Currency:    b.Currency,
		IsDefault:   b.IsDefault,
		Config:      b.Config,
	}
}

// TransactionBuilder provides a fluent interface for creating test transactions.
// The total amount follows the creation-time derivation: quantity*unitPrice
// plus fees for buys, minus fees for sells, unitPrice alone otherwise.
type TransactionBuilder struct {
	ID        string
	AccountID string
	Date      time.Time
	Type      string
	AssetName string
	Isin      string
	Ticker    string
	Quantity  float64
	UnitPrice float64
	Fees      float64
}

// NewTransaction creates a TransactionBuilder for a buy with sensible defaults.
func NewTransaction(accountID string) *TransactionBuilder {
	return &TransactionBuilder{
		ID:        MakeID(),
		AccountID: accountID,
		Date:      time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Type:      model.TransactionBuy,
		AssetName: "Test ETF",
		Ticker:    "CW8.PA",
		Quantity:  10,
		UnitPrice: 100,
	}
}

// On sets the transaction date.
func (b *TransactionBuilder) On(date time.Time) *TransactionBuilder {
	b.Date = date
	return b
}

// OfType sets the transaction type.
func (b *TransactionBuilder) OfType(transactionType string) *TransactionBuilder {
	b.Type = transactionType
	return b
}

// WithTicker sets the ticker.
func (b *TransactionBuilder) WithTicker(ticker string) *TransactionBuilder {
	b.Ticker = ticker
	return b
}

// WithQuantity sets the quantity.
func (b *TransactionBuilder) WithQuantity(quantity float64) *TransactionBuilder {
	b.Quantity = quantity
	return b
}

// WithUnitPrice sets the unit price.
func (b *TransactionBuilder) WithUnitPrice(price float64) *TransactionBuilder {
	b.UnitPrice = price
	return b
}

// WithFees sets the fees.
func (b *TransactionBuilder) WithFees(fees float64) *TransactionBuilder {
	b.Fees = fees
	return b
}

// Build creates the transaction in the database and returns it.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	var totalAmount float64
	switch b.Type {
	case model.TransactionBuy:
		totalAmount = b.Quantity*b.UnitPrice + b.Fees
	case model.TransactionSell:
		totalAmount = b.Quantity*b.UnitPrice - b.Fees
	default:
		totalAmount = b.UnitPrice
	}

	createdAt := time.Now().UTC()

	query := `
		INSERT INTO "transaction"
			(id, account_id, date, type, asset_name, isin, ticker,
			 quantity, unit_price, fees, total_amount, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID, b.AccountID, b.Date.Format("2006-01-02"), b.Type, b.AssetName, b.Isin, b.Ticker,
		b.Quantity, b.UnitPrice, b.Fees, totalAmount, createdAt.Format(time.RFC3339),
	)
	if err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}

	return model.Transaction{
		ID:          b.ID,
		AccountID:   b.AccountID,
		Date:        b.Date,
		Type:        b.Type,
		AssetName:   b.AssetName,
		Isin:        b.Isin,
		Ticker:      b.Ticker,
		Quantity:    b.Quantity,
		UnitPrice:   b.UnitPrice,
		Fees:        b.Fees,
		TotalAmount: totalAmount,
		CreatedAt:   createdAt,
	}
}

// Convenience functions

// CreateAccount creates an account with the given type and default values.
func CreateAccount(t *testing.T, db *sql.DB, accountType string) model.SavingsAccount {
	t.Helper()
	return NewAccount().WithType(accountType).Build(t, db)
}

// CreateAnnualValue records a year-end value for an account.
func CreateAnnualValue(t *testing.T, db *sql.DB, accountID string, year int, endValue float64) model.AnnualValue {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO annual_value (account_id, year, end_value) VALUES (?, ?, ?)`,
		accountID, year, endValue,
	)
	if err != nil {
		t.Fatalf("Failed to create test annual value: %v", err)
	}

	return model.AnnualValue{AccountID: accountID, Year: year, EndValue: endValue}
}

// CreateBalance records a balance snapshot for an account.
func CreateBalance(t *testing.T, db *sql.DB, accountID string, date time.Time, balance float64) model.BalanceRecord {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO balance_record (account_id, date, balance) VALUES (?, ?, ?)`,
		accountID, date.Format("2006-01-02"), balance,
	)
	if err != nil {
		t.Fatalf("Failed to create test balance: %v", err)
	}

	return model.BalanceRecord{AccountID: accountID, Date: date, Balance: balance}
}

// CreateDeposit records a profit-sharing deposit for an account.
func CreateDeposit(t *testing.T, db *sql.DB, accountID string, depositDate time.Time, amount, currentValue float64) model.DepositRecord {
	t.Helper()

	deposit := model.DepositRecord{
		ID:            MakeID(),
		AccountID:     accountID,
		DepositDate:   depositDate,
		DepositAmount: amount,
		LockEndDate:   depositDate.AddDate(5, 0, 0),
		CurrentValue:  currentValue,
		ValueDate:     depositDate,
	}

	_, err := db.Exec(
		`INSERT INTO deposit_record
			(id, account_id, deposit_date, deposit_amount, strategy, lock_end_date, current_value, value_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		deposit.ID, deposit.AccountID, deposit.DepositDate.Format("2006-01-02"), deposit.DepositAmount,
		deposit.Strategy, deposit.LockEndDate.Format("2006-01-02"), deposit.CurrentValue, deposit.ValueDate.Format("2006-01-02"),
	)
	if err != nil {
		t.Fatalf("Failed to create test deposit: %v", err)
	}

	return deposit
}
