package model

import "time"

// Transaction types for PEA account ledgers.
const (
	TransactionBuy      = "buy"
	TransactionSell     = "sell"
	TransactionDividend = "dividend"
	TransactionFee      = "fee"
)

// ValidTransactionType contains the allowed transaction type values.
var ValidTransactionType = map[string]bool{
	TransactionBuy: true, TransactionSell: true,
	TransactionDividend: true, TransactionFee: true,
}

// Transaction represents an immutable ledger event for a savings account.
// TotalAmount is derived once at creation time (quantity*unitPrice + fees for
// buys, quantity*unitPrice - fees for sells) and treated as authoritative
// afterwards; downstream calculations never recompute it from quantity and
// price. Edits replace the whole record.
type Transaction struct {
	ID          string    `json:"id"`
	AccountID   string    `json:"accountId"`
	Date        time.Time `json:"date"`
	Type        string    `json:"type"`
	AssetName   string    `json:"assetName"`
	Isin        string    `json:"isin"`
	Ticker      string    `json:"ticker"`
	Quantity    float64   `json:"quantity"`
	UnitPrice   float64   `json:"unitPrice"`
	Fees        float64   `json:"fees"`
	TotalAmount float64   `json:"totalAmount"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}
