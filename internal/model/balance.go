package model

import "time"

// BalanceRecord is a dated balance snapshot for bank-style accounts
// (CompteCourant, PEL, LivretA, AssuranceVie). One record per account per
// date; recording the same date again replaces the previous value.
type BalanceRecord struct {
	AccountID string    `json:"accountId"`
	Date      time.Time `json:"date"`
	Balance   float64   `json:"balance"`
}

// DepositRecord is a profit-sharing (Intéressement) deposit with its most
// recent known valuation.
type DepositRecord struct {
	ID            string    `json:"id"`
	AccountID     string    `json:"accountId"`
	DepositDate   time.Time `json:"depositDate"`
	DepositAmount float64   `json:"depositAmount"`
	Strategy      string    `json:"strategy"`
	LockEndDate   time.Time `json:"lockEndDate"`
	CurrentValue  float64   `json:"currentValue"`
	ValueDate     time.Time `json:"valueDate"`
}
