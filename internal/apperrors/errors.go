package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrAccountNotFound indicates that a savings account with the given ID does not exist.
	ErrAccountNotFound = errors.New("savings account not found")

	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrAnnualValueNotFound indicates no year-end value record for the given account and year.
	ErrAnnualValueNotFound = errors.New("annual value not found")

	// ErrDepositNotFound indicates that a deposit record with the given ID does not exist.
	ErrDepositNotFound = errors.New("deposit not found")

	// ErrBalanceNotFound indicates that no balance record exists for the given account.
	ErrBalanceNotFound = errors.New("balance record not found")

	// ErrPriceNotFound indicates that no price could be resolved for a ticker.
	ErrPriceNotFound = errors.New("price not found")
)

// Calculation errors represent cash-flow sets the return engine cannot resolve
// to a rate. Callers must treat these as "rate unknown", never as a 0% return.
var (
	// ErrDegenerateCashflows indicates a cash-flow set for which a rate is
	// mathematically undefined: fewer than two flows, single-sided (all
	// inflows or all outflows), or spanning zero time.
	ErrDegenerateCashflows = errors.New("degenerate cash-flow set")

	// ErrNoConvergence indicates the root-finder exhausted its iteration
	// budget without the residual dropping below tolerance.
	ErrNoConvergence = errors.New("rate calculation did not converge")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInsufficientQuantity indicates that a sell transaction exceeds the
	// quantity held for an instrument at that point in the ledger.
	ErrInsufficientQuantity = errors.New("insufficient quantity for sale")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrInvalidDateRange indicates that the provided date range is invalid
	// (e.g., start date is after end date).
	ErrInvalidDateRange = errors.New("invalid date range")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data. These errors indicate that an operation failed, but not due
// to missing entities or validation issues.
var (
	ErrFailedToRetrieveAccounts     = errors.New("failed to retrieve savings accounts")
	ErrFailedToRetrieveAccount      = errors.New("failed to retrieve savings account")
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRetrieveTransaction  = errors.New("failed to retrieve transaction")
	ErrFailedToRetrieveAnnualValues = errors.New("failed to retrieve annual values")
	ErrFailedToRetrieveBalances     = errors.New("failed to retrieve balance records")
	ErrFailedToRetrieveDeposits     = errors.New("failed to retrieve deposit records")
	ErrFailedToGetSummary           = errors.New("failed to get account summary")
	ErrFailedToGetPositions         = errors.New("failed to get account positions")
	ErrFailedToGetNetWorth          = errors.New("failed to get net worth")
	ErrFailedToGetAnnualReturns     = errors.New("failed to get annual returns")
)

// Data integrity errors represent inconsistencies or corruption in the data.
var (
	// ErrDataIntegrity indicates that the transaction ledger is in a state the
	// aggregation fold cannot process: a sell against a zero holding, a sell
	// exceeding the held quantity, or input arriving out of chronological
	// order. Fatal for that account's aggregation; never silently clamped.
	ErrDataIntegrity = errors.New("transaction ledger integrity violation")
)
