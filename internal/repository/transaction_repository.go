package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mlefevre/savings-tracker-backend/internal/apperrors"
	"github.com/mlefevre/savings-tracker-backend/internal/model"
)

// TransactionRepository provides data access methods for the transaction table.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// GetTransactions retrieves all transactions for an account, sorted by date
// ascending with ties broken by insertion time. The position aggregation fold
// depends on this ordering; callers must not re-sort.
func (s *TransactionRepository) GetTransactions(accountID string) ([]model.Transaction, error) {
	query := `
		SELECT id, account_id, date, type, asset_name, isin, ticker,
		       quantity, unit_price, fees, total_amount, created_at
		FROM "transaction"
		WHERE account_id = ?
		ORDER BY date ASC, created_at ASC
	`

	rows, err := s.db.Query(query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}

	for rows.Next() {
		transaction, err := scanTransaction(rows.Scan)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, transaction)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return transactions, nil
}

// GetTransaction retrieves a single transaction by ID.
// Returns apperrors.ErrTransactionNotFound if no transaction exists with the given ID.
func (s *TransactionRepository) GetTransaction(transactionID string) (model.Transaction, error) {
	query := `
		SELECT id, account_id, date, type, asset_name, isin, ticker,
		       quantity, unit_price, fees, total_amount, created_at
		FROM "transaction"
		WHERE id = ?
	`

	transaction, err := scanTransaction(func(dest ...any) error {
		return s.db.QueryRow(query, transactionID).Scan(dest...)
	})
	if err == sql.ErrNoRows {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}
	if err != nil {
		return model.Transaction{}, err
	}

	return transaction, nil
}

// InsertTransaction persists a new transaction record.
func (s *TransactionRepository) InsertTransaction(ctx context.Context, t model.Transaction) error {
	query := `
		INSERT INTO "transaction"
			(id, account_id, date, type, asset_name, isin, ticker,
			 quantity, unit_price, fees, total_amount, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		t.ID, t.AccountID, t.Date.Format(dateFormat), t.Type, t.AssetName, t.Isin, t.Ticker,
		t.Quantity, t.UnitPrice, t.Fees, t.TotalAmount, t.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	return nil
}

// UpdateTransaction replaces an existing transaction record in full; edits
// never mutate fields in place.
// Returns apperrors.ErrTransactionNotFound if no transaction exists with the given ID.
func (s *TransactionRepository) UpdateTransaction(ctx context.Context, t model.Transaction) error {
	query := `
		UPDATE "transaction"
		SET date = ?, type = ?, asset_name = ?, isin = ?, ticker = ?,
		    quantity = ?, unit_price = ?, fees = ?, total_amount = ?
		WHERE id = ? AND account_id = ?
	`
	result, err := s.db.ExecContext(ctx, query,
		t.Date.Format(dateFormat), t.Type, t.AssetName, t.Isin, t.Ticker,
		t.Quantity, t.UnitPrice, t.Fees, t.TotalAmount, t.ID, t.AccountID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}

	return nil
}

// DeleteTransaction removes a transaction record.
// Returns apperrors.ErrTransactionNotFound if no transaction exists with the given ID.
func (s *TransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM "transaction" WHERE id = ?`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}

	return nil
}

// DistinctTickers returns every ticker that appears in any buy or sell
// transaction across all accounts. Used by the price refresh job to know
// which symbols to fetch.
func (s *TransactionRepository) DistinctTickers() ([]string, error) {
	query := `
		SELECT DISTINCT ticker
		FROM "transaction"
		WHERE type IN ('buy', 'sell') AND ticker != ''
		ORDER BY ticker ASC
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query distinct tickers: %w", err)
	}
	defer rows.Close()

	tickers := []string{}
	for rows.Next() {
		var ticker string
		if err := rows.Scan(&ticker); err != nil {
			return nil, fmt.Errorf("failed to scan ticker: %w", err)
		}
		tickers = append(tickers, ticker)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tickers: %w", err)
	}

	return tickers, nil
}

// scanTransaction scans one transaction row, parsing the stored date strings.
func scanTransaction(scan func(dest ...any) error) (model.Transaction, error) {
	var t model.Transaction
	var dateStr, createdAtStr string
	var isin sql.NullString

	err := scan(
		&t.ID,
		&t.AccountID,
		&dateStr,
		&t.Type,
		&t.AssetName,
		&isin,
		&t.Ticker,
		&t.Quantity,
		&t.UnitPrice,
		&t.Fees,
		&t.TotalAmount,
		&createdAtStr,
	)
	if err == sql.ErrNoRows {
		return model.Transaction{}, err
	}
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to scan transaction row: %w", err)
	}

	t.Isin = isin.String

	t.Date, err = ParseTime(dateStr)
	if err != nil || t.Date.IsZero() {
		return model.Transaction{}, fmt.Errorf("failed to parse date: %w", err)
	}

	t.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil || t.CreatedAt.IsZero() {
		return model.Transaction{}, fmt.Errorf("failed to parse date: %w", err)
	}

	return t, nil
}
