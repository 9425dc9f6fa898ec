package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mlefevre/savings-tracker-backend/internal/apperrors"
	"github.com/mlefevre/savings-tracker-backend/internal/model"
)

// BalanceRepository provides data access methods for the balance_record table.
type BalanceRepository struct {
	db *sql.DB
}

// NewBalanceRepository creates a new BalanceRepository with the provided database connection.
func NewBalanceRepository(db *sql.DB) *BalanceRepository {
	return &BalanceRepository{db: db}
}

// GetBalances retrieves all balance snapshots for an account, newest first.
func (s *BalanceRepository) GetBalances(accountID string) ([]model.BalanceRecord, error) {
	query := `
		SELECT account_id, date, balance
		FROM balance_record
		WHERE account_id = ?
		ORDER BY date DESC
	`

	rows, err := s.db.Query(query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query balance_record table: %w", err)
	}
	defer rows.Close()

	records := []model.BalanceRecord{}

	for rows.Next() {
		var r model.BalanceRecord
		var dateStr string
		if err := rows.Scan(&r.AccountID, &dateStr, &r.Balance); err != nil {
			return nil, fmt.Errorf("failed to scan balance_record row: %w", err)
		}
		r.Date, err = ParseTime(dateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}
		records = append(records, r)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating balance_record table: %w", err)
	}

	return records, nil
}

// GetLatestBalance retrieves the most recent balance snapshot for an account.
// Returns apperrors.ErrBalanceNotFound if the account has no snapshots.
func (s *BalanceRepository) GetLatestBalance(accountID string) (model.BalanceRecord, error) {
	query := `
		SELECT account_id, date, balance
		FROM balance_record
		WHERE account_id = ?
		ORDER BY date DESC
		LIMIT 1
	`

	var r model.BalanceRecord
	var dateStr string
	err := s.db.QueryRow(query, accountID).Scan(&r.AccountID, &dateStr, &r.Balance)
	if err == sql.ErrNoRows {
		return model.BalanceRecord{}, apperrors.ErrBalanceNotFound
	}
	if err != nil {
		return model.BalanceRecord{}, fmt.Errorf("failed to scan balance_record row: %w", err)
	}

	r.Date, err = ParseTime(dateStr)
	if err != nil {
		return model.BalanceRecord{}, fmt.Errorf("failed to parse date: %w", err)
	}

	return r, nil
}

// UpsertBalance inserts a balance snapshot or replaces the existing one for
// the same account and date.
func (s *BalanceRepository) UpsertBalance(ctx context.Context, r model.BalanceRecord) error {
	query := `
		INSERT INTO balance_record (account_id, date, balance)
		VALUES (?, ?, ?)
		ON CONFLICT (account_id, date) DO UPDATE SET balance = excluded.balance
	`
	if _, err := s.db.ExecContext(ctx, query, r.AccountID, r.Date.Format(dateFormat), r.Balance); err != nil {
		return fmt.Errorf("failed to upsert balance_record: %w", err)
	}

	return nil
}
