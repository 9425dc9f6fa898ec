package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mlefevre/savings-tracker-backend/internal/apperrors"
	"github.com/mlefevre/savings-tracker-backend/internal/model"
)

// DepositRepository provides data access methods for the deposit_record table.
type DepositRepository struct {
	db *sql.DB
}

// NewDepositRepository creates a new DepositRepository with the provided database connection.
func NewDepositRepository(db *sql.DB) *DepositRepository {
	return &DepositRepository{db: db}
}

// GetDeposits retrieves all deposit records for an account, oldest deposit first.
func (s *DepositRepository) GetDeposits(accountID string) ([]model.DepositRecord, error) {
	query := `
		SELECT id, account_id, deposit_date, deposit_amount, strategy,
		       lock_end_date, current_value, value_date
		FROM deposit_record
		WHERE account_id = ?
		ORDER BY deposit_date ASC
	`

	rows, err := s.db.Query(query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query deposit_record table: %w", err)
	}
	defer rows.Close()

	deposits := []model.DepositRecord{}

	for rows.Next() {
		var d model.DepositRecord
		var depositDateStr, lockEndDateStr, valueDateStr string
		var strategy sql.NullString

		err := rows.Scan(
			&d.ID, &d.AccountID, &depositDateStr, &d.DepositAmount,
			&strategy, &lockEndDateStr, &d.CurrentValue, &valueDateStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan deposit_record row: %w", err)
		}

		d.Strategy = strategy.String
		if d.DepositDate, err = ParseTime(depositDateStr); err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}
		if d.LockEndDate, err = ParseTime(lockEndDateStr); err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}
		if d.ValueDate, err = ParseTime(valueDateStr); err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		deposits = append(deposits, d)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating deposit_record table: %w", err)
	}

	return deposits, nil
}

// GetDeposit retrieves a single deposit record by its ID.
// Returns apperrors.ErrDepositNotFound if no deposit exists with the given ID.
func (s *DepositRepository) GetDeposit(depositID string) (model.DepositRecord, error) {
	query := `
		SELECT id, account_id, deposit_date, deposit_amount, strategy,
		       lock_end_date, current_value, value_date
		FROM deposit_record
		WHERE id = ?
	`

	var d model.DepositRecord
	var depositDateStr, lockEndDateStr, valueDateStr string
	var strategy sql.NullString

	err := s.db.QueryRow(query, depositID).Scan(
		&d.ID, &d.AccountID, &depositDateStr, &d.DepositAmount,
		&strategy, &lockEndDateStr, &d.CurrentValue, &valueDateStr,
	)
	if err == sql.ErrNoRows {
		return model.DepositRecord{}, apperrors.ErrDepositNotFound
	}
	if err != nil {
		return model.DepositRecord{}, fmt.Errorf("failed to query deposit_record table: %w", err)
	}

	d.Strategy = strategy.String
	if d.DepositDate, err = ParseTime(depositDateStr); err != nil {
		return model.DepositRecord{}, fmt.Errorf("failed to parse date: %w", err)
	}
	if d.LockEndDate, err = ParseTime(lockEndDateStr); err != nil {
		return model.DepositRecord{}, fmt.Errorf("failed to parse date: %w", err)
	}
	if d.ValueDate, err = ParseTime(valueDateStr); err != nil {
		return model.DepositRecord{}, fmt.Errorf("failed to parse date: %w", err)
	}

	return d, nil
}

// InsertDeposit persists a new deposit record.
func (s *DepositRepository) InsertDeposit(ctx context.Context, d model.DepositRecord) error {
	query := `
		INSERT INTO deposit_record
			(id, account_id, deposit_date, deposit_amount, strategy,
			 lock_end_date, current_value, value_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		d.ID, d.AccountID, d.DepositDate.Format(dateFormat), d.DepositAmount,
		d.Strategy, d.LockEndDate.Format(dateFormat), d.CurrentValue, d.ValueDate.Format(dateFormat),
	)
	if err != nil {
		return fmt.Errorf("failed to insert deposit_record: %w", err)
	}

	return nil
}

// UpdateDeposit replaces an existing deposit record.
// Returns apperrors.ErrDepositNotFound if no deposit exists with the given ID.
func (s *DepositRepository) UpdateDeposit(ctx context.Context, d model.DepositRecord) error {
	query := `
		UPDATE deposit_record
		SET deposit_date = ?, deposit_amount = ?, strategy = ?,
		    lock_end_date = ?, current_value = ?, value_date = ?
		WHERE id = ? AND account_id = ?
	`
	result, err := s.db.ExecContext(ctx, query,
		d.DepositDate.Format(dateFormat), d.DepositAmount, d.Strategy,
		d.LockEndDate.Format(dateFormat), d.CurrentValue, d.ValueDate.Format(dateFormat),
		d.ID, d.AccountID,
	)
	if err != nil {
		return fmt.Errorf("failed to update deposit_record: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrDepositNotFound
	}

	return nil
}

// DeleteDeposit removes a deposit record.
// Returns apperrors.ErrDepositNotFound if no deposit exists with the given ID.
func (s *DepositRepository) DeleteDeposit(ctx context.Context, depositID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM deposit_record WHERE id = ?`, depositID)
	if err != nil {
		return fmt.Errorf("failed to delete deposit_record: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrDepositNotFound
	}

	return nil
}
