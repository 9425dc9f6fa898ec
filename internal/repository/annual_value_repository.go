package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mlefevre/savings-tracker-backend/internal/apperrors"
	"github.com/mlefevre/savings-tracker-backend/internal/model"
)

// AnnualValueRepository provides data access methods for the annual_value table.
type AnnualValueRepository struct {
	db *sql.DB
}

// NewAnnualValueRepository creates a new AnnualValueRepository with the provided database connection.
func NewAnnualValueRepository(db *sql.DB) *AnnualValueRepository {
	return &AnnualValueRepository{db: db}
}

// GetAnnualValues retrieves all year-end values for an account, ascending by year.
func (s *AnnualValueRepository) GetAnnualValues(accountID string) ([]model.AnnualValue, error) {
	query := `
		SELECT account_id, year, end_value
		FROM annual_value
		WHERE account_id = ?
		ORDER BY year ASC
	`

	rows, err := s.db.Query(query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query annual_value table: %w", err)
	}
	defer rows.Close()

	values := []model.AnnualValue{}

	for rows.Next() {
		var v model.AnnualValue
		if err := rows.Scan(&v.AccountID, &v.Year, &v.EndValue); err != nil {
			return nil, fmt.Errorf("failed to scan annual_value row: %w", err)
		}
		values = append(values, v)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating annual_value table: %w", err)
	}

	return values, nil
}

// UpsertAnnualValue inserts a year-end value or replaces the existing one for
// the same account and year.
func (s *AnnualValueRepository) UpsertAnnualValue(ctx context.Context, v model.AnnualValue) error {
	query := `
		INSERT INTO annual_value (account_id, year, end_value)
		VALUES (?, ?, ?)
		ON CONFLICT (account_id, year) DO UPDATE SET end_value = excluded.end_value
	`
	if _, err := s.db.ExecContext(ctx, query, v.AccountID, v.Year, v.EndValue); err != nil {
		return fmt.Errorf("failed to upsert annual_value: %w", err)
	}

	return nil
}

// DeleteAnnualValue removes the year-end value for an account and year.
// Returns apperrors.ErrAnnualValueNotFound if no record exists.
func (s *AnnualValueRepository) DeleteAnnualValue(ctx context.Context, accountID string, year int) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM annual_value WHERE account_id = ? AND year = ?`, accountID, year)
	if err != nil {
		return fmt.Errorf("failed to delete annual_value: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrAnnualValueNotFound
	}

	return nil
}
