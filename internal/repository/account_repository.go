package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/mlefevre/savings-tracker-backend/internal/apperrors"
	"github.com/mlefevre/savings-tracker-backend/internal/model"
)

// AccountRepository provides data access methods for the savings_account table.
type AccountRepository struct {
	db *sql.DB
}

// NewAccountRepository creates a new AccountRepository with the provided database connection.
func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// GetAccounts retrieves all savings accounts ordered by name.
// Returns an empty slice if no accounts exist.
func (s *AccountRepository) GetAccounts() ([]model.SavingsAccount, error) {
	query := `
		SELECT id, name, type, description, currency, is_default, config
		FROM savings_account
		ORDER BY name ASC
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query savings_account table: %w", err)
	}
	defer rows.Close()

	accounts := []model.SavingsAccount{}

	for rows.Next() {
		account, err := scanAccount(rows.Scan)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating savings_account table: %w", err)
	}

	return accounts, nil
}

// GetAccount retrieves a single savings account by ID.
// Returns apperrors.ErrAccountNotFound if no account exists with the given ID.
func (s *AccountRepository) GetAccount(accountID string) (model.SavingsAccount, error) {
	query := `
		SELECT id, name, type, description, currency, is_default, config
		FROM savings_account
		WHERE id = ?
	`

	account, err := scanAccount(func(dest ...any) error {
		return s.db.QueryRow(query, accountID).Scan(dest...)
	})
	if err == sql.ErrNoRows {
		return model.SavingsAccount{}, apperrors.ErrAccountNotFound
	}
	if err != nil {
		return model.SavingsAccount{}, err
	}

	return account, nil
}

// InsertAccount persists a new savings account.
func (s *AccountRepository) InsertAccount(ctx context.Context, account model.SavingsAccount) error {
	config, err := marshalConfig(account.Config)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO savings_account (id, name, type, description, currency, is_default, config)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err = s.db.ExecContext(ctx, query,
		account.ID, account.Name, account.Type, account.Description,
		account.Currency, account.IsDefault, config,
	)
	if err != nil {
		return fmt.Errorf("failed to insert savings_account: %w", err)
	}

	return nil
}

// UpdateAccount replaces an existing savings account record.
// Returns apperrors.ErrAccountNotFound if no account exists with the given ID.
func (s *AccountRepository) UpdateAccount(ctx context.Context, account model.SavingsAccount) error {
	config, err := marshalConfig(account.Config)
	if err != nil {
		return err
	}

	query := `
		UPDATE savings_account
		SET name = ?, type = ?, description = ?, currency = ?, is_default = ?, config = ?
		WHERE id = ?
	`
	result, err := s.db.ExecContext(ctx, query,
		account.Name, account.Type, account.Description,
		account.Currency, account.IsDefault, config, account.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update savings_account: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrAccountNotFound
	}

	return nil
}

// DeleteAccount removes a savings account and, via foreign keys, all its
// transactions, annual values, balances and deposits.
// Returns apperrors.ErrAccountNotFound if no account exists with the given ID.
func (s *AccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM savings_account WHERE id = ?`, accountID)
	if err != nil {
		return fmt.Errorf("failed to delete savings_account: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrAccountNotFound
	}

	return nil
}

// SetDefault marks the given account as the default and clears the flag on
// every other account, in a single transaction. The default flag is exclusive.
// Returns apperrors.ErrAccountNotFound if no account exists with the given ID.
func (s *AccountRepository) SetDefault(ctx context.Context, accountID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `UPDATE savings_account SET is_default = TRUE WHERE id = ?`, accountID)
	if err != nil {
		return fmt.Errorf("failed to set default account: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrAccountNotFound
	}

	if _, err := tx.ExecContext(ctx, `UPDATE savings_account SET is_default = FALSE WHERE id != ?`, accountID); err != nil {
		return fmt.Errorf("failed to clear default flags: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit default account change: %w", err)
	}

	return nil
}

// scanAccount scans one savings_account row, decoding the config JSON blob.
func scanAccount(scan func(dest ...any) error) (model.SavingsAccount, error) {
	var account model.SavingsAccount
	var description, config sql.NullString

	err := scan(
		&account.ID,
		&account.Name,
		&account.Type,
		&description,
		&account.Currency,
		&account.IsDefault,
		&config,
	)
	if err == sql.ErrNoRows {
		return model.SavingsAccount{}, err
	}
	if err != nil {
		return model.SavingsAccount{}, fmt.Errorf("failed to scan savings_account row: %w", err)
	}

	account.Description = description.String

	if config.Valid && config.String != "" {
		var cfg model.AccountConfig
		if err := json.Unmarshal([]byte(config.String), &cfg); err != nil {
			return model.SavingsAccount{}, fmt.Errorf("failed to decode account config: %w", err)
		}
		account.Config = &cfg
	}

	return account, nil
}

// marshalConfig encodes the optional config blob for storage.
func marshalConfig(config *model.AccountConfig) (sql.NullString, error) {
	if config == nil {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(config)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("failed to encode account config: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}
