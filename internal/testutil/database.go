package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the goose migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE savings_account (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			type VARCHAR(20) NOT NULL,
			description TEXT,
			currency VARCHAR(3) NOT NULL,
			is_default BOOLEAN NOT NULL DEFAULT FALSE,
			config TEXT
		);

		CREATE TABLE "transaction" (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			account_id VARCHAR(36) NOT NULL REFERENCES savings_account(id) ON DELETE CASCADE,
			date DATE NOT NULL,
			type VARCHAR(10) NOT NULL,
			asset_name VARCHAR(100) NOT NULL,
			isin VARCHAR(12),
			ticker VARCHAR(20) NOT NULL,
			quantity REAL NOT NULL,
			unit_price REAL NOT NULL,
			fees REAL NOT NULL DEFAULT 0,
			total_amount REAL NOT NULL,
			created_at DATETIME NOT NULL
		);
		CREATE INDEX idx_transaction_account_date ON "transaction"(account_id, date);

		CREATE TABLE annual_value (
			account_id VARCHAR(36) NOT NULL REFERENCES savings_account(id) ON DELETE CASCADE,
			year INTEGER NOT NULL,
			end_value REAL NOT NULL,
			PRIMARY KEY (account_id, year)
		);

		CREATE TABLE balance_record (
			account_id VARCHAR(36) NOT NULL REFERENCES savings_account(id) ON DELETE CASCADE,
			date DATE NOT NULL,
			balance REAL NOT NULL,
			PRIMARY KEY (account_id, date)
		);

		CREATE TABLE deposit_record (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			account_id VARCHAR(36) NOT NULL REFERENCES savings_account(id) ON DELETE CASCADE,
			deposit_date DATE NOT NULL,
			deposit_amount REAL NOT NULL,
			strategy VARCHAR(100),
			lock_end_date DATE NOT NULL,
			current_value REAL NOT NULL,
			value_date DATE NOT NULL
		);

		CREATE TABLE asset_price (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			ticker VARCHAR(20) NOT NULL,
			date DATE NOT NULL,
			price REAL NOT NULL,
			last_updated DATETIME NOT NULL,
			UNIQUE (ticker, date)
		);
	`

	_, err := db.Exec(schema)
	return err
}
