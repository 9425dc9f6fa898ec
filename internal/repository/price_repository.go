package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mlefevre/savings-tracker-backend/internal/apperrors"
	"github.com/mlefevre/savings-tracker-backend/internal/model"
)

// PriceRepository provides data access methods for the asset_price table,
// which accumulates one dated price row per ticker per day. The price
// scheduler appends to it on every run; the rows back the history endpoint
// and serve as a fallback when the live provider is unreachable.
type PriceRepository struct {
	db *sql.DB
}

// NewPriceRepository creates a new PriceRepository with the provided database connection.
func NewPriceRepository(db *sql.DB) *PriceRepository {
	return &PriceRepository{db: db}
}

// GetLatestPrice retrieves the most recent stored price for a ticker.
// Returns apperrors.ErrPriceNotFound if the ticker has never been fetched.
func (s *PriceRepository) GetLatestPrice(ticker string) (model.AssetPrice, error) {
	query := `
		SELECT id, ticker, date, price, last_updated
		FROM asset_price
		WHERE ticker = ?
		ORDER BY date DESC
		LIMIT 1
	`

	var p model.AssetPrice
	var dateStr, lastUpdatedStr string
	err := s.db.QueryRow(query, ticker).Scan(&p.ID, &p.Ticker, &dateStr, &p.Price, &lastUpdatedStr)
	if err == sql.ErrNoRows {
		return model.AssetPrice{}, apperrors.ErrPriceNotFound
	}
	if err != nil {
		return model.AssetPrice{}, fmt.Errorf("failed to scan asset_price row: %w", err)
	}

	if p.Date, err = ParseTime(dateStr); err != nil {
		return model.AssetPrice{}, fmt.Errorf("failed to parse date: %w", err)
	}
	if p.LastUpdated, err = ParseTime(lastUpdatedStr); err != nil {
		return model.AssetPrice{}, fmt.Errorf("failed to parse date: %w", err)
	}

	return p, nil
}

// GetPriceHistory retrieves the stored daily price series for a ticker over
// the given date range, ascending by date. An empty slice means no stored
// rows in range, not an error.
func (s *PriceRepository) GetPriceHistory(ticker string, from, to time.Time) ([]model.PricePoint, error) {
	query := `
		SELECT date, price
		FROM asset_price
		WHERE ticker = ? AND date >= ? AND date <= ?
		ORDER BY date ASC
	`

	rows, err := s.db.Query(query, ticker, from.Format(dateFormat), to.Format(dateFormat))
	if err != nil {
		return nil, fmt.Errorf("failed to query asset_price rows: %w", err)
	}
	defer rows.Close()

	points := []model.PricePoint{}
	for rows.Next() {
		var point model.PricePoint
		var dateStr string
		if err := rows.Scan(&dateStr, &point.Price); err != nil {
			return nil, fmt.Errorf("failed to scan asset_price row: %w", err)
		}
		if point.Date, err = ParseTime(dateStr); err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}
		points = append(points, point)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate asset_price rows: %w", err)
	}

	return points, nil
}

// UpsertPrice stores the price for a ticker on the given date. Refreshing the
// same day replaces that day's row; a new day appends to the series.
func (s *PriceRepository) UpsertPrice(ctx context.Context, ticker string, date time.Time, price float64) error {
	query := `
		INSERT INTO asset_price (id, ticker, date, price, last_updated)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (ticker, date) DO UPDATE SET
			price = excluded.price,
			last_updated = excluded.last_updated
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.NewString(), ticker, date.Format(dateFormat), price,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert asset_price: %w", err)
	}

	return nil
}
