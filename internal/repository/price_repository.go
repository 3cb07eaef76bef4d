package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/apperrors"
	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/model"
)

// dateFormat is how calendar days are stored in the price_history table.
const dateFormat = "2006-01-02"

// PriceRepository provides data access methods for the price_history table.
// It stores one close per ticker per trading day and serves ordered series
// back to the analytics layer.
type PriceRepository struct {
	db *sql.DB
}

// NewPriceRepository creates a new PriceRepository with the provided database connection.
func NewPriceRepository(db *sql.DB) *PriceRepository {
	return &PriceRepository{db: db}
}

// GetSeries retrieves the stored daily closes for a ticker between start and
// end inclusive, ordered oldest first. Returns an empty series when no rows
// match; an absent series is data the caller must handle, not an error.
func (r *PriceRepository) GetSeries(ticker string, start, end time.Time) (model.PriceSeries, error) {
	query := `
          SELECT date, close
          FROM price_history
          WHERE ticker = ? AND date >= ? AND date <= ?
          ORDER BY date ASC
      `

	rows, err := r.db.Query(query, ticker, start.Format(dateFormat), end.Format(dateFormat))
	if err != nil {
		return nil, fmt.Errorf("failed to query price_history table: %w", err)
	}
	defer rows.Close()

	series := model.PriceSeries{}

	for rows.Next() {
		var dateStr string
		var closePrice float64

		if err := rows.Scan(&dateStr, &closePrice); err != nil {
			return nil, fmt.Errorf("failed to scan price_history row: %w", err)
		}

		date, err := time.Parse(dateFormat, dateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse stored price date %q: %w", dateStr, err)
		}

		series = append(series, model.PricePoint{Date: date, Close: closePrice})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating price_history table: %w", err)
	}

	return series, nil
}

// UpsertSeries stores daily closes for a ticker, replacing any existing
// close for the same day. Runs in a single transaction so a partial refresh
// never leaves the table half-updated.
func (r *PriceRepository) UpsertSeries(ticker string, series model.PriceSeries) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin price upsert transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
          INSERT INTO price_history (id, ticker, date, close)
          VALUES (?, ?, ?, ?)
          ON CONFLICT (ticker, date) DO UPDATE SET close = excluded.close
      `)
	if err != nil {
		return fmt.Errorf("failed to prepare price upsert: %w", err)
	}
	defer stmt.Close()

	for _, point := range series {
		_, err := stmt.Exec(uuid.NewString(), ticker, point.Date.Format(dateFormat), point.Close)
		if err != nil {
			return fmt.Errorf("failed to upsert price for %s on %s: %w", ticker, point.Date.Format(dateFormat), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit price upsert: %w", err)
	}

	return nil
}

// ListTickers returns all distinct tickers with stored price history.
func (r *PriceRepository) ListTickers() ([]string, error) {
	rows, err := r.db.Query(`SELECT DISTINCT ticker FROM price_history ORDER BY ticker`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tickers: %w", err)
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

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tickers: %w", err)
	}

	return tickers, nil
}

// LatestDate returns the most recent stored trading day for a ticker.
// Returns apperrors.ErrPriceNotFound when the ticker has no history.
func (r *PriceRepository) LatestDate(ticker string) (time.Time, error) {
	var dateStr sql.NullString

	err := r.db.QueryRow(`SELECT MAX(date) FROM price_history WHERE ticker = ?`, ticker).Scan(&dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to query latest price date: %w", err)
	}
	if !dateStr.Valid {
		return time.Time{}, fmt.Errorf("%w: %s", apperrors.ErrPriceNotFound, ticker)
	}

	date, err := time.Parse(dateFormat, dateStr.String)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse stored price date %q: %w", dateStr.String, err)
	}

	return date, nil
}
