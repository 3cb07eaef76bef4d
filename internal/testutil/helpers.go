package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/repository"
	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/returns"
	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/service"
)

// MakeID generates a unique identifier for test records.
func MakeID() string {
	return uuid.NewString()
}

// NewTestSystemService builds a SystemService against the test database.
func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

// NewTestPriceService builds a PriceService in store-only mode (no quote
// source) against the test database.
func NewTestPriceService(t *testing.T, db *sql.DB) *service.PriceService {
	t.Helper()

	priceRepo := repository.NewPriceRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	return service.NewPriceService(priceRepo, settingRepo, nil, "")
}

// NewTestAnalyticsService builds an AnalyticsService with the default
// carry-forward resolver against the test database.
func NewTestAnalyticsService(t *testing.T, db *sql.DB) *service.AnalyticsService {
	t.Helper()

	return service.NewAnalyticsService(returns.NewEngine(nil), NewTestPriceService(t, db))
}

// SeedPrice inserts a single daily close for a ticker.
func SeedPrice(t *testing.T, db *sql.DB, ticker string, date time.Time, close float64) {
	t.Helper()

	_, err := db.Exec(
		"INSERT INTO price_history (id, ticker, date, close) VALUES (?, ?, ?, ?)",
		MakeID(), ticker, date.Format("2006-01-02"), close,
	)
	if err != nil {
		t.Fatalf("Failed to seed price for %s: %v", ticker, err)
	}
}

// SeedPriceRange inserts one close per calendar day from start to end
// inclusive, stepping the price by increment each day.
func SeedPriceRange(t *testing.T, db *sql.DB, ticker string, start, end time.Time, startPrice, increment float64) {
	t.Helper()

	price := startPrice
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		SeedPrice(t, db, ticker, d, price)
		price += increment
	}
}
