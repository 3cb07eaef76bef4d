package handlers

import (
	"database/sql"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/api/request"
	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/service"
	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/testutil"
)

func TestReturnsHandler_Returns(t *testing.T) {
	setupHandler := func(t *testing.T) (*ReturnsHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		return NewReturnsHandler(testutil.NewTestAnalyticsService(t, db)), db
	}

	post := func(t *testing.T, handler *ReturnsHandler, body interface{}) *httptest.ResponseRecorder {
		t.Helper()
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/portfolio/returns", body)
		w := httptest.NewRecorder()
		handler.Returns(w, req)
		return w
	}

	t.Run("computes daily series from stored prices", func(t *testing.T) {
		handler, db := setupHandler(t)

		// Recent history so the evaluation window (anchored at time.Now)
		// overlaps the position's lifetime.
		end := time.Now().UTC().AddDate(0, 0, -1)
		start := end.AddDate(0, 0, -30)
		testutil.SeedPriceRange(t, db, "AAPL", start, end, 100, 1)

		w := post(t, handler, request.ReturnsRequest{
			Positions: []request.PositionInput{
				{
					ID:         "pos-1",
					Ticker:     "AAPL",
					EntryDate:  start.Format("2006-01-02"),
					EntryPrice: 100,
					Direction:  "LONG",
				},
			},
			RangeType:   "DAY",
			MaxDaysBack: 20,
		})

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var report service.ReturnsReport
		testutil.DecodeJSONResponse(t, w, &report)

		if len(report.Points) == 0 {
			t.Fatal("Expected non-empty points series")
		}
		if len(report.Cumulative) != len(report.Points) {
			t.Errorf("Expected cumulative series to match points length: %d vs %d",
				len(report.Cumulative), len(report.Points))
		}
		if report.Meta.Method != "equal_weight" {
			t.Errorf("Expected method equal_weight, got %q", report.Meta.Method)
		}
		if report.Meta.WindowDays != 1 {
			t.Errorf("Expected window of 1 day for DAY range, got %d", report.Meta.WindowDays)
		}
		if len(report.Meta.MissingSymbols) != 0 {
			t.Errorf("Expected no missing symbols, got %v", report.Meta.MissingSymbols)
		}
	})

	t.Run("reports tickers without stored history as missing", func(t *testing.T) {
		handler, _ := setupHandler(t)

		entry := time.Now().UTC().AddDate(0, 0, -10)
		w := post(t, handler, request.ReturnsRequest{
			Positions: []request.PositionInput{
				{
					ID:         "pos-1",
					Ticker:     "UNSEEN",
					EntryDate:  entry.Format("2006-01-02"),
					EntryPrice: 50,
					Direction:  "LONG",
				},
			},
			RangeType: "DAY",
		})

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var report service.ReturnsReport
		testutil.DecodeJSONResponse(t, w, &report)

		if len(report.Meta.MissingSymbols) != 1 || report.Meta.MissingSymbols[0] != "UNSEEN" {
			t.Errorf("Expected UNSEEN reported missing, got %v", report.Meta.MissingSymbols)
		}
	})

	t.Run("returns 400 on unknown range type", func(t *testing.T) {
		handler, _ := setupHandler(t)

		w := post(t, handler, request.ReturnsRequest{
			Positions: []request.PositionInput{},
			RangeType: "YEAR",
		})

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 400 on malformed position dates", func(t *testing.T) {
		handler, _ := setupHandler(t)

		w := post(t, handler, request.ReturnsRequest{
			Positions: []request.PositionInput{
				{ID: "pos-1", Ticker: "AAPL", EntryDate: "not-a-date", EntryPrice: 100, Direction: "LONG"},
			},
			RangeType: "DAY",
		})

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestReturnsHandler_Performance(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewReturnsHandler(testutil.NewTestAnalyticsService(t, db))

	post := func(t *testing.T, body interface{}) *httptest.ResponseRecorder {
		t.Helper()
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/portfolio/performance", body)
		w := httptest.NewRecorder()
		handler.Performance(w, req)
		return w
	}

	t.Run("summarizes closed and open trades with win rate", func(t *testing.T) {
		exitDate := "2026-02-01"
		exitWin := 110.0
		exitLoss := 120.0
		current := 95.0

		w := post(t, request.PerformanceRequest{
			Positions: []request.PositionInput{
				{
					ID: "t1", Ticker: "AAPL", EntryDate: "2026-01-01", EntryPrice: 100,
					ExitDate: &exitDate, ExitPrice: &exitWin, Direction: "LONG",
				},
				{
					ID: "t2", Ticker: "MSFT", EntryDate: "2026-01-01", EntryPrice: 100,
					ExitDate: &exitDate, ExitPrice: &exitLoss, Direction: "SHORT",
				},
				{
					ID: "t3", Ticker: "NVDA", EntryDate: "2026-01-01", EntryPrice: 100,
					CurrentPrice: &current, Direction: "SHORT",
				},
			},
		})

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var report service.PerformanceReport
		testutil.DecodeJSONResponse(t, w, &report)

		if report.TradeCount != 3 {
			t.Fatalf("Expected 3 trades, got %d", report.TradeCount)
		}
		// AAPL +10% win, MSFT short against a rising price -20% loss,
		// NVDA short against a falling price +5% win.
		if report.WinCount != 2 {
			t.Errorf("Expected 2 wins, got %d", report.WinCount)
		}
		if math.Abs(report.WinRate-66.67) > 1e-9 {
			t.Errorf("Expected win rate 66.67, got %.4f", report.WinRate)
		}
	})

	t.Run("returns 400 when exit date lacks exit price", func(t *testing.T) {
		exitDate := "2026-02-01"

		w := post(t, request.PerformanceRequest{
			Positions: []request.PositionInput{
				{
					ID: "t1", Ticker: "AAPL", EntryDate: "2026-01-01", EntryPrice: 100,
					ExitDate: &exitDate, Direction: "LONG",
				},
			},
		})

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}
