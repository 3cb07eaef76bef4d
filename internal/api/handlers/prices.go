package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/api/response"
	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/service"
	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/validation"
)

// defaultHistoryDays is the window served when no start_date is given.
const defaultHistoryDays = 365

// PriceHandler handles price history requests.
type PriceHandler struct {
	prices *service.PriceService
}

// NewPriceHandler creates a new PriceHandler
func NewPriceHandler(prices *service.PriceService) *PriceHandler {
	return &PriceHandler{prices: prices}
}

// History handles GET requests for a ticker's stored daily closes.
//
// Endpoint: GET /api/prices/{ticker}?start_date=YYYY-MM-DD&end_date=YYYY-MM-DD
// Response: 200 OK with the price series
// Errors: 400 on malformed dates
func (h *PriceHandler) History(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")

	now := time.Now().UTC()
	end := now
	start := now.AddDate(0, 0, -defaultHistoryDays)

	if raw := r.URL.Query().Get("start_date"); raw != "" {
		parsed, err := time.Parse(validation.DateFormat, raw)
		if err != nil {
			response.RespondError(w, http.StatusBadRequest, "start_date must be YYYY-MM-DD", nil)
			return
		}
		start = parsed
	}
	if raw := r.URL.Query().Get("end_date"); raw != "" {
		parsed, err := time.Parse(validation.DateFormat, raw)
		if err != nil {
			response.RespondError(w, http.StatusBadRequest, "end_date must be YYYY-MM-DD", nil)
			return
		}
		end = parsed
	}
	if end.Before(start) {
		response.RespondError(w, http.StatusBadRequest, "end_date must not precede start_date", nil)
		return
	}

	series, err := h.prices.SeriesFor(ticker, start, end)
	if err != nil {
		respondComputeError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"ticker": ticker,
		"prices": series,
	})
}

// Refresh handles POST requests to re-fetch recent closes for every stored
// ticker from the quote source.
//
// Endpoint: POST /api/prices/refresh
// Response: 200 OK with the number of tickers refreshed
// Errors: 500 when the quote source or store fails outright
func (h *PriceHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	refreshed, err := h.prices.RefreshAll(r.Context(), time.Now().UTC())
	if err != nil {
		respondComputeError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"refreshed": refreshed,
	})
}
