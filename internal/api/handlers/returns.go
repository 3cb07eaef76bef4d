package handlers

import (
	"net/http"
	"time"

	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/api/request"
	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/api/response"
	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/service"
	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/validation"
)

// ReturnsHandler handles portfolio return series and trade performance requests.
type ReturnsHandler struct {
	analytics *service.AnalyticsService
}

// NewReturnsHandler creates a new ReturnsHandler
func NewReturnsHandler(analytics *service.AnalyticsService) *ReturnsHandler {
	return &ReturnsHandler{analytics: analytics}
}

// Returns handles POST requests for the compounded portfolio return series.
//
// Endpoint: POST /api/portfolio/returns
// Response: 200 OK with service.ReturnsReport
// Errors: 400 on malformed positions or range type, 500 on storage failure
func (h *ReturnsHandler) Returns(w http.ResponseWriter, r *http.Request) {
	var req request.ReturnsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := validation.ValidateRangeType(req.RangeType); err != nil {
		respondComputeError(w, err)
		return
	}

	positions, err := validation.ParsePositions(req.Positions)
	if err != nil {
		respondComputeError(w, err)
		return
	}

	report, err := h.analytics.PortfolioReturns(r.Context(), positions, req.RangeType, req.MaxDaysBack, time.Now().UTC())
	if err != nil {
		respondComputeError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, report)
}

// Performance handles POST requests for the closed/open trade summary.
//
// Endpoint: POST /api/portfolio/performance
// Response: 200 OK with service.PerformanceReport
// Errors: 400 on malformed positions
func (h *ReturnsHandler) Performance(w http.ResponseWriter, r *http.Request) {
	var req request.PerformanceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	positions, err := validation.ParsePositions(req.Positions)
	if err != nil {
		respondComputeError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, h.analytics.Performance(positions))
}
