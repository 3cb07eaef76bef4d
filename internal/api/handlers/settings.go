package handlers

import (
	"net/http"
	"strings"

	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/api/request"
	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/api/response"
	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/service"
)

// SettingHandler handles application setting requests.
type SettingHandler struct {
	prices *service.PriceService
}

// NewSettingHandler creates a new SettingHandler
func NewSettingHandler(prices *service.PriceService) *SettingHandler {
	return &SettingHandler{prices: prices}
}

// SetQuoteToken handles PUT requests to store the quote provider API token.
// The token is encrypted at rest.
//
// Endpoint: PUT /api/settings/quote-token
// Response: 200 OK
// Errors: 400 on an empty token, 500 when encryption or storage fails
func (h *SettingHandler) SetQuoteToken(w http.ResponseWriter, r *http.Request) {
	var req request.QuoteTokenRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if strings.TrimSpace(req.Token) == "" {
		response.RespondError(w, http.StatusBadRequest, "token is required", nil)
		return
	}

	if err := h.prices.StoreQuoteToken(req.Token); err != nil {
		respondComputeError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string]string{"status": "stored"})
}
