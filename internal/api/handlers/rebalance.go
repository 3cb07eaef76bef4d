package handlers

import (
	"net/http"

	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/api/request"
	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/api/response"
	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/model"
	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/rebalance"
	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/validation"
)

// RebalanceHandler handles portfolio weight rebalancing requests.
type RebalanceHandler struct{}

// NewRebalanceHandler creates a new RebalanceHandler
func NewRebalanceHandler() *RebalanceHandler {
	return &RebalanceHandler{}
}

// RebalanceResponse represents the rebalance response body.
type RebalanceResponse struct {
	RebalancedWeights []request.WeightInput `json:"rebalancedWeights"`
	TotalWeight       float64               `json:"totalWeight"`
}

// Rebalance handles POST requests to redistribute portfolio weights after
// one holding's weight changes.
//
// Endpoint: POST /api/portfolio/rebalance
// Response: 200 OK with RebalanceResponse
// Errors: 400 on malformed input, 404 when the target ticker is unknown
func (h *RebalanceHandler) Rebalance(w http.ResponseWriter, r *http.Request) {
	var req request.RebalanceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := validation.ValidateRebalance(req); err != nil {
		respondComputeError(w, err)
		return
	}

	current := make([]model.WeightEntry, len(req.CurrentWeights))
	for i, entry := range req.CurrentWeights {
		current[i] = model.WeightEntry{ID: entry.Ticker, WeightPercent: entry.Weight}
	}

	rebalanced, err := rebalance.Rebalance(current, req.TargetTicker, req.NewWeight)
	if err != nil {
		respondComputeError(w, err)
		return
	}

	result := RebalanceResponse{
		RebalancedWeights: make([]request.WeightInput, len(rebalanced)),
	}
	for i, entry := range rebalanced {
		result.RebalancedWeights[i] = request.WeightInput{
			Ticker: entry.ID,
			Weight: entry.WeightPercent,
		}
		result.TotalWeight += entry.WeightPercent
	}

	response.RespondJSON(w, http.StatusOK, result)
}
