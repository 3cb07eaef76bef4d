package validation

import (
	"fmt"
	"strings"

	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/api/request"
)

// ValidateRebalance checks a rebalance request for structural problems.
// Range and membership violations (weight outside 0-100, unknown target) are
// left to the rebalancer itself so the error taxonomy stays in one place;
// this only rejects input the rebalancer cannot meaningfully see.
func ValidateRebalance(req request.RebalanceRequest) error {
	errors := make(map[string]string)

	if len(req.CurrentWeights) == 0 {
		errors["currentWeights"] = "at least one weight entry is required"
	}

	if strings.TrimSpace(req.TargetTicker) == "" {
		errors["targetTicker"] = "target ticker is required"
	}

	seen := make(map[string]bool, len(req.CurrentWeights))
	for i, entry := range req.CurrentWeights {
		if strings.TrimSpace(entry.Ticker) == "" {
			errors[fmt.Sprintf("currentWeights[%d].ticker", i)] = "ticker is required"
			continue
		}
		if seen[entry.Ticker] {
			errors[fmt.Sprintf("currentWeights[%d].ticker", i)] = "duplicate ticker"
		}
		seen[entry.Ticker] = true
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
