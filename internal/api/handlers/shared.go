package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/apperrors"
	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/api/response"
	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/validation"
)

// decodeJSON decodes a request body into dst, rejecting unknown fields.
// Responds with 400 and returns false when the body is malformed.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return false
	}
	return true
}

// respondComputeError maps domain errors onto HTTP statuses: validation and
// invalid-input errors become 400, missing entities 404, everything else a
// generic 500 that does not leak internals.
func respondComputeError(w http.ResponseWriter, err error) {
	var validationErr *validation.Error
	if errors.As(err, &validationErr) {
		response.RespondError(w, http.StatusBadRequest, "validation failed", validationErr.Fields)
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrTickerNotFound),
		errors.Is(err, apperrors.ErrPriceNotFound),
		errors.Is(err, apperrors.ErrSettingNotFound):
		response.RespondError(w, http.StatusNotFound, err.Error(), nil)

	case errors.Is(err, apperrors.ErrEmptyWeights),
		errors.Is(err, apperrors.ErrWeightOutOfRange),
		errors.Is(err, apperrors.ErrNegativeWeight),
		errors.Is(err, apperrors.ErrInvalidDateRange),
		errors.Is(err, apperrors.ErrInvalidDirection),
		errors.Is(err, apperrors.ErrInvalidRangeType),
		errors.Is(err, apperrors.ErrMissingExitPrice),
		errors.Is(err, apperrors.ErrMissingRequiredField):
		response.RespondError(w, http.StatusBadRequest, err.Error(), nil)

	default:
		response.RespondError(w, http.StatusInternalServerError, "internal error", nil)
	}
}
