// Package apperrors defines the sentinel errors shared across the analytics
// backend. Errors fall into two groups: invalid input (rejected before any
// computation begins) and missing entities. "Insufficient data" outcomes from
// the return calculations are deliberately NOT errors; they are reported as a
// false ok-value because they are an expected, legitimate result.
package apperrors

import "errors"

// Invalid input errors represent malformed or out-of-range arguments.
// These map to 400 Bad Request at the API boundary.
var (
	// ErrEmptyWeights indicates that a rebalance was requested against an
	// empty weight set.
	ErrEmptyWeights = errors.New("weight set cannot be empty")

	// ErrWeightOutOfRange indicates that a requested weight is outside the
	// valid 0-100 percent range.
	ErrWeightOutOfRange = errors.New("weight must be between 0 and 100")

	// ErrNegativeWeight indicates that an input weight entry carries a
	// negative percentage.
	ErrNegativeWeight = errors.New("weight cannot be negative")

	// ErrInvalidDateRange indicates that the provided date range is invalid
	// (e.g., start date is after end date).
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrInvalidDirection indicates a trade direction other than LONG or SHORT.
	ErrInvalidDirection = errors.New("direction must be LONG or SHORT")

	// ErrInvalidRangeType indicates a returns range type other than DAY, WEEK or MONTH.
	ErrInvalidRangeType = errors.New("range type must be DAY, WEEK or MONTH")

	// ErrMissingExitPrice indicates a closed position without an exit price.
	// A position with an exit date must always carry its terminal print.
	ErrMissingExitPrice = errors.New("closed position is missing exit price")

	// ErrMissingRequiredField indicates that a required field is missing or empty.
	ErrMissingRequiredField = errors.New("missing required field")
)

// Missing entity errors represent referenced resources that do not exist.
// These map to 404 Not Found at the API boundary.
var (
	// ErrTickerNotFound indicates that the rebalance target ticker is absent
	// from the provided weight set.
	ErrTickerNotFound = errors.New("ticker not found in weight set")

	// ErrPriceNotFound indicates no stored price record for a ticker and
	// date combination.
	ErrPriceNotFound = errors.New("price not found")

	// ErrSettingNotFound indicates that a settings key has not been stored.
	ErrSettingNotFound = errors.New("setting not found")
)
