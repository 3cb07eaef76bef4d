// Package rebalance implements proportional redistribution of portfolio
// weights. Changing one holding's weight scales every other holding by a
// common factor so that relative proportions among them are preserved and
// the full set sums to exactly 100 percent again.
package rebalance

import (
	"fmt"
	"math"

	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/apperrors"
	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/model"
)

const (
	// TotalWeight is the percentage every valid portfolio sums to.
	TotalWeight = 100.0

	// SumEpsilon is the tolerated deviation from TotalWeight after rounding.
	SumEpsilon = 0.01

	// degenerateRemainder is the threshold below which the non-target pool is
	// considered empty. Proportional scaling is undefined when the base to
	// scale from is ~zero, so the remainder is split equally instead.
	degenerateRemainder = 0.001

	// roundingPrecision yields two decimal places.
	roundingPrecision = 100.0
)

// round rounds a weight to two decimal places, the precision all weights are
// reported in.
func round(value float64) float64 {
	return math.Round(value*roundingPrecision) / roundingPrecision
}

// Rebalance redistributes portfolio weights after setting targetID's weight
// to newWeightPercent. All non-target entries are scaled by a common factor
// (remainingNew / remainingOld) so they keep their relative share of the
// non-target pool, then everything is rounded to two decimals and corrected
// to sum to exactly 100.
//
// Two documented quirks are preserved intentionally:
//   - A single-entry portfolio always rebalances to 100% for that entry,
//     regardless of the requested weight.
//   - When rounding drifts the sum off 100 by more than 0.01, the full
//     residual is applied to the last non-target entry (original ordering)
//     rather than being spread out. One entry absorbs the drift.
//
// The result has the same cardinality and ordering as the input. The input
// slice is never modified.
func Rebalance(current []model.WeightEntry, targetID string, newWeightPercent float64) ([]model.WeightEntry, error) {
	if len(current) == 0 {
		return nil, apperrors.ErrEmptyWeights
	}
	if newWeightPercent < 0 || newWeightPercent > TotalWeight {
		return nil, fmt.Errorf("%w: got %.2f", apperrors.ErrWeightOutOfRange, newWeightPercent)
	}

	targetIdx := -1
	for i, entry := range current {
		if entry.WeightPercent < 0 {
			return nil, fmt.Errorf("%w: %s has weight %.2f", apperrors.ErrNegativeWeight, entry.ID, entry.WeightPercent)
		}
		if entry.ID == targetID {
			targetIdx = i
		}
	}
	if targetIdx == -1 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrTickerNotFound, targetID)
	}

	// A single-position portfolio always forces full allocation, whatever
	// the caller asked for.
	if len(current) == 1 {
		return []model.WeightEntry{{ID: targetID, WeightPercent: TotalWeight}}, nil
	}

	oldWeight := current[targetIdx].WeightPercent
	remainingOld := 1.0 - oldWeight/TotalWeight
	remainingNew := 1.0 - newWeightPercent/TotalWeight

	result := make([]model.WeightEntry, len(current))

	if remainingOld <= degenerateRemainder {
		// Target already held ~100%: split the freed-up remainder equally
		// across the other entries.
		equalWeight := remainingNew * TotalWeight / float64(len(current)-1)
		for i, entry := range current {
			if i == targetIdx {
				result[i] = model.WeightEntry{ID: entry.ID, WeightPercent: round(newWeightPercent)}
			} else {
				result[i] = model.WeightEntry{ID: entry.ID, WeightPercent: round(equalWeight)}
			}
		}
	} else {
		scale := remainingNew / remainingOld
		for i, entry := range current {
			if i == targetIdx {
				result[i] = model.WeightEntry{ID: entry.ID, WeightPercent: round(newWeightPercent)}
			} else {
				result[i] = model.WeightEntry{ID: entry.ID, WeightPercent: round(entry.WeightPercent * scale)}
			}
		}
	}

	applyResidual(result, targetIdx)

	return result, nil
}

// applyResidual corrects rounding drift so the weight set sums to exactly
// 100.00. The entire residual lands on the last non-target entry by original
// ordering; concentrating the error in one entry keeps the correction simple
// and predictable.
func applyResidual(entries []model.WeightEntry, targetIdx int) {
	var sum float64
	for _, entry := range entries {
		sum += entry.WeightPercent
	}

	residual := TotalWeight - sum
	if math.Abs(residual) <= SumEpsilon {
		return
	}

	for i := len(entries) - 1; i >= 0; i-- {
		if i == targetIdx {
			continue
		}
		entries[i].WeightPercent = round(entries[i].WeightPercent + residual)
		return
	}
}
