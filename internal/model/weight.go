package model

// WeightEntry represents a single holding's percentage allocation within a
// portfolio. Across a valid portfolio the weights sum to 100 within a small
// epsilon. Zero is a valid weight and means the holding is fully excluded.
type WeightEntry struct {
	ID            string  `json:"id"`            // Unique key, typically the ticker
	WeightPercent float64 `json:"weightPercent"` // Allocation in percent, 0-100
}
