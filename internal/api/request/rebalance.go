package request

// WeightInput is a single ticker/weight pair as sent over the wire.
type WeightInput struct {
	Ticker string  `json:"ticker"`
	Weight float64 `json:"weight"`
}

// RebalanceRequest represents the request body for rebalancing portfolio weights.
type RebalanceRequest struct {
	CurrentWeights []WeightInput `json:"currentWeights"`
	TargetTicker   string        `json:"targetTicker"`
	NewWeight      float64       `json:"newWeight"`
}
