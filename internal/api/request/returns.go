package request

// PositionInput represents a position lifecycle as sent over the wire.
// Dates use the YYYY-MM-DD format.
type PositionInput struct {
	ID           string   `json:"id"`
	Ticker       string   `json:"ticker"`
	EntryDate    string   `json:"entryDate"`
	EntryPrice   float64  `json:"entryPrice"`
	ExitDate     *string  `json:"exitDate,omitempty"`
	ExitPrice    *float64 `json:"exitPrice,omitempty"`
	CurrentPrice *float64 `json:"currentPrice,omitempty"`
	Direction    string   `json:"direction"`
}

// ReturnsRequest represents the request body for the portfolio returns series.
type ReturnsRequest struct {
	Positions   []PositionInput `json:"positions"`
	RangeType   string          `json:"rangeType"`             // DAY, WEEK or MONTH
	MaxDaysBack int             `json:"maxDaysBack,omitempty"` // 0 selects the default lookback
}

// PerformanceRequest represents the request body for the trade performance summary.
type PerformanceRequest struct {
	Positions []PositionInput `json:"positions"`
}

// QuoteTokenRequest represents the request body for storing the quote
// provider API token.
type QuoteTokenRequest struct {
	Token string `json:"token"`
}
