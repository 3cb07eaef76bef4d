package model

import "time"

// Direction indicates which way a position trades.
type Direction string

// Trade directions. SHORT positions profit when the price falls, so their
// reported returns carry the opposite sign of the raw price move.
const (
	Long  Direction = "LONG"
	Short Direction = "SHORT"
)

// Valid reports whether d is a known trade direction.
func (d Direction) Valid() bool {
	return d == Long || d == Short
}

// Position represents a single trade lifecycle: opened at EntryDate/EntryPrice,
// optionally closed once at ExitDate/ExitPrice, immutable afterwards.
// CurrentPrice is refreshed externally while the position is open.
type Position struct {
	ID           string     `json:"id"`
	Ticker       string     `json:"ticker"`
	EntryDate    time.Time  `json:"entryDate"`
	EntryPrice   float64    `json:"entryPrice"`
	ExitDate     *time.Time `json:"exitDate,omitempty"`
	ExitPrice    *float64   `json:"exitPrice,omitempty"`
	CurrentPrice *float64   `json:"currentPrice,omitempty"`
	Direction    Direction  `json:"direction"`
}

// Closed reports whether the position has been exited.
func (p Position) Closed() bool {
	return p.ExitDate != nil
}
