package model

import "time"

// PricePoint is a single daily close for an instrument.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// PriceSeries is an ordered (oldest first) sequence of daily closes for a
// position's underlying instrument. A series may be sparse or entirely
// absent; the core never owns one, it is passed in per call.
type PriceSeries []PricePoint

// PriceRecord is a persisted daily close in the price history store.
type PriceRecord struct {
	ID     string    // Primary key
	Ticker string    // Instrument ticker
	Date   time.Time // Trading date
	Close  float64   // Closing price
}
