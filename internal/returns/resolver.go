// Package returns implements time-windowed return computation for positions:
// price resolution with carry-forward fallbacks, period and daily returns
// with direction-aware signs, and geometric compounding of return series.
//
// Every function here is pure: no I/O, no clock reads, no shared state.
// Price data and "today" are always supplied by the caller, which keeps each
// invocation deterministic and safe to run concurrently.
package returns

import (
	"time"

	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/model"
)

// PriceResolver resolves the price of a position's instrument on a calendar
// day. It is injected into the Engine so alternate resolution strategies
// (e.g., interpolating instead of carrying forward) can be substituted.
//
// today is the evaluation day and must be passed in explicitly; resolvers
// never read the system clock.
type PriceResolver interface {
	ResolvePriceAt(pos model.Position, date time.Time, series model.PriceSeries, today time.Time) (float64, bool)
}

// CarryForward is the default price resolution strategy. Resolution order,
// first match wins:
//
//  1. date is today and a live quote is known: the freshest quote always
//     beats any stale historical series for "now" queries.
//  2. The position is closed on or before date: the exit price. Once closed,
//     the price trajectory after exit is irrelevant; the terminal value is fixed.
//  3. The latest series close on or before date (last-known-value
//     carry-forward; never interpolates, never looks forward).
//  4. The entry price, if the position existed on date. This is an
//     approximation only: the entry print stands in when no better data
//     exists and can materially misstate returns for long-held positions
//     that lack a historical series.
//  5. Unknown. Never zero.
type CarryForward struct{}

// ResolvePriceAt implements PriceResolver.
func (CarryForward) ResolvePriceAt(pos model.Position, date time.Time, series model.PriceSeries, today time.Time) (float64, bool) {
	day := dateOnly(date)

	if day.Equal(dateOnly(today)) && pos.CurrentPrice != nil {
		return *pos.CurrentPrice, true
	}

	if pos.Closed() && pos.ExitPrice != nil && !dateOnly(*pos.ExitDate).After(day) {
		return *pos.ExitPrice, true
	}

	if price, ok := seriesPriceAt(series, day); ok {
		return price, true
	}

	if !dateOnly(pos.EntryDate).After(day) && pos.EntryPrice > 0 {
		return pos.EntryPrice, true
	}

	return 0, false
}

// seriesPriceAt finds the most recent close on or before the target day.
// Assumes the series is sorted ascending (oldest first).
func seriesPriceAt(series model.PriceSeries, day time.Time) (float64, bool) {
	var price float64
	found := false

	for _, point := range series {
		if dateOnly(point.Date).After(day) {
			break
		}
		price = point.Close
		found = true
	}

	return price, found
}

// dateOnly truncates a timestamp to its calendar day. All comparisons in
// this package happen at day granularity.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
