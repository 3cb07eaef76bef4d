package returns

import (
	"time"

	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/model"
)

// Engine computes period and daily returns for a position. It depends on a
// PriceResolver capability supplied at construction; it performs no I/O of
// its own and is safe for concurrent use.
type Engine struct {
	resolver PriceResolver
}

// NewEngine creates an Engine using the given price resolution strategy.
// Passing nil selects the default CarryForward resolver.
func NewEngine(resolver PriceResolver) *Engine {
	if resolver == nil {
		resolver = CarryForward{}
	}
	return &Engine{resolver: resolver}
}

// PeriodReturn computes the percentage return of a position over the window
// [periodStart, periodEnd], sign-adjusted for direction.
//
// The start price is the entry price when the position was entered inside
// the window; otherwise it is resolved at periodStart (the stock was already
// held going in). The end price is the exit price when the position closed
// on or before periodEnd; otherwise it is resolved at periodEnd.
//
// Returns ok=false when either price cannot be determined or the start price
// is not positive. Insufficient data is a normal outcome, never coerced to 0%.
func (e *Engine) PeriodReturn(pos model.Position, periodStart, periodEnd time.Time, series model.PriceSeries, today time.Time) (float64, bool) {
	start := dateOnly(periodStart)
	end := dateOnly(periodEnd)

	var startPrice float64
	if dateOnly(pos.EntryDate).Before(start) {
		resolved, ok := e.resolver.ResolvePriceAt(pos, start, series, today)
		if !ok {
			return 0, false
		}
		startPrice = resolved
	} else {
		// Entered mid-window: the entry print is the baseline.
		startPrice = pos.EntryPrice
	}
	if startPrice <= 0 {
		return 0, false
	}

	var endPrice float64
	if pos.Closed() && pos.ExitPrice != nil && !dateOnly(*pos.ExitDate).After(end) {
		endPrice = *pos.ExitPrice
	} else {
		resolved, ok := e.resolver.ResolvePriceAt(pos, end, series, today)
		if !ok {
			return 0, false
		}
		endPrice = resolved
	}

	raw := (endPrice - startPrice) / startPrice * 100

	// Shorts profit when price falls.
	if pos.Direction == model.Short {
		raw = -raw
	}

	return raw, true
}

// DailyReturn computes the single-day return attributable to date, using
// previousDate's price as the baseline. The position must have been entered
// on or before date and must not have been closed strictly before it;
// otherwise no return is attributable to that day and ok=false is returned.
func (e *Engine) DailyReturn(pos model.Position, date, previousDate time.Time, series model.PriceSeries, today time.Time) (float64, bool) {
	day := dateOnly(date)

	if dateOnly(pos.EntryDate).After(day) {
		return 0, false // not yet held
	}
	if pos.Closed() && dateOnly(*pos.ExitDate).Before(day) {
		return 0, false // already exited
	}

	return e.PeriodReturn(pos, previousDate, date, series, today)
}
