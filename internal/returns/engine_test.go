package returns_test

import (
	"math"
	"testing"
	"time"

	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/model"
	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/returns"
)

// stubResolver returns a fixed price for every query, recording the dates it
// was asked about. It exercises the capability-injection seam of the Engine.
type stubResolver struct {
	price float64
	ok    bool
	asked []time.Time
}

func (s *stubResolver) ResolvePriceAt(pos model.Position, date time.Time, series model.PriceSeries, today time.Time) (float64, bool) {
	s.asked = append(s.asked, date)
	return s.price, s.ok
}

// TestEngine_PeriodReturn tests period return computation across entry/exit
// boundary cases.
//
// WHY: The window reconciliation (entered before vs inside the window,
// closed inside vs after it) is where off-by-one mistakes silently misstate
// financial output. Each branch is pinned down here.
func TestEngine_PeriodReturn(t *testing.T) {
	engine := returns.NewEngine(nil)
	today := day("2025-06-20")

	t.Run("long position with price decline", func(t *testing.T) {
		pos := openLong("2025-01-02", 100)
		s := series("2025-01-02", 100.0, "2025-02-01", 90.0)

		ret, ok := engine.PeriodReturn(pos, day("2025-01-02"), day("2025-02-01"), s, today)
		if !ok {
			t.Fatal("expected a computable return")
		}
		if math.Abs(ret-(-10.0)) > 0.0001 {
			t.Errorf("expected -10%%, got %.4f", ret)
		}
	})

	t.Run("short position negates the raw return", func(t *testing.T) {
		pos := openLong("2025-01-02", 100)
		pos.Direction = model.Short
		s := series("2025-01-02", 100.0, "2025-02-01", 90.0)

		ret, ok := engine.PeriodReturn(pos, day("2025-01-02"), day("2025-02-01"), s, today)
		if !ok {
			t.Fatal("expected a computable return")
		}
		if math.Abs(ret-10.0) > 0.0001 {
			t.Errorf("expected +10%% for short on a decline, got %.4f", ret)
		}
	})

	t.Run("short entered inside the window", func(t *testing.T) {
		// Entry price 100 is the baseline, end resolves to 90; the raw -10%
		// is negated for the short.
		pos := openLong("2025-01-10", 100)
		pos.Direction = model.Short
		s := series("2025-02-01", 90.0)

		ret, ok := engine.PeriodReturn(pos, day("2025-01-02"), day("2025-02-01"), s, today)
		if !ok {
			t.Fatal("expected a computable return")
		}
		if math.Abs(ret-10.0) > 0.0001 {
			t.Errorf("expected +10%%, got %.4f", ret)
		}
	})

	t.Run("entry inside window uses entry price directly", func(t *testing.T) {
		pos := openLong("2025-01-15", 50)
		s := series("2025-01-02", 200.0, "2025-02-01", 55.0)

		ret, ok := engine.PeriodReturn(pos, day("2025-01-02"), day("2025-02-01"), s, today)
		if !ok {
			t.Fatal("expected a computable return")
		}
		// Baseline must be the 50 entry print, not the 200 series close.
		if math.Abs(ret-10.0) > 0.0001 {
			t.Errorf("expected +10%% from entry print, got %.4f", ret)
		}
	})

	t.Run("exit inside window uses exit price directly", func(t *testing.T) {
		pos := closedLong("2024-12-01", 100, "2025-01-20", 130)
		s := series("2025-01-02", 100.0, "2025-02-01", 300.0)

		ret, ok := engine.PeriodReturn(pos, day("2025-01-02"), day("2025-02-01"), s, today)
		if !ok {
			t.Fatal("expected a computable return")
		}
		// Terminal value fixed at 130; the later 300 close is irrelevant.
		if math.Abs(ret-30.0) > 0.0001 {
			t.Errorf("expected +30%% to exit print, got %.4f", ret)
		}
	})

	t.Run("missing prices yield no result rather than zero", func(t *testing.T) {
		pos := openLong("2025-03-01", 100)

		// Window entirely before entry: start price unresolvable.
		if _, ok := engine.PeriodReturn(pos, day("2025-01-01"), day("2025-02-01"), nil, today); ok {
			t.Error("expected insufficient data before the entry date")
		}
	})

	t.Run("non-positive start price yields no result", func(t *testing.T) {
		pos := openLong("2025-01-10", 0)

		if _, ok := engine.PeriodReturn(pos, day("2025-01-02"), day("2025-02-01"), nil, today); ok {
			t.Error("expected insufficient data for zero entry price")
		}
	})

	t.Run("injected resolver is consulted for both window edges", func(t *testing.T) {
		stub := &stubResolver{price: 100, ok: true}
		engine := returns.NewEngine(stub)

		pos := openLong("2024-01-01", 80)
		if _, ok := engine.PeriodReturn(pos, day("2025-01-02"), day("2025-02-01"), nil, today); !ok {
			t.Fatal("expected a computable return")
		}

		if len(stub.asked) != 2 {
			t.Fatalf("expected 2 resolver calls, got %d", len(stub.asked))
		}
		if !stub.asked[0].Equal(day("2025-01-02")) || !stub.asked[1].Equal(day("2025-02-01")) {
			t.Errorf("resolver asked about %v", stub.asked)
		}
	})
}

// TestEngine_DailyReturn tests the single-day window preconditions.
//
// WHY: A daily series is built by attributing one return to each trading
// day. Attributing returns to days before entry or after exit would leak
// phantom performance into the portfolio series.
func TestEngine_DailyReturn(t *testing.T) {
	engine := returns.NewEngine(nil)
	today := day("2025-06-20")

	t.Run("computes day-over-day return", func(t *testing.T) {
		pos := openLong("2025-01-02", 100)
		s := series("2025-01-09", 110.0, "2025-01-10", 121.0)

		ret, ok := engine.DailyReturn(pos, day("2025-01-10"), day("2025-01-09"), s, today)
		if !ok {
			t.Fatal("expected a computable return")
		}
		if math.Abs(ret-10.0) > 0.0001 {
			t.Errorf("expected +10%%, got %.4f", ret)
		}
	})

	t.Run("no return before the position is held", func(t *testing.T) {
		pos := openLong("2025-01-10", 100)

		if _, ok := engine.DailyReturn(pos, day("2025-01-05"), day("2025-01-04"), nil, today); ok {
			t.Error("expected no return before entry")
		}
	})

	t.Run("no return after the position exited", func(t *testing.T) {
		pos := closedLong("2025-01-02", 100, "2025-01-20", 120)

		if _, ok := engine.DailyReturn(pos, day("2025-01-21"), day("2025-01-20"), nil, today); ok {
			t.Error("expected no return after exit")
		}
	})

	t.Run("exit day itself still earns a return", func(t *testing.T) {
		pos := closedLong("2025-01-02", 100, "2025-01-20", 120)
		s := series("2025-01-17", 100.0)

		ret, ok := engine.DailyReturn(pos, day("2025-01-20"), day("2025-01-17"), s, today)
		if !ok {
			t.Fatal("expected a computable return on the exit day")
		}
		if math.Abs(ret-20.0) > 0.0001 {
			t.Errorf("expected +20%% into the exit print, got %.4f", ret)
		}
	})
}
