package returns_test

import (
	"testing"

	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/returns"
)

// TestCarryForward_ResolutionOrder tests the five-step price resolution chain.
//
// WHY: Multiple signals can apply to the same date (live quote, exit price,
// series data, entry price). The ordering between them is the core design
// decision of the resolver and silently reordering it would corrupt every
// downstream return figure.
func TestCarryForward_ResolutionOrder(t *testing.T) {
	resolver := returns.CarryForward{}
	today := day("2025-06-20")

	t.Run("live quote wins for today", func(t *testing.T) {
		pos := openLong("2025-01-02", 100)
		pos.CurrentPrice = floatPtr(123.45)

		// A series point exists for today as well; the live quote must win.
		s := series("2025-06-20", 999.0)

		price, ok := resolver.ResolvePriceAt(pos, today, s, today)
		if !ok {
			t.Fatal("expected price to resolve")
		}
		if price != 123.45 {
			t.Errorf("expected live quote 123.45, got %.2f", price)
		}
	})

	t.Run("exit price wins over later series points", func(t *testing.T) {
		pos := closedLong("2025-01-02", 100, "2025-03-01", 150)

		// Series keeps moving after the exit; the terminal value is fixed.
		s := series("2025-03-05", 180.0, "2025-04-01", 200.0)

		price, ok := resolver.ResolvePriceAt(pos, day("2025-04-15"), s, today)
		if !ok {
			t.Fatal("expected price to resolve")
		}
		if price != 150 {
			t.Errorf("expected exit price 150, got %.2f", price)
		}
	})

	t.Run("exit price does not apply before the exit date", func(t *testing.T) {
		pos := closedLong("2025-01-02", 100, "2025-03-01", 150)
		s := series("2025-02-01", 110.0)

		price, ok := resolver.ResolvePriceAt(pos, day("2025-02-10"), s, today)
		if !ok {
			t.Fatal("expected price to resolve")
		}
		if price != 110 {
			t.Errorf("expected series price 110, got %.2f", price)
		}
	})

	t.Run("series carries last known close forward", func(t *testing.T) {
		pos := openLong("2025-01-02", 100)
		s := series("2025-02-03", 105.0, "2025-02-05", 108.0, "2025-02-10", 112.0)

		// 2025-02-07 has no point; the 02-05 close carries forward.
		price, ok := resolver.ResolvePriceAt(pos, day("2025-02-07"), s, today)
		if !ok {
			t.Fatal("expected price to resolve")
		}
		if price != 108 {
			t.Errorf("expected carried-forward close 108, got %.2f", price)
		}
	})

	t.Run("series never looks forward", func(t *testing.T) {
		pos := openLong("2025-03-01", 100)
		s := series("2025-03-10", 140.0)

		// Only future points exist; falls through to the entry-price proxy.
		price, ok := resolver.ResolvePriceAt(pos, day("2025-03-05"), s, today)
		if !ok {
			t.Fatal("expected price to resolve")
		}
		if price != 100 {
			t.Errorf("expected entry price proxy 100, got %.2f", price)
		}
	})

	t.Run("entry price proxies when no series supplied", func(t *testing.T) {
		pos := openLong("2025-01-02", 87.5)

		price, ok := resolver.ResolvePriceAt(pos, day("2025-05-01"), nil, today)
		if !ok {
			t.Fatal("expected price to resolve")
		}
		if price != 87.5 {
			t.Errorf("expected entry price 87.5, got %.2f", price)
		}
	})

	t.Run("unknown before the entry date", func(t *testing.T) {
		pos := openLong("2025-03-01", 100)

		if _, ok := resolver.ResolvePriceAt(pos, day("2025-02-01"), nil, today); ok {
			t.Error("expected no price before entry date")
		}
	})

	t.Run("unknown is signalled, not zero", func(t *testing.T) {
		pos := openLong("2025-03-01", 0) // no usable entry print

		price, ok := resolver.ResolvePriceAt(pos, day("2025-04-01"), nil, today)
		if ok {
			t.Errorf("expected unresolved price, got %.2f", price)
		}
	})
}
