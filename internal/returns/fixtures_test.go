package returns_test

import (
	"time"

	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/model"
)

// Shared fixtures for the returns package tests.

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func floatPtr(v float64) *float64 { return &v }

func timePtr(t time.Time) *time.Time { return &t }

func openLong(entry string, entryPrice float64) model.Position {
	return model.Position{
		ID:         "pos-1",
		Ticker:     "AAPL",
		EntryDate:  day(entry),
		EntryPrice: entryPrice,
		Direction:  model.Long,
	}
}

func closedLong(entry string, entryPrice float64, exit string, exitPrice float64) model.Position {
	pos := openLong(entry, entryPrice)
	pos.ExitDate = timePtr(day(exit))
	pos.ExitPrice = floatPtr(exitPrice)
	return pos
}

func series(points ...any) model.PriceSeries {
	s := make(model.PriceSeries, 0, len(points)/2)
	for i := 0; i < len(points); i += 2 {
		s = append(s, model.PricePoint{Date: day(points[i].(string)), Close: points[i+1].(float64)})
	}
	return s
}
