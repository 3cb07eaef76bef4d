package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/apperrors"
	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/model"
	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/returns"
)

const (
	// DefaultLookbackDays caps how far back the returns series reaches when
	// the caller does not specify a lookback.
	DefaultLookbackDays = 365

	// monthlyMinLookbackDays guarantees enough history for 30-day rolling
	// windows to produce more than a handful of points.
	monthlyMinLookbackDays = 180

	// seriesBufferDays is fetched before the window start so carry-forward
	// resolution has a baseline for the first trading days.
	seriesBufferDays = 7

	dateFormat = "2006-01-02"
)

// Rolling window sizes per range type, in trading days.
const (
	weeklyWindowDays  = 7
	monthlyWindowDays = 30
)

// SeriesPoint is a single dated value in a returns series.
type SeriesPoint struct {
	Date        string  `json:"date"`
	Value       float64 `json:"value"` // Percent
	ActiveCount int     `json:"activeCount"`
}

// ReturnsMeta describes how a returns series was computed.
type ReturnsMeta struct {
	WindowDays     int      `json:"windowDays"`
	StartDate      string   `json:"startDate,omitempty"`
	EndDate        string   `json:"endDate"`
	Method         string   `json:"method"`
	MissingSymbols []string `json:"missingSymbols"`
}

// ReturnsReport is the full portfolio returns series: the range-typed points,
// the cumulative compounded series sampled at the same dates, and metadata.
type ReturnsReport struct {
	Points     []SeriesPoint `json:"points"`
	Cumulative []SeriesPoint `json:"cumulative"`
	Meta       ReturnsMeta   `json:"meta"`
}

// TradeSummary is the realized or mark-to-market return of one position.
type TradeSummary struct {
	ID             string          `json:"id"`
	Ticker         string          `json:"ticker"`
	Direction      model.Direction `json:"direction"`
	EntryPrice     float64         `json:"entryPrice"`
	EffectivePrice float64         `json:"effectivePrice"` // Exit price when closed, else current price
	ReturnPct      float64         `json:"returnPct"`
	Closed         bool            `json:"closed"`
}

// PerformanceReport aggregates per-trade returns and the portfolio win rate.
type PerformanceReport struct {
	Trades     []TradeSummary `json:"trades"`
	TradeCount int            `json:"tradeCount"`
	WinCount   int            `json:"winCount"`
	WinRate    float64        `json:"winRate"` // Percent of trades with a positive return
}

// AnalyticsService computes portfolio-level return series and performance
// summaries. Positions are supplied per call; the service holds no position
// state of its own, only the return engine and the price store it reads
// series from.
type AnalyticsService struct {
	engine *returns.Engine
	prices *PriceService
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(engine *returns.Engine, prices *PriceService) *AnalyticsService {
	return &AnalyticsService{
		engine: engine,
		prices: prices,
	}
}

// PortfolioReturns computes the daily equal-weight portfolio return series
// for the supplied positions, compounds it cumulatively, and aggregates it
// per the range type: DAY emits the daily series, WEEK emits rolling 7-day
// compounded returns sampled every 7th trading day, MONTH the same with a
// 30-day window. The final trading day is always included as a point.
//
// now is the evaluation time and must be supplied by the caller.
func (s *AnalyticsService) PortfolioReturns(
	ctx context.Context,
	positions []model.Position,
	rangeType string,
	maxDaysBack int,
	now time.Time,
) (ReturnsReport, error) {
	windowDays, err := rollingWindowFor(rangeType)
	if err != nil {
		return ReturnsReport{}, err
	}

	if maxDaysBack <= 0 {
		maxDaysBack = DefaultLookbackDays
	}
	if rangeType == "MONTH" && maxDaysBack < monthlyMinLookbackDays {
		maxDaysBack = monthlyMinLookbackDays
	}

	emptyReport := ReturnsReport{
		Points:     []SeriesPoint{},
		Cumulative: []SeriesPoint{},
		Meta: ReturnsMeta{
			WindowDays:     windowDays,
			EndDate:        now.Format(dateFormat),
			Method:         "equal_weight",
			MissingSymbols: []string{},
		},
	}

	if len(positions) == 0 {
		return emptyReport, nil
	}

	earliest := positions[0].EntryDate
	for _, pos := range positions[1:] {
		if pos.EntryDate.Before(earliest) {
			earliest = pos.EntryDate
		}
	}

	start := earliest
	if floor := now.AddDate(0, 0, -maxDaysBack); floor.After(start) {
		start = floor
	}
	if start.After(now) {
		return emptyReport, nil
	}

	tickers := uniqueTickers(positions)
	seriesByTicker, missing, err := s.prices.EnsureSeries(
		ctx, tickers, start.AddDate(0, 0, -seriesBufferDays), now)
	if err != nil {
		return ReturnsReport{}, err
	}

	days := returns.TradingDays(start, now)
	if len(days) == 0 {
		emptyReport.Meta.MissingSymbols = missing
		return emptyReport, nil
	}

	daily := make([]float64, len(days))
	active := make([]int, len(days))

	for i, day := range days {
		var held []model.Position
		for _, pos := range positions {
			if heldOn(pos, day) {
				held = append(held, pos)
			}
		}
		active[i] = len(held)

		// The first series day has no previous day to measure against.
		if i == 0 || len(held) == 0 {
			continue
		}

		prev := days[i-1]
		var sum float64
		var count int
		for _, pos := range held {
			r, ok := s.engine.DailyReturn(pos, day, prev, seriesByTicker[pos.Ticker], now)
			if !ok {
				continue
			}
			sum += r
			count++
		}
		if count > 0 {
			daily[i] = sum / float64(count)
		}
	}

	cumulative := returns.CumulativeReturns(daily)

	var values []float64
	var sampled []int
	switch rangeType {
	case "DAY":
		values = daily
		sampled = allIndices(len(days))
	case "WEEK":
		values = returns.RollingReturns(daily, weeklyWindowDays)
		sampled = sampleIndices(len(days), weeklyWindowDays)
	case "MONTH":
		values = returns.RollingReturns(daily, monthlyWindowDays)
		sampled = sampleIndices(len(days), monthlyWindowDays)
	}

	report := ReturnsReport{
		Points:     make([]SeriesPoint, 0, len(sampled)),
		Cumulative: make([]SeriesPoint, 0, len(sampled)),
		Meta: ReturnsMeta{
			WindowDays:     windowDays,
			StartDate:      start.Format(dateFormat),
			EndDate:        now.Format(dateFormat),
			Method:         "equal_weight",
			MissingSymbols: missing,
		},
	}

	for _, i := range sampled {
		date := days[i].Format(dateFormat)
		report.Points = append(report.Points, SeriesPoint{
			Date:        date,
			Value:       values[i],
			ActiveCount: active[i],
		})
		report.Cumulative = append(report.Cumulative, SeriesPoint{
			Date:        date,
			Value:       cumulative[i],
			ActiveCount: active[i],
		})
	}

	return report, nil
}

// Performance computes per-trade returns and the win rate across the
// supplied positions. Closed positions measure entry to exit; open positions
// mark to the current price. Positions without a usable end price are
// skipped, never counted as zero-return trades.
func (s *AnalyticsService) Performance(positions []model.Position) PerformanceReport {
	report := PerformanceReport{Trades: []TradeSummary{}}

	for _, pos := range positions {
		if pos.EntryPrice <= 0 {
			continue
		}

		var effective float64
		switch {
		case pos.Closed() && pos.ExitPrice != nil:
			effective = *pos.ExitPrice
		case pos.CurrentPrice != nil:
			effective = *pos.CurrentPrice
		default:
			continue
		}

		ret := (effective - pos.EntryPrice) / pos.EntryPrice * 100
		if pos.Direction == model.Short {
			ret = -ret
		}

		report.Trades = append(report.Trades, TradeSummary{
			ID:             pos.ID,
			Ticker:         pos.Ticker,
			Direction:      pos.Direction,
			EntryPrice:     pos.EntryPrice,
			EffectivePrice: effective,
			ReturnPct:      math.Round(ret*100) / 100,
			Closed:         pos.Closed(),
		})

		report.TradeCount++
		if ret > 0 {
			report.WinCount++
		}
	}

	if report.TradeCount > 0 {
		rate := float64(report.WinCount) / float64(report.TradeCount) * 100
		report.WinRate = math.Round(rate*100) / 100
	}

	return report
}

// rollingWindowFor maps a range type onto its rolling window size.
func rollingWindowFor(rangeType string) (int, error) {
	switch rangeType {
	case "DAY":
		return 1, nil
	case "WEEK":
		return weeklyWindowDays, nil
	case "MONTH":
		return monthlyWindowDays, nil
	}
	return 0, fmt.Errorf("%w: %s", apperrors.ErrInvalidRangeType, rangeType)
}

// heldOn reports whether a position was active on the given trading day.
func heldOn(pos model.Position, day time.Time) bool {
	if pos.EntryDate.After(day) {
		return false
	}
	if pos.ExitDate != nil && pos.ExitDate.Before(day) {
		return false
	}
	return true
}

func uniqueTickers(positions []model.Position) []string {
	seen := make(map[string]bool, len(positions))
	var tickers []string
	for _, pos := range positions {
		if !seen[pos.Ticker] {
			seen[pos.Ticker] = true
			tickers = append(tickers, pos.Ticker)
		}
	}
	return tickers
}

// allIndices lists every index from 0 to n-1.
func allIndices(n int) []int {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	return indices
}

// sampleIndices picks every windowDays-th index starting from the first full
// window, always including the final index so the series ends at the most
// recent trading day.
func sampleIndices(n, windowDays int) []int {
	var indices []int
	for i := windowDays - 1; i < n; i += windowDays {
		indices = append(indices, i)
	}
	if n > 0 {
		last := n - 1
		if len(indices) == 0 || indices[len(indices)-1] != last {
			indices = append(indices, last)
		}
	}
	return indices
}
