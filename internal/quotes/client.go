// Package quotes fetches historical daily closes from a Yahoo-chart-style
// provider. It lives entirely at the boundary: the return calculations never
// call out themselves, they are handed the series this package produces.
package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/model"
)

// Client provides methods for fetching daily close prices for a ticker.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewClient creates a quote client for the given provider base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
	}
}

// SetToken sets the provider API token sent as a bearer credential. An empty
// token disables the header; public endpoints do not require one.
func (c *Client) SetToken(token string) {
	c.token = token
}

// DailyCloses fetches daily close prices for the ticker between start and
// end inclusive, sorted oldest first. Days the provider reports with a null
// or non-positive close are skipped.
func (c *Client) DailyCloses(ctx context.Context, ticker string, start, end time.Time) (model.PriceSeries, error) {
	url := fmt.Sprintf(
		"%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d",
		c.baseURL,
		ticker,
		start.Unix(),
		// The provider treats period2 as exclusive; include the end day.
		end.AddDate(0, 0, 1).Unix(),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build quote request: %w", err)
	}
	req.Header.Set("User-Agent", "alphaboard-analytics/1.0")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("quote request for %s failed: %w", ticker, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read quote response for %s: %w", ticker, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("quote provider returned status %d for %s", resp.StatusCode, ticker)
	}

	var chart chartResponse
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("failed to decode quote response for %s: %w", ticker, err)
	}

	return parseChart(chart, ticker)
}

// parseChart converts a raw chart response into an ordered price series.
func parseChart(chart chartResponse, ticker string) (model.PriceSeries, error) {
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("quote provider error for %s: %s", ticker, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, fmt.Errorf("no chart data returned for %s", ticker)
	}

	result := chart.Chart.Result[0]

	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no quote data returned for %s", ticker)
	}

	closes := result.Indicators.Quote[0].Close
	if len(closes) != len(result.Timestamp) {
		return nil, fmt.Errorf("mismatched data lengths for %s", ticker)
	}

	series := make(model.PriceSeries, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if closes[i] == nil || *closes[i] <= 0 {
			continue
		}
		series = append(series, model.PricePoint{
			Date:  time.Unix(ts, 0).UTC(),
			Close: *closes[i],
		})
	}

	return series, nil
}
