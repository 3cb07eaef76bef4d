package quotes

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/model"
)

// maxConcurrentFetches bounds parallelism against the quote provider.
const maxConcurrentFetches = 4

// FetchBatch fetches daily closes for multiple tickers concurrently.
// Individual ticker failures are logged and reported in the missing slice
// rather than failing the whole batch; a missing symbol is an expected
// condition the analytics layer surfaces to the caller. The returned error
// is non-nil only when the context is cancelled.
func (c *Client) FetchBatch(ctx context.Context, tickers []string, start, end time.Time) (map[string]model.PriceSeries, []string, error) {
	var mu sync.Mutex
	results := make(map[string]model.PriceSeries, len(tickers))
	missing := []string{}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)

	for _, ticker := range tickers {
		g.Go(func() error {
			series, err := c.DailyCloses(ctx, ticker, start, end)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				log.Printf("quote fetch failed for %s: %v", ticker, err)
				missing = append(missing, ticker)
				return nil
			}
			if len(series) == 0 {
				missing = append(missing, ticker)
				return nil
			}

			results[ticker] = series
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	return results, missing, nil
}
