// Package jobs wires scheduled background work. The only job today is the
// daily price refresh that keeps the price history store current.
package jobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/service"
)

// refreshTimeout bounds a single refresh run.
const refreshTimeout = 5 * time.Minute

// PriceRefresher periodically re-fetches recent closes for every tracked
// ticker.
type PriceRefresher struct {
	prices   *service.PriceService
	schedule string
}

// NewPriceRefresher creates a refresher with a cron schedule expression.
func NewPriceRefresher(prices *service.PriceService, schedule string) *PriceRefresher {
	return &PriceRefresher{
		prices:   prices,
		schedule: schedule,
	}
}

// Start registers the job and starts the scheduler. The returned cron
// instance should be stopped on shutdown.
func (j *PriceRefresher) Start() (*cron.Cron, error) {
	c := cron.New()

	if _, err := c.AddFunc(j.schedule, j.run); err != nil {
		return nil, err
	}

	c.Start()
	log.Printf("price refresh scheduled: %s", j.schedule)

	return c, nil
}

func (j *PriceRefresher) run() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	refreshed, err := j.prices.RefreshAll(ctx, time.Now().UTC())
	if err != nil {
		log.Printf("price refresh failed: %v", err)
		return
	}

	log.Printf("price refresh complete: %d tickers updated", refreshed)
}
