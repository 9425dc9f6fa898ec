// Package scheduler runs the periodic background jobs: currently a single
// cron-driven refresh of stored asset prices.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

const refreshTimeout = 2 * time.Minute

// TickerSource lists the tickers that need price refreshes, implemented by
// repository.TransactionRepository.
type TickerSource interface {
	DistinctTickers() ([]string, error)
}

// PriceRefresher persists fresh prices for a set of tickers, implemented by
// pricing.Service.
type PriceRefresher interface {
	RefreshStored(ctx context.Context, tickers []string) (int, error)
}

// Scheduler owns the cron runner and its jobs.
type Scheduler struct {
	cron      *cron.Cron
	tickers   TickerSource
	refresher PriceRefresher
}

// New creates a scheduler with the price refresh job registered on the given
// cron spec (standard 5-field syntax).
func New(spec string, tickers TickerSource, refresher PriceRefresher) (*Scheduler, error) {
	s := &Scheduler{
		cron:      cron.New(),
		tickers:   tickers,
		refresher: refresher,
	}

	if _, err := s.cron.AddFunc(spec, s.refreshPrices); err != nil {
		return nil, err
	}

	return s, nil
}

// Start begins running scheduled jobs in their own goroutines.
func (s *Scheduler) Start() {
	s.cron.Start()
	log.Println("price refresh scheduler started")
}

// Stop halts the cron runner and waits for any running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("price refresh scheduler stopped")
}

func (s *Scheduler) refreshPrices() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	tickers, err := s.tickers.DistinctTickers()
	if err != nil {
		log.Printf("price refresh: failed to list tickers: %v", err)
		return
	}
	if len(tickers) == 0 {
		return
	}

	updated, err := s.refresher.RefreshStored(ctx, tickers)
	if err != nil {
		log.Printf("price refresh: %v", err)
		return
	}

	log.Printf("price refresh: updated %d of %d tickers", updated, len(tickers))
}
