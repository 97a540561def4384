package collector

import (
	"context"
	"fmt"
	"log"
	"time"

	"StockAnalyzer/internal/model"
	"StockAnalyzer/internal/store"
)

// CachedFetcher serves bars from a BarStore when an earlier fetch from the same source
// covered the requested range, and otherwise fetches and stores them.
type CachedFetcher struct {
	Source Fetcher
	Store  store.BarStore
}

func NewCachedFetcher(source Fetcher, st store.BarStore) *CachedFetcher {
	return &CachedFetcher{Source: source, Store: st}
}

func (c *CachedFetcher) Name() string { return c.Source.Name() + "+cache" }

func (c *CachedFetcher) FetchDailyBars(ctx context.Context, symbol string, from, to time.Time) ([]model.OHLCV, error) {
	covered, err := c.Store.Covers(symbol, c.Source.Name(), from, to)
	if err != nil {
		log.Printf("[WARN] cache lookup %s: %v", symbol, err)
	}
	if covered {
		bars, err := c.Store.LoadBars(symbol, from, to)
		if err == nil {
			return bars, nil
		}
		log.Printf("[WARN] cache load %s: %v, refetching", symbol, err)
	}

	bars, err := c.Source.FetchDailyBars(ctx, symbol, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.Source.Name(), err)
	}
	if err := c.Store.SaveBars(symbol, c.Source.Name(), from, to, bars); err != nil {
		log.Printf("[WARN] cache save %s: %v", symbol, err)
	}
	return bars, nil
}
