package collector

import (
	"context"
	"time"

	"StockAnalyzer/internal/model"
)

// Fetcher defines the interface for fetching daily bars within [from, to].
// Implementations return bars in ascending time order.
type Fetcher interface {
	FetchDailyBars(ctx context.Context, symbol string, from, to time.Time) ([]model.OHLCV, error)
	Name() string
}

// MarketStatus reports "Open" on weekdays between 09:00 and 16:00 of now's location.
func MarketStatus(now time.Time) string {
	if now.Weekday() == time.Saturday || now.Weekday() == time.Sunday {
		return "Closed"
	}
	if h := now.Hour(); h >= 9 && h < 16 {
		return "Open"
	}
	return "Closed"
}

func withinRange(bars []model.OHLCV, from, to time.Time) []model.OHLCV {
	out := bars[:0:0]
	for _, b := range bars {
		if b.Time.Before(from) || b.Time.After(to) {
			continue
		}
		out = append(out, b)
	}
	return out
}
