package store

import (
	"time"

	"StockAnalyzer/internal/model"
)

// BarStore caches raw daily bars per symbol and remembers which date ranges were fetched
// from which source. Computed indicators are never stored.
type BarStore interface {
	SaveBars(symbol, source string, from, to time.Time, bars []model.OHLCV) error
	LoadBars(symbol string, from, to time.Time) ([]model.OHLCV, error)
	Covers(symbol, source string, from, to time.Time) (bool, error)
	Close() error
}
