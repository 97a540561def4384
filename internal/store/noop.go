package store

import (
	"time"

	"StockAnalyzer/internal/model"
)

// NoopStore is used when the SQLite cache is not configured. It never covers a range.
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (n *NoopStore) SaveBars(_, _ string, _, _ time.Time, _ []model.OHLCV) error { return nil }
func (n *NoopStore) LoadBars(_ string, _, _ time.Time) ([]model.OHLCV, error)   { return nil, nil }
func (n *NoopStore) Covers(_, _ string, _, _ time.Time) (bool, error)          { return false, nil }
func (n *NoopStore) Close() error                                              { return nil }
