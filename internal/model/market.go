package model

import "time"

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// PriceSeries holds the bars of one symbol in ascending time order.
// Consumers treat it as read-only.
type PriceSeries struct {
	Symbol string
	Bars   []OHLCV
}

// Len returns the number of bars.
func (s PriceSeries) Len() int { return len(s.Bars) }

// Closes returns a fresh slice of close prices.
func (s PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// Last returns the most recent bar and false when the series is empty.
func (s PriceSeries) Last() (OHLCV, bool) {
	if len(s.Bars) == 0 {
		return OHLCV{}, false
	}
	return s.Bars[len(s.Bars)-1], true
}

// Snapshot summarizes the latest state of a series.
type Snapshot struct {
	LastPrice   float64
	Change      float64
	ChangePct   float64
	Volume      float64
	PeriodHigh  float64
	PeriodLow   float64
	PositionPct float64 // 0.0 ~ 1.0 within [PeriodLow, PeriodHigh]
	AsOf        time.Time
}
