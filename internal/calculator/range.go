package calculator

import (
	"errors"
	"math"

	"StockAnalyzer/internal/model"
)

// CalculateRange scans the most recent lookback bars and returns the high and low.
// A lookback of zero or more than the series length scans every bar.
func CalculateRange(bars []model.OHLCV, lookback int) (high, low float64, err error) {
	if len(bars) == 0 {
		return 0, 0, errors.New("no bars provided")
	}
	n := len(bars)
	start := 0
	if lookback > 0 && lookback < n {
		start = n - lookback
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for i := start; i < n; i++ {
		if bars[i].High > high {
			high = bars[i].High
		}
		if bars[i].Low < low {
			low = bars[i].Low
		}
	}
	return high, low, nil
}

// CalculatePosition returns where the current price sits within the range (0.0~1.0).
func CalculatePosition(current, high, low float64) (float64, error) {
	if high == low {
		return 0.5, nil
	}
	if high < low {
		return 0, errors.New("high must be >= low")
	}
	pos := (current - low) / (high - low)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos, nil
}

// Summarize builds the latest-state snapshot of a series over its whole span.
func Summarize(series model.PriceSeries) (model.Snapshot, error) {
	last, ok := series.Last()
	if !ok {
		return model.Snapshot{}, errors.New("empty series")
	}
	snap := model.Snapshot{LastPrice: last.Close, Volume: last.Volume, AsOf: last.Time}
	if n := series.Len(); n > 1 {
		prev := series.Bars[n-2].Close
		snap.Change = last.Close - prev
		if prev != 0 {
			snap.ChangePct = snap.Change / prev * 100
		}
	}
	high, low, err := CalculateRange(series.Bars, 0)
	if err != nil {
		return model.Snapshot{}, err
	}
	snap.PeriodHigh, snap.PeriodLow = high, low
	if snap.PositionPct, err = CalculatePosition(last.Close, high, low); err != nil {
		return model.Snapshot{}, err
	}
	return snap, nil
}
