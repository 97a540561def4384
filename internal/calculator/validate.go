package calculator

import (
	"fmt"
	"math"

	"StockAnalyzer/internal/model"
)

// ValidateSeries checks ordering and OHLC consistency of every bar.
// An empty series is valid; every indicator on it is simply absent.
func ValidateSeries(series model.PriceSeries) error {
	for i, b := range series.Bars {
		if err := validateBar(i, b); err != nil {
			return err
		}
		if i > 0 && !b.Time.After(series.Bars[i-1].Time) {
			return invalid(fmt.Sprintf("bars[%d].time", i),
				"%s is not after %s", b.Time.Format("2006-01-02"), series.Bars[i-1].Time.Format("2006-01-02"))
		}
	}
	return nil
}

func validateBar(i int, b model.OHLCV) error {
	fields := []struct {
		name string
		v    float64
	}{
		{"open", b.Open},
		{"high", b.High},
		{"low", b.Low},
		{"close", b.Close},
		{"volume", b.Volume},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return invalid(fmt.Sprintf("bars[%d].%s", i, f.name), "not a finite number")
		}
		if f.v < 0 {
			return invalid(fmt.Sprintf("bars[%d].%s", i, f.name), "negative value %v", f.v)
		}
	}
	if b.High < math.Max(math.Max(b.Open, b.Close), b.Low) {
		return invalid(fmt.Sprintf("bars[%d].high", i), "%v is below open/close/low", b.High)
	}
	if b.Low > math.Min(math.Min(b.Open, b.Close), b.High) {
		return invalid(fmt.Sprintf("bars[%d].low", i), "%v is above open/close/high", b.Low)
	}
	return nil
}
