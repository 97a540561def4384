package calculator

import "StockAnalyzer/internal/model"

// CalculateMACD returns the latest line, signal and histogram.
// Requires at least slow closes.
func CalculateMACD(closes []float64, fast, slow, signal int) (model.MACD, error) {
	s, err := MACDSeries(closes, fast, slow, signal)
	if err != nil {
		return model.MACD{}, err
	}
	last := s.Line.Len() - 1
	return model.MACD{
		Line:      s.Line.Values[last],
		Signal:    s.Signal.Values[last],
		Histogram: s.Histogram.Values[last],
	}, nil
}

// MACDSeries smooths over the entire history and reports values from bar slow-1 onwards.
func MACDSeries(closes []float64, fast, slow, signal int) (model.MACDSeries, error) {
	for _, p := range []struct {
		field string
		v     int
	}{{"macd_fast", fast}, {"macd_slow", slow}, {"macd_signal", signal}} {
		if err := requirePositive(p.field, p.v); err != nil {
			return model.MACDSeries{}, err
		}
	}
	if len(closes) < slow {
		return model.MACDSeries{}, ErrInsufficientHistory
	}

	fastEMA := ema(closes, fast)
	slowEMA := ema(closes, slow)
	line := make([]float64, len(closes))
	for i := range closes {
		line[i] = fastEMA[i] - slowEMA[i]
	}
	sig := ema(line, signal)
	hist := make([]float64, len(closes))
	for i := range line {
		hist[i] = line[i] - sig[i]
	}

	start := slow - 1
	return model.MACDSeries{
		Line:      model.Line{Start: start, Values: line[start:]},
		Signal:    model.Line{Start: start, Values: sig[start:]},
		Histogram: model.Line{Start: start, Values: hist[start:]},
	}, nil
}
