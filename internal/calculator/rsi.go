package calculator

import "StockAnalyzer/internal/model"

// CalculateRSI computes the momentum oscillator for the latest bar using simple averages of the
// last period gains and losses. Requires at least period+1 closes.
// A window without losses saturates at 100.
func CalculateRSI(closes []float64, period int) (float64, error) {
	if err := requirePositive("rsi_period", period); err != nil {
		return 0, err
	}
	if len(closes) < period+1 {
		return 0, ErrInsufficientHistory
	}
	return rsiAt(closes, len(closes)-1, period), nil
}

// RSISeries computes the oscillator for every bar that has a full window behind it.
func RSISeries(closes []float64, period int) (model.Line, error) {
	if err := requirePositive("rsi_period", period); err != nil {
		return model.Line{}, err
	}
	if len(closes) < period+1 {
		return model.Line{}, ErrInsufficientHistory
	}
	line := model.Line{Start: period, Values: make([]float64, 0, len(closes)-period)}
	for end := period; end < len(closes); end++ {
		line.Values = append(line.Values, rsiAt(closes, end, period))
	}
	return line, nil
}

func rsiAt(closes []float64, end, period int) float64 {
	var gains, losses float64
	for i := end - period + 1; i <= end; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains += change
		} else {
			losses -= change
		}
	}
	if losses == 0 {
		return 100.0
	}
	rs := (gains / float64(period)) / (losses / float64(period))
	return 100.0 - 100.0/(1.0+rs)
}
