package calculator

import "StockAnalyzer/internal/model"

// CalculateBollinger returns the latest bands: SMA(period) ± k·σ, with σ the sample standard
// deviation of the same window. Requires at least period closes.
func CalculateBollinger(closes []float64, period int, k float64) (model.Bands, error) {
	if err := checkBands(period, k); err != nil {
		return model.Bands{}, err
	}
	if len(closes) < period {
		return model.Bands{}, ErrInsufficientHistory
	}
	return bandsAt(closes, len(closes)-1, period, k), nil
}

// BollingerSeries computes the bands for every bar from period-1 onwards.
func BollingerSeries(closes []float64, period int, k float64) (model.BandsSeries, error) {
	if err := checkBands(period, k); err != nil {
		return model.BandsSeries{}, err
	}
	if len(closes) < period {
		return model.BandsSeries{}, ErrInsufficientHistory
	}
	start := period - 1
	n := len(closes) - start
	out := model.BandsSeries{
		Upper:  model.Line{Start: start, Values: make([]float64, 0, n)},
		Middle: model.Line{Start: start, Values: make([]float64, 0, n)},
		Lower:  model.Line{Start: start, Values: make([]float64, 0, n)},
	}
	for end := start; end < len(closes); end++ {
		b := bandsAt(closes, end, period, k)
		out.Upper.Values = append(out.Upper.Values, b.Upper)
		out.Middle.Values = append(out.Middle.Values, b.Middle)
		out.Lower.Values = append(out.Lower.Values, b.Lower)
	}
	return out, nil
}

func checkBands(period int, k float64) error {
	if err := requirePositive("bands_period", period); err != nil {
		return err
	}
	return validateMultiplier(k)
}

func bandsAt(closes []float64, end, period int, k float64) model.Bands {
	window := closes[end-period+1 : end+1]
	m := mean(window)
	width := k * sampleStdDev(window, m)
	return model.Bands{Upper: m + width, Middle: m, Lower: m - width}
}
