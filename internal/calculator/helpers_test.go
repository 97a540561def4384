package calculator

import (
	"math/rand"
	"time"

	"StockAnalyzer/internal/model"
)

var day0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// seriesFromCloses builds a valid series whose bars are flat around each close.
func seriesFromCloses(closes ...float64) model.PriceSeries {
	bars := make([]model.OHLCV, len(closes))
	for i, c := range closes {
		bars[i] = model.OHLCV{
			Time:   day0.AddDate(0, 0, i),
			Open:   c,
			High:   c + 1,
			Low:    max(c-1, 0),
			Close:  c,
			Volume: 1000,
		}
	}
	return model.PriceSeries{Symbol: "TEST", Bars: bars}
}

func linear(start, step float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}

func constant(v float64, n int) []float64 {
	return linear(v, 0, n)
}

// randomWalk returns a strictly positive seeded walk.
func randomWalk(seed int64, n int) []float64 {
	r := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	p := 100.0
	for i := range out {
		p += r.NormFloat64() * 2
		if p < 1 {
			p = 1
		}
		out[i] = p
	}
	return out
}
