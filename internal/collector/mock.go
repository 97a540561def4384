package collector

import (
	"context"
	"hash/fnv"
	"math"
	"math/rand"
	"time"

	"StockAnalyzer/internal/model"
)

// MockFetcher generates a seeded random walk per symbol. Bars, when set, replaces the
// generator for the listed symbols.
type MockFetcher struct {
	Bars map[string][]model.OHLCV
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(ctx context.Context, symbol string, from, to time.Time) ([]model.OHLCV, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if bars, ok := m.Bars[symbol]; ok {
		return withinRange(bars, from, to), nil
	}
	return GenerateBars(symbol, from, to), nil
}

// GenerateBars builds business-day bars in [from, to]. The same symbol and range always
// produce the same bars.
func GenerateBars(symbol string, from, to time.Time) []model.OHLCV {
	h := fnv.New64a()
	h.Write([]byte(symbol))
	r := rand.New(rand.NewSource(int64(h.Sum64())))

	base := 1000 + r.Float64()*2000
	floor := base * 0.05
	price := base

	var bars []model.OHLCV
	for d := truncateDay(from); !d.After(to); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		price = math.Max(price+r.NormFloat64()*50, floor)

		open := math.Max(price+r.NormFloat64()*5, 0)
		high := math.Max(price+10+r.NormFloat64()*5, 0)
		low := math.Max(price-10+r.NormFloat64()*5, 0)
		bars = append(bars, model.OHLCV{
			Time:   d,
			Open:   open,
			High:   math.Max(math.Max(open, high), math.Max(low, price)),
			Low:    math.Min(math.Min(open, high), math.Min(low, price)),
			Close:  price,
			Volume: float64(100000 + r.Intn(900000)),
		})
	}
	return bars
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
