package collector

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockAnalyzer/internal/calculator"
	"StockAnalyzer/internal/model"
	"StockAnalyzer/internal/store"
)

type failingFetcher struct {
	Fetcher
	fail map[string]bool
}

func (f *failingFetcher) FetchDailyBars(ctx context.Context, symbol string, from, to time.Time) ([]model.OHLCV, error) {
	if f.fail[symbol] {
		return nil, errors.New("upstream down")
	}
	return f.Fetcher.FetchDailyBars(ctx, symbol, from, to)
}

type countingFetcher struct {
	Fetcher
	calls atomic.Int32
}

func (c *countingFetcher) FetchDailyBars(ctx context.Context, symbol string, from, to time.Time) ([]model.OHLCV, error) {
	c.calls.Add(1)
	return c.Fetcher.FetchDailyBars(ctx, symbol, from, to)
}

func newTestCollector(t *testing.T, f Fetcher) *Collector {
	t.Helper()
	req, err := calculator.NewRequest("RSI", "MACD", "BB")
	require.NoError(t, err)
	c := NewCollector(f, req, 180)
	c.Now = func() time.Time { return dec31 }
	return c
}

func TestCollector_Analyze(t *testing.T) {
	c := newTestCollector(t, &MockFetcher{})
	a := c.Analyze(context.Background(), "INFY")
	require.NoError(t, a.Err)
	require.True(t, a.OK())
	assert.NotNil(t, a.Result.Momentum)
	assert.NotNil(t, a.Result.Convergence)
	assert.NotNil(t, a.Result.Bands)
	require.NotNil(t, a.History.Momentum)
	last, _ := a.Series.Last()
	assert.Equal(t, last.Close, a.Snapshot.LastPrice)
}

func TestCollector_AnalyzeAll_IsolatesFailures(t *testing.T) {
	broken := GenerateBars("BROKEN", dec31.AddDate(0, 0, -180), dec31)
	broken[3].High = broken[3].Low - 1

	f := &failingFetcher{
		Fetcher: &MockFetcher{Bars: map[string][]model.OHLCV{"BROKEN": broken}},
		fail:    map[string]bool{"DOWN": true},
	}
	c := newTestCollector(t, f)
	out := c.AnalyzeAll(context.Background(), []string{"TCS", "DOWN", "BROKEN", "ITC"}, 0)

	require.Len(t, out, 4)
	assert.Equal(t, []string{"TCS", "DOWN", "BROKEN", "ITC"},
		[]string{out[0].Symbol, out[1].Symbol, out[2].Symbol, out[3].Symbol})
	assert.True(t, out[0].OK())
	assert.ErrorContains(t, out[1].Err, "upstream down")
	assert.True(t, calculator.IsValidationError(out[2].Err))
	assert.True(t, out[3].OK())
}

func TestCollector_NoData(t *testing.T) {
	c := newTestCollector(t, &MockFetcher{Bars: map[string][]model.OHLCV{"EMPTY": nil}})
	a := c.Analyze(context.Background(), "EMPTY")
	assert.ErrorContains(t, a.Err, "no data available")
}

func TestTopNByVolume(t *testing.T) {
	mk := func(sym string, vol float64) *model.SymbolAnalysis {
		return &model.SymbolAnalysis{
			Symbol: sym,
			Series: model.PriceSeries{Bars: []model.OHLCV{{Volume: vol}}},
			Result: &model.IndicatorResult{},
		}
	}
	failed := &model.SymbolAnalysis{Symbol: "ERR", Err: errors.New("x")}
	in := []*model.SymbolAnalysis{mk("A", 10), failed, mk("B", 30), mk("C", 20)}

	out := TopNByVolume(in, 2)
	var syms []string
	for _, a := range out {
		syms = append(syms, a.Symbol)
	}
	assert.Equal(t, []string{"ERR", "B", "C"}, syms)

	assert.Equal(t, in, TopNByVolume(in, 0))
	assert.Equal(t, in, TopNByVolume(in, 5))
}

func TestCachedFetcher(t *testing.T) {
	st, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	defer st.Close()

	src := &countingFetcher{Fetcher: &MockFetcher{}}
	cf := NewCachedFetcher(src, st)
	from, to := jan1, jan1.AddDate(0, 2, 0)

	first, err := cf.FetchDailyBars(context.Background(), "HDFCBANK", from, to)
	require.NoError(t, err)
	second, err := cf.FetchDailyBars(context.Background(), "HDFCBANK", from, to)
	require.NoError(t, err)

	assert.Equal(t, int32(1), src.calls.Load())
	assert.Equal(t, first, second)
	assert.Equal(t, "mock+cache", cf.Name())

	_, err = cf.FetchDailyBars(context.Background(), "HDFCBANK", from, to.AddDate(0, 0, 7))
	require.NoError(t, err)
	assert.Equal(t, int32(2), src.calls.Load())
}

func TestCollector_UnorderedSourceIsRejected(t *testing.T) {
	dir := t.TempDir()
	content := "date,open,high,low,close,volume\n" +
		"2024-12-03,11,13,10,12,300\n" +
		"2024-12-02,10,12,9,11,200\n" +
		"2024-12-04,12,14,11,13,400\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ITC.csv"), []byte(content), 0o644))

	a := newTestCollector(t, NewCSVFetcher(dir)).Analyze(context.Background(), "ITC")
	require.Error(t, a.Err)
	assert.True(t, calculator.IsValidationError(a.Err))
	assert.ErrorContains(t, a.Err, "bars[1].time")
	assert.False(t, a.OK())
}
