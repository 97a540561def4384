package calculator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockAnalyzer/internal/model"
)

func allRequest(t *testing.T) Request {
	t.Helper()
	req, err := NewRequest("MOMENTUM", "CONVERGENCE", "VOLATILITY_BANDS")
	require.NoError(t, err)
	return req
}

func TestAnalyze_LinearRise(t *testing.T) {
	req, err := NewRequest("rsi")
	require.NoError(t, err)
	res, err := Analyze(seriesFromCloses(linear(100, 1, 30)...), req)
	require.NoError(t, err)
	require.NotNil(t, res.Momentum)
	assert.Equal(t, 100.0, *res.Momentum)
	assert.Nil(t, res.Convergence)
	assert.Nil(t, res.Bands)
}

func TestAnalyze_ConstantSeries(t *testing.T) {
	res, err := Analyze(seriesFromCloses(constant(50, 26)...), allRequest(t))
	require.NoError(t, err)
	require.NotNil(t, res.Convergence)
	assert.Equal(t, model.MACD{Line: 0, Signal: 0, Histogram: 0}, *res.Convergence)

	res, err = Analyze(seriesFromCloses(constant(200, 20)...), allRequest(t))
	require.NoError(t, err)
	require.NotNil(t, res.Bands)
	assert.Equal(t, model.Bands{Upper: 200, Middle: 200, Lower: 200}, *res.Bands)
	// 20 bars cover RSI(14) but not MACD(26).
	assert.NotNil(t, res.Momentum)
	assert.Nil(t, res.Convergence)
}

func TestAnalyze_InsufficientHistoryIsAbsent(t *testing.T) {
	res, err := Analyze(seriesFromCloses(1, 2, 3), allRequest(t))
	require.NoError(t, err)
	assert.Equal(t, &model.IndicatorResult{}, res)

	res, err = Analyze(model.PriceSeries{}, allRequest(t))
	require.NoError(t, err)
	assert.Equal(t, &model.IndicatorResult{}, res)
}

func TestAnalyze_HistoryBoundaries(t *testing.T) {
	req := allRequest(t)
	tests := []struct {
		kind     model.Kind
		required int
	}{
		{model.KindMomentum, 15},
		{model.KindConvergence, 26},
		{model.KindBands, 20},
	}
	present := func(res *model.IndicatorResult, k model.Kind) bool {
		switch k {
		case model.KindMomentum:
			return res.Momentum != nil
		case model.KindConvergence:
			return res.Convergence != nil
		default:
			return res.Bands != nil
		}
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			short, err := Analyze(seriesFromCloses(randomWalk(1, tt.required-1)...), req)
			require.NoError(t, err)
			assert.False(t, present(short, tt.kind))

			exact, err := Analyze(seriesFromCloses(randomWalk(1, tt.required)...), req)
			require.NoError(t, err)
			assert.True(t, present(exact, tt.kind))
		})
	}
}

func TestAnalyze_ValidationErrors(t *testing.T) {
	good := seriesFromCloses(linear(10, 1, 40)...)

	_, err := Analyze(good, Request{Kinds: []model.Kind{"VOLUME"}, Params: DefaultParams()})
	assert.True(t, errors.Is(err, ErrUnknownIndicator))

	bad := allRequest(t)
	bad.Params.RSIPeriod = 0
	_, err = Analyze(good, bad)
	assert.True(t, IsValidationError(err))

	broken := seriesFromCloses(linear(10, 1, 40)...)
	broken.Bars[5].Time = broken.Bars[4].Time
	_, err = Analyze(broken, allRequest(t))
	assert.True(t, IsValidationError(err))
}

func TestAnalyze_DoesNotMutateSeries(t *testing.T) {
	s := seriesFromCloses(randomWalk(4, 60)...)
	before := append([]model.OHLCV(nil), s.Bars...)
	_, err := Analyze(s, allRequest(t))
	require.NoError(t, err)
	assert.Equal(t, before, s.Bars)
}

func TestAnalyze_Deterministic(t *testing.T) {
	s := seriesFromCloses(randomWalk(8, 250)...)
	a, err := Analyze(s, allRequest(t))
	require.NoError(t, err)
	b, err := Analyze(s, allRequest(t))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestAnalyze_Properties(t *testing.T) {
	req := allRequest(t)
	for seed := int64(0); seed < 50; seed++ {
		res, err := Analyze(seriesFromCloses(randomWalk(seed, 40+int(seed))...), req)
		require.NoError(t, err)
		require.NotNil(t, res.Momentum)
		assert.GreaterOrEqual(t, *res.Momentum, 0.0)
		assert.LessOrEqual(t, *res.Momentum, 100.0)
		require.NotNil(t, res.Bands)
		assert.LessOrEqual(t, res.Bands.Lower, res.Bands.Middle)
		assert.LessOrEqual(t, res.Bands.Middle, res.Bands.Upper)
	}
}

func TestAnalyze_MonotonicSeries(t *testing.T) {
	req, err := NewRequest("RSI")
	require.NoError(t, err)

	// non-decreasing with flat steps
	up := []float64{10, 10, 11, 11, 12, 13, 13, 14, 15, 15, 16, 17, 17, 18, 19, 20}
	res, err := Analyze(seriesFromCloses(up...), req)
	require.NoError(t, err)
	assert.Equal(t, 100.0, *res.Momentum)

	down := make([]float64, len(up))
	for i, v := range up {
		down[i] = 30 - v
	}
	res, err = Analyze(seriesFromCloses(down...), req)
	require.NoError(t, err)
	assert.Equal(t, 0.0, *res.Momentum)
}

func TestAnalyzeSeries(t *testing.T) {
	s := seriesFromCloses(randomWalk(2, 100)...)
	req := allRequest(t)
	full, err := AnalyzeSeries(s, req)
	require.NoError(t, err)
	latest, err := Analyze(s, req)
	require.NoError(t, err)

	require.NotNil(t, full.Momentum)
	v, ok := full.Momentum.At(99)
	require.True(t, ok)
	assert.Equal(t, *latest.Momentum, v)

	mid, ok := full.Bands.Middle.At(99)
	require.True(t, ok)
	assert.Equal(t, latest.Bands.Middle, mid)

	short, err := AnalyzeSeries(seriesFromCloses(1, 2), req)
	require.NoError(t, err)
	assert.Equal(t, &model.IndicatorSeries{}, short)
}

func TestAnalyze_AliasAndLowercaseKinds(t *testing.T) {
	series := seriesFromCloses(linear(100, 1, 30)...)
	req := Request{Kinds: []model.Kind{"rsi", "BB"}, Params: DefaultParams()}

	res, err := Analyze(series, req)
	require.NoError(t, err)
	require.NotNil(t, res.Momentum)
	assert.Equal(t, 100.0, *res.Momentum)
	require.NotNil(t, res.Bands)
	assert.Nil(t, res.Convergence)

	hist, err := AnalyzeSeries(series, req)
	require.NoError(t, err)
	require.NotNil(t, hist.Momentum)
	require.NotNil(t, hist.Bands)
	assert.Nil(t, hist.Convergence)

	assert.Equal(t, []model.Kind{"rsi", "BB"}, req.Kinds, "caller's request is not rewritten")
}

func TestAnalyze_CanonicalNamesAnyCase(t *testing.T) {
	req := Request{Kinds: []model.Kind{"convergence", "Volatility_Bands", "MOMENTUM"}, Params: DefaultParams()}
	res, err := Analyze(seriesFromCloses(randomWalk(3, 60)...), req)
	require.NoError(t, err)
	assert.NotNil(t, res.Momentum)
	assert.NotNil(t, res.Convergence)
	assert.NotNil(t, res.Bands)
}
