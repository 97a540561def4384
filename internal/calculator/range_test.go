package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockAnalyzer/internal/model"
)

func TestCalculateRange(t *testing.T) {
	s := seriesFromCloses(10, 20, 15, 12)
	high, low, err := CalculateRange(s.Bars, 0)
	require.NoError(t, err)
	assert.Equal(t, 21.0, high)
	assert.Equal(t, 9.0, low)

	high, low, err = CalculateRange(s.Bars, 2)
	require.NoError(t, err)
	assert.Equal(t, 16.0, high)
	assert.Equal(t, 11.0, low)

	_, _, err = CalculateRange(nil, 5)
	assert.Error(t, err)
}

func TestCalculatePosition(t *testing.T) {
	tests := []struct {
		current, high, low, want float64
	}{
		{15, 20, 10, 0.5},
		{25, 20, 10, 1},
		{5, 20, 10, 0},
		{10, 10, 10, 0.5},
	}
	for _, tt := range tests {
		got, err := CalculatePosition(tt.current, tt.high, tt.low)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
	_, err := CalculatePosition(1, 1, 2)
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	snap, err := Summarize(seriesFromCloses(100, 110))
	require.NoError(t, err)
	assert.Equal(t, 110.0, snap.LastPrice)
	assert.Equal(t, 10.0, snap.Change)
	assert.InDelta(t, 10.0, snap.ChangePct, 1e-12)
	assert.Equal(t, 111.0, snap.PeriodHigh)
	assert.Equal(t, 99.0, snap.PeriodLow)
	assert.Equal(t, day0.AddDate(0, 0, 1), snap.AsOf)

	_, err = Summarize(model.PriceSeries{})
	assert.Error(t, err)
}
