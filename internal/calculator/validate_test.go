package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockAnalyzer/internal/model"
)

func TestValidateSeries_Valid(t *testing.T) {
	assert.NoError(t, ValidateSeries(seriesFromCloses(10, 11, 12)))
	assert.NoError(t, ValidateSeries(model.PriceSeries{}))
}

func TestValidateSeries_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(bars []model.OHLCV)
		field  string
	}{
		{"duplicate date", func(b []model.OHLCV) { b[2].Time = b[1].Time }, "bars[2].time"},
		{"descending date", func(b []model.OHLCV) { b[1].Time = b[0].Time.AddDate(0, 0, -1) }, "bars[1].time"},
		{"high below close", func(b []model.OHLCV) { b[0].High = b[0].Close - 0.5 }, "bars[0].high"},
		{"low above open", func(b []model.OHLCV) { b[1].Low = b[1].Open + 0.5 }, "bars[1].low"},
		{"negative volume", func(b []model.OHLCV) { b[2].Volume = -1 }, "bars[2].volume"},
		{"nan close", func(b []model.OHLCV) { b[0].Close = math.NaN() }, "bars[0].close"},
		{"inf open", func(b []model.OHLCV) { b[1].Open = math.Inf(1) }, "bars[1].open"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := seriesFromCloses(10, 11, 12)
			tt.mutate(s.Bars)
			err := ValidateSeries(s)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}
