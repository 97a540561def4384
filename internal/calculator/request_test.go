package calculator

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockAnalyzer/internal/model"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want model.Kind
	}{
		{"RSI", model.KindMomentum},
		{"rsi", model.KindMomentum},
		{" Momentum ", model.KindMomentum},
		{"macd", model.KindConvergence},
		{"CONVERGENCE", model.KindConvergence},
		{"bb", model.KindBands},
		{"volatility_bands", model.KindBands},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseKind_Unknown(t *testing.T) {
	_, err := ParseKind("VOL")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownIndicator))
	assert.True(t, IsValidationError(err))
}

func TestParseKinds_Dedup(t *testing.T) {
	kinds, err := ParseKinds([]string{"rsi", "MACD", "momentum", "bb"})
	require.NoError(t, err)
	assert.Equal(t, []model.Kind{model.KindMomentum, model.KindConvergence, model.KindBands}, kinds)
}

func TestParams_Validate(t *testing.T) {
	require.NoError(t, DefaultParams().Validate())

	tests := []struct {
		name   string
		mutate func(*Params)
		field  string
	}{
		{"zero rsi", func(p *Params) { p.RSIPeriod = 0 }, "rsi_period"},
		{"negative fast", func(p *Params) { p.MACDFast = -1 }, "macd_fast"},
		{"zero slow", func(p *Params) { p.MACDSlow = 0 }, "macd_slow"},
		{"zero signal", func(p *Params) { p.MACDSignal = 0 }, "macd_signal"},
		{"zero bands", func(p *Params) { p.BandsPeriod = 0 }, "bands_period"},
		{"negative k", func(p *Params) { p.BandsK = -0.5 }, "bands_k"},
		{"nan k", func(p *Params) { p.BandsK = math.NaN() }, "bands_k"},
		{"inf k", func(p *Params) { p.BandsK = math.Inf(1) }, "bands_k"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			err := p.Validate()
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestRequest_ZeroMultiplierAllowed(t *testing.T) {
	p := DefaultParams()
	p.BandsK = 0
	assert.NoError(t, p.Validate())
}
