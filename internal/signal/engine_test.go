package signal

import (
	"testing"

	"StockAnalyzer/internal/model"
)

func ptr(v float64) *float64 { return &v }

func TestEvaluate_Overbought(t *testing.T) {
	res := &model.IndicatorResult{
		Momentum:    ptr(90),
		Convergence: &model.MACD{Line: 2, Signal: 3, Histogram: -1},
		Bands:       &model.Bands{Upper: 110, Middle: 100, Lower: 90},
	}
	a := Evaluate(res, 115)
	if len(a.Readings) != 3 {
		t.Fatalf("expected 3 readings, got %d", len(a.Readings))
	}
	if a.Score != -1 {
		t.Errorf("expected score -1, got %.2f", a.Score)
	}
	if a.Bias.Label != "Strongly bearish" {
		t.Errorf("unexpected bias %q", a.Bias.Label)
	}
	if a.Warning == "" {
		t.Error("expected extreme overbought warning")
	}
}

func TestEvaluate_Oversold(t *testing.T) {
	res := &model.IndicatorResult{
		Momentum: ptr(25),
		Bands:    &model.Bands{Upper: 110, Middle: 100, Lower: 90},
	}
	a := Evaluate(res, 85)
	if a.Bias.Label != "Strongly bullish" {
		t.Errorf("unexpected bias %q (score %.2f)", a.Bias.Label, a.Score)
	}
	r, ok := a.Reading(model.KindBands)
	if !ok || r.Label != "Below lower band" {
		t.Errorf("unexpected bands reading %+v", r)
	}
	if _, ok := a.Reading(model.KindConvergence); ok {
		t.Error("convergence was not computed and should have no reading")
	}
}

func TestEvaluate_Empty(t *testing.T) {
	for _, res := range []*model.IndicatorResult{nil, {}} {
		a := Evaluate(res, 100)
		if a.Bias.Label != "Neutral" || len(a.Readings) != 0 {
			t.Errorf("expected neutral empty assessment, got %+v", a)
		}
	}
}

func TestEvaluate_CollapsedBands(t *testing.T) {
	a := Evaluate(&model.IndicatorResult{Bands: &model.Bands{Upper: 200, Middle: 200, Lower: 200}}, 200)
	r, _ := a.Reading(model.KindBands)
	if r.Label != "Inside bands" || r.Commentary != "bands collapsed" {
		t.Errorf("unexpected reading %+v", r)
	}
}

func TestMapBias_AllBoundaries(t *testing.T) {
	tests := []struct {
		score float64
		label string
	}{
		{1, "Strongly bullish"},
		{0.75, "Strongly bullish"},
		{0.5, "Bullish"},
		{0.25, "Bullish"},
		{0, "Neutral"},
		{-0.25, "Neutral"},
		{-0.5, "Bearish"},
		{-0.75, "Bearish"},
		{-1, "Strongly bearish"},
	}
	for _, tt := range tests {
		if got := mapBias(tt.score); got.Label != tt.label {
			t.Errorf("score %.2f: expected %q, got %q", tt.score, tt.label, got.Label)
		}
	}
}
