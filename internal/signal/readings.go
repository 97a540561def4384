package signal

import (
	"fmt"

	"StockAnalyzer/internal/model"
)

// Conventional oscillator guides, also drawn on the RSI chart.
const (
	Overbought = 70.0
	Oversold   = 30.0
)

// Reading is the interpretation of one indicator.
type Reading struct {
	Kind       model.Kind
	Label      string
	Score      float64 // -1 bearish .. +1 bullish
	Commentary string
}

func readMomentum(rsi float64) Reading {
	r := Reading{Kind: model.KindMomentum, Commentary: fmt.Sprintf("RSI=%.1f", rsi)}
	switch {
	case rsi >= Overbought:
		r.Label, r.Score = "Overbought", -1
	case rsi <= Oversold:
		r.Label, r.Score = "Oversold", 1
	default:
		r.Label = "Neutral"
	}
	return r
}

func readConvergence(m model.MACD) Reading {
	r := Reading{Kind: model.KindConvergence, Commentary: fmt.Sprintf("hist=%+.2f", m.Histogram)}
	switch {
	case m.Histogram > 0:
		r.Label, r.Score = "Bullish", 1
	case m.Histogram < 0:
		r.Label, r.Score = "Bearish", -1
	default:
		r.Label = "Flat"
	}
	return r
}

func readBands(b model.Bands, price float64) Reading {
	r := Reading{Kind: model.KindBands}
	width := b.Upper - b.Lower
	if width > 0 {
		r.Commentary = fmt.Sprintf("%%B=%.2f", (price-b.Lower)/width)
	} else {
		r.Commentary = "bands collapsed"
	}
	switch {
	case price > b.Upper:
		r.Label, r.Score = "Above upper band", -1
	case price < b.Lower:
		r.Label, r.Score = "Below lower band", 1
	default:
		r.Label = "Inside bands"
	}
	return r
}
