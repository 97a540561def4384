package model

// Kind identifies an indicator family.
type Kind string

const (
	KindMomentum    Kind = "MOMENTUM"
	KindConvergence Kind = "CONVERGENCE"
	KindBands       Kind = "VOLATILITY_BANDS"
)

// AllKinds lists every supported indicator in display order.
var AllKinds = []Kind{KindMomentum, KindConvergence, KindBands}

// Alias returns the short conventional name (RSI, MACD, BB).
func (k Kind) Alias() string {
	switch k {
	case KindMomentum:
		return "RSI"
	case KindConvergence:
		return "MACD"
	case KindBands:
		return "BB"
	default:
		return string(k)
	}
}

// MACD holds the latest convergence oscillator values.
type MACD struct {
	Line      float64
	Signal    float64
	Histogram float64
}

// Bands holds the latest volatility band values.
type Bands struct {
	Upper  float64
	Middle float64
	Lower  float64
}

// IndicatorResult holds the most recent value of each requested indicator.
// A nil field means the indicator was not requested or the history was too short.
type IndicatorResult struct {
	Momentum    *float64
	Convergence *MACD
	Bands       *Bands
}

// Line is a computed series aligned with the bar index: Values[i] belongs to bar Start+i.
type Line struct {
	Start  int
	Values []float64
}

// Len returns the number of computed points.
func (l Line) Len() int { return len(l.Values) }

// At returns the value for bar index i, or false when i is outside the computed range.
func (l Line) At(i int) (float64, bool) {
	j := i - l.Start
	if j < 0 || j >= len(l.Values) {
		return 0, false
	}
	return l.Values[j], true
}

// MACDSeries is the full convergence oscillator history.
type MACDSeries struct {
	Line      Line
	Signal    Line
	Histogram Line
}

// BandsSeries is the full volatility band history.
type BandsSeries struct {
	Upper  Line
	Middle Line
	Lower  Line
}

// IndicatorSeries holds full per-bar histories of the requested indicators.
type IndicatorSeries struct {
	Momentum    *Line
	Convergence *MACDSeries
	Bands       *BandsSeries
}
