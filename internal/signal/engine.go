package signal

import "StockAnalyzer/internal/model"

// Bias is the overall reading across all available indicators.
type Bias struct {
	Label    string
	MinScore float64
}

// Biases maps an average score to a label, highest first.
var Biases = []Bias{
	{Label: "Strongly bullish", MinScore: 0.75},
	{Label: "Bullish", MinScore: 0.25},
	{Label: "Neutral", MinScore: -0.25},
	{Label: "Bearish", MinScore: -0.75},
}

// DefaultBias is used for scores below every threshold.
var DefaultBias = Bias{Label: "Strongly bearish", MinScore: -1}

// Assessment is the interpretation of one IndicatorResult.
type Assessment struct {
	Readings []Reading
	Score    float64
	Bias     Bias
	Warning  string
}

func mapBias(score float64) Bias {
	for _, b := range Biases {
		if score >= b.MinScore {
			return b
		}
	}
	return DefaultBias
}

// Evaluate interprets the present fields of res against the latest close.
// Absent indicators are skipped; with none present the bias is Neutral.
func Evaluate(res *model.IndicatorResult, lastClose float64) *Assessment {
	a := &Assessment{}
	if res == nil {
		a.Bias = mapBias(0)
		return a
	}
	if res.Momentum != nil {
		a.Readings = append(a.Readings, readMomentum(*res.Momentum))
	}
	if res.Convergence != nil {
		a.Readings = append(a.Readings, readConvergence(*res.Convergence))
	}
	if res.Bands != nil {
		a.Readings = append(a.Readings, readBands(*res.Bands, lastClose))
	}

	if len(a.Readings) > 0 {
		sum := 0.0
		for _, r := range a.Readings {
			sum += r.Score
		}
		a.Score = sum / float64(len(a.Readings))
	}
	a.Bias = mapBias(a.Score)

	if res.Momentum != nil && *res.Momentum >= 85 {
		a.Warning = "RSI above 85: extreme overbought"
	} else if res.Momentum != nil && *res.Momentum <= 15 {
		a.Warning = "RSI below 15: extreme oversold"
	}
	return a
}

// Reading returns the reading for kind k, if present.
func (a *Assessment) Reading(k model.Kind) (Reading, bool) {
	for _, r := range a.Readings {
		if r.Kind == k {
			return r, true
		}
	}
	return Reading{}, false
}
