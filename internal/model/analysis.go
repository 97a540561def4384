package model

// SymbolAnalysis is the outcome of analyzing one symbol. When Err is set the other
// fields may be partially filled.
type SymbolAnalysis struct {
	Symbol   string
	Series   PriceSeries
	Result   *IndicatorResult
	History  *IndicatorSeries
	Snapshot Snapshot
	Err      error
}

// OK reports whether the analysis completed.
func (a *SymbolAnalysis) OK() bool { return a.Err == nil && a.Result != nil }

// AverageVolume returns the mean volume over the analyzed bars.
func (a *SymbolAnalysis) AverageVolume() float64 {
	if len(a.Series.Bars) == 0 {
		return 0
	}
	sum := 0.0
	for _, b := range a.Series.Bars {
		sum += b.Volume
	}
	return sum / float64(len(a.Series.Bars))
}
