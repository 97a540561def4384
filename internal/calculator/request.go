package calculator

import (
	"fmt"
	"math"
	"strings"

	"StockAnalyzer/internal/model"
)

var kindAliases = map[string]model.Kind{
	"MOMENTUM":         model.KindMomentum,
	"RSI":              model.KindMomentum,
	"CONVERGENCE":      model.KindConvergence,
	"MACD":             model.KindConvergence,
	"VOLATILITY_BANDS": model.KindBands,
	"BB":               model.KindBands,
}

// ParseKind resolves an indicator identifier or alias, case-insensitively.
func ParseKind(name string) (model.Kind, error) {
	if k, ok := kindAliases[strings.ToUpper(strings.TrimSpace(name))]; ok {
		return k, nil
	}
	return "", &ValidationError{
		Field:  "indicator",
		Reason: fmt.Sprintf("%q is not one of MOMENTUM, CONVERGENCE, VOLATILITY_BANDS (RSI, MACD, BB)", name),
		Err:    ErrUnknownIndicator,
	}
}

// ParseKinds resolves a list of identifiers, dropping duplicates and keeping first-seen order.
func ParseKinds(names []string) ([]model.Kind, error) {
	kinds := make([]model.Kind, 0, len(names))
	seen := make(map[model.Kind]bool, len(names))
	for _, n := range names {
		k, err := ParseKind(n)
		if err != nil {
			return nil, err
		}
		if seen[k] {
			continue
		}
		seen[k] = true
		kinds = append(kinds, k)
	}
	return kinds, nil
}

// Params holds the window and span settings of every indicator.
type Params struct {
	RSIPeriod   int     `yaml:"rsi_period"`
	MACDFast    int     `yaml:"macd_fast"`
	MACDSlow    int     `yaml:"macd_slow"`
	MACDSignal  int     `yaml:"macd_signal"`
	BandsPeriod int     `yaml:"bands_period"`
	BandsK      float64 `yaml:"bands_k"`
}

// DefaultParams returns RSI(14), MACD(12,26,9) and bands(20, 2.0).
func DefaultParams() Params {
	return Params{
		RSIPeriod:   14,
		MACDFast:    12,
		MACDSlow:    26,
		MACDSignal:  9,
		BandsPeriod: 20,
		BandsK:      2.0,
	}
}

// Validate checks that windows are positive and the band multiplier is a finite non-negative number.
func (p Params) Validate() error {
	checks := []struct {
		field string
		v     int
	}{
		{"rsi_period", p.RSIPeriod},
		{"macd_fast", p.MACDFast},
		{"macd_slow", p.MACDSlow},
		{"macd_signal", p.MACDSignal},
		{"bands_period", p.BandsPeriod},
	}
	for _, c := range checks {
		if err := requirePositive(c.field, c.v); err != nil {
			return err
		}
	}
	return validateMultiplier(p.BandsK)
}

func validateMultiplier(k float64) error {
	if math.IsNaN(k) || math.IsInf(k, 0) || k < 0 {
		return invalid("bands_k", "must be a finite non-negative number, got %v", k)
	}
	return nil
}

// Request names the indicators to compute and their parameters.
type Request struct {
	Kinds  []model.Kind
	Params Params
}

// NewRequest parses identifiers and attaches the default parameters.
func NewRequest(names ...string) (Request, error) {
	kinds, err := ParseKinds(names)
	if err != nil {
		return Request{}, err
	}
	return Request{Kinds: kinds, Params: DefaultParams()}, nil
}

// Has reports whether kind k was requested.
func (r Request) Has(k model.Kind) bool {
	for _, rk := range r.Kinds {
		if rk == k {
			return true
		}
	}
	return false
}

// Validate rejects unknown kinds and bad parameters.
func (r Request) Validate() error {
	_, err := r.normalize()
	return err
}

// normalize returns a copy of r with every kind resolved to its canonical name,
// so aliases and any letter case dispatch like the canonical identifier.
func (r Request) normalize() (Request, error) {
	names := make([]string, len(r.Kinds))
	for i, k := range r.Kinds {
		names[i] = string(k)
	}
	kinds, err := ParseKinds(names)
	if err != nil {
		return Request{}, err
	}
	if err := r.Params.Validate(); err != nil {
		return Request{}, err
	}
	return Request{Kinds: kinds, Params: r.Params}, nil
}
