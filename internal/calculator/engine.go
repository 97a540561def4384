package calculator

import (
	"errors"

	"StockAnalyzer/internal/model"
)

// Analyze validates the request and the series, then computes the latest value of every
// requested indicator. Indicators without enough history are left nil.
func Analyze(series model.PriceSeries, req Request) (*model.IndicatorResult, error) {
	req, err := checkInputs(series, req)
	if err != nil {
		return nil, err
	}
	closes := series.Closes()
	p := req.Params
	res := &model.IndicatorResult{}

	if req.Has(model.KindMomentum) {
		v, err := CalculateRSI(closes, p.RSIPeriod)
		if err == nil {
			res.Momentum = &v
		} else if err = absentIfShort(err); err != nil {
			return nil, err
		}
	}
	if req.Has(model.KindConvergence) {
		m, err := CalculateMACD(closes, p.MACDFast, p.MACDSlow, p.MACDSignal)
		if err == nil {
			res.Convergence = &m
		} else if err = absentIfShort(err); err != nil {
			return nil, err
		}
	}
	if req.Has(model.KindBands) {
		b, err := CalculateBollinger(closes, p.BandsPeriod, p.BandsK)
		if err == nil {
			res.Bands = &b
		} else if err = absentIfShort(err); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// AnalyzeSeries is the full-history variant of Analyze.
func AnalyzeSeries(series model.PriceSeries, req Request) (*model.IndicatorSeries, error) {
	req, err := checkInputs(series, req)
	if err != nil {
		return nil, err
	}
	closes := series.Closes()
	p := req.Params
	out := &model.IndicatorSeries{}

	if req.Has(model.KindMomentum) {
		l, err := RSISeries(closes, p.RSIPeriod)
		if err == nil {
			out.Momentum = &l
		} else if err = absentIfShort(err); err != nil {
			return nil, err
		}
	}
	if req.Has(model.KindConvergence) {
		m, err := MACDSeries(closes, p.MACDFast, p.MACDSlow, p.MACDSignal)
		if err == nil {
			out.Convergence = &m
		} else if err = absentIfShort(err); err != nil {
			return nil, err
		}
	}
	if req.Has(model.KindBands) {
		b, err := BollingerSeries(closes, p.BandsPeriod, p.BandsK)
		if err == nil {
			out.Bands = &b
		} else if err = absentIfShort(err); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// checkInputs validates both inputs and returns the request with canonical kinds.
func checkInputs(series model.PriceSeries, req Request) (Request, error) {
	req, err := req.normalize()
	if err != nil {
		return Request{}, err
	}
	return req, ValidateSeries(series)
}

// absentIfShort swallows only ErrInsufficientHistory.
func absentIfShort(err error) error {
	if errors.Is(err, ErrInsufficientHistory) {
		return nil
	}
	return err
}
