package chart

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"StockAnalyzer/internal/model"
)

var (
	colorUp   = color.RGBA{R: 38, G: 166, B: 91, A: 255}
	colorDown = color.RGBA{R: 214, G: 69, B: 65, A: 255}
	colorGray = color.RGBA{R: 128, G: 128, B: 128, A: 160}
)

// candles draws OHLC bars as wicks plus filled bodies.
type candles struct {
	bars []model.OHLCV
}

func (c candles) Plot(canvas draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&canvas)
	hw := halfWidth(len(c.bars), func(i int) vg.Length { return trX(xOf(c.bars[i])) })

	for _, b := range c.bars {
		x := trX(xOf(b))
		clr := colorUp
		if b.Close < b.Open {
			clr = colorDown
		}
		wick := draw.LineStyle{Color: clr, Width: vg.Points(0.7)}
		canvas.StrokeLine2(wick, x, trY(b.Low), x, trY(b.High))

		top, bottom := trY(math.Max(b.Open, b.Close)), trY(math.Min(b.Open, b.Close))
		if top-bottom < vg.Points(0.5) {
			canvas.StrokeLine2(wick, x-hw, top, x+hw, top)
			continue
		}
		body := []vg.Point{{X: x - hw, Y: bottom}, {X: x + hw, Y: bottom}, {X: x + hw, Y: top}, {X: x - hw, Y: top}}
		canvas.FillPolygon(clr, canvas.ClipPolygonXY(body))
	}
}

func (c candles) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)
	for _, b := range c.bars {
		x := xOf(b)
		xmin, xmax = math.Min(xmin, x), math.Max(xmax, x)
		ymin, ymax = math.Min(ymin, b.Low), math.Max(ymax, b.High)
	}
	return xmin, xmax, ymin, ymax
}

// timeBars draws vertical bars from zero at time positions, colored by sign or by a fixed color.
type timeBars struct {
	xs, ys []float64
	fixed  color.Color
}

func (t timeBars) Plot(canvas draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&canvas)
	hw := halfWidth(len(t.xs), func(i int) vg.Length { return trX(t.xs[i]) })
	zero := trY(0)
	for i := range t.xs {
		clr := t.fixed
		if clr == nil {
			clr = colorUp
			if t.ys[i] < 0 {
				clr = colorDown
			}
		}
		x, y := trX(t.xs[i]), trY(t.ys[i])
		lo, hi := zero, y
		if hi < lo {
			lo, hi = hi, lo
		}
		rect := []vg.Point{{X: x - hw, Y: lo}, {X: x + hw, Y: lo}, {X: x + hw, Y: hi}, {X: x - hw, Y: hi}}
		canvas.FillPolygon(clr, canvas.ClipPolygonXY(rect))
	}
}

func (t timeBars) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, xmax = math.Inf(1), math.Inf(-1)
	for i, x := range t.xs {
		xmin, xmax = math.Min(xmin, x), math.Max(xmax, x)
		ymin, ymax = math.Min(ymin, t.ys[i]), math.Max(ymax, t.ys[i])
	}
	return xmin, xmax, ymin, ymax
}

func halfWidth(n int, x func(i int) vg.Length) vg.Length {
	if n < 2 {
		return vg.Points(2)
	}
	step := (x(n-1) - x(0)) / vg.Length(n-1)
	hw := step * 0.35
	if hw < vg.Points(0.3) {
		hw = vg.Points(0.3)
	}
	return hw
}

func xOf(b model.OHLCV) float64 { return float64(b.Time.Unix()) }
