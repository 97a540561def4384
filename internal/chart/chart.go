package chart

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"StockAnalyzer/internal/model"
	"StockAnalyzer/internal/signal"
)

// Chart types accepted by Renderer.
const (
	TypeLine        = "line"
	TypeCandlestick = "candlestick"
)

// Renderer writes PNG charts into OutputDir. Any ChartType other than TypeCandlestick draws a line.
type Renderer struct {
	OutputDir string
	ChartType string
	Width     vg.Length
	Height    vg.Length
}

// NewRenderer creates a renderer with 12x8 inch price charts.
func NewRenderer(outputDir, chartType string) *Renderer {
	return &Renderer{
		OutputDir: outputDir,
		ChartType: chartType,
		Width:     12 * vg.Inch,
		Height:    8 * vg.Inch,
	}
}

// RenderAnalysis draws the price chart and one chart per requested indicator that has history.
// It returns the paths written.
func (r *Renderer) RenderAnalysis(a *model.SymbolAnalysis, kinds []model.Kind) ([]string, error) {
	if len(a.Series.Bars) == 0 {
		return nil, errors.New("no bars to plot")
	}
	if err := os.MkdirAll(r.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	var files []string
	path, err := r.RenderPrice(a.Series)
	if err != nil {
		return files, fmt.Errorf("price chart %s: %w", a.Symbol, err)
	}
	files = append(files, path)

	if a.History == nil {
		return files, nil
	}
	for _, k := range kinds {
		path, err := r.RenderIndicator(a.Series, a.History, k)
		if errors.Is(err, errNoHistory) {
			continue
		}
		if err != nil {
			return files, fmt.Errorf("%s chart %s: %w", k.Alias(), a.Symbol, err)
		}
		files = append(files, path)
	}
	return files, nil
}

// RenderPrice draws close (or candles) above a volume panel into <SYMBOL>_price.png.
func (r *Renderer) RenderPrice(s model.PriceSeries) (string, error) {
	price := newTimePlot(fmt.Sprintf("%s Stock Price", s.Symbol), "Price")
	if r.ChartType == TypeCandlestick {
		price.Add(candles{bars: s.Bars})
	} else {
		l, err := plotter.NewLine(closeXYs(s.Bars))
		if err != nil {
			return "", err
		}
		l.LineStyle.Color = plotutil.Color(0)
		price.Add(l)
		price.Legend.Add("Close Price", l)
	}

	volume := newTimePlot("", "Volume")
	xs := make([]float64, len(s.Bars))
	ys := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		xs[i], ys[i] = xOf(b), b.Volume
	}
	volume.Add(timeBars{xs: xs, ys: ys, fixed: colorGray})

	path := filepath.Join(r.OutputDir, s.Symbol+"_price.png")
	return path, r.saveStacked(path, price, volume)
}

var errNoHistory = errors.New("indicator has no history")

// RenderIndicator draws one indicator into <SYMBOL>_<ALIAS>.png.
func (r *Renderer) RenderIndicator(s model.PriceSeries, h *model.IndicatorSeries, k model.Kind) (string, error) {
	p := newTimePlot(fmt.Sprintf("%s - %s", s.Symbol, k.Alias()), k.Alias())

	switch k {
	case model.KindMomentum:
		if h.Momentum == nil {
			return "", errNoHistory
		}
		p.Y.Min, p.Y.Max = 0, 100
		if err := addLine(p, "RSI", lineXYs(s.Bars, *h.Momentum), 0, false); err != nil {
			return "", err
		}
		first, last := xOf(s.Bars[h.Momentum.Start]), xOf(s.Bars[len(s.Bars)-1])
		for _, guide := range []float64{signal.Overbought, signal.Oversold} {
			if err := addLine(p, "", plotter.XYs{{X: first, Y: guide}, {X: last, Y: guide}}, 1, true); err != nil {
				return "", err
			}
		}
	case model.KindConvergence:
		if h.Convergence == nil {
			return "", errNoHistory
		}
		hist := h.Convergence.Histogram
		xs := make([]float64, hist.Len())
		for i := range hist.Values {
			xs[i] = xOf(s.Bars[hist.Start+i])
		}
		p.Add(timeBars{xs: xs, ys: hist.Values})
		if err := addLine(p, "MACD", lineXYs(s.Bars, h.Convergence.Line), 0, false); err != nil {
			return "", err
		}
		if err := addLine(p, "Signal Line", lineXYs(s.Bars, h.Convergence.Signal), 1, false); err != nil {
			return "", err
		}
	case model.KindBands:
		if h.Bands == nil {
			return "", errNoHistory
		}
		lines := []struct {
			name string
			xys  plotter.XYs
		}{
			{"Close Price", closeXYs(s.Bars)},
			{"Middle Band", lineXYs(s.Bars, h.Bands.Middle)},
			{"Upper Band", lineXYs(s.Bars, h.Bands.Upper)},
			{"Lower Band", lineXYs(s.Bars, h.Bands.Lower)},
		}
		for i, l := range lines {
			if err := addLine(p, l.name, l.xys, i, false); err != nil {
				return "", err
			}
		}
	default:
		return "", fmt.Errorf("unsupported indicator %q", k)
	}

	path := filepath.Join(r.OutputDir, fmt.Sprintf("%s_%s.png", s.Symbol, k.Alias()))
	return path, p.Save(r.Width, r.Height*3/4, path)
}

// RenderComparison draws every successful symbol's close rebased to 100 into comparison.png.
func (r *Renderer) RenderComparison(analyses []*model.SymbolAnalysis) (string, error) {
	p := newTimePlot("Stock Price Comparison (Normalized)", "Normalized Price (%)")
	n := 0
	for _, a := range analyses {
		if !a.OK() || len(a.Series.Bars) == 0 || a.Series.Bars[0].Close == 0 {
			continue
		}
		base := a.Series.Bars[0].Close
		xys := make(plotter.XYs, len(a.Series.Bars))
		for i, b := range a.Series.Bars {
			xys[i] = plotter.XY{X: xOf(b), Y: b.Close / base * 100}
		}
		if err := addLine(p, a.Symbol, xys, n, false); err != nil {
			return "", err
		}
		n++
	}
	if n == 0 {
		return "", errors.New("nothing to compare")
	}
	if err := os.MkdirAll(r.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(r.OutputDir, "comparison.png")
	return path, p.Save(r.Width, r.Height*3/4, path)
}

func (r *Renderer) saveStacked(path string, top, bottom *plot.Plot) error {
	img := vgimg.New(r.Width, r.Height)
	dc := draw.New(img)
	tiles := draw.Tiles{Rows: 2, Cols: 1, PadY: vg.Points(4)}
	canvases := plot.Align([][]*plot.Plot{{top}, {bottom}}, tiles, dc)
	top.Draw(canvases[0][0])
	bottom.Draw(canvases[1][0])

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func newTimePlot(title, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = ylabel
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}
	p.Add(plotter.NewGrid())
	p.Legend.Top = true
	return p
}

func addLine(p *plot.Plot, name string, xys plotter.XYs, idx int, dashed bool) error {
	l, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	l.LineStyle.Color = plotutil.Color(idx)
	l.LineStyle.Width = vg.Points(1.2)
	if dashed {
		l.LineStyle.Color = color.RGBA{R: 200, G: 60, B: 60, A: 140}
		l.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
	}
	p.Add(l)
	if name != "" {
		p.Legend.Add(name, l)
	}
	return nil
}

func closeXYs(bars []model.OHLCV) plotter.XYs {
	xys := make(plotter.XYs, len(bars))
	for i, b := range bars {
		xys[i] = plotter.XY{X: xOf(b), Y: b.Close}
	}
	return xys
}

func lineXYs(bars []model.OHLCV, l model.Line) plotter.XYs {
	xys := make(plotter.XYs, l.Len())
	for i, v := range l.Values {
		xys[i] = plotter.XY{X: xOf(bars[l.Start+i]), Y: v}
	}
	return xys
}
