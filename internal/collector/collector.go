package collector

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"StockAnalyzer/internal/calculator"
	"StockAnalyzer/internal/metrics"
	"StockAnalyzer/internal/model"
)

// Collector orchestrates data fetching and indicator computation.
type Collector struct {
	Fetcher     Fetcher
	Request     calculator.Request
	PeriodDays  int
	Concurrency int
	Now         func() time.Time
}

// NewCollector creates a new Collector analyzing the last periodDays calendar days.
func NewCollector(fetcher Fetcher, req calculator.Request, periodDays int) *Collector {
	return &Collector{
		Fetcher:     fetcher,
		Request:     req,
		PeriodDays:  periodDays,
		Concurrency: 4,
		Now:         time.Now,
	}
}

// Window returns the [from, to] date range covered by one analysis.
func (c *Collector) Window() (from, to time.Time) {
	to = truncateDay(c.Now())
	return to.AddDate(0, 0, -c.PeriodDays), to
}

// Analyze fetches one symbol and computes its indicators. Failures are reported
// in the returned analysis, never as a panic or a shared error.
func (c *Collector) Analyze(ctx context.Context, symbol string) *model.SymbolAnalysis {
	start := time.Now()
	source := c.Fetcher.Name()
	defer func() { metrics.ObserveAnalysis(source, time.Since(start)) }()

	a := &model.SymbolAnalysis{Symbol: symbol}
	from, to := c.Window()

	bars, err := c.Fetcher.FetchDailyBars(ctx, symbol, from, to)
	if err != nil {
		metrics.RecordFetchError(source)
		metrics.RecordAnalysis(symbol, metrics.OutcomeFailed)
		a.Err = fmt.Errorf("fetch %s: %w", symbol, err)
		return a
	}
	if len(bars) == 0 {
		metrics.RecordAnalysis(symbol, metrics.OutcomeFailed)
		a.Err = fmt.Errorf("no data available for %s", symbol)
		return a
	}
	a.Series = model.PriceSeries{Symbol: symbol, Bars: bars}

	res, err := calculator.Analyze(a.Series, c.Request)
	if err != nil {
		outcome := metrics.OutcomeFailed
		if calculator.IsValidationError(err) {
			outcome = metrics.OutcomeInvalid
		}
		metrics.RecordAnalysis(symbol, outcome)
		a.Err = fmt.Errorf("analyze %s: %w", symbol, err)
		return a
	}
	hist, err := calculator.AnalyzeSeries(a.Series, c.Request)
	if err != nil {
		metrics.RecordAnalysis(symbol, metrics.OutcomeFailed)
		a.Err = fmt.Errorf("analyze history %s: %w", symbol, err)
		return a
	}
	snap, err := calculator.Summarize(a.Series)
	if err != nil {
		metrics.RecordAnalysis(symbol, metrics.OutcomeFailed)
		a.Err = fmt.Errorf("summarize %s: %w", symbol, err)
		return a
	}

	a.Result, a.History, a.Snapshot = res, hist, snap
	metrics.RecordAnalysis(symbol, metrics.OutcomeOK)
	return a
}

// AnalyzeAll analyzes symbols in parallel, preserving input order. One symbol's
// failure does not affect the others. topN > 0 keeps only the N successful symbols
// with the highest average volume; failed symbols are always kept.
func (c *Collector) AnalyzeAll(ctx context.Context, symbols []string, topN int) []*model.SymbolAnalysis {
	out := make([]*model.SymbolAnalysis, len(symbols))

	var g errgroup.Group
	if c.Concurrency > 0 {
		g.SetLimit(c.Concurrency)
	}
	for i, sym := range symbols {
		g.Go(func() error {
			out[i] = c.Analyze(ctx, sym)
			if out[i].Err != nil {
				log.Printf("[WARN] %v", out[i].Err)
			}
			return nil
		})
	}
	_ = g.Wait()
	metrics.MarkRun(time.Now())

	return TopNByVolume(out, topN)
}

// TopNByVolume keeps the n successful analyses with the highest average volume.
func TopNByVolume(analyses []*model.SymbolAnalysis, n int) []*model.SymbolAnalysis {
	var ok []*model.SymbolAnalysis
	for _, a := range analyses {
		if a.OK() {
			ok = append(ok, a)
		}
	}
	if n <= 0 || n >= len(ok) {
		return analyses
	}

	sort.SliceStable(ok, func(i, j int) bool { return ok[i].AverageVolume() > ok[j].AverageVolume() })
	keep := make(map[*model.SymbolAnalysis]bool, n)
	for _, a := range ok[:n] {
		keep[a] = true
	}

	out := make([]*model.SymbolAnalysis, 0, len(analyses))
	for _, a := range analyses {
		if !a.OK() || keep[a] {
			out = append(out, a)
		}
	}
	return out
}
