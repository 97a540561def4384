package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"time"

	"StockAnalyzer/internal/calculator"
	"StockAnalyzer/internal/chart"
	"StockAnalyzer/internal/collector"
	"StockAnalyzer/internal/config"
	"StockAnalyzer/internal/model"
	"StockAnalyzer/internal/report"
	"StockAnalyzer/internal/store"
)

// WorkbookName is the spreadsheet written into the output dir with --xlsx.
const WorkbookName = "analysis.xlsx"

// app wires the collector and renderers for one configuration.
type app struct {
	cfg       *config.Config
	kinds     []model.Kind
	collector *collector.Collector
	renderer  *chart.Renderer
	store     store.BarStore
	out       io.Writer
	now       func() time.Time
}

func newApp(cfg *config.Config, out io.Writer) (*app, error) {
	kinds, err := cfg.Kinds()
	if err != nil {
		return nil, err
	}
	req := calculator.Request{Kinds: kinds, Params: cfg.Analysis.Params}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	fetcher, err := newFetcher(cfg)
	if err != nil {
		return nil, err
	}

	var st store.BarStore = store.NewNoopStore()
	if cfg.Cache.SQLitePath != "" && cfg.DataSource.Kind != config.SourceMock {
		sqlite, err := store.NewSQLiteStore(cfg.Cache.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite bar cache failed, fetching directly: %v", err)
		} else {
			st = sqlite
			fetcher = collector.NewCachedFetcher(fetcher, sqlite)
		}
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	return &app{
		cfg:       cfg,
		kinds:     kinds,
		collector: collector.NewCollector(fetcher, req, cfg.Analysis.PeriodDays),
		renderer:  chart.NewRenderer(cfg.Output.Dir, cfg.Output.ChartType),
		store:     st,
		out:       out,
		now:       time.Now,
	}, nil
}

func newFetcher(cfg *config.Config) (collector.Fetcher, error) {
	ds := cfg.DataSource
	switch ds.Kind {
	case config.SourceMock:
		return &collector.MockFetcher{}, nil
	case config.SourceYahoo:
		return collector.NewYahooFetcher(ds.Suffix, cfg.Proxy), nil
	case config.SourceCSV:
		return collector.NewCSVFetcher(ds.CSVDir), nil
	case config.SourceREST:
		return collector.NewRESTFetcher(ds.BaseURL, ds.APIKey, cfg.Proxy), nil
	default:
		return nil, fmt.Errorf("unknown data source %q", ds.Kind)
	}
}

func (a *app) Close() error { return a.store.Close() }

// run analyzes every configured symbol, prints the report and writes the requested files.
// Per-symbol failures are part of the result; only output errors are returned.
func (a *app) run(ctx context.Context, runID string) ([]*model.SymbolAnalysis, error) {
	analyses := a.collector.AnalyzeAll(ctx, a.cfg.Analysis.Symbols, a.cfg.Output.TopN)

	report.WriteConsole(a.out, report.Header{
		RunID:        runID,
		GeneratedAt:  a.now(),
		Source:       a.collector.Fetcher.Name(),
		MarketStatus: collector.MarketStatus(a.now()),
	}, analyses)

	if *a.cfg.Output.Charts {
		a.renderCharts(analyses)
	}
	if a.cfg.Output.XLSX {
		path := filepath.Join(a.cfg.Output.Dir, WorkbookName)
		if err := report.WriteWorkbook(path, analyses); err != nil {
			return analyses, fmt.Errorf("write workbook: %w", err)
		}
		log.Printf("[INFO] workbook saved to %s", path)
	}
	return analyses, nil
}

func (a *app) renderCharts(analyses []*model.SymbolAnalysis) {
	ok := 0
	for _, an := range analyses {
		if !an.OK() {
			continue
		}
		ok++
		files, err := a.renderer.RenderAnalysis(an, a.kinds)
		if err != nil {
			log.Printf("[ERROR] %v", err)
		}
		for _, f := range files {
			debugf("chart saved: %s", f)
		}
	}
	if ok > 1 {
		path, err := a.renderer.RenderComparison(analyses)
		if err != nil {
			log.Printf("[ERROR] comparison chart: %v", err)
		} else {
			debugf("chart saved: %s", path)
		}
	}
	if ok > 0 {
		log.Printf("[INFO] charts saved to %s", a.cfg.Output.Dir)
	}
}
