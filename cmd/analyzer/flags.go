package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"StockAnalyzer/internal/config"
)

// options holds parsed command line flags. set records which flags were given
// explicitly; only those override the config file.
type options struct {
	symbols    string
	period     int
	indicators string
	chartType  string
	outputDir  string
	topN       int
	source     string
	xlsx       bool
	noCharts   bool
	watch      bool
	configPath string
	envFile    string
	verbose    bool
	version    bool

	set map[string]bool
}

func parseArgs(args []string, output io.Writer) (*options, error) {
	o := &options{set: map[string]bool{}}
	fs := flag.NewFlagSet("stock-analyzer", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&o.symbols, "symbols", "", "Comma-separated list of stock symbols (e.g. TATAMOTORS,WIPRO)")
	fs.IntVar(&o.period, "period", 365, "Analysis period in days (max 1825)")
	fs.StringVar(&o.indicators, "indicators", "RSI,MACD", "Technical indicators to compute: RSI,MACD,BB or all")
	fs.StringVar(&o.chartType, "chart-type", "line", "Price chart type: line or candlestick")
	fs.StringVar(&o.outputDir, "output-dir", "stock_charts", "Directory for charts and exports")
	fs.IntVar(&o.topN, "top-n", 0, "Show only the top N stocks by volume")
	fs.StringVar(&o.source, "source", config.SourceMock, "Data source: mock, yahoo, csv or rest")
	fs.BoolVar(&o.xlsx, "xlsx", false, "Also write analysis.xlsx")
	fs.BoolVar(&o.noCharts, "no-charts", false, "Skip PNG charts")
	fs.BoolVar(&o.watch, "watch", false, "Keep running and re-analyze on the watch.cron schedule")
	fs.StringVar(&o.configPath, "config", "", "Config file (default $CONFIG_PATH or "+config.DefaultPath+")")
	fs.StringVar(&o.envFile, "env", ".env", "Environment file")
	fs.BoolVar(&o.verbose, "verbose", false, "Enable verbose output")
	fs.BoolVar(&o.verbose, "v", false, "Shorthand for --verbose")
	fs.BoolVar(&o.version, "version", false, "Show version information")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage of stock-analyzer:\n")
		fs.PrintDefaults()
		fmt.Fprint(fs.Output(), `
Examples:
  stock-analyzer --symbols TATAMOTORS,WIPRO,BHARTIARTL
  stock-analyzer --symbols RELIANCE,TCS --period 90 --indicators RSI,MACD
  stock-analyzer --symbols INFY --chart-type candlestick --output-dir my_charts
`)
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	fs.Visit(func(f *flag.Flag) {
		name := f.Name
		if name == "v" {
			name = "verbose"
		}
		o.set[name] = true
	})
	return o, nil
}

// resolveConfigPath picks the config file: --config, then CONFIG_PATH, then the default.
func (o *options) resolveConfigPath() string {
	if o.configPath != "" {
		return o.configPath
	}
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return config.DefaultPath
}

// apply overrides cfg with explicitly given flags and normalizes symbols.
func (o *options) apply(cfg *config.Config) error {
	if o.set["symbols"] {
		cfg.Analysis.Symbols = config.SplitList(o.symbols)
	}
	if o.set["period"] {
		cfg.Analysis.PeriodDays = o.period
		if o.period <= 0 {
			return errors.New("period must be a positive integer")
		}
	}
	if o.set["indicators"] {
		cfg.Analysis.Indicators = config.SplitList(o.indicators)
		if len(cfg.Analysis.Indicators) == 0 {
			cfg.Analysis.Indicators = []string{"RSI", "MACD"}
		}
	}
	if o.set["chart-type"] {
		cfg.Output.ChartType = strings.ToLower(strings.TrimSpace(o.chartType))
	}
	if o.set["output-dir"] {
		cfg.Output.Dir = o.outputDir
	}
	if o.set["top-n"] {
		cfg.Output.TopN = o.topN
	}
	if o.set["source"] {
		cfg.DataSource.Kind = strings.ToLower(o.source)
	}
	if o.set["xlsx"] {
		cfg.Output.XLSX = o.xlsx
	}
	if o.set["no-charts"] {
		charts := !o.noCharts
		cfg.Output.Charts = &charts
	}

	symbols, err := validateSymbols(cfg.Analysis.Symbols)
	if err != nil {
		return err
	}
	cfg.Analysis.Symbols = symbols
	return nil
}

// validateSymbols uppercases symbols and rejects empty or non-alphanumeric ones.
func validateSymbols(symbols []string) ([]string, error) {
	if len(symbols) == 0 {
		return nil, errors.New("stock symbols must be provided (--symbols or analysis.symbols)")
	}
	out := make([]string, 0, len(symbols))
	seen := make(map[string]bool, len(symbols))
	for _, s := range symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" || strings.IndexFunc(s, func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsDigit(r) }) >= 0 {
			return nil, fmt.Errorf("stock symbol %q must be alphanumeric", s)
		}
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out, nil
}
