package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"StockAnalyzer/internal/calculator"
	"StockAnalyzer/internal/model"
)

// Data source kinds.
const (
	SourceMock  = "mock"
	SourceYahoo = "yahoo"
	SourceCSV   = "csv"
	SourceREST  = "rest"
)

// MaxPeriodDays bounds the analysis window to five years.
const MaxPeriodDays = 1825

// DefaultPath is used when CONFIG_PATH is unset.
const DefaultPath = "configs/config.yaml"

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		Kind    string `yaml:"kind"`
		CSVDir  string `yaml:"csv_dir"`
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
		Suffix  string `yaml:"suffix"`
	} `yaml:"data_source"`
	Analysis struct {
		Symbols    []string          `yaml:"symbols"`
		PeriodDays int               `yaml:"period_days"`
		Indicators []string          `yaml:"indicators"`
		Params     calculator.Params `yaml:"params"`
	} `yaml:"analysis"`
	Output struct {
		Dir       string `yaml:"dir"`
		ChartType string `yaml:"chart_type"`
		Charts    *bool  `yaml:"charts"`
		XLSX      bool   `yaml:"xlsx"`
		TopN      int    `yaml:"top_n"`
	} `yaml:"output"`
	Cache struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"cache"`
	Watch struct {
		Cron string `yaml:"cron"`
	} `yaml:"watch"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Metrics struct {
		Addr string `yaml:"addr"`
	} `yaml:"metrics"`
	Proxy string `yaml:"proxy"`
}

// LoadEnvFile loads KEY=VALUE pairs from path into the process environment.
// A missing file is not an error.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Load reads config from a YAML file, then applies environment variable overrides and defaults.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.Analysis.Params = calculator.DefaultParams()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("ANALYZER_SOURCE"); v != "" {
		cfg.DataSource.Kind = v
	}
	if v := os.Getenv("ANALYZER_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("ANALYZER_SYMBOLS"); v != "" {
		cfg.Analysis.Symbols = SplitList(v)
	}
	if v := os.Getenv("ANALYZER_OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Cache.SQLitePath = v
	}
	if v := os.Getenv("WATCH_CRON"); v != "" {
		cfg.Watch.Cron = v
	}
	if v := os.Getenv("METRICS_ADDR"); v != "" {
		cfg.Metrics.Addr = v
	}

	// Defaults
	if cfg.DataSource.Kind == "" {
		cfg.DataSource.Kind = SourceMock
	}
	if cfg.DataSource.CSVDir == "" {
		cfg.DataSource.CSVDir = "data"
	}
	if cfg.DataSource.Suffix == "" {
		cfg.DataSource.Suffix = ".NS"
	}
	if cfg.Analysis.PeriodDays == 0 {
		cfg.Analysis.PeriodDays = 365
	}
	if len(cfg.Analysis.Indicators) == 0 {
		cfg.Analysis.Indicators = []string{"RSI", "MACD"}
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "stock_charts"
	}
	if cfg.Output.ChartType == "" {
		cfg.Output.ChartType = "line"
	}
	if cfg.Output.Charts == nil {
		on := true
		cfg.Output.Charts = &on
	}
	if cfg.Watch.Cron == "" {
		cfg.Watch.Cron = "0 0 18 * * 1-5"
	}

	return cfg, nil
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	switch c.DataSource.Kind {
	case SourceMock, SourceYahoo:
	case SourceCSV:
		if c.DataSource.CSVDir == "" {
			return fmt.Errorf("data_source.csv_dir is required for csv source")
		}
	case SourceREST:
		if c.DataSource.BaseURL == "" {
			return fmt.Errorf("data_source.base_url is required for rest source")
		}
	default:
		return fmt.Errorf("data_source.kind %q must be one of mock, yahoo, csv, rest", c.DataSource.Kind)
	}
	if c.Analysis.PeriodDays < 1 || c.Analysis.PeriodDays > MaxPeriodDays {
		return fmt.Errorf("analysis.period_days must be between 1 and %d", MaxPeriodDays)
	}
	if _, err := c.Kinds(); err != nil {
		return fmt.Errorf("analysis.indicators: %w", err)
	}
	if err := c.Analysis.Params.Validate(); err != nil {
		return fmt.Errorf("analysis.params: %w", err)
	}
	if c.Output.ChartType != "line" && c.Output.ChartType != "candlestick" {
		return fmt.Errorf("output.chart_type %q must be line or candlestick", c.Output.ChartType)
	}
	if c.Output.TopN < 0 {
		return fmt.Errorf("output.top_n must not be negative")
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	return nil
}

// Kinds resolves analysis.indicators. A lone "all" selects every indicator.
func (c *Config) Kinds() ([]model.Kind, error) {
	return ResolveKinds(c.Analysis.Indicators)
}

// ResolveKinds parses indicator names, expanding a lone "all".
func ResolveKinds(names []string) ([]model.Kind, error) {
	if len(names) == 1 && strings.EqualFold(strings.TrimSpace(names[0]), "all") {
		return append([]model.Kind(nil), model.AllKinds...), nil
	}
	return calculator.ParseKinds(names)
}

// SplitList splits a comma separated list, trimming blanks.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
