package collector

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"StockAnalyzer/internal/model"
)

var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05", "02-01-2006"}

// CSVFetcher reads <Dir>/<SYMBOL>.csv with the header date,open,high,low,close,volume.
type CSVFetcher struct {
	Dir string
}

func NewCSVFetcher(dir string) *CSVFetcher { return &CSVFetcher{Dir: dir} }

func (f *CSVFetcher) Name() string { return "csv" }

func (f *CSVFetcher) FetchDailyBars(ctx context.Context, symbol string, from, to time.Time) ([]model.OHLCV, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := filepath.Join(f.Dir, symbol+".csv")
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	bars, err := ParseCSV(file)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return withinRange(bars, from, to), nil
}

// ParseCSV decodes OHLCV rows in file order. Column order is taken from the header,
// case-insensitively. Row order is not corrected; the engine rejects unordered dates.
func ParseCSV(r io.Reader) ([]model.OHLCV, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, name := range []string{"date", "open", "high", "low", "close", "volume"} {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	var bars []model.OHLCV
	for line := 2; ; line++ {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		bar, err := parseRow(rec, cols)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		bars = append(bars, bar)
	}

	return bars, nil
}

func parseRow(rec []string, cols map[string]int) (model.OHLCV, error) {
	var bar model.OHLCV
	ts, err := parseDate(rec[cols["date"]])
	if err != nil {
		return bar, err
	}
	bar.Time = ts

	targets := []struct {
		name string
		dst  *float64
	}{
		{"open", &bar.Open},
		{"high", &bar.High},
		{"low", &bar.Low},
		{"close", &bar.Close},
		{"volume", &bar.Volume},
	}
	for _, t := range targets {
		v, err := strconv.ParseFloat(strings.TrimSpace(rec[cols[t.name]]), 64)
		if err != nil {
			return bar, fmt.Errorf("%s: %w", t.name, err)
		}
		*t.dst = v
	}
	return bar, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
