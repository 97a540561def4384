package report

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"StockAnalyzer/internal/model"
	"StockAnalyzer/internal/signal"
)

// Header describes one batch run.
type Header struct {
	RunID        string
	GeneratedAt  time.Time
	Source       string
	MarketStatus string
}

// WriteConsole prints a header table followed by one table per symbol.
// Failed symbols get a single error row.
func WriteConsole(w io.Writer, h Header, analyses []*model.SymbolAnalysis) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.SetTitle("Stock Market Analysis Report")
	rows := []table.Row{
		{"Generated", h.GeneratedAt.Format("2006-01-02 15:04:05")},
		{"Source", h.Source},
		{"Market", h.MarketStatus},
		{"Symbols", len(analyses)},
	}
	if h.RunID != "" {
		rows = append([]table.Row{{"Run", h.RunID}}, rows...)
	}
	t.AppendRows(rows)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 12, Align: text.AlignLeft},
		{Number: 2, WidthMin: 30, Align: text.AlignLeft},
	})
	t.Render()

	for _, a := range analyses {
		fmt.Fprintln(w)
		writeSymbol(w, a)
	}
}

func writeSymbol(w io.Writer, a *model.SymbolAnalysis) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.SetTitle("Analysis Report for " + a.Symbol)

	if a.Err != nil {
		t.AppendRow(table.Row{"Error", a.Err.Error()})
		t.Render()
		return
	}

	s := a.Snapshot
	t.AppendHeader(table.Row{"Metric", "Value", "Signal"})
	t.AppendRows([]table.Row{
		{"Last Price", fmt.Sprintf("%.2f", s.LastPrice), ""},
		{"Change", fmt.Sprintf("%+.2f (%+.2f%%)", s.Change, s.ChangePct), ""},
		{"Volume", fmt.Sprintf("%.0f", s.Volume), ""},
		{"Period Range", fmt.Sprintf("%.2f - %.2f", s.PeriodLow, s.PeriodHigh), fmt.Sprintf("%.0f%% of range", s.PositionPct*100)},
		{"Last Updated", s.AsOf.Format("2006-01-02"), ""},
	})
	t.AppendSeparator()

	assessment := signal.Evaluate(a.Result, s.LastPrice)
	label := func(k model.Kind) string {
		if r, ok := assessment.Reading(k); ok {
			return r.Label
		}
		return ""
	}

	res := a.Result
	if res.Momentum != nil {
		t.AppendRow(table.Row{"RSI", fmt.Sprintf("%.2f", *res.Momentum), label(model.KindMomentum)})
	}
	if m := res.Convergence; m != nil {
		t.AppendRows([]table.Row{
			{"MACD Line", fmt.Sprintf("%.2f", m.Line), label(model.KindConvergence)},
			{"Signal Line", fmt.Sprintf("%.2f", m.Signal), ""},
			{"Histogram", fmt.Sprintf("%.2f", m.Histogram), ""},
		})
	}
	if b := res.Bands; b != nil {
		t.AppendRows([]table.Row{
			{"Upper Band", fmt.Sprintf("%.2f", b.Upper), label(model.KindBands)},
			{"Middle Band", fmt.Sprintf("%.2f", b.Middle), ""},
			{"Lower Band", fmt.Sprintf("%.2f", b.Lower), ""},
		})
	}
	if len(assessment.Readings) == 0 {
		t.AppendRow(table.Row{"Indicators", "insufficient history", ""})
	}

	t.AppendFooter(table.Row{"Bias", fmt.Sprintf("%+.2f", assessment.Score), assessment.Bias.Label})
	if assessment.Warning != "" {
		t.SetCaption(assessment.Warning)
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 14, Align: text.AlignLeft},
		{Number: 2, WidthMin: 20, Align: text.AlignRight},
		{Number: 3, WidthMin: 18, Align: text.AlignLeft},
	})
	t.Render()
}
