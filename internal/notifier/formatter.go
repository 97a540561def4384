package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"StockAnalyzer/internal/model"
	"StockAnalyzer/internal/signal"
)

// FormatRunSummary formats one batch run into a Telegram message.
func FormatRunSummary(runID string, at time.Time, analyses []*model.SymbolAnalysis) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>StockAnalyzer</b> | %s\n", at.Format("2006-01-02 15:04")))
	if runID != "" {
		b.WriteString(fmt.Sprintf("run <code>%s</code>\n", runID))
	}
	b.WriteString("\n")

	failed := 0
	for _, a := range analyses {
		if !a.OK() {
			failed++
			continue
		}
		s := a.Snapshot
		assessment := signal.Evaluate(a.Result, s.LastPrice)

		b.WriteString(fmt.Sprintf("<b>%s</b> %.2f (%+.2f%%)\n", html.EscapeString(a.Symbol), s.LastPrice, s.ChangePct))
		for _, r := range assessment.Readings {
			b.WriteString(fmt.Sprintf("  %s: %s (%s)\n", r.Kind.Alias(), r.Label, html.EscapeString(r.Commentary)))
		}
		b.WriteString(fmt.Sprintf("  → %s %+.2f\n", assessment.Bias.Label, assessment.Score))
		if assessment.Warning != "" {
			b.WriteString(fmt.Sprintf("  ⚠️ %s\n", assessment.Warning))
		}
		b.WriteString("\n")
	}

	if failed > 0 {
		b.WriteString(fmt.Sprintf("❌ <b>Failed (%d):</b>\n", failed))
		for _, a := range analyses {
			if a.OK() {
				continue
			}
			msg := "no result"
			if a.Err != nil {
				msg = a.Err.Error()
			}
			b.WriteString(fmt.Sprintf("  %s: %s\n", html.EscapeString(a.Symbol), html.EscapeString(msg)))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatHelp lists the commands understood in watch mode.
func FormatHelp() string {
	var b strings.Builder
	b.WriteString("🤖 <b>Commands</b>\n\n")
	b.WriteString("/run - analyze now\n")
	b.WriteString("/status - last run summary\n")
	b.WriteString("/help - this message")
	return b.String()
}
