package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"StockAnalyzer/internal/model"
	"StockAnalyzer/internal/signal"
)

// SummarySheet is the first sheet of every workbook.
const SummarySheet = "Summary"

var (
	summaryColumns = []string{"Symbol", "Last Price", "Change %", "Volume", "RSI", "MACD", "Signal", "Histogram",
		"Upper Band", "Middle Band", "Lower Band", "Bias", "Error"}
	barColumns = []string{"Date", "Open", "High", "Low", "Close", "Volume", "RSI", "MACD", "Signal", "Histogram",
		"Upper Band", "Middle Band", "Lower Band"}
)

type workbookStyles struct {
	header int
	number int
}

// WriteWorkbook exports a summary sheet plus one sheet per successful symbol with bars and
// indicator series. Cells before an indicator's first value are left blank.
func WriteWorkbook(path string, analyses []*model.SymbolAnalysis) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	fx := excelize.NewFile()
	defer fx.Close()
	if err := fx.SetSheetName(fx.GetSheetName(0), SummarySheet); err != nil {
		return err
	}

	styles, err := newWorkbookStyles(fx)
	if err != nil {
		return fmt.Errorf("create styles: %w", err)
	}
	if err := writeSummarySheet(fx, analyses, styles); err != nil {
		return fmt.Errorf("summary sheet: %w", err)
	}
	for _, a := range analyses {
		if !a.OK() {
			continue
		}
		if err := writeSymbolSheet(fx, a, styles); err != nil {
			return fmt.Errorf("sheet %s: %w", a.Symbol, err)
		}
	}
	return fx.SaveAs(path)
}

func newWorkbookStyles(fx *excelize.File) (workbookStyles, error) {
	var s workbookStyles
	var err error
	s.header, err = fx.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"1F4E79"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return s, err
	}
	s.number, err = fx.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	return s, err
}

func writeHeader(fx *excelize.File, sheet string, columns []string, styles workbookStyles) error {
	for i, name := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := fx.SetCellValue(sheet, cell, name); err != nil {
			return err
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(columns), 1)
	if err := fx.SetCellStyle(sheet, "A1", last, styles.header); err != nil {
		return err
	}
	lastCol, _ := excelize.ColumnNumberToName(len(columns))
	if err := fx.SetColWidth(sheet, "A", lastCol, 13); err != nil {
		return err
	}
	return fx.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}

func writeSummarySheet(fx *excelize.File, analyses []*model.SymbolAnalysis, styles workbookStyles) error {
	if err := writeHeader(fx, SummarySheet, summaryColumns, styles); err != nil {
		return err
	}
	for i, a := range analyses {
		row := make([]interface{}, len(summaryColumns))
		row[0] = a.Symbol
		if !a.OK() {
			if a.Err != nil {
				row[12] = a.Err.Error()
			}
		} else {
			s, res := a.Snapshot, a.Result
			row[1], row[2], row[3] = s.LastPrice, s.ChangePct, s.Volume
			if res.Momentum != nil {
				row[4] = *res.Momentum
			}
			if m := res.Convergence; m != nil {
				row[5], row[6], row[7] = m.Line, m.Signal, m.Histogram
			}
			if b := res.Bands; b != nil {
				row[8], row[9], row[10] = b.Upper, b.Middle, b.Lower
			}
			row[11] = signal.Evaluate(res, s.LastPrice).Bias.Label
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := fx.SetSheetRow(SummarySheet, cell, &row); err != nil {
			return err
		}
	}
	if len(analyses) > 0 {
		last, _ := excelize.CoordinatesToCellName(11, len(analyses)+1)
		return fx.SetCellStyle(SummarySheet, "B2", last, styles.number)
	}
	return nil
}

func writeSymbolSheet(fx *excelize.File, a *model.SymbolAnalysis, styles workbookStyles) error {
	if _, err := fx.NewSheet(a.Symbol); err != nil {
		return err
	}
	if err := writeHeader(fx, a.Symbol, barColumns, styles); err != nil {
		return err
	}

	var lines [7]*model.Line
	if h := a.History; h != nil {
		lines[0] = h.Momentum
		if m := h.Convergence; m != nil {
			lines[1], lines[2], lines[3] = &m.Line, &m.Signal, &m.Histogram
		}
		if b := h.Bands; b != nil {
			lines[4], lines[5], lines[6] = &b.Upper, &b.Middle, &b.Lower
		}
	}

	for i, bar := range a.Series.Bars {
		row := []interface{}{bar.Time.Format("2006-01-02"), bar.Open, bar.High, bar.Low, bar.Close, bar.Volume}
		for _, l := range lines {
			var v interface{}
			if l != nil {
				if x, ok := l.At(i); ok {
					v = x
				}
			}
			row = append(row, v)
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := fx.SetSheetRow(a.Symbol, cell, &row); err != nil {
			return err
		}
	}
	if n := len(a.Series.Bars); n > 0 {
		last, _ := excelize.CoordinatesToCellName(len(barColumns), n+1)
		return fx.SetCellStyle(a.Symbol, "B2", last, styles.number)
	}
	return nil
}
