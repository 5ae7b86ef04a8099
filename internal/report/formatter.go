// Package report renders analysis results as plain text.
package report

import (
	"fmt"
	"strings"

	"StockScope/internal/analyzer"
	"StockScope/internal/model"
)

// FormatReport formats an analysis report for the terminal.
func FormatReport(rep *analyzer.Report) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("StockScope | %s\n\n", rep.Source))
	b.WriteString(fmt.Sprintf("Available period: %s\n", rep.Period))
	b.WriteString(fmt.Sprintf("Selected period:  %s (%d rows)\n", rep.Range, rep.Selected.Len()))
	if rep.HighClose != 0 || rep.LowClose != 0 {
		b.WriteString(fmt.Sprintf("Price range:      %.2f - %.2f\n", rep.LowClose, rep.HighClose))
	}
	b.WriteString(fmt.Sprintf("Columns:          %s\n", strings.Join(rep.Columns, ", ")))
	for _, name := range rep.Absent {
		b.WriteString(fmt.Sprintf("  %s data does not exist\n", name))
	}

	if rep.Selected.HasColumn(model.BuyColumn) {
		b.WriteString("\nSignals:\n")
		if len(rep.Events) == 0 {
			b.WriteString("  none in selected period\n")
		}
		for _, e := range rep.Events {
			b.WriteString(fmt.Sprintf("  %-4s %s  %.2f\n", e.Kind, model.FormatDate(e.Date), e.Value))
		}
	}

	b.WriteString("\n" + FormatLastRow(rep.Selected, rep.Columns))
	return b.String()
}

// FormatLastRow prints the named columns for the last row of s.
func FormatLastRow(s *model.Series, columns []string) string {
	if s.Empty() {
		return "Last row: n/a\n"
	}
	i := s.Len() - 1
	parts := make([]string, 0, len(columns))
	for _, name := range columns {
		v := s.Value(i, name)
		if model.IsMissing(v) {
			parts = append(parts, name+"=-")
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%.4f", name, v))
	}
	return fmt.Sprintf("Last row %s: %s\n", model.FormatDate(s.Dates[i]), strings.Join(parts, " "))
}
