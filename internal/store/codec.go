package store

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"StockScope/internal/model"
	"StockScope/internal/sink"
)

// decode validates a raw table and turns it into a date-ordered series.
func decode(source string, t *sink.Table) (*model.Series, error) {
	if len(t.Header) == 0 {
		return nil, &model.IngestError{Source: source, Reason: "missing header row"}
	}
	dateIdx := dateColumnIndex(t.Header)
	dateName := strings.TrimSpace(t.Header[dateIdx])
	if dateName == "" {
		return nil, &model.IngestError{Source: source, Reason: "missing date column"}
	}

	type row struct {
		date  time.Time
		cells []string
	}
	rows := make([]row, 0, len(t.Rows))
	for i, cells := range t.Rows {
		if len(cells) != len(t.Header) {
			return nil, &model.IngestError{
				Source: source,
				Reason: fmt.Sprintf("row %d has %d cells, header has %d", i+1, len(cells), len(t.Header)),
			}
		}
		d, err := model.ParseDate(strings.TrimSpace(cells[dateIdx]))
		if err != nil {
			return nil, &model.IngestError{Source: source, Reason: fmt.Sprintf("row %d: unparseable %s", i+1, dateName), Cause: err}
		}
		rows = append(rows, row{date: d, cells: cells})
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].date.Before(rows[j].date) })
	dates := make([]time.Time, len(rows))
	for i, r := range rows {
		if i > 0 && r.date.Equal(rows[i-1].date) {
			return nil, &model.IngestError{Source: source, Reason: "duplicate date " + model.FormatDate(r.date)}
		}
		dates[i] = r.date
	}

	s := model.NewSeries(source, dateName, dates)
	for j, name := range t.Header {
		if j == dateIdx {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" || s.HasColumn(name) {
			return nil, &model.IngestError{Source: source, Reason: fmt.Sprintf("invalid or duplicate column name %q", name)}
		}
		vals := make([]float64, len(rows))
		for i, r := range rows {
			v, err := parseCell(r.cells[j])
			if err != nil {
				return nil, &model.IngestError{
					Source: source,
					Reason: fmt.Sprintf("%s on %s", name, model.FormatDate(r.date)),
					Cause:  err,
				}
			}
			vals[i] = v
		}
		if err := s.SetColumn(name, vals); err != nil {
			return nil, &model.IngestError{Source: source, Reason: "build column " + name, Cause: err}
		}
	}
	return s, nil
}

// dateColumnIndex returns the column named Date, or the first column.
func dateColumnIndex(header []string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), model.DefaultDateColumn) {
			return i
		}
	}
	return 0
}

func parseCell(cell string) (float64, error) {
	cell = strings.TrimSpace(cell)
	switch strings.ToLower(cell) {
	case "", "nan", "null", "na", "n/a", "none":
		return model.Missing(), nil
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", cell)
	}
	return v, nil
}

// encode renders the series as a table with the date column first.
func encode(s *model.Series) *sink.Table {
	cols := s.Columns()
	t := &sink.Table{
		Header: append([]string{s.DateColumn}, cols...),
		Rows:   make([][]string, s.Len()),
	}
	for i, d := range s.Dates {
		row := make([]string, 0, len(cols)+1)
		row = append(row, model.FormatDate(d))
		for _, name := range cols {
			row = append(row, formatCell(s.Value(i, name)))
		}
		t.Rows[i] = row
	}
	return t
}

func formatCell(v float64) string {
	if model.IsMissing(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
