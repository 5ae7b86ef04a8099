// Package view provides read-only projections of a series by date.
package view

import (
	"time"

	"StockScope/internal/calculator"
	"StockScope/internal/model"
)

// Period returns the first and last dates of the series.
func Period(s *model.Series) (model.DateRange, error) {
	if s == nil || s.Empty() {
		return model.DateRange{}, &model.EmptySeriesError{Op: "period"}
	}
	return model.DateRange{Start: s.Dates[0], End: s.Dates[s.Len()-1]}, nil
}

// Slice returns the rows dated within [start, end] inclusive. Bounds beyond
// the series clamp to it; an inverted or disjoint range gives an empty series.
// The result shares row storage with s and must not be modified.
func Slice(s *model.Series, start, end time.Time) *model.Series {
	lo, hi := calculator.IndexRange(s.Dates, start, end)
	return s.View(lo, hi)
}

// SliceNonEmpty is Slice for callers that need at least one row.
func SliceNonEmpty(s *model.Series, start, end time.Time) (*model.Series, error) {
	v := Slice(s, start, end)
	if v.Empty() {
		return nil, &model.EmptyRangeError{Start: start, End: end}
	}
	return v, nil
}

// Row is a single dated record.
type Row struct {
	Date   time.Time
	Values map[string]float64
}

// Lookup returns the row at exactly date d.
func Lookup(s *model.Series, d time.Time) (Row, error) {
	i, ok := calculator.IndexOf(s.Dates, d)
	if !ok {
		return Row{}, &model.DateNotFoundError{Date: d}
	}
	row := Row{Date: s.Dates[i], Values: make(map[string]float64)}
	for _, name := range s.Columns() {
		row.Values[name] = s.Value(i, name)
	}
	return row, nil
}
