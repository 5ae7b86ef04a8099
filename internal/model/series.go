package model

import (
	"fmt"
	"math"
	"time"
)

// DateLayout is the calendar date format used by sources and range queries.
const DateLayout = "2006-01-02"

const (
	DefaultDateColumn   = "Date"
	DefaultSourceColumn = "Close"
	BuyColumn           = "Buy"
	SellColumn          = "Sell"
)

// Missing returns the marker stored for an absent value.
func Missing() float64 { return math.NaN() }

// IsMissing reports whether v is the missing marker.
func IsMissing(v float64) bool { return math.IsNaN(v) }

// Series is a date-keyed table of named float columns.
// Dates are unique and strictly increasing; every column has len(Dates) entries.
type Series struct {
	Name       string
	DateColumn string
	Dates      []time.Time

	columns map[string][]float64
	order   []string
}

// NewSeries creates a series over the given dates with no columns.
func NewSeries(name, dateColumn string, dates []time.Time) *Series {
	if dateColumn == "" {
		dateColumn = DefaultDateColumn
	}
	return &Series{
		Name:       name,
		DateColumn: dateColumn,
		Dates:      dates,
		columns:    make(map[string][]float64),
	}
}

// Len returns the number of rows.
func (s *Series) Len() int { return len(s.Dates) }

// Empty reports whether the series has zero rows.
func (s *Series) Empty() bool { return len(s.Dates) == 0 }

// Columns returns the column names in table order.
func (s *Series) Columns() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

func (s *Series) HasColumn(name string) bool {
	_, ok := s.columns[name]
	return ok
}

// Column returns the values of the named column. The slice is shared with the series.
func (s *Series) Column(name string) ([]float64, error) {
	vals, ok := s.columns[name]
	if !ok {
		return nil, &ColumnNotFoundError{Column: name}
	}
	return vals, nil
}

// SetColumn adds or replaces a column. New columns are appended to the table order.
func (s *Series) SetColumn(name string, values []float64) error {
	if name == "" || name == s.DateColumn {
		return &InvalidArgumentError{Message: fmt.Sprintf("invalid column name %q", name)}
	}
	if len(values) != len(s.Dates) {
		return &InvalidArgumentError{
			Message: fmt.Sprintf("column %s has %d values, series has %d rows", name, len(values), len(s.Dates)),
		}
	}
	if _, ok := s.columns[name]; !ok {
		s.order = append(s.order, name)
	}
	s.columns[name] = values
	return nil
}

// Value returns the cell at row i of the named column, or Missing if either is absent.
func (s *Series) Value(i int, name string) float64 {
	vals, ok := s.columns[name]
	if !ok || i < 0 || i >= len(vals) {
		return Missing()
	}
	return vals[i]
}

// View returns rows [lo, hi) as a new series sharing row storage with s.
func (s *Series) View(lo, hi int) *Series {
	if lo < 0 {
		lo = 0
	}
	if hi > len(s.Dates) {
		hi = len(s.Dates)
	}
	if hi < lo {
		hi = lo
	}
	v := &Series{
		Name:       s.Name,
		DateColumn: s.DateColumn,
		Dates:      s.Dates[lo:hi:hi],
		columns:    make(map[string][]float64, len(s.columns)),
		order:      s.Columns(),
	}
	for name, vals := range s.columns {
		v.columns[name] = vals[lo:hi:hi]
	}
	return v
}

// Clone returns a deep copy of the series.
func (s *Series) Clone() *Series {
	dates := make([]time.Time, len(s.Dates))
	copy(dates, s.Dates)
	c := NewSeries(s.Name, s.DateColumn, dates)
	for _, name := range s.order {
		vals := make([]float64, len(s.columns[name]))
		copy(vals, s.columns[name])
		c.columns[name] = vals
		c.order = append(c.order, name)
	}
	return c
}

// DateRange is an inclusive span of calendar dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func (r DateRange) String() string {
	return fmt.Sprintf("%s to %s", FormatDate(r.Start), FormatDate(r.End))
}

// ParseDate parses a YYYY-MM-DD string into a UTC date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, &InvalidDateFormatError{Value: s, Layout: DateLayout}
	}
	return t, nil
}

// FormatDate renders a date in YYYY-MM-DD form.
func FormatDate(t time.Time) string { return t.Format(DateLayout) }
