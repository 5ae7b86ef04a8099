// Package sink provides the row storage behind a series: the table is read
// once on load and written back whenever the series changes.
package sink

import "errors"

// ErrSourceNotFound is returned by Read when the sink holds no table.
var ErrSourceNotFound = errors.New("source not found")

// Table is a flat, row-oriented table of text cells. Header names the columns;
// every row has len(Header) cells. Missing values are empty strings.
type Table struct {
	Header []string
	Rows   [][]string
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	c := &Table{
		Header: append([]string(nil), t.Header...),
		Rows:   make([][]string, len(t.Rows)),
	}
	for i, r := range t.Rows {
		c.Rows[i] = append([]string(nil), r...)
	}
	return c
}

// Sink reads and writes a single table.
type Sink interface {
	Name() string
	Read() (*Table, error)
	Write(t *Table) error
	Close() error
}
