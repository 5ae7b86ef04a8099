package analyzer

import (
	"fmt"

	"StockScope/internal/sink"
)

// OpenFunc opens the sink holding the series to analyze.
type OpenFunc func() (sink.Sink, error)

// CSVSource opens a CSV file on every run.
func CSVSource(path string) OpenFunc {
	return func() (sink.Sink, error) {
		return sink.NewCSVSink(path), nil
	}
}

// SQLiteSource opens the named source inside a SQLite database on every run.
func SQLiteSource(dbPath, source string) OpenFunc {
	return func() (sink.Sink, error) {
		s, err := sink.NewSQLiteSink(dbPath, source)
		if err != nil {
			return nil, fmt.Errorf("open sqlite source: %w", err)
		}
		return s, nil
	}
}

// StaticSource always returns the same sink and leaves it open between runs.
func StaticSource(s sink.Sink) OpenFunc {
	return func() (sink.Sink, error) { return keepOpen{s}, nil }
}

type keepOpen struct{ sink.Sink }

func (keepOpen) Close() error { return nil }
