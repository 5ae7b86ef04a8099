package sink

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const newFileMode os.FileMode = 0o644

// CSVSink stores the table as a comma-separated file with a header row.
type CSVSink struct {
	Path string
}

func NewCSVSink(path string) *CSVSink {
	return &CSVSink{Path: path}
}

func (c *CSVSink) Name() string { return c.Path }

func (c *CSVSink) Read() (*Table, error) {
	f, err := os.Open(c.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", c.Path, ErrSourceNotFound)
		}
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("csv %s is empty", c.Path)
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv rows: %w", err)
	}
	return &Table{Header: header, Rows: rows}, nil
}

// Write replaces the file atomically through a temporary file in the same
// directory. An existing file keeps its permissions; a new one gets newFileMode.
func (c *CSVSink) Write(t *Table) error {
	mode := newFileMode
	if info, err := os.Stat(c.Path); err == nil {
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(c.Path)
	tmp, err := os.CreateTemp(dir, filepath.Base(c.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp csv: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod temp csv: %w", err)
	}

	w := csv.NewWriter(tmp)
	if err := w.Write(t.Header); err != nil {
		tmp.Close()
		return fmt.Errorf("write csv header: %w", err)
	}
	if err := w.WriteAll(t.Rows); err != nil {
		tmp.Close()
		return fmt.Errorf("write csv rows: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp csv: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.Path); err != nil {
		return fmt.Errorf("replace csv: %w", err)
	}
	return nil
}

func (c *CSVSink) Close() error { return nil }
