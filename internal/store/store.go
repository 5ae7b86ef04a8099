// Package store owns a loaded series. It validates and repairs the source on
// load, adds derived columns on request and writes every change back to the
// sink it was read from.
package store

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"StockScope/internal/calculator"
	"StockScope/internal/model"
	"StockScope/internal/sink"
	"StockScope/internal/strategy"
	"StockScope/internal/view"
)

// Store holds one series. Column writers take the lock exclusively; readers share it.
type Store struct {
	mu      sync.RWMutex
	sink    sink.Sink
	series  *model.Series
	windows map[string]model.WindowSpec
	persist bool
}

// Option configures a Store.
type Option func(*Store)

// WithoutPersistence keeps all changes in memory; the sink is only read.
func WithoutPersistence() Option {
	return func(s *Store) { s.persist = false }
}

// Load reads the table from src, validates it, fills interior gaps by linear
// interpolation and writes the repaired table back to src.
func Load(src sink.Sink, opts ...Option) (*Store, error) {
	st := &Store{
		sink:    src,
		windows: make(map[string]model.WindowSpec),
		persist: true,
	}
	for _, opt := range opts {
		opt(st)
	}

	tbl, err := src.Read()
	if err != nil {
		return nil, &model.IngestError{Source: src.Name(), Reason: "read source", Cause: err}
	}
	series, err := decode(src.Name(), tbl)
	if err != nil {
		return nil, err
	}

	filled := repair(series)
	st.series = series
	st.adoptCachedWindows()

	log.Printf("[INFO] loaded %s: %d rows, %d columns, %d gaps filled",
		src.Name(), series.Len(), len(series.Columns()), filled)
	st.save()
	return st, nil
}

// repair interpolates every column except signal markers and returns the
// number of cells filled.
func repair(s *model.Series) int {
	filled := 0
	for _, name := range s.Columns() {
		if name == model.BuyColumn || name == model.SellColumn {
			continue
		}
		vals, _ := s.Column(name)
		before := calculator.CountMissing(vals)
		if before == 0 {
			continue
		}
		fixed := calculator.Interpolate(vals)
		filled += before - calculator.CountMissing(fixed)
		_ = s.SetColumn(name, fixed)
	}
	return filled
}

// adoptCachedWindows registers SMA{n} columns persisted by an earlier session.
// The table does not record their source column, so they stay unbound until
// the first MovingAverage request claims them.
func (st *Store) adoptCachedWindows() {
	for _, name := range st.series.Columns() {
		digits, ok := strings.CutPrefix(name, "SMA")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(digits)
		if err != nil || n < 1 {
			continue
		}
		spec := model.WindowSpec{Period: n}
		if spec.ColumnName() == name {
			st.windows[name] = spec
		}
	}
}

func (st *Store) save() {
	if !st.persist {
		return
	}
	if err := st.sink.Write(encode(st.series)); err != nil {
		log.Printf("[ERROR] persist %s: %v", st.sink.Name(), err)
	}
}

// Save writes the current series to the sink regardless of the persistence option.
func (st *Store) Save() error {
	return st.SaveTo(st.sink)
}

// SaveTo writes the current series to dst.
func (st *Store) SaveTo(dst sink.Sink) error {
	st.mu.RLock()
	defer st.mu.RUnlock()
	if err := dst.Write(encode(st.series)); err != nil {
		return fmt.Errorf("persist %s: %w", dst.Name(), err)
	}
	return nil
}

// Series returns the live series. Callers must not modify it.
func (st *Store) Series() *model.Series {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.series
}

// Snapshot returns a deep copy of the series.
func (st *Store) Snapshot() *model.Series {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.series.Clone()
}

// Period returns the first and last dates of the series.
func (st *Store) Period() (model.DateRange, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return view.Period(st.series)
}

// MovingAverage adds the SMA{n} column computed over source (Close when empty)
// and returns its name. Repeating a request is a no-op. A column reloaded from
// the sink is bound to the source of the first request that names it; after
// that, requesting SMA{n} over a different source fails with ColumnConflictError.
func (st *Store) MovingAverage(n int, source string) (string, error) {
	spec := model.NewWindowSpec(n, source)
	if err := spec.Validate(); err != nil {
		return "", err
	}
	name := spec.ColumnName()

	st.mu.Lock()
	defer st.mu.Unlock()

	if existing, ok := st.windows[name]; ok {
		if existing.Source == "" {
			if _, err := st.series.Column(spec.Source); err != nil {
				return "", err
			}
			st.windows[name] = spec
			return name, nil
		}
		if existing.Source != spec.Source {
			return "", &model.ColumnConflictError{Column: name, Existing: existing.Source, Requested: spec.Source}
		}
		return name, nil
	}

	values, err := st.series.Column(spec.Source)
	if err != nil {
		return "", err
	}
	sma, err := calculator.RollingSMA(values, spec.Period)
	if err != nil {
		return "", err
	}
	if err := st.series.SetColumn(name, sma); err != nil {
		return "", err
	}
	st.windows[name] = spec
	st.save()
	return name, nil
}

// Window returns the request that produced a derived column. A column reloaded
// from the sink and not yet requested has an empty Source.
func (st *Store) Window(column string) (model.WindowSpec, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	spec, ok := st.windows[column]
	return spec, ok
}

// Crossover recomputes the Buy and Sell columns from colA and colB, with
// markers taken from reference (Close when empty).
func (st *Store) Crossover(colA, colB, reference string) (model.CrossoverResult, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	res, err := strategy.Apply(st.series, colA, colB, reference)
	if err != nil {
		return res, err
	}
	st.save()
	return res, nil
}

// Slice returns the rows dated within [start, end], clamped to the series.
func (st *Store) Slice(start, end time.Time) *model.Series {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return view.Slice(st.series, start, end)
}

// Lookup returns the row at exactly date d.
func (st *Store) Lookup(d time.Time) (view.Row, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return view.Lookup(st.series, d)
}

// IsIngestError reports whether err came from reading or validating a source.
func IsIngestError(err error) bool {
	var ie *model.IngestError
	return errors.As(err, &ie)
}
