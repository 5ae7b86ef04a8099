// Package analyzer runs the load, average, crossover and slice steps in order
// and collects the result for display.
package analyzer

import (
	"fmt"
	"log"
	"time"

	"StockScope/internal/calculator"
	"StockScope/internal/model"
	"StockScope/internal/store"
	"StockScope/internal/view"
)

// Request describes one analysis. Zero windows are skipped; zero dates default
// to the series period.
type Request struct {
	FastWindow      int
	SlowWindow      int
	SourceColumn    string
	ReferenceColumn string
	Start           time.Time
	End             time.Time
}

// Report is the outcome of an analysis run.
type Report struct {
	Source    string
	Period    model.DateRange
	Range     model.DateRange
	Selected  *model.Series
	Columns   []string
	Absent    []string
	Events    []model.SignalEvent
	HighClose float64
	LowClose  float64
}

// Analyze computes the requested averages and crossover on st and slices the
// result to the requested range. An empty selection fails with EmptyRangeError.
func Analyze(st *store.Store, req Request) (*Report, error) {
	period, err := st.Period()
	if err != nil {
		return nil, err
	}
	rng := model.DateRange{Start: req.Start, End: req.End}
	if rng.Start.IsZero() {
		rng.Start = period.Start
	}
	if rng.End.IsZero() {
		rng.End = period.End
	}

	source := req.SourceColumn
	if source == "" {
		source = model.DefaultSourceColumn
	}
	wanted := []string{source}
	var averages []string
	for _, n := range []int{req.FastWindow, req.SlowWindow} {
		if n == 0 {
			continue
		}
		name, err := st.MovingAverage(n, source)
		if err != nil {
			return nil, fmt.Errorf("SMA%d: %w", n, err)
		}
		averages = append(averages, name)
		wanted = append(wanted, name)
	}

	if len(averages) == 2 {
		if _, err := st.Crossover(averages[0], averages[1], req.ReferenceColumn); err != nil {
			return nil, fmt.Errorf("crossover: %w", err)
		}
		wanted = append(wanted, model.SellColumn, model.BuyColumn)
	}

	selected, err := view.SliceNonEmpty(st.Series(), rng.Start, rng.End)
	if err != nil {
		return nil, err
	}

	rep := &Report{
		Source:   selected.Name,
		Period:   period,
		Range:    rng,
		Selected: selected,
	}
	for _, name := range wanted {
		if selected.HasColumn(name) {
			rep.Columns = append(rep.Columns, name)
		} else {
			rep.Absent = append(rep.Absent, name)
		}
	}
	if len(averages) == 2 {
		buy, _ := selected.Column(model.BuyColumn)
		sell, _ := selected.Column(model.SellColumn)
		rep.Events = model.CrossoverResult{Buy: buy, Sell: sell}.Events(selected.Dates)
	}
	if closes, err := selected.Column(source); err == nil {
		if h, l, err := calculator.ColumnRange(closes); err != nil {
			log.Printf("[WARN] %s range: %v", source, err)
		} else {
			rep.HighClose, rep.LowClose = h, l
		}
	}
	return rep, nil
}

// Analyzer loads a fresh copy of the source on every run.
type Analyzer struct {
	Open    OpenFunc
	Request Request
	Options []store.Option
}

func NewAnalyzer(open OpenFunc, req Request, opts ...store.Option) *Analyzer {
	return &Analyzer{Open: open, Request: req, Options: opts}
}

// Run opens the source, loads and repairs it, then analyzes it.
func (a *Analyzer) Run() (*Report, error) {
	src, err := a.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	st, err := store.Load(src, a.Options...)
	if err != nil {
		return nil, err
	}
	rep, err := Analyze(st, a.Request)
	if err != nil {
		return nil, err
	}
	log.Printf("[INFO] analyzed %s: %d rows selected, %d signals", rep.Source, rep.Selected.Len(), len(rep.Events))
	return rep, nil
}
