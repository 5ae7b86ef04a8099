package model

import "fmt"

// WindowSpec describes a simple moving average request.
type WindowSpec struct {
	Period int
	Source string
}

// NewWindowSpec returns a spec over source, defaulting to the Close column.
func NewWindowSpec(period int, source string) WindowSpec {
	if source == "" {
		source = DefaultSourceColumn
	}
	return WindowSpec{Period: period, Source: source}
}

// ColumnName is the derived column name, SMA{n}. It does not depend on Source.
func (w WindowSpec) ColumnName() string {
	return fmt.Sprintf("SMA%d", w.Period)
}

func (w WindowSpec) Validate() error {
	if w.Period < 1 {
		return &InvalidArgumentError{Message: fmt.Sprintf("window must be >= 1, got %d", w.Period)}
	}
	if w.Source == "" {
		return &InvalidArgumentError{Message: "source column is required"}
	}
	return nil
}
