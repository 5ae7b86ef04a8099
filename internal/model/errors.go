package model

import (
	"fmt"
	"time"
)

// IngestError is returned when a source cannot be read or lacks a usable date column.
type IngestError struct {
	Source string
	Reason string
	Cause  error
}

func (e *IngestError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("ingest %s: %s: %v", e.Source, e.Reason, e.Cause)
	}
	return fmt.Sprintf("ingest %s: %s", e.Source, e.Reason)
}

func (e *IngestError) Unwrap() error { return e.Cause }

// EmptySeriesError is returned by operations that need at least one row.
type EmptySeriesError struct {
	Op string
}

func (e *EmptySeriesError) Error() string {
	return fmt.Sprintf("%s: series has no rows", e.Op)
}

// InvalidDateFormatError is returned when a date string does not match the expected layout.
type InvalidDateFormatError struct {
	Value  string
	Layout string
}

func (e *InvalidDateFormatError) Error() string {
	return fmt.Sprintf("invalid date %q: expected format YYYY-MM-DD", e.Value)
}

type InvalidArgumentError struct {
	Message string
}

func (e *InvalidArgumentError) Error() string {
	return "invalid argument: " + e.Message
}

// EmptyRangeError is returned when a range that must be non-empty selects no rows.
type EmptyRangeError struct {
	Start time.Time
	End   time.Time
}

func (e *EmptyRangeError) Error() string {
	return fmt.Sprintf("no data in range %s to %s", FormatDate(e.Start), FormatDate(e.End))
}

// DateNotFoundError is returned by exact-date lookups.
type DateNotFoundError struct {
	Date time.Time
}

func (e *DateNotFoundError) Error() string {
	return fmt.Sprintf("no row for date %s", FormatDate(e.Date))
}

type ColumnNotFoundError struct {
	Column string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column not found: %s", e.Column)
}

// ColumnConflictError is returned when a derived column name is already bound to a different request.
type ColumnConflictError struct {
	Column    string
	Existing  string
	Requested string
}

func (e *ColumnConflictError) Error() string {
	return fmt.Sprintf("column %s already computed from %s, requested from %s", e.Column, e.Existing, e.Requested)
}
