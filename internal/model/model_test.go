package model

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2020-02-29")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if FormatDate(d) != "2020-02-29" {
		t.Errorf("round trip failed: %s", FormatDate(d))
	}

	for _, bad := range []string{"", "2020/01/01", "01-02-2020", "2021-02-29", "2020-1-1"} {
		_, err := ParseDate(bad)
		var dateErr *InvalidDateFormatError
		if !errors.As(err, &dateErr) {
			t.Errorf("ParseDate(%q): expected InvalidDateFormatError, got %v", bad, err)
		}
	}
}

func TestSeries_SetColumn(t *testing.T) {
	dates := []time.Time{time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)}
	s := NewSeries("s", "", dates)
	if s.DateColumn != DefaultDateColumn {
		t.Errorf("expected default date column, got %q", s.DateColumn)
	}
	if err := s.SetColumn("Close", []float64{1}); err == nil {
		t.Error("expected error for short column")
	}
	if err := s.SetColumn("Date", []float64{1, 2}); err == nil {
		t.Error("expected error for date column name")
	}
	if err := s.SetColumn("Close", []float64{1, 2}); err != nil {
		t.Fatal(err)
	}
	if err := s.SetColumn("SMA2", []float64{Missing(), 1.5}); err != nil {
		t.Fatal(err)
	}
	if err := s.SetColumn("Close", []float64{3, 4}); err != nil {
		t.Fatal(err)
	}
	cols := s.Columns()
	if len(cols) != 2 || cols[0] != "Close" || cols[1] != "SMA2" {
		t.Errorf("replacing a column must keep its position, got %v", cols)
	}
	if s.Value(0, "Close") != 3 || !IsMissing(s.Value(0, "SMA2")) || !IsMissing(s.Value(5, "Close")) {
		t.Error("unexpected Value results")
	}
	if _, err := s.Column("Volume"); err == nil {
		t.Error("expected ColumnNotFoundError")
	}
}

func TestSeries_ViewAndClone(t *testing.T) {
	dates := make([]time.Time, 4)
	for i := range dates {
		dates[i] = time.Date(2020, 1, i+1, 0, 0, 0, 0, time.UTC)
	}
	s := NewSeries("s", "", dates)
	_ = s.SetColumn("Close", []float64{1, 2, 3, 4})

	v := s.View(1, 3)
	if v.Len() != 2 || v.Value(0, "Close") != 2 {
		t.Errorf("unexpected view: len=%d first=%v", v.Len(), v.Value(0, "Close"))
	}
	if e := s.View(3, 1); !e.Empty() {
		t.Error("inverted view should be empty")
	}

	c := s.Clone()
	closes, _ := c.Column("Close")
	closes[0] = 99
	if s.Value(0, "Close") != 1 {
		t.Error("clone must not share storage")
	}
}

func TestWindowSpec(t *testing.T) {
	spec := NewWindowSpec(15, "")
	if spec.Source != "Close" || spec.ColumnName() != "SMA15" {
		t.Errorf("unexpected spec %+v", spec)
	}
	if NewWindowSpec(15, "Open").ColumnName() != "SMA15" {
		t.Error("column name must not depend on source")
	}
	if err := NewWindowSpec(0, "").Validate(); err == nil {
		t.Error("expected error for zero window")
	}
}

func TestIngestError_Unwrap(t *testing.T) {
	cause := &InvalidDateFormatError{Value: "x", Layout: DateLayout}
	err := error(&IngestError{Source: "f.csv", Reason: "bad date", Cause: cause})
	var dateErr *InvalidDateFormatError
	if !errors.As(err, &dateErr) {
		t.Error("IngestError should unwrap to its cause")
	}
	if err.Error() == "" {
		t.Error("empty message")
	}
}

func TestCrossoverResult_Events(t *testing.T) {
	dates := []time.Time{time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)}
	res := CrossoverResult{Buy: []float64{Missing(), 5}, Sell: []float64{4, Missing()}}
	events := res.Events(dates)
	if len(events) != 2 || events[0].Kind != SignalSell || events[1].Kind != SignalBuy || events[1].Value != 5 {
		t.Errorf("unexpected events %+v", events)
	}
}
