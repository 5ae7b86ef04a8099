package calculator

import (
	"errors"
	"math"
	"testing"
	"time"

	"StockScope/internal/model"
)

var nan = math.NaN()

func assertClose(t *testing.T, label string, got, want, tol float64) {
	t.Helper()
	if math.IsNaN(want) {
		if !math.IsNaN(got) {
			t.Errorf("%s: got %.6f, want missing", label, got)
		}
		return
	}
	if math.Abs(got-want) > tol {
		t.Errorf("%s: got %.6f, want %.6f (tol=%.6f)", label, got, want, tol)
	}
}

func assertSeries(t *testing.T, label string, got, want []float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: got %d values, want %d", label, len(got), len(want))
	}
	for i := range want {
		assertClose(t, label, got[i], want[i], 1e-9)
	}
}

func windowMean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func TestRollingSMA_Scenario(t *testing.T) {
	got, err := RollingSMA([]float64{10, 12, 11, 14}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertSeries(t, "SMA(2)", got, []float64{nan, 11.0, 11.5, 12.5})
}

func TestRollingSMA_MatchesWindowMean(t *testing.T) {
	closes := []float64{100.25, 101.5, 99.75, 102, 103.125, 98.5, 97, 105.3, 110.1, 108.45}
	for _, n := range []int{1, 2, 3, 5, 10} {
		got, err := RollingSMA(closes, n)
		if err != nil {
			t.Fatalf("n=%d: unexpected error: %v", n, err)
		}
		for i := range closes {
			if i < n-1 {
				if !model.IsMissing(got[i]) {
					t.Errorf("n=%d i=%d: expected missing, got %.4f", n, i, got[i])
				}
				continue
			}
			want := windowMean(closes[i-n+1 : i+1])
			assertClose(t, "rolling mean", got[i], want, 1e-4)
		}
	}
}

func TestRollingSMA_WindowLongerThanSeries(t *testing.T) {
	got, err := RollingSMA([]float64{1, 2, 3}, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertSeries(t, "SMA(5)", got, []float64{nan, nan, nan})
}

func TestRollingSMA_MissingInsideWindow(t *testing.T) {
	got, err := RollingSMA([]float64{nan, 2, 4, 6, nan}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertSeries(t, "SMA(2)", got, []float64{nan, nan, 3, 5, nan})
}

func TestRollingSMA_InvalidWindow(t *testing.T) {
	_, err := RollingSMA([]float64{1, 2}, 0)
	var argErr *model.InvalidArgumentError
	if !errors.As(err, &argErr) {
		t.Fatalf("expected InvalidArgumentError, got %v", err)
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{1.23456, 1.2346},
		{1.23454, 1.2345},
		{-2.00005, -2.0001},
		{11.5, 11.5},
		{1.0 / 3.0, 0.3333},
	}
	for _, tt := range tests {
		if got := Round(tt.in); got != tt.want {
			t.Errorf("Round(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if !model.IsMissing(Round(nan)) {
		t.Error("Round should keep missing values")
	}
}

func TestInterpolate(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want []float64
	}{
		{"no gaps", []float64{1, 2, 3}, []float64{1, 2, 3}},
		{"single gap", []float64{10, nan, 14}, []float64{10, 12, 14}},
		{"wide gap", []float64{0, nan, nan, nan, 8}, []float64{0, 2, 4, 6, 8}},
		{"leading and trailing kept", []float64{nan, 1, nan, 3, nan}, []float64{nan, 1, 2, 3, nan}},
		{"all missing", []float64{nan, nan}, []float64{nan, nan}},
		{"empty", []float64{}, []float64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertSeries(t, tt.name, Interpolate(tt.in), tt.want)
		})
	}
}

func TestInterpolate_Idempotent(t *testing.T) {
	in := []float64{nan, 3, nan, nan, 9.5, nan, 1, nan}
	once := Interpolate(in)
	twice := Interpolate(once)
	assertSeries(t, "twice", twice, once)
	if !model.IsMissing(in[2]) {
		t.Error("Interpolate must not modify its input")
	}
}

func TestCountMissing(t *testing.T) {
	if got := CountMissing([]float64{nan, 1, nan}); got != 2 {
		t.Errorf("expected 2, got %d", got)
	}
}

func day(s string) time.Time {
	d, err := model.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestIndexRange(t *testing.T) {
	dates := []time.Time{day("2020-01-02"), day("2020-01-03"), day("2020-01-06"), day("2020-01-07")}
	tests := []struct {
		name       string
		start, end string
		lo, hi     int
	}{
		{"full", "2020-01-02", "2020-01-07", 0, 4},
		{"inner exact", "2020-01-03", "2020-01-06", 1, 3},
		{"gap bounds", "2020-01-04", "2020-01-05", 2, 2},
		{"clamp both", "2019-01-01", "2021-01-01", 0, 4},
		{"clamp start", "2019-12-01", "2020-01-03", 0, 2},
		{"inverted", "2020-01-06", "2020-01-03", 2, 2},
		{"after data", "2021-01-01", "2021-02-01", 4, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := IndexRange(dates, day(tt.start), day(tt.end))
			if hi-lo != tt.hi-tt.lo || (tt.hi > tt.lo && lo != tt.lo) {
				t.Errorf("got [%d,%d), want [%d,%d)", lo, hi, tt.lo, tt.hi)
			}
		})
	}
}

func TestIndexOf(t *testing.T) {
	dates := []time.Time{day("2020-01-02"), day("2020-01-03")}
	if i, ok := IndexOf(dates, day("2020-01-03")); !ok || i != 1 {
		t.Errorf("expected index 1, got %d (%v)", i, ok)
	}
	if _, ok := IndexOf(dates, day("2020-01-04")); ok {
		t.Error("expected no match")
	}
}

func TestColumnRange(t *testing.T) {
	high, low, err := ColumnRange([]float64{nan, 5, 2, 9, nan})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if high != 9 || low != 2 {
		t.Errorf("got high=%v low=%v", high, low)
	}
	if _, _, err := ColumnRange([]float64{nan}); err == nil {
		t.Error("expected error for all-missing column")
	}
}
