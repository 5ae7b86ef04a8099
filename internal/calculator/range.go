package calculator

import (
	"errors"
	"math"
	"sort"
	"time"

	"StockScope/internal/model"
)

// IndexRange returns the half-open row interval [lo, hi) of sorted dates that
// fall within [start, end] inclusive. Bounds outside the data clamp to it; an
// inverted or disjoint range yields lo == hi.
func IndexRange(dates []time.Time, start, end time.Time) (lo, hi int) {
	lo = sort.Search(len(dates), func(i int) bool { return !dates[i].Before(start) })
	hi = sort.Search(len(dates), func(i int) bool { return dates[i].After(end) })
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// IndexOf returns the row holding exactly date d.
func IndexOf(dates []time.Time, d time.Time) (int, bool) {
	i := sort.Search(len(dates), func(i int) bool { return !dates[i].Before(d) })
	if i < len(dates) && dates[i].Equal(d) {
		return i, true
	}
	return -1, false
}

// ColumnRange scans values and returns the high and low, skipping missing entries.
func ColumnRange(values []float64) (high, low float64, err error) {
	high = math.Inf(-1)
	low = math.Inf(1)
	seen := false
	for _, v := range values {
		if model.IsMissing(v) {
			continue
		}
		seen = true
		if v > high {
			high = v
		}
		if v < low {
			low = v
		}
	}
	if !seen {
		return 0, 0, errors.New("no values provided")
	}
	return high, low, nil
}
