// Package strategy derives crossover signals from two moving average columns.
package strategy

import (
	"strconv"
	"strings"

	"StockScope/internal/model"
)

// Canonical orders two column names so the faster line comes first. Columns
// named SMA{n} are ordered by window length; any other pair by name. The
// result does not depend on argument order.
func Canonical(a, b string) (fast, slow string) {
	na, okA := smaWindow(a)
	nb, okB := smaWindow(b)
	if okA && okB && na != nb {
		if na < nb {
			return a, b
		}
		return b, a
	}
	if a < b {
		return a, b
	}
	return b, a
}

func smaWindow(name string) (int, bool) {
	digits, ok := strings.CutPrefix(name, "SMA")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// Positions computes, row by row, whether fast leads slow. Equal values keep
// the previous row's position; rows where either line is missing, and ties
// with no known predecessor, are PositionUnknown.
func Positions(fast, slow []float64) []model.Position {
	n := len(fast)
	if len(slow) < n {
		n = len(slow)
	}
	pos := make([]model.Position, n)
	prev := model.PositionUnknown
	for i := 0; i < n; i++ {
		f, s := fast[i], slow[i]
		switch {
		case model.IsMissing(f) || model.IsMissing(s):
			pos[i] = model.PositionUnknown
		case f > s:
			pos[i] = model.PositionAbove
		case f < s:
			pos[i] = model.PositionBelow
		default:
			pos[i] = prev
		}
		prev = pos[i]
	}
	return pos
}

// Transitions returns +1 where the position moves from below to above, -1
// where it moves from above to below, and 0 elsewhere. Row 0 is always 0, as
// is any row whose own or previous position is unknown.
func Transitions(pos []model.Position) []int {
	out := make([]int, len(pos))
	for i := 1; i < len(pos); i++ {
		prev, cur := pos[i-1], pos[i]
		if prev == model.PositionUnknown || cur == model.PositionUnknown || prev == cur {
			continue
		}
		if cur == model.PositionAbove {
			out[i] = 1
		} else {
			out[i] = -1
		}
	}
	return out
}

// Detect computes Buy and Sell marker columns for the crossover of colA and
// colB. A Buy fires on the row where the faster line moves above the slower
// one, a Sell where it moves below. Markers carry the reference column's value
// on that row (Close when reference is empty); all other rows are missing.
// The series is not modified.
func Detect(s *model.Series, colA, colB, reference string) (model.CrossoverResult, error) {
	if colA == colB {
		return model.CrossoverResult{}, &model.InvalidArgumentError{Message: "columns must differ: " + colA}
	}
	if reference == "" {
		reference = model.DefaultSourceColumn
	}
	fastName, slowName := Canonical(colA, colB)
	fast, err := s.Column(fastName)
	if err != nil {
		return model.CrossoverResult{}, err
	}
	slow, err := s.Column(slowName)
	if err != nil {
		return model.CrossoverResult{}, err
	}
	ref, err := s.Column(reference)
	if err != nil {
		return model.CrossoverResult{}, err
	}

	trans := Transitions(Positions(fast, slow))
	res := model.CrossoverResult{
		Buy:  make([]float64, s.Len()),
		Sell: make([]float64, s.Len()),
	}
	for i := range res.Buy {
		res.Buy[i] = model.Missing()
		res.Sell[i] = model.Missing()
		if i >= len(trans) {
			continue
		}
		switch trans[i] {
		case 1:
			res.Buy[i] = ref[i]
		case -1:
			res.Sell[i] = ref[i]
		}
	}
	return res, nil
}

// Apply runs Detect and stores the result in the Buy and Sell columns,
// overwriting any previous markers.
func Apply(s *model.Series, colA, colB, reference string) (model.CrossoverResult, error) {
	res, err := Detect(s, colA, colB, reference)
	if err != nil {
		return res, err
	}
	if err := s.SetColumn(model.BuyColumn, res.Buy); err != nil {
		return res, err
	}
	if err := s.SetColumn(model.SellColumn, res.Sell); err != nil {
		return res, err
	}
	return res, nil
}
