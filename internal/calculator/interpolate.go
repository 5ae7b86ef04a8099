package calculator

import "StockScope/internal/model"

// Interpolate fills interior missing values by linear interpolation between the
// nearest non-missing neighbours, weighted by row position. Leading and trailing
// missing values are left as they are. The input is not modified.
func Interpolate(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)

	prev := -1
	for i, v := range out {
		if model.IsMissing(v) {
			continue
		}
		if prev >= 0 && i-prev > 1 {
			lo, hi := out[prev], v
			span := float64(i - prev)
			for j := prev + 1; j < i; j++ {
				out[j] = lo + (hi-lo)*float64(j-prev)/span
			}
		}
		prev = i
	}
	return out
}

// CountMissing returns how many entries of values are missing.
func CountMissing(values []float64) int {
	n := 0
	for _, v := range values {
		if model.IsMissing(v) {
			n++
		}
	}
	return n
}
