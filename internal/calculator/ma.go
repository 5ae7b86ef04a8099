package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"StockScope/internal/model"
)

// Precision is the number of decimal places kept in moving average output.
const Precision = 4

// RollingSMA computes the trailing simple moving average for every position.
// Position i holds the mean of values[i-period+1..i]; it is missing when the
// window is incomplete or contains a missing value.
func RollingSMA(values []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, &model.InvalidArgumentError{Message: fmt.Sprintf("window must be >= 1, got %d", period)}
	}
	out := make([]float64, len(values))
	sum := 0.0
	gaps := 0
	for i, v := range values {
		if model.IsMissing(v) {
			gaps++
		} else {
			sum += v
		}
		if i >= period {
			old := values[i-period]
			if model.IsMissing(old) {
				gaps--
			} else {
				sum -= old
			}
		}
		if i < period-1 || gaps > 0 {
			out[i] = model.Missing()
			continue
		}
		out[i] = Round(sum / float64(period))
	}
	return out, nil
}

// Round rounds v half away from zero to Precision decimal places.
func Round(v float64) float64 {
	if model.IsMissing(v) {
		return v
	}
	f, _ := decimal.NewFromFloat(v).Round(Precision).Float64()
	return f
}
