package model

import "time"

// Position tells which of two lines leads on a given row.
type Position int8

const (
	PositionUnknown Position = -1
	PositionBelow   Position = 0
	PositionAbove   Position = 1
)

func (p Position) String() string {
	switch p {
	case PositionAbove:
		return "ABOVE"
	case PositionBelow:
		return "BELOW"
	default:
		return "UNKNOWN"
	}
}

// SignalKind indicates the direction of a crossover.
type SignalKind string

const (
	SignalBuy  SignalKind = "BUY"
	SignalSell SignalKind = "SELL"
)

// SignalEvent is one crossover marker.
type SignalEvent struct {
	Date  time.Time
	Kind  SignalKind
	Value float64
}

// CrossoverResult holds the Buy and Sell columns produced by a detection pass.
type CrossoverResult struct {
	Buy  []float64
	Sell []float64
}

// Events lists the non-missing markers in date order.
func (r CrossoverResult) Events(dates []time.Time) []SignalEvent {
	var events []SignalEvent
	for i := range dates {
		if i < len(r.Buy) && !IsMissing(r.Buy[i]) {
			events = append(events, SignalEvent{Date: dates[i], Kind: SignalBuy, Value: r.Buy[i]})
		}
		if i < len(r.Sell) && !IsMissing(r.Sell[i]) {
			events = append(events, SignalEvent{Date: dates[i], Kind: SignalSell, Value: r.Sell[i]})
		}
	}
	return events
}
