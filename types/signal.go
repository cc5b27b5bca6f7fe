package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Signal is a trade intention derived from market data, not yet sized or
// routed. Strength is a scaling suggestion for the portfolio's sizer.
type Signal struct {
	Ticker    string
	Direction SignalDirection
	Strength  decimal.Decimal
	CreatedAt time.Time
}

func NewSignal(
	ticker string,
	direction SignalDirection,
	strength decimal.Decimal,
	createdAt time.Time,
) Signal {
	return Signal{
		Ticker:    ticker,
		Direction: direction,
		Strength:  strength,
		CreatedAt: createdAt,
	}
}
