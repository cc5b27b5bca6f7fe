package engine

import (
	"time"

	"eventbt/types"
)

// Event is the closed set of variants the simulation queue carries. The
// interface is sealed so the dispatch type switch in the backtester covers
// every variant that can ever appear on the queue.
type Event interface {
	isEvent()
}

// MarketEvent announces that a new bar is available for every tracked
// instrument at Timestamp.
type MarketEvent struct {
	Timestamp time.Time
}

// SignalEvent carries a trade intention produced by the strategy.
type SignalEvent struct {
	Signal types.Signal
}

// OrderEvent carries a sized order produced by the portfolio.
type OrderEvent struct {
	Order types.Order
}

// FillEvent carries an execution confirmation produced by the venue.
type FillEvent struct {
	Fill types.Fill
}

func (MarketEvent) isEvent() {}
func (SignalEvent) isEvent() {}
func (OrderEvent) isEvent()  {}
func (FillEvent) isEvent()   {}
