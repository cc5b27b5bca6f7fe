package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// HoldingsSnapshot is the portfolio valuation at one timestamp: spare cash,
// market value per instrument, cumulative commission paid, and total equity
// (cash + sum of market values). One snapshot is appended per simulated
// step, before that step's trades settle.
type HoldingsSnapshot struct {
	Timestamp   time.Time
	Cash        decimal.Decimal
	MarketValue map[string]decimal.Decimal
	Commission  decimal.Decimal
	TotalEquity decimal.Decimal
}
