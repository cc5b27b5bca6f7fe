package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a sized, directed instruction to trade, not yet executed.
type Order struct {
	Ticker    string
	Kind      OrderKind
	Quantity  decimal.Decimal
	Side      Side
	CreatedAt time.Time
}

func NewOrder(
	ticker string,
	kind OrderKind,
	quantity decimal.Decimal,
	side Side,
	createdAt time.Time,
) Order {
	return Order{
		Ticker:    ticker,
		Kind:      kind,
		Quantity:  quantity,
		Side:      side,
		CreatedAt: createdAt,
	}
}
