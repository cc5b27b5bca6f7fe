package engine

import (
	"eventbt/types"

	"github.com/shopspring/decimal"
)

// FixedSizer is the naive reference sizing rule: every entry order gets the
// same quantity regardless of signal strength, position or equity. Custom
// sizers can use all three.
type FixedSizer struct {
	Quantity decimal.Decimal
}

func (s FixedSizer) Size(_ types.Signal, _, _ decimal.Decimal) decimal.Decimal {
	return s.Quantity
}
