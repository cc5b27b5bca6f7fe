package engine

import (
	"errors"
	"fmt"

	"eventbt/types"

	"github.com/shopspring/decimal"
)

var NoMarketDataErr = errors.New("no market data for ticker")
var NonPositiveQuantityErr = errors.New("non-positive order quantity")

// CommissionModel computes the fee for one fill from its quantity and price.
type CommissionModel func(quantity, price decimal.Decimal) decimal.Decimal

func ZeroCommission(_, _ decimal.Decimal) decimal.Decimal {
	return decimal.Zero
}

// IBKRFixedCommission follows the IBKR Pro fixed schedule for US stocks:
// 0.005 per share with a 1.00 minimum per order. Other fees excluded.
func IBKRFixedCommission(quantity, _ decimal.Decimal) decimal.Decimal {
	fee := quantity.Mul(decimal.RequireFromString("0.005"))
	minFee := decimal.NewFromInt(1)
	if fee.LessThan(minFee) {
		return minFee
	}
	return fee
}

// SimulatedVenue is the idealized backtest execution model: every order
// fills immediately and completely at the latest close of its instrument,
// with zero slippage. Only commission is charged.
type SimulatedVenue struct {
	name       string
	commission CommissionModel
}

func NewSimulatedVenue(name string, commission CommissionModel) *SimulatedVenue {
	if commission == nil {
		commission = ZeroCommission
	}
	return &SimulatedVenue{name: name, commission: commission}
}

func (v *SimulatedVenue) Execute(order types.Order, view MarketView) (types.Fill, error) {
	if order.Quantity.LessThanOrEqual(decimal.Zero) {
		return types.Fill{}, fmt.Errorf("%w: %s %s", NonPositiveQuantityErr, order.Ticker, order.Quantity)
	}
	bar, ok := view.LatestBar(order.Ticker)
	if !ok {
		return types.Fill{}, fmt.Errorf("%w: %s", NoMarketDataErr, order.Ticker)
	}

	price := bar.Close
	cost := price.Mul(order.Quantity)
	fee := v.commission(order.Quantity, price)
	return types.NewFill(bar.Timestamp, order.Ticker, v.name, order.Quantity, order.Side, cost, fee), nil
}
