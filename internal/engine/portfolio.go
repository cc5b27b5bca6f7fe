package engine

import (
	"errors"
	"fmt"
	"time"

	"eventbt/types"

	"github.com/shopspring/decimal"
)

var UnknownSideErr = errors.New("unknown fill side")
var UnknownDirectionErr = errors.New("unknown signal direction")
var UnknownInstrumentErr = errors.New("fill references an instrument with no tracked position")

// portfolio owns the ledger: cash, signed position per instrument, the
// last-known price used for mark-to-market, and the append-only holdings
// history that becomes the equity curve.
type portfolio struct {
	initialCapital decimal.Decimal
	cash           decimal.Decimal
	commission     decimal.Decimal
	positions      map[string]decimal.Decimal
	lastPrice      map[string]decimal.Decimal
	holdings       []types.HoldingsSnapshot
	sizer          sizer
}

func newPortfolio(cfg *PortfolioConfig, tickers []string) *portfolio {
	positions := make(map[string]decimal.Decimal, len(tickers))
	lastPrice := make(map[string]decimal.Decimal, len(tickers))
	for _, t := range tickers {
		positions[t] = decimal.Zero
		lastPrice[t] = decimal.Zero
	}
	return &portfolio{
		initialCapital: cfg.initialCapital,
		cash:           cfg.initialCapital,
		commission:     decimal.Zero,
		positions:      positions,
		lastPrice:      lastPrice,
		sizer:          cfg.sizer,
	}
}

// onMarket marks every position to its latest known price and appends a
// holdings snapshot for ts. It runs before any signal, order or fill of the
// same step settles, so sizing always references the pre-trade equity of
// the current bar.
func (p *portfolio) onMarket(ts time.Time, view MarketView) error {
	for ticker := range p.positions {
		if price, ok := view.LatestPrice(ticker); ok {
			p.lastPrice[ticker] = price
		}
	}

	snap := types.HoldingsSnapshot{
		Timestamp:   ts,
		Cash:        p.cash,
		MarketValue: make(map[string]decimal.Decimal, len(p.positions)),
		Commission:  p.commission,
		TotalEquity: p.cash,
	}
	for ticker, qty := range p.positions {
		mv := qty.Mul(p.lastPrice[ticker])
		snap.MarketValue[ticker] = mv
		snap.TotalEquity = snap.TotalEquity.Add(mv)
	}
	p.holdings = append(p.holdings, snap)
	return nil
}

// onSignal turns a signal into at most one order. LONG and SHORT entries
// only fire from a flat position; EXIT flattens whatever is held and is a
// no-op when already flat. A zero-quantity order is never emitted.
func (p *portfolio) onSignal(sig types.Signal) (types.Order, bool, error) {
	position, ok := p.positions[sig.Ticker]
	if !ok {
		return types.Order{}, false, fmt.Errorf("%w: %s at %s", UnknownInstrumentErr, sig.Ticker, sig.CreatedAt)
	}

	switch sig.Direction {
	case types.DirectionLong:
		if !position.IsZero() {
			return types.Order{}, false, nil
		}
		qty := p.sizer.Size(sig, position, p.equity())
		if qty.LessThanOrEqual(decimal.Zero) {
			return types.Order{}, false, nil
		}
		return types.NewOrder(sig.Ticker, types.KindMarket, qty, types.SideTypeBuy, sig.CreatedAt), true, nil

	case types.DirectionShort:
		if !position.IsZero() {
			return types.Order{}, false, nil
		}
		qty := p.sizer.Size(sig, position, p.equity())
		if qty.LessThanOrEqual(decimal.Zero) {
			return types.Order{}, false, nil
		}
		return types.NewOrder(sig.Ticker, types.KindMarket, qty, types.SideTypeSell, sig.CreatedAt), true, nil

	case types.DirectionExit:
		if position.IsZero() {
			return types.Order{}, false, nil
		}
		side := types.SideTypeSell
		if position.IsNegative() {
			side = types.SideTypeBuy
		}
		return types.NewOrder(sig.Ticker, types.KindMarket, position.Abs(), side, sig.CreatedAt), true, nil

	default:
		return types.Order{}, false, fmt.Errorf("%w: %q", UnknownDirectionErr, sig.Direction)
	}
}

// onFill settles a fill against the ledger exactly once: the position moves
// by the signed quantity and cash by the signed cost plus commission. The
// fill lands in the already time-indexed snapshot of its own step.
func (p *portfolio) onFill(fill types.Fill) error {
	position, ok := p.positions[fill.Ticker]
	if !ok {
		return fmt.Errorf("%w: %s at %s", UnknownInstrumentErr, fill.Ticker, fill.Timestamp)
	}

	var signedQty, signedCost decimal.Decimal
	switch fill.Side {
	case types.SideTypeBuy:
		signedQty = fill.Quantity
		signedCost = fill.FillCost.Neg()
	case types.SideTypeSell:
		signedQty = fill.Quantity.Neg()
		signedCost = fill.FillCost
	default:
		return fmt.Errorf("%w: %q at %s", UnknownSideErr, fill.Side, fill.Timestamp)
	}

	p.positions[fill.Ticker] = position.Add(signedQty)
	p.cash = p.cash.Add(signedCost).Sub(fill.Commission)
	p.commission = p.commission.Add(fill.Commission)
	return nil
}

// equity is cash plus the mark-to-market value of every open position.
func (p *portfolio) equity() decimal.Decimal {
	total := p.cash
	for ticker, qty := range p.positions {
		total = total.Add(qty.Mul(p.lastPrice[ticker]))
	}
	return total
}
