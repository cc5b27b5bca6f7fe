package engine

import (
	"context"
	"time"

	"eventbt/types"

	"github.com/shopspring/decimal"
)

type dataStore interface {
	GetAssetByTicker(ctx context.Context, ticker string) (*types.Asset, error)
	GetBars(ctx context.Context, assetId int, ticker string, interval types.Interval, start, end time.Time) ([]types.Bar, error)
}

// MarketView is the read-only window onto market history that strategies,
// sizers and venues see. It can never reach past the bar currently being
// processed, which is what keeps decisions free of look-ahead.
type MarketView interface {
	Instruments() []string
	LatestBar(ticker string) (types.Bar, bool)
	LatestBars(ticker string, n int) []types.Bar
	LatestPrice(ticker string) (decimal.Decimal, bool)
}

type strategy interface {
	Init(view MarketView) error
	OnMarket(ts time.Time) []types.Signal
}

type executionVenue interface {
	Execute(order types.Order, view MarketView) (types.Fill, error)
}

// sizer turns a signal into an order quantity given the current position and
// the pre-trade equity of the bar being processed. This is the seam where
// risk management plugs in.
type sizer interface {
	Size(signal types.Signal, position, equity decimal.Decimal) decimal.Decimal
}

type marketFeed interface {
	HasNext() bool
	Advance() (time.Time, error)
	Steps() int
	View() MarketView
}
