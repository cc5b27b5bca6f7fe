package mac

import (
	"fmt"
	"time"

	"eventbt/internal/engine"
	"eventbt/types"

	"github.com/shopspring/decimal"
)

// Strategy is a simple moving average crossover: go long when the short SMA
// crosses above the long SMA, exit when it crosses back below. One position
// per instrument, long only.
type Strategy struct {
	view        engine.MarketView
	shortWindow int
	longWindow  int
	invested    map[string]bool
}

func New(shortWindow, longWindow int) *Strategy {
	return &Strategy{
		shortWindow: shortWindow,
		longWindow:  longWindow,
	}
}

func (s *Strategy) Init(view engine.MarketView) error {
	if s.shortWindow <= 0 || s.shortWindow >= s.longWindow {
		return fmt.Errorf("invalid windows: short %d long %d", s.shortWindow, s.longWindow)
	}
	s.view = view
	s.invested = make(map[string]bool)
	for _, t := range view.Instruments() {
		s.invested[t] = false
	}
	return nil
}

func (s *Strategy) OnMarket(ts time.Time) []types.Signal {
	var signals []types.Signal
	for _, ticker := range s.view.Instruments() {
		bars := s.view.LatestBars(ticker, s.longWindow)
		if len(bars) < s.longWindow {
			continue
		}

		shortSMA := meanClose(bars[len(bars)-s.shortWindow:])
		longSMA := meanClose(bars)

		switch {
		case shortSMA.GreaterThan(longSMA) && !s.invested[ticker]:
			signals = append(signals, types.NewSignal(ticker, types.DirectionLong, decimal.NewFromInt(1), ts))
			s.invested[ticker] = true
		case shortSMA.LessThan(longSMA) && s.invested[ticker]:
			signals = append(signals, types.NewSignal(ticker, types.DirectionExit, decimal.NewFromInt(1), ts))
			s.invested[ticker] = false
		}
	}
	return signals
}

func meanClose(bars []types.Bar) decimal.Decimal {
	sum := decimal.Zero
	for _, bar := range bars {
		sum = sum.Add(bar.Close)
	}
	return sum.Div(decimal.NewFromInt(int64(len(bars))))
}
