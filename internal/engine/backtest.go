package engine

import (
	"errors"
	"fmt"

	"github.com/schollz/progressbar/v3"
)

var UnknownEventErr = errors.New("unknown event variant on queue")

// backtester drives the simulation: advance the feed one step, push the
// step's MarketEvent, then drain the queue to empty before touching the
// feed again. Handlers push follow-up events onto the same queue while it
// drains, which pins every signal, order and fill to the bar that caused
// it. Everything runs on the calling goroutine.
type backtester struct {
	feed      marketFeed
	strategy  strategy
	portfolio *portfolio
	venue     executionVenue
	queue     eventQueue

	signalsSeen int
	ordersSeen  int
	fillsSeen   int

	progress bool
}

func newBacktester(feed marketFeed, strat strategy, venue executionVenue, portfolio *portfolio) *backtester {
	return &backtester{
		feed:      feed,
		strategy:  strat,
		venue:     venue,
		portfolio: portfolio,
	}
}

func (b *backtester) run() error {
	var bar *progressbar.ProgressBar
	if b.progress {
		bar = initProgressBar(b.feed.Steps())
	}

	for b.feed.HasNext() {
		ts, err := b.feed.Advance()
		if err != nil {
			return err
		}
		b.queue.push(MarketEvent{Timestamp: ts})

		if err := b.drain(); err != nil {
			return err
		}
		if bar != nil {
			bar.Add(1)
		}
	}
	return nil
}

func (b *backtester) drain() error {
	for {
		ev, ok := b.queue.pop()
		if !ok {
			return nil
		}
		if err := b.dispatch(ev); err != nil {
			return err
		}
	}
}

func (b *backtester) dispatch(ev Event) error {
	switch e := ev.(type) {
	case MarketEvent:
		for _, sig := range b.strategy.OnMarket(e.Timestamp) {
			b.queue.push(SignalEvent{Signal: sig})
		}
		return b.portfolio.onMarket(e.Timestamp, b.feed.View())

	case SignalEvent:
		b.signalsSeen++
		order, ok, err := b.portfolio.onSignal(e.Signal)
		if err != nil {
			return fmt.Errorf("signal %s %s: %w", e.Signal.Ticker, e.Signal.CreatedAt, err)
		}
		if ok {
			b.queue.push(OrderEvent{Order: order})
		}
		return nil

	case OrderEvent:
		b.ordersSeen++
		fill, err := b.venue.Execute(e.Order, b.feed.View())
		if err != nil {
			return fmt.Errorf("order %s %s: %w", e.Order.Ticker, e.Order.CreatedAt, err)
		}
		b.queue.push(FillEvent{Fill: fill})
		return nil

	case FillEvent:
		b.fillsSeen++
		if err := b.portfolio.onFill(e.Fill); err != nil {
			return fmt.Errorf("fill %s %s: %w", e.Fill.Ticker, e.Fill.Timestamp, err)
		}
		return nil

	default:
		return fmt.Errorf("%w: %T", UnknownEventErr, ev)
	}
}

func initProgressBar(maxTicks int) *progressbar.ProgressBar {
	return progressbar.NewOptions(maxTicks,
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetDescription("Backtesting in progress..."),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
