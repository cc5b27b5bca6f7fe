package engine

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"eventbt/types"

	"github.com/shopspring/decimal"
)

var MalformedBarErr = errors.New("malformed bar in feed")
var NonMonotonicTimestampErr = errors.New("bar timestamps not in non-decreasing order")

// histFeed replays pre-loaded historical series one step at a time. A step
// is one distinct timestamp across all instruments, not one bar: Advance
// reveals every bar stamped with the step's timestamp at once, so the step
// is the unit of causal time.
//
// Revealed bars accumulate in an append-only history which backs the
// MarketView handed to strategies. Bars past the cursor are invisible until
// their step arrives.
type histFeed struct {
	tickers []string
	series  map[string][]types.Bar
	cursor  map[string]int
	latest  map[string][]types.Bar

	steps   int
	curTime time.Time
	started bool
}

func newHistFeed(series map[string][]types.Bar) (*histFeed, error) {
	tickers := make([]string, 0, len(series))
	for t := range series {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)

	stamps := make(map[time.Time]struct{})
	for _, t := range tickers {
		prev := time.Time{}
		for _, bar := range series[t] {
			if err := validateBar(t, bar); err != nil {
				return nil, err
			}
			if bar.Timestamp.Before(prev) {
				return nil, fmt.Errorf("%w: %s at %s", NonMonotonicTimestampErr, t, bar.Timestamp)
			}
			prev = bar.Timestamp
			stamps[bar.Timestamp] = struct{}{}
		}
	}

	cursor := make(map[string]int, len(tickers))
	latest := make(map[string][]types.Bar, len(tickers))
	for _, t := range tickers {
		cursor[t] = 0
		latest[t] = nil
	}

	return &histFeed{
		tickers: tickers,
		series:  series,
		cursor:  cursor,
		latest:  latest,
		steps:   len(stamps),
	}, nil
}

func validateBar(ticker string, bar types.Bar) error {
	if bar.Timestamp.IsZero() {
		return fmt.Errorf("%w: %s has a zero timestamp", MalformedBarErr, ticker)
	}
	if bar.Close.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: %s at %s has non-positive close", MalformedBarErr, ticker, bar.Timestamp)
	}
	if bar.High.LessThan(bar.Low) {
		return fmt.Errorf("%w: %s at %s has high below low", MalformedBarErr, ticker, bar.Timestamp)
	}
	return nil
}

func (f *histFeed) HasNext() bool {
	for _, t := range f.tickers {
		if f.cursor[t] < len(f.series[t]) {
			return true
		}
	}
	return false
}

// Advance moves the feed forward by one step and returns the step's
// timestamp. Every instrument with a bar at that timestamp has it appended
// to its history.
func (f *histFeed) Advance() (time.Time, error) {
	var next time.Time
	found := false
	for _, t := range f.tickers {
		i := f.cursor[t]
		if i >= len(f.series[t]) {
			continue
		}
		ts := f.series[t][i].Timestamp
		if !found || ts.Before(next) {
			next = ts
			found = true
		}
	}
	if !found {
		return time.Time{}, errors.New("advance called on exhausted feed")
	}
	if f.started && next.Before(f.curTime) {
		return time.Time{}, fmt.Errorf("%w: step %s after %s", NonMonotonicTimestampErr, next, f.curTime)
	}

	for _, t := range f.tickers {
		i := f.cursor[t]
		if i < len(f.series[t]) && f.series[t][i].Timestamp.Equal(next) {
			f.latest[t] = append(f.latest[t], f.series[t][i])
			f.cursor[t] = i + 1
		}
	}

	f.curTime = next
	f.started = true
	return next, nil
}

func (f *histFeed) Steps() int {
	return f.steps
}

func (f *histFeed) View() MarketView {
	return f
}

func (f *histFeed) Instruments() []string {
	out := make([]string, len(f.tickers))
	copy(out, f.tickers)
	return out
}

func (f *histFeed) LatestBar(ticker string) (types.Bar, bool) {
	hist := f.latest[ticker]
	if len(hist) == 0 {
		return types.Bar{}, false
	}
	return hist[len(hist)-1], true
}

// LatestBars returns up to the last n revealed bars for ticker, oldest
// first. Fewer than n are returned when history is still short.
func (f *histFeed) LatestBars(ticker string, n int) []types.Bar {
	hist := f.latest[ticker]
	if n <= 0 || len(hist) == 0 {
		return nil
	}
	if n > len(hist) {
		n = len(hist)
	}
	out := make([]types.Bar, n)
	copy(out, hist[len(hist)-n:])
	return out
}

func (f *histFeed) LatestPrice(ticker string) (decimal.Decimal, bool) {
	bar, ok := f.LatestBar(ticker)
	if !ok {
		return decimal.Zero, false
	}
	return bar.Close, true
}
