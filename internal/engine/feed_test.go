package engine

import (
	"errors"
	"testing"
	"time"

	"eventbt/types"

	"github.com/shopspring/decimal"
)

var testInterval = types.OneMinute

func mkBar(ticker string, ts time.Time, close int64) types.Bar {
	return types.Bar{
		Ticker:    ticker,
		Open:      decimal.NewFromInt(close),
		High:      decimal.NewFromInt(close + 1),
		Low:       decimal.NewFromInt(close - 1),
		Close:     decimal.NewFromInt(close),
		Volume:    decimal.NewFromInt(1000),
		Interval:  testInterval,
		Timestamp: ts,
	}
}

func mkBars(ticker string, start time.Time, closes ...int64) []types.Bar {
	bars := make([]types.Bar, 0, len(closes))
	for i, c := range closes {
		bars = append(bars, mkBar(ticker, start.Add(time.Duration(i)*time.Minute), c))
	}
	return bars
}

func TestHistFeed_RejectsNonMonotonicSeries(t *testing.T) {
	base := time.UnixMilli(0).UTC()
	series := map[string][]types.Bar{
		"AAPL": {
			mkBar("AAPL", base.Add(time.Minute), 10),
			mkBar("AAPL", base, 11),
		},
	}
	_, err := newHistFeed(series)
	if !errors.Is(err, NonMonotonicTimestampErr) {
		t.Fatalf("err = %v, want NonMonotonicTimestampErr", err)
	}
}

func TestHistFeed_RejectsMalformedBars(t *testing.T) {
	base := time.UnixMilli(0).UTC()

	zeroClose := mkBar("AAPL", base, 10)
	zeroClose.Close = decimal.Zero

	highBelowLow := mkBar("AAPL", base, 10)
	highBelowLow.High = decimal.NewFromInt(1)
	highBelowLow.Low = decimal.NewFromInt(5)

	tests := []struct {
		name string
		bar  types.Bar
	}{
		{"zero timestamp", mkBar("AAPL", time.Time{}, 10)},
		{"non-positive close", zeroClose},
		{"high below low", highBelowLow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newHistFeed(map[string][]types.Bar{"AAPL": {tt.bar}})
			if !errors.Is(err, MalformedBarErr) {
				t.Fatalf("err = %v, want MalformedBarErr", err)
			}
		})
	}
}

func TestHistFeed_OneStepPerDistinctTimestamp(t *testing.T) {
	base := time.UnixMilli(0).UTC()
	// AAPL has bars at minutes 0,1,2; GOOG only at 1. The union holds three
	// distinct timestamps, so the feed must report exactly three steps.
	series := map[string][]types.Bar{
		"AAPL": mkBars("AAPL", base, 10, 11, 12),
		"GOOG": {mkBar("GOOG", base.Add(time.Minute), 100)},
	}
	feed, err := newHistFeed(series)
	if err != nil {
		t.Fatal(err)
	}
	if feed.Steps() != 3 {
		t.Fatalf("Steps() = %d, want 3", feed.Steps())
	}

	var stamps []time.Time
	for feed.HasNext() {
		ts, err := feed.Advance()
		if err != nil {
			t.Fatal(err)
		}
		stamps = append(stamps, ts)
	}
	if len(stamps) != 3 {
		t.Fatalf("advanced %d steps, want 3", len(stamps))
	}
	for i := 1; i < len(stamps); i++ {
		if !stamps[i].After(stamps[i-1]) {
			t.Errorf("step %d at %s not after step %d at %s", i, stamps[i], i-1, stamps[i-1])
		}
	}

	// GOOG only ever revealed its single bar.
	if bars := feed.LatestBars("GOOG", 10); len(bars) != 1 {
		t.Errorf("GOOG history length = %d, want 1", len(bars))
	}
	if bars := feed.LatestBars("AAPL", 10); len(bars) != 3 {
		t.Errorf("AAPL history length = %d, want 3", len(bars))
	}
}

func TestHistFeed_NoLookAhead(t *testing.T) {
	base := time.UnixMilli(0).UTC()
	series := map[string][]types.Bar{
		"AAPL": mkBars("AAPL", base, 10, 11, 12, 13),
	}
	feed, err := newHistFeed(series)
	if err != nil {
		t.Fatal(err)
	}

	view := feed.View()
	if _, ok := view.LatestBar("AAPL"); ok {
		t.Fatal("bar visible before the first step")
	}

	for feed.HasNext() {
		ts, err := feed.Advance()
		if err != nil {
			t.Fatal(err)
		}
		for _, bar := range view.LatestBars("AAPL", 100) {
			if bar.Timestamp.After(ts) {
				t.Fatalf("bar at %s visible during step %s", bar.Timestamp, ts)
			}
		}
		latest, ok := view.LatestBar("AAPL")
		if !ok || !latest.Timestamp.Equal(ts) {
			t.Fatalf("latest bar at %s, want step timestamp %s", latest.Timestamp, ts)
		}
	}
}

func TestHistFeed_LatestBarsWindow(t *testing.T) {
	base := time.UnixMilli(0).UTC()
	feed, err := newHistFeed(map[string][]types.Bar{
		"AAPL": mkBars("AAPL", base, 10, 11, 12, 13, 14),
	})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if _, err := feed.Advance(); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name       string
		n          int
		wantCloses []int64
	}{
		{"zero", 0, nil},
		{"negative", -1, nil},
		{"partial window", 2, []int64{11, 12}},
		{"exact window", 3, []int64{10, 11, 12}},
		{"clamped window", 10, []int64{10, 11, 12}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := feed.LatestBars("AAPL", tt.n)
			if len(got) != len(tt.wantCloses) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.wantCloses))
			}
			for i, want := range tt.wantCloses {
				if !got[i].Close.Equal(decimal.NewFromInt(want)) {
					t.Errorf("bar %d close = %s, want %d", i, got[i].Close, want)
				}
			}
		})
	}
}

func TestHistFeed_LatestPrice(t *testing.T) {
	base := time.UnixMilli(0).UTC()
	feed, err := newHistFeed(map[string][]types.Bar{
		"AAPL": mkBars("AAPL", base, 10, 11),
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := feed.LatestPrice("AAPL"); ok {
		t.Error("price visible before the first step")
	}
	if _, err := feed.Advance(); err != nil {
		t.Fatal(err)
	}
	price, ok := feed.LatestPrice("AAPL")
	if !ok || !price.Equal(decimal.NewFromInt(10)) {
		t.Errorf("price = %s, want 10", price)
	}
	if _, ok := feed.LatestPrice("MSFT"); ok {
		t.Error("price returned for untracked ticker")
	}
}
