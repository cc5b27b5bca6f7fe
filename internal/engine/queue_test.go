package engine

import (
	"testing"
	"time"

	"eventbt/types"
)

func TestQueue_PopEmpty(t *testing.T) {
	q := &eventQueue{}
	if ev, ok := q.pop(); ok {
		t.Fatalf("pop on empty queue returned %v, want none", ev)
	}
	if q.len() != 0 {
		t.Fatalf("len on empty queue = %d, want 0", q.len())
	}
}

func TestQueue_FIFO(t *testing.T) {
	q := &eventQueue{}
	pushed := []Event{
		MarketEvent{Timestamp: time.UnixMilli(0)},
		SignalEvent{Signal: types.Signal{Ticker: "AAPL"}},
		OrderEvent{Order: types.Order{Ticker: "AAPL"}},
		FillEvent{Fill: types.Fill{Ticker: "AAPL"}},
	}
	for _, ev := range pushed {
		q.push(ev)
	}
	if q.len() != len(pushed) {
		t.Fatalf("len = %d, want %d", q.len(), len(pushed))
	}

	for i, want := range pushed {
		got, ok := q.pop()
		if !ok {
			t.Fatalf("pop %d: queue empty early", i)
		}
		if got != want {
			t.Errorf("pop %d = %T, want %T", i, got, want)
		}
	}
	if _, ok := q.pop(); ok {
		t.Error("queue not empty after popping all events")
	}
}

func TestQueue_PushWhileDraining(t *testing.T) {
	q := &eventQueue{}
	q.push(MarketEvent{Timestamp: time.UnixMilli(0)})

	var order []string
	for {
		ev, ok := q.pop()
		if !ok {
			break
		}
		switch ev.(type) {
		case MarketEvent:
			order = append(order, "market")
			q.push(SignalEvent{})
		case SignalEvent:
			order = append(order, "signal")
			q.push(OrderEvent{})
		case OrderEvent:
			order = append(order, "order")
			q.push(FillEvent{})
		case FillEvent:
			order = append(order, "fill")
		}
	}

	want := []string{"market", "signal", "order", "fill"}
	if len(order) != len(want) {
		t.Fatalf("drained %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("drained %v, want %v", order, want)
		}
	}
}
