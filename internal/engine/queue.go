package engine

// eventQueue is a strict FIFO of events. It is owned by a single backtester
// and is never shared across goroutines.
type eventQueue struct {
	events []Event
}

func (q *eventQueue) push(e Event) {
	q.events = append(q.events, e)
}

// pop returns the next event, or false when the queue is empty. It never
// blocks.
func (q *eventQueue) pop() (Event, bool) {
	if len(q.events) == 0 {
		return nil, false
	}
	e := q.events[0]
	q.events = q.events[1:]
	return e, true
}

func (q *eventQueue) len() int {
	return len(q.events)
}
