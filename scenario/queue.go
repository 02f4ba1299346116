package scenario

// EventQueue hands out the events of a scenario in time order.
type EventQueue struct {
	events []TimedEvent
	next   int
}

// NewEventQueue creates a queue over a copy of the events. The events must
// already be sorted by time.
func NewEventQueue(events []TimedEvent) *EventQueue {
	q := &EventQueue{events: make([]TimedEvent, len(events))}
	copy(q.events, events)

	return q
}

// Peek returns the earliest event that has not been polled, without removing
// it. The second return value is false when the queue is empty.
func (q *EventQueue) Peek() (TimedEvent, bool) {
	if q.next >= len(q.events) {
		return TimedEvent{}, false
	}

	return q.events[q.next], true
}

// Poll removes and returns the earliest event. Polling an empty queue is a
// programming error and panics.
func (q *EventQueue) Poll() TimedEvent {
	if q.next >= len(q.events) {
		panic("polling an empty scenario event queue")
	}

	e := q.events[q.next]
	q.next++

	return e
}

// Len returns the number of events that have not been polled.
func (q *EventQueue) Len() int {
	return len(q.events) - q.next
}

// Size returns the number of events the queue was created with.
func (q *EventQueue) Size() int {
	return len(q.events)
}
