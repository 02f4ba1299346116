// Package scenario runs a list of timed events against a tick-driven engine.
//
// A Scenario is an immutable, time-sorted list of events. A Controller owns
// one scenario and, on every tick of the engine, dispatches the events that
// are due. Events are routed to a table of handlers with a single fallback,
// and the run lifecycle is announced with RunStarted and RunFinished.
package scenario

import (
	"sort"

	"github.com/sarchlab/pdpsim/eventing"
)

// A Scenario is an immutable list of timed events together with the types of
// events it may contain.
type Scenario struct {
	types  eventing.TypeSet
	events []TimedEvent
}

// New creates a Scenario. Events are sorted by time; events with equal times
// keep their relative order. Every event must have one of the declared types.
func New(types eventing.TypeSet, events ...TimedEvent) (*Scenario, error) {
	sorted := make([]TimedEvent, len(events))
	copy(sorted, events)

	for _, e := range sorted {
		if !types.Contains(e.Type()) {
			return nil, &ConfigurationError{
				Reason: "event type " + e.Type().String() +
					" is not declared by the scenario",
			}
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time() < sorted[j].Time()
	})

	return &Scenario{types: types, events: sorted}, nil
}

// Types returns the event types the scenario declares.
func (s *Scenario) Types() eventing.TypeSet {
	return s.types
}

// Events returns a copy of the events in time order.
func (s *Scenario) Events() []TimedEvent {
	events := make([]TimedEvent, len(s.events))
	copy(events, s.events)

	return events
}

// Len returns the number of events.
func (s *Scenario) Len() int {
	return len(s.events)
}
