// Package timing provides the clock that drives a simulation in fixed ticks.
package timing

import "github.com/sarchlab/pdpsim/eventing"

// VTime is a point in simulated time, counted in the time unit of the engine.
type VTime = int64

// TimeTeller can be used to get the current time.
type TimeTeller interface {
	CurrentTime() VTime
}

// A TickListener is notified on every tick of the engine.
//
// Tick is called on all the listeners first, then AfterTick is called on all
// the listeners. Both receive the time of the tick and the tick length. An
// error from either aborts the run.
type TickListener interface {
	Tick(now, step VTime) error
	AfterTick(now, step VTime) error
}

// An Engine advances simulated time in fixed steps and notifies the tick
// listeners at every step.
type Engine interface {
	Hookable
	TimeTeller

	// Configure finalizes the model registry. It must be called once, before
	// Start.
	Configure() error

	// AddTickListener subscribes a listener to ticks.
	AddTickListener(l TickListener)

	// RemoveTickListener unsubscribes a listener. Removing a listener while a
	// tick is in progress takes effect from the next tick on.
	RemoveTickListener(l TickListener)

	// Start runs the tick loop on the calling goroutine until Stop is called
	// or a listener fails.
	Start() error

	// Stop requests the tick loop to end after the current tick.
	Stop()

	// Pause blocks the tick loop before the next tick until Continue is
	// called.
	Pause()

	// Continue resumes a paused tick loop.
	Continue()

	// TimeStep returns the length of a tick.
	TimeStep() VTime

	// TimeUnit returns the unit of simulated time, such as "ms".
	TimeUnit() string

	// EventAPI allows subscribing to the Started and Stopped events.
	EventAPI() eventing.API

	// Models returns the models that take part in the simulation.
	Models() ModelProvider
}
