package scenario

import (
	"log/slog"

	"github.com/sarchlab/pdpsim/eventing"
)

// Builder can be used to build a Controller.
type Builder struct {
	tickBudget      int64
	engineFactory   EngineFactory
	frontEndFactory FrontEndFactory
	handlers        map[*eventing.Type]EventHandler
	customHandler   EventHandler
	logger          *slog.Logger
}

// MakeBuilder creates a new builder with an unbounded tick budget.
func MakeBuilder() Builder {
	return Builder{
		tickBudget: -1,
	}
}

// WithTickBudget sets after how many ticks the controller stops the engine.
// A negative budget never stops the engine.
func (b Builder) WithTickBudget(ticks int64) Builder {
	b.tickBudget = ticks
	return b
}

// WithEngineFactory sets how the engine is created during initialization.
func (b Builder) WithEngineFactory(f EngineFactory) Builder {
	b.engineFactory = f
	return b
}

// WithFrontEndFactory sets how the interactive front end is created during
// initialization.
func (b Builder) WithFrontEndFactory(f FrontEndFactory) Builder {
	b.frontEndFactory = f
	return b
}

// WithHandler sets the handler for one scenario event type.
func (b Builder) WithHandler(t *eventing.Type, h EventHandler) Builder {
	handlers := make(map[*eventing.Type]EventHandler, len(b.handlers)+1)
	for k, v := range b.handlers {
		handlers[k] = v
	}

	handlers[t] = h
	b.handlers = handlers

	return b
}

// WithCustomHandler sets the handler that receives every event that no
// dedicated handler accepted.
func (b Builder) WithCustomHandler(h EventHandler) Builder {
	b.customHandler = h
	return b
}

// WithLogger sets the logger of the controller.
func (b Builder) WithLogger(logger *slog.Logger) Builder {
	b.logger = logger
	return b
}

// Build creates a controller that plays the scenario.
func (b Builder) Build(scn *Scenario) (*Controller, error) {
	if scn == nil {
		return nil, &ConfigurationError{Reason: "scenario cannot be nil"}
	}

	snapshot, err := New(scn.Types(), scn.Events()...)
	if err != nil {
		return nil, err
	}

	types, err := snapshot.Types().Union(LifecycleTypes())
	if err != nil {
		return nil, &ConfigurationError{
			Reason: "scenario types clash with lifecycle types",
			Err:    err,
		}
	}

	handlers := make(map[*eventing.Type]EventHandler, len(b.handlers))
	for t, h := range b.handlers {
		if !snapshot.Types().Contains(t) {
			return nil, &ConfigurationError{
				Reason: "handler set for undeclared type " + t.String(),
			}
		}

		handlers[t] = h
	}

	logger := b.logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Controller{
		scenario:        snapshot,
		dispatcher:      eventing.NewDispatcher(types),
		handlers:        handlerTable{byType: handlers, custom: b.customHandler},
		logger:          logger.With("component", "scenario"),
		engineFactory:   b.engineFactory,
		frontEndFactory: b.frontEndFactory,
		queue:           NewEventQueue(snapshot.Events()),
		ticksLeft:       b.tickBudget,
	}

	err = c.dispatcher.Register(c, snapshot.Types().Types()...)
	if err != nil {
		return nil, &ConfigurationError{Reason: "cannot register", Err: err}
	}

	return c, nil
}
