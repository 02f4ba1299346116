package scenario

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/sarchlab/pdpsim/eventing"
	"github.com/sarchlab/pdpsim/sim/timing"
)

// EngineFactory creates the engine that drives a controller.
type EngineFactory func() (timing.Engine, error)

// FrontEndFactory creates an interactive front end for a controller. It
// returns true when a front end was created, which hands the control over the
// engine lifecycle to that front end.
type FrontEndFactory func(c *Controller, engine timing.Engine) (bool, error)

// A Controller plays a scenario on a tick-driven engine. It represents a
// single simulation run.
//
// The controller dispatches the scenario events on its own bus, which it
// declares with the scenario types plus RunStarted and RunFinished. The
// controller is itself registered for the scenario types and forwards them to
// its handler table.
type Controller struct {
	scenario   *Scenario
	dispatcher *eventing.Dispatcher
	handlers   handlerTable
	logger     *slog.Logger

	engineFactory   EngineFactory
	frontEndFactory FrontEndFactory

	lock         sync.Mutex
	queue        *EventQueue
	status       RunStatus
	ticksLeft    int64
	engine       timing.Engine
	initialized  bool
	initializing bool
	interactive  bool
}

// Initialize creates the engine with the engine factory, configures it, and
// invokes the front end factory if one is set. The controller subscribes to
// the engine ticks only once all of these succeeded. Initialize must succeed
// exactly once, before Start or the first tick.
func (c *Controller) Initialize() error {
	c.lock.Lock()
	if c.initialized || c.initializing {
		c.lock.Unlock()
		return &ConfigurationError{Reason: "controller is already initialized"}
	}
	c.initializing = true
	c.lock.Unlock()

	defer func() {
		c.lock.Lock()
		c.initializing = false
		c.lock.Unlock()
	}()

	engine, err := c.createEngine()
	if err != nil {
		c.logger.Warn("engine creation failed", "error", err)
		return err
	}

	err = engine.Configure()
	if err != nil {
		return &ConfigurationError{Reason: "cannot configure engine", Err: err}
	}

	c.logger.Info("engine created",
		"time_unit", engine.TimeUnit(),
		"step", engine.TimeStep())

	interactive := false
	if c.frontEndFactory != nil {
		interactive, err = c.frontEndFactory(c, engine)
		if err != nil {
			return &ConfigurationError{Reason: "cannot create front end", Err: err}
		}
	}

	c.lock.Lock()
	c.engine = engine
	c.initialized = true
	c.interactive = interactive
	c.lock.Unlock()

	engine.AddTickListener(c)

	return nil
}

func (c *Controller) createEngine() (timing.Engine, error) {
	if c.engineFactory == nil {
		return nil, &ConfigurationError{Reason: "no engine factory is set"}
	}

	engine, err := c.engineFactory()
	if err != nil {
		return nil, &ConfigurationError{Reason: "engine factory failed", Err: err}
	}

	if engine == nil {
		return nil, &ConfigurationError{
			Reason: "engine factory did not create an engine",
		}
	}

	return engine, nil
}

// Engine returns the engine once the controller is initialized.
func (c *Controller) Engine() (timing.Engine, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.engine, c.initialized
}

// IsInteractive tells if a front end owns the engine lifecycle.
func (c *Controller) IsInteractive() bool {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.interactive
}

// EventAPI allows subscribing to the events the controller dispatches.
func (c *Controller) EventAPI() eventing.API {
	return c.dispatcher.PublicAPI()
}

// Scenario returns the scenario the controller plays.
func (c *Controller) Scenario() *Scenario {
	return c.scenario
}

// Status returns the lifecycle status of the run.
func (c *Controller) Status() RunStatus {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.status
}

// TicksLeft returns the remaining tick budget. A negative budget is
// unbounded.
func (c *Controller) TicksLeft() int64 {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.ticksLeft
}

// Progress returns how many scenario events have been dispatched and how many
// the scenario has in total.
func (c *Controller) Progress() (dispatched, total int) {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.queue.Size() - c.queue.Len(), c.queue.Size()
}

// IsScenarioFinished tells if all the scenario events have been dispatched.
func (c *Controller) IsScenarioFinished() bool {
	c.lock.Lock()
	defer c.lock.Unlock()

	_, pending := c.queue.Peek()

	return !pending
}

// Start runs the engine on a new goroutine and returns immediately. The
// returned handle can be used to wait for the run to end. In interactive mode
// the front end runs the engine, so the returned handle is already done.
func (c *Controller) Start() (*RunHandle, error) {
	c.lock.Lock()
	initialized, interactive, engine := c.initialized, c.interactive, c.engine
	c.lock.Unlock()

	if !initialized {
		return nil, &ConfigurationError{
			Reason: "controller must be initialized before it is started",
		}
	}

	h := newRunHandle()
	if interactive {
		h.finish(nil)
		return h, nil
	}

	go func() {
		h.finish(engine.Start())
	}()

	return h, nil
}

// Stop unsubscribes the controller from ticks and stops the engine. It has
// no effect in interactive mode or before initialization.
func (c *Controller) Stop() {
	c.lock.Lock()
	initialized, interactive, engine := c.initialized, c.interactive, c.engine
	c.lock.Unlock()

	if !initialized || interactive {
		return
	}

	engine.RemoveTickListener(c)
	engine.Stop()
}

// Tick dispatches all the scenario events that are due at the current time.
func (c *Controller) Tick(now, _ timing.VTime) error {
	err := c.spendTick(now)
	if err != nil {
		return err
	}

	for {
		evt, due := c.pollDue(now)
		if !due {
			break
		}

		if c.markStarted() {
			c.logger.Info("scenario started", "time", now)

			err = c.dispatchRunEvent(RunStarted, now)
			if err != nil {
				return err
			}
		}

		err = c.dispatcher.Dispatch(evt.withIssuer(c))
		if err != nil {
			return err
		}
	}

	return c.finishIfDrained(now)
}

// AfterTick does nothing.
func (c *Controller) AfterTick(_, _ timing.VTime) error {
	return nil
}

func (c *Controller) spendTick(now timing.VTime) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	if !c.initialized {
		return &ConfigurationError{
			Reason: "controller must be initialized before it ticks",
		}
	}

	if !c.interactive && c.ticksLeft == 0 {
		c.logger.Info("tick budget exhausted", "time", now)
		c.engine.Stop()
	}

	if c.ticksLeft >= 0 {
		c.logger.Debug("ticks to end", "ticks_left", c.ticksLeft)
		c.ticksLeft--
	}

	return nil
}

func (c *Controller) pollDue(now timing.VTime) (TimedEvent, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()

	evt, found := c.queue.Peek()
	if !found || evt.Time() > now {
		return TimedEvent{}, false
	}

	return c.queue.Poll(), true
}

func (c *Controller) markStarted() bool {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.status != NotStarted {
		return false
	}

	c.status = Started

	return true
}

func (c *Controller) finishIfDrained(now timing.VTime) error {
	c.lock.Lock()
	if c.queue.Len() > 0 || c.status == Finished {
		c.lock.Unlock()
		return nil
	}

	wasStarted := c.status == Started
	c.status = Finished
	engine := c.engine
	c.lock.Unlock()

	if !wasStarted {
		err := c.dispatchRunEvent(RunStarted, now)
		if err != nil {
			return err
		}
	}

	c.logger.Info("scenario finished", "time", now)
	engine.RemoveTickListener(c)

	return c.dispatchRunEvent(RunFinished, now)
}

func (c *Controller) dispatchRunEvent(
	t *eventing.Type,
	now timing.VTime,
) error {
	return c.dispatcher.Dispatch(RunEvent{
		EventBase: eventing.NewEventBase(t, c),
		Time:      now,
	})
}

// Handle routes a scenario event through the handler table. An event that no
// handler accepts fails with an *UnhandledEventError, which aborts the run.
func (c *Controller) Handle(e eventing.Event) error {
	evt, ok := e.(TimedEvent)
	if !ok {
		return fmt.Errorf("scenario: unexpected event %T", e)
	}

	err := c.handlers.handle(evt)
	if err != nil {
		c.logger.Warn("event not handled",
			"type", evt.Type().String(),
			"time", evt.Time(),
			"error", err)
	}

	return err
}
