package timing

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/sarchlab/pdpsim/eventing"
)

var (
	// ErrNotConfigured is returned when starting an engine that has not been
	// configured.
	ErrNotConfigured = errors.New("engine is not configured")

	// ErrAlreadyConfigured is returned when configuring an engine twice.
	ErrAlreadyConfigured = errors.New("engine is already configured")
)

// A TickEngine is an Engine that advances time by a fixed step on every tick.
type TickEngine struct {
	HookableBase

	timeLock sync.RWMutex
	now      VTime
	step     VTime
	unit     string

	listenerLock sync.Mutex
	listeners    []TickListener

	models     *Registry
	dispatcher *eventing.Dispatcher

	configured    atomic.Bool
	stopRequested atomic.Bool

	isPaused     bool
	isPausedLock sync.Mutex
	pauseLock    sync.Mutex

	singleRunLock sync.Mutex
}

// NewTickEngine creates a TickEngine whose ticks are step units long.
func NewTickEngine(step VTime, unit string) *TickEngine {
	if step <= 0 {
		panic(fmt.Sprintf("tick length must be positive, got %d", step))
	}

	return &TickEngine{
		step:       step,
		unit:       unit,
		models:     NewRegistry(),
		dispatcher: eventing.NewDispatcher(LifecycleTypes()),
	}
}

// RegisterModel adds a model to the engine. Models can only be registered
// before the engine is configured.
func (e *TickEngine) RegisterModel(name string, model any) error {
	return e.models.Register(name, model)
}

// Models returns the models registered with the engine.
func (e *TickEngine) Models() ModelProvider {
	return e.models
}

// Configure freezes the model registry.
func (e *TickEngine) Configure() error {
	if !e.configured.CompareAndSwap(false, true) {
		return ErrAlreadyConfigured
	}

	e.models.Freeze()

	return nil
}

// AddTickListener subscribes a listener to ticks. Adding a listener twice has
// no effect.
func (e *TickEngine) AddTickListener(l TickListener) {
	e.listenerLock.Lock()
	defer e.listenerLock.Unlock()

	for _, registered := range e.listeners {
		if registered == l {
			return
		}
	}

	e.listeners = append(e.listeners, l)
}

// RemoveTickListener unsubscribes a listener.
func (e *TickEngine) RemoveTickListener(l TickListener) {
	e.listenerLock.Lock()
	defer e.listenerLock.Unlock()

	for i, registered := range e.listeners {
		if registered == l {
			list := make([]TickListener, 0, len(e.listeners)-1)
			list = append(list, e.listeners[:i]...)
			list = append(list, e.listeners[i+1:]...)
			e.listeners = list

			return
		}
	}
}

// NumTickListeners returns the number of subscribed tick listeners.
func (e *TickEngine) NumTickListeners() int {
	e.listenerLock.Lock()
	defer e.listenerLock.Unlock()

	return len(e.listeners)
}

func (e *TickEngine) currentListeners() []TickListener {
	e.listenerLock.Lock()
	defer e.listenerLock.Unlock()

	return e.listeners
}

func (e *TickEngine) readNow() VTime {
	e.timeLock.RLock()
	t := e.now
	e.timeLock.RUnlock()

	return t
}

func (e *TickEngine) writeNow(t VTime) {
	e.timeLock.Lock()
	e.now = t
	e.timeLock.Unlock()
}

// Start runs ticks until Stop is called or a listener returns an error. The
// Started event is dispatched before the first tick and the Stopped event
// after the last one, also when the run is aborted by an error.
func (e *TickEngine) Start() error {
	if !e.configured.Load() {
		return ErrNotConfigured
	}

	e.singleRunLock.Lock()
	defer e.singleRunLock.Unlock()

	e.stopRequested.Store(false)

	err := e.dispatchLifecycle(Started)
	if err != nil {
		return err
	}

	runErr := e.loop()

	err = e.dispatchLifecycle(Stopped)
	if runErr != nil {
		return runErr
	}

	return err
}

func (e *TickEngine) loop() error {
	for !e.stopRequested.Load() {
		err := e.tick()
		if err != nil {
			return err
		}
	}

	return nil
}

func (e *TickEngine) tick() error {
	e.pauseLock.Lock()
	defer e.pauseLock.Unlock()

	now := e.readNow()
	hookCtx := HookCtx{
		Engine: e,
		Pos:    HookPosBeforeTick,
		Now:    now,
		Step:   e.step,
	}
	e.InvokeHook(hookCtx)

	listeners := e.currentListeners()
	for _, l := range listeners {
		err := l.Tick(now, e.step)
		if err != nil {
			return fmt.Errorf("tick at %d: %w", now, err)
		}
	}

	for _, l := range listeners {
		err := l.AfterTick(now, e.step)
		if err != nil {
			return fmt.Errorf("after tick at %d: %w", now, err)
		}
	}

	hookCtx.Pos = HookPosAfterTick
	e.InvokeHook(hookCtx)

	e.writeNow(now + e.step)

	return nil
}

func (e *TickEngine) dispatchLifecycle(t *eventing.Type) error {
	evt := LifecycleEvent{
		EventBase: eventing.NewEventBase(t, e),
		Time:      e.readNow(),
	}

	return e.dispatcher.Dispatch(evt)
}

// Stop requests the tick loop to end once the current tick is complete.
func (e *TickEngine) Stop() {
	e.stopRequested.Store(true)
}

// Pause prevents the TickEngine from starting more ticks.
func (e *TickEngine) Pause() {
	e.isPausedLock.Lock()
	defer e.isPausedLock.Unlock()

	if e.isPaused {
		return
	}

	e.pauseLock.Lock()
	e.isPaused = true
}

// Continue allows the TickEngine to start more ticks.
func (e *TickEngine) Continue() {
	e.isPausedLock.Lock()
	defer e.isPausedLock.Unlock()

	if !e.isPaused {
		return
	}

	e.pauseLock.Unlock()
	e.isPaused = false
}

// CurrentTime returns the time of the next tick to be run.
func (e *TickEngine) CurrentTime() VTime {
	return e.readNow()
}

// TimeStep returns the length of a tick.
func (e *TickEngine) TimeStep() VTime {
	return e.step
}

// TimeUnit returns the unit of simulated time.
func (e *TickEngine) TimeUnit() string {
	return e.unit
}

// EventAPI allows subscribing to the Started and Stopped events.
func (e *TickEngine) EventAPI() eventing.API {
	return e.dispatcher.PublicAPI()
}
