package eventing

import (
	"sync"
	"sync/atomic"
)

// API is the subscribe-only view of a Dispatcher.
type API interface {
	// Register subscribes the listener to the given types. All types must be
	// part of the bus vocabulary, otherwise nothing is registered and a
	// *ConfigurationError is returned.
	Register(l Listener, types ...*Type) error

	// Unregister removes the listener from the given types, or from all types
	// when none is given.
	Unregister(l Listener, types ...*Type)

	// HasListener tells if the listener is subscribed to the type.
	HasListener(l Listener, t *Type) bool

	// Types returns the vocabulary of the bus.
	Types() TypeSet
}

// A Dispatcher delivers events synchronously to the listeners registered for
// their type, in registration order.
//
// Listeners are compared by identity, so they must be comparable values,
// typically pointers. A listener may unregister itself or others while it is
// handling an event; the change applies from the next dispatch on. A listener
// must not dispatch on the same Dispatcher while handling one of its events,
// such a call returns ErrReentrantDispatch.
type Dispatcher struct {
	types TypeSet

	lock      sync.RWMutex
	listeners map[*Type][]Listener

	dispatching atomic.Bool
}

// NewDispatcher creates a Dispatcher that can deliver events of the given
// types.
func NewDispatcher(types TypeSet) *Dispatcher {
	return &Dispatcher{
		types:     types,
		listeners: make(map[*Type][]Listener, types.Len()),
	}
}

// Types returns the vocabulary of the dispatcher.
func (d *Dispatcher) Types() TypeSet {
	return d.types
}

// Register subscribes a listener to a set of types.
func (d *Dispatcher) Register(l Listener, types ...*Type) error {
	for _, t := range types {
		if !d.types.Contains(t) {
			return &ConfigurationError{
				Reason: "cannot register listener for type " + t.String(),
				Err:    ErrUnknownType,
			}
		}
	}

	d.lock.Lock()
	defer d.lock.Unlock()

	for _, t := range types {
		if d.indexOf(l, t) >= 0 {
			continue
		}

		d.listeners[t] = append(d.listeners[t], l)
	}

	return nil
}

// Unregister removes a listener from the given types, or from every type when
// no type is given.
func (d *Dispatcher) Unregister(l Listener, types ...*Type) {
	d.lock.Lock()
	defer d.lock.Unlock()

	if len(types) == 0 {
		for t := range d.listeners {
			d.remove(l, t)
		}

		return
	}

	for _, t := range types {
		d.remove(l, t)
	}
}

func (d *Dispatcher) remove(l Listener, t *Type) {
	i := d.indexOf(l, t)
	if i < 0 {
		return
	}

	old := d.listeners[t]
	list := make([]Listener, 0, len(old)-1)
	list = append(list, old[:i]...)
	list = append(list, old[i+1:]...)
	d.listeners[t] = list
}

func (d *Dispatcher) indexOf(l Listener, t *Type) int {
	for i, registered := range d.listeners[t] {
		if registered == l {
			return i
		}
	}

	return -1
}

// HasListener tells if the listener is subscribed to the type.
func (d *Dispatcher) HasListener(l Listener, t *Type) bool {
	d.lock.RLock()
	defer d.lock.RUnlock()

	return d.indexOf(l, t) >= 0
}

// NumListeners returns how many listeners are subscribed to the type.
func (d *Dispatcher) NumListeners(t *Type) int {
	d.lock.RLock()
	defer d.lock.RUnlock()

	return len(d.listeners[t])
}

// Dispatch delivers the event to every listener registered for its type. The
// first listener error stops the delivery and is returned.
func (d *Dispatcher) Dispatch(e Event) error {
	if !d.types.Contains(e.Type()) {
		return &ConfigurationError{
			Reason: "cannot dispatch event of type " + e.Type().String(),
			Err:    ErrUnknownType,
		}
	}

	if !d.dispatching.CompareAndSwap(false, true) {
		return ErrReentrantDispatch
	}
	defer d.dispatching.Store(false)

	d.lock.RLock()
	listeners := d.listeners[e.Type()]
	d.lock.RUnlock()

	for _, l := range listeners {
		err := l.Handle(e)
		if err != nil {
			return err
		}
	}

	return nil
}

// PublicAPI returns a view of the dispatcher that allows subscribing but not
// dispatching.
func (d *Dispatcher) PublicAPI() API {
	return publicAPI{d: d}
}

type publicAPI struct {
	d *Dispatcher
}

func (a publicAPI) Register(l Listener, types ...*Type) error {
	return a.d.Register(l, types...)
}

func (a publicAPI) Unregister(l Listener, types ...*Type) {
	a.d.Unregister(l, types...)
}

func (a publicAPI) HasListener(l Listener, t *Type) bool {
	return a.d.HasListener(l, t)
}

func (a publicAPI) Types() TypeSet {
	return a.d.Types()
}
