package eventing

// An Event is something that happened and that listeners may react to.
type Event interface {
	// Type returns the type of the event.
	Type() *Type

	// Issuer returns the object that issued the event.
	Issuer() any
}

// EventBase provides the basic fields and getters for other events.
type EventBase struct {
	typ    *Type
	issuer any
}

// NewEventBase creates a new EventBase.
func NewEventBase(t *Type, issuer any) EventBase {
	return EventBase{typ: t, issuer: issuer}
}

// Type returns the type of the event.
func (e EventBase) Type() *Type {
	return e.typ
}

// Issuer returns the object that issued the event.
func (e EventBase) Issuer() any {
	return e.issuer
}

// A Listener reacts to dispatched events.
//
// Returning an error aborts the delivery of the event to the listeners that
// are registered after this one. The error is returned to the dispatcher's
// caller unchanged.
type Listener interface {
	Handle(e Event) error
}
