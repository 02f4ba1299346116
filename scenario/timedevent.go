package scenario

import (
	"github.com/sarchlab/pdpsim/eventing"
	"github.com/sarchlab/pdpsim/pdp"
	"github.com/sarchlab/pdpsim/sim/timing"
)

// A TimedEvent is something a scenario declares to happen at a given time.
// The payload depends on the type, for example a pdp.ParcelDTO for
// AddParcel.
type TimedEvent struct {
	typ     *eventing.Type
	time    timing.VTime
	issuer  any
	payload any
}

// NewTimedEvent creates a TimedEvent.
func NewTimedEvent(t *eventing.Type, time timing.VTime, payload any) TimedEvent {
	return TimedEvent{typ: t, time: time, payload: payload}
}

// NewAddParcelEvent declares a parcel that becomes known at the given time.
func NewAddParcelEvent(time timing.VTime, dto pdp.ParcelDTO) TimedEvent {
	return NewTimedEvent(AddParcel, time, dto)
}

// NewAddVehicleEvent declares a vehicle that enters service at the given
// time.
func NewAddVehicleEvent(time timing.VTime, dto pdp.VehicleDTO) TimedEvent {
	return NewTimedEvent(AddVehicle, time, dto)
}

// NewAddDepotEvent declares a depot.
func NewAddDepotEvent(time timing.VTime, dto pdp.DepotDTO) TimedEvent {
	return NewTimedEvent(AddDepot, time, dto)
}

// NewTimeOutEvent marks the nominal end of the scenario.
func NewTimeOutEvent(time timing.VTime) TimedEvent {
	return NewTimedEvent(TimeOut, time, nil)
}

// Type returns the type of the event.
func (e TimedEvent) Type() *eventing.Type {
	return e.typ
}

// Issuer returns the controller that dispatched the event, or nil if it has
// not been dispatched.
func (e TimedEvent) Issuer() any {
	return e.issuer
}

// Time returns when the event is due.
func (e TimedEvent) Time() timing.VTime {
	return e.time
}

// Payload returns the data attached to the event.
func (e TimedEvent) Payload() any {
	return e.payload
}

func (e TimedEvent) withIssuer(issuer any) TimedEvent {
	e.issuer = issuer
	return e
}
