package pdp

import (
	"sync"

	"github.com/sarchlab/pdpsim/eventing"
	"github.com/sarchlab/pdpsim/sim/timing"
)

// BasicModel keeps track of parcels and vehicles and reports every change as
// an event. It applies no capacity, time window, or routing rules; callers
// decide when activities begin and end.
type BasicModel struct {
	lock       sync.Mutex
	parcels    []*Parcel
	vehicles   []*Vehicle
	dispatcher *eventing.Dispatcher
}

// NewBasicModel creates an empty BasicModel.
func NewBasicModel() *BasicModel {
	return &BasicModel{
		dispatcher: eventing.NewDispatcher(ModelTypes()),
	}
}

// EventAPI allows subscribing to the model events.
func (m *BasicModel) EventAPI() eventing.API {
	return m.dispatcher.PublicAPI()
}

// AddParcel accepts a parcel into the model.
func (m *BasicModel) AddParcel(p *Parcel, now timing.VTime) error {
	m.lock.Lock()
	m.parcels = append(m.parcels, p)
	m.lock.Unlock()

	return m.emit(NewParcel, now, p, nil)
}

// AddVehicle puts a vehicle into service.
func (m *BasicModel) AddVehicle(v *Vehicle, now timing.VTime) error {
	m.lock.Lock()
	m.vehicles = append(m.vehicles, v)
	m.lock.Unlock()

	return m.emit(NewVehicle, now, nil, v)
}

// BeginPickup reports that the vehicle starts picking up the parcel.
func (m *BasicModel) BeginPickup(v *Vehicle, p *Parcel, now timing.VTime) error {
	return m.emit(StartPickup, now, p, v)
}

// FinishPickup reports that the vehicle loaded the parcel.
func (m *BasicModel) FinishPickup(v *Vehicle, p *Parcel, now timing.VTime) error {
	return m.emit(EndPickup, now, p, v)
}

// BeginDelivery reports that the vehicle starts delivering the parcel.
func (m *BasicModel) BeginDelivery(v *Vehicle, p *Parcel, now timing.VTime) error {
	return m.emit(StartDelivery, now, p, v)
}

// FinishDelivery reports that the vehicle unloaded the parcel.
func (m *BasicModel) FinishDelivery(v *Vehicle, p *Parcel, now timing.VTime) error {
	return m.emit(EndDelivery, now, p, v)
}

// Parcels returns the parcels accepted so far.
func (m *BasicModel) Parcels() []*Parcel {
	m.lock.Lock()
	defer m.lock.Unlock()

	return append([]*Parcel(nil), m.parcels...)
}

// Vehicles returns the vehicles in service.
func (m *BasicModel) Vehicles() []*Vehicle {
	m.lock.Lock()
	defer m.lock.Unlock()

	return append([]*Vehicle(nil), m.vehicles...)
}

func (m *BasicModel) emit(
	t *eventing.Type,
	now timing.VTime,
	p *Parcel,
	v *Vehicle,
) error {
	evt := ModelEvent{
		EventBase: eventing.NewEventBase(t, m),
		Time:      now,
		Parcel:    p,
		Vehicle:   v,
	}

	return m.dispatcher.Dispatch(evt)
}
