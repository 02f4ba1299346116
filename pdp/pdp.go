// Package pdp defines the pickup-and-delivery objects and the events a
// pickup-and-delivery model reports about them.
package pdp

import (
	"github.com/sarchlab/pdpsim/eventing"
	"github.com/sarchlab/pdpsim/road"
	"github.com/sarchlab/pdpsim/sim/timing"
)

// ModelName is the name under which the pickup-and-delivery model is
// registered with the engine.
const ModelName = "pdp"

// Event types reported by a pickup-and-delivery model.
var (
	NewParcel     = &eventing.Type{Name: "NewParcel"}
	NewVehicle    = &eventing.Type{Name: "NewVehicle"}
	StartPickup   = &eventing.Type{Name: "StartPickup"}
	EndPickup     = &eventing.Type{Name: "EndPickup"}
	StartDelivery = &eventing.Type{Name: "StartDelivery"}
	EndDelivery   = &eventing.Type{Name: "EndDelivery"}
)

// ModelTypes returns the vocabulary of a pickup-and-delivery model.
func ModelTypes() eventing.TypeSet {
	return eventing.NewTypeSet(
		NewParcel, NewVehicle,
		StartPickup, EndPickup,
		StartDelivery, EndDelivery,
	)
}

// TimeWindow is the interval in which an activity is allowed to happen.
type TimeWindow struct {
	Begin timing.VTime
	End   timing.VTime
}

// ParcelDTO describes a parcel as declared by a scenario.
type ParcelDTO struct {
	Pickup           road.Point
	Delivery         road.Point
	PickupWindow     TimeWindow
	DeliveryWindow   TimeWindow
	PickupDuration   timing.VTime
	DeliveryDuration timing.VTime
	OrderArrivalTime timing.VTime
	Capacity         float64
}

// LatestPickupStart returns the last moment a pickup can begin and still end
// within the pickup window.
func (p ParcelDTO) LatestPickupStart() timing.VTime {
	return p.PickupWindow.End - p.PickupDuration
}

// LatestDeliveryStart returns the last moment a delivery can begin and still
// end within the delivery window.
func (p ParcelDTO) LatestDeliveryStart() timing.VTime {
	return p.DeliveryWindow.End - p.DeliveryDuration
}

// VehicleDTO describes a vehicle as declared by a scenario.
type VehicleDTO struct {
	StartPosition      road.Point
	Speed              float64
	Capacity           float64
	AvailabilityWindow TimeWindow
}

// DepotDTO describes a depot as declared by a scenario.
type DepotDTO struct {
	Position road.Point
}

// Parcel is a parcel that takes part in the simulation.
type Parcel struct {
	DTO ParcelDTO
}

// NewParcelFromDTO creates a parcel from its description.
func NewParcelFromDTO(dto ParcelDTO) *Parcel {
	return &Parcel{DTO: dto}
}

// Vehicle is a vehicle that takes part in the simulation.
type Vehicle struct {
	DTO VehicleDTO
}

// NewVehicleFromDTO creates a vehicle from its description.
func NewVehicleFromDTO(dto VehicleDTO) *Vehicle {
	return &Vehicle{DTO: dto}
}

// StartPosition returns the depot the vehicle starts from and returns to.
func (v *Vehicle) StartPosition() road.Point {
	return v.DTO.StartPosition
}

// ModelEvent reports a change to a parcel or a vehicle.
type ModelEvent struct {
	eventing.EventBase

	Time    timing.VTime
	Parcel  *Parcel
	Vehicle *Vehicle
}

// A Model is a pickup-and-delivery model that reports its changes.
type Model interface {
	EventAPI() eventing.API
}
