package scenario

import (
	"github.com/sarchlab/pdpsim/eventing"
	"github.com/sarchlab/pdpsim/sim/timing"
)

// Event types dispatched by the controller itself to mark the run lifecycle.
var (
	RunStarted  = &eventing.Type{Name: "RunStarted"}
	RunFinished = &eventing.Type{Name: "RunFinished"}
)

// Standard scenario event types. Each of them can be given a dedicated
// handler with Builder.WithHandler.
var (
	AddParcel     = &eventing.Type{Name: "AddParcel"}
	RemoveParcel  = &eventing.Type{Name: "RemoveParcel"}
	AddVehicle    = &eventing.Type{Name: "AddVehicle"}
	RemoveVehicle = &eventing.Type{Name: "RemoveVehicle"}
)

// Scenario event types that pickup-and-delivery scenarios declare on top of
// the standard ones.
var (
	AddDepot = &eventing.Type{Name: "AddDepot"}
	TimeOut  = &eventing.Type{Name: "TimeOut"}
)

// LifecycleTypes returns the types the controller adds to every scenario
// vocabulary.
func LifecycleTypes() eventing.TypeSet {
	return eventing.NewTypeSet(RunStarted, RunFinished)
}

// StandardTypes returns the entity added and removed types.
func StandardTypes() eventing.TypeSet {
	return eventing.NewTypeSet(AddParcel, RemoveParcel, AddVehicle, RemoveVehicle)
}

// PDPTypes returns the vocabulary of a pickup-and-delivery scenario.
func PDPTypes() eventing.TypeSet {
	return eventing.NewTypeSet(AddDepot, AddParcel, AddVehicle, TimeOut)
}

// RunEvent is dispatched by the controller when the run starts and when it
// finishes.
type RunEvent struct {
	eventing.EventBase

	Time timing.VTime
}

// RunStatus is the position of a run in its lifecycle.
type RunStatus int

// The lifecycle of a run.
const (
	NotStarted RunStatus = iota
	Started
	Finished
)

func (s RunStatus) String() string {
	switch s {
	case NotStarted:
		return "NotStarted"
	case Started:
		return "Started"
	case Finished:
		return "Finished"
	default:
		return "Unknown"
	}
}
