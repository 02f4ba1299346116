package timing

import "github.com/sarchlab/pdpsim/eventing"

// Event types dispatched by an engine when its tick loop starts and ends.
var (
	Started = &eventing.Type{Name: "EngineStarted"}
	Stopped = &eventing.Type{Name: "EngineStopped"}
)

// LifecycleTypes returns the vocabulary of an engine's event API.
func LifecycleTypes() eventing.TypeSet {
	return eventing.NewTypeSet(Started, Stopped)
}

// LifecycleEvent marks the start or the end of an engine run.
type LifecycleEvent struct {
	eventing.EventBase

	Time VTime
}
