// Package road defines what the simulation needs to know about the road
// network: where moving objects are and how far they traveled.
package road

import (
	"math"

	"github.com/sarchlab/pdpsim/eventing"
)

// ModelName is the name under which the road model is registered with the
// engine.
const ModelName = "road"

// Move is dispatched every time an object travels over the road network.
var Move = &eventing.Type{Name: "Move"}

// Point is a location on the plane.
type Point struct {
	X, Y float64
}

// Distance returns the euclidean distance between two points.
func Distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// A MovingUser is an object that moves over the road network and has a home
// position it starts from.
type MovingUser interface {
	StartPosition() Point
}

// MoveEvent reports a single movement of a MovingUser.
type MoveEvent struct {
	eventing.EventBase

	User     MovingUser
	Distance float64
	Position Point
}

// A Model tracks the positions of the objects on the road network.
type Model interface {
	// Position returns where the object currently is.
	Position(u MovingUser) (Point, error)

	// DistanceUnit returns the unit distances are measured in.
	DistanceUnit() string

	// SpeedUnit returns the unit speeds are measured in.
	SpeedUnit() string

	// EventAPI allows subscribing to Move events.
	EventAPI() eventing.API
}
