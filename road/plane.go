package road

import (
	"errors"
	"sync"

	"github.com/sarchlab/pdpsim/eventing"
)

// ErrUnknownUser is returned for objects that are not on the plane.
var ErrUnknownUser = errors.New("object is not on the road network")

// PlaneModel is a Model where objects travel in straight lines. It does no
// pathfinding and no speed limiting, a move always reaches its destination.
type PlaneModel struct {
	lock       sync.RWMutex
	positions  map[MovingUser]Point
	dispatcher *eventing.Dispatcher

	distanceUnit string
	speedUnit    string
}

// NewPlaneModel creates an empty PlaneModel.
func NewPlaneModel(distanceUnit, speedUnit string) *PlaneModel {
	return &PlaneModel{
		positions:    make(map[MovingUser]Point),
		dispatcher:   eventing.NewDispatcher(eventing.NewTypeSet(Move)),
		distanceUnit: distanceUnit,
		speedUnit:    speedUnit,
	}
}

// Add places an object at its start position.
func (m *PlaneModel) Add(u MovingUser) {
	m.lock.Lock()
	m.positions[u] = u.StartPosition()
	m.lock.Unlock()
}

// Remove takes an object off the plane.
func (m *PlaneModel) Remove(u MovingUser) {
	m.lock.Lock()
	delete(m.positions, u)
	m.lock.Unlock()
}

// Position returns where the object currently is.
func (m *PlaneModel) Position(u MovingUser) (Point, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	p, found := m.positions[u]
	if !found {
		return Point{}, ErrUnknownUser
	}

	return p, nil
}

// MoveTo moves the object to the destination and reports the move.
func (m *PlaneModel) MoveTo(u MovingUser, dest Point) error {
	m.lock.Lock()
	from, found := m.positions[u]
	if !found {
		m.lock.Unlock()
		return ErrUnknownUser
	}
	m.positions[u] = dest
	m.lock.Unlock()

	evt := MoveEvent{
		EventBase: eventing.NewEventBase(Move, m),
		User:      u,
		Distance:  Distance(from, dest),
		Position:  dest,
	}

	return m.dispatcher.Dispatch(evt)
}

// DistanceUnit returns the unit distances are measured in.
func (m *PlaneModel) DistanceUnit() string {
	return m.distanceUnit
}

// SpeedUnit returns the unit speeds are measured in.
func (m *PlaneModel) SpeedUnit() string {
	return m.speedUnit
}

// EventAPI allows subscribing to Move events.
func (m *PlaneModel) EventAPI() eventing.API {
	return m.dispatcher.PublicAPI()
}
