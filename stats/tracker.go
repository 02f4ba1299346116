package stats

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sarchlab/pdpsim/eventing"
	"github.com/sarchlab/pdpsim/pdp"
	"github.com/sarchlab/pdpsim/road"
	"github.com/sarchlab/pdpsim/scenario"
	"github.com/sarchlab/pdpsim/sim/timing"
)

// DefaultDepotThreshold is the distance under which a vehicle counts as being
// at its depot.
const DefaultDepotThreshold = 0.0001

// An EventSource is a component whose events the tracker listens to, usually
// the scenario controller.
type EventSource interface {
	EventAPI() eventing.API
}

// An Option configures a Tracker.
type Option func(t *Tracker)

// WithDepotThreshold sets the distance under which a vehicle counts as being
// at its depot. Moves shorter than the threshold do not count as moves.
func WithDepotThreshold(d float64) Option {
	return func(t *Tracker) {
		t.threshold = d
	}
}

// WithClock replaces the wall clock used to measure the computation time.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		t.clock = now
	}
}

// WithLogger sets the logger of the tracker.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tracker) {
		t.logger = logger
	}
}

// A Tracker derives the statistics of one run from the events of the
// scenario controller, the engine, the road model, and the
// pickup-and-delivery model. It subscribes once and stays subscribed for the
// whole run.
type Tracker struct {
	engine     timing.Engine
	roadModel  road.Model
	dispatcher *eventing.Dispatcher
	threshold  float64
	clock      func() time.Time
	logger     *slog.Logger

	lock sync.Mutex

	totalParcels    int
	acceptedParcels int
	totalVehicles   int
	totalDepots     int

	totalDistance  float64
	distances      map[road.MovingUser]float64
	arrivalAtDepot map[road.MovingUser]timing.VTime

	totalPickups      int
	totalDeliveries   int
	pickupTardiness   timing.VTime
	deliveryTardiness timing.VTime

	started         bool
	stopped         bool
	startTimeReal   time.Time
	startTimeSim    timing.VTime
	computationTime time.Duration
	simulationTime  timing.VTime

	simFinish       bool
	scenarioEndTime timing.VTime
}

// NewTracker creates a Tracker for a run. The engine must provide a road.Model
// named road.ModelName and a pdp.Model named pdp.ModelName.
func NewTracker(
	source EventSource,
	engine timing.Engine,
	opts ...Option,
) (*Tracker, error) {
	roadModel, ok := timing.ModelAs[road.Model](engine.Models(), road.ModelName)
	if !ok {
		return nil, &CollaboratorMissingError{Name: road.ModelName}
	}

	pdpModel, ok := timing.ModelAs[pdp.Model](engine.Models(), pdp.ModelName)
	if !ok {
		return nil, &CollaboratorMissingError{Name: pdp.ModelName}
	}

	t := &Tracker{
		engine:         engine,
		roadModel:      roadModel,
		dispatcher:     eventing.NewDispatcher(Types()),
		threshold:      DefaultDepotThreshold,
		clock:          time.Now,
		logger:         slog.Default(),
		distances:      make(map[road.MovingUser]float64),
		arrivalAtDepot: make(map[road.MovingUser]timing.VTime),
	}

	for _, o := range opts {
		o(t)
	}

	t.logger = t.logger.With("component", "stats")

	err := t.subscribe(source.EventAPI(), pdpModel.EventAPI())
	if err != nil {
		return nil, err
	}

	return t, nil
}

func (t *Tracker) subscribe(source, pdpAPI eventing.API) error {
	var sourceTypes []*eventing.Type
	for _, typ := range []*eventing.Type{
		scenario.RunStarted, scenario.RunFinished,
		scenario.AddDepot, scenario.AddParcel, scenario.AddVehicle,
		scenario.TimeOut,
	} {
		if source.Types().Contains(typ) {
			sourceTypes = append(sourceTypes, typ)
		}
	}

	subscriptions := []struct {
		api   eventing.API
		types []*eventing.Type
	}{
		{source, sourceTypes},
		{t.engine.EventAPI(), []*eventing.Type{timing.Started, timing.Stopped}},
		{t.roadModel.EventAPI(), []*eventing.Type{road.Move}},
		{pdpAPI, []*eventing.Type{
			pdp.StartPickup, pdp.EndPickup,
			pdp.StartDelivery, pdp.EndDelivery,
			pdp.NewParcel, pdp.NewVehicle,
		}},
	}

	for i, s := range subscriptions {
		err := s.api.Register(t, s.types...)
		if err == nil {
			continue
		}

		for _, joined := range subscriptions[:i] {
			joined.api.Unregister(t, joined.types...)
		}

		return fmt.Errorf("stats: cannot subscribe: %w", err)
	}

	return nil
}

// EventAPI allows subscribing to the events derived by the tracker.
func (t *Tracker) EventAPI() eventing.API {
	return t.dispatcher.PublicAPI()
}

// Handle updates the statistics with an event of one of the tracked buses. An
// event whose type is tracked but whose value is not the struct the tracked
// bus dispatches fails with an *UnexpectedEventError.
func (t *Tracker) Handle(e eventing.Event) error {
	t.lock.Lock()
	derived, err := t.update(e)
	t.lock.Unlock()

	if err != nil || derived == nil {
		return err
	}

	return t.dispatcher.Dispatch(derived)
}

func (t *Tracker) update(e eventing.Event) (eventing.Event, error) {
	switch e.Type() {
	case timing.Started:
		t.started = true
		t.stopped = false
		t.startTimeReal = t.clock()
		t.startTimeSim = t.engine.CurrentTime()
		t.computationTime = 0
	case timing.Stopped:
		t.stopped = true
		t.computationTime = t.clock().Sub(t.startTimeReal)
		t.simulationTime = t.engine.CurrentTime() - t.startTimeSim
	case road.Move:
		evt, ok := e.(road.MoveEvent)
		if !ok {
			return nil, &UnexpectedEventError{Event: e}
		}

		return t.move(evt), nil
	case pdp.StartPickup, pdp.StartDelivery, pdp.NewVehicle:
		evt, ok := e.(pdp.ModelEvent)
		if !ok {
			return nil, &UnexpectedEventError{Event: e}
		}

		return t.modelEvent(evt), nil
	case pdp.EndPickup:
		t.totalPickups++
	case pdp.EndDelivery:
		t.totalDeliveries++
	case scenario.AddParcel:
		t.totalParcels++
	case pdp.NewParcel:
		t.acceptedParcels++
	case scenario.AddVehicle:
		t.totalVehicles++
	case scenario.AddDepot:
		t.totalDepots++
	case scenario.TimeOut:
		evt, ok := e.(scenario.TimedEvent)
		if !ok {
			return nil, &UnexpectedEventError{Event: e}
		}

		t.simFinish = true
		t.scenarioEndTime = evt.Time()
	case scenario.RunStarted, scenario.RunFinished:
		evt, ok := e.(scenario.RunEvent)
		if !ok {
			return nil, &UnexpectedEventError{Event: e}
		}

		t.logger.Debug("run event", "type", e.Type().String(), "time", evt.Time)
	}

	return nil, nil
}

func (t *Tracker) modelEvent(evt pdp.ModelEvent) eventing.Event {
	switch evt.Type() {
	case pdp.StartPickup:
		return t.tardiness(PickupTardiness, evt,
			evt.Parcel.DTO.LatestPickupStart(), &t.pickupTardiness)
	case pdp.StartDelivery:
		return t.tardiness(DeliveryTardiness, evt,
			evt.Parcel.DTO.LatestDeliveryStart(), &t.deliveryTardiness)
	default:
		t.arrivalAtDepot[evt.Vehicle] = t.engine.CurrentTime()
		return nil
	}
}

func (t *Tracker) move(evt road.MoveEvent) eventing.Event {
	t.distances[evt.User] += evt.Distance
	t.totalDistance += evt.Distance

	home := evt.User.StartPosition()
	if road.Distance(evt.Position, home) >= t.threshold {
		delete(t.arrivalAtDepot, evt.User)
		return nil
	}

	if evt.Distance <= t.threshold {
		return nil
	}

	now := t.engine.CurrentTime()
	t.arrivalAtDepot[evt.User] = now

	if len(t.arrivalAtDepot) != t.totalVehicles {
		return nil
	}

	t.logger.Info("all vehicles at depot", "time", now)

	return DepotEvent{
		EventBase: eventing.NewEventBase(AllVehiclesAtDepot, t),
		Time:      now,
	}
}

func (t *Tracker) tardiness(
	typ *eventing.Type,
	evt pdp.ModelEvent,
	latestStart timing.VTime,
	sum *timing.VTime,
) eventing.Event {
	if evt.Time <= latestStart {
		return nil
	}

	tardiness := evt.Time - latestStart
	*sum += tardiness

	t.logger.Debug("late activity",
		"type", typ.String(),
		"time", evt.Time,
		"tardiness", tardiness)

	return TardinessEvent{
		EventBase: eventing.NewEventBase(typ, t),
		Parcel:    evt.Parcel,
		Vehicle:   evt.Vehicle,
		Tardiness: tardiness,
		Time:      evt.Time,
	}
}

// Snapshot returns the statistics so far. The computation time is final once
// the engine has stopped and a live estimate before that.
func (t *Tracker) Snapshot() Statistics {
	t.lock.Lock()
	defer t.lock.Unlock()

	var overTime timing.VTime
	if t.simFinish {
		for _, arrival := range t.arrivalAtDepot {
			if arrival > t.scenarioEndTime {
				overTime += arrival - t.scenarioEndTime
			}
		}
	}

	computationTime := t.computationTime
	if t.started && !t.stopped {
		computationTime = t.clock().Sub(t.startTimeReal)
	}

	return Statistics{
		TotalDistance:     t.totalDistance,
		TotalPickups:      t.totalPickups,
		TotalDeliveries:   t.totalDeliveries,
		TotalParcels:      t.totalParcels,
		AcceptedParcels:   t.acceptedParcels,
		PickupTardiness:   t.pickupTardiness,
		DeliveryTardiness: t.deliveryTardiness,
		ComputationTime:   computationTime,
		SimulationTime:    t.simulationTime,
		CurrentTime:       t.engine.CurrentTime(),
		SimFinish:         t.simFinish,
		VehiclesAtDepot:   len(t.arrivalAtDepot),
		OverTime:          overTime,
		TotalVehicles:     t.totalVehicles,
		MovedVehicles:     len(t.distances),
		TotalDepots:       t.totalDepots,
		TimeUnit:          t.engine.TimeUnit(),
		DistanceUnit:      t.roadModel.DistanceUnit(),
		SpeedUnit:         t.roadModel.SpeedUnit(),
	}
}
