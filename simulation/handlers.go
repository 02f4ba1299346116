package simulation

import (
	"github.com/sarchlab/pdpsim/eventing"
	"github.com/sarchlab/pdpsim/pdp"
	"github.com/sarchlab/pdpsim/road"
	"github.com/sarchlab/pdpsim/scenario"
	"github.com/sarchlab/pdpsim/sim/timing"
)

type parcelAdder interface {
	AddParcel(p *pdp.Parcel, now timing.VTime) error
}

type vehicleAdder interface {
	AddVehicle(v *pdp.Vehicle, now timing.VTime) error
}

type userAdder interface {
	Add(u road.MovingUser)
}

// defaultHandlers returns the handlers that feed the scenario events into the
// models. Events whose payload has an unexpected type are not accepted.
func defaultHandlers(
	roadModel road.Model,
	pdpModel pdp.Model,
	engine timing.Engine,
) map[*eventing.Type]scenario.EventHandler {
	handlers := map[*eventing.Type]scenario.EventHandler{
		scenario.AddDepot:   acceptDepot,
		scenario.AddVehicle: addVehicle(roadModel, pdpModel),
		scenario.TimeOut:    timeOut(engine),
	}

	if adder, ok := pdpModel.(parcelAdder); ok {
		handlers[scenario.AddParcel] = addParcel(adder)
	}

	return handlers
}

func acceptDepot(evt scenario.TimedEvent) (bool, error) {
	_, ok := evt.Payload().(pdp.DepotDTO)
	return ok, nil
}

func addParcel(adder parcelAdder) scenario.EventHandler {
	return func(evt scenario.TimedEvent) (bool, error) {
		dto, ok := evt.Payload().(pdp.ParcelDTO)
		if !ok {
			return false, nil
		}

		err := adder.AddParcel(pdp.NewParcelFromDTO(dto), evt.Time())
		if err != nil {
			return false, err
		}

		return true, nil
	}
}

func addVehicle(
	roadModel road.Model,
	pdpModel pdp.Model,
) scenario.EventHandler {
	return func(evt scenario.TimedEvent) (bool, error) {
		dto, ok := evt.Payload().(pdp.VehicleDTO)
		if !ok {
			return false, nil
		}

		v := pdp.NewVehicleFromDTO(dto)

		if adder, ok := roadModel.(userAdder); ok {
			adder.Add(v)
		}

		if adder, ok := pdpModel.(vehicleAdder); ok {
			err := adder.AddVehicle(v, evt.Time())
			if err != nil {
				return false, err
			}
		}

		return true, nil
	}
}

func timeOut(engine timing.Engine) scenario.EventHandler {
	return func(scenario.TimedEvent) (bool, error) {
		engine.Stop()
		return true, nil
	}
}

// stopSignal closes the stopped channel of a simulation when its engine
// stops.
type stopSignal struct {
	s *Simulation
}

func (l stopSignal) Handle(eventing.Event) error {
	l.s.stopOnce.Do(func() { close(l.s.stopped) })
	return nil
}

// finishSignal stops the engine once the scenario is finished.
type finishSignal struct {
	engine timing.Engine
}

func (l finishSignal) Handle(eventing.Event) error {
	l.engine.Stop()
	return nil
}
