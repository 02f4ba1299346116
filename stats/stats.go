// Package stats aggregates the statistics of a pickup-and-delivery run.
//
// A Tracker listens to the scenario controller, the engine, the road model,
// and the pickup-and-delivery model. From these streams it derives distances,
// completed activities, tardiness, and whether the vehicles are back at their
// depots. Snapshot returns the statistics at any point of the run.
package stats

import (
	"fmt"
	"strings"
	"time"

	"github.com/sarchlab/pdpsim/eventing"
	"github.com/sarchlab/pdpsim/pdp"
	"github.com/sarchlab/pdpsim/sim/timing"
)

// Event types dispatched by the tracker.
var (
	PickupTardiness    = &eventing.Type{Name: "PickupTardiness"}
	DeliveryTardiness  = &eventing.Type{Name: "DeliveryTardiness"}
	AllVehiclesAtDepot = &eventing.Type{Name: "AllVehiclesAtDepot"}
)

// Types returns the vocabulary of the tracker bus.
func Types() eventing.TypeSet {
	return eventing.NewTypeSet(
		PickupTardiness, DeliveryTardiness, AllVehiclesAtDepot)
}

// TardinessEvent reports a pickup or a delivery that started too late to end
// within its time window.
type TardinessEvent struct {
	eventing.EventBase

	Parcel    *pdp.Parcel
	Vehicle   *pdp.Vehicle
	Tardiness timing.VTime
	Time      timing.VTime
}

// DepotEvent reports that every vehicle is back at its depot.
type DepotEvent struct {
	eventing.EventBase

	Time timing.VTime
}

// Statistics is a point-in-time summary of a run.
type Statistics struct {
	TotalDistance     float64
	TotalPickups      int
	TotalDeliveries   int
	TotalParcels      int
	AcceptedParcels   int
	PickupTardiness   timing.VTime
	DeliveryTardiness timing.VTime
	ComputationTime   time.Duration
	SimulationTime    timing.VTime
	CurrentTime       timing.VTime
	SimFinish         bool
	VehiclesAtDepot   int
	OverTime          timing.VTime
	TotalVehicles     int
	MovedVehicles     int
	TotalDepots       int

	TimeUnit     string
	DistanceUnit string
	SpeedUnit    string
}

// Tardiness returns the total tardiness of pickups and deliveries.
func (s Statistics) Tardiness() timing.VTime {
	return s.PickupTardiness + s.DeliveryTardiness
}

func (s Statistics) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "distance: %.4f %s\n", s.TotalDistance, s.DistanceUnit)
	fmt.Fprintf(&b, "parcels: %d declared, %d accepted\n",
		s.TotalParcels, s.AcceptedParcels)
	fmt.Fprintf(&b, "pickups: %d, tardiness %d %s\n",
		s.TotalPickups, s.PickupTardiness, s.TimeUnit)
	fmt.Fprintf(&b, "deliveries: %d, tardiness %d %s\n",
		s.TotalDeliveries, s.DeliveryTardiness, s.TimeUnit)
	fmt.Fprintf(&b, "vehicles: %d, %d moved, %d at depot, over time %d %s\n",
		s.TotalVehicles, s.MovedVehicles, s.VehiclesAtDepot,
		s.OverTime, s.TimeUnit)
	fmt.Fprintf(&b, "depots: %d\n", s.TotalDepots)
	fmt.Fprintf(&b, "time: %d %s, simulated %d %s, finished %t\n",
		s.CurrentTime, s.TimeUnit, s.SimulationTime, s.TimeUnit, s.SimFinish)
	fmt.Fprintf(&b, "computation: %s", s.ComputationTime)

	return b.String()
}
