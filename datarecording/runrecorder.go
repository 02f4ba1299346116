package datarecording

import (
	"context"
	"fmt"

	"github.com/sarchlab/pdpsim/eventing"
	"github.com/sarchlab/pdpsim/stats"
)

// Tables written by a RunRecorder.
const (
	StatisticsTable = "run_statistics"
	TardinessTable  = "tardiness"
)

// StatisticsEntry is the row recorded for the final statistics of a run.
type StatisticsEntry struct {
	RunID             string
	TotalDistance     float64
	TotalPickups      int
	TotalDeliveries   int
	TotalParcels      int
	AcceptedParcels   int
	PickupTardiness   int64
	DeliveryTardiness int64
	ComputationTimeNS int64
	SimulationTime    int64
	CurrentTime       int64
	SimFinish         bool
	VehiclesAtDepot   int
	OverTime          int64
	TotalVehicles     int
	MovedVehicles     int
	TotalDepots       int
	TimeUnit          string
	DistanceUnit      string
	SpeedUnit         string
}

// TardinessEntry is the row recorded for each late pickup or delivery.
type TardinessEntry struct {
	RunID     string
	Kind      string
	Time      int64
	Tardiness int64
}

// A RunRecorder records the tardiness events of a tracker as they happen and
// the final statistics of the run.
type RunRecorder struct {
	recorder DataRecorder
	runID    string
}

// NewRunRecorder creates the run tables and returns a recorder that writes
// to them.
func NewRunRecorder(recorder DataRecorder, runID string) *RunRecorder {
	recorder.CreateTable(StatisticsTable, StatisticsEntry{})
	recorder.CreateTable(TardinessTable, TardinessEntry{})

	return &RunRecorder{recorder: recorder, runID: runID}
}

// RunID returns the identifier of the recorded run.
func (r *RunRecorder) RunID() string {
	return r.runID
}

// Handle records a tardiness event.
func (r *RunRecorder) Handle(e eventing.Event) error {
	evt, ok := e.(stats.TardinessEvent)
	if !ok {
		return fmt.Errorf("datarecording: cannot record %s", e.Type())
	}

	r.recorder.InsertData(TardinessTable, TardinessEntry{
		RunID:     r.runID,
		Kind:      evt.Type().String(),
		Time:      evt.Time,
		Tardiness: evt.Tardiness,
	})

	return nil
}

// RecordStatistics records the statistics of the run and flushes.
func (r *RunRecorder) RecordStatistics(s stats.Statistics) {
	r.recorder.InsertData(StatisticsTable, StatisticsEntry{
		RunID:             r.runID,
		TotalDistance:     s.TotalDistance,
		TotalPickups:      s.TotalPickups,
		TotalDeliveries:   s.TotalDeliveries,
		TotalParcels:      s.TotalParcels,
		AcceptedParcels:   s.AcceptedParcels,
		PickupTardiness:   s.PickupTardiness,
		DeliveryTardiness: s.DeliveryTardiness,
		ComputationTimeNS: s.ComputationTime.Nanoseconds(),
		SimulationTime:    s.SimulationTime,
		CurrentTime:       s.CurrentTime,
		SimFinish:         s.SimFinish,
		VehiclesAtDepot:   s.VehiclesAtDepot,
		OverTime:          s.OverTime,
		TotalVehicles:     s.TotalVehicles,
		MovedVehicles:     s.MovedVehicles,
		TotalDepots:       s.TotalDepots,
		TimeUnit:          s.TimeUnit,
		DistanceUnit:      s.DistanceUnit,
		SpeedUnit:         s.SpeedUnit,
	})

	r.recorder.Flush()
}

// MapRunTables maps the tables written by a RunRecorder so that they can be
// queried.
func MapRunTables(reader DataReader) {
	reader.MapTable(StatisticsTable, StatisticsEntry{})
	reader.MapTable(TardinessTable, TardinessEntry{})
}

// ReadStatistics returns the statistics of every run in a recording.
func ReadStatistics(
	ctx context.Context,
	reader DataReader,
) ([]*StatisticsEntry, error) {
	results, err := reader.Query(ctx, StatisticsTable, Filter{
		OrderBy: "RunID",
	})
	if err != nil {
		return nil, err
	}

	entries := make([]*StatisticsEntry, 0, len(results))
	for _, r := range results {
		entries = append(entries, r.(*StatisticsEntry))
	}

	return entries, nil
}

// ReadTardiness returns the late activities of one run in time order.
func ReadTardiness(
	ctx context.Context,
	reader DataReader,
	runID string,
) ([]*TardinessEntry, error) {
	results, err := reader.Query(ctx, TardinessTable, Filter{
		Where:   "RunID = ?",
		Args:    []any{runID},
		OrderBy: "Time",
	})
	if err != nil {
		return nil, err
	}

	entries := make([]*TardinessEntry, 0, len(results))
	for _, r := range results {
		entries = append(entries, r.(*TardinessEntry))
	}

	return entries, nil
}
