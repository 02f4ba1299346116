// Package simulation assembles the engine, the models, the scenario
// controller, and the observers of a pickup-and-delivery run.
package simulation

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/sarchlab/pdpsim/datarecording"
	"github.com/sarchlab/pdpsim/monitoring"
	"github.com/sarchlab/pdpsim/scenario"
	"github.com/sarchlab/pdpsim/sim/timing"
	"github.com/sarchlab/pdpsim/stats"
)

// ErrAlreadyRun is returned when running a simulation for the second time.
var ErrAlreadyRun = errors.New("simulation: already run")

// A Simulation plays one scenario on a tick engine.
type Simulation struct {
	id     string
	tracer trace.Tracer
	logger *slog.Logger

	scenario   *scenario.Scenario
	engine     *timing.TickEngine
	controller *scenario.Controller
	tracker    *stats.Tracker
	monitor    *monitoring.Monitor

	recorder    datarecording.DataRecorder
	runRecorder *datarecording.RunRecorder

	stopped  chan struct{}
	stopOnce sync.Once
	ran      atomic.Bool
}

// ID returns the unique identifier of the run.
func (s *Simulation) ID() string {
	return s.id
}

// Engine returns the engine that drives the run.
func (s *Simulation) Engine() *timing.TickEngine {
	return s.engine
}

// Controller returns the scenario controller.
func (s *Simulation) Controller() *scenario.Controller {
	return s.controller
}

// Tracker returns the statistics tracker.
func (s *Simulation) Tracker() *stats.Tracker {
	return s.tracker
}

// Monitor returns the web monitor, or nil if monitoring is disabled.
func (s *Simulation) Monitor() *monitoring.Monitor {
	return s.monitor
}

// Run plays the scenario and returns the statistics of the run. In
// interactive mode, Run returns once the engine stopped for the first time.
// Cancelling the context stops the engine. The statistics gathered so far are
// returned also when the run fails.
func (s *Simulation) Run(ctx context.Context) (stats.Statistics, error) {
	if !s.ran.CompareAndSwap(false, true) {
		return s.tracker.Snapshot(), ErrAlreadyRun
	}

	ctx, span := s.tracer.Start(ctx, "pdpsim.run",
		trace.WithAttributes(
			attribute.String("run.id", s.id),
			attribute.Int("scenario.events", s.scenario.Len()),
			attribute.Bool("run.interactive", s.controller.IsInteractive()),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
	defer span.End()

	s.logger.Info("run started", "run_id", s.id)

	err := s.wait(ctx)

	st := s.tracker.Snapshot()
	if s.runRecorder != nil {
		s.runRecorder.RecordStatistics(st)
	}

	span.SetAttributes(
		attribute.Int64("sim.time", st.CurrentTime),
		attribute.Bool("sim.finished", st.SimFinish),
		attribute.Float64("stats.total_distance", st.TotalDistance),
		attribute.Int64("stats.tardiness", st.Tardiness()),
	)

	if err != nil {
		s.logger.Error("run failed", "run_id", s.id, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return st, err
	}

	s.logger.Info("run finished", "run_id", s.id, "time", st.CurrentTime)
	span.SetStatus(codes.Ok, "")

	return st, nil
}

func (s *Simulation) wait(ctx context.Context) error {
	h, err := s.controller.Start()
	if err != nil {
		return err
	}

	if s.controller.IsInteractive() {
		select {
		case <-s.stopped:
			return nil
		case <-ctx.Done():
			s.engine.Stop()
			return ctx.Err()
		}
	}

	select {
	case <-h.Done():
		return h.Wait()
	case <-ctx.Done():
		s.controller.Stop()
		_ = h.Wait()

		return ctx.Err()
	}
}

// Terminate releases the recorder and shuts the monitor down.
func (s *Simulation) Terminate() error {
	var errs []error

	if s.recorder != nil {
		errs = append(errs, s.recorder.Close())
	}

	errs = append(errs, s.closeMonitor())

	return errors.Join(errs...)
}

func (s *Simulation) closeMonitor() error {
	if s.monitor == nil {
		return nil
	}

	return s.monitor.Close()
}
