package simulation

import (
	"log"
	"log/slog"

	"github.com/rs/xid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/sarchlab/pdpsim/config"
	"github.com/sarchlab/pdpsim/datarecording"
	"github.com/sarchlab/pdpsim/eventing"
	"github.com/sarchlab/pdpsim/monitoring"
	"github.com/sarchlab/pdpsim/pdp"
	"github.com/sarchlab/pdpsim/road"
	"github.com/sarchlab/pdpsim/scenario"
	"github.com/sarchlab/pdpsim/sim/timing"
	"github.com/sarchlab/pdpsim/stats"
)

// Builder can be used to build a simulation.
type Builder struct {
	cfg           *config.Config
	roadModel     road.Model
	pdpModel      pdp.Model
	handlers      map[*eventing.Type]scenario.EventHandler
	customHandler scenario.EventHandler
	tracer        trace.Tracer
	logger        *slog.Logger
	tickLog       *log.Logger
	stopOnFinish  bool
}

// MakeBuilder creates a new builder.
func MakeBuilder() Builder {
	return Builder{
		stopOnFinish: true,
	}
}

// WithConfig sets the configuration of the run. Without it, the default
// configuration is used.
func (b Builder) WithConfig(cfg *config.Config) Builder {
	b.cfg = cfg
	return b
}

// WithRoadModel sets the road model. Without it, an empty plane is used.
func (b Builder) WithRoadModel(m road.Model) Builder {
	b.roadModel = m
	return b
}

// WithPDPModel sets the pickup-and-delivery model. Without it, a
// pdp.BasicModel is used.
func (b Builder) WithPDPModel(m pdp.Model) Builder {
	b.pdpModel = m
	return b
}

// WithHandler sets the handler of a scenario event type, replacing the
// default handler of that type if there is one.
func (b Builder) WithHandler(t *eventing.Type, h scenario.EventHandler) Builder {
	handlers := make(map[*eventing.Type]scenario.EventHandler, len(b.handlers)+1)
	for k, v := range b.handlers {
		handlers[k] = v
	}

	handlers[t] = h
	b.handlers = handlers

	return b
}

// WithCustomHandler sets the handler of the events no other handler accepts.
func (b Builder) WithCustomHandler(h scenario.EventHandler) Builder {
	b.customHandler = h
	return b
}

// WithTracer sets the tracer that records the run span. Without it, the
// tracer of the global provider is used.
func (b Builder) WithTracer(t trace.Tracer) Builder {
	b.tracer = t
	return b
}

// WithLogger sets the logger of all the parts of the simulation.
func (b Builder) WithLogger(logger *slog.Logger) Builder {
	b.logger = logger
	return b
}

// WithTickLog writes every tick of the engine into the logger.
func (b Builder) WithTickLog(logger *log.Logger) Builder {
	b.tickLog = logger
	return b
}

// WithoutStopOnFinish keeps the engine running after the last scenario
// event. The run then ends on a time out or when the tick budget is spent.
func (b Builder) WithoutStopOnFinish() Builder {
	b.stopOnFinish = false
	return b
}

// Build builds the simulation that plays the scenario. The controller is
// initialized, so a monitor, if enabled, is already serving.
func (b Builder) Build(scn *scenario.Scenario) (*Simulation, error) {
	if scn == nil {
		return nil, &scenario.ConfigurationError{Reason: "scenario cannot be nil"}
	}

	b = b.withDefaults()

	s := &Simulation{
		id:       xid.New().String(),
		tracer:   b.tracer,
		logger:   b.logger,
		scenario: scn,
		stopped:  make(chan struct{}),
	}

	s.engine = timing.NewTickEngine(b.cfg.Run.TickLength, b.cfg.Run.TimeUnit)
	if b.tickLog != nil {
		s.engine.AcceptHook(timing.NewTickLogger(b.tickLog))
	}

	err := b.registerModels(s.engine)
	if err != nil {
		return nil, err
	}

	err = s.engine.EventAPI().Register(stopSignal{s: s}, timing.Stopped)
	if err != nil {
		return nil, err
	}

	if b.cfg.Monitor.Enabled {
		s.monitor = monitoring.NewMonitor().
			WithPortNumber(b.cfg.Monitor.Port).
			WithBrowser(b.cfg.Monitor.OpenBrowser).
			WithLogger(b.logger)
	}

	s.controller, err = b.buildController(scn, s)
	if err != nil {
		return nil, err
	}

	err = s.controller.Initialize()
	if err != nil {
		_ = s.closeMonitor()
		return nil, err
	}

	err = b.attachObservers(s)
	if err != nil {
		_ = s.closeMonitor()
		return nil, err
	}

	return s, nil
}

func (b Builder) withDefaults() Builder {
	if b.cfg == nil {
		b.cfg = config.Default()
	}

	if b.roadModel == nil {
		b.roadModel = road.NewPlaneModel("m", "m/s")
	}

	if b.pdpModel == nil {
		b.pdpModel = pdp.NewBasicModel()
	}

	if b.tracer == nil {
		b.tracer = otel.Tracer("pdpsim")
	}

	if b.logger == nil {
		b.logger = slog.Default()
	}

	return b
}

func (b Builder) registerModels(engine *timing.TickEngine) error {
	err := engine.RegisterModel(road.ModelName, b.roadModel)
	if err != nil {
		return err
	}

	return engine.RegisterModel(pdp.ModelName, b.pdpModel)
}

func (b Builder) buildController(
	scn *scenario.Scenario,
	s *Simulation,
) (*scenario.Controller, error) {
	cb := scenario.MakeBuilder().
		WithTickBudget(b.cfg.Run.TickBudget).
		WithEngineFactory(func() (timing.Engine, error) {
			return s.engine, nil
		}).
		WithLogger(b.logger)

	for t, h := range defaultHandlers(b.roadModel, b.pdpModel, s.engine) {
		if scn.Types().Contains(t) {
			cb = cb.WithHandler(t, h)
		}
	}

	for t, h := range b.handlers {
		cb = cb.WithHandler(t, h)
	}

	if b.customHandler != nil {
		cb = cb.WithCustomHandler(b.customHandler)
	}

	if s.monitor != nil {
		cb = cb.WithFrontEndFactory(s.monitor.FrontEndFactory())
	}

	return cb.Build(scn)
}

func (b Builder) attachObservers(s *Simulation) error {
	var err error

	s.tracker, err = stats.NewTracker(s.controller, s.engine,
		stats.WithDepotThreshold(b.cfg.Stats.DepotThreshold),
		stats.WithLogger(b.logger))
	if err != nil {
		return err
	}

	if b.stopOnFinish && !s.controller.IsInteractive() {
		err = s.controller.EventAPI().Register(
			finishSignal{engine: s.engine}, scenario.RunFinished)
		if err != nil {
			return err
		}
	}

	if s.monitor != nil {
		s.monitor.RegisterStats(s.tracker)
	}

	if !b.cfg.Recording.Enabled {
		return nil
	}

	s.recorder = datarecording.New(b.cfg.Recording.Path)
	s.runRecorder = datarecording.NewRunRecorder(s.recorder, s.id)

	return s.tracker.EventAPI().Register(s.runRecorder,
		stats.PickupTardiness, stats.DeliveryTardiness)
}
