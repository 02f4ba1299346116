package simulation_test

import (
	"bytes"
	"context"
	"errors"
	"log"
	"net/http"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/sarchlab/pdpsim/config"
	"github.com/sarchlab/pdpsim/datarecording"
	"github.com/sarchlab/pdpsim/eventing"
	"github.com/sarchlab/pdpsim/pdp"
	"github.com/sarchlab/pdpsim/road"
	"github.com/sarchlab/pdpsim/scenario"
	"github.com/sarchlab/pdpsim/simulation"
	"github.com/sarchlab/pdpsim/sim/timing"
	"github.com/sarchlab/pdpsim/stats"
)

// script runs a step at the given tick times, after the controller.
type script struct {
	steps map[timing.VTime]func(now timing.VTime) error
}

func (s *script) Tick(now, _ timing.VTime) error {
	step, ok := s.steps[now]
	if !ok {
		return nil
	}

	return step(now)
}

func (s *script) AfterTick(_, _ timing.VTime) error {
	return nil
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Run.TickLength = 1
	cfg.Run.TimeUnit = "s"

	return cfg
}

var depot = road.Point{X: 0, Y: 0}

func deliveryScenario() *scenario.Scenario {
	scn, err := scenario.New(scenario.PDPTypes(),
		scenario.NewAddDepotEvent(0, pdp.DepotDTO{Position: depot}),
		scenario.NewAddVehicleEvent(0, pdp.VehicleDTO{
			StartPosition: depot,
			Speed:         1,
		}),
		scenario.NewAddParcelEvent(1, pdp.ParcelDTO{
			Pickup:         road.Point{X: 3, Y: 4},
			Delivery:       road.Point{X: 3, Y: 0},
			PickupWindow:   pdp.TimeWindow{Begin: 0, End: 2},
			DeliveryWindow: pdp.TimeWindow{Begin: 0, End: 100},
		}),
		scenario.NewTimeOutEvent(10),
	)
	Expect(err).NotTo(HaveOccurred())

	return scn
}

// courier picks the parcel up at 3, delivers it at 5, and drives home at 7.
func courier(plane *road.PlaneModel, model *pdp.BasicModel) *script {
	return &script{steps: map[timing.VTime]func(timing.VTime) error{
		3: func(now timing.VTime) error {
			v, p := model.Vehicles()[0], model.Parcels()[0]
			return errors.Join(
				plane.MoveTo(v, p.DTO.Pickup),
				model.BeginPickup(v, p, now),
				model.FinishPickup(v, p, now))
		},
		5: func(now timing.VTime) error {
			v, p := model.Vehicles()[0], model.Parcels()[0]
			return errors.Join(
				plane.MoveTo(v, p.DTO.Delivery),
				model.BeginDelivery(v, p, now),
				model.FinishDelivery(v, p, now))
		},
		7: func(timing.VTime) error {
			v := model.Vehicles()[0]
			return plane.MoveTo(v, v.StartPosition())
		},
	}}
}

func spanNamed(exporter *tracetest.InMemoryExporter, name string) tracetest.SpanStub {
	for _, s := range exporter.GetSpans() {
		if s.Name == name {
			return s
		}
	}

	Fail("no span named " + name)

	return tracetest.SpanStub{}
}

var _ = Describe("Simulation", func() {
	var (
		cfg      *config.Config
		plane    *road.PlaneModel
		model    *pdp.BasicModel
		exporter *tracetest.InMemoryExporter
		builder  simulation.Builder
	)

	BeforeEach(func() {
		cfg = testConfig()
		plane = road.NewPlaneModel("m", "m/s")
		model = pdp.NewBasicModel()
		exporter = tracetest.NewInMemoryExporter()
		provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))

		builder = simulation.MakeBuilder().
			WithRoadModel(plane).
			WithPDPModel(model).
			WithTracer(provider.Tracer("simulation-test"))
	})

	It("should refuse a nil scenario", func() {
		_, err := builder.Build(nil)

		Expect(errors.Is(err, scenario.ErrConfiguration)).To(BeTrue())
	})

	It("should play a delivery scenario", func() {
		sim, err := builder.WithConfig(cfg).Build(deliveryScenario())
		Expect(err).NotTo(HaveOccurred())
		sim.Engine().AddTickListener(courier(plane, model))

		st, err := sim.Run(context.Background())

		Expect(err).NotTo(HaveOccurred())
		Expect(sim.Terminate()).To(Succeed())
		Expect(sim.Controller().Status()).To(Equal(scenario.Finished))
		Expect(st.TotalDistance).To(BeNumerically("~", 12.0, 1e-9))
		Expect(st.TotalVehicles).To(Equal(1))
		Expect(st.TotalDepots).To(Equal(1))
		Expect(st.TotalParcels).To(Equal(1))
		Expect(st.AcceptedParcels).To(Equal(1))
		Expect(st.TotalPickups).To(Equal(1))
		Expect(st.TotalDeliveries).To(Equal(1))
		Expect(st.PickupTardiness).To(Equal(int64(1)))
		Expect(st.DeliveryTardiness).To(Equal(int64(0)))
		Expect(st.SimFinish).To(BeTrue())
		Expect(st.VehiclesAtDepot).To(Equal(1))
		Expect(st.OverTime).To(Equal(int64(0)))
		Expect(st.MovedVehicles).To(Equal(1))
		Expect(st.CurrentTime).To(Equal(int64(11)))
		Expect(st.SimulationTime).To(Equal(int64(11)))
		Expect(st.TimeUnit).To(Equal("s"))
		Expect(st.DistanceUnit).To(Equal("m"))

		span := spanNamed(exporter, "pdpsim.run")
		Expect(span.Status.Code).To(Equal(codes.Ok))
		Expect(span.Attributes).To(ContainElement(
			attribute.String("run.id", sim.ID())))
		Expect(span.Attributes).To(ContainElement(
			attribute.Int64("sim.time", 11)))
	})

	It("should run only once", func() {
		sim, err := builder.WithConfig(cfg).Build(deliveryScenario())
		Expect(err).NotTo(HaveOccurred())

		_, err = sim.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())

		_, err = sim.Run(context.Background())
		Expect(err).To(MatchError(simulation.ErrAlreadyRun))
	})

	It("should stop when the tick budget is spent", func() {
		cfg.Run.TickBudget = 5
		sim, err := builder.WithConfig(cfg).Build(deliveryScenario())
		Expect(err).NotTo(HaveOccurred())

		st, err := sim.Run(context.Background())

		Expect(err).NotTo(HaveOccurred())
		Expect(st.CurrentTime).To(Equal(int64(6)))
		Expect(st.SimFinish).To(BeFalse())
		Expect(sim.Controller().Status()).To(Equal(scenario.Started))
		Expect(sim.Controller().TicksLeft()).To(Equal(int64(-1)))
	})

	It("should report vehicles that come home after the time out", func() {
		scn, err := scenario.New(scenario.PDPTypes(),
			scenario.NewAddVehicleEvent(0, pdp.VehicleDTO{StartPosition: depot}),
			scenario.NewTimeOutEvent(5),
		)
		Expect(err).NotTo(HaveOccurred())

		timeOuts := 0
		sim, err := builder.
			WithConfig(cfg).
			WithHandler(scenario.TimeOut, func(scenario.TimedEvent) (bool, error) {
				timeOuts++
				return true, nil
			}).
			WithoutStopOnFinish().
			Build(scn)
		Expect(err).NotTo(HaveOccurred())

		engine := sim.Engine()
		engine.AddTickListener(&script{steps: map[timing.VTime]func(timing.VTime) error{
			2: func(timing.VTime) error {
				return plane.MoveTo(model.Vehicles()[0], road.Point{X: 1})
			},
			8: func(timing.VTime) error {
				v := model.Vehicles()[0]
				return plane.MoveTo(v, v.StartPosition())
			},
			10: func(timing.VTime) error {
				engine.Stop()
				return nil
			},
		}})

		st, err := sim.Run(context.Background())

		Expect(err).NotTo(HaveOccurred())
		Expect(timeOuts).To(Equal(1))
		Expect(st.SimFinish).To(BeTrue())
		Expect(st.OverTime).To(Equal(int64(3)))
		Expect(st.CurrentTime).To(Equal(int64(11)))
	})

	It("should let a handler replace a default one", func() {
		var seen []pdp.ParcelDTO
		sim, err := builder.
			WithConfig(cfg).
			WithHandler(scenario.AddParcel, func(evt scenario.TimedEvent) (bool, error) {
				seen = append(seen, evt.Payload().(pdp.ParcelDTO))
				return true, nil
			}).
			Build(deliveryScenario())
		Expect(err).NotTo(HaveOccurred())

		st, err := sim.Run(context.Background())

		Expect(err).NotTo(HaveOccurred())
		Expect(seen).To(HaveLen(1))
		Expect(model.Parcels()).To(BeEmpty())
		Expect(st.TotalParcels).To(Equal(1))
		Expect(st.AcceptedParcels).To(Equal(0))
	})

	Context("when an event has no handler", func() {
		var scn *scenario.Scenario

		BeforeEach(func() {
			types, err := scenario.PDPTypes().Union(
				eventing.NewTypeSet(scenario.RemoveParcel))
			Expect(err).NotTo(HaveOccurred())

			scn, err = scenario.New(types,
				scenario.NewTimedEvent(scenario.RemoveParcel, 2, nil),
				scenario.NewTimeOutEvent(4),
			)
			Expect(err).NotTo(HaveOccurred())
		})

		It("should abort the run", func() {
			sim, err := builder.WithConfig(cfg).Build(scn)
			Expect(err).NotTo(HaveOccurred())

			st, err := sim.Run(context.Background())

			Expect(errors.Is(err, scenario.ErrUnhandledEvent)).To(BeTrue())
			Expect(st.CurrentTime).To(Equal(int64(2)))

			span := spanNamed(exporter, "pdpsim.run")
			Expect(span.Status.Code).To(Equal(codes.Error))
			Expect(span.Events).NotTo(BeEmpty())
		})

		It("should pass the event to the custom handler", func() {
			var custom []*eventing.Type
			sim, err := builder.
				WithConfig(cfg).
				WithCustomHandler(func(evt scenario.TimedEvent) (bool, error) {
					custom = append(custom, evt.Type())
					return true, nil
				}).
				Build(scn)
			Expect(err).NotTo(HaveOccurred())

			_, err = sim.Run(context.Background())

			Expect(err).NotTo(HaveOccurred())
			Expect(custom).To(Equal([]*eventing.Type{scenario.RemoveParcel}))
		})
	})

	It("should stop when the context is done", func() {
		scn, err := scenario.New(scenario.PDPTypes(),
			scenario.NewTimeOutEvent(1<<50))
		Expect(err).NotTo(HaveOccurred())

		sim, err := builder.WithConfig(cfg).Build(scn)
		Expect(err).NotTo(HaveOccurred())

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		st, err := sim.Run(ctx)

		Expect(err).To(MatchError(context.DeadlineExceeded))
		Expect(st.SimFinish).To(BeFalse())
		Expect(st.CurrentTime).To(BeNumerically(">", 0))
	})

	It("should log every tick", func() {
		var buf bytes.Buffer
		cfg.Run.TickBudget = 2
		sim, err := builder.
			WithConfig(cfg).
			WithTickLog(log.New(&buf, "", 0)).
			Build(deliveryScenario())
		Expect(err).NotTo(HaveOccurred())

		_, err = sim.Run(context.Background())

		Expect(err).NotTo(HaveOccurred())
		Expect(buf.String()).To(Equal("0, tick +1\n1, tick +1\n2, tick +1\n"))
	})

	It("should record the run", func() {
		path := filepath.Join(GinkgoT().TempDir(), "run")
		cfg.Recording.Enabled = true
		cfg.Recording.Path = path

		sim, err := builder.WithConfig(cfg).Build(deliveryScenario())
		Expect(err).NotTo(HaveOccurred())
		sim.Engine().AddTickListener(courier(plane, model))

		_, err = sim.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(sim.Terminate()).To(Succeed())

		reader, err := datarecording.NewReader(path + ".sqlite3")
		Expect(err).NotTo(HaveOccurred())
		defer reader.Close()
		datarecording.MapRunTables(reader)

		runs, err := datarecording.ReadStatistics(context.Background(), reader)
		Expect(err).NotTo(HaveOccurred())
		Expect(runs).To(HaveLen(1))
		Expect(runs[0].RunID).To(Equal(sim.ID()))
		Expect(runs[0].TotalDistance).To(BeNumerically("~", 12.0, 1e-9))
		Expect(runs[0].SimFinish).To(BeTrue())

		late, err := datarecording.ReadTardiness(
			context.Background(), reader, sim.ID())
		Expect(err).NotTo(HaveOccurred())
		Expect(late).To(HaveLen(1))
		Expect(late[0].Kind).To(Equal(stats.PickupTardiness.String()))
		Expect(late[0].Time).To(Equal(int64(3)))
		Expect(late[0].Tardiness).To(Equal(int64(1)))
	})

	It("should wait for the monitor to run the engine", func() {
		cfg.Monitor.Enabled = true
		scn, err := scenario.New(scenario.PDPTypes(),
			scenario.NewAddVehicleEvent(0, pdp.VehicleDTO{StartPosition: depot}),
			scenario.NewTimeOutEvent(3),
		)
		Expect(err).NotTo(HaveOccurred())

		sim, err := builder.WithConfig(cfg).Build(scn)
		Expect(err).NotTo(HaveOccurred())
		defer sim.Terminate()

		Expect(sim.Controller().IsInteractive()).To(BeTrue())
		Expect(sim.Monitor().URL()).NotTo(BeEmpty())

		done := make(chan stats.Statistics, 1)
		go func() {
			defer GinkgoRecover()

			st, err := sim.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			done <- st
		}()

		rsp, err := http.Post(sim.Monitor().URL()+"/api/run", "", nil)
		Expect(err).NotTo(HaveOccurred())
		rsp.Body.Close()
		Expect(rsp.StatusCode).To(Equal(http.StatusAccepted))

		var st stats.Statistics
		Eventually(done, 5*time.Second).Should(Receive(&st))
		Expect(st.CurrentTime).To(Equal(int64(4)))
		Expect(st.SimFinish).To(BeTrue())
		Expect(st.TotalVehicles).To(Equal(1))
	})
})
