package monitoring

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/pdpsim/scenario"
	"github.com/sarchlab/pdpsim/sim/timing"
	"github.com/sarchlab/pdpsim/stats"
)

type sampleModel struct {
	Name  string
	Count int
}

type fixedStats struct {
	s stats.Statistics
}

func (f fixedStats) Snapshot() stats.Statistics {
	return f.s
}

var _ = Describe("Monitor", func() {
	var (
		m      *Monitor
		engine *timing.TickEngine
	)

	BeforeEach(func() {
		m = NewMonitor().WithProfileDuration(10 * time.Millisecond)
		engine = timing.NewTickEngine(1, "ms")
		Expect(engine.RegisterModel("sample",
			&sampleModel{Name: "depot", Count: 3})).To(Succeed())
	})

	AfterEach(func() {
		Expect(m.Close()).To(Succeed())
	})

	serve := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		m.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		return rec
	}

	It("should not serve engine requests without an engine", func() {
		Expect(serve("/api/now").Code).To(Equal(http.StatusServiceUnavailable))
		Expect(serve("/api/status").Code).
			To(Equal(http.StatusServiceUnavailable))
		Expect(serve("/api/stats").Code).
			To(Equal(http.StatusServiceUnavailable))
	})

	It("should ignore reserved port numbers", func() {
		Expect(m.WithPortNumber(80).portNumber).To(Equal(0))
		Expect(m.WithPortNumber(8080).portNumber).To(Equal(8080))
	})

	Context("with an engine", func() {
		BeforeEach(func() {
			m.RegisterEngine(engine)
		})

		It("should report the current time", func() {
			rec := serve("/api/now")

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(MatchJSON(`{"now":0,"unit":"ms"}`))
		})

		It("should pause and continue the engine", func() {
			Expect(serve("/api/pause").Code).To(Equal(http.StatusOK))
			Expect(serve("/api/continue").Code).To(Equal(http.StatusOK))
		})

		It("should list models", func() {
			Expect(serve("/api/list_models").Body.String()).
				To(MatchJSON(`["sample"]`))
		})

		It("should serialize models", func() {
			Expect(serve("/api/model/sample").Code).To(Equal(http.StatusOK))
			Expect(serve("/api/model/road").Code).To(Equal(http.StatusNotFound))
		})

		It("should reject malformed field requests", func() {
			Expect(serve("/api/field/" + url.PathEscape("{")).Code).
				To(Equal(http.StatusBadRequest))
			Expect(serve("/api/field/" +
				url.PathEscape(`{"model_name":"road"}`)).Code).
				To(Equal(http.StatusNotFound))
		})

		It("should report resources", func() {
			rec := serve("/api/resource")

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring("memory_size"))
		})

		It("should collect a profile", func() {
			Expect(serve("/api/profile").Code).To(Equal(http.StatusOK))
		})
	})

	It("should serve statistics", func() {
		m.RegisterStats(fixedStats{s: stats.Statistics{
			TotalPickups: 4,
			TimeUnit:     "ms",
		}})

		var s stats.Statistics
		Expect(json.Unmarshal(serve("/api/stats").Body.Bytes(), &s)).
			To(Succeed())
		Expect(s.TotalPickups).To(Equal(4))
		Expect(s.TimeUnit).To(Equal("ms"))
	})

	It("should track progress bars", func() {
		bar := m.CreateProgressBar("parcels", 10)
		bar.IncrementInProgress(3)
		bar.MoveInProgressToFinished(2)

		var views []progressBarView
		Expect(json.Unmarshal(serve("/api/progress").Body.Bytes(), &views)).
			To(Succeed())
		Expect(views).To(HaveLen(1))
		Expect(views[0].ID).To(Equal(bar.ID()))
		Expect(views[0].Name).To(Equal("parcels"))
		Expect(views[0].Finished).To(Equal(uint64(2)))
		Expect(views[0].InProgress).To(Equal(uint64(1)))

		m.CompleteProgressBar(bar)
		Expect(serve("/api/progress").Body.String()).To(MatchJSON(`[]`))
	})

	It("should drive a scenario as its front end", func() {
		scn, err := scenario.New(scenario.StandardTypes(),
			scenario.NewTimedEvent(scenario.AddParcel, 0, nil),
			scenario.NewTimedEvent(scenario.AddParcel, 3, nil),
		)
		Expect(err).NotTo(HaveOccurred())

		ctrl, err := scenario.MakeBuilder().
			WithEngineFactory(func() (timing.Engine, error) {
				return engine, nil
			}).
			WithCustomHandler(func(scenario.TimedEvent) (bool, error) {
				return true, nil
			}).
			WithFrontEndFactory(m.FrontEndFactory()).
			Build(scn)
		Expect(err).NotTo(HaveOccurred())

		Expect(ctrl.Initialize()).To(Succeed())
		Expect(ctrl.IsInteractive()).To(BeTrue())
		Expect(m.URL()).To(HavePrefix("http://localhost:"))

		rsp, err := http.Get(m.URL() + "/api/status")
		Expect(err).NotTo(HaveOccurred())
		var status statusRsp
		Expect(json.NewDecoder(rsp.Body).Decode(&status)).To(Succeed())
		rsp.Body.Close()
		Expect(status).To(Equal(statusRsp{
			Status: "NotStarted", Total: 2, TicksLeft: -1,
		}))

		Expect(serve("/api/run").Code).To(Equal(http.StatusAccepted))
		Eventually(ctrl.Status).Should(Equal(scenario.Finished))

		Expect(serve("/api/stop").Code).To(Equal(http.StatusOK))
		Expect(m.progressBars[0].Finished()).To(Equal(uint64(2)))
	})
})
