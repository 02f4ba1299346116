// Package monitoring serves a running simulation over HTTP, so that it can be
// observed and controlled from outside the process.
package monitoring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/sarchlab/pdpsim/scenario"
	"github.com/sarchlab/pdpsim/sim/timing"
	"github.com/sarchlab/pdpsim/stats"
)

// A StatsSource provides the statistics of the run.
type StatsSource interface {
	Snapshot() stats.Statistics
}

// Monitor can turn a simulation into a server and allows external monitoring
// controlling of the simulation.
type Monitor struct {
	portNumber      int
	openBrowser     bool
	profileDuration time.Duration
	logger          *slog.Logger

	lock       sync.Mutex
	engine     timing.Engine
	controller *scenario.Controller
	stats      StatsSource
	server     *http.Server
	url        string

	progressBarsLock sync.Mutex
	progressBars     []*ProgressBar
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{
		profileDuration: time.Second,
		logger:          slog.Default().With("component", "monitor"),
	}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber != 0 && portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// WithBrowser sets whether the monitor opens a browser once it is up.
func (m *Monitor) WithBrowser(open bool) *Monitor {
	m.openBrowser = open
	return m
}

// WithProfileDuration sets how long CPU profiles are collected.
func (m *Monitor) WithProfileDuration(d time.Duration) *Monitor {
	m.profileDuration = d
	return m
}

// WithLogger sets the logger of the monitor.
func (m *Monitor) WithLogger(logger *slog.Logger) *Monitor {
	m.logger = logger.With("component", "monitor")
	return m
}

// RegisterEngine registers the engine that is used in the simulation.
func (m *Monitor) RegisterEngine(e timing.Engine) {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.engine = e
}

// RegisterController registers the scenario controller of the simulation and
// tracks its progress with a progress bar.
func (m *Monitor) RegisterController(c *scenario.Controller) error {
	m.lock.Lock()
	m.controller = c
	m.lock.Unlock()

	scn := c.Scenario()
	bar := m.CreateProgressBar("Scenario events", uint64(scn.Len()))

	err := c.EventAPI().Register(eventCounter{bar: bar}, scn.Types().Types()...)
	if err != nil {
		return fmt.Errorf("monitoring: cannot track scenario: %w", err)
	}

	return nil
}

// RegisterStats registers where the statistics of the run come from.
func (m *Monitor) RegisterStats(s StatsSource) {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.stats = s
}

// FrontEndFactory returns a factory that makes the monitor the front end of
// a scenario controller. The engine then only runs when asked to over HTTP.
func (m *Monitor) FrontEndFactory() scenario.FrontEndFactory {
	return func(c *scenario.Controller, e timing.Engine) (bool, error) {
		m.RegisterEngine(e)

		err := m.RegisterController(c)
		if err != nil {
			return false, err
		}

		err = m.StartServer()
		if err != nil {
			return false, err
		}

		return true, nil
	}
}

// CreateProgressBar creates a new progress bar.
func (m *Monitor) CreateProgressBar(name string, total uint64) *ProgressBar {
	bar := NewProgressBar(name, total)

	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	m.progressBars = append(m.progressBars, bar)

	return bar
}

// CompleteProgressBar removes a bar to be shown on the webpage.
func (m *Monitor) CompleteProgressBar(pb *ProgressBar) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	newBars := make([]*ProgressBar, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		if b != pb {
			newBars = append(newBars, b)
		}
	}

	m.progressBars = newBars
}

// Router returns the handler that serves the monitoring API.
func (m *Monitor) Router() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/api/pause", m.pauseEngine)
	r.HandleFunc("/api/continue", m.continueEngine)
	r.HandleFunc("/api/now", m.now)
	r.HandleFunc("/api/run", m.run)
	r.HandleFunc("/api/stop", m.stop)
	r.HandleFunc("/api/status", m.status)
	r.HandleFunc("/api/stats", m.statistics)
	r.HandleFunc("/api/list_models", m.listModels)
	r.HandleFunc("/api/model/{name}", m.modelDetails)
	r.HandleFunc("/api/field/{json}", m.fieldValue)
	r.HandleFunc("/api/progress", m.listProgressBars)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)

	return r
}

// StartServer starts the monitor as a web server with a custom port if wanted.
func (m *Monitor) StartServer() error {
	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	if err != nil {
		return fmt.Errorf("monitoring: cannot listen: %w", err)
	}

	server := &http.Server{
		Handler:           m.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)

	m.lock.Lock()
	m.server = server
	m.url = url
	m.lock.Unlock()

	m.logger.Info("monitoring simulation", "url", url)

	go func() {
		err := server.Serve(listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			m.logger.Error("monitor stopped serving", "error", err)
		}
	}()

	if m.openBrowser {
		err = browser.OpenURL(url)
		if err != nil {
			m.logger.Warn("cannot open browser", "error", err)
		}
	}

	return nil
}

// URL returns where the monitor serves, or an empty string before the server
// starts.
func (m *Monitor) URL() string {
	m.lock.Lock()
	defer m.lock.Unlock()

	return m.url
}

// Close stops the server.
func (m *Monitor) Close() error {
	m.lock.Lock()
	server := m.server
	m.server = nil
	m.lock.Unlock()

	if server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return server.Shutdown(ctx)
}

func (m *Monitor) engineOr503(w http.ResponseWriter) timing.Engine {
	m.lock.Lock()
	engine := m.engine
	m.lock.Unlock()

	if engine == nil {
		http.Error(w, "no engine registered", http.StatusServiceUnavailable)
	}

	return engine
}

func (m *Monitor) pauseEngine(w http.ResponseWriter, _ *http.Request) {
	engine := m.engineOr503(w)
	if engine == nil {
		return
	}

	engine.Pause()
	_, err := w.Write(nil)
	dieOnErr(err)
}

func (m *Monitor) continueEngine(w http.ResponseWriter, _ *http.Request) {
	engine := m.engineOr503(w)
	if engine == nil {
		return
	}

	engine.Continue()
	_, err := w.Write(nil)
	dieOnErr(err)
}

type nowRsp struct {
	Now  timing.VTime `json:"now"`
	Unit string       `json:"unit"`
}

func (m *Monitor) now(w http.ResponseWriter, _ *http.Request) {
	engine := m.engineOr503(w)
	if engine == nil {
		return
	}

	writeJSON(w, nowRsp{Now: engine.CurrentTime(), Unit: engine.TimeUnit()})
}

func (m *Monitor) run(w http.ResponseWriter, _ *http.Request) {
	engine := m.engineOr503(w)
	if engine == nil {
		return
	}

	go func() {
		err := engine.Start()
		if err != nil {
			m.logger.Error("run aborted", "error", err)
		}
	}()

	w.WriteHeader(http.StatusAccepted)
}

func (m *Monitor) stop(w http.ResponseWriter, _ *http.Request) {
	engine := m.engineOr503(w)
	if engine == nil {
		return
	}

	engine.Stop()
	_, err := w.Write(nil)
	dieOnErr(err)
}

type statusRsp struct {
	Status     string `json:"status"`
	Dispatched int    `json:"dispatched"`
	Total      int    `json:"total"`
	TicksLeft  int64  `json:"ticks_left"`
}

func (m *Monitor) status(w http.ResponseWriter, _ *http.Request) {
	m.lock.Lock()
	c := m.controller
	m.lock.Unlock()

	if c == nil {
		http.Error(w, "no controller registered", http.StatusServiceUnavailable)
		return
	}

	dispatched, total := c.Progress()
	writeJSON(w, statusRsp{
		Status:     c.Status().String(),
		Dispatched: dispatched,
		Total:      total,
		TicksLeft:  c.TicksLeft(),
	})
}

func (m *Monitor) statistics(w http.ResponseWriter, _ *http.Request) {
	m.lock.Lock()
	s := m.stats
	m.lock.Unlock()

	if s == nil {
		http.Error(w, "no statistics registered", http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, s.Snapshot())
}

func (m *Monitor) listModels(w http.ResponseWriter, _ *http.Request) {
	engine := m.engineOr503(w)
	if engine == nil {
		return
	}

	writeJSON(w, engine.Models().ModelNames())
}

func (m *Monitor) modelDetails(w http.ResponseWriter, r *http.Request) {
	model := m.findModelOr404(w, mux.Vars(r)["name"])
	if model == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(model)
	serializer.SetMaxDepth(1)
	err := serializer.Serialize(w)

	dieOnErr(err)
}

type fieldReq struct {
	ModelName string `json:"model_name,omitempty"`
	FieldName string `json:"field_name,omitempty"`
}

func (m *Monitor) fieldValue(w http.ResponseWriter, r *http.Request) {
	req := fieldReq{}

	err := json.Unmarshal([]byte(mux.Vars(r)["json"]), &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	model := m.findModelOr404(w, req.ModelName)
	if model == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(model)
	serializer.SetMaxDepth(1)

	err = serializer.SetEntryPoint(strings.Split(req.FieldName, "."))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err = serializer.Serialize(w)
	dieOnErr(err)
}

func (m *Monitor) findModelOr404(w http.ResponseWriter, name string) any {
	engine := m.engineOr503(w)
	if engine == nil {
		return nil
	}

	model, found := engine.Models().Model(name)
	if !found {
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte("Model not found"))
		dieOnErr(err)

		return nil
	}

	return model
}

func (m *Monitor) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	m.progressBarsLock.Lock()
	views := make([]progressBarView, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		views = append(views, b.view())
	}
	m.progressBarsLock.Unlock()

	writeJSON(w, views)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	writeJSON(w, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	})
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	time.Sleep(m.profileDuration)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, prof)
}

func writeJSON(w http.ResponseWriter, v any) {
	bytes, err := json.Marshal(v)
	dieOnErr(err)

	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
