// Package monitoring turns a running simulation into a small web server,
// so the clock, the registered model state, and the waiter queues can be
// inspected and the run paused and resumed from a browser.
package monitoring

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	// Enable profiling
	_ "net/http/pprof"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/enzo-santos-ufpa/sd/monitoring/web"
	"github.com/enzo-santos-ufpa/sd/sim"
)

// Engine is the part of the simulation engine the monitor drives.
type Engine interface {
	Now() sim.VTime
	Peek() sim.VTime
	Pending() int
	Pause()
	Continue()
	Step() error
	Run() error
	RunUntil(t sim.VTime) error
}

// A Queue reports the population of one waiter queue, so that stalled
// requests show up in the dashboard.
type Queue interface {
	Name() string
	Length() int
}

// QueueFunc adapts a probe function into a Queue.
type QueueFunc struct {
	QueueName string
	Probe     func() int
}

// Name returns the queue name.
func (q QueueFunc) Name() string { return q.QueueName }

// Length returns the current queue population.
func (q QueueFunc) Length() int { return q.Probe() }

type namedComponent struct {
	name  string
	state any
}

// Monitor can turn a simulation into a server and allows external
// monitoring and controlling of the simulation.
type Monitor struct {
	engine     Engine
	components []namedComponent
	queues     []Queue
	portNumber int
	useBrowser bool

	progressBarsLock sync.Mutex
	progressBars     []*ProgressBar
}

// NewMonitor creates a new Monitor.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// WithBrowser opens the dashboard in the default browser once the server
// is listening.
func (m *Monitor) WithBrowser() *Monitor {
	m.useBrowser = true

	return m
}

// RegisterEngine registers the engine that is used in the simulation.
func (m *Monitor) RegisterEngine(e Engine) {
	m.engine = e
}

// RegisterComponent registers a named piece of model state to be served
// by the component endpoints.
func (m *Monitor) RegisterComponent(name string, state any) {
	m.components = append(m.components, namedComponent{name, state})
}

// RegisterQueue registers a waiter queue to be reported by the queue
// endpoint.
func (m *Monitor) RegisterQueue(q Queue) {
	m.queues = append(m.queues, q)
}

// CreateProgressBar creates a new progress bar.
func (m *Monitor) CreateProgressBar(name string, total uint64) *ProgressBar {
	bar := &ProgressBar{
		ID:        sim.GetIDGenerator().Generate(),
		Name:      name,
		StartTime: time.Now(),
		Total:     total,
	}

	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	m.progressBars = append(m.progressBars, bar)

	return bar
}

// CompleteProgressBar removes a bar from the webpage.
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

// StartServer starts the monitor as a web server with a custom port if
// wanted.
func (m *Monitor) StartServer() {
	r := m.router()
	http.Handle("/", r)

	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "Monitoring simulation with %s\n", url)

	if m.useBrowser {
		err := browser.OpenURL(url)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open browser: %s\n", err)
		}
	}

	go func() {
		err = http.Serve(listener, nil)
		dieOnErr(err)
	}()
}

func (m *Monitor) router() *mux.Router {
	r := mux.NewRouter()

	fServer := http.FileServer(web.GetAssets())
	r.HandleFunc("/api/pause", m.pauseEngine)
	r.HandleFunc("/api/continue", m.continueEngine)
	r.HandleFunc("/api/now", m.now)
	r.HandleFunc("/api/pending", m.pending)
	r.HandleFunc("/api/run", m.run)
	r.HandleFunc("/api/run_until", m.runUntil)
	r.HandleFunc("/api/step", m.step)
	r.HandleFunc("/api/list_components", m.listComponents)
	r.HandleFunc("/api/component/{name}", m.listComponentDetails)
	r.HandleFunc("/api/field/{json}", m.listFieldValue)
	r.HandleFunc("/api/queues", m.listQueues)
	r.HandleFunc("/api/progress", m.listProgressBars)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	r.PathPrefix("/").Handler(fServer)

	return r
}

func (m *Monitor) pauseEngine(w http.ResponseWriter, _ *http.Request) {
	m.engine.Pause()
	_, err := w.Write(nil)
	dieOnErr(err)
}

func (m *Monitor) continueEngine(w http.ResponseWriter, _ *http.Request) {
	m.engine.Continue()
	_, err := w.Write(nil)
	dieOnErr(err)
}

func (m *Monitor) now(w http.ResponseWriter, _ *http.Request) {
	now := m.engine.Now()
	fmt.Fprintf(w, "{\"now\":%.10f}", now)
}

func (m *Monitor) pending(w http.ResponseWriter, _ *http.Request) {
	pending := m.engine.Pending()
	if pending == 0 {
		fmt.Fprint(w, "{\"pending\":0}")
		return
	}

	fmt.Fprintf(w, "{\"pending\":%d,\"next\":%.10f}",
		pending, m.engine.Peek())
}

func (m *Monitor) run(_ http.ResponseWriter, _ *http.Request) {
	go func() {
		err := m.engine.Run()
		if err != nil {
			panic(err)
		}
	}()
}

func (m *Monitor) runUntil(w http.ResponseWriter, r *http.Request) {
	tStr := r.URL.Query().Get("t")

	t, err := strconv.ParseFloat(tStr, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, "Error: invalid time %q", tStr)
		return
	}

	if sim.VTime(t) <= m.engine.Now() {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, "Error: time is not in the future")
		return
	}

	go func() {
		err := m.engine.RunUntil(sim.VTime(t))
		if err != nil {
			panic(err)
		}
	}()
}

func (m *Monitor) step(w http.ResponseWriter, _ *http.Request) {
	err := m.engine.Step()
	if errors.Is(err, sim.ErrEmptySchedule) {
		fmt.Fprint(w, "{\"done\":true}")
		return
	}
	dieOnErr(err)

	fmt.Fprintf(w, "{\"done\":false,\"now\":%.10f}", m.engine.Now())
}

func (m *Monitor) listComponents(w http.ResponseWriter, _ *http.Request) {
	fmt.Fprint(w, "[")
	for i, c := range m.components {
		if i > 0 {
			fmt.Fprint(w, ",")
		}

		fmt.Fprintf(w, "\"%s\"", c.name)
	}
	fmt.Fprint(w, "]")
}

func (m *Monitor) listComponentDetails(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	state := m.findComponentOr404(w, name)
	if state == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(state)
	serializer.SetMaxDepth(1)
	err := serializer.Serialize(w)

	dieOnErr(err)
}

type fieldReq struct {
	CompName  string `json:"comp_name,omitempty"`
	FieldName string `json:"field_name,omitempty"`
}

func (m *Monitor) listFieldValue(w http.ResponseWriter, r *http.Request) {
	jsonString := mux.Vars(r)["json"]
	req := fieldReq{}

	err := json.Unmarshal([]byte(jsonString), &req)
	if err != nil {
		dieOnErr(err)
	}

	state := m.findComponentOr404(w, req.CompName)
	if state == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(state)
	serializer.SetMaxDepth(1)

	err = serializer.SetEntryPoint(strings.Split(req.FieldName, "."))
	dieOnErr(err)

	err = serializer.Serialize(w)
	dieOnErr(err)
}

func (m *Monitor) listQueues(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := queueParseParams(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, "Error: %s", err)
		return
	}

	queues := m.sortAndSelectQueues(limit, offset)

	fmt.Fprint(w, "[")
	for i, q := range queues {
		if i > 0 {
			fmt.Fprint(w, ",")
		}

		fmt.Fprintf(w, "{\"queue\":\"%s\",\"length\":%d}",
			q.Name(), q.Length())
	}
	fmt.Fprint(w, "]")
}

func queueParseParams(r *http.Request) (limit, offset int, err error) {
	limitStr := r.URL.Query().Get("limit")
	if limitStr == "" {
		limitStr = "0"
	}
	limit, err = strconv.Atoi(limitStr)
	if err != nil {
		return 0, 0, err
	}

	offsetStr := r.URL.Query().Get("offset")
	if offsetStr == "" {
		offsetStr = "0"
	}
	offset, err = strconv.Atoi(offsetStr)
	if err != nil {
		return limit, 0, err
	}

	return limit, offset, nil
}

// sortAndSelectQueues returns one page of the queues, longest first.
func (m *Monitor) sortAndSelectQueues(limit, offset int) []Queue {
	sorted := make([]Queue, len(m.queues))
	copy(sorted, m.queues)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Length() > sorted[j].Length()
	})

	if offset >= len(sorted) {
		return nil
	}
	sorted = sorted[offset:]

	if limit > 0 && limit < len(sorted) {
		sorted = sorted[:limit]
	}

	return sorted
}

func (m *Monitor) findComponentOr404(
	w http.ResponseWriter,
	name string,
) any {
	var state any
	for _, c := range m.components {
		if c.name == name {
			state = c.state
		}
	}

	if state == nil {
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte("Component not found"))
		dieOnErr(err)
	}

	return state
}

func (m *Monitor) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	m.progressBarsLock.Lock()
	bytes, err := json.Marshal(m.progressBars)
	m.progressBarsLock.Unlock()
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
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

	rsp := resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	}

	bytes, err := json.Marshal(rsp)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	dieOnErr(err)

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	bytes, err := json.Marshal(prof)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
