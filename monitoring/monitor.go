// Package monitoring turns a running simulation into a small HTTP server so
// the progress, statistics, and cache state of a long trace can be observed
// from outside the process.
package monitoring

import (
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/sarchlab/csim/driver"
)

// Monitor can serve the state of a simulation over HTTP.
type Monitor struct {
	driver     *driver.Driver
	gatherer   prometheus.Gatherer
	portNumber int
	url        string
}

// NewMonitor creates a monitor with no simulation registered.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port that the monitor server listens on. Without
// it, an arbitrary free port is picked.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	m.portNumber = portNumber
	return m
}

// RegisterDriver sets the simulation to observe.
func (m *Monitor) RegisterDriver(d *driver.Driver) {
	m.driver = d
}

// RegisterPrometheus exposes a Prometheus gatherer at /metrics.
func (m *Monitor) RegisterPrometheus(g prometheus.Gatherer) {
	m.gatherer = g
}

// StartServer starts the monitor server in the background and prints its
// URL.
func (m *Monitor) StartServer() {
	r := mux.NewRouter()

	r.HandleFunc("/api/stats", m.stats)
	r.HandleFunc("/api/geometry", m.geometry)
	r.HandleFunc("/api/progress", m.progress)
	r.HandleFunc("/api/set/{id}", m.listSetDetails)
	r.HandleFunc("/api/resource", m.listResources)
	if m.gatherer != nil {
		r.Handle("/metrics",
			promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{}))
	}

	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	m.url = fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)

	fmt.Fprintf(os.Stderr, "Monitoring simulation with %s\n", m.url)

	go func() {
		err = http.Serve(listener, r)
		dieOnErr(err)
	}()
}

// OpenDashboard opens the monitor URL in the default browser.
func (m *Monitor) OpenDashboard() {
	if m.url == "" {
		return
	}

	err := browser.OpenURL(m.url)
	dieOnErr(err)
}

func (m *Monitor) stats(w http.ResponseWriter, _ *http.Request) {
	bytes, err := json.Marshal(m.driver.Snapshot())
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) geometry(w http.ResponseWriter, _ *http.Request) {
	bytes, err := json.Marshal(m.driver.Simulator().Geometry())
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) progress(w http.ResponseWriter, _ *http.Request) {
	fmt.Fprintf(w, "{\"processed\":%d}", m.driver.Processed())
}

func (m *Monitor) listSetDetails(w http.ResponseWriter, r *http.Request) {
	setID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || setID < 0 ||
		setID >= m.driver.Simulator().Geometry().NumSets() {
		w.WriteHeader(404)
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(m.driver.Simulator().Set(setID))
	serializer.SetMaxDepth(2)

	err = serializer.Serialize(w)
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

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
