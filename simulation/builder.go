package simulation

import (
	"github.com/rs/xid"

	"github.com/enzo-santos-ufpa/sd/datarecording"
	"github.com/enzo-santos-ufpa/sd/metrics"
	"github.com/enzo-santos-ufpa/sd/monitoring"
	"github.com/enzo-santos-ufpa/sd/rng"
	"github.com/enzo-santos-ufpa/sd/sim"
)

// Builder can be used to build a simulation.
type Builder struct {
	seed           int64
	initialTime    sim.VTime
	monitorOn      bool
	monitorPort    int
	useBrowser     bool
	recordingOn    bool
	outputFileName string
}

// MakeBuilder creates a new builder with monitoring and recording enabled.
func MakeBuilder() Builder {
	return Builder{
		monitorOn:   true,
		recordingOn: true,
	}
}

// WithSeed sets the master seed that all random streams derive from.
func (b Builder) WithSeed(seed int64) Builder {
	b.seed = seed
	return b
}

// WithInitialTime sets the virtual time the clock starts at.
func (b Builder) WithInitialTime(t sim.VTime) Builder {
	b.initialTime = t
	return b
}

// WithoutMonitoring sets the simulation to not use monitoring.
func (b Builder) WithoutMonitoring() Builder {
	b.monitorOn = false
	return b
}

// WithMonitorPort sets the port number for the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorPort = port
	return b
}

// WithBrowser opens the monitoring dashboard in the default browser once
// the server is listening.
func (b Builder) WithBrowser() Builder {
	b.useBrowser = true
	return b
}

// WithoutRecording sets the simulation to not record data.
func (b Builder) WithoutRecording() Builder {
	b.recordingOn = false
	return b
}

// WithOutputFileName sets the custom output file name for the data recorder.
func (b Builder) WithOutputFileName(filename string) Builder {
	b.outputFileName = filename
	return b
}

func (b Builder) parametersMustBeValid() {
	if !b.monitorOn && b.monitorPort != 0 {
		panic("monitor port cannot be set when monitoring is disabled")
	}

	if !b.monitorOn && b.useBrowser {
		panic("browser cannot be opened when monitoring is disabled")
	}

	if !b.recordingOn && b.outputFileName != "" {
		panic("output file name cannot be set when recording is disabled")
	}

	if b.initialTime < 0 {
		panic("initial time cannot be negative")
	}
}

// Build builds the simulation.
func (b Builder) Build() *Simulation {
	b.parametersMustBeValid()

	s := &Simulation{
		compNameIndex: make(map[string]int),
	}

	s.id = xid.New().String()
	s.env = sim.NewEnvironmentAt(b.initialTime)
	s.rand = rng.NewPartitioned(b.seed)
	s.registry = metrics.NewRegistry()

	if b.recordingOn {
		outputPath := b.outputFileName
		if outputPath == "" {
			outputPath = "sd_run_" + s.id
		}
		s.recorder = datarecording.NewRecorder(outputPath)
		s.outputFile = outputPath + ".sqlite3"
	}

	if b.monitorOn {
		s.monitor = monitoring.NewMonitor()
		if b.monitorPort > 0 {
			s.monitor.WithPortNumber(b.monitorPort)
		}
		if b.useBrowser {
			s.monitor.WithBrowser()
		}
		s.monitor.RegisterEngine(s.env)
		s.monitor.StartServer()
	}

	return s
}
