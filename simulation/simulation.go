// Package simulation wires an environment, a random source, a data
// recorder, and a monitor into one runnable unit, so scenario code only
// has to describe the model.
package simulation

import (
	"log"
	"math"

	"github.com/enzo-santos-ufpa/sd/datarecording"
	"github.com/enzo-santos-ufpa/sd/metrics"
	"github.com/enzo-santos-ufpa/sd/monitoring"
	"github.com/enzo-santos-ufpa/sd/rng"
	"github.com/enzo-santos-ufpa/sd/sim"
)

type namedState struct {
	name  string
	state any
}

// A Simulation provides the services required to define and run a model.
type Simulation struct {
	id   string
	env  *sim.Environment
	rand *rng.Partitioned

	recorder   datarecording.DataRecorder
	outputFile string
	monitor    *monitoring.Monitor
	registry   *metrics.Registry
	tracing    bool

	components    []namedState
	compNameIndex map[string]int
}

// ID returns the unique ID of this run.
func (s *Simulation) ID() string {
	return s.id
}

// GetEnvironment returns the environment that drives the run.
func (s *Simulation) GetEnvironment() *sim.Environment {
	return s.env
}

// GetRand returns the partitioned random source of the run.
func (s *Simulation) GetRand() *rng.Partitioned {
	return s.rand
}

// GetDataRecorder returns the data recorder used in the simulation. It is
// nil when the simulation is built without recording.
func (s *Simulation) GetDataRecorder() datarecording.DataRecorder {
	return s.recorder
}

// OutputFile returns the name of the file the recorder writes into. It is
// empty when the simulation is built without recording.
func (s *Simulation) OutputFile() string {
	return s.outputFile
}

// GetMonitor returns the monitor used in the simulation. It is nil when
// the simulation is built without monitoring.
func (s *Simulation) GetMonitor() *monitoring.Monitor {
	return s.monitor
}

// GetMetrics returns the metric series registry of the run.
func (s *Simulation) GetMetrics() *metrics.Registry {
	return s.registry
}

// RegisterComponent registers a named piece of model state with the
// simulation, and with the monitor when one is running. The name must
// satisfy sim.NameMustBeValid.
func (s *Simulation) RegisterComponent(name string, state any) {
	sim.NameMustBeValid(name)

	if _, exists := s.compNameIndex[name]; exists {
		panic("component " + name + " already registered")
	}

	s.components = append(s.components, namedState{name, state})
	s.compNameIndex[name] = len(s.components) - 1

	if s.monitor != nil {
		s.monitor.RegisterComponent(name, state)
	}
}

// GetComponentByName returns the state registered under the given name.
func (s *Simulation) GetComponentByName(name string) any {
	index, exists := s.compNameIndex[name]
	if !exists {
		return nil
	}

	return s.components[index].state
}

// Components returns the names of all registered components.
func (s *Simulation) Components() []string {
	names := make([]string, len(s.components))
	for i, c := range s.components {
		names[i] = c.name
	}

	return names
}

// RegisterQueue reports a waiter queue to the monitor when one is running.
func (s *Simulation) RegisterQueue(q monitoring.Queue) {
	if s.monitor != nil {
		s.monitor.RegisterQueue(q)
	}
}

// RunUntil advances the run to the given virtual time. When a monitor is
// running, the covered portion of the horizon shows up on its page as a
// progress bar.
func (s *Simulation) RunUntil(until sim.VTime) error {
	if s.monitor == nil {
		return s.env.RunUntil(until)
	}

	bar := s.monitor.CreateProgressBar("virtual time",
		uint64(math.Ceil(float64(until))))
	defer s.monitor.CompleteProgressBar(bar)

	ticker := sim.NewTicker(s.env, 1, func(sim.VTime) {
		bar.IncrementFinished(1)
	})
	ticker.Start()
	defer ticker.Stop()

	return s.env.RunUntil(until)
}

// Terminate terminates the simulation, flushing and closing the recorder.
func (s *Simulation) Terminate() {
	if s.recorder == nil {
		return
	}

	err := s.recorder.Close()
	if err != nil {
		log.Panic(err)
	}
}
