package metrics

import "github.com/enzo-santos-ufpa/sd/sim"

// An OccupancySampler probes a state function at a fixed virtual-time
// period and records the readings into a series, such as the holder count
// of a resource or the level of a container.
type OccupancySampler struct {
	series *Series
	ticker *sim.Ticker
}

// NewOccupancySampler creates a sampler that records probe() into series
// every period once started.
func NewOccupancySampler(
	env *sim.Environment,
	series *Series,
	period sim.VTime,
	probe func() float64,
) *OccupancySampler {
	s := &OccupancySampler{series: series}
	s.ticker = sim.NewTicker(env, period, func(now sim.VTime) {
		series.Add(now, probe())
	})

	return s
}

// Series returns the series the sampler records into.
func (s *OccupancySampler) Series() *Series {
	return s.series
}

// Start schedules the first probe one period from now.
func (s *OccupancySampler) Start() {
	s.ticker.Start()
}

// Stop cancels future probes.
func (s *OccupancySampler) Stop() {
	s.ticker.Stop()
}
