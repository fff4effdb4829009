// Package metrics collects named sample series out of a running simulation
// and summarizes them after the run. It sits outside the scheduling loop,
// observing state the engine exposes.
package metrics

import (
	"sort"
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/enzo-santos-ufpa/sd/sim"
)

// A Series is an append-only collection of (time, value) samples sharing
// one name, such as the wait time of every served customer.
type Series struct {
	sync.Mutex

	name   string
	times  []float64
	values []float64
}

// NewSeries creates an empty series with the given name.
func NewSeries(name string) *Series {
	return &Series{name: name}
}

// Name returns the series name.
func (s *Series) Name() string {
	return s.name
}

// Add appends one sample taken at the given virtual time.
func (s *Series) Add(t sim.VTime, v float64) {
	s.Lock()
	s.times = append(s.times, float64(t))
	s.values = append(s.values, v)
	s.Unlock()
}

// Len returns the number of samples.
func (s *Series) Len() int {
	s.Lock()
	defer s.Unlock()

	return len(s.values)
}

// Values returns a copy of the sample values in insertion order.
func (s *Series) Values() []float64 {
	s.Lock()
	defer s.Unlock()

	out := make([]float64, len(s.values))
	copy(out, s.values)

	return out
}

// Times returns a copy of the sample times in insertion order.
func (s *Series) Times() []float64 {
	s.Lock()
	defer s.Unlock()

	out := make([]float64, len(s.times))
	copy(out, s.times)

	return out
}

// A Summary condenses a series into its descriptive statistics.
type Summary struct {
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	P50    float64
	P95    float64
}

// Summary computes the descriptive statistics of the samples collected so
// far. An empty series summarizes to all zeros.
func (s *Series) Summary() Summary {
	values := s.Values()
	if len(values) == 0 {
		return Summary{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	sum := Summary{
		Count: len(values),
		Mean:  stat.Mean(values, nil),
		Min:   floats.Min(sorted),
		Max:   floats.Max(sorted),
		P50:   stat.Quantile(0.5, stat.Empirical, sorted, nil),
		P95:   stat.Quantile(0.95, stat.Empirical, sorted, nil),
	}
	if len(values) > 1 {
		sum.StdDev = stat.StdDev(values, nil)
	}

	return sum
}
