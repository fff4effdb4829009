// Package rng derives isolated, reproducible random streams from a single
// master seed. Each named stream is seeded by the master seed combined with
// a hash of the stream name, so draws on one stream never disturb another
// and two runs with the same seed replay identical sequences everywhere.
package rng

import (
	"hash/fnv"
	"log"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// A Partitioned hands out the named streams of one run.
//
// It is not safe for concurrent use. Simulation code draws from streams on
// the engine goroutine only.
type Partitioned struct {
	seed    int64
	streams map[string]*Stream
}

// NewPartitioned creates a stream source for the given master seed.
func NewPartitioned(seed int64) *Partitioned {
	return &Partitioned{
		seed:    seed,
		streams: make(map[string]*Stream),
	}
}

// Seed returns the master seed.
func (p *Partitioned) Seed() int64 {
	return p.seed
}

// Stream returns the stream for the given name, creating it on first use.
// The same name always returns the same instance.
func (p *Partitioned) Stream(name string) *Stream {
	if s, ok := p.streams[name]; ok {
		return s
	}

	s := newStream(p.seed ^ fnv1a64(name))
	p.streams[name] = s

	return s
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))

	return int64(h.Sum64())
}

// A Stream is one deterministic sequence of random draws.
type Stream struct {
	src  rand.Source
	rand *rand.Rand
}

func newStream(seed int64) *Stream {
	src := rand.NewPCG(uint64(seed), uint64(seed))

	return &Stream{
		src:  src,
		rand: rand.New(src),
	}
}

// Float64 returns a draw uniform in [0, 1).
func (s *Stream) Float64() float64 {
	return s.rand.Float64()
}

// IntN returns a draw uniform in [0, n).
func (s *Stream) IntN(n int) int {
	return s.rand.IntN(n)
}

// Perm returns a random permutation of [0, n).
func (s *Stream) Perm(n int) []int {
	return s.rand.Perm(n)
}

// Shuffle randomizes the order of n elements through swap.
func (s *Stream) Shuffle(n int, swap func(i, j int)) {
	s.rand.Shuffle(n, swap)
}

// Exponential returns a draw from the exponential distribution with the
// given mean. The mean must be positive.
func (s *Stream) Exponential(mean float64) float64 {
	if mean <= 0 {
		log.Panicf("exponential mean must be positive, got %g", mean)
	}

	return distuv.Exponential{Rate: 1 / mean, Src: s.src}.Rand()
}

// Normal returns a draw from the normal distribution with the given mean
// and standard deviation.
func (s *Stream) Normal(mean, stdDev float64) float64 {
	return distuv.Normal{Mu: mean, Sigma: stdDev, Src: s.src}.Rand()
}

// NormalAtLeast returns a normal draw clamped from below, for durations
// that must not go to zero or negative.
func (s *Stream) NormalAtLeast(mean, stdDev, floor float64) float64 {
	v := s.Normal(mean, stdDev)
	if v < floor {
		return floor
	}

	return v
}

// Uniform returns a draw uniform in [min, max).
func (s *Stream) Uniform(min, max float64) float64 {
	return distuv.Uniform{Min: min, Max: max, Src: s.src}.Rand()
}

// Triangular returns a draw from the triangular distribution over
// [min, max] peaking at mode.
func (s *Stream) Triangular(min, mode, max float64) float64 {
	return distuv.NewTriangle(min, max, mode, s.src).Rand()
}

// Categorical returns an index drawn with probability proportional to its
// weight. Weights must be non-negative with a positive sum.
func (s *Stream) Categorical(weights []float64) int {
	return int(distuv.NewCategorical(weights, s.src).Rand())
}
