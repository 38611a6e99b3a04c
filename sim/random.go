package sim

import (
	"math/rand"
	"time"
)

// Variates is the set of draws the simulator needs. Each call advances the
// underlying stream, so callers must keep the draw order fixed.
type Variates interface {
	Normal(mean, stddev float64) float64
	Uniform(low, high float64) float64
	Exponential(rate float64) float64
}

// Source is a seedable Variates backed by math/rand.
// It is not safe for concurrent use; give each goroutine its own Source.
type Source struct {
	seed int64
	rng  *rand.Rand
}

// NewSource returns a reproducible stream for seed.
func NewSource(seed int64) *Source {
	return &Source{seed: seed, rng: rand.New(rand.NewSource(seed))}
}

// NewRandomSource seeds from the wall clock.
func NewRandomSource() *Source { return NewSource(time.Now().UnixNano()) }

// Reseed rewinds the stream to the start of seed's sequence.
func (s *Source) Reseed(seed int64) {
	s.seed = seed
	s.rng.Seed(seed)
}

// Seed reports the seed the stream was last (re)started from.
func (s *Source) Seed() int64 { return s.seed }

// Normal draws from N(mean, stddev^2). The result is not clamped.
func (s *Source) Normal(mean, stddev float64) float64 {
	return s.rng.NormFloat64()*stddev + mean
}

// Uniform draws from [low, high).
func (s *Source) Uniform(low, high float64) float64 {
	return low + (high-low)*s.rng.Float64()
}

// Exponential draws with the given rate (mean 1/rate). Always >= 0.
func (s *Source) Exponential(rate float64) float64 {
	return s.rng.ExpFloat64() / rate
}
