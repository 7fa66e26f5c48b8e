// Package random provides the randomness source shared by the sky pipeline.
//
// Every random draw in skygen goes through a Source so that tests (and callers
// that want reproducible skies) can inject a seeded generator. *rand.Rand from
// math/rand/v2 satisfies Source directly.
package random

import "math/rand/v2"

// Source is the minimal random interface used by the generator.
type Source interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64

	// IntN returns a uniform value in [0, n). It panics if n <= 0.
	IntN(n int) int
}

// seedMix decorrelates the two PCG words derived from one seed.
const seedMix = 0x9e3779b97f4a7c15

// New returns a deterministic source for the given seed.
func New(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^seedMix))
}

// NewRandom returns a source seeded from the runtime's global generator.
func NewRandom() *rand.Rand {
	return New(rand.Uint64())
}

// Uniform returns a value in [lo, hi).
func Uniform(s Source, lo, hi float64) float64 {
	return lo + s.Float64()*(hi-lo)
}

// Pick returns a uniformly chosen element of items.
// It panics if items is empty.
func Pick[T any](s Source, items []T) T {
	return items[s.IntN(len(items))]
}
