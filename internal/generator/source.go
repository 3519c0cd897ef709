package generator

import "math/rand/v2"

// Source is the stream of random draws consumed by Generate. *rand.Rand satisfies it.
type Source interface {
	// IntN returns a value in [0, n). Panics if n <= 0.
	IntN(n int) int
	// Float64 returns a value in [0.0, 1.0).
	Float64() float64
}

// NewSource returns a deterministic PCG-backed source for the given seed.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewRandomSource returns a source seeded from the runtime's random state; runs differ.
func NewRandomSource() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
