// Package rng wraps math/rand/v2 with the deterministic-by-default
// seeding the simulator needs: two runs given the same seed and the
// same input must produce bit-identical trajectories.
package rng

import "math/rand/v2"

// DefaultSeed is the seed the original program hardcodes; fluidsim uses
// it unless --seed overrides it.
const DefaultSeed = 1337

// RNG is a thin convenience wrapper around math/rand/v2's PCG source.
type RNG struct {
	r *rand.Rand
}

// New creates a deterministic RNG from seed. The pack carries no
// MT19937 (or any other non-default PRNG) library, so PCG stands in for
// the original's std::mt19937; both are deterministic, equidistributed
// generators and the simulation's correctness does not depend on the
// specific algorithm, only on repeatability for a fixed seed.
func New(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Float64 returns a pseudo-random value in [0, 1), the random01()
// primitive the probabilistic movement phase draws from.
func (r *RNG) Float64() float64 {
	return r.r.Float64()
}

// Source exposes the underlying rand.Rand for callers that need a
// broader surface than Float64.
func (r *RNG) Source() *rand.Rand { return r.r }
