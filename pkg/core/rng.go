package core

import (
	"hash/fnv"
	"math/rand/v2"
)

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// NewStream creates an independent deterministic stream for one keyed
// consumer. Two streams with the same seed but different keys never share
// state, so consumers can draw concurrently and in any order.
func NewStream(seed int64, key uint64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), key))}
}

// StreamKey folds an arbitrary list of labels into a stream key.
func StreamKey(parts ...string) uint64 {
	h := fnv.New64a()
	for _, p := range parts {
		_, _ = h.Write([]byte(p))
		_, _ = h.Write([]byte{0})
	}
	return h.Sum64()
}

// Float64 returns a uniform value in [0, 1).
func (r *RNG) Float64() float64 {
	return r.r.Float64()
}
