// Package randutil centralises construction of deterministic random
// sources. All engine randomness (deck shuffles, signal interception) flows
// through a *rand.Rand built here so that seeded runs replay exactly.
package randutil

import rand "math/rand/v2"

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from the provided
// int64, deriving the two 64-bit PCG seeds rand/v2 requires.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Derive maps a base seed and an index to an independent stream seed.
// The match controller and simulator use it to give every partial game and
// every rollout its own reproducible sequence.
func Derive(seed int64, index int) int64 {
	return int64(mix(uint64(seed) + uint64(index)*goldenRatio64))
}

// mix is a splitmix64-style finalizer.
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
