// SPDX-License-Identifier: MIT
// Package cases - deterministic RNG utilities for measurement noise and
// generated operating points.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Each synthesis call owns its stream.

package cases

import "math/rand"

// defaultRNGSeed is used when callers pass seed == 0.
const defaultRNGSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ defaultRNGSeed; otherwise the seed verbatim.
func rngFromSeed(seed int64) *rand.Rand {
	s := seed
	if s == 0 {
		s = defaultRNGSeed
	}

	return rand.New(rand.NewSource(s))
}

// deriveSeed mixes a parent seed and a stream id (SplitMix64 finalizer), so
// the voltage profile and the measurement noise of one case never share a
// stream.
func deriveSeed(parent int64, stream uint64) int64 {
	var x uint64
	x = uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return int64(x)
}

// uniform returns a draw in [-amp, amp].
func uniform(r *rand.Rand, amp float64) float64 {
	return (2*r.Float64() - 1) * amp
}
