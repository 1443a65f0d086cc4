// Package rng provides the single seedable random source the pipeline
// routes all randomness through, so that a fixed seed yields a
// reproducible run end to end.
package rng

import "math/rand"

// New returns a *rand.Rand seeded deterministically. A nil seed pointer
// falls back to a fixed default seed rather than wall-clock time, since an
// unseeded run must still be reproducible within a single process.
func New(seed *int64) *rand.Rand {
	s := int64(42)
	if seed != nil {
		s = *seed
	}
	return rand.New(rand.NewSource(s))
}
