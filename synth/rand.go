package synth

import "math/rand"

// Rand yields uniform draws in [0, 1). *rand.Rand satisfies it; tests
// substitute fixed sequences.
type Rand interface {
	Float64() float64
}

// NewRand returns a seeded uniform source. The same seed over the same
// input replays the same synthesized values.
func NewRand(seed int64) Rand {
	return rand.New(rand.NewSource(seed))
}
