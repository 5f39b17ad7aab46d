package t2048

import (
	"math/rand"
	"time"
)

// Source supplies uniform floats in [0, 1) for spawn placement and values.
// *rand.Rand satisfies it; tests inject scripted sources.
type Source interface {
	Float64() float64
}

// NewSource returns a seeded pseudo-random source.
// Seed 0 means seed from the current time.
func NewSource(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
