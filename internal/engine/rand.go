package engine

import (
	"math/rand/v2"
	"time"
)

// NewRandom returns a PCG-backed source. A zero seed is replaced with the
// current time, so the sequence is not reproducible.
func NewRandom(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// ResolveRandom returns r, or fallback when r is nil.
func ResolveRandom(r Random, fallback Random) Random {
	if r != nil {
		return r
	}
	return fallback
}

// Uniform returns a number in [lo, hi). It returns lo exactly when lo == hi.
func Uniform(r Random, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// UniformInt returns an integer in [lo, hi]. It returns lo when hi <= lo.
func UniformInt(r Random, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.IntN(hi-lo+1)
}
