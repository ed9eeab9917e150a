package randutil

import (
	rand "math/rand/v2"
	"time"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// Shuffles and scripted decisions both draw from generators built here, so a
// match replays exactly from its seed.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Seed returns seed unchanged when it is non-zero, otherwise a seed derived
// from the wall clock. Zero means "pick one for me" in config and flags.
func Seed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	s := time.Now().UnixNano()
	if s == 0 {
		s = 1
	}
	return s
}

// Derive returns a child seed for stream n of a parent seed, letting
// independent matches share one operator-supplied seed.
func Derive(parent int64, n int) int64 {
	return int64(mix(uint64(parent) + uint64(n)*goldenRatio64))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
