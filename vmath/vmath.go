package vmath

import "math"

// Clamp restricts v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SnapZero returns 0 when |v| is below threshold, v otherwise
func SnapZero(v, threshold float64) float64 {
	if math.Abs(v) < threshold {
		return 0
	}
	return v
}

// --- Randomness ---

// FastRand is a xorshift64 generator
// Same seed yields the same sequence, which the spawner relies on for replayable sessions
type FastRand struct {
	state uint64
}

func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = 1
	}
	return &FastRand{state: seed}
}

func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

// Intn returns a value in [0, n), 0 for n <= 0
func (r *FastRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}
