package sim

// RNG is a deterministic pseudo-random number generator (64-bit LCG).
// Every session owns its own instance seeded from the runtime config, so
// identically seeded sessions produce identical tick sequences. Streams are
// local to a session; no cross-session replay is supported.
type RNG struct {
	state uint64
}

// NewRNG creates a new generator with the given seed. A zero seed is
// replaced with 1 so the LCG never degenerates.
func NewRNG(seed int64) *RNG {
	s := uint64(seed) //#nosec G115 -- intentional conversion for RNG seeding
	if s == 0 {
		s = 1
	}
	return &RNG{state: s}
}

// Next generates the next random uint64.
func (r *RNG) Next() uint64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// State returns the raw generator state, for snapshots.
func (r *RNG) State() uint64 {
	return r.state
}

// Restore sets the raw generator state from a snapshot.
func (r *RNG) Restore(state uint64) {
	if state == 0 {
		state = 1
	}
	r.state = state
}

// Intn returns a random int in [0, n).
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n)) //#nosec G115 -- n is always positive
}

// Float64 returns a random float64 in [0, 1).
func (r *RNG) Float64() float64 {
	return float64(r.Next()) / float64(1<<64)
}

// Range returns a random float64 in [lo, hi).
func (r *RNG) Range(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.Float64()*(hi-lo)
}
