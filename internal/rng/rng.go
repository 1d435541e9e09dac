// Package rng provides the seeded pseudo-random source used for all
// stochastic behavior in the simulation. Every draw comes from a single
// splitmix64 stream so that a seed plus a call sequence fully determines
// the outcome, across runs and platforms.
package rng

// Source is a deterministic random source. The zero value is not usable;
// construct with New.
type Source struct {
	state uint64
}

// New creates a Source from an integer seed.
func New(seed int64) *Source {
	return &Source{state: uint64(seed)}
}

// next64 advances the splitmix64 state and returns the next 64-bit value.
func (s *Source) next64() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// Float64 returns the next value in [0, 1).
func (s *Source) Float64() float64 {
	// Use the top 53 bits for a uniform float64 in [0, 1).
	return float64(s.next64()>>11) / float64(1<<53)
}

// Range returns the next value in [min, max).
func (s *Source) Range(min, max float64) float64 {
	return min + s.Float64()*(max-min)
}

// IntN returns the next integer in [0, n). n must be positive.
func (s *Source) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return int(s.next64() % uint64(n))
}

// Pick returns a uniformly chosen element of items, or the zero value for
// an empty slice.
func Pick[T any](s *Source, items []T) T {
	var zero T
	if len(items) == 0 {
		return zero
	}
	return items[s.IntN(len(items))]
}

// State returns the internal state for snapshotting.
func (s *Source) State() uint64 {
	return s.state
}

// Restore resets the internal state from a snapshot.
func (s *Source) Restore(state uint64) {
	s.state = state
}

// Read fills p with pseudo-random bytes. Implements io.Reader so the
// source can feed uuid.NewRandomFromReader; never returns an error.
func (s *Source) Read(p []byte) (int, error) {
	for i := 0; i < len(p); i += 8 {
		v := s.next64()
		for j := 0; j < 8 && i+j < len(p); j++ {
			p[i+j] = byte(v >> (8 * j))
		}
	}
	return len(p), nil
}
