package maze

// RNG is a deterministic splitmix64 generator.
// The same seed always yields the same stream; no global or time-based
// entropy is involved, and negative seeds are as valid as positive ones.
type RNG struct {
	state uint64
}

// NewRNG creates a generator seeded with seed.
func NewRNG(seed int64) *RNG {
	return &RNG{state: uint64(seed)}
}

// Uint64 advances the generator and returns the next 64 random bits.
func (r *RNG) Uint64() uint64 {
	r.state += 0x9E3779B97F4A7C15
	z := r.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// Float64 returns a value in [0, 1).
func (r *RNG) Float64() float64 {
	return float64(r.Uint64()>>11) / (1 << 53)
}

// Intn returns a value in [0, n). Returns 0 for n <= 0.
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	i := int(r.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

// Int63 returns a non-negative 63-bit value, handy for deriving follow-up seeds.
func (r *RNG) Int63() int64 {
	return int64(r.Uint64() >> 1)
}
