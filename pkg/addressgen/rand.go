package addressgen

const (
	lcgMultiplier = 1103515245
	lcgIncrement  = 12345
	lcgMask       = 0x7fffffff
	lcgModulus    = float64(1 << 31)
)

// Rand is a source of pseudo random numbers in the interval [0, 1).
type Rand func() float64

// NewRand returns a linear congruential generator seeded with the absolute
// value of the given hash. Every call to the returned function advances the
// 31-bit state and returns state/2^31.
func NewRand(seed int32) Rand {
	state := int64(seed)
	if state < 0 {
		state = -state
	}

	return func() float64 {
		state = (state*lcgMultiplier + lcgIncrement) & lcgMask
		return float64(state) / lcgModulus
	}
}

// Intn returns a number in [0, n) drawn from rng.
func (rng Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	i := int(rng() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}
