package simulation

import "math/rand"

// Source is the random stream consumed by every generator in a run.
// *rand.Rand satisfies it; tests inject fixed-sequence stubs.
type Source interface {
	// NormFloat64 returns a standard normal sample.
	NormFloat64() float64
	// ExpFloat64 returns a standard exponential sample (rate 1).
	ExpFloat64() float64
	// Intn returns a uniform int in [0, n).
	Intn(n int) int
}

// NewSource returns a seeded source. A run seeds exactly one source and
// threads it through all generators so draws happen in a single fixed order.
func NewSource(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

var _ Source = (*rand.Rand)(nil)
