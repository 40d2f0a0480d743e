// Package stub provides a fixed-sequence random source for tests.
package stub

// Source implements simulation.Source by replaying fixed sequences.
// Each sequence cycles when exhausted; an empty sequence yields zero.
type Source struct {
	Normals      []float64
	Exponentials []float64
	Ints         []int

	NormCalls int
	ExpCalls  int
	IntnCalls int
}

// NewSource creates a stub source replaying the given normal samples.
func NewSource(normals ...float64) *Source {
	return &Source{Normals: normals}
}

// NormFloat64 returns the next normal sample.
func (s *Source) NormFloat64() float64 {
	v := 0.0
	if len(s.Normals) > 0 {
		v = s.Normals[s.NormCalls%len(s.Normals)]
	}
	s.NormCalls++
	return v
}

// ExpFloat64 returns the next exponential sample.
func (s *Source) ExpFloat64() float64 {
	v := 0.0
	if len(s.Exponentials) > 0 {
		v = s.Exponentials[s.ExpCalls%len(s.Exponentials)]
	}
	s.ExpCalls++
	return v
}

// Intn returns the next int reduced modulo n.
func (s *Source) Intn(n int) int {
	v := 0
	if len(s.Ints) > 0 {
		v = s.Ints[s.IntnCalls%len(s.Ints)]
	}
	s.IntnCalls++
	return ((v % n) + n) % n
}

// Calls returns the total number of draws made.
func (s *Source) Calls() int {
	return s.NormCalls + s.ExpCalls + s.IntnCalls
}
