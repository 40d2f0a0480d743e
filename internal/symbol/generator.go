// Package symbol generates random ticker symbols for synthetic assets.
package symbol

// Alphabet is the set symbols are drawn from.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Intn is the slice of a random source the generator needs.
type Intn interface {
	Intn(n int) int
}

// Generate returns length uppercase ASCII letters drawn uniformly with
// repetition. Uniqueness across calls is not guaranteed.
func Generate(src Intn, length int) string {
	if length <= 0 {
		return ""
	}
	b := make([]byte, length)
	for i := range b {
		b[i] = Alphabet[src.Intn(len(Alphabet))]
	}
	return string(b)
}

// Valid reports whether s consists only of uppercase ASCII letters and is non-empty.
func Valid(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}
