package symbol

import (
	"testing"

	"gbm-asset-lab/internal/simulation"
	"gbm-asset-lab/internal/simulation/stub"
)

func TestGenerate_Length(t *testing.T) {
	src := simulation.NewSource(42)

	for _, n := range []int{1, 3, 5, 12} {
		got := Generate(src, n)
		if len(got) != n {
			t.Errorf("Generate(%d) length = %d", n, len(got))
		}
		if !Valid(got) {
			t.Errorf("Generate(%d) = %q contains non-uppercase characters", n, got)
		}
	}
}

func TestGenerate_FixedSequence(t *testing.T) {
	src := &stub.Source{Ints: []int{0, 25, 1, 24, 12}}

	got := Generate(src, 5)

	if got != "AZBYM" {
		t.Errorf("expected AZBYM, got %q", got)
	}
	if src.IntnCalls != 5 {
		t.Errorf("expected 5 draws, got %d", src.IntnCalls)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	a := Generate(simulation.NewSource(7), 8)
	b := Generate(simulation.NewSource(7), 8)

	if a != b {
		t.Errorf("same seed produced %q and %q", a, b)
	}
}

func TestGenerate_NonPositiveLength(t *testing.T) {
	src := &stub.Source{Ints: []int{3}}

	if got := Generate(src, 0); got != "" {
		t.Errorf("expected empty symbol, got %q", got)
	}
	if src.IntnCalls != 0 {
		t.Errorf("expected no draws, got %d", src.IntnCalls)
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"ABCDE", true},
		{"Z", true},
		{"", false},
		{"abcde", false},
		{"AB1DE", false},
		{"AB DE", false},
	}

	for _, tt := range tests {
		if got := Valid(tt.in); got != tt.want {
			t.Errorf("Valid(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
