package idhash

import (
	"testing"
	"time"

	"gbm-asset-lab/internal/domain"
)

func baseParams() domain.SimulationParams {
	p := domain.DefaultParams()
	p.StartDate = time.Date(2021, 1, 4, 0, 0, 0, 0, time.UTC)
	p.EndDate = time.Date(2021, 1, 8, 0, 0, 0, 0, time.UTC)
	return p
}

func TestComputeRunID(t *testing.T) {
	got := ComputeRunID(baseParams(), false)

	if len(got) != 64 {
		t.Errorf("ComputeRunID() length = %d, want 64", len(got))
	}
}

func TestComputeRunID_Determinism(t *testing.T) {
	results := make([]string, 10)
	for i := 0; i < 10; i++ {
		results[i] = ComputeRunID(baseParams(), true)
	}

	for i := 1; i < 10; i++ {
		if results[i] != results[0] {
			t.Errorf("Run %d produced different result: %s != %s", i, results[i], results[0])
		}
	}
}

func TestComputeRunID_DifferentInputs(t *testing.T) {
	base := ComputeRunID(baseParams(), false)

	tests := []struct {
		name       string
		mutate     func(p *domain.SimulationParams)
		withVolume bool
	}{
		{"different seed", func(p *domain.SimulationParams) { p.RandomSeed = 43 }, false},
		{"different end date", func(p *domain.SimulationParams) { p.EndDate = p.EndDate.AddDate(0, 0, 1) }, false},
		{"different mu", func(p *domain.SimulationParams) { p.Mu = 0.1000000001 }, false},
		{"different paths", func(p *domain.SimulationParams) { p.NumPaths = 2 }, false},
		{"different symbol length", func(p *domain.SimulationParams) { p.SymbolLength = 4 }, false},
		{"volume enabled", func(p *domain.SimulationParams) {}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := baseParams()
			tt.mutate(&p)
			if got := ComputeRunID(p, tt.withVolume); got == base {
				t.Errorf("ComputeRunID() should differ from base: %s", got)
			}
		})
	}
}

func TestComputeRunID_IgnoresTimeOfDay(t *testing.T) {
	p := baseParams()
	q := baseParams()
	q.StartDate = q.StartDate.Add(13 * time.Hour)

	if ComputeRunID(p, false) != ComputeRunID(q, false) {
		t.Error("ComputeRunID() should depend on the calendar date only")
	}
}
