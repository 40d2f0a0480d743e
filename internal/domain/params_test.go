package domain

import (
	"errors"
	"testing"
	"time"
)

func validParams() SimulationParams {
	p := DefaultParams()
	p.StartDate = time.Date(2021, 1, 4, 0, 0, 0, 0, time.UTC)
	p.EndDate = time.Date(2021, 1, 8, 0, 0, 0, 0, time.UTC)
	return p
}

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()

	if p.NumAssets != 1 || p.NumPaths != 1 {
		t.Errorf("expected 1 asset and 1 path, got %d/%d", p.NumAssets, p.NumPaths)
	}
	if p.RandomSeed != 42 {
		t.Errorf("expected seed 42, got %d", p.RandomSeed)
	}
	if p.SymbolLength != 5 {
		t.Errorf("expected symbol length 5, got %d", p.SymbolLength)
	}
	if p.InitPrice != 100.0 || p.Mu != 0.1 || p.Sigma != 0.3 || p.SigmaPrime != 0.9 {
		t.Errorf("unexpected model defaults: %+v", p)
	}
	if p.ParetoShape != 1.5 {
		t.Errorf("expected pareto shape 1.5, got %f", p.ParetoShape)
	}
}

func TestSimulationParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *SimulationParams)
		wantErr bool
	}{
		{name: "valid", mutate: func(p *SimulationParams) {}},
		{name: "zero paths allowed", mutate: func(p *SimulationParams) { p.NumPaths = 0 }},
		{name: "zero assets allowed", mutate: func(p *SimulationParams) { p.NumAssets = 0 }},
		{name: "start after end allowed", mutate: func(p *SimulationParams) { p.StartDate, p.EndDate = p.EndDate, p.StartDate }},
		{name: "non-positive price allowed", mutate: func(p *SimulationParams) { p.InitPrice = -1 }},
		{name: "missing start", mutate: func(p *SimulationParams) { p.StartDate = time.Time{} }, wantErr: true},
		{name: "missing end", mutate: func(p *SimulationParams) { p.EndDate = time.Time{} }, wantErr: true},
		{name: "negative paths", mutate: func(p *SimulationParams) { p.NumPaths = -1 }, wantErr: true},
		{name: "negative assets", mutate: func(p *SimulationParams) { p.NumAssets = -2 }, wantErr: true},
		{name: "empty symbol", mutate: func(p *SimulationParams) { p.SymbolLength = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidParams) {
					t.Errorf("expected ErrInvalidParams, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2021-01-04")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	want := time.Date(2021, 1, 4, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	for _, bad := range []string{"", "2021/01/04", "04-01-2021", "2021-13-01"} {
		if _, err := ParseDate(bad); !errors.Is(err, ErrInvalidParams) {
			t.Errorf("ParseDate(%q): expected ErrInvalidParams, got %v", bad, err)
		}
	}
}

func TestPathSet_Len(t *testing.T) {
	if (PathSet{}).Len() != 0 {
		t.Error("empty set should have length 0")
	}
	ps := PathSet{{1, 2, 3}, {4, 5, 6}}
	if ps.Len() != 3 {
		t.Errorf("expected length 3, got %d", ps.Len())
	}
	if ColumnName(1) != "close_1" {
		t.Errorf("unexpected column name %q", ColumnName(1))
	}
}
