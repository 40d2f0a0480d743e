package domain

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format used on the CLI and in CSV output.
const DateLayout = "2006-01-02"

// SimulationParams holds the model and run parameters for one generation run.
// Passed by value; never mutated after construction.
type SimulationParams struct {
	StartDate    time.Time // first calendar date of the grid (inclusive)
	EndDate      time.Time // last calendar date of the grid (inclusive)
	InitPrice    float64   // starting price, must be > 0 for meaningful output
	Mu           float64   // annualised drift
	Sigma        float64   // base volatility
	SigmaPrime   float64   // volatility growth term applied as sigma + sigma'*dt
	NumPaths     int       // paths per asset
	NumAssets    int       // assets (CSV files) per run
	RandomSeed   int64     // seed for the shared random source
	SymbolLength int       // letters in a generated symbol
	ParetoShape  float64   // volume distribution shape, only used with volume output
}

// Default parameter values.
const (
	DefaultNumAssets    = 1
	DefaultNumPaths     = 1
	DefaultRandomSeed   = 42
	DefaultSymbolLength = 5
	DefaultInitPrice    = 100.0
	DefaultMu           = 0.1
	DefaultSigma        = 0.3
	DefaultSigmaPrime   = 0.9
	DefaultParetoShape  = 1.5
)

// DefaultParams returns the parameter set with every default applied.
// StartDate and EndDate are left zero; they have no default.
func DefaultParams() SimulationParams {
	return SimulationParams{
		InitPrice:    DefaultInitPrice,
		Mu:           DefaultMu,
		Sigma:        DefaultSigma,
		SigmaPrime:   DefaultSigmaPrime,
		NumPaths:     DefaultNumPaths,
		NumAssets:    DefaultNumAssets,
		RandomSeed:   DefaultRandomSeed,
		SymbolLength: DefaultSymbolLength,
		ParetoShape:  DefaultParetoShape,
	}
}

// Validate checks the structural constraints of the parameter set.
// InitPrice is intentionally not checked: a non-positive price yields
// degenerate output, not an error.
func (p SimulationParams) Validate() error {
	if p.StartDate.IsZero() {
		return fmt.Errorf("%w: start date is required", ErrInvalidParams)
	}
	if p.EndDate.IsZero() {
		return fmt.Errorf("%w: end date is required", ErrInvalidParams)
	}
	if p.NumPaths < 0 {
		return fmt.Errorf("%w: num-paths must be >= 0, got %d", ErrInvalidParams, p.NumPaths)
	}
	if p.NumAssets < 0 {
		return fmt.Errorf("%w: num-assets must be >= 0, got %d", ErrInvalidParams, p.NumAssets)
	}
	if p.SymbolLength < 1 {
		return fmt.Errorf("%w: symbol-length must be >= 1, got %d", ErrInvalidParams, p.SymbolLength)
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD string into a UTC midnight time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q (want YYYY-MM-DD)", ErrInvalidParams, s)
	}
	return t, nil
}
