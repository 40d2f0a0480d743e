// Package simulation generates synthetic price and volume series.
package simulation

import (
	"math"

	"gbm-asset-lab/internal/calendar"
	"gbm-asset-lab/internal/domain"
)

// GBM generates price paths from the analytical solution of geometric
// Brownian motion with a time-scaled volatility term.
type GBM struct {
	InitPrice  float64 // S0, precondition: > 0
	Mu         float64 // drift
	Sigma      float64 // base volatility
	SigmaPrime float64 // volatility growth, effective vol = Sigma + SigmaPrime*dt
}

// NewGBM builds a generator from run parameters.
func NewGBM(p domain.SimulationParams) *GBM {
	return &GBM{
		InitPrice:  p.InitPrice,
		Mu:         p.Mu,
		Sigma:      p.Sigma,
		SigmaPrime: p.SigmaPrime,
	}
}

// Step returns the time step for a grid of n business days.
// T = n/252 and dt = T/n, so dt is one trading day for any n > 0.
func Step(n int) float64 {
	if n <= 0 {
		return 0
	}
	T := float64(n) / calendar.TradingDaysPerYear
	return T / float64(n)
}

// GeneratePaths returns numPaths independent paths of length n.
// Paths are drawn one after another: all n samples of path 0 first, then
// path 1, so a seeded source reproduces the set exactly.
func (g *GBM) GeneratePaths(src Source, n, numPaths int) domain.PathSet {
	if numPaths <= 0 {
		return domain.PathSet{}
	}
	paths := make(domain.PathSet, numPaths)
	for i := range paths {
		paths[i] = g.GeneratePath(src, n)
	}
	return paths
}

// GeneratePath returns a single path of length n.
// Each step applies exp((mu - sigma^2/2)*dt + (sigma + sigma'*dt)*z*sqrt(dt))
// and the path is the running product scaled by InitPrice.
// n <= 0 draws nothing and returns an empty path.
func (g *GBM) GeneratePath(src Source, n int) domain.Path {
	if n <= 0 {
		return domain.Path{}
	}

	dt := Step(n)
	drift := (g.Mu - g.Sigma*g.Sigma/2) * dt
	vol := g.Sigma + g.SigmaPrime*dt
	sqrtDt := math.Sqrt(dt)

	path := make(domain.Path, n)
	cum := 1.0
	for k := 0; k < n; k++ {
		z := src.NormFloat64() * sqrtDt
		cum *= math.Exp(drift + vol*z)
		path[k] = g.InitPrice * cum
	}
	return path
}
