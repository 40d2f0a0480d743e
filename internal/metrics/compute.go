// Package metrics computes summary statistics over simulated path sets.
package metrics

import (
	"math"
	"sort"

	"gbm-asset-lab/internal/domain"
)

// AssetSummary describes the terminal-price distribution of one asset.
type AssetSummary struct {
	Symbol         string  `json:"symbol"`
	NumPaths       int     `json:"num_paths"`
	NumSteps       int     `json:"num_steps"`
	TerminalMean   float64 `json:"terminal_mean"`
	TerminalMedian float64 `json:"terminal_median"`
	TerminalP10    float64 `json:"terminal_p10"`
	TerminalP90    float64 `json:"terminal_p90"`
	TerminalMin    float64 `json:"terminal_min"`
	TerminalMax    float64 `json:"terminal_max"`
	TerminalStddev float64 `json:"terminal_stddev"`
	WorstDrawdown  float64 `json:"worst_drawdown"` // largest peak-to-trough fraction over all paths
}

// Summarize computes the summary for a record. Empty paths contribute nothing.
func Summarize(rec *domain.AssetRecord) AssetSummary {
	s := AssetSummary{
		Symbol:   rec.Symbol,
		NumPaths: len(rec.Paths),
		NumSteps: rec.Paths.Len(),
	}

	terminals := make([]float64, 0, len(rec.Paths))
	for _, p := range rec.Paths {
		if len(p) == 0 {
			continue
		}
		terminals = append(terminals, p[len(p)-1])
		if dd := computeMaxDrawdown(p); dd > s.WorstDrawdown {
			s.WorstDrawdown = dd
		}
	}
	if len(terminals) == 0 {
		return s
	}

	sorted := append([]float64(nil), terminals...)
	sort.Float64s(sorted)

	s.TerminalMean = computeMean(terminals)
	s.TerminalStddev = computeStddev(terminals, s.TerminalMean)
	s.TerminalMedian = computePercentile(sorted, 0.50)
	s.TerminalP10 = computePercentile(sorted, 0.10)
	s.TerminalP90 = computePercentile(sorted, 0.90)
	s.TerminalMin = sorted[0]
	s.TerminalMax = sorted[len(sorted)-1]
	return s
}

// computeMean calculates the arithmetic mean.
func computeMean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// computeStddev calculates sample standard deviation (n-1 denominator).
func computeStddev(values []float64, mean float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	sumSq := 0.0
	for _, v := range values {
		diff := v - mean
		sumSq += diff * diff
	}
	return math.Sqrt(sumSq / float64(n-1))
}

// computePercentile uses linear interpolation.
// sorted must be pre-sorted ASC.
// p is percentile (0.10 = 10th percentile).
func computePercentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}

	idx := p * float64(n-1)
	lower := int(idx)
	upper := lower + 1
	if upper >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower])
}

// computeMaxDrawdown returns the largest relative peak-to-trough decline
// of a price path: max over t of (peak_t - p_t) / peak_t.
func computeMaxDrawdown(prices domain.Path) float64 {
	if len(prices) == 0 {
		return 0
	}

	peak := prices[0]
	maxDrawdown := 0.0
	for _, p := range prices {
		if p > peak {
			peak = p
		}
		if peak <= 0 {
			continue
		}
		if dd := (peak - p) / peak; dd > maxDrawdown {
			maxDrawdown = dd
		}
	}
	return maxDrawdown
}
