package idhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"

	"gbm-asset-lab/internal/domain"
)

// ComputeRunID computes a deterministic run_id using SHA256.
// Formula: SHA256(start|end|init_price|mu|sigma|sigma_prime|num_paths|num_assets|seed|symbol_length|pareto_shape|with_volume)
// Dates use YYYY-MM-DD; floats use the shortest exact representation.
// Returns hex-encoded hash (64 characters).
//
// Two runs with equal run_ids produce byte-identical outputs.
func ComputeRunID(p domain.SimulationParams, withVolume bool) string {
	data := fmt.Sprintf("%s|%s|%s|%s|%s|%s|%d|%d|%d|%d|%s|%t",
		p.StartDate.Format(domain.DateLayout),
		p.EndDate.Format(domain.DateLayout),
		formatFloat(p.InitPrice),
		formatFloat(p.Mu),
		formatFloat(p.Sigma),
		formatFloat(p.SigmaPrime),
		p.NumPaths,
		p.NumAssets,
		p.RandomSeed,
		p.SymbolLength,
		formatFloat(p.ParetoShape),
		withVolume,
	)

	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
