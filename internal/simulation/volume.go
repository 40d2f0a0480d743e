package simulation

import "math"

// VolumeScale converts a unit Pareto sample into a share volume.
const VolumeScale = 1_000_000.0

// ParetoVolume draws n daily volumes from a Lomax (Pareto II) distribution
// with the given shape, scaled by VolumeScale and truncated to integers.
// The values are uncorrelated with any price path.
func ParetoVolume(src Source, shape float64, n int) []int64 {
	if n <= 0 {
		return []int64{}
	}
	volumes := make([]int64, n)
	for i := range volumes {
		volumes[i] = int64(lomax(src, shape) * VolumeScale)
	}
	return volumes
}

// lomax samples Pareto II via exp(E/shape) - 1 with E ~ Exp(1).
func lomax(src Source, shape float64) float64 {
	if shape <= 0 {
		return 0
	}
	return math.Expm1(src.ExpFloat64() / shape)
}
