package reporting

import (
	"time"

	"gbm-asset-lab/internal/domain"
	"gbm-asset-lab/internal/metrics"
)

// RunReport represents the Markdown summary of one generation run.
type RunReport struct {
	// Metadata
	RunID       string
	GeneratedAt time.Time
	Params      domain.SimulationParams
	WithVolume  bool

	GridSize int

	// Assets in generation order
	Assets []AssetRow

	// Symbols generated more than once; later files replaced earlier ones.
	Collisions []string
}

// AssetRow is one generated asset with its terminal-price summary.
type AssetRow struct {
	Symbol   string
	Location string
	Summary  metrics.AssetSummary
}
