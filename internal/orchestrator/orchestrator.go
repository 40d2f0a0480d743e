// Package orchestrator provides the asset generation loop.
// For each asset it coordinates: symbol → grid → paths → chart → storage
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gbm-asset-lab/internal/calendar"
	"gbm-asset-lab/internal/chart"
	"gbm-asset-lab/internal/domain"
	"gbm-asset-lab/internal/idhash"
	"gbm-asset-lab/internal/metrics"
	"gbm-asset-lab/internal/observability"
	"gbm-asset-lab/internal/simulation"
	"gbm-asset-lab/internal/storage"
	"gbm-asset-lab/internal/symbol"
)

// ErrNoStore is returned by Run when no asset store was configured.
var ErrNoStore = errors.New("orchestrator: asset store is required")

// Orchestrator runs one generation pass over all requested assets.
// It is single-use per random source: every draw advances the shared stream.
type Orchestrator struct {
	params     domain.SimulationParams
	store      storage.AssetStore
	chart      chart.Sink
	source     simulation.Source
	withVolume bool
	metrics    *observability.Metrics
	logger     *log.Logger
	verbose    bool
	now        func() time.Time
}

// Options for creating Orchestrator.
type Options struct {
	Params domain.SimulationParams

	// Required store
	Store storage.AssetStore

	// Optional presentation sink; nil disables rendering.
	Chart chart.Sink

	// Source supplies all randomness. Nil means a fresh source seeded
	// with Params.RandomSeed.
	Source simulation.Source

	WithVolume bool // append Pareto volume column
	Metrics    *observability.Metrics
	Logger     *log.Logger // defaults to the standard logger
	Verbose    bool
}

// New creates a new Orchestrator.
func New(opts Options) *Orchestrator {
	src := opts.Source
	if src == nil {
		src = simulation.NewSource(opts.Params.RandomSeed)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Orchestrator{
		params:     opts.Params,
		store:      opts.Store,
		chart:      opts.Chart,
		source:     src,
		withVolume: opts.WithVolume,
		metrics:    opts.Metrics,
		logger:     logger,
		verbose:    opts.Verbose,
		now:        time.Now,
	}
}

// AssetResult describes one generated asset.
type AssetResult struct {
	Index    int                  `json:"index"`
	Symbol   string               `json:"symbol"`
	Location string               `json:"location"`
	Rows     int                  `json:"rows"`
	Summary  metrics.AssetSummary `json:"summary"`
}

// RunResult contains results from orchestrator execution.
type RunResult struct {
	RunID      string        `json:"run_id"`
	GridSize   int           `json:"grid_size"`
	Assets     []AssetResult `json:"assets"`
	Paths      int           `json:"paths"`
	Rows       int           `json:"rows"`
	Collisions []string      `json:"collisions,omitempty"` // symbols generated more than once
	Charts     int           `json:"charts"`
}

// Run executes the generation loop. The first failing store write aborts
// the run; assets already written stay on disk.
//
// Draw order per asset: symbol letters, then path 0..k-1 in full, then volume.
func (o *Orchestrator) Run(ctx context.Context) (*RunResult, error) {
	if o.store == nil {
		return nil, ErrNoStore
	}
	if err := o.params.Validate(); err != nil {
		return nil, err
	}

	started := o.now()
	grid := calendar.BusinessDays(o.params.StartDate, o.params.EndDate)
	gbm := simulation.NewGBM(o.params)

	result := &RunResult{
		RunID:    idhash.ComputeRunID(o.params, o.withVolume),
		GridSize: len(grid),
		Assets:   make([]AssetResult, 0, o.params.NumAssets),
	}
	seen := make(map[string]int, o.params.NumAssets)

	o.log("Run %s: %d assets x %d paths over %d business days",
		result.RunID[:12], o.params.NumAssets, o.params.NumPaths, len(grid))

	for i := 0; i < o.params.NumAssets; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("asset %d: %w", i, err)
		}
		o.log("Generating asset path %d of %d...", i+1, o.params.NumAssets)
		assetStart := o.now()

		rec := o.generate(gbm, grid)

		if prev, dup := seen[rec.Symbol]; dup {
			o.logger.Printf("WARN: symbol %s of asset %d repeats asset %d; its output will be overwritten", rec.Symbol, i+1, prev+1)
			result.Collisions = append(result.Collisions, rec.Symbol)
			if o.metrics != nil {
				o.metrics.RecordCollision()
			}
		}
		seen[rec.Symbol] = i

		rendered, err := o.render(ctx, rec)
		if err != nil {
			return nil, fmt.Errorf("asset %d (%s): %w", i, rec.Symbol, err)
		}
		if rendered {
			result.Charts++
		}

		location, err := o.store.Put(ctx, rec)
		if err != nil {
			return nil, fmt.Errorf("asset %d (%s): %w", i, rec.Symbol, err)
		}

		result.Assets = append(result.Assets, AssetResult{
			Index:    i,
			Symbol:   rec.Symbol,
			Location: location,
			Rows:     rec.Rows(),
			Summary:  metrics.Summarize(rec),
		})
		result.Paths += len(rec.Paths)
		result.Rows += rec.Rows()

		if o.metrics != nil {
			o.metrics.RecordAsset(len(rec.Paths), rec.Rows(), o.now().Sub(assetStart))
		}
	}

	finished := o.now()
	if o.metrics != nil {
		o.metrics.RecordRun(finished.Sub(started), finished)
	}
	o.log("Run completed: %d assets, %d paths, %d rows (%d collisions)",
		len(result.Assets), result.Paths, result.Rows, len(result.Collisions))

	return result, nil
}

// generate draws one asset from the shared source.
func (o *Orchestrator) generate(gbm *simulation.GBM, grid []time.Time) *domain.AssetRecord {
	rec := &domain.AssetRecord{
		Symbol: symbol.Generate(o.source, o.params.SymbolLength),
		Dates:  grid,
	}
	rec.Paths = gbm.GeneratePaths(o.source, len(grid), o.params.NumPaths)
	if o.withVolume {
		rec.Volume = simulation.ParetoVolume(o.source, o.params.ParetoShape, len(grid))
	}
	return rec
}

// render hands rec to the chart sink. Records that cannot be drawn on a log
// axis are skipped with a warning; any other sink error is returned.
func (o *Orchestrator) render(ctx context.Context, rec *domain.AssetRecord) (bool, error) {
	if o.chart == nil {
		return false, nil
	}
	err := o.chart.Render(ctx, rec)
	switch {
	case err == nil:
		o.recordChart(observability.ChartRendered)
		return true, nil
	case errors.Is(err, chart.ErrNotRenderable):
		o.logger.Printf("WARN: chart skipped: %v", err)
		o.recordChart(observability.ChartSkipped)
		return false, nil
	default:
		o.recordChart(observability.ChartFailed)
		return false, err
	}
}

func (o *Orchestrator) recordChart(outcome string) {
	if o.metrics != nil {
		o.metrics.RecordChart(outcome)
	}
}

// log prints if verbose mode is enabled.
func (o *Orchestrator) log(format string, args ...interface{}) {
	if o.verbose {
		o.logger.Printf("[orchestrator] "+format, args...)
	}
}
