// Package observability provides Prometheus metrics for generation runs.
package observability

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultNamespace is used when NewMetrics is given an empty namespace.
const DefaultNamespace = "gbm_asset_lab"

// Chart outcome label values.
const (
	ChartRendered = "rendered"
	ChartSkipped  = "skipped"
	ChartFailed   = "failed"
)

// Metrics holds all Prometheus metrics for a generator process.
// Each instance owns its registry, so independent runs never share counters.
type Metrics struct {
	registry *prometheus.Registry

	// Generation metrics
	AssetsGenerated  prometheus.Counter
	PathsGenerated   prometheus.Counter
	RowsWritten      prometheus.Counter
	SymbolCollisions prometheus.Counter
	ChartsRendered   *prometheus.CounterVec

	// Latency metrics
	AssetDuration prometheus.Histogram
	RunDuration   prometheus.Histogram

	// Health metrics
	LastSuccessfulRun prometheus.Gauge
}

// NewMetrics creates a new Metrics instance on a private registry.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		AssetsGenerated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generator",
			Name:      "assets_generated_total",
			Help:      "Total number of synthetic assets generated",
		}),
		PathsGenerated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generator",
			Name:      "paths_generated_total",
			Help:      "Total number of price paths generated",
		}),
		RowsWritten: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "output",
			Name:      "rows_written_total",
			Help:      "Total number of CSV data rows written",
		}),
		SymbolCollisions: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generator",
			Name:      "symbol_collisions_total",
			Help:      "Total number of generated symbols that repeated an earlier symbol in the run",
		}),
		ChartsRendered: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "output",
			Name:      "charts_total",
			Help:      "Chart render attempts by outcome",
		}, []string{"outcome"}),

		AssetDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "generator",
			Name:      "asset_duration_seconds",
			Help:      "Time to generate and persist one asset",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 10),
		}),
		RunDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "generator",
			Name:      "run_duration_seconds",
			Help:      "Time to complete a generation run",
			Buckets:   prometheus.DefBuckets,
		}),

		LastSuccessfulRun: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "last_successful_run_timestamp",
			Help:      "Unix timestamp of last successful generation run",
		}),
	}
}

// Registry returns the registry holding m's collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordAsset records one generated and persisted asset.
func (m *Metrics) RecordAsset(paths, rows int, d time.Duration) {
	m.AssetsGenerated.Inc()
	m.PathsGenerated.Add(float64(paths))
	m.RowsWritten.Add(float64(rows))
	m.AssetDuration.Observe(d.Seconds())
}

// RecordCollision increments the symbol collision counter.
func (m *Metrics) RecordCollision() {
	m.SymbolCollisions.Inc()
}

// RecordChart records a chart outcome (ChartRendered, ChartSkipped, ChartFailed).
func (m *Metrics) RecordChart(outcome string) {
	m.ChartsRendered.WithLabelValues(outcome).Inc()
}

// RecordRun records a completed run.
func (m *Metrics) RecordRun(d time.Duration, finished time.Time) {
	m.RunDuration.Observe(d.Seconds())
	m.LastSuccessfulRun.Set(float64(finished.Unix()))
}

// WriteTextfile dumps all metrics in text exposition format to path,
// suitable for the node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
