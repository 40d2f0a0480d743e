// Package chart renders simulated price paths as a log-scale line chart.
package chart

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/vicanso/go-charts/v2"

	"gbm-asset-lab/internal/domain"
)

// ErrNotRenderable is returned when a record cannot be drawn on a log axis:
// it has no data points or holds a non-positive price.
var ErrNotRenderable = errors.New("asset record not renderable on log scale")

// Extension is the file suffix of rendered charts.
const Extension = ".png"

// Sink consumes a generated record for presentation.
type Sink interface {
	Render(ctx context.Context, rec *domain.AssetRecord) error
}

// Options controls chart geometry.
type Options struct {
	Width  int
	Height int
}

// DefaultOptions returns the default chart size.
func DefaultOptions() Options {
	return Options{Width: 1200, Height: 600}
}

// RenderPNG draws every path of rec as its own line on one chart with a
// log10 price axis and one legend entry per close_<i> column.
func RenderPNG(rec *domain.AssetRecord, opts Options) ([]byte, error) {
	if len(rec.Paths) == 0 || len(rec.Dates) == 0 {
		return nil, fmt.Errorf("%w: %s has no data", ErrNotRenderable, rec.Symbol)
	}

	values := make([][]float64, len(rec.Paths))
	names := make([]string, len(rec.Paths))
	yMin, yMax := math.Inf(1), math.Inf(-1)
	for i, p := range rec.Paths {
		names[i] = domain.ColumnName(i)
		logs := make([]float64, len(p))
		for k, v := range p {
			if !(v > 0) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: %s %s[%d] = %v", ErrNotRenderable, rec.Symbol, names[i], k, v)
			}
			lv := math.Log10(v)
			logs[k] = lv
			yMin = math.Min(yMin, lv)
			yMax = math.Max(yMax, lv)
		}
		values[i] = logs
	}

	pad := (yMax - yMin) * 0.05
	if pad < 0.01 {
		pad = 0.01
	}
	yMin -= pad
	yMax += pad

	xLabels := make([]string, len(rec.Dates))
	for i, d := range rec.Dates {
		xLabels[i] = d.Format(domain.DateLayout)
	}
	split := 10
	if len(xLabels) < split {
		split = len(xLabels)
	}

	seriesList := charts.NewSeriesListDataFromValues(values, charts.ChartTypeLine)
	for i := range seriesList {
		seriesList[i].Name = names[i]
	}

	painter, err := charts.Render(charts.ChartOption{SeriesList: seriesList},
		charts.TitleTextOptionFunc(rec.Symbol, "log10(price)"),
		charts.XAxisOptionFunc(charts.XAxisOption{Data: xLabels, BoundaryGap: charts.FalseFlag(), SplitNumber: split}),
		charts.YAxisOptionFunc(charts.YAxisOption{Min: &yMin, Max: &yMax, DivideCount: 5, Formatter: "1e{value}"}),
		charts.LegendOptionFunc(charts.LegendOption{Data: names}),
		charts.WidthOptionFunc(opts.Width),
		charts.HeightOptionFunc(opts.Height),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", rec.Symbol, err)
	}
	return painter.Bytes()
}

// PNGSink writes <dir>/<symbol>.png for each rendered record.
type PNGSink struct {
	dir  string
	opts Options
}

// NewPNGSink creates a sink writing charts into dir.
func NewPNGSink(dir string, opts Options) *PNGSink {
	return &PNGSink{dir: dir, opts: opts}
}

// Compile-time interface check.
var _ Sink = (*PNGSink)(nil)

// Render draws rec and writes the image, replacing any existing file.
func (s *PNGSink) Render(_ context.Context, rec *domain.AssetRecord) error {
	img, err := RenderPNG(rec, s.opts)
	if err != nil {
		return err
	}
	path := filepath.Join(s.dir, rec.Symbol+Extension)
	if err := os.WriteFile(path, img, 0o644); err != nil {
		return fmt.Errorf("write chart %s: %w", path, err)
	}
	return nil
}

// PathFor returns the image path used for symbol.
func (s *PNGSink) PathFor(symbol string) string {
	return filepath.Join(s.dir, symbol+Extension)
}
