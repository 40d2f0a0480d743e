package chart

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gbm-asset-lab/internal/calendar"
	"gbm-asset-lab/internal/domain"
	"gbm-asset-lab/internal/simulation"
)

var pngMagic = []byte("\x89PNG")

func testRecord(t *testing.T, numPaths int) *domain.AssetRecord {
	t.Helper()
	grid := calendar.BusinessDays(
		time.Date(2021, 1, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2021, 3, 31, 0, 0, 0, 0, time.UTC),
	)
	gbm := &simulation.GBM{InitPrice: 100, Mu: 0.1, Sigma: 0.3, SigmaPrime: 0.9}
	return &domain.AssetRecord{
		Symbol: "CHART",
		Dates:  grid,
		Paths:  gbm.GeneratePaths(simulation.NewSource(1), len(grid), numPaths),
	}
}

func TestRenderPNG(t *testing.T) {
	img, err := RenderPNG(testRecord(t, 3), DefaultOptions())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, pngMagic), "output is not a PNG")
}

func TestRenderPNG_NotRenderable(t *testing.T) {
	tests := []struct {
		name string
		rec  *domain.AssetRecord
	}{
		{"no paths", &domain.AssetRecord{Symbol: "A", Dates: []time.Time{time.Now()}, Paths: domain.PathSet{}}},
		{"empty grid", &domain.AssetRecord{Symbol: "A", Paths: domain.PathSet{{}}}},
		{"zero price", &domain.AssetRecord{Symbol: "A", Dates: []time.Time{time.Now()}, Paths: domain.PathSet{{0}}}},
		{"negative price", &domain.AssetRecord{Symbol: "A", Dates: []time.Time{time.Now()}, Paths: domain.PathSet{{-3}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RenderPNG(tt.rec, DefaultOptions())
			assert.ErrorIs(t, err, ErrNotRenderable)
		})
	}
}

func TestPNGSink_Render(t *testing.T) {
	dir := t.TempDir()
	sink := NewPNGSink(dir, Options{Width: 800, Height: 400})

	err := sink.Render(context.Background(), testRecord(t, 2))
	require.NoError(t, err)

	img, err := os.ReadFile(sink.PathFor("CHART"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, pngMagic))
}
