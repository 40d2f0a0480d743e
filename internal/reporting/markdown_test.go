package reporting

import (
	"strings"
	"testing"
	"time"

	"gbm-asset-lab/internal/domain"
	"gbm-asset-lab/internal/metrics"
)

func testRunReport() *RunReport {
	p := domain.DefaultParams()
	p.StartDate = time.Date(2021, 1, 4, 0, 0, 0, 0, time.UTC)
	p.EndDate = time.Date(2021, 1, 8, 0, 0, 0, 0, time.UTC)
	p.NumAssets = 2

	return &RunReport{
		RunID:       "abc123",
		GeneratedAt: time.Date(2021, 1, 9, 12, 0, 0, 0, time.UTC),
		Params:      p,
		GridSize:    5,
		Assets: []AssetRow{
			{Symbol: "ABCDE", Location: "out/ABCDE.csv", Summary: metrics.AssetSummary{NumPaths: 1, TerminalMean: 101.234}},
			{Symbol: "ABCDE", Location: "out/ABCDE.csv", Summary: metrics.AssetSummary{NumPaths: 1, TerminalMean: 98.5}},
		},
		Collisions: []string{"ABCDE"},
	}
}

func TestRenderMarkdown(t *testing.T) {
	md := RenderMarkdown(testRunReport())

	for _, want := range []string{
		"# GBM Run Report",
		"Run ID: `abc123`",
		"Generated: 2021-01-09T12:00:00Z",
		"| start-date | 2021-01-04 |",
		"| business days | 5 |",
		"| sigma_prime | 0.9 |",
		"| ABCDE | 1 | 101.23 |",
		"- `out/ABCDE.csv`",
		"## Symbol Collisions",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("expected %q in markdown:\n%s", want, md)
		}
	}
	if strings.Contains(md, "pareto-shape") {
		t.Error("pareto-shape should only be listed when volume is enabled")
	}
}

func TestRenderMarkdown_Empty(t *testing.T) {
	r := testRunReport()
	r.Assets = nil
	r.Collisions = nil
	r.WithVolume = true

	md := RenderMarkdown(r)

	if !strings.Contains(md, "No assets generated.") {
		t.Error("expected empty asset notice")
	}
	if !strings.Contains(md, "| pareto-shape | 1.5 |") {
		t.Error("expected pareto-shape row")
	}
	if strings.Contains(md, "Symbol Collisions") {
		t.Error("collision section should be omitted")
	}
}
