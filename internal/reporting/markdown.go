package reporting

import (
	"fmt"
	"strings"
	"time"

	"gbm-asset-lab/internal/domain"
)

// RenderMarkdown renders a run report as Markdown string.
func RenderMarkdown(r *RunReport) string {
	var sb strings.Builder
	p := r.Params

	// Header
	sb.WriteString("# GBM Run Report\n\n")
	sb.WriteString(fmt.Sprintf("Run ID: `%s`\n\n", r.RunID))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))

	// Parameters
	sb.WriteString("## Parameters\n\n")
	sb.WriteString("| Parameter | Value |\n")
	sb.WriteString("|-----------|-------|\n")
	sb.WriteString(fmt.Sprintf("| start-date | %s |\n", p.StartDate.Format(domain.DateLayout)))
	sb.WriteString(fmt.Sprintf("| end-date | %s |\n", p.EndDate.Format(domain.DateLayout)))
	sb.WriteString(fmt.Sprintf("| business days | %d |\n", r.GridSize))
	sb.WriteString(fmt.Sprintf("| num-assets | %d |\n", p.NumAssets))
	sb.WriteString(fmt.Sprintf("| num-paths | %d |\n", p.NumPaths))
	sb.WriteString(fmt.Sprintf("| random-seed | %d |\n", p.RandomSeed))
	sb.WriteString(fmt.Sprintf("| init-price | %g |\n", p.InitPrice))
	sb.WriteString(fmt.Sprintf("| mu | %g |\n", p.Mu))
	sb.WriteString(fmt.Sprintf("| sigma | %g |\n", p.Sigma))
	sb.WriteString(fmt.Sprintf("| sigma_prime | %g |\n", p.SigmaPrime))
	if r.WithVolume {
		sb.WriteString(fmt.Sprintf("| pareto-shape | %g |\n", p.ParetoShape))
	}
	sb.WriteString("\n")

	// Terminal prices
	sb.WriteString("## Terminal Prices\n\n")
	if len(r.Assets) > 0 {
		sb.WriteString("| Symbol | Paths | Mean | Median | P10 | P90 | Min | Max | Stddev | MaxDD |\n")
		sb.WriteString("|--------|-------|------|--------|-----|-----|-----|-----|--------|-------|\n")
		for _, a := range r.Assets {
			s := a.Summary
			sb.WriteString(fmt.Sprintf("| %s | %d | %.2f | %.2f | %.2f | %.2f | %.2f | %.2f | %.2f | %.4f |\n",
				a.Symbol, s.NumPaths,
				s.TerminalMean, s.TerminalMedian, s.TerminalP10, s.TerminalP90,
				s.TerminalMin, s.TerminalMax, s.TerminalStddev, s.WorstDrawdown))
		}
	} else {
		sb.WriteString("No assets generated.\n")
	}
	sb.WriteString("\n")

	// Files
	sb.WriteString("## Files\n\n")
	if len(r.Assets) > 0 {
		for _, a := range r.Assets {
			sb.WriteString(fmt.Sprintf("- `%s`\n", a.Location))
		}
	} else {
		sb.WriteString("No files written.\n")
	}
	sb.WriteString("\n")

	// Collisions are always shown if present
	if len(r.Collisions) > 0 {
		sb.WriteString("## Symbol Collisions\n\n")
		for _, sym := range r.Collisions {
			sb.WriteString(fmt.Sprintf("- %s (earlier file overwritten)\n", sym))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
