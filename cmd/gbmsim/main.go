package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"gbm-asset-lab/internal/chart"
	"gbm-asset-lab/internal/config"
	"gbm-asset-lab/internal/domain"
	"gbm-asset-lab/internal/observability"
	"gbm-asset-lab/internal/orchestrator"
	"gbm-asset-lab/internal/reporting"
	"gbm-asset-lab/internal/storage/csvfile"
	"gbm-asset-lab/internal/verification"
)

func main() {
	// Load .env file if exists
	loadEnvFile(".env")

	// Setup logger
	logger := log.New(os.Stderr, "[gbmsim] ", log.LstdFlags)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, shutting down...", sig)
		cancel()
	}()

	if err := newRootCmd(logger, os.Stdout).ExecuteContext(ctx); err != nil {
		logger.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func newRootCmd(logger *log.Logger, out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "gbmsim",
		Short: "Generate synthetic asset price paths with geometric Brownian motion",
		Long: `gbmsim writes one CSV per synthetic asset to --output-dir.
Each file has a date column over the business days of [start-date, end-date]
and one close_<i> column per simulated path.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, logger, out)
		},
	}
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(&cobra.Command{
		Use:   "verify",
		Short: "Check that the configured run is reproducible",
		Long: `verify replays the configured run twice in memory and compares every
price bit for bit. With --output-dir it also compares the replay against the
CSV files found there, within rounding tolerance.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVerify(cmd, logger, out)
		},
	})

	return root
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v, err := config.New(cmd.Flags())
	if err != nil {
		return nil, err
	}
	return config.Load(v)
}

func runGenerate(cmd *cobra.Command, logger *log.Logger, out io.Writer) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.RequireOutputDir(); err != nil {
		return err
	}

	store := csvfile.NewAssetStore(cfg.OutputDir)
	m := observability.NewMetrics("")

	opts := orchestrator.Options{
		Params:     cfg.Params,
		Store:      store,
		WithVolume: cfg.WithVolume,
		Metrics:    m,
		Logger:     logger,
		Verbose:    cfg.Verbose,
	}
	if cfg.Chart {
		opts.Chart = chart.NewPNGSink(cfg.OutputDir, cfg.ChartOptions())
	}

	logger.Printf("Generating %d assets x %d paths: %s..%s -> %s",
		cfg.Params.NumAssets, cfg.Params.NumPaths,
		cfg.Params.StartDate.Format(domain.DateLayout), cfg.Params.EndDate.Format(domain.DateLayout),
		store.Dir())

	result, err := orchestrator.New(opts).Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	if cfg.MetricsFile != "" {
		if err := m.WriteTextfile(cfg.MetricsFile); err != nil {
			return err
		}
	}

	if cfg.ReportFile != "" {
		if err := writeReport(cfg, result); err != nil {
			return err
		}
		logger.Printf("Report written to %s", cfg.ReportFile)
	}

	if cfg.JSON {
		return writeJSON(out, result)
	}
	printRunResult(out, result)
	return nil
}

func runVerify(cmd *cobra.Command, logger *log.Logger, out io.Writer) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	v := verification.New(cfg.Params, cfg.WithVolume)

	var report *verification.Report
	if cfg.OutputDir != "" {
		logger.Printf("Verifying run against %s", cfg.OutputDir)
		report, err = v.VerifyStored(cmd.Context(), csvfile.NewAssetStore(cfg.OutputDir))
	} else {
		logger.Printf("Verifying run determinism")
		report, err = v.VerifyDeterminism(cmd.Context())
	}
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}

	if cfg.JSON {
		if err := writeJSON(out, report); err != nil {
			return err
		}
	} else {
		printReport(out, report)
	}

	if !report.OK() {
		return fmt.Errorf("verify: %d of %d assets diverged", report.DivergentAssets, report.TotalAssets)
	}
	return nil
}

func writeReport(cfg *config.Config, result *orchestrator.RunResult) error {
	report := &reporting.RunReport{
		RunID:       result.RunID,
		GeneratedAt: time.Now().UTC(),
		Params:      cfg.Params,
		WithVolume:  cfg.WithVolume,
		GridSize:    result.GridSize,
		Assets:      make([]reporting.AssetRow, 0, len(result.Assets)),
		Collisions:  result.Collisions,
	}
	for _, a := range result.Assets {
		report.Assets = append(report.Assets, reporting.AssetRow{
			Symbol:   a.Symbol,
			Location: a.Location,
			Summary:  a.Summary,
		})
	}

	if err := os.WriteFile(cfg.ReportFile, []byte(reporting.RenderMarkdown(report)), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func writeJSON(out io.Writer, v interface{}) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	fmt.Fprintln(out, string(output))
	return nil
}

func printRunResult(out io.Writer, r *orchestrator.RunResult) {
	fmt.Fprintf(out, "Run ID:             %s\n", r.RunID)
	fmt.Fprintf(out, "Business Days:      %d\n", r.GridSize)
	fmt.Fprintf(out, "Assets:             %d\n", len(r.Assets))
	fmt.Fprintf(out, "Paths:              %d\n", r.Paths)
	fmt.Fprintf(out, "Rows:               %d\n", r.Rows)
	if r.Charts > 0 {
		fmt.Fprintf(out, "Charts:             %d\n", r.Charts)
	}
	if len(r.Collisions) > 0 {
		fmt.Fprintf(out, "Symbol Collisions:  %v\n", r.Collisions)
	}

	for _, a := range r.Assets {
		s := a.Summary
		fmt.Fprintf(out, "\n%s -> %s\n", a.Symbol, a.Location)
		if s.NumSteps == 0 || s.NumPaths == 0 {
			fmt.Fprintln(out, "  (no prices)")
			continue
		}
		fmt.Fprintf(out, "  Terminal Mean:    %.2f\n", s.TerminalMean)
		fmt.Fprintf(out, "  Terminal Median:  %.2f\n", s.TerminalMedian)
		fmt.Fprintf(out, "  Terminal P10/P90: %.2f / %.2f\n", s.TerminalP10, s.TerminalP90)
		fmt.Fprintf(out, "  Terminal Min/Max: %.2f / %.2f\n", s.TerminalMin, s.TerminalMax)
		fmt.Fprintf(out, "  Terminal Stddev:  %.2f\n", s.TerminalStddev)
		fmt.Fprintf(out, "  Worst Drawdown:   %.2f%%\n", s.WorstDrawdown*100)
	}
}

func printReport(out io.Writer, r *verification.Report) {
	fmt.Fprintf(out, "Run ID:             %s\n", r.RunID)
	fmt.Fprintf(out, "Assets:             %d\n", r.TotalAssets)
	fmt.Fprintf(out, "Matched:            %d\n", r.MatchedAssets)
	fmt.Fprintf(out, "Divergent:          %d\n", r.DivergentAssets)

	for _, res := range r.Results {
		if res.Match {
			continue
		}
		fmt.Fprintf(out, "\n%s (asset %d)\n", res.Symbol, res.Index+1)
		for _, d := range res.Divergences {
			fmt.Fprintf(out, "  %-16s expected=%v actual=%v\n", d.Field, d.Expected, d.Actual)
		}
	}
}
