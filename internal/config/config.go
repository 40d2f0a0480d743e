// Package config resolves run configuration from flags, environment and an
// optional config file.
//
// Precedence: flag > GBM_* environment variable > config file > default.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"gbm-asset-lab/internal/chart"
	"gbm-asset-lab/internal/domain"
)

// EnvPrefix prefixes every environment variable, e.g. GBM_NUM_PATHS.
const EnvPrefix = "GBM"

// Keys shared by flags, environment and config files.
const (
	KeyNumAssets    = "num-assets"
	KeyNumPaths     = "num-paths"
	KeyRandomSeed   = "random-seed"
	KeyStartDate    = "start-date"
	KeyEndDate      = "end-date"
	KeyOutputDir    = "output-dir"
	KeySymbolLength = "symbol-length"
	KeyInitPrice    = "init-price"
	KeyMu           = "mu"
	KeySigma        = "sigma"
	KeySigmaPrime   = "sigma_prime"
	KeyParetoShape  = "pareto-shape"

	KeyChart       = "chart"
	KeyChartWidth  = "chart-width"
	KeyChartHeight = "chart-height"
	KeyWithVolume  = "with-volume"
	KeyMetricsFile = "metrics-file"
	KeyReportFile  = "report-file"
	KeyVerbose     = "verbose"
	KeyJSON        = "json"
	KeyConfig      = "config"
)

// ErrMissingOutputDir is returned by RequireOutputDir.
var ErrMissingOutputDir = errors.New("output-dir is required")

// Options holds run settings that are not simulation parameters.
type Options struct {
	OutputDir   string
	Chart       bool
	ChartWidth  int
	ChartHeight int
	WithVolume  bool
	MetricsFile string
	ReportFile  string
	Verbose     bool
	JSON        bool
}

// Config is the resolved configuration of one invocation.
type Config struct {
	Params domain.SimulationParams
	Options
}

// ChartOptions returns the chart geometry.
func (c *Config) ChartOptions() chart.Options {
	return chart.Options{Width: c.ChartWidth, Height: c.ChartHeight}
}

// RequireOutputDir fails when no output directory was configured.
func (c *Config) RequireOutputDir() error {
	if c.OutputDir == "" {
		return ErrMissingOutputDir
	}
	return nil
}

// RegisterFlags adds every configuration flag to fs with its default.
func RegisterFlags(fs *pflag.FlagSet) {
	d := domain.DefaultParams()
	co := chart.DefaultOptions()

	fs.Int(KeyNumAssets, d.NumAssets, "number of CSV files to produce")
	fs.Int(KeyNumPaths, d.NumPaths, "paths per asset")
	fs.Int64(KeyRandomSeed, d.RandomSeed, "seeds the shared random source")
	fs.String(KeyStartDate, "", "grid start (YYYY-MM-DD), required")
	fs.String(KeyEndDate, "", "grid end (YYYY-MM-DD), required")
	fs.String(KeyOutputDir, "", "destination directory, must exist")
	fs.Int(KeySymbolLength, d.SymbolLength, "length of generated symbol")
	fs.Float64(KeyInitPrice, d.InitPrice, "starting price")
	fs.Float64(KeyMu, d.Mu, "drift")
	fs.Float64(KeySigma, d.Sigma, "base volatility")
	fs.Float64(KeySigmaPrime, d.SigmaPrime, "volatility growth term")
	fs.Float64(KeyParetoShape, d.ParetoShape, "Pareto shape of the volume column (used with --with-volume)")

	fs.Bool(KeyChart, false, "write a log-scale PNG chart per asset")
	fs.Int(KeyChartWidth, co.Width, "chart width in pixels")
	fs.Int(KeyChartHeight, co.Height, "chart height in pixels")
	fs.Bool(KeyWithVolume, false, "append a Pareto-distributed volume column")
	fs.String(KeyMetricsFile, "", "write Prometheus metrics to this textfile after the run")
	fs.String(KeyReportFile, "", "write a Markdown run report to this file")
	fs.BoolP(KeyVerbose, "v", false, "verbose progress logging")
	fs.Bool(KeyJSON, false, "print the run result as JSON")
	fs.String(KeyConfig, "", "optional YAML/JSON/TOML config file")
}

// New creates a viper instance bound to fs and the GBM_ environment.
// If --config (or GBM_CONFIG) names a file it is read as the lowest
// non-default layer.
func New(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}

	if path := v.GetString(KeyConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	return v, nil
}

// Load resolves and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	start, err := requiredDate(v, KeyStartDate)
	if err != nil {
		return nil, err
	}
	end, err := requiredDate(v, KeyEndDate)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Params: domain.SimulationParams{
			StartDate:    start,
			EndDate:      end,
			InitPrice:    v.GetFloat64(KeyInitPrice),
			Mu:           v.GetFloat64(KeyMu),
			Sigma:        v.GetFloat64(KeySigma),
			SigmaPrime:   v.GetFloat64(KeySigmaPrime),
			NumPaths:     v.GetInt(KeyNumPaths),
			NumAssets:    v.GetInt(KeyNumAssets),
			RandomSeed:   v.GetInt64(KeyRandomSeed),
			SymbolLength: v.GetInt(KeySymbolLength),
			ParetoShape:  v.GetFloat64(KeyParetoShape),
		},
		Options: Options{
			OutputDir:   v.GetString(KeyOutputDir),
			Chart:       v.GetBool(KeyChart),
			ChartWidth:  v.GetInt(KeyChartWidth),
			ChartHeight: v.GetInt(KeyChartHeight),
			WithVolume:  v.GetBool(KeyWithVolume),
			MetricsFile: v.GetString(KeyMetricsFile),
			ReportFile:  v.GetString(KeyReportFile),
			Verbose:     v.GetBool(KeyVerbose),
			JSON:        v.GetBool(KeyJSON),
		},
	}

	if err := cfg.Params.Validate(); err != nil {
		return nil, err
	}
	if cfg.Chart && (cfg.ChartWidth <= 0 || cfg.ChartHeight <= 0) {
		return nil, fmt.Errorf("%w: chart size must be positive, got %dx%d",
			domain.ErrInvalidParams, cfg.ChartWidth, cfg.ChartHeight)
	}
	return cfg, nil
}

// requiredDate reads a YYYY-MM-DD value. YAML config files decode bare
// dates as timestamps, so time values are accepted too.
func requiredDate(v *viper.Viper, key string) (time.Time, error) {
	switch raw := v.Get(key).(type) {
	case time.Time:
		return time.Date(raw.Year(), raw.Month(), raw.Day(), 0, 0, 0, 0, time.UTC), nil
	case nil:
	default:
		if s := fmt.Sprint(raw); s != "" {
			t, err := domain.ParseDate(s)
			if err != nil {
				return time.Time{}, fmt.Errorf("%s: %w", key, err)
			}
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %s is required", domain.ErrInvalidParams, key)
}
