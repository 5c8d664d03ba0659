// Package config manages contentvet configuration via viper, merging
// configuration files, CONTENTVET_-prefixed environment variables, and
// command-line flags.
package config

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/viper"

	vterrors "github.com/contentvet/contentvet/internal/errors"
)

// Config is the root configuration.
type Config struct {
	Paths       PathsConfig       `mapstructure:"paths"`
	Output      OutputConfig      `mapstructure:"output"`
	Scan        ScanConfig        `mapstructure:"scan"`
	Performance PerformanceConfig `mapstructure:"performance"`
	LogLevel    string            `mapstructure:"log-level"`
}

// PathsConfig controls which files are validated.
type PathsConfig struct {
	// Include lists glob patterns resolved relative to the working
	// directory.
	Include []string `mapstructure:"include"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	// Format is "text" or "json".
	Format string `mapstructure:"format"`
	// File, when set, receives a JSON array of per-file reports. The
	// OUTPUT_FILE environment variable overrides it for CI wrappers.
	File string `mapstructure:"file"`
}

// ScanConfig controls the security scan path.
type ScanConfig struct {
	// Mode is "quick", "full", or "metrics".
	Mode string `mapstructure:"mode"`
	// Workers bounds batch validation concurrency. Zero means NumCPU.
	Workers int `mapstructure:"workers"`
}

// PerformanceConfig holds scanner regression thresholds in milliseconds and
// chars/ms.
type PerformanceConfig struct {
	MaxAverageMs  float64 `mapstructure:"max_average_ms"`
	MaxP95Ms      float64 `mapstructure:"max_p95_ms"`
	MaxP99Ms      float64 `mapstructure:"max_p99_ms"`
	MinCharsPerMs float64 `mapstructure:"min_chars_per_ms"`
}

func setDefaults() {
	viper.SetDefault("paths.include", []string{"library/**/*.md"})
	viper.SetDefault("output.format", "text")
	viper.SetDefault("output.file", "")
	viper.SetDefault("scan.mode", "full")
	viper.SetDefault("scan.workers", 0)
	viper.SetDefault("performance.max_average_ms", 50.0)
	viper.SetDefault("performance.max_p95_ms", 150.0)
	viper.SetDefault("performance.max_p99_ms", 400.0)
	viper.SetDefault("performance.min_chars_per_ms", 100.0)
	viper.SetDefault("log-level", "info")
}

// Load builds the configuration from viper's merged sources.
func Load() (*Config, error) {
	setDefaults()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, vterrors.NewConfigError("unmarshaling configuration", err)
	}

	// CI wrappers configure the JSON destination through OUTPUT_FILE.
	if outputFile := os.Getenv("OUTPUT_FILE"); outputFile != "" {
		cfg.Output.File = outputFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case "text", "json":
	default:
		return vterrors.NewConfigError(
			fmt.Sprintf("unsupported output format %q", c.Output.Format), nil)
	}
	switch c.Scan.Mode {
	case "quick", "full", "metrics":
	default:
		return vterrors.NewConfigError(
			fmt.Sprintf("unsupported scan mode %q", c.Scan.Mode), nil)
	}
	if c.Scan.Workers < 0 {
		return vterrors.NewConfigError("scan.workers must not be negative", nil)
	}
	return nil
}

// WorkerCount resolves the effective batch worker count.
func (c *Config) WorkerCount() int {
	if c.Scan.Workers > 0 {
		return c.Scan.Workers
	}
	n := runtime.NumCPU()
	if n > 8 {
		n = 8
	}
	return n
}
