package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"library/**/*.md"}, cfg.Paths.Include)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.Equal(t, "full", cfg.Scan.Mode)
	assert.Equal(t, 50.0, cfg.Performance.MaxAverageMs)
	assert.Equal(t, 400.0, cfg.Performance.MaxP99Ms)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadOutputFileEnvOverride(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("OUTPUT_FILE", "/tmp/reports.json")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/reports.json", cfg.Output.File)
}

func TestValidate(t *testing.T) {
	valid := &Config{
		Output: OutputConfig{Format: "json"},
		Scan:   ScanConfig{Mode: "quick", Workers: 4},
	}
	assert.NoError(t, valid.Validate())

	badFormat := &Config{Output: OutputConfig{Format: "xml"}, Scan: ScanConfig{Mode: "full"}}
	assert.Error(t, badFormat.Validate())

	badMode := &Config{Output: OutputConfig{Format: "text"}, Scan: ScanConfig{Mode: "turbo"}}
	assert.Error(t, badMode.Validate())

	negativeWorkers := &Config{
		Output: OutputConfig{Format: "text"},
		Scan:   ScanConfig{Mode: "full", Workers: -1},
	}
	assert.Error(t, negativeWorkers.Validate())
}

func TestWorkerCount(t *testing.T) {
	explicit := &Config{Scan: ScanConfig{Workers: 3}}
	assert.Equal(t, 3, explicit.WorkerCount())

	auto := &Config{}
	n := auto.WorkerCount()
	assert.Greater(t, n, 0)
	assert.LessOrEqual(t, n, 8)
}
