package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `simulator:
  seed: 42
  batch_size: 25
extractor:
  low_cut_hz: 45
  high_cut_hz: 55
  filter_order: 3
  sample_rate_hz: 50
  fundamental_hz: 50
  workers: 2
metrics:
  prometheus_enabled: true
  prometheus_port: "9091"
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), cfg.Simulator.Seed)
	assert.Equal(t, 25, cfg.Simulator.BatchSize)
	assert.Equal(t, 45.0, cfg.Extractor.LowCutHz)
	assert.Equal(t, 55.0, cfg.Extractor.HighCutHz)
	assert.Equal(t, 2, cfg.Extractor.Workers)
	assert.True(t, cfg.Metrics.PrometheusEnabled)
	assert.Equal(t, "9091", cfg.Metrics.PrometheusPort)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("simulator:\n  seed: 1\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Simulator.BatchSize)
	assert.Equal(t, 45.0, cfg.Extractor.LowCutHz)
	assert.Equal(t, 55.0, cfg.Extractor.HighCutHz)
	assert.Equal(t, 3, cfg.Extractor.FilterOrder)
	assert.Equal(t, 50.0, cfg.Extractor.SampleRateHz)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("simulator:\n  batch_size: 5\n"), 0o644))
	t.Setenv("GRIDSIG_SIMULATOR__BATCH_SIZE", "77")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 77, cfg.Simulator.BatchSize)
}

func TestLoadUnsupportedExtension(t *testing.T) {
	_, err := Load("config.toml")
	assert.Error(t, err)
}

func TestLoadRejectsBadLevel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: shouty\n"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}
