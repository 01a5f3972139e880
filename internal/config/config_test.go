package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMergesFileOverDefaults(t *testing.T) {
	yaml := `
measure:
  cache_enabled: false
  scroll_to_bottom: true
emulation:
  device: iphone-x
  network: fast-3g
workers:
  count: 5
io:
  input_file: urls.txt
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.False(t, cfg.Measure.CacheEnabled)
	assert.True(t, cfg.Measure.ScrollToBottom)
	assert.Equal(t, "iphone-x", cfg.Emulation.Device)
	assert.Equal(t, "fast-3g", cfg.Emulation.Network)
	assert.Equal(t, 5, cfg.Workers.Count)
	assert.Equal(t, "urls.txt", cfg.IO.InputFile)

	// Untouched sections keep their defaults.
	assert.Equal(t, 500*time.Millisecond, cfg.Measure.SettleWindow)
	assert.Equal(t, "report.json", cfg.IO.OutputFile)
	assert.Equal(t, DefaultUserAgent, cfg.Browser.UserAgent)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("measure: ["), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := CreateDefault()
	assert.NoError(t, cfg.Validate())

	cfg.Emulation.Device = "iphone-x"
	cfg.Emulation.Network = "slow-3g"
	assert.NoError(t, cfg.Validate())

	cfg.Emulation.Device = "nokia-3310"
	assert.Error(t, cfg.Validate())

	cfg = CreateDefault()
	cfg.Emulation.Network = "56k-modem"
	assert.Error(t, cfg.Validate())

	cfg = CreateDefault()
	cfg.Workers.Count = 0
	assert.Error(t, cfg.Validate())

	// A zero rate limit would blow up the pool's ticker at run time.
	cfg = CreateDefault()
	cfg.Workers.RateLimit = 0
	assert.Error(t, cfg.Validate())

	cfg = CreateDefault()
	cfg.Workers.RateLimit = -time.Second
	assert.Error(t, cfg.Validate())
}

func TestDevicePresetsCarryProfiles(t *testing.T) {
	for name, dev := range DevicePresets {
		assert.NotEmpty(t, dev.UserAgent, name)
		assert.Greater(t, dev.Width, int64(0), name)
		assert.Greater(t, dev.Height, int64(0), name)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("PAGEGAUGE_WORKERS", "7")
	t.Setenv("PAGEGAUGE_MEASURE_TIMEOUT", "10s")
	t.Setenv("PAGEGAUGE_MEASURE_DATA_RELOAD_RATIO", "0.4")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Workers.Count)
	assert.Equal(t, 10*time.Second, cfg.Measure.Timeout)
	require.NotNil(t, cfg.Measure.DataReloadRatio)
	assert.Equal(t, 0.4, *cfg.Measure.DataReloadRatio)

	// Unset values fall back to tag defaults.
	assert.Equal(t, 500*time.Millisecond, cfg.Measure.SettleWindow)
	assert.True(t, cfg.Measure.CacheEnabled)
}
