package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, def.AssetDir, cfg.AssetDir)
	assert.Equal(t, StepSeconds, cfg.TimeStepMode)
	assert.GreaterOrEqual(t, cfg.Workers, 1)
	assert.Equal(t, 0.1, cfg.StepInterval())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.FrameRate)
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	prefs := "asset_dir: scenes\nworkers: 3\ntime_step_mode: frames\nframe_rate: 60\nmagnet_snapping: false\n"
	require.NoError(t, os.WriteFile(path, []byte(prefs), 0644))

	t.Setenv("ACTIONDIRECTOR_WORKERS", "5")
	t.Setenv("ACTIONDIRECTOR_SHOW_STATS", "true")
	t.Setenv("ACTIONDIRECTOR_SNAP_INTERVAL", "not-a-number")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "scenes", cfg.AssetDir)
	assert.Equal(t, 5, cfg.Workers)
	assert.True(t, cfg.ShowStats)
	assert.False(t, cfg.MagnetSnapping)
	assert.Equal(t, 0.1, cfg.SnapInterval, "unparseable override ignored")
	assert.InDelta(t, 1.0/60, cfg.StepInterval(), 1e-12)
}

func TestLoad_Normalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	prefs := "workers: 0\nsnap_interval: -1\nauto_save_seconds: -10\ntime_step_mode: ticks\nframe_rate: 0\n"
	require.NoError(t, os.WriteFile(path, []byte(prefs), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, 0.1, cfg.SnapInterval)
	assert.Equal(t, 0, cfg.AutoSaveSeconds)
	assert.Equal(t, StepSeconds, cfg.TimeStepMode)
	assert.Equal(t, 30, cfg.FrameRate)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: [1"), 0644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "parse config")
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	cfg := Default()
	cfg.StorePath = "library.db"
	cfg.AutoSaveSeconds = 120
	cfg.ScrollWheelZooms = false
	cfg.Workers = 2

	require.NoError(t, cfg.Save(path))
	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "library.db", loaded.StorePath)
	assert.Equal(t, 120, loaded.AutoSaveSeconds)
	assert.False(t, loaded.ScrollWheelZooms, "editor preferences survive a save")
	assert.Equal(t, 2, loaded.Workers)
}
