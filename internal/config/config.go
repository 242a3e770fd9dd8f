package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "ACTIONDIRECTOR_"

// Time step modes.
const (
	StepSeconds = "seconds"
	StepFrames  = "frames"
)

type Config struct {
	AssetDir       string  `yaml:"asset_dir"`
	StorePath      string  `yaml:"store_path"`
	Workers        int     `yaml:"workers"`
	SnapInterval   float64 `yaml:"snap_interval"`
	TimeStepMode   string  `yaml:"time_step_mode"`
	FrameRate      int     `yaml:"frame_rate"`
	MagnetSnapping bool    `yaml:"magnet_snapping"`
	SavePath       string  `yaml:"save_path"`
	ShowStats      bool    `yaml:"show_stats"`
	BuildVersion   string  `yaml:"-"`

	// Interactive editor preferences, kept in the file for editor front ends.
	// The CLI does not read them.
	ScrollWheelZooms bool `yaml:"scroll_wheel_zooms"`
	AutoSaveSeconds  int  `yaml:"auto_save_seconds"`
}

// Default returns the built-in preferences.
func Default() *Config {
	return &Config{
		AssetDir:         "assets",
		StorePath:        "actiondirector.db",
		Workers:          runtime.NumCPU(),
		SnapInterval:     0.1,
		TimeStepMode:     StepSeconds,
		FrameRate:        30,
		MagnetSnapping:   true,
		ScrollWheelZooms: true,
		AutoSaveSeconds:  0,
		SavePath:         "assets",
		BuildVersion:     "dev",
	}
}

// Load reads .env, overlays the YAML preferences file at path (optional,
// may be empty) and then the ACTIONDIRECTOR_* environment.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()
	cfg.normalize()
	return cfg, nil
}

// Save writes the preferences as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// StepInterval is the time moved by one step of the playhead.
func (c *Config) StepInterval() float64 {
	if c.TimeStepMode == StepFrames && c.FrameRate > 0 {
		return 1 / float64(c.FrameRate)
	}
	return c.SnapInterval
}

func (c *Config) applyEnv() {
	c.AssetDir = envString("ASSET_DIR", c.AssetDir)
	c.StorePath = envString("STORE_PATH", c.StorePath)
	c.SavePath = envString("SAVE_PATH", c.SavePath)
	c.TimeStepMode = envString("TIME_STEP_MODE", c.TimeStepMode)
	c.Workers = envInt("WORKERS", c.Workers)
	c.FrameRate = envInt("FRAME_RATE", c.FrameRate)
	c.AutoSaveSeconds = envInt("AUTO_SAVE_SECONDS", c.AutoSaveSeconds)
	c.SnapInterval = envFloat("SNAP_INTERVAL", c.SnapInterval)
	c.MagnetSnapping = envBool("MAGNET_SNAPPING", c.MagnetSnapping)
	c.ScrollWheelZooms = envBool("SCROLL_WHEEL_ZOOMS", c.ScrollWheelZooms)
	c.ShowStats = envBool("SHOW_STATS", c.ShowStats)
}

func (c *Config) normalize() {
	if c.Workers < 1 {
		c.Workers = 1
	}
	if c.SnapInterval <= 0 {
		c.SnapInterval = 0.1
	}
	if c.FrameRate <= 0 {
		c.FrameRate = 30
	}
	if c.AutoSaveSeconds < 0 {
		c.AutoSaveSeconds = 0
	}
	if c.TimeStepMode != StepFrames {
		c.TimeStepMode = StepSeconds
	}
}

func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(EnvPrefix + key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(EnvPrefix + key)))
	if err != nil {
		return def
	}
	return v
}

func envFloat(key string, def float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv(EnvPrefix+key)), 64)
	if err != nil {
		return def
	}
	return v
}

func envBool(key string, def bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(EnvPrefix + key)))
	if err != nil {
		return def
	}
	return v
}
