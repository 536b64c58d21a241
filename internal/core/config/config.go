// Package config handles configuration loading and validation for taskboard.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/taskboard/internal/core/view"
)

// Config holds the application configuration.
type Config struct {
	// SeedDemoTasks controls whether an empty or unreadable task slot is
	// populated with the demonstration tasks. nil means true.
	SeedDemoTasks *bool          `yaml:"seed_demo_tasks"`
	TUI           TUIConfig      `yaml:"tui"`
	Database      DatabaseConfig `yaml:"database"`
	DataDir       string         `yaml:"-"` // set by caller, not from config file
}

// TUIConfig holds interactive UI settings.
type TUIConfig struct {
	DefaultSort   view.Sort     `yaml:"default_sort"`
	DefaultPeriod view.Period   `yaml:"default_period"`
	DefaultChart  view.Chart    `yaml:"default_chart"`
	ToastDuration time.Duration `yaml:"toast_duration"`
	WatchDataDir  *bool         `yaml:"watch_data_dir"` // nil means true
	NerdFonts     bool          `yaml:"nerd_fonts"`
}

// DatabaseConfig holds SQLite connection settings.
type DatabaseConfig struct {
	MaxOpenConns int `yaml:"max_open_conns"`
	MaxIdleConns int `yaml:"max_idle_conns"`
	BusyTimeout  int `yaml:"busy_timeout"` // milliseconds
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		TUI: TUIConfig{
			DefaultSort:   view.SortNew,
			DefaultPeriod: view.PeriodAll,
			DefaultChart:  view.ChartDaily,
			ToastDuration: 2500 * time.Millisecond,
		},
		Database: DatabaseConfig{
			MaxOpenConns: 4,
			MaxIdleConns: 2,
			BusyTimeout:  5000,
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.DataDir = dataDir
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.TUI.DefaultSort == "" {
		c.TUI.DefaultSort = defaults.TUI.DefaultSort
	}
	if c.TUI.DefaultPeriod == "" {
		c.TUI.DefaultPeriod = defaults.TUI.DefaultPeriod
	}
	if c.TUI.DefaultChart == "" {
		c.TUI.DefaultChart = defaults.TUI.DefaultChart
	}
	if c.TUI.ToastDuration == 0 {
		c.TUI.ToastDuration = defaults.TUI.ToastDuration
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = defaults.Database.MaxOpenConns
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = defaults.Database.MaxIdleConns
	}
	if c.Database.BusyTimeout == 0 {
		c.Database.BusyTimeout = defaults.Database.BusyTimeout
	}
}

// ShouldSeed reports whether demonstration tasks are seeded.
func (c *Config) ShouldSeed() bool {
	return c.SeedDemoTasks == nil || *c.SeedDemoTasks
}

// ShouldWatch reports whether the TUI watches the data directory.
func (c *Config) ShouldWatch() bool {
	return c.TUI.WatchDataDir == nil || *c.TUI.WatchDataDir
}

// InitialState returns the view state the TUI starts with.
func (c *Config) InitialState() view.State {
	s := view.DefaultState()
	s.Sort = c.TUI.DefaultSort
	s.Period = c.TUI.DefaultPeriod
	s.Chart = c.TUI.DefaultChart
	return s
}
