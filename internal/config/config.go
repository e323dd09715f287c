// Package config loads the file manager's settings from RFM_* environment
// variables.
package config

import (
	"fmt"
	"io"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every environment variable name.
const Prefix = "RFM"

// Config holds all application configuration.
//
//	RFM_SEARCH_DEBOUNCE   minimum time between two search walks (400ms)
//	RFM_SEARCH_EXCLUDE    comma separated directory name patterns not descended
//	RFM_SEARCH_WORKERS    walker goroutines, 0 picks a default
//	RFM_LOG_LEVEL         debug, info, warn or error
//	RFM_LOG_DEVELOPMENT   console encoding and stack traces
//	RFM_LOG_FILE          log destination, defaults to rfm.log in the temp dir
//	RFM_WATCH_ENABLED     refresh the listing on external changes
//	RFM_WATCH_COALESCE    quiet period before a watched change refreshes
//	RFM_UI_THEME          light or dark
//	RFM_UI_TERMINAL       terminal command used to open a directory
type Config struct {
	Search  SearchConfig
	Logging LogConfig `envconfig:"LOG"`
	Watch   WatchConfig
	UI      UIConfig
}

// SearchConfig holds recursive search configuration.
type SearchConfig struct {
	Debounce time.Duration `default:"400ms"`
	Exclude  []string
	Workers  int
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `default:"info"`
	Development bool   `default:"false"`
	File        string
}

// WatchConfig holds filesystem watch configuration.
type WatchConfig struct {
	Enabled  bool          `default:"true"`
	Coalesce time.Duration `default:"250ms"`
}

// UIConfig holds presentation configuration.
type UIConfig struct {
	Theme    string `default:"light"`
	Terminal string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Search: SearchConfig{
			Debounce: 400 * time.Millisecond,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		Watch: WatchConfig{
			Enabled:  true,
			Coalesce: 250 * time.Millisecond,
		},
		UI: UIConfig{
			Theme: "light",
		},
	}
}

// Validate reports settings no component can work with.
func (c *Config) Validate() error {
	if c.Search.Debounce < 0 {
		return fmt.Errorf("search debounce must not be negative, got %s", c.Search.Debounce)
	}
	if c.Search.Workers < 0 {
		return fmt.Errorf("search workers must not be negative, got %d", c.Search.Workers)
	}
	if c.Watch.Coalesce < 0 {
		return fmt.Errorf("watch coalesce must not be negative, got %s", c.Watch.Coalesce)
	}
	switch c.UI.Theme {
	case "light", "dark":
	default:
		return fmt.Errorf("unknown theme %q", c.UI.Theme)
	}
	return nil
}

// Usage writes a table of every variable Load reads to w.
func Usage(w io.Writer) error {
	var cfg Config
	return envconfig.Usagef(Prefix, &cfg, w, envconfig.DefaultTableFormat)
}
