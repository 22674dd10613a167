package config

import (
	"fmt"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Backend BackendConfig `yaml:"backend"`
	Session SessionConfig `yaml:"session"`
	Barcode BarcodeConfig `yaml:"barcode"`
	Refresh RefreshConfig `yaml:"refresh"`
	Log     LogConfig     `yaml:"log"`
}

// BackendConfig contains the remote gateway settings
type BackendConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// SessionConfig contains the local session store settings
type SessionConfig struct {
	Path string `yaml:"path"`
}

// BarcodeConfig contains barcode raster settings
type BarcodeConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	OutputDir string `yaml:"output_dir"`
}

// RefreshConfig contains the availability refresh schedule
type RefreshConfig struct {
	VehiclesCron string `yaml:"vehicles_cron"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json", "text" or "color"
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Override with environment variables if present
	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Backend
	if val := os.Getenv("RENTAUTO_BASE_URL"); val != "" {
		c.Backend.BaseURL = val
	}
	if val := os.Getenv("RENTAUTO_TIMEOUT_SECONDS"); val != "" {
		fmt.Sscanf(val, "%d", &c.Backend.TimeoutSeconds)
	}

	// Session
	if val := os.Getenv("RENTAUTO_SESSION_PATH"); val != "" {
		c.Session.Path = val
	}

	// Barcode
	if val := os.Getenv("RENTAUTO_BARCODE_DIR"); val != "" {
		c.Barcode.OutputDir = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}
}

// Validate checks if the configuration is valid and fills defaults
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend base URL is required")
	}
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid backend base URL: %q", c.Backend.BaseURL)
	}
	if c.Backend.TimeoutSeconds < 0 {
		return fmt.Errorf("invalid backend timeout: %d", c.Backend.TimeoutSeconds)
	}
	if c.Backend.TimeoutSeconds == 0 {
		c.Backend.TimeoutSeconds = 30
	}

	if c.Session.Path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("session path not set and no home directory: %w", err)
		}
		c.Session.Path = home + "/.rentauto/session.db"
	}

	// Raster defaults match the barcode the confirmation screen renders.
	if c.Barcode.Width == 0 {
		c.Barcode.Width = 600
	}
	if c.Barcode.Height == 0 {
		c.Barcode.Height = 300
	}
	if c.Barcode.Width < 0 || c.Barcode.Height < 0 {
		return fmt.Errorf("invalid barcode raster size: %dx%d", c.Barcode.Width, c.Barcode.Height)
	}

	if c.Refresh.VehiclesCron == "" {
		c.Refresh.VehiclesCron = "@every 5m"
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	return nil
}
