// Package config loads seamcarve settings from a YAML file.
// Missing files fall back to defaults; command line flags override file values.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/maax3v3/seamcarve/internal/color"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Carving parameters
	Carving struct {
		// ForwardEnergy selects the forward energy cost model
		ForwardEnergy bool `yaml:"forwardEnergy"`

		// CapacityFactor sizes the growth headroom as a multiple of the loaded size
		CapacityFactor int `yaml:"capacityFactor"`

		// Highlight is the hex color of seams in the seam overlay
		Highlight string `yaml:"highlight"`
	} `yaml:"carving"`

	// Optional extra outputs of the command line tool, empty means skipped
	Output struct {
		Energy string `yaml:"energy"`
		Cost   string `yaml:"cost"`
		Seams  string `yaml:"seams"`
		Sheet  string `yaml:"sheet"`
	} `yaml:"output"`

	// HTTP server parameters
	Server struct {
		Addr           string        `yaml:"addr"`
		MaxUploadBytes int64         `yaml:"maxUploadBytes"`
		MaxPixels      int64         `yaml:"maxPixels"` // decoded width×height limit
		ReadTimeout    time.Duration `yaml:"readTimeout"`
		WriteTimeout   time.Duration `yaml:"writeTimeout"`
	} `yaml:"server"`

	Log struct {
		Debug bool `yaml:"debug"`
	} `yaml:"log"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Carving.ForwardEnergy = false
	cfg.Carving.CapacityFactor = 2
	cfg.Carving.Highlight = "#ff0000"

	cfg.Server.Addr = ":8080"
	cfg.Server.MaxUploadBytes = 32 << 20
	cfg.Server.MaxPixels = 16_000_000
	cfg.Server.ReadTimeout = 30 * time.Second
	cfg.Server.WriteTimeout = 2 * time.Minute

	return cfg
}

// LoadConfig loads configuration from a YAML file.
// If the file doesn't exist, it returns the default configuration.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", configPath, err)
	}
	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Carving.CapacityFactor < 1 {
		return fmt.Errorf("carving.capacityFactor must be >= 1, got %d", c.Carving.CapacityFactor)
	}
	if _, err := color.ParseHex(c.Carving.Highlight); err != nil {
		return fmt.Errorf("carving.highlight: %w", err)
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("server.maxUploadBytes must be > 0, got %d", c.Server.MaxUploadBytes)
	}
	if c.Server.MaxPixels <= 0 {
		return fmt.Errorf("server.maxPixels must be > 0, got %d", c.Server.MaxPixels)
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		return fmt.Errorf("server timeouts must not be negative")
	}
	return nil
}

// HighlightColor returns the parsed highlight color. Call Validate first.
func (c *Config) HighlightColor() color.RGBA {
	rgba, err := color.ParseHex(c.Carving.Highlight)
	if err != nil {
		return color.RGBA{R: 255, A: 255}
	}
	return rgba
}
