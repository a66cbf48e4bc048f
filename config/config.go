// Package config provides configuration management for the photo frame service.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dixieflatline76/photoframe/pkg"
	"gopkg.in/yaml.v3"
)

// Config holds everything read from the settings file.
type Config struct {
	AlbumURL          string       `yaml:"album_url"`
	TimeoutSeconds    int          `yaml:"timeout_seconds"`
	UserAgent         string       `yaml:"user_agent"`
	RequestsPerSecond float64      `yaml:"requests_per_second"`
	Device            Device       `yaml:"device"`
	Server            ServerConfig `yaml:"server"`
}

// Device describes the display the image is generated for.
// It implements pkg.DeviceConfig.
type Device struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Layout string `yaml:"orientation"`
}

// ServerConfig controls the local API.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Resolution returns the panel's native width and height.
func (d Device) Resolution() (int, int) {
	return d.Width, d.Height
}

// Orientation returns how the panel is mounted.
func (d Device) Orientation() pkg.Orientation {
	if strings.EqualFold(strings.TrimSpace(d.Layout), string(pkg.OrientationVertical)) {
		return pkg.OrientationVertical
	}
	return pkg.OrientationHorizontal
}

// Default returns a Config populated with default values.
func Default() *Config {
	return &Config{
		TimeoutSeconds: DefaultTimeoutSeconds,
		UserAgent:      DefaultUserAgent,
		Device: Device{
			Width:  DefaultDeviceWidth,
			Height: DefaultDeviceHeight,
			Layout: string(pkg.OrientationHorizontal),
		},
		Server: ServerConfig{Addr: DefaultServerAddr},
	}
}

// GetPath returns the path to the user's config directory
func GetPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting user home directory: %w", err)
	}
	return filepath.Join(homeDir, "."+strings.ToLower(AppName)), nil
}

// GetFilename returns the path to the user's config file
func GetFilename() (string, error) {
	dir, err := GetPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// Load reads the settings file at path on top of the defaults.
// A missing file is not an error; the defaults are returned as-is.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges. The album URL is not required here because
// it can also be supplied on the command line.
func (c *Config) Validate() error {
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive, got %d", c.TimeoutSeconds)
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("requests_per_second must not be negative, got %v", c.RequestsPerSecond)
	}
	if c.Device.Width <= 0 || c.Device.Height <= 0 {
		return fmt.Errorf("device resolution must be positive, got %dx%d", c.Device.Width, c.Device.Height)
	}
	switch strings.ToLower(strings.TrimSpace(c.Device.Layout)) {
	case "", string(pkg.OrientationHorizontal), string(pkg.OrientationVertical):
	default:
		return fmt.Errorf("device orientation must be %q or %q, got %q",
			pkg.OrientationHorizontal, pkg.OrientationVertical, c.Device.Layout)
	}
	return nil
}

// Timeout returns the per-request network timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Settings returns the plugin settings derived from the config.
func (c *Config) Settings() pkg.Settings {
	return pkg.Settings{pkg.SettingURL: c.AlbumURL}
}

// Save writes the configuration to path, creating the directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
