package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/holoframe/internal/easing"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	// Explicit path takes priority over the search locations
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail later at startup.
func (c *Config) Validate() error {
	if c.Animation.Duration < 0 {
		return fmt.Errorf("animation.duration must not be negative, got %v", c.Animation.Duration)
	}
	for i, k := range c.Animation.Keys {
		if k.Value < 0 || k.Value > 1 {
			return fmt.Errorf("animation.keys[%d].value must be in [0, 1], got %v", i, k.Value)
		}
	}
	if len(c.Animation.Keys) == 0 {
		if _, err := easing.Named(c.Animation.Curve); err != nil {
			return fmt.Errorf("animation.curve: %w", err)
		}
	}
	if c.Gallery.MaxTextureSize < 0 {
		return fmt.Errorf("gallery.max_texture_size must not be negative, got %d", c.Gallery.MaxTextureSize)
	}
	if _, err := c.Display.BackgroundColor(); err != nil {
		return err
	}
	if c.Display.FOV <= 0 || c.Display.FOV >= 180 {
		return fmt.Errorf("display.fov must be in (0, 180), got %v", c.Display.FOV)
	}
	for _, p := range c.Gallery.Patterns {
		if _, err := filepath.Match(p, ""); err != nil {
			return fmt.Errorf("gallery.patterns: %q: %w", p, err)
		}
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./holoframe.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "Holoframe")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Holoframe")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "holoframe")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "holoframe")
	}
}

// DataDir returns the OS-appropriate application-private data directory.
// The default image directory lives under it.
func DataDir() string {
	switch runtime.GOOS {
	case "darwin":
		return ConfigDir()
	case "windows":
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			return filepath.Join(local, "Holoframe")
		}
		return ConfigDir()
	default:
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, "holoframe")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "holoframe")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
