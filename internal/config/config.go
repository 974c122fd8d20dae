package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Size             int    `yaml:"size"`
	LogLevel         string `yaml:"log_level"`
	LogFormat        string `yaml:"log_format"`
	Workers          int    `yaml:"workers"` // 0 uses the CPU count
	ThumbnailersDir  string `yaml:"thumbnailers_dir"`
	GNOMEVersionFile string `yaml:"gnome_version_file"`
}

func DefaultConfig() *Config {
	return &Config{
		Size:             124,
		LogLevel:         "info",
		LogFormat:        "text",
		Workers:          0,
		ThumbnailersDir:  "/usr/share/thumbnailers",
		GNOMEVersionFile: "/usr/share/gnome/gnome-version.xml",
	}
}

// ConfigPath returns $XDG_CONFIG_HOME/epub-thumbnailer/config.yaml,
// falling back to ~/.config.
func ConfigPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "epub-thumbnailer", "config.yaml")
}

// Load reads the config at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Use defaults
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Validate rejects values the CLI could not use.
func (c *Config) Validate() error {
	if c.Size <= 0 {
		return fmt.Errorf("size must be positive, got %d", c.Size)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	return nil
}

func (c *Config) Save(path string) error {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
