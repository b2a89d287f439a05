// Package config loads and validates the cmdpal configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the cmdpal configuration.
type Config struct {
	Palette PaletteConfig `yaml:"palette"`
	Storage StorageConfig `yaml:"storage"`
	Session SessionConfig `yaml:"session"`
}

// PaletteConfig holds palette behavior settings.
type PaletteConfig struct {
	CatalogPath string `yaml:"catalog_path"` // extra commands merged after built-ins
	MaxResults  int    `yaml:"max_results"`  // display cap for ranked results
	RecentSeed  int    `yaml:"recent_seed"`  // recency entries seeding empty queries
}

// StorageConfig holds persistence settings.
type StorageConfig struct {
	DBPath string `yaml:"db_path"` // SQLite path (empty = ~/.cmdpal/state.db)
}

// SessionConfig holds the default eligibility context for the CLI.
// Flags override these per invocation.
type SessionConfig struct {
	Authenticated bool `yaml:"authenticated"`
	HasProfile    bool `yaml:"has_profile"`
	Credits       int  `yaml:"credits"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Palette: PaletteConfig{
			MaxResults: 10,
			RecentSeed: 5,
		},
		Session: SessionConfig{
			Authenticated: true,
			HasProfile:    true,
			Credits:       100,
		},
	}
}

// Path returns the config file location. CMDPAL_CONFIG overrides the
// default ~/.config/cmdpal/config.yaml.
func Path() (string, error) {
	if p := os.Getenv("CMDPAL_CONFIG"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "cmdpal", "config.yaml"), nil
}

// Load reads the config file at path, applying defaults for missing
// fields. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDefault loads the config from the default location.
func LoadDefault() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// Save writes the config to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

func (c *Config) validate() error {
	if c.Palette.MaxResults < 0 {
		return fmt.Errorf("palette.max_results cannot be negative")
	}
	if c.Palette.RecentSeed < 0 {
		return fmt.Errorf("palette.recent_seed cannot be negative")
	}
	if c.Session.Credits < 0 {
		return fmt.Errorf("session.credits cannot be negative")
	}
	return nil
}
