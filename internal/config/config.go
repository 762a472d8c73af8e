// Package config handles configuration loading and defaults.
package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds client configuration. User preferences that the backend
// also knows about (theme, toggles) live in the state store, not here;
// this file only covers how to reach the backend and where local state
// goes.
type Config struct {
	ServerURL      string `yaml:"server_url"`
	StateDir       string `yaml:"state_dir"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	LogFile        string `yaml:"log_file"`
	Debug          bool   `yaml:"debug"`

	RefreshIntervalSeconds int `yaml:"refresh_interval_seconds"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "/tmp"
	}

	return &Config{
		ServerURL:      "http://localhost:8000/api/v1",
		StateDir:       filepath.Join(home, ".local", "share", "lucent"),
		TimeoutSeconds: 30,
		LogFile:        filepath.Join(home, ".local", "share", "lucent", "lucent.log"),
		Debug:          false,

		RefreshIntervalSeconds: 60,
	}
}

// Load loads configuration from the default paths, falling back to
// defaults when no config file exists.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, nil
	}

	configPaths := []string{
		filepath.Join(home, ".config", "lucent", "config.yaml"),
		filepath.Join(home, ".local", "share", "lucent", "config.yaml"),
	}

	for _, path := range configPaths {
		if err := loadFromFile(cfg, path); err == nil {
			return cfg, nil
		}
	}

	return cfg, nil
}

// loadFromFile reads a YAML config file and merges it into cfg.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return err
	}
	cfg.StateDir = expandTilde(cfg.StateDir)
	cfg.LogFile = expandTilde(cfg.LogFile)
	return nil
}

// expandTilde expands ~ to the user's home directory.
func expandTilde(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// Save writes the current config to disk.
func (c *Config) Save() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	configDir := filepath.Join(home, ".config", "lucent")
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(configDir, "config.yaml"), data, 0600)
}

// Timeout returns the request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// RefreshInterval returns the dashboard auto-refresh period.
func (c *Config) RefreshInterval() time.Duration {
	if c.RefreshIntervalSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(c.RefreshIntervalSeconds) * time.Second
}
