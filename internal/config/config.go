// Package config handles workbench configuration loading and validation
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"workbench/internal/container"
	"workbench/internal/errors"
	"workbench/internal/xdg"
)

// ConfigFileName is the name of the workbench configuration file
const ConfigFileName = "workbench.toml"

// Config represents the workbench configuration
type Config struct {
	Workspace struct {
		// Dir is the base directory working directories are created under.
		// Empty means the XDG data directory.
		Dir string `toml:"dir"`
	} `toml:"workspace"`

	Container struct {
		// MountPath is the fixed in-container path the working directory is
		// bind-mounted at
		MountPath string `toml:"mount_path"`
		// User is the non-privileged uid:gid the container process runs as
		User string `toml:"user"`
	} `toml:"container"`

	Descriptors struct {
		// Dir holds command descriptor manifests (*.yaml)
		Dir string `toml:"dir"`
	} `toml:"descriptors"`

	// Environment holds variables applied at container launch
	Environment map[string]string `toml:"environment"`
}

// Default returns a configuration with defaults applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Container.MountPath == "" {
		c.Container.MountPath = container.DefaultMountPath
	}
	if c.Container.User == "" {
		c.Container.User = container.DefaultUser
	}
	if c.Descriptors.Dir == "" {
		if configDir, err := xdg.ConfigDir(); err == nil {
			c.Descriptors.Dir = filepath.Join(configDir, "descriptors")
		}
	}
	if c.Environment == nil {
		c.Environment = make(map[string]string)
	}
}

// DefaultPath returns the default configuration file path
func DefaultPath() (string, error) {
	configDir, err := xdg.ConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine config directory: %w", err)
	}
	return filepath.Join(configDir, ConfigFileName), nil
}

// Load reads a configuration file and applies defaults. A missing file
// yields the default configuration.
func Load(path string) (*Config, error) {
	if path == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.ConfigParseError(fmt.Errorf("%s: %w", path, err))
	}
	cfg.applyDefaults()

	return cfg, nil
}

// Save writes the configuration to the given path
func (c *Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}
