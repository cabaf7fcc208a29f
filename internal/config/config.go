// SPDX-License-Identifier: GPL-3.0-or-later
// Copyright (C) 2026 Anthony Green <green@redhat.com>
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	configFileName = "config.yaml"
	dirPerms       = 0700
	filePerms      = 0644
)

// Output formats for submitted selections
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// Config represents the application configuration
type Config struct {
	UI       UIConfig       `yaml:"ui"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Output   OutputConfig   `yaml:"output"`
}

// UIConfig contains UI-related settings
type UIConfig struct {
	Theme string `yaml:"theme"` // auto, dark or light
	Width int    `yaml:"width"` // widget width, 0 = terminal width
}

// DefaultsConfig contains defaults for fields that leave them unset
type DefaultsConfig struct {
	Label       string `yaml:"label"`
	Placeholder string `yaml:"placeholder"`
}

// OutputConfig controls how results are printed
type OutputConfig struct {
	Format string `yaml:"format"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			Theme: "auto",
		},
		Defaults: DefaultsConfig{
			Label:       "Select values",
			Placeholder: "Placeholder",
		},
		Output: OutputConfig{
			Format: FormatText,
		},
	}
}

// Manager handles configuration loading and saving
type Manager struct {
	configDir string
	config    *Config
}

// NewManager creates a new configuration manager
func NewManager(configDir string) *Manager {
	return &Manager{
		configDir: configDir,
		config:    DefaultConfig(),
	}
}

// DefaultConfigDir returns the default configuration directory
func DefaultConfigDir() (string, error) {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "chipsel"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "chipsel"), nil
}

// Load reads the configuration from disk
func (m *Manager) Load() error {
	path := filepath.Join(m.configDir, configFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Use defaults if no config file exists
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, m.config); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	switch m.config.Output.Format {
	case FormatText, FormatYAML:
	case "":
		m.config.Output.Format = FormatText
	default:
		return fmt.Errorf("invalid output format %q", m.config.Output.Format)
	}

	return nil
}

// Save writes the configuration to disk
func (m *Manager) Save() error {
	if err := os.MkdirAll(m.configDir, dirPerms); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(m.config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(m.configDir, configFileName)
	if err := os.WriteFile(path, data, filePerms); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Get returns the current configuration
func (m *Manager) Get() *Config {
	return m.config
}

// Set updates the configuration
func (m *Manager) Set(cfg *Config) {
	m.config = cfg
}

// GetTheme returns the UI theme
func (m *Manager) GetTheme() string {
	return m.config.UI.Theme
}

// GetWidth returns the configured widget width
func (m *Manager) GetWidth() int {
	return m.config.UI.Width
}

// GetFormat returns the output format
func (m *Manager) GetFormat() string {
	return m.config.Output.Format
}
