// Package config loads and saves the vhr configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the vhr configuration. Command-line flags override any
// value loaded from the file.
type Config struct {
	InputDir  string  `yaml:"input_dir"`
	OutputDir string  `yaml:"output_dir"`
	Workers   int     `yaml:"workers"` // 0 means one per CPU
	SignalDB  string  `yaml:"signal_db"`
	Resume    bool    `yaml:"resume"`
	Logging   Logging `yaml:"logging"`
	Metrics   Metrics `yaml:"metrics"`
}

// Logging contains logging configuration.
type Logging struct {
	Level string `yaml:"level"`
}

// Metrics contains the optional metrics listener configuration.
type Metrics struct {
	Listen string `yaml:"listen"` // empty disables the listener
}

// DefaultConfig returns a default configuration.
func DefaultConfig() *Config {
	return &Config{
		Logging: Logging{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from the specified path.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves the configuration to the specified path.
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetDefaultConfigPath returns the default configuration path for the current
// platform.
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./vhr.yaml"
	}

	configDir := filepath.Join(homeDir, ".config", "vhr")
	return filepath.Join(configDir, "config.yaml")
}

// ConfigExists checks if a configuration file exists.
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
