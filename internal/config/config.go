// Package config handles loading and saving application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const appDirName = "evotodo"

// Config represents the application configuration. Values come from the
// YAML config file first and may be overridden with EVOTODO_* environment
// variables.
type Config struct {
	Services ServicesConfig `yaml:"services" envPrefix:"EVOTODO_"`
	Chat     ChatConfig     `yaml:"chat" envPrefix:"EVOTODO_CHAT_"`
	UI       UIConfig       `yaml:"ui"`
	LogFile  string         `yaml:"log_file,omitempty" env:"EVOTODO_LOG_FILE"`
	LogLevel string         `yaml:"log_level" env:"EVOTODO_LOG_LEVEL"`
}

// ServicesConfig holds the base URLs of the backend services.
type ServicesConfig struct {
	AuthURL string `yaml:"auth_url,omitempty" env:"AUTH_URL"`
	TaskURL string `yaml:"task_url,omitempty" env:"TASK_URL"`
	ChatURL string `yaml:"chat_url,omitempty" env:"CHAT_URL"`
}

// ChatConfig holds chat-flow settings.
type ChatConfig struct {
	// RefreshDelay is how long to wait after a task-related chat message
	// before asking the synchronizer to reload, giving the agent backend
	// time to land its mutation.
	RefreshDelay time.Duration `yaml:"refresh_delay" env:"REFRESH_DELAY"`
}

// UIConfig holds UI-related settings.
type UIConfig struct {
	VimMode       bool `yaml:"vim_mode"`
	Notifications bool `yaml:"notifications"`
}

// DefaultConfig returns a new Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Services: ServicesConfig{
			AuthURL: "http://localhost:8001",
			TaskURL: "http://localhost:8000",
			ChatURL: "http://localhost:8000",
		},
		Chat: ChatConfig{
			RefreshDelay: time.Second,
		},
		UI: UIConfig{
			VimMode:       true,
			Notifications: true,
		},
		LogLevel: "info",
	}
}

// ConfigDir returns the path to the configuration directory.
// Creates the directory if it doesn't exist.
func ConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".config", appDirName)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// ConfigPath returns the full path to the configuration file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the configuration from the config file and applies
// environment overrides. A missing file yields the defaults.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return loadFrom(path)
}

func loadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment overrides: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the config file.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
