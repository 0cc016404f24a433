package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := loadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !cfg.UI.VimMode {
		t.Error("expected vim mode on by default")
	}
	if cfg.Chat.RefreshDelay != time.Second {
		t.Errorf("expected 1s refresh delay, got %v", cfg.Chat.RefreshDelay)
	}
	if cfg.Services.TaskURL == "" {
		t.Error("expected a default task service URL")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected info log level by default, got %q", cfg.LogLevel)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
services:
  auth_url: http://auth.example
  task_url: http://tasks.example
chat:
  refresh_delay: 2s
ui:
  vim_mode: false
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := loadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Services.AuthURL != "http://auth.example" {
		t.Errorf("unexpected auth URL: %s", cfg.Services.AuthURL)
	}
	if cfg.Services.TaskURL != "http://tasks.example" {
		t.Errorf("unexpected task URL: %s", cfg.Services.TaskURL)
	}
	if cfg.Chat.RefreshDelay != 2*time.Second {
		t.Errorf("unexpected refresh delay: %v", cfg.Chat.RefreshDelay)
	}
	if cfg.UI.VimMode {
		t.Error("expected vim mode off")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("services:\n  auth_url: http://file.example\n"), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	t.Setenv("EVOTODO_AUTH_URL", "http://env.example")

	cfg, err := loadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Services.AuthURL != "http://env.example" {
		t.Errorf("expected env override, got %s", cfg.Services.AuthURL)
	}
}
