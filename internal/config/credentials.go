package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "evotodo"
	keyringUser    = "session"
	credFileName   = ".credentials"
)

// Credentials is the durable slot written by sign-in and read at process
// start. EmailHint is kept next to the token so the degraded restoration
// path can still label the session while the server confirms the real
// identity; it is never an identifier.
type Credentials struct {
	Token     string `json:"token"`
	EmailHint string `json:"email_hint,omitempty"`
}

// DataDir returns the path to the data directory for secure storage.
// Uses XDG_DATA_HOME or defaults to ~/.local/share/evotodo/
func DataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dataHome = filepath.Join(homeDir, ".local", "share")
	}

	dataDir := filepath.Join(dataHome, appDirName)
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}

	return dataDir, nil
}

// LoadCredentials retrieves the stored credentials.
// Priority: 1. System keyring, 2. Credentials file.
// A missing slot is not an error; it returns zero Credentials.
func LoadCredentials() (Credentials, error) {
	if raw, err := keyring.Get(keyringService, keyringUser); err == nil && raw != "" {
		return decodeCredentials([]byte(raw))
	}

	dataDir, err := DataDir()
	if err != nil {
		return Credentials{}, err
	}

	credPath := filepath.Join(dataDir, credFileName)
	data, err := os.ReadFile(credPath)
	if err != nil {
		if os.IsNotExist(err) {
			return Credentials{}, nil
		}
		return Credentials{}, fmt.Errorf("failed to read credentials file: %w", err)
	}

	return decodeCredentials(data)
}

func decodeCredentials(data []byte) (Credentials, error) {
	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return Credentials{}, fmt.Errorf("failed to parse stored credentials: %w", err)
	}
	return creds, nil
}

// SaveCredentials stores the credentials durably.
// Tries system keyring first, falls back to a credentials file.
func SaveCredentials(creds Credentials) error {
	if creds.Token == "" {
		return fmt.Errorf("token cannot be empty")
	}

	data, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("failed to serialize credentials: %w", err)
	}

	if err := keyring.Set(keyringService, keyringUser, string(data)); err == nil {
		return nil
	}

	dataDir, err := DataDir()
	if err != nil {
		return err
	}

	credPath := filepath.Join(dataDir, credFileName)
	if err := os.WriteFile(credPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write credentials file: %w", err)
	}

	return nil
}

// ClearCredentials removes the stored credentials from all locations.
func ClearCredentials() error {
	// Keyring may not have an entry; that's fine.
	_ = keyring.Delete(keyringService, keyringUser)

	dataDir, err := DataDir()
	if err != nil {
		return err
	}

	credPath := filepath.Join(dataDir, credFileName)
	if err := os.Remove(credPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove credentials file: %w", err)
	}

	return nil
}
