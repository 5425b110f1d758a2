// Package apikey provides credential storage for the OpenAI provider.
// It handles saving, loading, and clearing of the API key file.
package apikey

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Credential stores the provider API key for the CLI.
type Credential struct {
	APIKey  string    `json:"api_key"`
	SavedAt time.Time `json:"saved_at"`
	// Verified is true when the key passed a provider round-trip test.
	Verified bool `json:"verified,omitempty"`
}

// IsValid checks that the credential carries a plausible key.
func (c *Credential) IsValid() bool {
	return c != nil && strings.TrimSpace(c.APIKey) != ""
}

// credentialDir returns the directory for storing the credential.
// Uses ~/.config/brandsnap on Unix-like systems.
func credentialDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	// Use XDG_CONFIG_HOME if set, otherwise ~/.config
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		configDir = filepath.Join(home, ".config")
	}

	return filepath.Join(configDir, "brandsnap"), nil
}

// credentialPath returns the full path to the credential file.
func credentialPath() (string, error) {
	dir, err := credentialDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "credentials.json"), nil
}

// Save stores the credential to the filesystem.
// The file is created with 0600 permissions for security.
func Save(cred *Credential) error {
	dir, err := credentialDir()
	if err != nil {
		return err
	}

	// Create directory if it doesn't exist (0700 for security)
	if mkdirErr := os.MkdirAll(dir, 0700); mkdirErr != nil {
		return fmt.Errorf("create config directory: %w", mkdirErr)
	}

	path, err := credentialPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cred, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal credential: %w", err)
	}

	// Write with restrictive permissions (owner read/write only)
	if writeErr := os.WriteFile(path, data, 0600); writeErr != nil {
		return fmt.Errorf("write credential file: %w", writeErr)
	}

	// 명시적 권한 설정 (umask에 의한 권한 완화 방지)
	if chmodErr := os.Chmod(path, 0600); chmodErr != nil {
		return fmt.Errorf("set credential file permissions: %w", chmodErr)
	}

	return nil
}

// Load reads the credential from the filesystem.
// Returns nil if no credential file exists.
func Load() (*Credential, error) {
	path, err := credentialPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // No credential stored
		}
		return nil, fmt.Errorf("read credential file: %w", err)
	}

	var cred Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		return nil, fmt.Errorf("parse credential file: %w", err)
	}

	return &cred, nil
}

// Clear removes the stored credential.
func Clear() error {
	path, err := credentialPath()
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove credential file: %w", err)
	}

	return nil
}

// Exists checks if the credential file exists.
func Exists() bool {
	path, err := credentialPath()
	if err != nil {
		return false
	}

	_, err = os.Stat(path)
	return err == nil
}

// Resolve returns the effective API key.
// The environment variable named by envVar takes precedence over the
// stored credential file. Returns an empty string when neither is set.
func Resolve(envVar string) (string, error) {
	if envVar != "" {
		if key := os.Getenv(envVar); key != "" {
			return key, nil
		}
	}

	cred, err := Load()
	if err != nil {
		return "", err
	}
	if cred.IsValid() {
		return strings.TrimSpace(cred.APIKey), nil
	}
	return "", nil
}

// MaskKey masks an API key for safe display.
// Only the first 8 characters are shown, followed by "...".
// Keys shorter than or equal to 8 characters are fully masked.
func MaskKey(key string) string {
	if len(key) <= 8 {
		return "***"
	}
	return key[:8] + "..."
}
