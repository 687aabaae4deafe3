package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/parishworks/vestry/internal/common"
)

// FileCredentialStore keeps the ledger API key in a mode-0600 JSON file
// under the user's config directory. It satisfies service.CredentialStore.
type FileCredentialStore struct {
	path string
}

type credentialFile struct {
	APIKey string `json:"api_key"`
}

// NewFileCredentialStore creates a store at the given path; an empty path
// defaults to ~/.config/vestry/credentials.json.
func NewFileCredentialStore(path string) *FileCredentialStore {
	if path == "" {
		path = ExpandPath("~/.config/vestry/credentials.json")
	}
	return &FileCredentialStore{path: ExpandPath(path)}
}

// APIKey returns the stored key, or ErrNoCredentials when none is saved.
func (s *FileCredentialStore) APIKey() (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", common.ErrNoCredentials
	}
	if err != nil {
		return "", fmt.Errorf("failed to read credentials: %w", err)
	}

	var creds credentialFile
	if err := json.Unmarshal(data, &creds); err != nil {
		return "", fmt.Errorf("failed to parse credentials: %w", err)
	}
	if creds.APIKey == "" {
		return "", common.ErrNoCredentials
	}
	return creds.APIKey, nil
}

// SetAPIKey saves the key, creating the config directory if needed.
func (s *FileCredentialStore) SetAPIKey(key string) error {
	if key == "" {
		return common.ErrInvalidConfig
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(credentialFile{APIKey: key}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write credentials: %w", err)
	}
	return nil
}

// Clear removes the stored key. Clearing an empty store is not an error.
func (s *FileCredentialStore) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
