// Package keystore persists small per-user secrets (session token, theme
// preference) behind a minimal key-value interface. On macOS values live in
// the login keychain; elsewhere they live in a mode-0600 JSON file under the
// XDG data directory.
package keystore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const service = "com.wholefoodlabs.larder"

// Store is the secure key-value surface the stores depend on. An absent key
// is reported through the ok result, not an error.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
}

// Open returns the preferred Store for the current platform.
func Open() Store {
	return platformStore()
}

// FileStore keeps secrets in a single JSON file. It is the fallback backend
// on platforms without a keychain and the backend used by tests.
type FileStore struct {
	path string
}

// NewFileStore builds a FileStore rooted at path. An empty path uses the
// default secrets file under the XDG data directory.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = defaultSecretsPath()
	}
	return &FileStore{path: path}
}

func defaultSecretsPath() string {
	dir := os.Getenv("XDG_DATA_HOME")
	if dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, ".local", "share")
		} else {
			dir = "."
		}
	}
	return filepath.Join(dir, "larder", "secrets.json")
}

// Get reads one secret. A missing file or missing key is (_, false, nil).
func (fs *FileStore) Get(key string) (string, bool, error) {
	secrets, err := fs.read()
	if err != nil {
		return "", false, err
	}
	value, ok := secrets[key]
	return value, ok, nil
}

// Set writes one secret, creating the secrets file and its directory on first
// use. Last write wins.
func (fs *FileStore) Set(key, value string) error {
	secrets, err := fs.read()
	if err != nil {
		return err
	}
	if secrets == nil {
		secrets = make(map[string]string)
	}
	secrets[key] = value
	return fs.write(secrets)
}

// Delete removes one secret. Deleting an absent key is not an error.
func (fs *FileStore) Delete(key string) error {
	secrets, err := fs.read()
	if err != nil {
		return err
	}
	if _, ok := secrets[key]; !ok {
		return nil
	}
	delete(secrets, key)
	return fs.write(secrets)
}

func (fs *FileStore) read() (map[string]string, error) {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read secrets: %w", err)
	}
	var secrets map[string]string
	if err := json.Unmarshal(data, &secrets); err != nil {
		return nil, fmt.Errorf("parse secrets: %w", err)
	}
	return secrets, nil
}

func (fs *FileStore) write(secrets map[string]string) error {
	dir := filepath.Dir(fs.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create secrets dir: %w", err)
	}
	out, err := json.MarshalIndent(secrets, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal secrets: %w", err)
	}
	if err := os.WriteFile(fs.path, out, 0o600); err != nil {
		return fmt.Errorf("write secrets: %w", err)
	}
	return nil
}
