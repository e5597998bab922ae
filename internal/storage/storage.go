// Package storage provides the durable local key/value store backing
// favorites, playlists, theme selection, and local catalog uploads.
// Each key is a JSON document in its own file under the data directory.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Well-known storage keys.
const (
	KeyFavorites    = "favorites"
	KeyPlaylists    = "playlists"
	KeyTheme        = "theme"
	KeyLocalUploads = "local_uploads"
)

// Store persists JSON values to disk, one file per key.
type Store struct {
	dir string
}

// New creates a store rooted at dir. If dir is empty, the default
// location (~/.config/sonic) is used.
func New(dir string) (*Store, error) {
	if dir == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get config directory: %w", err)
		}
		dir = filepath.Join(configDir, "sonic")
	}
	return &Store{dir: dir}, nil
}

// Save serializes v and writes it for the given key. The write happens
// immediately; callers rely on write-through semantics after every
// collection mutation.
func (s *Store) Save(key string, v any) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}

	if err := os.WriteFile(s.path(key), data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}

	return nil
}

// Load reads the value stored for key into out. The first return value
// is false when nothing is stored for the key. A file that exists but
// fails to parse returns an error; callers degrade to an empty
// collection in that case.
func (s *Store) Load(key string, out any) (bool, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("failed to parse %s: %w", key, err)
	}

	return true, nil
}

// Delete removes the stored value for key. No-op if absent.
func (s *Store) Delete(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Exists returns true if a value is stored for key.
func (s *Store) Exists(key string) bool {
	_, err := os.Stat(s.path(key))
	return err == nil
}

// Dir returns the store's data directory.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
