// Package settings holds small persisted user preferences, currently
// the accent theme. It follows the same write-through persistence
// pattern as the library collections.
package settings

import (
	"log/slog"
	"sync"

	"github.com/codgamerofficial/sonicstream/internal/core"
	"github.com/codgamerofficial/sonicstream/internal/storage"
)

// Settings is the persisted preference store.
type Settings struct {
	mu    sync.RWMutex
	store *storage.Store
	theme core.Theme
}

// New loads preferences from the store. A missing or invalid stored
// theme falls back to the default.
func New(store *storage.Store) *Settings {
	s := &Settings{store: store, theme: core.DefaultTheme}

	var raw string
	found, err := store.Load(storage.KeyTheme, &raw)
	if err != nil {
		slog.Warn("discarding unreadable theme", "error", err)
		return s
	}
	if found {
		if t, err := core.ParseTheme(raw); err == nil {
			s.theme = t
		}
	}

	return s
}

// Theme returns the active accent theme.
func (s *Settings) Theme() core.Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// SetTheme switches the accent theme and persists it immediately.
// Invalid themes are ignored.
func (s *Settings) SetTheme(t core.Theme) {
	if !t.Valid() {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = t

	if err := s.store.Save(storage.KeyTheme, string(t)); err != nil {
		slog.Warn("failed to persist theme", "error", err)
	}
}
