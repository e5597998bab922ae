package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/codgamerofficial/sonicstream/internal/core"
	"github.com/codgamerofficial/sonicstream/internal/storage"
)

func TestThemeDefaultsToViolet(t *testing.T) {
	store, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}

	s := New(store)
	if got := s.Theme(); got != core.ThemeViolet {
		t.Errorf("Theme() = %q, want %q", got, core.ThemeViolet)
	}
}

func TestSetThemePersists(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.New(dir)
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}

	s := New(store)
	s.SetTheme(core.ThemeEmerald)

	store2, err := storage.New(dir)
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	reloaded := New(store2)

	if got := reloaded.Theme(); got != core.ThemeEmerald {
		t.Errorf("Theme() after reload = %q, want %q", got, core.ThemeEmerald)
	}
}

func TestSetThemeRejectsUnknown(t *testing.T) {
	store, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}

	s := New(store)
	s.SetTheme(core.Theme("plaid"))

	if got := s.Theme(); got != core.DefaultTheme {
		t.Errorf("Theme() = %q after invalid set, want default", got)
	}
}

func TestCorruptStoredThemeFallsBack(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "theme.json"), []byte("???"), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	store, err := storage.New(dir)
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}

	s := New(store)
	if got := s.Theme(); got != core.DefaultTheme {
		t.Errorf("Theme() = %q for corrupt value, want default", got)
	}
}

func TestUnknownStoredThemeFallsBack(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.New(dir)
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	if err := store.Save(storage.KeyTheme, "chartreuse"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	s := New(store)
	if got := s.Theme(); got != core.DefaultTheme {
		t.Errorf("Theme() = %q for unknown stored value, want default", got)
	}
}
