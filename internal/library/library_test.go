package library

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/codgamerofficial/sonicstream/internal/core"
	"github.com/codgamerofficial/sonicstream/internal/storage"
)

func newTestLibrary(t *testing.T) (*Library, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.New(dir)
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	return New(store), dir
}

func TestToggleFavoriteInvolution(t *testing.T) {
	l, _ := newTestLibrary(t)
	track := core.Track{ID: "x1", Title: "Song X"}

	l.ToggleFavorite(track)
	if !l.IsFavorite("x1") {
		t.Fatal("IsFavorite() = false after first toggle")
	}

	l.ToggleFavorite(track)
	if l.IsFavorite("x1") {
		t.Error("IsFavorite() = true after second toggle, want false")
	}
	if len(l.Favorites()) != 0 {
		t.Errorf("Favorites() len = %d, want 0", len(l.Favorites()))
	}
}

func TestFavoritesPreserveInsertionOrder(t *testing.T) {
	l, _ := newTestLibrary(t)
	l.ToggleFavorite(core.Track{ID: "a"})
	l.ToggleFavorite(core.Track{ID: "b"})
	l.ToggleFavorite(core.Track{ID: "c"})
	l.ToggleFavorite(core.Track{ID: "b"}) // remove the middle one

	favs := l.Favorites()
	if len(favs) != 2 || favs[0].ID != "a" || favs[1].ID != "c" {
		t.Errorf("Favorites() = %v, want [a c]", favs)
	}
}

func TestFavoritesPersistAcrossReload(t *testing.T) {
	l, dir := newTestLibrary(t)
	l.ToggleFavorite(core.Track{ID: "x1", Title: "Song X"})

	store, err := storage.New(dir)
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	reloaded := New(store)

	if !reloaded.IsFavorite("x1") {
		t.Error("favorite lost across reload")
	}
}

func TestCreatePlaylistGeneratesUniqueIDs(t *testing.T) {
	l, _ := newTestLibrary(t)
	a := l.CreatePlaylist("First")
	b := l.CreatePlaylist("Second")

	if a.ID == "" || b.ID == "" {
		t.Fatal("CreatePlaylist() returned empty ID")
	}
	if a.ID == b.ID {
		t.Error("CreatePlaylist() returned duplicate IDs")
	}
	if len(l.Playlists()) != 2 {
		t.Errorf("Playlists() len = %d, want 2", len(l.Playlists()))
	}
}

func TestAddToPlaylistIdempotent(t *testing.T) {
	l, _ := newTestLibrary(t)
	p := l.CreatePlaylist("Mix")
	track := core.Track{ID: "x1", Title: "Song X"}

	l.AddToPlaylist(p.ID, track)
	l.AddToPlaylist(p.ID, track)

	got, ok := l.Playlist(p.ID)
	if !ok {
		t.Fatal("Playlist() not found")
	}
	if got.Len() != 1 {
		t.Errorf("playlist length = %d after duplicate add, want 1", got.Len())
	}
}

func TestAddToMissingPlaylistIsNoop(t *testing.T) {
	l, _ := newTestLibrary(t)
	l.AddToPlaylist("missing", core.Track{ID: "x1"})
	if len(l.Playlists()) != 0 {
		t.Error("adding to a missing playlist created one")
	}
}

func TestRemoveFromPlaylistNoopWhenAbsent(t *testing.T) {
	l, _ := newTestLibrary(t)
	p := l.CreatePlaylist("Mix")
	l.AddToPlaylist(p.ID, core.Track{ID: "x1"})

	l.RemoveFromPlaylist(p.ID, "never-added")
	l.RemoveFromPlaylist("missing-playlist", "x1")

	got, _ := l.Playlist(p.ID)
	if got.Len() != 1 {
		t.Errorf("playlist length = %d, want 1", got.Len())
	}
}

func TestRemoveFromPlaylist(t *testing.T) {
	l, _ := newTestLibrary(t)
	p := l.CreatePlaylist("Mix")
	l.AddToPlaylist(p.ID, core.Track{ID: "x1"})
	l.AddToPlaylist(p.ID, core.Track{ID: "x2"})

	l.RemoveFromPlaylist(p.ID, "x1")

	got, _ := l.Playlist(p.ID)
	if got.Len() != 1 || got.Songs[0].ID != "x2" {
		t.Errorf("playlist songs = %v, want [x2]", got.Songs)
	}
}

func TestDeletePlaylistDoesNotTouchFavorites(t *testing.T) {
	l, _ := newTestLibrary(t)
	track := core.Track{ID: "x1", Title: "Song X"}
	l.ToggleFavorite(track)

	p := l.CreatePlaylist("Road Trip")
	l.AddToPlaylist(p.ID, track)
	l.DeletePlaylist(p.ID)

	if _, ok := l.Playlist(p.ID); ok {
		t.Error("playlist still present after delete")
	}
	if !l.IsFavorite("x1") {
		t.Error("favorite removed by playlist delete")
	}
}

func TestDeleteMissingPlaylistIsNoop(t *testing.T) {
	l, _ := newTestLibrary(t)
	l.CreatePlaylist("Keep")
	l.DeletePlaylist("missing")
	if len(l.Playlists()) != 1 {
		t.Errorf("Playlists() len = %d, want 1", len(l.Playlists()))
	}
}

func TestMalformedStoredPlaylistsFallsBackToEmpty(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "playlists.json"), []byte("{corrupt"), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	store, err := storage.New(dir)
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}

	l := New(store)
	if len(l.Playlists()) != 0 {
		t.Errorf("Playlists() len = %d, want 0 for corrupt data", len(l.Playlists()))
	}

	// The store must still be usable after the fallback.
	l.CreatePlaylist("Fresh")
	if len(l.Playlists()) != 1 {
		t.Errorf("Playlists() len = %d after create, want 1", len(l.Playlists()))
	}
}

func TestPlaylistsPersistAcrossReload(t *testing.T) {
	l, dir := newTestLibrary(t)
	p := l.CreatePlaylist("Road Trip")
	l.AddToPlaylist(p.ID, core.Track{ID: "x1", Title: "Song X"})

	store, err := storage.New(dir)
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	reloaded := New(store)

	got, ok := reloaded.Playlist(p.ID)
	if !ok {
		t.Fatal("playlist lost across reload")
	}
	if got.Name != "Road Trip" || got.Len() != 1 {
		t.Errorf("reloaded playlist = %+v", got)
	}
}
