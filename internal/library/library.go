// Package library owns the user's persisted collections: the favorites
// set and named playlists. Every mutation is written through to local
// storage immediately; loading happens once at construction and any
// corrupt or missing data degrades to an empty collection.
package library

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/codgamerofficial/sonicstream/internal/core"
	"github.com/codgamerofficial/sonicstream/internal/storage"
)

// Library is the collection store for favorites and playlists.
type Library struct {
	mu        sync.RWMutex
	store     *storage.Store
	favorites []core.Track
	playlists []core.Playlist
}

// New loads collections from the store. Parse failures are logged and
// treated as empty collections; they never surface to the caller.
func New(store *storage.Store) *Library {
	l := &Library{store: store}

	if _, err := store.Load(storage.KeyFavorites, &l.favorites); err != nil {
		slog.Warn("discarding unreadable favorites", "error", err)
		l.favorites = nil
	}
	if _, err := store.Load(storage.KeyPlaylists, &l.playlists); err != nil {
		slog.Warn("discarding unreadable playlists", "error", err)
		l.playlists = nil
	}

	return l
}

// ToggleFavorite adds the track to favorites if absent, removes it if
// present. Membership is keyed by track ID.
func (l *Library) ToggleFavorite(t core.Track) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := lo.Find(l.favorites, func(f core.Track) bool { return f.ID == t.ID }); ok {
		l.favorites = lo.Reject(l.favorites, func(f core.Track, _ int) bool { return f.ID == t.ID })
	} else {
		l.favorites = append(l.favorites, t)
	}

	l.persistFavorites()
}

// IsFavorite reports whether a track with the given ID is favorited.
func (l *Library) IsFavorite(id string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return lo.ContainsBy(l.favorites, func(f core.Track) bool { return f.ID == id })
}

// Favorites returns the favorited tracks in insertion order.
func (l *Library) Favorites() []core.Track {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]core.Track, len(l.favorites))
	copy(out, l.favorites)
	return out
}

// CreatePlaylist creates an empty playlist with a fresh unique ID and
// returns it. The name is taken as-is; rejecting blank input is the
// caller's job.
func (l *Library) CreatePlaylist(name string) core.Playlist {
	l.mu.Lock()
	defer l.mu.Unlock()

	p := core.Playlist{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now(),
	}
	l.playlists = append(l.playlists, p)

	l.persistPlaylists()
	return p
}

// DeletePlaylist removes the playlist with the given ID. No-op if
// absent. Favorites and other playlists are unaffected.
func (l *Library) DeletePlaylist(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	before := len(l.playlists)
	l.playlists = lo.Reject(l.playlists, func(p core.Playlist, _ int) bool { return p.ID == id })
	if len(l.playlists) == before {
		return
	}

	l.persistPlaylists()
}

// AddToPlaylist appends the track to the playlist's song list. No-op
// if the playlist is absent or the track ID is already present.
func (l *Library) AddToPlaylist(playlistID string, t core.Track) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.playlists {
		if l.playlists[i].ID != playlistID {
			continue
		}
		if l.playlists[i].Contains(t.ID) {
			return
		}
		l.playlists[i].Songs = append(l.playlists[i].Songs, t)
		l.persistPlaylists()
		return
	}
}

// RemoveFromPlaylist removes the track from the playlist's song list.
// No-op if either the playlist or the track is absent.
func (l *Library) RemoveFromPlaylist(playlistID, trackID string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.playlists {
		if l.playlists[i].ID != playlistID {
			continue
		}
		if !l.playlists[i].Contains(trackID) {
			return
		}
		l.playlists[i].Songs = lo.Reject(l.playlists[i].Songs,
			func(s core.Track, _ int) bool { return s.ID == trackID })
		l.persistPlaylists()
		return
	}
}

// Playlists returns all playlists in creation order.
func (l *Library) Playlists() []core.Playlist {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]core.Playlist, len(l.playlists))
	copy(out, l.playlists)
	return out
}

// Playlist returns the playlist with the given ID.
func (l *Library) Playlist(id string) (core.Playlist, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return lo.Find(l.playlists, func(p core.Playlist) bool { return p.ID == id })
}

// FindPlaylistByName returns the first playlist with the given name.
func (l *Library) FindPlaylistByName(name string) (core.Playlist, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return lo.Find(l.playlists, func(p core.Playlist) bool { return p.Name == name })
}

// Persistence is best-effort: a failed write keeps the in-memory state
// and is retried implicitly on the next mutation.
func (l *Library) persistFavorites() {
	if err := l.store.Save(storage.KeyFavorites, l.favorites); err != nil {
		slog.Warn("failed to persist favorites", "error", err)
	}
}

func (l *Library) persistPlaylists() {
	if err := l.store.Save(storage.KeyPlaylists, l.playlists); err != nil {
		slog.Warn("failed to persist playlists", "error", err)
	}
}
