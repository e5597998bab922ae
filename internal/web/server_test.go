package web

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/codgamerofficial/sonicstream/internal/core"
	"github.com/codgamerofficial/sonicstream/internal/library"
	"github.com/codgamerofficial/sonicstream/internal/session"
	"github.com/codgamerofficial/sonicstream/internal/settings"
	"github.com/codgamerofficial/sonicstream/internal/storage"
	"github.com/codgamerofficial/sonicstream/internal/transport"
)

type nopAdapter struct {
	events chan transport.Event
}

func (a *nopAdapter) Play() error             { return nil }
func (a *nopAdapter) Pause() error            { return nil }
func (a *nopAdapter) Seek(float64) error      { return nil }
func (a *nopAdapter) SetVolume(float64) error { return nil }
func (a *nopAdapter) Events() <-chan transport.Event {
	return a.events
}
func (a *nopAdapter) Close() error {
	close(a.events)
	return nil
}

type stubSearcher struct {
	tracks []core.Track
}

func (s stubSearcher) Search(context.Context, string) []core.Track {
	return s.tracks
}

func newTestServer(t *testing.T) (*Server, *library.Library) {
	t.Helper()
	store, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	lib := library.New(store)
	prefs := settings.New(store)

	factory := transport.FactoryFunc(func(context.Context, core.Track) (transport.Adapter, error) {
		return &nopAdapter{events: make(chan transport.Event, 4)}, nil
	})
	sess := session.New(context.Background(), factory, lib, prefs)

	searcher := stubSearcher{tracks: []core.Track{{ID: "s1", Title: "Search Hit"}}}
	return NewServer(sess, lib, searcher, nil, nil), lib
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestStateReflectsPlay(t *testing.T) {
	srv, _ := newTestServer(t)
	router := srv.Router()

	track := core.Track{ID: "t1", Title: "First", Artist: "Band"}
	if rec := doJSON(t, router, http.MethodPost, "/api/play", track); rec.Code != http.StatusOK {
		t.Fatalf("POST /api/play status = %d", rec.Code)
	}

	rec := doJSON(t, router, http.MethodGet, "/api/state", nil)
	var snap session.Snapshot
	if err := json.NewDecoder(rec.Body).Decode(&snap); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if snap.Track == nil || snap.Track.ID != "t1" {
		t.Errorf("state track = %+v, want t1", snap.Track)
	}
	if !snap.IsPlaying {
		t.Error("state not playing after play")
	}
}

func TestPlayRejectsTrackWithoutID(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, srv.Router(), http.MethodPost, "/api/play", core.Track{Title: "No ID"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestQueueOrderAfterEnqueue(t *testing.T) {
	srv, _ := newTestServer(t)
	router := srv.Router()

	doJSON(t, router, http.MethodPost, "/api/play", core.Track{ID: "a"})
	doJSON(t, router, http.MethodPost, "/api/enqueue", core.Track{ID: "b"})

	rec := doJSON(t, router, http.MethodGet, "/api/queue", nil)
	var queue []core.Track
	if err := json.NewDecoder(rec.Body).Decode(&queue); err != nil {
		t.Fatalf("decode queue: %v", err)
	}
	if len(queue) != 2 || queue[0].ID != "a" || queue[1].ID != "b" {
		t.Errorf("queue = %v, want [a b]", queue)
	}
}

func TestToggleFlipsPlayback(t *testing.T) {
	srv, _ := newTestServer(t)
	router := srv.Router()

	doJSON(t, router, http.MethodPost, "/api/play", core.Track{ID: "a"})
	rec := doJSON(t, router, http.MethodPost, "/api/toggle", nil)

	var snap session.Snapshot
	json.NewDecoder(rec.Body).Decode(&snap)
	if snap.IsPlaying {
		t.Error("still playing after toggle")
	}
}

func TestSeekBody(t *testing.T) {
	srv, _ := newTestServer(t)
	router := srv.Router()

	doJSON(t, router, http.MethodPost, "/api/play", core.Track{ID: "a"})
	rec := doJSON(t, router, http.MethodPost, "/api/seek", map[string]float64{"fraction": 0.5})

	var snap session.Snapshot
	json.NewDecoder(rec.Body).Decode(&snap)
	if snap.Progress != 0.5 {
		t.Errorf("progress = %v, want 0.5", snap.Progress)
	}
}

func TestThemeRoundTrip(t *testing.T) {
	srv, _ := newTestServer(t)
	router := srv.Router()

	rec := doJSON(t, router, http.MethodPost, "/api/theme", map[string]string{"theme": "cyan"})
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /api/theme status = %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/theme", nil)
	var body map[string]core.Theme
	json.NewDecoder(rec.Body).Decode(&body)
	if body["theme"] != core.ThemeCyan {
		t.Errorf("theme = %q, want cyan", body["theme"])
	}
}

func TestThemeRejectsUnknown(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, srv.Router(), http.MethodPost, "/api/theme", map[string]string{"theme": "neon"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestFavoriteToggleRoundTrip(t *testing.T) {
	srv, lib := newTestServer(t)
	router := srv.Router()

	track := core.Track{ID: "f1", Title: "Fav"}
	rec := doJSON(t, router, http.MethodPost, "/api/favorites/toggle", track)
	var body map[string]bool
	json.NewDecoder(rec.Body).Decode(&body)
	if !body["favorite"] {
		t.Error("favorite = false after first toggle")
	}
	if !lib.IsFavorite("f1") {
		t.Error("library does not record the favorite")
	}

	doJSON(t, router, http.MethodPost, "/api/favorites/toggle", track)
	if lib.IsFavorite("f1") {
		t.Error("favorite survived second toggle")
	}
}

func TestPlaylistLifecycle(t *testing.T) {
	srv, _ := newTestServer(t)
	router := srv.Router()

	rec := doJSON(t, router, http.MethodPost, "/api/playlists", map[string]string{"name": "Road Trip"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rec.Code)
	}
	var pl core.Playlist
	json.NewDecoder(rec.Body).Decode(&pl)

	rec = doJSON(t, router, http.MethodPost, "/api/playlists/"+pl.ID+"/songs", core.Track{ID: "s1"})
	if rec.Code != http.StatusOK {
		t.Fatalf("add song status = %d", rec.Code)
	}
	json.NewDecoder(rec.Body).Decode(&pl)
	if pl.Len() != 1 {
		t.Errorf("playlist len = %d, want 1", pl.Len())
	}

	rec = doJSON(t, router, http.MethodDelete, "/api/playlists/"+pl.ID+"/songs/s1", nil)
	json.NewDecoder(rec.Body).Decode(&pl)
	if pl.Len() != 0 {
		t.Errorf("playlist len = %d after removal, want 0", pl.Len())
	}

	if rec = doJSON(t, router, http.MethodDelete, "/api/playlists/"+pl.ID, nil); rec.Code != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", rec.Code)
	}
}

func TestPlaylistSongRejectsMissingPlaylist(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, srv.Router(), http.MethodPost, "/api/playlists/nope/songs", core.Track{ID: "s1"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestSearchRequiresQuery(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, srv.Router(), http.MethodGet, "/api/search", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSearchReturnsTracks(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, srv.Router(), http.MethodGet, "/api/search?q=hit", nil)

	var tracks []core.Track
	json.NewDecoder(rec.Body).Decode(&tracks)
	if len(tracks) != 1 || tracks[0].ID != "s1" {
		t.Errorf("search = %v, want [s1]", tracks)
	}
}

func TestUnconfiguredCollaborators(t *testing.T) {
	srv, _ := newTestServer(t)
	router := srv.Router()

	if rec := doJSON(t, router, http.MethodGet, "/api/recommend?mood=happy", nil); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("recommend status = %d, want 503", rec.Code)
	}
	if rec := doJSON(t, router, http.MethodPost, "/api/share", core.Track{ID: "x"}); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("share status = %d, want 503", rec.Code)
	}
}
