package community

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/codgamerofficial/sonicstream/internal/core"
	"github.com/codgamerofficial/sonicstream/internal/storage"
)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	return store
}

func TestSubmitFallsBackToLocalOnRemoteFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "table missing", http.StatusNotFound)
	}))
	defer srv.Close()

	store := newTestStore(t)
	svc := New(srv.URL, "key", store)

	track := core.Track{ID: "x1", Title: "Song X", Artist: "Band"}
	svc.Submit(context.Background(), track)

	var saved []core.Track
	found, err := store.Load(storage.KeyLocalUploads, &saved)
	if err != nil || !found {
		t.Fatalf("local uploads not written: found=%v err=%v", found, err)
	}
	if len(saved) != 1 || saved[0].ID != "x1" {
		t.Errorf("local uploads = %v, want [x1]", saved)
	}
}

func TestSubmitLocalFallbackDeduplicates(t *testing.T) {
	store := newTestStore(t)
	svc := New("", "", store) // unconfigured remote always fails

	track := core.Track{ID: "x1", Title: "Song X"}
	svc.Submit(context.Background(), track)
	svc.Submit(context.Background(), track)

	var saved []core.Track
	if _, err := store.Load(storage.KeyLocalUploads, &saved); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(saved) != 1 {
		t.Errorf("local uploads len = %d, want 1", len(saved))
	}
}

func TestSubmitPrefersRemote(t *testing.T) {
	var inserted bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			inserted = true
			w.WriteHeader(http.StatusCreated)
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	store := newTestStore(t)
	svc := New(srv.URL, "key", store)

	svc.Submit(context.Background(), core.Track{ID: "x1"})

	if !inserted {
		t.Error("remote insert never attempted")
	}
	if store.Exists(storage.KeyLocalUploads) {
		t.Error("local fallback written despite remote success")
	}
}

func TestListMergesLocalAndRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"youtube_id":"r1","title":"Remote One","artist":"A"},
			{"youtube_id":"l1","title":"Remote Copy Of Local","artist":"B"}
		]`))
	}))
	defer srv.Close()

	store := newTestStore(t)
	svc := New(srv.URL, "", store)
	svc.saveLocal(core.Track{ID: "l1", Title: "Local One"})

	tracks := svc.List(context.Background())

	if len(tracks) != 2 {
		t.Fatalf("List() len = %d, want 2 (deduplicated)", len(tracks))
	}
	// Local uploads take precedence for duplicate IDs.
	if tracks[0].ID != "l1" || tracks[0].Title != "Local One" {
		t.Errorf("tracks[0] = %+v, want the local copy first", tracks[0])
	}
}

func TestListDegradesToLocalOnRemoteFailure(t *testing.T) {
	store := newTestStore(t)
	svc := New("", "", store)
	svc.saveLocal(core.Track{ID: "l1", Title: "Local One"})

	tracks := svc.List(context.Background())
	if len(tracks) != 1 || tracks[0].ID != "l1" {
		t.Errorf("List() = %v, want local uploads only", tracks)
	}
}

func TestSearchFiltersLocalUploads(t *testing.T) {
	store := newTestStore(t)
	svc := New("", "", store)
	svc.saveLocal(core.Track{ID: "l1", Title: "Midnight Drive", Artist: "Neon"})
	svc.saveLocal(core.Track{ID: "l2", Title: "Sunrise", Artist: "Dawn Patrol"})

	tracks := svc.Search(context.Background(), "midnight")
	if len(tracks) != 1 || tracks[0].ID != "l1" {
		t.Errorf("Search(midnight) = %v, want [l1]", tracks)
	}

	tracks = svc.Search(context.Background(), "patrol")
	if len(tracks) != 1 || tracks[0].ID != "l2" {
		t.Errorf("Search(patrol) = %v, want [l2] by artist", tracks)
	}
}
