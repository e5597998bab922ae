// Package community talks to the shared public song catalog. Remote
// writes fall back silently to a durable local collection so a
// contributor always sees their own submission, whether or not the
// remote store was reachable; readers merge both sources.
package community

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/codgamerofficial/sonicstream/internal/core"
	"github.com/codgamerofficial/sonicstream/internal/storage"
)

// resource is the remote collection name.
const resource = "public_songs"

// remoteSong is the wire shape of a catalog row.
type remoteSong struct {
	YouTubeID string `json:"youtube_id"`
	Title     string `json:"title"`
	Artist    string `json:"artist"`
	Thumbnail string `json:"thumbnail"`
	CreatedAt string `json:"created_at,omitempty"`
}

func (r remoteSong) track() core.Track {
	return core.Track{
		ID:           r.YouTubeID,
		Title:        r.Title,
		Artist:       r.Artist,
		ThumbnailURL: r.Thumbnail,
	}
}

// Service is the public catalog collaborator. A zero base URL means
// the remote store is unconfigured and only local uploads are used.
type Service struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	store      *storage.Store
}

// New creates the community catalog service.
func New(baseURL, apiKey string, store *storage.Store) *Service {
	return &Service{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		store:      store,
	}
}

// List returns the shared catalog merged with local uploads, local
// first, deduplicated by ID. Remote failures degrade to local-only.
func (s *Service) List(ctx context.Context) []core.Track {
	local := s.localUploads()

	remote, err := s.fetch(ctx, url.Values{"order": {"created_at.desc"}})
	if err != nil {
		slog.Warn("community catalog unavailable", "error", err)
		return local
	}

	return dedupe(append(local, remote...))
}

// Search returns catalog entries matching the query by title or
// artist, merged with matching local uploads.
func (s *Service) Search(ctx context.Context, query string) []core.Track {
	q := strings.ToLower(query)
	local := lo.Filter(s.localUploads(), func(t core.Track, _ int) bool {
		return strings.Contains(strings.ToLower(t.Title), q) ||
			strings.Contains(strings.ToLower(t.Artist), q)
	})

	pattern := "%" + query + "%"
	remote, err := s.fetch(ctx, url.Values{
		"or": {fmt.Sprintf("(title.ilike.%s,artist.ilike.%s)", pattern, pattern)},
	})
	if err != nil {
		return local
	}

	return dedupe(append(local, remote...))
}

// Submit contributes a track to the shared catalog. On remote failure
// the track is written to the local uploads collection instead; the
// caller cannot tell the difference and never receives an error.
func (s *Service) Submit(ctx context.Context, t core.Track) {
	if err := s.insert(ctx, t); err != nil {
		slog.Warn("community submit failed, keeping local copy", "track", t.ID, "error", err)
		s.saveLocal(t)
	}
}

func (s *Service) fetch(ctx context.Context, params url.Values) ([]core.Track, error) {
	if s.baseURL == "" {
		return nil, fmt.Errorf("community catalog not configured")
	}

	params.Set("select", "*")
	reqURL := fmt.Sprintf("%s/%s?%s", s.baseURL, resource, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	s.authorize(req)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("community catalog status %d", resp.StatusCode)
	}

	var rows []remoteSong
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, err
	}

	return lo.Map(rows, func(r remoteSong, _ int) core.Track { return r.track() }), nil
}

func (s *Service) insert(ctx context.Context, t core.Track) error {
	if s.baseURL == "" {
		return fmt.Errorf("community catalog not configured")
	}

	row := remoteSong{
		YouTubeID: t.ID,
		Title:     t.Title,
		Artist:    t.Artist,
		Thumbnail: t.ThumbnailURL,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	payload, err := json.Marshal([]remoteSong{row})
	if err != nil {
		return err
	}

	reqURL := fmt.Sprintf("%s/%s", s.baseURL, resource)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	s.authorize(req)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("community catalog status %d", resp.StatusCode)
	}
	return nil
}

func (s *Service) authorize(req *http.Request) {
	if s.apiKey != "" {
		req.Header.Set("apikey", s.apiKey)
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}
}

func (s *Service) localUploads() []core.Track {
	var tracks []core.Track
	if _, err := s.store.Load(storage.KeyLocalUploads, &tracks); err != nil {
		slog.Warn("discarding unreadable local uploads", "error", err)
		return nil
	}
	return tracks
}

func (s *Service) saveLocal(t core.Track) {
	current := s.localUploads()
	if lo.ContainsBy(current, func(c core.Track) bool { return c.ID == t.ID }) {
		return
	}
	updated := append([]core.Track{t}, current...)
	if err := s.store.Save(storage.KeyLocalUploads, updated); err != nil {
		slog.Warn("failed to persist local upload", "error", err)
	}
}

func dedupe(tracks []core.Track) []core.Track {
	return lo.UniqBy(tracks, func(t core.Track) string { return t.ID })
}
