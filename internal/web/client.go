package web

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/codgamerofficial/sonicstream/internal/core"
	sonicerrors "github.com/codgamerofficial/sonicstream/internal/errors"
	"github.com/codgamerofficial/sonicstream/internal/session"
)

// Client is the control-plane client the CLI commands use to talk to a
// running serve or tui process.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a client for the control server at addr
// (host:port).
func NewClient(addr string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    "http://" + addr,
	}
}

// State fetches the current playback snapshot.
func (c *Client) State(ctx context.Context) (session.Snapshot, error) {
	var snap session.Snapshot
	err := c.call(ctx, http.MethodGet, "/api/state", nil, &snap)
	return snap, err
}

// Queue fetches the queued tracks in order.
func (c *Client) Queue(ctx context.Context) ([]core.Track, error) {
	var tracks []core.Track
	err := c.call(ctx, http.MethodGet, "/api/queue", nil, &tracks)
	return tracks, err
}

// Play makes the track current and starts playback.
func (c *Client) Play(ctx context.Context, t core.Track) (session.Snapshot, error) {
	var snap session.Snapshot
	err := c.call(ctx, http.MethodPost, "/api/play", t, &snap)
	return snap, err
}

// Enqueue appends the track to the queue.
func (c *Client) Enqueue(ctx context.Context, t core.Track) error {
	return c.call(ctx, http.MethodPost, "/api/enqueue", t, nil)
}

// Toggle flips between playing and paused.
func (c *Client) Toggle(ctx context.Context) (session.Snapshot, error) {
	var snap session.Snapshot
	err := c.call(ctx, http.MethodPost, "/api/toggle", nil, &snap)
	return snap, err
}

// Next skips to the next queued track.
func (c *Client) Next(ctx context.Context) (session.Snapshot, error) {
	var snap session.Snapshot
	err := c.call(ctx, http.MethodPost, "/api/next", nil, &snap)
	return snap, err
}

// Previous steps back to the previous queued track.
func (c *Client) Previous(ctx context.Context) (session.Snapshot, error) {
	var snap session.Snapshot
	err := c.call(ctx, http.MethodPost, "/api/prev", nil, &snap)
	return snap, err
}

// Seek jumps to a position given as a fraction of the track duration.
func (c *Client) Seek(ctx context.Context, fraction float64) error {
	return c.call(ctx, http.MethodPost, "/api/seek", map[string]float64{"fraction": fraction}, nil)
}

// SetVolume sets the playback volume in [0, 1].
func (c *Client) SetVolume(ctx context.Context, v float64) error {
	return c.call(ctx, http.MethodPost, "/api/volume", map[string]float64{"volume": v}, nil)
}

// ToggleBassBoost flips the bass boost flag.
func (c *Client) ToggleBassBoost(ctx context.Context) (session.Snapshot, error) {
	var snap session.Snapshot
	err := c.call(ctx, http.MethodPost, "/api/bassboost", nil, &snap)
	return snap, err
}

// Theme fetches the active accent theme.
func (c *Client) Theme(ctx context.Context) (core.Theme, error) {
	var body map[string]core.Theme
	if err := c.call(ctx, http.MethodGet, "/api/theme", nil, &body); err != nil {
		return "", err
	}
	return body["theme"], nil
}

// SetTheme switches the accent theme.
func (c *Client) SetTheme(ctx context.Context, t core.Theme) error {
	return c.call(ctx, http.MethodPost, "/api/theme", map[string]core.Theme{"theme": t}, nil)
}

// Favorites fetches the favorites collection.
func (c *Client) Favorites(ctx context.Context) ([]core.Track, error) {
	var tracks []core.Track
	err := c.call(ctx, http.MethodGet, "/api/favorites", nil, &tracks)
	return tracks, err
}

// ToggleFavorite adds or removes the track from favorites and reports
// the resulting membership.
func (c *Client) ToggleFavorite(ctx context.Context, t core.Track) (bool, error) {
	var body map[string]bool
	if err := c.call(ctx, http.MethodPost, "/api/favorites/toggle", t, &body); err != nil {
		return false, err
	}
	return body["favorite"], nil
}

// Playlists fetches all playlists.
func (c *Client) Playlists(ctx context.Context) ([]core.Playlist, error) {
	var playlists []core.Playlist
	err := c.call(ctx, http.MethodGet, "/api/playlists", nil, &playlists)
	return playlists, err
}

// CreatePlaylist creates an empty named playlist.
func (c *Client) CreatePlaylist(ctx context.Context, name string) (core.Playlist, error) {
	var pl core.Playlist
	err := c.call(ctx, http.MethodPost, "/api/playlists", map[string]string{"name": name}, &pl)
	return pl, err
}

// Playlist fetches one playlist by ID.
func (c *Client) Playlist(ctx context.Context, id string) (core.Playlist, error) {
	var pl core.Playlist
	err := c.call(ctx, http.MethodGet, "/api/playlists/"+url.PathEscape(id), nil, &pl)
	return pl, err
}

// DeletePlaylist removes a playlist.
func (c *Client) DeletePlaylist(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, "/api/playlists/"+url.PathEscape(id), nil, nil)
}

// AddToPlaylist appends a track to a playlist.
func (c *Client) AddToPlaylist(ctx context.Context, id string, t core.Track) error {
	return c.call(ctx, http.MethodPost, "/api/playlists/"+url.PathEscape(id)+"/songs", t, nil)
}

// RemoveFromPlaylist removes a track from a playlist.
func (c *Client) RemoveFromPlaylist(ctx context.Context, id, trackID string) error {
	path := fmt.Sprintf("/api/playlists/%s/songs/%s", url.PathEscape(id), url.PathEscape(trackID))
	return c.call(ctx, http.MethodDelete, path, nil, nil)
}

// Search resolves a query into tracks via the server's search service.
func (c *Client) Search(ctx context.Context, query string) ([]core.Track, error) {
	var tracks []core.Track
	err := c.call(ctx, http.MethodGet, "/api/search?q="+url.QueryEscape(query), nil, &tracks)
	return tracks, err
}

// Recommend asks the AI DJ for tracks matching a mood and genre.
func (c *Client) Recommend(ctx context.Context, mood, genre string) ([]core.Track, error) {
	path := fmt.Sprintf("/api/recommend?mood=%s&genre=%s", url.QueryEscape(mood), url.QueryEscape(genre))
	var tracks []core.Track
	err := c.call(ctx, http.MethodGet, path, nil, &tracks)
	return tracks, err
}

// Lyrics fetches lyrics, defaulting to the current track when title is
// empty.
func (c *Client) Lyrics(ctx context.Context, title, artist string) (string, error) {
	path := fmt.Sprintf("/api/lyrics?title=%s&artist=%s", url.QueryEscape(title), url.QueryEscape(artist))
	var body map[string]string
	if err := c.call(ctx, http.MethodGet, path, nil, &body); err != nil {
		return "", err
	}
	return body["lyrics"], nil
}

// Chat sends a message to the DJ persona.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	var body map[string]string
	if err := c.call(ctx, http.MethodPost, "/api/chat", map[string]string{"message": message}, &body); err != nil {
		return "", err
	}
	return body["reply"], nil
}

// Share submits a track to the community catalog.
func (c *Client) Share(ctx context.Context, t core.Track) error {
	return c.call(ctx, http.MethodPost, "/api/share", t, nil)
}

func (c *Client) call(ctx context.Context, method, path string, body, out any) error {
	var payload *bytes.Buffer
	if body != nil {
		payload = &bytes.Buffer{}
		if err := json.NewEncoder(payload).Encode(body); err != nil {
			return err
		}
	} else {
		payload = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", sonicerrors.ErrServerUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Error != "" {
			return fmt.Errorf("server: %s", apiErr.Error)
		}
		return fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
