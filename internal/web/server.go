// Package web exposes the player over a local JSON API. The serve and
// tui commands host it; the control commands are thin clients against
// it. Handlers call straight into the session and library objects they
// were constructed with.
package web

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/codgamerofficial/sonicstream/internal/core"
	"github.com/codgamerofficial/sonicstream/internal/dj"
	"github.com/codgamerofficial/sonicstream/internal/library"
	"github.com/codgamerofficial/sonicstream/internal/session"
)

// Searcher resolves queries into playable tracks.
type Searcher interface {
	Search(ctx context.Context, query string) []core.Track
}

// Recommender is the AI collaborator surface the API needs.
type Recommender interface {
	Recommend(ctx context.Context, mood, genre string) []core.Hint
	Lyrics(ctx context.Context, title, artist string) string
	Chat(ctx context.Context, message string) string
}

// Sharer accepts community catalog contributions.
type Sharer interface {
	Submit(ctx context.Context, t core.Track)
}

// Server wires the playback session and its collaborators into HTTP
// handlers.
type Server struct {
	session  *session.Session
	lib      *library.Library
	searcher Searcher
	ai       Recommender
	sharer   Sharer
}

// NewServer creates the API server. The AI and sharing collaborators
// may be nil when unconfigured; their routes then report that.
func NewServer(sess *session.Session, lib *library.Library, searcher Searcher, ai Recommender, sharer Sharer) *Server {
	return &Server{session: sess, lib: lib, searcher: searcher, ai: ai, sharer: sharer}
}

// Router builds the chi route tree.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", s.handleState)
		r.Get("/queue", s.handleQueue)

		r.Post("/play", s.handlePlay)
		r.Post("/enqueue", s.handleEnqueue)
		r.Post("/toggle", s.handleToggle)
		r.Post("/next", s.handleNext)
		r.Post("/prev", s.handlePrev)
		r.Post("/seek", s.handleSeek)
		r.Post("/volume", s.handleVolume)
		r.Post("/bassboost", s.handleBassBoost)
		r.Post("/fullscreen", s.handleFullScreen)

		r.Get("/theme", s.handleGetTheme)
		r.Post("/theme", s.handleSetTheme)

		r.Get("/favorites", s.handleFavorites)
		r.Post("/favorites/toggle", s.handleToggleFavorite)

		r.Get("/playlists", s.handleListPlaylists)
		r.Post("/playlists", s.handleCreatePlaylist)
		r.Get("/playlists/{id}", s.handleGetPlaylist)
		r.Delete("/playlists/{id}", s.handleDeletePlaylist)
		r.Post("/playlists/{id}/songs", s.handleAddPlaylistSong)
		r.Delete("/playlists/{id}/songs/{trackId}", s.handleRemovePlaylistSong)

		r.Get("/search", s.handleSearch)
		r.Get("/recommend", s.handleRecommend)
		r.Get("/lyrics", s.handleLyrics)
		r.Post("/chat", s.handleChat)
		r.Post("/share", s.handleShare)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Snapshot())
}

func (s *Server) handleQueue(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Queue())
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	track, ok := decodeTrack(w, r)
	if !ok {
		return
	}
	s.session.Play(track)
	writeJSON(w, http.StatusOK, s.session.Snapshot())
}

func (s *Server) handleEnqueue(w http.ResponseWriter, r *http.Request) {
	track, ok := decodeTrack(w, r)
	if !ok {
		return
	}
	s.session.Enqueue(track)
	writeJSON(w, http.StatusOK, s.session.Queue())
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	s.session.TogglePlay()
	writeJSON(w, http.StatusOK, s.session.Snapshot())
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	s.session.Next()
	writeJSON(w, http.StatusOK, s.session.Snapshot())
}

func (s *Server) handlePrev(w http.ResponseWriter, r *http.Request) {
	s.session.Previous()
	writeJSON(w, http.StatusOK, s.session.Snapshot())
}

func (s *Server) handleSeek(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Fraction float64 `json:"fraction"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid seek body")
		return
	}
	s.session.Seek(body.Fraction)
	writeJSON(w, http.StatusOK, s.session.Snapshot())
}

func (s *Server) handleVolume(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Volume float64 `json:"volume"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid volume body")
		return
	}
	s.session.SetVolume(body.Volume)
	writeJSON(w, http.StatusOK, s.session.Snapshot())
}

func (s *Server) handleBassBoost(w http.ResponseWriter, r *http.Request) {
	s.session.ToggleBassBoost()
	writeJSON(w, http.StatusOK, s.session.Snapshot())
}

func (s *Server) handleFullScreen(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Full bool `json:"full"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid fullscreen body")
		return
	}
	s.session.SetFullScreen(body.Full)
	writeJSON(w, http.StatusOK, s.session.Snapshot())
}

func (s *Server) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]core.Theme{"theme": s.session.Theme()})
}

func (s *Server) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Theme string `json:"theme"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid theme body")
		return
	}
	theme, err := core.ParseTheme(body.Theme)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.session.SetTheme(theme)
	writeJSON(w, http.StatusOK, map[string]core.Theme{"theme": theme})
}

func (s *Server) handleFavorites(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.lib.Favorites())
}

func (s *Server) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	track, ok := decodeTrack(w, r)
	if !ok {
		return
	}
	s.lib.ToggleFavorite(track)
	writeJSON(w, http.StatusOK, map[string]bool{"favorite": s.lib.IsFavorite(track.ID)})
}

func (s *Server) handleListPlaylists(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.lib.Playlists())
}

func (s *Server) handleCreatePlaylist(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Name == "" {
		writeError(w, http.StatusBadRequest, "playlist name required")
		return
	}
	writeJSON(w, http.StatusCreated, s.lib.CreatePlaylist(body.Name))
}

func (s *Server) handleGetPlaylist(w http.ResponseWriter, r *http.Request) {
	pl, ok := s.lib.Playlist(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "playlist not found")
		return
	}
	writeJSON(w, http.StatusOK, pl)
}

func (s *Server) handleDeletePlaylist(w http.ResponseWriter, r *http.Request) {
	s.lib.DeletePlaylist(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddPlaylistSong(w http.ResponseWriter, r *http.Request) {
	track, ok := decodeTrack(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	if _, found := s.lib.Playlist(id); !found {
		writeError(w, http.StatusNotFound, "playlist not found")
		return
	}
	s.lib.AddToPlaylist(id, track)
	pl, _ := s.lib.Playlist(id)
	writeJSON(w, http.StatusOK, pl)
}

func (s *Server) handleRemovePlaylistSong(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.lib.RemoveFromPlaylist(id, chi.URLParam(r, "trackId"))
	pl, ok := s.lib.Playlist(id)
	if !ok {
		writeError(w, http.StatusNotFound, "playlist not found")
		return
	}
	writeJSON(w, http.StatusOK, pl)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "query parameter q required")
		return
	}
	writeJSON(w, http.StatusOK, s.searcher.Search(r.Context(), query))
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	if s.ai == nil {
		writeError(w, http.StatusServiceUnavailable, "ai not configured")
		return
	}
	mood := r.URL.Query().Get("mood")
	genre := r.URL.Query().Get("genre")

	hints := s.ai.Recommend(r.Context(), mood, genre)
	tracks := dj.ResolveHints(r.Context(), hints, s.searcher)
	writeJSON(w, http.StatusOK, tracks)
}

func (s *Server) handleLyrics(w http.ResponseWriter, r *http.Request) {
	if s.ai == nil {
		writeError(w, http.StatusServiceUnavailable, "ai not configured")
		return
	}
	title := r.URL.Query().Get("title")
	artist := r.URL.Query().Get("artist")
	if title == "" {
		snap := s.session.Snapshot()
		if snap.Track == nil {
			writeError(w, http.StatusBadRequest, "nothing is playing and no title given")
			return
		}
		title, artist = snap.Track.Title, snap.Track.Artist
	}
	writeJSON(w, http.StatusOK, map[string]string{"lyrics": s.ai.Lyrics(r.Context(), title, artist)})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if s.ai == nil {
		writeError(w, http.StatusServiceUnavailable, "ai not configured")
		return
	}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Message == "" {
		writeError(w, http.StatusBadRequest, "message required")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"reply": s.ai.Chat(r.Context(), body.Message)})
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	if s.sharer == nil {
		writeError(w, http.StatusServiceUnavailable, "community catalog not configured")
		return
	}
	track, ok := decodeTrack(w, r)
	if !ok {
		return
	}
	s.sharer.Submit(r.Context(), track)
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "submitted"})
}

func decodeTrack(w http.ResponseWriter, r *http.Request) (core.Track, bool) {
	var track core.Track
	if err := json.NewDecoder(r.Body).Decode(&track); err != nil || track.ID == "" {
		writeError(w, http.StatusBadRequest, "track with id required")
		return core.Track{}, false
	}
	return track, true
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": msg,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
