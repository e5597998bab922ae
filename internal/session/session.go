// Package session implements the playback state machine: the single
// owner of the current track, play/pause intent, progress, volume, and
// display flags. All mutation funnels through its methods and through
// HandleEvent, which consumes transport events in arrival order.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/codgamerofficial/sonicstream/internal/core"
	"github.com/codgamerofficial/sonicstream/internal/library"
	"github.com/codgamerofficial/sonicstream/internal/settings"
	"github.com/codgamerofficial/sonicstream/internal/transport"
)

// maxFraction is the clamp boundary for progress: a fraction at or
// beyond 1 means the track completed, never a valid resting position.
const maxFraction = 0.999

// seekSettleWindow is how long stale backend progress reports are
// distrusted after a user-initiated seek.
const seekSettleWindow = 2 * time.Second

// seekSettleEpsilon is how close a progress report must be to the seek
// target to count as the backend having caught up.
const seekSettleEpsilon = 0.05

// Snapshot is a read-only copy of the observable session state.
type Snapshot struct {
	Track      *core.Track `json:"track"`
	IsPlaying  bool        `json:"is_playing"`
	Progress   float64     `json:"progress"`
	Duration   float64     `json:"duration"`
	Volume     float64     `json:"volume"`
	BassBoost  bool        `json:"bass_boost"`
	FullScreen bool        `json:"full_screen"`
	Theme      core.Theme  `json:"theme"`
}

// Session is the playback state machine. One instance is constructed
// at startup and passed explicitly to every consuming surface.
type Session struct {
	mu sync.Mutex

	ctx      context.Context
	factory  transport.Factory
	lib      *library.Library
	settings *settings.Settings

	queue   *core.Queue
	adapter transport.Adapter

	current    *core.Track
	isPlaying  bool
	progress   float64
	duration   float64
	volume     float64
	bassBoost  bool
	fullScreen bool

	seekPending  bool
	seekTarget   float64
	seekDeadline time.Time
}

// New constructs a session. The factory creates one transport adapter
// per track; lib answers is-favorited queries; prefs owns the theme.
func New(ctx context.Context, factory transport.Factory, lib *library.Library, prefs *settings.Settings) *Session {
	return &Session{
		ctx:      ctx,
		factory:  factory,
		lib:      lib,
		settings: prefs,
		queue:    core.NewQueue(),
		volume:   0.8,
	}
}

// Play makes the track current and starts playback. Selecting the
// already-current track restarts it from the beginning rather than
// resuming. A track not yet queued is inserted at the front of the
// queue: manual selection jumps to the front of history, it is not
// appended as "up next".
func (s *Session) Play(t core.Track) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playLocked(t)
}

func (s *Session) playLocked(t core.Track) {
	s.queue.InsertFront(t)

	if s.current != nil && s.current.ID == t.ID {
		// Same track: restart from zero instead of resuming.
		s.seekLocked(0)
		s.isPlaying = true
		if s.adapter != nil {
			if err := s.adapter.Play(); err != nil {
				slog.Warn("transport play failed", "track", t.ID, "error", err)
			}
		}
		return
	}

	// Track switch: close the outgoing adapter and reset progress as
	// one transition. Events still in flight for the old track are
	// rejected later by their track ID tag.
	if s.adapter != nil {
		_ = s.adapter.Close()
		s.adapter = nil
	}

	track := t
	s.current = &track
	s.progress = 0
	s.duration = 0
	s.seekPending = false
	s.isPlaying = true

	adapter, err := s.factory.New(s.ctx, track)
	if err != nil {
		// The backend could not be started; the UI shows the track
		// frozen at zero and the user can retry or skip.
		slog.Warn("transport init failed", "track", t.ID, "error", err)
		return
	}
	s.adapter = adapter

	if err := adapter.SetVolume(s.volume); err != nil {
		slog.Warn("transport volume failed", "track", t.ID, "error", err)
	}
	if err := adapter.Play(); err != nil {
		slog.Warn("transport play failed", "track", t.ID, "error", err)
	}

	go s.drain(adapter)
}

// drain forwards adapter events into the session until the adapter's
// event stream closes.
func (s *Session) drain(a transport.Adapter) {
	for ev := range a.Events() {
		s.HandleEvent(ev)
	}
}

// TogglePlay flips between playing and paused. No-op when nothing is
// current.
func (s *Session) TogglePlay() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return
	}
	s.isPlaying = !s.isPlaying

	if s.adapter == nil {
		return
	}
	var err error
	if s.isPlaying {
		err = s.adapter.Play()
	} else {
		err = s.adapter.Pause()
	}
	if err != nil {
		slog.Warn("transport toggle failed", "error", err)
	}
}

// Next advances to the queue successor of the current track. With no
// successor the session freezes on the last track, paused; the
// current track is not cleared.
func (s *Session) Next() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextLocked()
}

func (s *Session) nextLocked() {
	if s.current == nil {
		return
	}

	idx := s.queue.IndexOf(s.current.ID)
	if succ, ok := s.queue.At(idx + 1); ok {
		s.playLocked(succ)
		return
	}

	// Queue exhausted.
	s.isPlaying = false
	if s.adapter != nil {
		if err := s.adapter.Pause(); err != nil {
			slog.Warn("transport pause failed", "error", err)
		}
	}
}

// Previous steps back to the queue predecessor. No-op when the current
// track is first in the queue: no wrap-around, no restart.
func (s *Session) Previous() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return
	}

	idx := s.queue.IndexOf(s.current.ID)
	if pred, ok := s.queue.At(idx - 1); ok && idx > 0 {
		s.playLocked(pred)
	}
}

// Seek jumps to an absolute position given as a fraction of the track
// duration. The value is re-clamped defensively into [0, 1) even if
// the caller's slider already bounds it.
func (s *Session) Seek(fraction float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return
	}
	s.seekLocked(fraction)
}

func (s *Session) seekLocked(fraction float64) {
	fraction = clampFraction(fraction)
	s.progress = fraction
	s.seekPending = true
	s.seekTarget = fraction
	s.seekDeadline = time.Now().Add(seekSettleWindow)

	if s.adapter != nil {
		if err := s.adapter.Seek(fraction); err != nil {
			slog.Warn("transport seek failed", "error", err)
		}
	}
}

// SetVolume sets playback volume in [0, 1].
func (s *Session) SetVolume(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	s.volume = v

	if s.adapter != nil {
		if err := s.adapter.SetVolume(v); err != nil {
			slog.Warn("transport volume failed", "error", err)
		}
	}
}

// ToggleBassBoost flips the bass boost flag.
func (s *Session) ToggleBassBoost() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bassBoost = !s.bassBoost
}

// SetFullScreen sets the expanded/minimized display mode.
func (s *Session) SetFullScreen(full bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fullScreen = full
}

// Theme returns the active accent theme.
func (s *Session) Theme() core.Theme {
	return s.settings.Theme()
}

// SetTheme switches the accent theme.
func (s *Session) SetTheme(t core.Theme) {
	s.settings.SetTheme(t)
}

// Enqueue appends the track to the end of the queue without changing
// what is playing. No-op if the ID is already queued.
func (s *Session) Enqueue(t core.Track) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue.Append(t)
}

// Queue returns a copy of the queued tracks in order.
func (s *Session) Queue() []core.Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Tracks()
}

// IsCurrentFavorite reports whether the current track is favorited.
func (s *Session) IsCurrentFavorite() bool {
	s.mu.Lock()
	cur := s.current
	s.mu.Unlock()

	if cur == nil || s.lib == nil {
		return false
	}
	return s.lib.IsFavorite(cur.ID)
}

// Snapshot returns a copy of the observable state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		IsPlaying:  s.isPlaying,
		Progress:   s.progress,
		Duration:   s.duration,
		Volume:     s.volume,
		BassBoost:  s.bassBoost,
		FullScreen: s.fullScreen,
	}
	if s.current != nil {
		track := *s.current
		snap.Track = &track
	}
	if s.settings != nil {
		snap.Theme = s.settings.Theme()
	}
	return snap
}

// Close shuts down the active transport adapter.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.adapter != nil {
		_ = s.adapter.Close()
		s.adapter = nil
	}
}

func clampFraction(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f >= 1 {
		return maxFraction
	}
	return f
}
