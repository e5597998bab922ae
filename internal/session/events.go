package session

import (
	"log/slog"
	"time"

	"github.com/codgamerofficial/sonicstream/internal/transport"
)

// HandleEvent is the single entry point for inbound transport events.
// Events are processed in arrival order; events whose track ID does
// not match the current track belong to a superseded adapter and are
// discarded outright.
func (s *Session) HandleEvent(ev transport.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil || ev.EventTrackID() != s.current.ID {
		return
	}

	switch e := ev.(type) {
	case transport.ProgressEvent:
		s.handleProgressLocked(e)
	case transport.DurationEvent:
		s.duration = e.Seconds
	case transport.EndedEvent:
		s.nextLocked()
	case transport.ErrorEvent:
		// Transient backend errors are logged and swallowed; the
		// backend recovers or the user skips manually.
		slog.Warn("transport error", "track", e.TrackID, "error", e.Err)
	}
}

func (s *Session) handleProgressLocked(e transport.ProgressEvent) {
	// A just-issued seek takes priority over progress reports the
	// backend emitted before it caught up, so the scrubber does not
	// snap back. Reports near the seek target (or anything after the
	// settle window) are trusted again.
	if s.seekPending {
		caughtUp := e.Fraction >= s.seekTarget-seekSettleEpsilon &&
			e.Fraction <= s.seekTarget+seekSettleEpsilon
		if caughtUp || time.Now().After(s.seekDeadline) {
			s.seekPending = false
		} else {
			return
		}
	}

	if e.Fraction >= 1 {
		// At-or-past-the-end is completion, not a resting position.
		s.nextLocked()
		return
	}
	if e.Fraction < 0 {
		e.Fraction = 0
	}
	s.progress = e.Fraction
}
