package session

import (
	"errors"
	"testing"

	"github.com/codgamerofficial/sonicstream/internal/transport"
)

func TestProgressEventUpdatesState(t *testing.T) {
	s, _ := newTestSession(t)
	s.Play(trackA)

	s.HandleEvent(transport.ProgressEvent{TrackID: "a", Fraction: 0.42})
	if got := s.Snapshot().Progress; got != 0.42 {
		t.Errorf("Progress = %v, want 0.42", got)
	}
}

func TestStaleEventForOutgoingTrackIsDiscarded(t *testing.T) {
	s, _ := newTestSession(t)
	s.Play(trackA)
	s.Play(trackB)

	// Events tagged with the superseded track's ID must not touch
	// state, regardless of arrival order.
	s.HandleEvent(transport.ProgressEvent{TrackID: "a", Fraction: 0.9})
	s.HandleEvent(transport.DurationEvent{TrackID: "a", Seconds: 300})
	s.HandleEvent(transport.EndedEvent{TrackID: "a"})

	snap := s.Snapshot()
	if snap.Track.ID != "b" {
		t.Errorf("current = %q, want b", snap.Track.ID)
	}
	if snap.Progress != 0 {
		t.Errorf("Progress = %v, want 0", snap.Progress)
	}
	if snap.Duration != 0 {
		t.Errorf("Duration = %v, want 0", snap.Duration)
	}
	if !snap.IsPlaying {
		t.Error("IsPlaying = false; stale ended event must not advance")
	}
}

func TestDurationEvent(t *testing.T) {
	s, _ := newTestSession(t)
	s.Play(trackA)

	s.HandleEvent(transport.DurationEvent{TrackID: "a", Seconds: 245})
	if got := s.Snapshot().Duration; got != 245 {
		t.Errorf("Duration = %v, want 245", got)
	}
}

func TestEndedEventAdvancesQueue(t *testing.T) {
	s, _ := newTestSession(t)
	s.Play(trackB)
	s.Play(trackA) // queue [a b], current a

	s.HandleEvent(transport.EndedEvent{TrackID: "a"})

	snap := s.Snapshot()
	if snap.Track.ID != "b" {
		t.Errorf("current = %q after ended, want b", snap.Track.ID)
	}
	if !snap.IsPlaying {
		t.Error("IsPlaying = false after auto-advance")
	}
}

func TestEndedEventOnLastTrackPauses(t *testing.T) {
	s, _ := newTestSession(t)
	s.Play(trackA)

	s.HandleEvent(transport.EndedEvent{TrackID: "a"})

	snap := s.Snapshot()
	if snap.Track == nil || snap.Track.ID != "a" {
		t.Errorf("current = %v, want a frozen", snap.Track)
	}
	if snap.IsPlaying {
		t.Error("IsPlaying = true after final track ended")
	}
}

func TestErrorEventLeavesStateUnchanged(t *testing.T) {
	s, _ := newTestSession(t)
	s.Play(trackA)
	s.HandleEvent(transport.ProgressEvent{TrackID: "a", Fraction: 0.3})

	s.HandleEvent(transport.ErrorEvent{TrackID: "a", Err: errors.New("buffer underrun")})

	snap := s.Snapshot()
	if !snap.IsPlaying {
		t.Error("IsPlaying = false after transport error, want unchanged")
	}
	if snap.Progress != 0.3 {
		t.Errorf("Progress = %v after transport error, want 0.3", snap.Progress)
	}
}

func TestStaleProgressAfterSeekIsIgnored(t *testing.T) {
	s, _ := newTestSession(t)
	s.Play(trackA)
	s.HandleEvent(transport.ProgressEvent{TrackID: "a", Fraction: 0.2})

	s.Seek(0.8)

	// The backend has not caught up yet; its pre-seek report must not
	// snap the scrubber back.
	s.HandleEvent(transport.ProgressEvent{TrackID: "a", Fraction: 0.21})
	if got := s.Snapshot().Progress; got != 0.8 {
		t.Errorf("Progress = %v after stale report, want 0.8", got)
	}

	// Once the backend reports near the target, progress flows again.
	s.HandleEvent(transport.ProgressEvent{TrackID: "a", Fraction: 0.81})
	if got := s.Snapshot().Progress; got != 0.81 {
		t.Errorf("Progress = %v after settled report, want 0.81", got)
	}
	s.HandleEvent(transport.ProgressEvent{TrackID: "a", Fraction: 0.82})
	if got := s.Snapshot().Progress; got != 0.82 {
		t.Errorf("Progress = %v, want 0.82", got)
	}
}

func TestProgressAtOrPastOneIsCompletion(t *testing.T) {
	s, _ := newTestSession(t)
	s.Play(trackB)
	s.Play(trackA) // queue [a b], current a

	s.HandleEvent(transport.ProgressEvent{TrackID: "a", Fraction: 1.0})

	if snap := s.Snapshot(); snap.Track.ID != "b" {
		t.Errorf("current = %q after progress 1.0, want b (completion)", snap.Track.ID)
	}
}

func TestEventsWithNoCurrentTrackAreDiscarded(t *testing.T) {
	s, _ := newTestSession(t)

	s.HandleEvent(transport.ProgressEvent{TrackID: "a", Fraction: 0.5})
	s.HandleEvent(transport.EndedEvent{TrackID: "a"})

	snap := s.Snapshot()
	if snap.Track != nil || snap.IsPlaying || snap.Progress != 0 {
		t.Errorf("state mutated by events with no current track: %+v", snap)
	}
}
