package session

import (
	"context"
	"sync"
	"testing"

	"github.com/codgamerofficial/sonicstream/internal/core"
	"github.com/codgamerofficial/sonicstream/internal/library"
	"github.com/codgamerofficial/sonicstream/internal/settings"
	"github.com/codgamerofficial/sonicstream/internal/storage"
	"github.com/codgamerofficial/sonicstream/internal/transport"
)

// fakeAdapter records commands and lets tests inject backend events.
type fakeAdapter struct {
	mu      sync.Mutex
	trackID string
	events  chan transport.Event
	closed  bool

	plays  int
	pauses int
	seeks  []float64
	volume float64
}

func newFakeAdapter(trackID string) *fakeAdapter {
	return &fakeAdapter{trackID: trackID, events: make(chan transport.Event, 16)}
}

func (f *fakeAdapter) Play() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.plays++
	return nil
}

func (f *fakeAdapter) Pause() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pauses++
	return nil
}

func (f *fakeAdapter) Seek(fraction float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seeks = append(f.seeks, fraction)
	return nil
}

func (f *fakeAdapter) SetVolume(v float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.volume = v
	return nil
}

func (f *fakeAdapter) Events() <-chan transport.Event { return f.events }

func (f *fakeAdapter) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.closed {
		f.closed = true
		close(f.events)
	}
	return nil
}

func (f *fakeAdapter) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *fakeAdapter) seekCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.seeks)
}

// fakeFactory hands out one adapter per track and remembers them.
type fakeFactory struct {
	mu       sync.Mutex
	adapters []*fakeAdapter
}

func (f *fakeFactory) New(_ context.Context, track core.Track) (transport.Adapter, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a := newFakeAdapter(track.ID)
	f.adapters = append(f.adapters, a)
	return a, nil
}

func (f *fakeFactory) last() *fakeAdapter {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.adapters) == 0 {
		return nil
	}
	return f.adapters[len(f.adapters)-1]
}

func (f *fakeFactory) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.adapters)
}

func newTestSession(t *testing.T) (*Session, *fakeFactory) {
	t.Helper()
	store, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	factory := &fakeFactory{}
	s := New(context.Background(), factory, library.New(store), settings.New(store))
	return s, factory
}

var (
	trackA = core.Track{ID: "a", Title: "Track A"}
	trackB = core.Track{ID: "b", Title: "Track B"}
	trackC = core.Track{ID: "c", Title: "Track C"}
)

func TestPlaySetsCurrentAndStarts(t *testing.T) {
	s, factory := newTestSession(t)
	s.Play(trackA)

	snap := s.Snapshot()
	if snap.Track == nil || snap.Track.ID != "a" {
		t.Fatalf("Track = %+v, want a", snap.Track)
	}
	if !snap.IsPlaying {
		t.Error("IsPlaying = false after Play")
	}
	if snap.Progress != 0 {
		t.Errorf("Progress = %v, want 0", snap.Progress)
	}
	if factory.count() != 1 {
		t.Errorf("adapters created = %d, want 1", factory.count())
	}
}

func TestPlaySameTrackRestarts(t *testing.T) {
	s, factory := newTestSession(t)
	s.Play(trackA)

	// Advance playback, then re-select the same track.
	s.HandleEvent(transport.ProgressEvent{TrackID: "a", Fraction: 0.5})
	// Let the settle window pass by reporting near zero is not needed;
	// verify via a fresh seek instead.
	s.Play(trackA)

	snap := s.Snapshot()
	if snap.Progress != 0 {
		t.Errorf("Progress = %v after restart, want 0", snap.Progress)
	}
	if !snap.IsPlaying {
		t.Error("IsPlaying = false after restart")
	}
	// Restart reuses the adapter (same track ID) and seeks to zero.
	if factory.count() != 1 {
		t.Errorf("adapters created = %d, want 1 (restart must not re-init)", factory.count())
	}
	if factory.last().seekCount() == 0 {
		t.Error("restart did not seek to zero")
	}
}

func TestPlayDifferentTrackReinitializesTransport(t *testing.T) {
	s, factory := newTestSession(t)
	s.Play(trackA)
	first := factory.last()

	s.Play(trackB)

	if factory.count() != 2 {
		t.Fatalf("adapters created = %d, want 2", factory.count())
	}
	if !first.isClosed() {
		t.Error("outgoing adapter not closed on track switch")
	}
}

func TestPlayInsertsAtQueueFront(t *testing.T) {
	s, _ := newTestSession(t)
	s.Play(trackA)
	s.Play(trackB)

	q := s.Queue()
	if len(q) != 2 || q[0].ID != "b" || q[1].ID != "a" {
		t.Errorf("Queue() = %v, want [b a]", q)
	}
}

func TestTogglePlayWithoutTrackIsNoop(t *testing.T) {
	s, _ := newTestSession(t)
	s.TogglePlay()

	if snap := s.Snapshot(); snap.IsPlaying {
		t.Error("IsPlaying = true with no current track")
	}
}

func TestTogglePlayFlips(t *testing.T) {
	s, _ := newTestSession(t)
	s.Play(trackA)

	s.TogglePlay()
	if s.Snapshot().IsPlaying {
		t.Error("IsPlaying = true after toggle, want false")
	}
	s.TogglePlay()
	if !s.Snapshot().IsPlaying {
		t.Error("IsPlaying = false after second toggle, want true")
	}
}

// Queue [A, B, C] with current = B: Next moves to C; Next again leaves
// C current and pauses.
func TestNextAdvancesAndFreezesOnExhaustion(t *testing.T) {
	s, _ := newTestSession(t)
	s.Play(trackC)
	s.Play(trackB)
	s.Play(trackA) // queue now [a b c]

	s.Next()
	if snap := s.Snapshot(); snap.Track.ID != "b" {
		t.Fatalf("current = %q after Next, want b", snap.Track.ID)
	}

	s.Next()
	if snap := s.Snapshot(); snap.Track.ID != "c" {
		t.Fatalf("current = %q after Next, want c", snap.Track.ID)
	}

	s.Next()
	snap := s.Snapshot()
	if snap.Track == nil || snap.Track.ID != "c" {
		t.Errorf("current = %v after exhausted Next, want c unchanged", snap.Track)
	}
	if snap.IsPlaying {
		t.Error("IsPlaying = true after exhausted Next, want false")
	}
}

// Queue [A, B] with current = A: Previous is a no-op.
func TestPreviousAtHeadIsNoop(t *testing.T) {
	s, _ := newTestSession(t)
	s.Play(trackB)
	s.Play(trackA) // queue [a b], current a

	s.Previous()

	snap := s.Snapshot()
	if snap.Track.ID != "a" {
		t.Errorf("current = %q after Previous at head, want a", snap.Track.ID)
	}
	if !snap.IsPlaying {
		t.Error("IsPlaying = false; Previous at head must not pause")
	}
}

func TestPreviousStepsBack(t *testing.T) {
	s, _ := newTestSession(t)
	s.Play(trackB)
	s.Play(trackA) // queue [a b], current a
	s.Next()       // current b

	s.Previous()
	if snap := s.Snapshot(); snap.Track.ID != "a" {
		t.Errorf("current = %q after Previous, want a", snap.Track.ID)
	}
}

func TestSeekClampsOutOfRange(t *testing.T) {
	s, _ := newTestSession(t)
	s.Play(trackA)

	s.Seek(1.5)
	if got := s.Snapshot().Progress; got >= 1 {
		t.Errorf("Progress = %v after Seek(1.5), want < 1", got)
	}

	s.Seek(-0.3)
	if got := s.Snapshot().Progress; got != 0 {
		t.Errorf("Progress = %v after Seek(-0.3), want 0", got)
	}
}

func TestSeekWithoutTrackIsNoop(t *testing.T) {
	s, _ := newTestSession(t)
	s.Seek(0.5)
	if got := s.Snapshot().Progress; got != 0 {
		t.Errorf("Progress = %v, want 0", got)
	}
}

func TestSetVolumeClamps(t *testing.T) {
	s, _ := newTestSession(t)
	s.SetVolume(1.7)
	if got := s.Snapshot().Volume; got != 1 {
		t.Errorf("Volume = %v, want 1", got)
	}
	s.SetVolume(-2)
	if got := s.Snapshot().Volume; got != 0 {
		t.Errorf("Volume = %v, want 0", got)
	}
}

func TestToggleBassBoostAndFullScreen(t *testing.T) {
	s, _ := newTestSession(t)

	s.ToggleBassBoost()
	if !s.Snapshot().BassBoost {
		t.Error("BassBoost = false after toggle")
	}
	s.ToggleBassBoost()
	if s.Snapshot().BassBoost {
		t.Error("BassBoost = true after second toggle")
	}

	s.SetFullScreen(true)
	if !s.Snapshot().FullScreen {
		t.Error("FullScreen = false after SetFullScreen(true)")
	}
}

func TestEnqueueAppendsWithoutPlaying(t *testing.T) {
	s, _ := newTestSession(t)
	s.Play(trackA)
	s.Enqueue(trackB)

	q := s.Queue()
	if len(q) != 2 || q[1].ID != "b" {
		t.Errorf("Queue() = %v, want [a b]", q)
	}
	if s.Snapshot().Track.ID != "a" {
		t.Error("Enqueue changed the current track")
	}
}

func TestThemePassthrough(t *testing.T) {
	s, _ := newTestSession(t)
	s.SetTheme(core.ThemeRose)
	if got := s.Theme(); got != core.ThemeRose {
		t.Errorf("Theme() = %q, want rose", got)
	}
	if got := s.Snapshot().Theme; got != core.ThemeRose {
		t.Errorf("Snapshot().Theme = %q, want rose", got)
	}
}
