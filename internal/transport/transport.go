// Package transport defines the boundary between the playback session
// and the external media backend. An Adapter binds exactly one track:
// whenever the current track changes the session discards the old
// adapter and asks the Factory for a fresh one, because the backend
// may carry buffering state tied to the previous resource.
package transport

import (
	"context"

	"github.com/codgamerofficial/sonicstream/internal/core"
)

// Adapter drives the media backend for a single live track. Positions
// are expressed as fractions of total duration in both directions, so
// the session never deals in backend time units.
type Adapter interface {
	// Play starts or resumes playback.
	Play() error

	// Pause suspends playback.
	Pause() error

	// Seek jumps to an absolute position given as a fraction of the
	// track duration in [0, 1).
	Seek(fraction float64) error

	// SetVolume sets the playback volume in [0, 1].
	SetVolume(v float64) error

	// Events returns the stream of backend events. The channel is
	// closed when the adapter shuts down.
	Events() <-chan Event

	// Close tears the adapter down and releases the backend resource.
	// Events emitted by the backend after Close are dropped.
	Close() error
}

// Factory creates a fresh Adapter bound to one track.
type Factory interface {
	New(ctx context.Context, track core.Track) (Adapter, error)
}

// FactoryFunc adapts a function to the Factory interface.
type FactoryFunc func(ctx context.Context, track core.Track) (Adapter, error)

// New calls f.
func (f FactoryFunc) New(ctx context.Context, track core.Track) (Adapter, error) {
	return f(ctx, track)
}
