package transport

// Event is an inbound message from the media backend. Every event
// carries the ID of the track it belongs to so that events from a
// superseded adapter can be recognized and discarded regardless of
// arrival order.
type Event interface {
	// EventTrackID returns the catalog ID of the track the event
	// belongs to.
	EventTrackID() string
}

// ProgressEvent reports the playback position as a fraction of the
// track duration.
type ProgressEvent struct {
	TrackID  string
	Fraction float64
}

// DurationEvent reports the total track duration once the backend
// knows it.
type DurationEvent struct {
	TrackID string
	Seconds float64
}

// EndedEvent signals that the track played to completion.
type EndedEvent struct {
	TrackID string
}

// ErrorEvent reports a backend playback error. The session logs and
// swallows these; playback state is left unchanged.
type ErrorEvent struct {
	TrackID string
	Err     error
}

func (e ProgressEvent) EventTrackID() string { return e.TrackID }
func (e DurationEvent) EventTrackID() string { return e.TrackID }
func (e EndedEvent) EventTrackID() string    { return e.TrackID }
func (e ErrorEvent) EventTrackID() string    { return e.TrackID }
