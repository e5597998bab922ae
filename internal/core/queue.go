package core

// Queue is the session-scoped play order: an ordered log of tracks,
// deduplicated by ID. It only grows for the life of a session; there
// is no removal and no persistence across restarts.
type Queue struct {
	tracks []Track
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// InsertFront puts the track at the head of the queue. If a track with
// the same ID is already present anywhere in the queue, the call is a
// no-op and the existing position is kept.
func (q *Queue) InsertFront(t Track) {
	if q.IndexOf(t.ID) >= 0 {
		return
	}
	q.tracks = append([]Track{t}, q.tracks...)
}

// Append adds the track to the tail of the queue. No-op if a track
// with the same ID is already present.
func (q *Queue) Append(t Track) {
	if q.IndexOf(t.ID) >= 0 {
		return
	}
	q.tracks = append(q.tracks, t)
}

// IndexOf returns the position of the track with the given ID, or -1
// if it is not queued. IDs are unique, so the first match is the only
// match.
func (q *Queue) IndexOf(id string) int {
	for i, t := range q.tracks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// At returns the track at the given position. The second return value
// is false if the index is out of range.
func (q *Queue) At(i int) (Track, bool) {
	if i < 0 || i >= len(q.tracks) {
		return Track{}, false
	}
	return q.tracks[i], true
}

// Len returns the number of queued tracks.
func (q *Queue) Len() int {
	return len(q.tracks)
}

// Tracks returns a copy of the queue contents in order.
func (q *Queue) Tracks() []Track {
	out := make([]Track, len(q.tracks))
	copy(out, q.tracks)
	return out
}

// IsEmpty returns true if the queue has no tracks.
func (q *Queue) IsEmpty() bool {
	return len(q.tracks) == 0
}
