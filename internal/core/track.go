package core

// Track represents a single playable item from the catalog.
// Identity is by ID: two tracks with the same ID refer to the same
// catalog item regardless of other field values. Tracks are value
// types and are never mutated in place.
type Track struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Artist       string `json:"artist"`
	ThumbnailURL string `json:"thumbnail"`
	DurationHint string `json:"duration,omitempty"`
}

// WatchURL returns the playable URL for the track's catalog ID.
func (t Track) WatchURL() string {
	return "https://www.youtube.com/watch?v=" + t.ID
}
