package core

// Hint is an AI-suggested track that has not yet been resolved against
// the catalog. It is advisory only: a hint becomes playable only after
// a catalog search maps it to a Track, and hints that fail to resolve
// are discarded.
type Hint struct {
	Title  string `json:"songName"`
	Artist string `json:"artist"`
	Reason string `json:"reason,omitempty"`
}

// Query returns the catalog search query for resolving the hint.
func (h Hint) Query() string {
	if h.Artist == "" {
		return h.Title
	}
	return h.Title + " " + h.Artist
}
