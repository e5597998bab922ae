package core

import "time"

// Playlist is a user-named, ordered, mutable collection of tracks.
// Song lists never contain two tracks with the same ID.
type Playlist struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Songs     []Track   `json:"songs"`
	CreatedAt time.Time `json:"created_at"`
}

// Contains reports whether the playlist already holds a track with the
// given ID.
func (p *Playlist) Contains(trackID string) bool {
	for _, s := range p.Songs {
		if s.ID == trackID {
			return true
		}
	}
	return false
}

// Len returns the number of songs in the playlist.
func (p *Playlist) Len() int {
	return len(p.Songs)
}
