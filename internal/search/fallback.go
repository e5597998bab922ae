package search

import "github.com/codgamerofficial/sonicstream/internal/core"

// Static sample catalogs served when the remote search backends are
// unreachable, so the UI always has something to show.

var fallbackTrending = []core.Track{
	{
		ID:           "kJQP7kiw5Fk",
		Title:        "Despacito",
		Artist:       "Luis Fonsi ft. Daddy Yankee",
		ThumbnailURL: "https://img.youtube.com/vi/kJQP7kiw5Fk/maxresdefault.jpg",
	},
	{
		ID:           "JGwWNGJdvx8",
		Title:        "Shape of You",
		Artist:       "Ed Sheeran",
		ThumbnailURL: "https://img.youtube.com/vi/JGwWNGJdvx8/maxresdefault.jpg",
	},
	{
		ID:           "OPf0YbXqDm0",
		Title:        "Uptown Funk",
		Artist:       "Mark Ronson ft. Bruno Mars",
		ThumbnailURL: "https://img.youtube.com/vi/OPf0YbXqDm0/maxresdefault.jpg",
	},
	{
		ID:           "09R8_2nJtjg",
		Title:        "Sugar",
		Artist:       "Maroon 5",
		ThumbnailURL: "https://img.youtube.com/vi/09R8_2nJtjg/maxresdefault.jpg",
	},
	{
		ID:           "fJ9rUzIMcZQ",
		Title:        "Bohemian Rhapsody",
		Artist:       "Queen",
		ThumbnailURL: "https://img.youtube.com/vi/fJ9rUzIMcZQ/maxresdefault.jpg",
	},
}

var fallbackChill = []core.Track{
	{
		ID:           "jfKfPfyJRdk",
		Title:        "lofi hip hop radio - beats to relax/study to",
		Artist:       "Lofi Girl",
		ThumbnailURL: "https://img.youtube.com/vi/jfKfPfyJRdk/maxresdefault.jpg",
	},
	{
		ID:           "5qap5aO4i9A",
		Title:        "lofi hip hop radio - beats to sleep/chill to",
		Artist:       "Lofi Girl",
		ThumbnailURL: "https://img.youtube.com/vi/5qap5aO4i9A/maxresdefault.jpg",
	},
	{
		ID:           "DWcJFNfaw9c",
		Title:        "Synthwave Radio - Beats to Chill/Game to",
		Artist:       "Lofi Girl",
		ThumbnailURL: "https://img.youtube.com/vi/DWcJFNfaw9c/maxresdefault.jpg",
	},
	{
		ID:           "MCkTebktHVc",
		Title:        "Lofi Hip Hop Mix",
		Artist:       "ChilledCow",
		ThumbnailURL: "https://img.youtube.com/vi/MCkTebktHVc/maxresdefault.jpg",
	},
}
