package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/codgamerofficial/sonicstream/internal/core"
	"github.com/codgamerofficial/sonicstream/internal/tui/styles"
)

// Favorites displays the favorites collection with a selectable cursor.
type Favorites struct {
	selected int
}

// NewFavorites creates a new Favorites component
func NewFavorites() *Favorites {
	return &Favorites{selected: 0}
}

// SelectNext moves the cursor down
func (f *Favorites) SelectNext(count int) {
	if f.selected < count-1 {
		f.selected++
	}
}

// SelectPrev moves the cursor up
func (f *Favorites) SelectPrev() {
	if f.selected > 0 {
		f.selected--
	}
}

// Selected returns the cursor index
func (f *Favorites) Selected() int {
	return f.selected
}

// Render renders the favorites panel
func (f *Favorites) Render(tracks []core.Track, width, height int, focused bool) string {
	title := styles.PanelTitle("Favorites", focused)

	var content string
	if len(tracks) == 0 {
		content = styles.Muted.Render("No favorites yet (press f)")
	} else {
		content = f.renderList(tracks, width-4, height-4)
	}

	panel := styles.Panel(focused).
		Width(width).
		Height(height)

	return panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		content,
	))
}

func (f *Favorites) renderList(tracks []core.Track, width, maxLines int) string {
	if f.selected >= len(tracks) {
		f.selected = len(tracks) - 1
	}

	lines := make([]string, 0, maxLines)
	for i, track := range tracks {
		if i >= maxLines {
			lines = append(lines, styles.Dim.Render(fmt.Sprintf("  ... and %d more", len(tracks)-i)))
			break
		}

		title, artist := fitTitleArtist(track.Title, track.Artist, width-7)
		line := fmt.Sprintf("♥ %s — %s", title, styles.Muted.Render(artist))

		if i == f.selected {
			line = styles.Highlight.Render("> ") + line
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
