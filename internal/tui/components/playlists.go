package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/codgamerofficial/sonicstream/internal/core"
	"github.com/codgamerofficial/sonicstream/internal/tui/styles"
)

// Playlists displays the playlist collection.
type Playlists struct {
	selected int
}

// NewPlaylists creates a new Playlists component
func NewPlaylists() *Playlists {
	return &Playlists{selected: 0}
}

// SelectNext moves the cursor down
func (p *Playlists) SelectNext(count int) {
	if p.selected < count-1 {
		p.selected++
	}
}

// SelectPrev moves the cursor up
func (p *Playlists) SelectPrev() {
	if p.selected > 0 {
		p.selected--
	}
}

// Selected returns the cursor index
func (p *Playlists) Selected() int {
	return p.selected
}

// Render renders the playlists panel
func (p *Playlists) Render(playlists []core.Playlist, width, height int, focused bool) string {
	title := styles.PanelTitle("Playlists", focused)

	var content string
	if len(playlists) == 0 {
		content = styles.Muted.Render("No playlists yet")
	} else {
		content = p.renderList(playlists, width-4, height-4)
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

func (p *Playlists) renderList(playlists []core.Playlist, width, maxLines int) string {
	if p.selected >= len(playlists) {
		p.selected = len(playlists) - 1
	}

	lines := make([]string, 0, maxLines)
	for i, pl := range playlists {
		if i >= maxLines {
			lines = append(lines, styles.Dim.Render(fmt.Sprintf("  ... and %d more", len(playlists)-i)))
			break
		}

		count := styles.Dim.Render(fmt.Sprintf("(%d songs)", pl.Len()))
		line := fmt.Sprintf("%s %s", truncate(pl.Name, width-14), count)

		if i == p.selected {
			line = styles.Highlight.Render("> ") + line
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
