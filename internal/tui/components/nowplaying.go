package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/codgamerofficial/sonicstream/internal/session"
	"github.com/codgamerofficial/sonicstream/internal/tui/styles"
)

// NowPlaying displays the currently playing track
type NowPlaying struct{}

// NewNowPlaying creates a new NowPlaying component
func NewNowPlaying() *NowPlaying {
	return &NowPlaying{}
}

// Render renders the now playing panel
func (n *NowPlaying) Render(snap session.Snapshot, favorite bool, width, height int, focused bool) string {
	title := styles.PanelTitle("Now Playing", focused)

	var content string
	if snap.Track == nil {
		content = styles.Muted.Render("No track playing")
	} else {
		content = n.renderTrack(snap, favorite, width-4)
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

func (n *NowPlaying) renderTrack(snap session.Snapshot, favorite bool, width int) string {
	track := snap.Track

	// Status icon and track title
	icon := styles.StatusIcon(snap.IsPlaying)
	heart := " "
	if favorite {
		heart = lipgloss.NewStyle().Foreground(styles.Error).Render("♥")
	}
	titleStyle := styles.Title.Width(width - 4)
	title := titleStyle.Render(track.Title)

	// Artist
	artist := styles.Subtitle.Render(track.Artist)

	// Progress bar
	progressWidth := width - 14 // Account for times on either side
	if progressWidth < 10 {
		progressWidth = 10
	}
	progressBar := styles.ProgressBar(snap.Progress, progressWidth)
	currentTime := formatSeconds(snap.Progress * snap.Duration)
	totalTime := formatSeconds(snap.Duration)
	progress := fmt.Sprintf("%s %s %s", currentTime, progressBar, totalTime)

	// Volume and mode flags
	info := fmt.Sprintf("🔊 %d%%", int(snap.Volume*100))
	if snap.BassBoost {
		info += "  ♬ bass boost"
	}
	if snap.FullScreen {
		info += "  ⛶ fullscreen"
	}
	info = styles.Muted.Render(info)

	// Playback controls indicator
	controls := n.renderControls(snap.IsPlaying)

	return lipgloss.JoinVertical(lipgloss.Left,
		icon+" "+title+" "+heart,
		"  "+artist,
		"",
		progress,
		"",
		info,
		controls,
	)
}

func (n *NowPlaying) renderControls(playing bool) string {
	var controls string

	controls += styles.Dim.Render("⏮ ")
	if playing {
		controls += styles.Playing.Render("⏸")
	} else {
		controls += styles.Paused.Render("▶")
	}
	controls += styles.Dim.Render(" ⏭")

	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Render(controls)
}

func formatSeconds(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
