package styles

import (
	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"

	"github.com/codgamerofficial/sonicstream/internal/core"
)

// Colors - a pleasant color palette
var (
	// Accent follows the active theme; see ApplyTheme.
	Primary = lipgloss.Color(catppuccin.Mocha.Mauve().Hex)

	// Status colors
	Success = lipgloss.Color(catppuccin.Mocha.Green().Hex)
	Warning = lipgloss.Color(catppuccin.Mocha.Peach().Hex)
	Error   = lipgloss.Color(catppuccin.Mocha.Red().Hex)

	// Neutral colors
	Background = lipgloss.Color(catppuccin.Mocha.Base().Hex)
	Surface    = lipgloss.Color(catppuccin.Mocha.Surface0().Hex)
	Border     = lipgloss.Color(catppuccin.Mocha.Surface2().Hex)
	Text       = lipgloss.Color(catppuccin.Mocha.Text().Hex)
	TextMuted  = lipgloss.Color(catppuccin.Mocha.Subtext0().Hex)
	TextDim    = lipgloss.Color(catppuccin.Mocha.Overlay0().Hex)
)

// accents maps each theme to its catppuccin accent color.
var accents = map[core.Theme]lipgloss.Color{
	core.ThemeViolet:  lipgloss.Color(catppuccin.Mocha.Mauve().Hex),
	core.ThemeCyan:    lipgloss.Color(catppuccin.Mocha.Sky().Hex),
	core.ThemeRose:    lipgloss.Color(catppuccin.Mocha.Pink().Hex),
	core.ThemeAmber:   lipgloss.Color(catppuccin.Mocha.Peach().Hex),
	core.ThemeEmerald: lipgloss.Color(catppuccin.Mocha.Green().Hex),
}

// Text styles
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Text)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextMuted)

	Label = lipgloss.NewStyle().
		Foreground(TextDim)

	Highlight = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	Muted = lipgloss.NewStyle().
		Foreground(TextMuted)

	Dim = lipgloss.NewStyle().
		Foreground(TextDim)

	Playing = lipgloss.NewStyle().
		Foreground(Success)

	Paused = lipgloss.NewStyle().
		Foreground(Warning)
)

// Border styles
var (
	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border)

	FocusedBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary)
)

// ApplyTheme switches the accent color to the theme's palette entry.
func ApplyTheme(t core.Theme) {
	accent, ok := accents[t]
	if !ok {
		accent = accents[core.DefaultTheme]
	}
	Primary = accent
	Highlight = Highlight.Foreground(accent)
	FocusedBorder = FocusedBorder.BorderForeground(accent)
}

// Panel creates a styled panel with optional focus
func Panel(focused bool) lipgloss.Style {
	if focused {
		return FocusedBorder.Padding(0, 1)
	}
	return BorderStyle.Padding(0, 1)
}

// PanelTitle creates a styled panel title
func PanelTitle(title string, focused bool) string {
	style := Label
	if focused {
		style = Highlight
	}
	return style.Render(" " + title + " ")
}

// ProgressBar creates a progress bar string for a fraction in [0, 1).
func ProgressBar(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	filledStyle := lipgloss.NewStyle().Foreground(Primary)
	emptyStyle := lipgloss.NewStyle().Foreground(Border)

	return filledStyle.Render(Repeat("━", filled)) +
		emptyStyle.Render(Repeat("─", width-filled))
}

// StatusIcon returns an icon for playback status
func StatusIcon(playing bool) string {
	if playing {
		return Playing.Render("▶")
	}
	return Paused.Render("⏸")
}

// Repeat repeats a string n times
func Repeat(s string, n int) string {
	result := ""
	for i := 0; i < n; i++ {
		result += s
	}
	return result
}
