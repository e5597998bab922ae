// Package tui is the interactive dashboard. It talks to the playback
// session in process and re-renders on a fixed tick, so transport
// events surface on the next refresh.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/codgamerofficial/sonicstream/internal/core"
	"github.com/codgamerofficial/sonicstream/internal/library"
	"github.com/codgamerofficial/sonicstream/internal/session"
	"github.com/codgamerofficial/sonicstream/internal/tui/components"
	"github.com/codgamerofficial/sonicstream/internal/tui/styles"
)

// Panel represents which panel is focused
type Panel int

const (
	PanelNowPlaying Panel = iota
	PanelQueue
	PanelFavorites
	PanelPlaylists
)

const panelCount = 4

const searchDebounce = 300 * time.Millisecond

// Searcher resolves queries into playable tracks.
type Searcher interface {
	Search(ctx context.Context, query string) []core.Track
}

// App holds the TUI application dependencies
type App struct {
	session     *session.Session
	library     *library.Library
	searcher    Searcher
	refreshRate time.Duration
}

// NewApp creates a new TUI application
func NewApp(sess *session.Session, lib *library.Library, searcher Searcher, refreshRate time.Duration) *App {
	return &App{
		session:     sess,
		library:     lib,
		searcher:    searcher,
		refreshRate: refreshRate,
	}
}

// Model is the main TUI model
type Model struct {
	app          *App
	width        int
	height       int
	focusedPanel Panel

	// State
	snap      session.Snapshot
	favorite  bool
	queue     []core.Track
	favorites []core.Track
	playlists []core.Playlist

	// Components
	nowPlaying    *components.NowPlaying
	queueView     *components.Queue
	favoritesView *components.Favorites
	playlistsView *components.Playlists

	// Overlays
	showHelp bool

	// Search state
	showSearch    bool
	searchInput   textinput.Model
	searchResults []core.Track
	searchCursor  int
	searching     bool
	lastQuery     string

	// Quit flag
	quitting bool
}

// NewModel creates a new TUI model
func NewModel(app *App) Model {
	ti := textinput.New()
	ti.Placeholder = "Search songs, artists..."
	ti.CharLimit = 100
	ti.Width = 50

	styles.ApplyTheme(app.session.Theme())

	return Model{
		app:           app,
		focusedPanel:  PanelNowPlaying,
		nowPlaying:    components.NewNowPlaying(),
		queueView:     components.NewQueue(),
		favoritesView: components.NewFavorites(),
		playlistsView: components.NewPlaylists(),
		searchInput:   ti,
	}
}

// Messages
type tickMsg time.Time

// Search messages
type searchDebounceMsg struct{ query string }
type searchResultsMsg struct{ results []core.Track }

// Commands
func (m Model) tick() tea.Cmd {
	return tea.Tick(m.app.refreshRate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) doSearch(query string) tea.Cmd {
	return func() tea.Msg {
		if query == "" {
			return searchResultsMsg{}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return searchResultsMsg{results: m.app.searcher.Search(ctx, query)}
	}
}

// refresh copies the current session and library state into the model.
func (m *Model) refresh() {
	m.snap = m.app.session.Snapshot()
	m.favorite = m.app.session.IsCurrentFavorite()
	m.queue = m.app.session.Queue()
	m.favorites = m.app.library.Favorites()
	m.playlists = m.app.library.Playlists()
	styles.ApplyTheme(m.snap.Theme)
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	m.refresh()
	return m.tick()
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.refresh()
		return m, m.tick()

	case searchDebounceMsg:
		if msg.query == m.searchInput.Value() && msg.query != m.lastQuery {
			m.lastQuery = msg.query
			m.searching = true
			return m, m.doSearch(msg.query)
		}

	case searchResultsMsg:
		m.searching = false
		m.searchResults = msg.results
		m.searchCursor = 0
		return m, nil
	}

	// Forward other messages to textinput when search is active
	if m.showSearch {
		var inputCmd tea.Cmd
		m.searchInput, inputCmd = m.searchInput.Update(msg)
		return m, inputCmd
	}

	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys (always work)
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	// Help overlay
	if m.showHelp {
		switch msg.String() {
		case "?", "esc":
			m.showHelp = false
		}
		return m, nil
	}

	// Search overlay
	if m.showSearch {
		return m.handleSearchKeyPress(msg)
	}

	// Normal mode
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "?":
		m.showHelp = true
		return m, nil

	case "/":
		m.showSearch = true
		m.searchInput.SetValue("")
		m.searchInput.Focus()
		m.searchResults = nil
		m.searchCursor = 0
		m.lastQuery = ""
		return m, textinput.Blink

	case "tab":
		m.focusedPanel = (m.focusedPanel + 1) % panelCount
		return m, nil

	case "shift+tab":
		m.focusedPanel = (m.focusedPanel + panelCount - 1) % panelCount
		return m, nil
	}

	// Playback controls
	switch msg.String() {
	case " ":
		m.app.session.TogglePlay()
	case "n":
		m.app.session.Next()
	case "p":
		m.app.session.Previous()
	case "+", "=":
		m.app.session.SetVolume(m.snap.Volume + 0.05)
	case "-":
		m.app.session.SetVolume(m.snap.Volume - 0.05)
	case "right":
		m.app.session.Seek(m.snap.Progress + 0.05)
	case "left":
		m.app.session.Seek(m.snap.Progress - 0.05)
	case "f":
		if m.snap.Track != nil {
			m.app.library.ToggleFavorite(*m.snap.Track)
		}
	case "b":
		m.app.session.ToggleBassBoost()
	case "t":
		m.app.session.SetTheme(m.app.session.Theme().Next())
	case "m":
		m.app.session.SetFullScreen(!m.snap.FullScreen)
	}

	// Panel-specific keys
	switch m.focusedPanel {
	case PanelQueue:
		switch msg.String() {
		case "j", "down":
			m.queueView.ScrollDown()
		case "k", "up":
			m.queueView.ScrollUp()
		}
	case PanelFavorites:
		switch msg.String() {
		case "j", "down":
			m.favoritesView.SelectNext(len(m.favorites))
		case "k", "up":
			m.favoritesView.SelectPrev()
		case "enter":
			if i := m.favoritesView.Selected(); i >= 0 && i < len(m.favorites) {
				m.app.session.Play(m.favorites[i])
			}
		}
	case PanelPlaylists:
		switch msg.String() {
		case "j", "down":
			m.playlistsView.SelectNext(len(m.playlists))
		case "k", "up":
			m.playlistsView.SelectPrev()
		case "enter":
			if i := m.playlistsView.Selected(); i >= 0 && i < len(m.playlists) {
				m.playPlaylist(m.playlists[i])
			}
		}
	}

	m.refresh()
	return m, nil
}

// playPlaylist plays the first song and queues the rest.
func (m *Model) playPlaylist(pl core.Playlist) {
	if len(pl.Songs) == 0 {
		return
	}
	m.app.session.Play(pl.Songs[0])
	for _, t := range pl.Songs[1:] {
		m.app.session.Enqueue(t)
	}
}

func (m Model) handleSearchKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg.String() {
	case "esc":
		m.showSearch = false
		m.searchInput.Blur()
		return m, nil

	case "enter":
		if len(m.searchResults) > 0 && m.searchCursor < len(m.searchResults) {
			track := m.searchResults[m.searchCursor]
			m.showSearch = false
			m.searchInput.Blur()
			m.app.session.Play(track)
			m.refresh()
		}
		return m, nil

	case "up", "ctrl+p":
		if m.searchCursor > 0 {
			m.searchCursor--
		}
		return m, nil

	case "down", "ctrl+n":
		if m.searchCursor < len(m.searchResults)-1 {
			m.searchCursor++
		}
		return m, nil

	case "ctrl+q":
		// Add to queue without changing what plays
		if len(m.searchResults) > 0 && m.searchCursor < len(m.searchResults) {
			track := m.searchResults[m.searchCursor]
			m.showSearch = false
			m.searchInput.Blur()
			m.app.session.Enqueue(track)
			m.refresh()
		}
		return m, nil
	}

	// Handle text input
	var inputCmd tea.Cmd
	m.searchInput, inputCmd = m.searchInput.Update(msg)
	cmds = append(cmds, inputCmd)

	// Debounce search
	if m.searchInput.Value() != m.lastQuery {
		query := m.searchInput.Value()
		cmds = append(cmds, tea.Tick(searchDebounce, func(time.Time) tea.Msg {
			return searchDebounceMsg{query: query}
		}))
	}

	return m, tea.Batch(cmds...)
}

// View renders the UI
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.width == 0 {
		return "Loading..."
	}

	// Show overlays if active
	if m.showHelp {
		return m.renderHelp()
	}

	if m.showSearch {
		return m.renderSearch()
	}

	// Fullscreen mode: now playing fills the window.
	if m.snap.FullScreen {
		nowPlaying := m.nowPlaying.Render(m.snap, m.favorite, m.width-2, m.height-3, true)
		return lipgloss.JoinVertical(lipgloss.Left, nowPlaying, m.renderStatusBar())
	}

	// Main layout: two columns
	// Left: Now Playing (top), Queue (bottom)
	// Right: Favorites (top), Playlists (bottom)

	leftWidth := m.width * 60 / 100
	rightWidth := m.width - leftWidth - 2
	topHeight := m.height * 40 / 100
	bottomHeight := m.height - topHeight - 2

	nowPlaying := m.nowPlaying.Render(m.snap, m.favorite, leftWidth-2, topHeight-2, m.focusedPanel == PanelNowPlaying)
	queueView := m.queueView.Render(m.queue, m.currentID(), leftWidth-2, bottomHeight-2, m.focusedPanel == PanelQueue)
	favoritesView := m.favoritesView.Render(m.favorites, rightWidth-2, topHeight-2, m.focusedPanel == PanelFavorites)
	playlistsView := m.playlistsView.Render(m.playlists, rightWidth-2, bottomHeight-2, m.focusedPanel == PanelPlaylists)

	leftCol := lipgloss.JoinVertical(lipgloss.Left, nowPlaying, queueView)
	rightCol := lipgloss.JoinVertical(lipgloss.Left, favoritesView, playlistsView)

	main := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, rightCol)

	return lipgloss.JoinVertical(lipgloss.Left, main, m.renderStatusBar())
}

func (m Model) currentID() string {
	if m.snap.Track == nil {
		return ""
	}
	return m.snap.Track.ID
}

func (m Model) renderStatusBar() string {
	status := styles.Dim.Render("q:quit  ?:help  /:search  space:play/pause  n:next  p:prev  f:favorite  t:theme  tab:switch panel")

	return lipgloss.NewStyle().
		Width(m.width).
		Padding(0, 1).
		Render(status)
}

func (m Model) renderHelp() string {
	title := "Sonic - Keyboard Shortcuts"
	divider := styles.Repeat("═", len(title))

	help := `
  ` + title + `
  ` + divider + `

  Global
  ──────
  q, Ctrl+C    Quit
  ?            Toggle help
  /            Search
  Tab          Next panel
  Shift+Tab    Previous panel

  Playback
  ────────
  Space        Play/Pause
  n            Next track
  p            Previous track
  ←/→          Seek back/forward
  +/=          Volume up
  -            Volume down
  f            Toggle favorite
  b            Toggle bass boost
  t            Cycle theme
  m            Toggle fullscreen

  Lists
  ─────
  j/↓          Scroll / select down
  k/↑          Scroll / select up
  Enter        Play selected

  Press ? or Esc to close
`

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(styles.BorderStyle.Render(help))
}

func (m Model) renderSearch() string {
	var b strings.Builder

	b.WriteString(styles.Highlight.Render("Search"))
	b.WriteString("\n\n")

	b.WriteString(m.searchInput.View())
	b.WriteString("\n\n")

	if m.searching {
		b.WriteString(styles.Muted.Render("Searching..."))
	} else if len(m.searchResults) == 0 && m.searchInput.Value() != "" && m.lastQuery != "" {
		b.WriteString(styles.Muted.Render("No results found"))
	} else {
		maxResults := 10
		for i, track := range m.searchResults {
			if i >= maxResults {
				b.WriteString(styles.Muted.Render("  ...and more"))
				break
			}

			line := track.Title
			if track.Artist != "" {
				line += " " + styles.Muted.Render(track.Artist)
			}
			if track.DurationHint != "" {
				line += " " + styles.Dim.Render(track.DurationHint)
			}

			if i == m.searchCursor {
				b.WriteString(styles.Highlight.Render("> ") + line)
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.Muted.Render("↑/↓:nav  Enter:play  Ctrl+q:queue  Esc:close"))

	content := lipgloss.NewStyle().
		Width(60).
		Padding(1, 2).
		Render(b.String())

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(styles.FocusedBorder.Render(content))
}

// Run starts the TUI application
func Run(sess *session.Session, lib *library.Library, searcher Searcher, refreshRate time.Duration) error {
	app := NewApp(sess, lib, searcher, refreshRate)
	model := NewModel(app)
	p := tea.NewProgram(model, tea.WithAltScreen())

	_, err := p.Run()
	return err
}
