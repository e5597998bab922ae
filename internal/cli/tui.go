package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/codgamerofficial/sonicstream/internal/tui"
)

var tuiRefresh int

var tuiCmd = &cobra.Command{
	Use:     "ui",
	Aliases: []string{"tui"},
	Short:   "Launch interactive dashboard",
	Long: `Launch the interactive terminal dashboard.

The dashboard hosts the player itself, so other sonic commands work
against it while it runs. It provides a live view with:
  • Now Playing - current track, progress, volume
  • Queue - upcoming tracks
  • Favorites - your liked songs
  • Playlists - your collections

Keyboard shortcuts:
  q, Ctrl+C    Quit
  ?            Help
  /            Search
  Space        Play/Pause
  n            Next track
  p            Previous track
  +/-          Volume up/down
  f            Toggle favorite
  t            Cycle theme
  Tab          Switch panel`,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().IntVar(&tuiRefresh, "refresh", 0, "Refresh interval in milliseconds")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stack, err := buildStack(ctx)
	if err != nil {
		return err
	}
	defer stack.close()

	// Serve the control API alongside the dashboard so the rest of
	// the CLI can drive this process.
	httpServer := &http.Server{
		Addr:    cfg.Server.Listen,
		Handler: stack.server.Router(),
	}
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Warn("control API unavailable", "addr", cfg.Server.Listen, "error", err)
		}
	}()
	defer func() {
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelShutdown()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	refreshMillis := tuiRefresh
	if refreshMillis <= 0 {
		refreshMillis = cfg.TUI.RefreshInterval
	}
	refreshRate := time.Duration(refreshMillis) * time.Millisecond

	return tui.Run(stack.session, stack.library, stack.searcher, refreshRate)
}
