package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/codgamerofficial/sonicstream/internal/community"
	"github.com/codgamerofficial/sonicstream/internal/dj"
	"github.com/codgamerofficial/sonicstream/internal/library"
	"github.com/codgamerofficial/sonicstream/internal/search"
	"github.com/codgamerofficial/sonicstream/internal/session"
	"github.com/codgamerofficial/sonicstream/internal/settings"
	"github.com/codgamerofficial/sonicstream/internal/storage"
	"github.com/codgamerofficial/sonicstream/internal/transport/mpv"
	"github.com/codgamerofficial/sonicstream/internal/web"
	"github.com/codgamerofficial/sonicstream/internal/youtube"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the player server",
	Long: `Starts the playback engine and its control API.
The other sonic commands talk to this process.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// playerStack is the fully wired player: the session plus everything
// the API server and TUI need around it.
type playerStack struct {
	session  *session.Session
	library  *library.Library
	searcher *search.Service
	ai       *dj.Client
	server   *web.Server
}

func (p *playerStack) close() {
	p.session.Close()
}

// buildStack constructs the session and its collaborators from the
// loaded config.
func buildStack(ctx context.Context) (*playerStack, error) {
	store, err := storage.New(cfg.Storage.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	lib := library.New(store)
	prefs := settings.New(store)

	factory := &mpv.Factory{Binary: cfg.Player.Binary}
	sess := session.New(ctx, factory, lib, prefs)
	sess.SetVolume(float64(cfg.Defaults.Volume) / 100)

	comm := community.New(cfg.Community.BaseURL, cfg.Community.APIKey, store)

	var catalog search.CatalogClient
	if cfg.YouTube.APIKey != "" {
		catalog = youtube.New(cfg.YouTube.APIKey)
	} else {
		slog.Warn("youtube.api_key not set; search runs on the community catalog and sample data only")
	}
	searcher := search.New(catalog, comm)

	var ai *dj.Client
	var recommender web.Recommender
	if cfg.AI.APIKey != "" {
		ai = dj.New(cfg.AI.APIKey, cfg.AI.Model)
		recommender = ai
	}

	return &playerStack{
		session:  sess,
		library:  lib,
		searcher: searcher,
		ai:       ai,
		server:   web.NewServer(sess, lib, searcher, recommender, comm),
	}, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stack, err := buildStack(ctx)
	if err != nil {
		return err
	}
	defer stack.close()

	httpServer := &http.Server{
		Addr:    cfg.Server.Listen,
		Handler: stack.server.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("player server listening", "addr", cfg.Server.Listen)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
