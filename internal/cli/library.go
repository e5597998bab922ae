package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/codgamerofficial/sonicstream/internal/core"
)

var favoriteCmd = &cobra.Command{
	Use:   "favorite [query]",
	Short: "Toggle a track in your favorites",
	Long: `Add or remove a track from favorites.
Without arguments, toggles the currently playing track.`,
	RunE: runFavorite,
}

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "List your favorite tracks",
	RunE:  runFavorites,
}

var playlistCmd = &cobra.Command{
	Use:   "playlist",
	Short: "Manage playlists",
	Long:  `Commands for creating, inspecting, and editing playlists.`,
}

var playlistCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a playlist",
	RunE:  runPlaylistCreate,
}

var playlistListCmd = &cobra.Command{
	Use:   "list",
	Short: "List playlists",
	RunE:  runPlaylistList,
}

var playlistShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show the songs in a playlist",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlaylistShow,
}

var playlistDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a playlist",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlaylistDelete,
}

var playlistAddCmd = &cobra.Command{
	Use:   "add <name> [query]",
	Short: "Add a track to a playlist",
	Long: `Add a track to a playlist.
Without a query, adds the currently playing track.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPlaylistAdd,
}

var playlistRemoveCmd = &cobra.Command{
	Use:   "remove <name> <track-id>",
	Short: "Remove a track from a playlist",
	Args:  cobra.ExactArgs(2),
	RunE:  runPlaylistRemove,
}

func init() {
	playlistCmd.AddCommand(playlistCreateCmd)
	playlistCmd.AddCommand(playlistListCmd)
	playlistCmd.AddCommand(playlistShowCmd)
	playlistCmd.AddCommand(playlistDeleteCmd)
	playlistCmd.AddCommand(playlistAddCmd)
	playlistCmd.AddCommand(playlistRemoveCmd)

	rootCmd.AddCommand(favoriteCmd)
	rootCmd.AddCommand(favoritesCmd)
	rootCmd.AddCommand(playlistCmd)
}

// currentOrSearch resolves to the current track, or searches when a
// query is given.
func currentOrSearch(ctx context.Context, args []string) (core.Track, error) {
	if len(args) > 0 {
		return findTrack(ctx, strings.Join(args, " "))
	}

	snap, err := api().State(ctx)
	if err != nil {
		return core.Track{}, suggest(err)
	}
	if snap.Track == nil {
		return core.Track{}, fmt.Errorf("nothing is playing; give a search query instead")
	}
	return *snap.Track, nil
}

func runFavorite(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	track, err := currentOrSearch(ctx, args)
	if err != nil {
		return err
	}

	isFavorite, err := api().ToggleFavorite(ctx, track)
	if err != nil {
		return suggest(err)
	}

	if JSONOutput() {
		_ = json.NewEncoder(os.Stdout).Encode(map[string]any{
			"id":       track.ID,
			"title":    track.Title,
			"favorite": isFavorite,
		})
	} else if isFavorite {
		fmt.Printf("♥ Added to favorites: %s\n", track.Title)
	} else {
		fmt.Printf("♡ Removed from favorites: %s\n", track.Title)
	}
	return nil
}

func runFavorites(cmd *cobra.Command, args []string) error {
	tracks, err := api().Favorites(context.Background())
	if err != nil {
		return suggest(err)
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(tracks)
	}

	if len(tracks) == 0 {
		fmt.Println("No favorites yet")
		return nil
	}

	table := NewTable("TITLE", "ARTIST", "LENGTH")
	for _, t := range tracks {
		table.Row(TruncateString(t.Title, 40), TruncateString(t.Artist, 30), t.DurationHint)
	}
	table.Flush()
	return nil
}

func runPlaylistCreate(cmd *cobra.Command, args []string) error {
	name := strings.Join(args, " ")

	if name == "" {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Playlist name").
					Value(&name).
					Validate(func(s string) error {
						if strings.TrimSpace(s) == "" {
							return fmt.Errorf("name cannot be empty")
						}
						return nil
					}),
			),
		)
		if err := form.Run(); err != nil {
			return fmt.Errorf("cancelled: %w", err)
		}
	}

	pl, err := api().CreatePlaylist(context.Background(), strings.TrimSpace(name))
	if err != nil {
		return suggest(err)
	}

	if JSONOutput() {
		_ = json.NewEncoder(os.Stdout).Encode(pl)
	} else {
		fmt.Printf("Created playlist %q\n", pl.Name)
	}
	return nil
}

func runPlaylistList(cmd *cobra.Command, args []string) error {
	playlists, err := api().Playlists(context.Background())
	if err != nil {
		return suggest(err)
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(playlists)
	}

	if len(playlists) == 0 {
		fmt.Println("No playlists yet")
		return nil
	}

	table := NewTable("NAME", "SONGS", "CREATED")
	for _, pl := range playlists {
		table.Row(pl.Name, fmt.Sprintf("%d", pl.Len()), pl.CreatedAt.Format("2006-01-02"))
	}
	table.Flush()
	return nil
}

func runPlaylistShow(cmd *cobra.Command, args []string) error {
	pl, err := playlistByName(context.Background(), args[0])
	if err != nil {
		return err
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(pl)
	}

	fmt.Printf("%s (%d songs)\n", pl.Name, pl.Len())
	if pl.Len() == 0 {
		return nil
	}

	table := NewTable("#", "ID", "TITLE", "ARTIST")
	for i, t := range pl.Songs {
		table.Row(fmt.Sprintf("%d", i+1), t.ID, TruncateString(t.Title, 40), TruncateString(t.Artist, 30))
	}
	table.Flush()
	return nil
}

func runPlaylistDelete(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	pl, err := playlistByName(ctx, args[0])
	if err != nil {
		return err
	}
	if err := api().DeletePlaylist(ctx, pl.ID); err != nil {
		return suggest(err)
	}

	if JSONOutput() {
		_ = json.NewEncoder(os.Stdout).Encode(map[string]string{"status": "deleted", "name": pl.Name})
	} else {
		fmt.Printf("Deleted playlist %q\n", pl.Name)
	}
	return nil
}

func runPlaylistAdd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	pl, err := playlistByName(ctx, args[0])
	if err != nil {
		return err
	}
	track, err := currentOrSearch(ctx, args[1:])
	if err != nil {
		return err
	}

	if err := api().AddToPlaylist(ctx, pl.ID, track); err != nil {
		return suggest(err)
	}

	if JSONOutput() {
		_ = json.NewEncoder(os.Stdout).Encode(map[string]string{
			"status":   "added",
			"playlist": pl.Name,
			"track":    track.Title,
		})
	} else {
		fmt.Printf("Added %q to %q\n", track.Title, pl.Name)
	}
	return nil
}

func runPlaylistRemove(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	pl, err := playlistByName(ctx, args[0])
	if err != nil {
		return err
	}
	if err := api().RemoveFromPlaylist(ctx, pl.ID, args[1]); err != nil {
		return suggest(err)
	}

	if JSONOutput() {
		_ = json.NewEncoder(os.Stdout).Encode(map[string]string{"status": "removed", "playlist": pl.Name})
	} else {
		fmt.Printf("Removed track from %q\n", pl.Name)
	}
	return nil
}

// playlistByName matches a playlist case-insensitively by name.
func playlistByName(ctx context.Context, name string) (core.Playlist, error) {
	playlists, err := api().Playlists(ctx)
	if err != nil {
		return core.Playlist{}, suggest(err)
	}
	for _, pl := range playlists {
		if strings.EqualFold(pl.Name, name) {
			return pl, nil
		}
	}
	return core.Playlist{}, fmt.Errorf("playlist %q not found", name)
}
