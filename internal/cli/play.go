package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codgamerofficial/sonicstream/internal/core"
	"github.com/codgamerofficial/sonicstream/internal/errors"
)

var playQueue bool

var playCmd = &cobra.Command{
	Use:   "play [query]",
	Short: "Search and play a track",
	Long: `Search the catalog and play the first match.
Without arguments, resumes paused playback.

Examples:
  sonic play                      # Resume playback
  sonic play "bohemian rhapsody"  # Search and play a track
  sonic play --queue "next song"  # Append to the queue instead`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVarP(&playQueue, "queue", "q", false, "Append to the queue instead of playing now")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	client := api()

	query := strings.Join(args, " ")
	if query == "" {
		// Just resume playback
		snap, err := client.State(ctx)
		if err != nil {
			return suggest(err)
		}
		if snap.Track == nil {
			return suggest(errors.ErrNoCurrentTrack)
		}
		if snap.IsPlaying {
			if !JSONOutput() {
				fmt.Println("▶ Already playing")
			}
			return nil
		}
		if _, err := client.Toggle(ctx); err != nil {
			return suggest(err)
		}
		if !JSONOutput() {
			fmt.Println("▶ Resumed playback")
		}
		return nil
	}

	track, err := findTrack(ctx, query)
	if err != nil {
		return err
	}

	if playQueue {
		if err := client.Enqueue(ctx, track); err != nil {
			return suggest(err)
		}
		outputTrackResult("queued", track)
		return nil
	}

	if _, err := client.Play(ctx, track); err != nil {
		return suggest(err)
	}
	outputTrackResult("playing", track)
	return nil
}

// findTrack resolves a query to its first catalog match.
func findTrack(ctx context.Context, query string) (core.Track, error) {
	tracks, err := api().Search(ctx, query)
	if err != nil {
		return core.Track{}, suggest(err)
	}
	if len(tracks) == 0 {
		return core.Track{}, suggest(fmt.Errorf("%w: no results for %q", errors.ErrTrackNotFound, query))
	}
	return tracks[0], nil
}

func outputTrackResult(status string, t core.Track) {
	if JSONOutput() {
		_ = json.NewEncoder(os.Stdout).Encode(map[string]any{
			"status": status,
			"id":     t.ID,
			"title":  t.Title,
			"artist": t.Artist,
		})
		return
	}

	icon := "▶"
	if status == "queued" {
		icon = "➕"
	}
	label := strings.ToUpper(status[:1]) + status[1:]
	if t.Artist != "" {
		fmt.Printf("%s %s: %s by %s\n", icon, label, t.Title, t.Artist)
	} else {
		fmt.Printf("%s %s: %s\n", icon, label, t.Title)
	}
}

// suggest attaches a remedial hint to the error when one is known.
func suggest(err error) error {
	if s := errors.GetSuggestion(err); s != "" {
		return fmt.Errorf("%w\n%s", err, s)
	}
	return err
}
