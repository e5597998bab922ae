package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current playback status",
	Long:  `Shows the current track, progress, volume, and theme.`,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	snap, err := api().State(context.Background())
	if err != nil {
		return suggest(err)
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(snap)
	}

	if snap.Track == nil {
		fmt.Println("No track loaded")
		return nil
	}

	playIcon := "▶"
	if !snap.IsPlaying {
		playIcon = "⏸"
	}

	fmt.Printf("%s %s\n", playIcon, snap.Track.Title)
	fmt.Printf("  %s\n", snap.Track.Artist)

	bar := FormatProgress(snap.Progress, 30)
	elapsed := snap.Progress * snap.Duration
	fmt.Printf("  %s %s / %s\n", bar, FormatDuration(elapsed), FormatDuration(snap.Duration))

	fmt.Printf("  🔊 %d%%", int(snap.Volume*100))
	if snap.BassBoost {
		fmt.Printf("  %s bass boost", StatusIcon(true))
	}
	fmt.Printf("  🎨 %s\n", snap.Theme)

	return nil
}
