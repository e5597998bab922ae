package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Show the playback queue",
	Long:  `Lists the queued tracks in order, marking the current one.`,
	RunE:  runQueue,
}

func init() {
	rootCmd.AddCommand(queueCmd)
}

func runQueue(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	client := api()

	tracks, err := client.Queue(ctx)
	if err != nil {
		return suggest(err)
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(tracks)
	}

	if len(tracks) == 0 {
		fmt.Println("Queue is empty")
		return nil
	}

	snap, err := client.State(ctx)
	if err != nil {
		return suggest(err)
	}
	currentID := ""
	if snap.Track != nil {
		currentID = snap.Track.ID
	}

	table := NewTable("#", "", "TITLE", "ARTIST", "LENGTH")
	for i, t := range tracks {
		marker := ""
		if t.ID == currentID {
			marker = "▶"
		}
		table.Row(
			fmt.Sprintf("%d", i+1),
			marker,
			TruncateString(t.Title, 40),
			TruncateString(t.Artist, 30),
			t.DurationHint,
		)
	}
	table.Flush()

	return nil
}
