package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the catalog",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

var (
	recommendMood  string
	recommendGenre string
	recommendPlay  bool
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Get AI track recommendations",
	Long: `Ask the AI DJ for tracks matching a mood and genre.

Examples:
  sonic recommend --mood energetic --genre rock
  sonic recommend --mood chill --play   # queue the picks and start playing`,
	RunE: runRecommend,
}

var lyricsCmd = &cobra.Command{
	Use:   "lyrics [title] [artist]",
	Short: "Show lyrics",
	Long: `Fetch lyrics for a song.
Without arguments, uses the currently playing track.`,
	RunE: runLyrics,
}

var djCmd = &cobra.Command{
	Use:   "dj <message>",
	Short: "Chat with the AI DJ",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDJ,
}

var shareCmd = &cobra.Command{
	Use:   "share [query]",
	Short: "Share a track with the community catalog",
	Long: `Contribute a track to the shared public catalog.
Without arguments, shares the currently playing track.`,
	RunE: runShare,
}

func init() {
	recommendCmd.Flags().StringVar(&recommendMood, "mood", "happy", "Mood for the playlist")
	recommendCmd.Flags().StringVar(&recommendGenre, "genre", "pop", "Genre for the playlist")
	recommendCmd.Flags().BoolVar(&recommendPlay, "play", false, "Queue the picks and start playing")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(lyricsCmd)
	rootCmd.AddCommand(djCmd)
	rootCmd.AddCommand(shareCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	tracks, err := api().Search(context.Background(), strings.Join(args, " "))
	if err != nil {
		return suggest(err)
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(tracks)
	}

	if len(tracks) == 0 {
		fmt.Println("No results")
		return nil
	}

	table := NewTable("ID", "TITLE", "ARTIST", "LENGTH")
	for _, t := range tracks {
		table.Row(t.ID, TruncateString(t.Title, 40), TruncateString(t.Artist, 30), t.DurationHint)
	}
	table.Flush()
	return nil
}

func runRecommend(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	client := api()

	tracks, err := client.Recommend(ctx, recommendMood, recommendGenre)
	if err != nil {
		return suggest(err)
	}
	if len(tracks) == 0 {
		return fmt.Errorf("the DJ came up empty; try a different mood or genre")
	}

	if recommendPlay {
		if _, err := client.Play(ctx, tracks[0]); err != nil {
			return suggest(err)
		}
		for _, t := range tracks[1:] {
			if err := client.Enqueue(ctx, t); err != nil {
				return suggest(err)
			}
		}
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(tracks)
	}

	fmt.Printf("🎧 %s %s picks:\n", recommendMood, recommendGenre)
	table := NewTable("", "TITLE", "ARTIST")
	for i, t := range tracks {
		marker := ""
		if recommendPlay && i == 0 {
			marker = "▶"
		}
		table.Row(marker, TruncateString(t.Title, 40), TruncateString(t.Artist, 30))
	}
	table.Flush()
	return nil
}

func runLyrics(cmd *cobra.Command, args []string) error {
	title, artist := "", ""
	if len(args) > 0 {
		title = args[0]
	}
	if len(args) > 1 {
		artist = strings.Join(args[1:], " ")
	}

	lyrics, err := api().Lyrics(context.Background(), title, artist)
	if err != nil {
		return suggest(err)
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(map[string]string{"lyrics": lyrics})
	}

	fmt.Println(lyrics)
	return nil
}

func runDJ(cmd *cobra.Command, args []string) error {
	reply, err := api().Chat(context.Background(), strings.Join(args, " "))
	if err != nil {
		return suggest(err)
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(map[string]string{"reply": reply})
	}

	fmt.Printf("🎙 %s\n", reply)
	return nil
}

func runShare(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	track, err := currentOrSearch(ctx, args)
	if err != nil {
		return err
	}
	if err := api().Share(ctx, track); err != nil {
		return suggest(err)
	}

	if JSONOutput() {
		_ = json.NewEncoder(os.Stdout).Encode(map[string]string{"status": "shared", "id": track.ID})
	} else {
		fmt.Printf("🌐 Shared %q with the community\n", track.Title)
	}
	return nil
}
