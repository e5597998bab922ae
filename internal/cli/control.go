package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var pauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause playback",
	Long:  `Pause the current playback.`,
	RunE:  runPause,
}

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Resume playback",
	Long:  `Resume paused playback.`,
	RunE:  runResume,
}

var toggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Toggle play/pause",
	Long:  `Flip between playing and paused.`,
	RunE:  runToggle,
}

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Skip to next track",
	Long:  `Skip to the next track in the queue.`,
	RunE:  runNext,
}

var prevCmd = &cobra.Command{
	Use:   "prev",
	Short: "Go to previous track",
	Long:  `Go back to the previous track in the queue.`,
	RunE:  runPrev,
}

var restartCmd = &cobra.Command{
	Use:     "restart",
	Aliases: []string{"replay"},
	Short:   "Restart current track",
	Long:    `Restart the current track from the beginning.`,
	RunE:    runRestart,
}

var seekCmd = &cobra.Command{
	Use:   "seek <percent>",
	Short: "Seek within the current track",
	Long: `Jump to a position in the current track, given as a percentage.

Examples:
  sonic seek 0    # Back to the start
  sonic seek 50   # Halfway through`,
	Args: cobra.ExactArgs(1),
	RunE: runSeek,
}

var (
	volumeUp   bool
	volumeDown bool
)

var volumeCmd = &cobra.Command{
	Use:   "volume [level]",
	Short: "Set or adjust volume",
	Long: `Set the playback volume (0-100) or adjust it up/down.

Examples:
  sonic volume 50      # Set volume to 50%
  sonic volume --up    # Increase volume by 10%
  sonic volume --down  # Decrease volume by 10%`,
	RunE: runVolume,
}

var bassBoostCmd = &cobra.Command{
	Use:   "bassboost",
	Short: "Toggle bass boost",
	RunE:  runBassBoost,
}

func init() {
	volumeCmd.Flags().BoolVar(&volumeUp, "up", false, "Increase volume by 10%")
	volumeCmd.Flags().BoolVar(&volumeDown, "down", false, "Decrease volume by 10%")

	rootCmd.AddCommand(pauseCmd)
	rootCmd.AddCommand(resumeCmd)
	rootCmd.AddCommand(toggleCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(prevCmd)
	rootCmd.AddCommand(restartCmd)
	rootCmd.AddCommand(seekCmd)
	rootCmd.AddCommand(volumeCmd)
	rootCmd.AddCommand(bassBoostCmd)
}

func runPause(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	client := api()

	snap, err := client.State(ctx)
	if err != nil {
		return suggest(err)
	}
	if snap.IsPlaying {
		if snap, err = client.Toggle(ctx); err != nil {
			return suggest(err)
		}
	}

	if JSONOutput() {
		_ = json.NewEncoder(os.Stdout).Encode(map[string]string{"status": "paused"})
	} else {
		fmt.Println("⏸ Paused")
	}
	return nil
}

func runResume(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	client := api()

	snap, err := client.State(ctx)
	if err != nil {
		return suggest(err)
	}
	if !snap.IsPlaying {
		if snap, err = client.Toggle(ctx); err != nil {
			return suggest(err)
		}
	}

	if JSONOutput() {
		_ = json.NewEncoder(os.Stdout).Encode(map[string]string{"status": "playing"})
	} else {
		fmt.Println("▶ Resumed")
	}
	return nil
}

func runToggle(cmd *cobra.Command, args []string) error {
	snap, err := api().Toggle(context.Background())
	if err != nil {
		return suggest(err)
	}

	if JSONOutput() {
		_ = json.NewEncoder(os.Stdout).Encode(map[string]bool{"is_playing": snap.IsPlaying})
	} else if snap.IsPlaying {
		fmt.Println("▶ Playing")
	} else {
		fmt.Println("⏸ Paused")
	}
	return nil
}

func runNext(cmd *cobra.Command, args []string) error {
	snap, err := api().Next(context.Background())
	if err != nil {
		return suggest(err)
	}

	if JSONOutput() {
		_ = json.NewEncoder(os.Stdout).Encode(map[string]string{"status": "skipped"})
	} else if snap.Track != nil {
		fmt.Printf("⏭ %s by %s\n", snap.Track.Title, snap.Track.Artist)
	} else {
		fmt.Println("⏭ Skipped")
	}
	return nil
}

func runPrev(cmd *cobra.Command, args []string) error {
	snap, err := api().Previous(context.Background())
	if err != nil {
		return suggest(err)
	}

	if JSONOutput() {
		_ = json.NewEncoder(os.Stdout).Encode(map[string]string{"status": "previous"})
	} else if snap.Track != nil {
		fmt.Printf("⏮ %s by %s\n", snap.Track.Title, snap.Track.Artist)
	} else {
		fmt.Println("⏮ Previous track")
	}
	return nil
}

func runRestart(cmd *cobra.Command, args []string) error {
	if err := api().Seek(context.Background(), 0); err != nil {
		return suggest(err)
	}

	if JSONOutput() {
		_ = json.NewEncoder(os.Stdout).Encode(map[string]string{"status": "restarted"})
	} else {
		fmt.Println("⏪ Restarted track")
	}
	return nil
}

func runSeek(cmd *cobra.Command, args []string) error {
	percent, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid seek position: %s", args[0])
	}
	if percent < 0 || percent > 100 {
		return fmt.Errorf("seek position must be between 0 and 100")
	}

	if err := api().Seek(context.Background(), percent/100); err != nil {
		return suggest(err)
	}

	if JSONOutput() {
		_ = json.NewEncoder(os.Stdout).Encode(map[string]float64{"position": percent})
	} else {
		fmt.Printf("⏩ Seeked to %.0f%%\n", percent)
	}
	return nil
}

func runVolume(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	client := api()

	snap, err := client.State(ctx)
	if err != nil {
		return suggest(err)
	}
	current := int(snap.Volume * 100)

	// No target: just show the current volume.
	if !volumeUp && !volumeDown && len(args) == 0 {
		if JSONOutput() {
			_ = json.NewEncoder(os.Stdout).Encode(map[string]int{"volume": current})
		} else {
			fmt.Printf("🔊 Volume: %d%%\n", current)
		}
		return nil
	}

	target := current
	switch {
	case volumeUp:
		target = min(current+10, 100)
	case volumeDown:
		target = max(current-10, 0)
	default:
		val, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid volume level: %s", args[0])
		}
		if val < 0 || val > 100 {
			return fmt.Errorf("volume must be between 0 and 100")
		}
		target = val
	}

	if err := client.SetVolume(ctx, float64(target)/100); err != nil {
		return suggest(err)
	}

	if JSONOutput() {
		_ = json.NewEncoder(os.Stdout).Encode(map[string]int{
			"volume":   target,
			"previous": current,
		})
	} else {
		fmt.Printf("🔊 Volume: %d%% (was %d%%)\n", target, current)
	}
	return nil
}

func runBassBoost(cmd *cobra.Command, args []string) error {
	snap, err := api().ToggleBassBoost(context.Background())
	if err != nil {
		return suggest(err)
	}

	if JSONOutput() {
		_ = json.NewEncoder(os.Stdout).Encode(map[string]bool{"bass_boost": snap.BassBoost})
	} else if snap.BassBoost {
		fmt.Println("🔊 Bass boost on")
	} else {
		fmt.Println("🔉 Bass boost off")
	}
	return nil
}
