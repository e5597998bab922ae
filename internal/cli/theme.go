package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/codgamerofficial/sonicstream/internal/core"
)

var themeNext bool

var themeCmd = &cobra.Command{
	Use:   "theme [name]",
	Short: "Show or set the accent theme",
	Long: `Show the active accent theme, set it by name, or cycle to the
next one.

Available themes: violet, cyan, rose, amber, emerald.

Examples:
  sonic theme          # Show the active theme
  sonic theme rose     # Switch to rose
  sonic theme --next   # Cycle to the next theme`,
	RunE: runTheme,
}

func init() {
	themeCmd.Flags().BoolVar(&themeNext, "next", false, "Cycle to the next theme")
	rootCmd.AddCommand(themeCmd)
}

func runTheme(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	client := api()

	current, err := client.Theme(ctx)
	if err != nil {
		return suggest(err)
	}

	target := current
	switch {
	case themeNext:
		target = current.Next()
	case len(args) > 0:
		target, err = core.ParseTheme(args[0])
		if err != nil {
			return err
		}
	default:
		// Show only.
		if JSONOutput() {
			return json.NewEncoder(os.Stdout).Encode(map[string]core.Theme{"theme": current})
		}
		fmt.Printf("🎨 Theme: %s\n", current)
		return nil
	}

	if err := client.SetTheme(ctx, target); err != nil {
		return suggest(err)
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(map[string]core.Theme{"theme": target})
	}
	fmt.Printf("🎨 Theme: %s (was %s)\n", target, current)
	return nil
}
