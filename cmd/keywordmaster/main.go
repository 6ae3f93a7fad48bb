// Keywordmaster generates YouTube tags for a video topic with a hosted
// language model.
//
// It offers an interactive terminal UI, one-shot commands for scripting and a
// small web front end. Generated tags are classified into broad, standard and
// long-tail keywords, and can be copied to the clipboard or exported as CSV.
//
// Usage:
//
//	keywordmaster [command] [flags]
//
// Running without arguments launches the interactive UI.
// See 'keywordmaster --help' for available commands.
//
// The API key is read from GEMINI_API_KEY (or API_KEY) for the gemini
// provider and from OPENAI_API_KEY for the openai provider. Keys are never
// written to the configuration file.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/keywordmaster/keywordmaster/internal/logging"
	"github.com/keywordmaster/keywordmaster/internal/version"
)

func main() {
	err := rootCmd.Execute()
	logging.Sync()
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "keywordmaster",
	Short: "Keyword Master - YouTube tag generator",
	Long: `Generate high-traffic, SEO-optimized keywords for YouTube videos.

Enter a video topic and Keyword Master asks a hosted AI model for 100 tags,
classifies them into broad, standard and long-tail keywords and lets you
prune, copy and export the list.

If no command is specified, the interactive UI will launch automatically.`,
	Version:           version.Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runInteractive,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "keywordmaster %s\n", version.Full())
	},
}
