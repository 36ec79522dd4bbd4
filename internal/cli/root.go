package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/billmal071/bookshelf/internal/config"
	"github.com/billmal071/bookshelf/internal/logger"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "bookshelf [query]",
	Short: "Browse Google Books from the terminal",
	Long: `bookshelf searches the Google Books catalogue and shows the results as a
browsable grid of cards with a detail screen per book.

Without a query the configured api.default_query is shown.

Examples:
  bookshelf                               Browse the default query
  bookshelf "miles davis"                 Browse a query
  bookshelf search -s asc "bebop"         Print results sorted by title
  bookshelf search -o json "free jazz"    Print results as JSON`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load .env file if present (ignore errors)
		_ = godotenv.Load()

		if err := config.Init(cfgFile); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		return nil
	},
	RunE: runBrowse,
}

// RootCmd returns the root command with every subcommand attached
func RootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.config/bookshelf/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(completionCmd)
}

// newLogger builds the command logger from config. Verbose forces debug.
func newLogger(w io.Writer) *slog.Logger {
	cfg := config.Get()
	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	return logger.NewWithWriter(w, level, cfg.Log.Format)
}

// Printf prints if verbose mode is enabled
func Printf(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

// Successf prints a success message
func Successf(format string, args ...interface{}) {
	fmt.Printf("✓ "+format+"\n", args...)
}
