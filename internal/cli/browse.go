package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/billmal071/bookshelf/internal/books"
	"github.com/billmal071/bookshelf/internal/config"
	"github.com/billmal071/bookshelf/internal/logger"
	"github.com/billmal071/bookshelf/internal/shelf"
	"github.com/billmal071/bookshelf/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse [query]",
	Short: "Browse search results interactively",
	Long: `Open the interactive browser for a query.

Keys in the grid:
  arrows/hjkl  move between books
  enter        show book details
  s            toggle sort by title
  /            search
  r            try again after an error
  q            quit

When stdout is not a terminal the results are printed as a table instead.`,
	Args: cobra.ArbitraryArgs,
	RunE: runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	query := shelf.NormalizeQuery(strings.Join(args, " "))
	if query == "" {
		query = shelf.NormalizeQuery(cfg.API.DefaultQuery)
	}
	if query == "" {
		return fmt.Errorf("no query given and api.default_query is empty")
	}

	if !isTerminal(os.Stdout) {
		Printf("stdout is not a terminal, printing results\n")
		return searchAndPrint(cmd, query, sortNone, outputTable)
	}

	log, closeLog, err := browserLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	ctrl := shelf.NewController(books.NewClient(), shelf.WithLogger(log), shelf.WithQuery(query))
	defer ctrl.Close()

	log.Info("starting browser", "query", query)
	return tui.Run(cmd.Context(), ctrl, query)
}

// browserLogger logs to log.file while the terminal belongs to the browser.
// Records are dropped when no file is configured.
func browserLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}

	log, closeFile, err := logger.NewFile(cfg.Log.File, level, cfg.Log.Format)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return log, func() { _ = closeFile() }, nil
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
