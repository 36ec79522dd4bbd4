package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/billmal071/bookshelf/internal/books"
	"github.com/billmal071/bookshelf/internal/shelf"
)

const (
	sortNone = "none"
	sortAsc  = "asc"
	sortDesc = "desc"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search for books and print the results",
	Long: `Search Google Books and print one page of results.

Results keep the API order unless --sort is given. Descending order is the
exact reverse of ascending order.

Examples:
  bookshelf search "jazz history"
  bookshelf search -s asc "bebop"
  bookshelf search -o yaml "free jazz"
  bookshelf search -o json "miles davis" | jq '.items[].title'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringP("sort", "s", sortNone, "sort by title (none, asc, desc)")
	searchCmd.Flags().StringP("output", "o", outputTable, "output format (table, json, yaml)")

	_ = searchCmd.RegisterFlagCompletionFunc("sort", fixedCompletions(
		"none\tkeep API order", "asc\ttitle A to Z", "desc\ttitle Z to A"))
	_ = searchCmd.RegisterFlagCompletionFunc("output", fixedCompletions(
		"table\taligned columns", "json\tindented JSON", "yaml\tYAML document"))
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := shelf.NormalizeQuery(strings.Join(args, " "))
	if query == "" {
		return fmt.Errorf("search failed: %w", books.ErrEmptyQuery)
	}

	return searchAndPrint(cmd, query, getString(cmd, "sort"), getString(cmd, "output"))
}

// searchAndPrint runs a single fetch through the controller and prints it
func searchAndPrint(cmd *cobra.Command, query, sortMode, format string) error {
	if err := validateSort(sortMode); err != nil {
		return err
	}
	if err := validateOutput(format); err != nil {
		return err
	}

	log := newLogger(cmd.ErrOrStderr())
	ctrl := shelf.NewController(books.NewClient(), shelf.WithLogger(log))
	defer ctrl.Close()

	Printf("Searching for: %s\n", query)

	state := withSpinner(cmd.Context(), "Searching "+query, func(ctx context.Context) shelf.State {
		return ctrl.Load(ctx, query)
	})
	if state.Failed() {
		return fmt.Errorf("search failed: %w", state.Err)
	}

	switch sortMode {
	case sortAsc:
		state = ctrl.Sort()
	case sortDesc:
		ctrl.Sort()
		state = ctrl.Sort()
	}

	Printf("Found %d of %d result(s)\n", len(state.Items), state.TotalItems)
	return writeResult(cmd.OutOrStdout(), format, state)
}

// withSpinner shows an indeterminate spinner on stderr while fn runs.
// Nothing is drawn when stderr is not a terminal.
func withSpinner(ctx context.Context, description string, fn func(context.Context) shelf.State) shelf.State {
	if !isTerminal(os.Stderr) {
		return fn(ctx)
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				_ = bar.Add(1)
			}
		}
	}()

	state := fn(ctx)
	close(done)
	_ = bar.Finish()
	return state
}

func validateSort(mode string) error {
	switch mode {
	case sortNone, sortAsc, sortDesc:
		return nil
	default:
		return fmt.Errorf("invalid sort: %s (use none, asc, or desc)", mode)
	}
}

// getString safely gets a string flag value
func getString(cmd *cobra.Command, name string) string {
	val, _ := cmd.Flags().GetString(name)
	return val
}
