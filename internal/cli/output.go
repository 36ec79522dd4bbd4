package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/billmal071/bookshelf/internal/books"
	"github.com/billmal071/bookshelf/internal/shelf"
)

const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

// searchOutput is the machine-readable form of a Success snapshot
type searchOutput struct {
	Query      string       `json:"query" yaml:"query"`
	TotalItems int          `json:"total_items" yaml:"total_items"`
	Shown      int          `json:"shown" yaml:"shown"`
	Items      []books.Book `json:"items" yaml:"items"`
}

func validateOutput(format string) error {
	switch format {
	case outputTable, outputJSON, outputYAML:
		return nil
	default:
		return fmt.Errorf("invalid output: %s (use table, json, or yaml)", format)
	}
}

// writeResult prints a Success snapshot in the requested format
func writeResult(w io.Writer, format string, s shelf.State) error {
	out := searchOutput{
		Query:      s.Query,
		TotalItems: s.TotalItems,
		Shown:      len(s.Items),
		Items:      s.Items,
	}
	if out.Items == nil {
		out.Items = []books.Book{}
	}

	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return err
		}
		return enc.Close()
	default:
		return writeTable(w, out)
	}
}

func writeTable(w io.Writer, out searchOutput) error {
	fmt.Fprintf(w, "%q  Total Item %d shows %d\n", out.Query, out.TotalItems, out.Shown)
	if len(out.Items) == 0 {
		fmt.Fprintln(w, "No books found matching your query.")
		return nil
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tTITLE\tAUTHORS\tPUBLISHED")
	for i, b := range out.Items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n",
			i+1,
			truncateTitle(orDash(b.Title), 50),
			truncateTitle(orDash(strings.Join(b.Authors, ", ")), 30),
			orDash(b.PublishedDate),
		)
	}
	return tw.Flush()
}

// truncateTitle truncates a title to the specified length
func truncateTitle(title string, maxLen int) string {
	r := []rune(title)
	if len(r) <= maxLen {
		return title
	}
	return string(r[:maxLen-3]) + "..."
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
