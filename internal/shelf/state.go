// Package shelf holds the view state of the book browser: the fetch
// lifecycle, sorting, and search, published as immutable snapshots.
package shelf

import "github.com/billmal071/bookshelf/internal/books"

// Status identifies which variant of State is active
type Status int

const (
	StatusLoading Status = iota
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// State is a snapshot of the controller. A published State is never
// modified; callers must not modify Items either.
type State struct {
	Status Status
	// Query is the normalized query the snapshot belongs to
	Query string
	// Seq is the sequence number of the fetch that produced the snapshot
	Seq uint64

	// Success only
	TotalItems    int
	Items         []books.Book
	SortAscending bool

	// SearchOpen reports whether the search input is showing
	SearchOpen bool

	// Err keeps the failure cause of an Error snapshot for logging.
	// Presentation renders a single generic message regardless.
	Err error
}

// Loading reports whether a fetch is pending
func (s State) Loading() bool { return s.Status == StatusLoading }

// Success reports whether the snapshot holds results
func (s State) Success() bool { return s.Status == StatusSuccess }

// Failed reports whether the last fetch failed
func (s State) Failed() bool { return s.Status == StatusError }
