package books

import (
	"errors"
	"fmt"
)

// ErrEmptyQuery is returned when a search is attempted with a blank query
var ErrEmptyQuery = errors.New("empty search query")

// TransportError indicates the request never produced a response:
// no connectivity, DNS failure, timeout or cancellation.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("executing search request: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// HTTPError indicates the server answered with a non-2xx status
type HTTPError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("books API error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("books API error (status %d): %s", e.StatusCode, e.Body)
}

// DecodeError indicates a 2xx response whose body could not be parsed
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("parsing search response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
