package shelf

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/billmal071/bookshelf/internal/books"
	"github.com/billmal071/bookshelf/internal/logger"
)

// Controller owns the fetch lifecycle and the current State. Every
// operation replaces the snapshot wholesale and notifies subscribers.
//
// Each Load is tagged with a sequence number; a response is applied only if
// no newer Load has started since, so the last request issued wins.
type Controller struct {
	client books.Client
	logger *slog.Logger

	mu      sync.Mutex
	state   State
	fetched []books.Book // API order for the current Success
	seq     uint64
	cancel  context.CancelFunc
	subs    map[chan State]struct{}
	closed  bool
}

// Option configures the Controller.
type Option func(*Controller)

// WithLogger sets the logger used for fetch events.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithQuery sets the query Retry uses before any Load.
func WithQuery(q string) Option {
	return func(c *Controller) {
		c.state.Query = NormalizeQuery(q)
	}
}

// NewController creates a controller in the Loading state. It does not
// fetch until Load is called.
func NewController(client books.Client, opts ...Option) *Controller {
	c := &Controller{
		client: client,
		logger: logger.Discard(),
		state:  State{Status: StatusLoading},
		subs:   make(map[chan State]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current snapshot
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Load switches to Loading and fetches query. It blocks until the fetch
// resolves and returns the snapshot current at that point, which belongs to
// a newer Load if this one was superseded. A blank query is ignored.
func (c *Controller) Load(ctx context.Context, query string) State {
	query = NormalizeQuery(query)

	c.mu.Lock()
	if c.closed || query == "" {
		s := c.state
		c.mu.Unlock()
		return s
	}
	// The superseded fetch can no longer become visible
	if c.cancel != nil {
		c.cancel()
	}
	c.seq++
	seq := c.seq
	fetchCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.fetched = nil
	c.publish(State{Status: StatusLoading, Query: query, Seq: seq})
	c.mu.Unlock()
	defer cancel()

	c.logger.Debug("fetching books", "query", query, "seq", seq)
	res, err := c.client.FetchBooks(fetchCtx, query)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || seq != c.seq {
		c.logger.Debug("discarding stale response", "query", query, "seq", seq, "current", c.seq)
		return c.state
	}
	c.cancel = nil

	if err != nil {
		c.logger.Warn("fetch failed", "query", query, "seq", seq, "error", err)
		c.publish(State{Status: StatusError, Query: query, Seq: seq, Err: err})
		return c.state
	}

	c.logger.Debug("fetch finished", "query", query, "seq", seq,
		"total", res.TotalItems, "items", len(res.Items))
	c.fetched = res.Items
	c.publish(State{
		Status:     StatusSuccess,
		Query:      query,
		Seq:        seq,
		TotalItems: res.TotalItems,
		Items:      res.Items,
	})
	return c.state
}

// Sort re-sorts a Success snapshot by title, ascending when the previous
// order was descending or unsorted and descending otherwise. It is a no-op
// in any other state.
func (c *Controller) Sort() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Status != StatusSuccess {
		return c.state
	}

	next := c.state
	next.SortAscending = !c.state.SortAscending
	next.Items = sortByTitle(c.fetched, next.SortAscending)
	c.publish(next)
	return next
}

// Search normalizes raw, closes the search input and loads the result.
// A blank query returns books.ErrEmptyQuery and does not fetch.
func (c *Controller) Search(ctx context.Context, raw string) (State, error) {
	query := NormalizeQuery(raw)
	if query == "" {
		return c.State(), books.ErrEmptyQuery
	}
	return c.Load(ctx, query), nil
}

// Retry re-issues the last query.
func (c *Controller) Retry(ctx context.Context) State {
	c.mu.Lock()
	query := c.state.Query
	c.mu.Unlock()
	return c.Load(ctx, query)
}

// OpenSearch shows the search input over a Success or Error snapshot.
func (c *Controller) OpenSearch() State {
	return c.setSearchOpen(true)
}

// CancelSearch hides the search input without searching.
func (c *Controller) CancelSearch() State {
	return c.setSearchOpen(false)
}

func (c *Controller) setSearchOpen(open bool) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Status == StatusLoading || c.state.SearchOpen == open {
		return c.state
	}
	next := c.state
	next.SearchOpen = open
	c.publish(next)
	return next
}

// Subscribe returns a channel that receives the current snapshot and every
// later one. The channel keeps only the latest snapshot when the reader
// falls behind. Call the returned func to unsubscribe.
func (c *Controller) Subscribe() (<-chan State, func()) {
	ch := make(chan State, 1)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		close(ch)
		return ch, func() {}
	}
	c.subs[ch] = struct{}{}
	ch <- c.state

	return ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if _, ok := c.subs[ch]; ok {
			delete(c.subs, ch)
			close(ch)
		}
	}
}

// Close cancels any in-flight fetch and closes every subscription.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	for ch := range c.subs {
		close(ch)
	}
	c.subs = nil
}

// publish must be called with mu held.
func (c *Controller) publish(s State) {
	c.state = s
	for ch := range c.subs {
		select {
		case ch <- s:
		default:
			// Drop the unread snapshot so the newest one fits
			select {
			case <-ch:
			default:
			}
			ch <- s
		}
	}
}

// sortByTitle returns a sorted copy of items. Descending is the exact
// reverse of the stable ascending order.
func sortByTitle(items []books.Book, ascending bool) []books.Book {
	sorted := make([]books.Book, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Title < sorted[j].Title
	})
	if !ascending {
		for i, j := 0, len(sorted)-1; i < j; i, j = i+1, j-1 {
			sorted[i], sorted[j] = sorted[j], sorted[i]
		}
	}
	return sorted
}
