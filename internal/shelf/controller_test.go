package shelf_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billmal071/bookshelf/internal/books"
	"github.com/billmal071/bookshelf/internal/shelf"
)

// stubClient answers every fetch with the same result or error.
type stubClient struct {
	mu      sync.Mutex
	queries []string
	result  *books.SearchResult
	err     error
}

func (s *stubClient) FetchBooks(_ context.Context, query string) (*books.SearchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries = append(s.queries, query)
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *stubClient) calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.queries...)
}

// gatedClient holds each fetch until its gate is released, ignoring
// cancellation so late responses can be simulated.
type gatedClient struct {
	started chan string
	mu      sync.Mutex
	gates   map[string]chan *books.SearchResult
	ctxs    map[string]context.Context
}

func newGatedClient(queries ...string) *gatedClient {
	g := &gatedClient{
		started: make(chan string, len(queries)),
		gates:   make(map[string]chan *books.SearchResult),
		ctxs:    make(map[string]context.Context),
	}
	for _, q := range queries {
		g.gates[q] = make(chan *books.SearchResult, 1)
	}
	return g
}

func (g *gatedClient) FetchBooks(ctx context.Context, query string) (*books.SearchResult, error) {
	g.mu.Lock()
	gate := g.gates[query]
	g.ctxs[query] = ctx
	g.mu.Unlock()

	g.started <- query
	return <-gate, nil
}

func (g *gatedClient) release(query string, res *books.SearchResult) {
	g.gates[query] <- res
}

func (g *gatedClient) ctx(query string) context.Context {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.ctxs[query]
}

func titled(titles ...string) []books.Book {
	out := make([]books.Book, len(titles))
	for i, title := range titles {
		out[i] = books.Book{ID: fmt.Sprintf("id-%d", i), Title: title}
	}
	return out
}

func titlesOf(items []books.Book) []string {
	out := make([]string, len(items))
	for i, b := range items {
		out[i] = b.Title
	}
	return out
}

func fortyBooks() []books.Book {
	titles := make([]string, 40)
	for i := range titles {
		// Interleave so API order is not already sorted
		titles[i] = fmt.Sprintf("Jazz Volume %02d", (i*7)%40)
	}
	return titled(titles...)
}

func TestNewController_StartsLoading(t *testing.T) {
	t.Parallel()

	c := shelf.NewController(&stubClient{}, shelf.WithQuery("  jazz   history "))
	s := c.State()

	assert.Equal(t, shelf.StatusLoading, s.Status)
	assert.Equal(t, "jazz history", s.Query)
	assert.True(t, s.Loading())
}

func TestController_LoadScenario(t *testing.T) {
	t.Parallel()

	items := fortyBooks()
	client := &stubClient{result: &books.SearchResult{TotalItems: 389, Items: items}}
	c := shelf.NewController(client)

	s := c.Load(context.Background(), "jazz history")
	require.True(t, s.Success())
	assert.Equal(t, 389, s.TotalItems)
	assert.Len(t, s.Items, 40)
	assert.LessOrEqual(t, len(s.Items), s.TotalItems)
	assert.False(t, s.SortAscending)
	assert.Equal(t, titlesOf(items), titlesOf(s.Items), "API order is kept")
	assert.Equal(t, []string{"jazz history"}, client.calls())

	asc := c.Sort()
	assert.True(t, asc.SortAscending)
	assert.True(t, sort.StringsAreSorted(titlesOf(asc.Items)))
	assert.Equal(t, 389, asc.TotalItems)

	desc := c.Sort()
	assert.False(t, desc.SortAscending)
	ascTitles := titlesOf(asc.Items)
	descTitles := titlesOf(desc.Items)
	for i := range ascTitles {
		assert.Equal(t, ascTitles[i], descTitles[len(descTitles)-1-i])
	}

	again := c.Sort()
	assert.True(t, again.SortAscending)
	assert.Equal(t, asc.Items, again.Items)
}

func TestController_SortTiesAreStable(t *testing.T) {
	t.Parallel()

	items := []books.Book{
		{ID: "b1", Title: "Blues"},
		{ID: "a1", Title: "Alpha"},
		{ID: "b2", Title: "Blues"},
		{ID: "a2", Title: "Alpha"},
	}
	c := shelf.NewController(&stubClient{result: &books.SearchResult{TotalItems: 4, Items: items}})
	c.Load(context.Background(), "ties")

	asc := c.Sort()
	assert.Equal(t, []string{"a1", "a2", "b1", "b2"}, idsOf(asc.Items))

	desc := c.Sort()
	assert.Equal(t, []string{"b2", "b1", "a2", "a1"}, idsOf(desc.Items))

	assert.Equal(t, asc.Items, c.Sort().Items)
}

func TestController_SortIsCaseSensitive(t *testing.T) {
	t.Parallel()

	c := shelf.NewController(&stubClient{result: &books.SearchResult{
		TotalItems: 3, Items: titled("apple", "Banana", "Apple"),
	}})
	c.Load(context.Background(), "fruit")

	assert.Equal(t, []string{"Apple", "Banana", "apple"}, titlesOf(c.Sort().Items))
}

func TestController_SortDoesNotMutatePublishedSnapshot(t *testing.T) {
	t.Parallel()

	c := shelf.NewController(&stubClient{result: &books.SearchResult{
		TotalItems: 3, Items: titled("C", "A", "B"),
	}})
	loaded := c.Load(context.Background(), "letters")
	c.Sort()

	assert.Equal(t, []string{"C", "A", "B"}, titlesOf(loaded.Items))
}

func idsOf(items []books.Book) []string {
	out := make([]string, len(items))
	for i, b := range items {
		out[i] = b.ID
	}
	return out
}

func TestController_SortNoOpOutsideSuccess(t *testing.T) {
	t.Parallel()

	c := shelf.NewController(&stubClient{err: &books.HTTPError{StatusCode: 500}})
	loading := c.State()
	assert.Equal(t, loading, c.Sort())

	failed := c.Load(context.Background(), "jazz")
	require.True(t, failed.Failed())
	assert.Equal(t, failed, c.Sort())
}

func TestController_EmptyResultIsSuccess(t *testing.T) {
	t.Parallel()

	c := shelf.NewController(&stubClient{result: &books.SearchResult{TotalItems: 0, Items: []books.Book{}}})
	s := c.Load(context.Background(), "xyzzynonexistentquery")

	assert.Equal(t, shelf.StatusSuccess, s.Status)
	assert.Equal(t, 0, s.TotalItems)
	assert.Empty(t, s.Items)
	assert.NoError(t, s.Err)
}

func TestController_FailuresCollapseToError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
	}{
		{name: "transport", err: &books.TransportError{Err: errors.New("dial tcp: no such host")}},
		{name: "http", err: &books.HTTPError{StatusCode: 503}},
		{name: "decode", err: &books.DecodeError{Err: errors.New("unexpected EOF")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := shelf.NewController(&stubClient{err: tt.err})
			s := c.Load(context.Background(), "jazz")

			assert.Equal(t, shelf.StatusError, s.Status)
			assert.ErrorIs(t, s.Err, tt.err)
			assert.Empty(t, s.Items)
			assert.Equal(t, "jazz", s.Query)
		})
	}
}

func TestController_RetryReissuesLastQuery(t *testing.T) {
	t.Parallel()

	client := &stubClient{err: &books.TransportError{Err: errors.New("network unreachable")}}
	c := shelf.NewController(client)

	require.True(t, c.Load(context.Background(), "jazz history").Failed())

	client.mu.Lock()
	client.err = nil
	client.result = &books.SearchResult{TotalItems: 1, Items: titled("Kind of Blue")}
	client.mu.Unlock()

	s := c.Retry(context.Background())
	assert.True(t, s.Success())
	assert.Equal(t, []string{"jazz history", "jazz history"}, client.calls())
}

func TestController_RetryUsesInitialQuery(t *testing.T) {
	t.Parallel()

	client := &stubClient{result: &books.SearchResult{}}
	c := shelf.NewController(client, shelf.WithQuery("jazz+history"))

	c.Retry(context.Background())
	assert.Equal(t, []string{"jazz history"}, client.calls())
}

func TestController_Search(t *testing.T) {
	t.Parallel()

	client := &stubClient{result: &books.SearchResult{TotalItems: 1, Items: titled("Bebop")}}
	c := shelf.NewController(client)
	c.Load(context.Background(), "jazz")
	c.OpenSearch()
	require.True(t, c.State().SearchOpen)

	s, err := c.Search(context.Background(), "  modern   jazz+piano ")
	require.NoError(t, err)
	assert.True(t, s.Success())
	assert.False(t, s.SearchOpen)
	assert.Equal(t, "modern jazz piano", s.Query)
	assert.Equal(t, []string{"jazz", "modern jazz piano"}, client.calls())
}

func TestController_SearchBlankDoesNotFetch(t *testing.T) {
	t.Parallel()

	for _, q := range []string{"", "   ", "\t\n", " \u00a0 "} {
		client := &stubClient{result: &books.SearchResult{}}
		c := shelf.NewController(client)
		before := c.State()

		s, err := c.Search(context.Background(), q)
		require.ErrorIs(t, err, books.ErrEmptyQuery, "query %q", q)
		assert.Equal(t, before, s)
		assert.Empty(t, client.calls())

		assert.Equal(t, before, c.Load(context.Background(), q))
		assert.Empty(t, client.calls())
	}
}

func TestController_SearchInput(t *testing.T) {
	t.Parallel()

	c := shelf.NewController(&stubClient{result: &books.SearchResult{TotalItems: 1, Items: titled("A")}})

	assert.False(t, c.OpenSearch().SearchOpen, "not while loading")

	c.Load(context.Background(), "jazz")
	assert.True(t, c.OpenSearch().SearchOpen)

	sorted := c.Sort()
	assert.True(t, sorted.SearchOpen, "sorting keeps the input open")

	assert.False(t, c.CancelSearch().SearchOpen)
}

func TestController_LastRequestWins(t *testing.T) {
	t.Parallel()

	client := newGatedClient("first", "second")
	c := shelf.NewController(client)

	var wg sync.WaitGroup
	results := make(chan shelf.State, 2)

	wg.Add(1)
	go func() {
		defer wg.Done()
		results <- c.Load(context.Background(), "first")
	}()
	require.Equal(t, "first", <-client.started)
	firstSeq := c.State().Seq

	wg.Add(1)
	go func() {
		defer wg.Done()
		results <- c.Load(context.Background(), "second")
	}()
	require.Equal(t, "second", <-client.started)
	assert.Greater(t, c.State().Seq, firstSeq)

	// Superseded fetch is cancelled
	select {
	case <-client.ctx("first").Done():
	case <-time.After(time.Second):
		t.Fatal("first fetch was not cancelled")
	}

	client.release("second", &books.SearchResult{TotalItems: 2, Items: titled("Second A", "Second B")})
	client.release("first", &books.SearchResult{TotalItems: 1, Items: titled("First")})
	wg.Wait()
	close(results)

	for s := range results {
		assert.Equal(t, "second", s.Query)
	}

	final := c.State()
	assert.True(t, final.Success())
	assert.Equal(t, "second", final.Query)
	assert.Equal(t, []string{"Second A", "Second B"}, titlesOf(final.Items))
}

func TestController_StaleResponseArrivingLastIsDiscarded(t *testing.T) {
	t.Parallel()

	client := newGatedClient("first", "second")
	c := shelf.NewController(client)

	firstDone := make(chan shelf.State, 1)
	go func() { firstDone <- c.Load(context.Background(), "first") }()
	<-client.started

	secondDone := make(chan shelf.State, 1)
	go func() { secondDone <- c.Load(context.Background(), "second") }()
	<-client.started

	client.release("second", &books.SearchResult{TotalItems: 5, Items: titled("S")})
	second := <-secondDone
	require.True(t, second.Success())

	client.release("first", &books.SearchResult{TotalItems: 9, Items: titled("F")})
	<-firstDone

	assert.Equal(t, second, c.State())
}

func TestController_Subscribe(t *testing.T) {
	t.Parallel()

	c := shelf.NewController(&stubClient{result: &books.SearchResult{TotalItems: 1, Items: titled("A")}})
	updates, unsubscribe := c.Subscribe()
	defer unsubscribe()

	initial := <-updates
	assert.True(t, initial.Loading())

	final := c.Load(context.Background(), "jazz")

	// Loading then Success were published; a slow reader sees the latest
	latest := <-updates
	assert.Equal(t, final, latest)

	sorted := c.Sort()
	assert.Equal(t, sorted, <-updates)
}

func TestController_Unsubscribe(t *testing.T) {
	t.Parallel()

	c := shelf.NewController(&stubClient{result: &books.SearchResult{}})
	updates, unsubscribe := c.Subscribe()
	<-updates

	unsubscribe()
	unsubscribe()

	_, ok := <-updates
	assert.False(t, ok)

	c.Load(context.Background(), "jazz")
}

func TestController_Close(t *testing.T) {
	t.Parallel()

	client := newGatedClient("jazz")
	c := shelf.NewController(client)
	updates, _ := c.Subscribe()
	<-updates

	done := make(chan shelf.State, 1)
	go func() { done <- c.Load(context.Background(), "jazz") }()
	<-client.started

	c.Close()
	c.Close()

	select {
	case <-client.ctx("jazz").Done():
	case <-time.After(time.Second):
		t.Fatal("in-flight fetch was not cancelled")
	}

	client.release("jazz", &books.SearchResult{TotalItems: 1, Items: titled("Late")})
	s := <-done
	assert.True(t, s.Loading(), "responses after Close are dropped")

	for range updates {
	}

	closed, _ := c.Subscribe()
	_, ok := <-closed
	assert.False(t, ok)
}
