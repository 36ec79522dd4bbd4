package books

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/billmal071/bookshelf/internal/config"
)

const (
	// DefaultMaxResults is the largest page the volumes endpoint serves
	DefaultMaxResults = 40

	// fieldsProjection limits the response to what Book needs
	fieldsProjection = "totalItems,items(id,volumeInfo/title,volumeInfo/authors,volumeInfo/publisher," +
		"volumeInfo/publishedDate,volumeInfo/description,volumeInfo/categories,volumeInfo/imageLinks/thumbnail)"

	// maxErrorBody caps how much of a failed response is kept
	maxErrorBody = 512
)

// APIClient queries the Google Books volumes endpoint
type APIClient struct {
	baseURL    string
	maxResults int
	userAgent  string
	http       *http.Client
}

// Option configures the APIClient.
type Option func(*APIClient)

// WithBaseURL overrides the default API root (e.g. for tests).
func WithBaseURL(u string) Option {
	return func(c *APIClient) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *APIClient) {
		c.http = hc
	}
}

// WithMaxResults sets the page size sent as maxResults.
func WithMaxResults(n int) Option {
	return func(c *APIClient) {
		if n > 0 && n <= DefaultMaxResults {
			c.maxResults = n
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *APIClient) {
		c.userAgent = ua
	}
}

// NewAPIClient creates a new API client
func NewAPIClient(opts ...Option) *APIClient {
	c := &APIClient{
		baseURL:    config.DefaultBaseURL,
		maxResults: DefaultMaxResults,
		http:       &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type volumesResponse struct {
	TotalItems int      `json:"totalItems"`
	Items      []volume `json:"items"`
}

type volume struct {
	ID         string     `json:"id"`
	VolumeInfo volumeInfo `json:"volumeInfo"`
}

type volumeInfo struct {
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	Publisher     string   `json:"publisher"`
	PublishedDate string   `json:"publishedDate"`
	Description   string   `json:"description"`
	Categories    []string `json:"categories"`
	ImageLinks    *struct {
		Thumbnail string `json:"thumbnail"`
	} `json:"imageLinks"`
}

// FetchBooks searches volumes matching query
func (c *APIClient) FetchBooks(ctx context.Context, query string) (*SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL(query), http.NoBody)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	var apiResp volumesResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, &DecodeError{Err: err}
	}

	return c.toResult(apiResp), nil
}

func (c *APIClient) searchURL(query string) string {
	params := url.Values{}
	params.Set("q", query)
	params.Set("maxResults", strconv.Itoa(c.maxResults))
	params.Set("fields", fieldsProjection)
	return c.baseURL + "/volumes?" + params.Encode()
}

func (c *APIClient) toResult(apiResp volumesResponse) *SearchResult {
	items := apiResp.Items
	if len(items) > c.maxResults {
		items = items[:c.maxResults]
	}

	result := &SearchResult{
		TotalItems: apiResp.TotalItems,
		Items:      make([]Book, 0, len(items)),
	}
	for _, v := range items {
		result.Items = append(result.Items, v.toBook())
	}
	// The API occasionally reports fewer total items than it returns
	if result.TotalItems < len(result.Items) {
		result.TotalItems = len(result.Items)
	}
	return result
}

func (v volume) toBook() Book {
	b := Book{
		ID:            v.ID,
		Title:         v.VolumeInfo.Title,
		Authors:       v.VolumeInfo.Authors,
		Publisher:     v.VolumeInfo.Publisher,
		PublishedDate: v.VolumeInfo.PublishedDate,
		Description:   v.VolumeInfo.Description,
		Categories:    v.VolumeInfo.Categories,
	}
	if v.VolumeInfo.ImageLinks != nil {
		b.ThumbnailURL = v.VolumeInfo.ImageLinks.Thumbnail
	}
	return b
}
