// Package books is a client for the Google Books volume search API.
package books

import "context"

// Book represents a volume returned by a search
type Book struct {
	ID            string   `json:"id" yaml:"id"`
	Title         string   `json:"title" yaml:"title"`
	Authors       []string `json:"authors,omitempty" yaml:"authors,omitempty"`
	Publisher     string   `json:"publisher,omitempty" yaml:"publisher,omitempty"`
	PublishedDate string   `json:"published_date,omitempty" yaml:"published_date,omitempty"`
	Description   string   `json:"description,omitempty" yaml:"description,omitempty"`
	ThumbnailURL  string   `json:"thumbnail_url,omitempty" yaml:"thumbnail_url,omitempty"`
	Categories    []string `json:"categories,omitempty" yaml:"categories,omitempty"`
}

// SearchResult contains one page of search results
type SearchResult struct {
	TotalItems int    `json:"total_items" yaml:"total_items"`
	Items      []Book `json:"items" yaml:"items"`
}

// Client defines the interface for book search access
type Client interface {
	// FetchBooks issues a single search for query
	FetchBooks(ctx context.Context, query string) (*SearchResult, error)
}
