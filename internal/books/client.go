package books

import (
	"net/http"

	"github.com/billmal071/bookshelf/internal/config"
)

// NewClient creates a client from the current configuration
func NewClient() Client {
	cfg := config.Get()

	opts := []Option{
		WithBaseURL(cfg.API.BaseURL),
		WithMaxResults(cfg.API.MaxResults),
		WithUserAgent(cfg.Network.UserAgent),
	}
	if cfg.Network.Timeout > 0 {
		opts = append(opts, WithHTTPClient(&http.Client{Timeout: cfg.Network.Timeout}))
	}

	return NewAPIClient(opts...)
}
