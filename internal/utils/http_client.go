package utils

import "github.com/go-resty/resty/v2"

// HTTPClient embeds *resty.Client so callers get the full resty surface
// while the constructor stays the single place to hang shared defaults.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns an independent client with its own connection pool.
func NewHTTPClient() *HTTPClient {
	return &HTTPClient{Client: resty.New()}
}
