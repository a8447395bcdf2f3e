package fetch

import (
	"context"
	"net/http"
)

// Client issues requests built from Options and shapes their outcomes
// into Results.
//
// Create a Client using New():
//
//	client := fetch.New(
//	    fetch.WithBaseURL("https://api.example.com"),
//	    fetch.WithServiceName("inventory-client"),
//	)
//
//	res := client.Get(ctx, "/items", &fetch.Options{
//	    Query: url.Values{"page": {"1"}},
//	})
type Client struct {
	// httpClient is the underlying HTTP client with the instrumented
	// transport.
	httpClient *http.Client

	// config holds all client configuration.
	config *internalConfig
}

// New creates a Client. The transport is built from the Config (or taken
// from WithTransport) and wrapped with OpenTelemetry instrumentation.
func New(opts ...Option) *Client {
	cfg := newConfig(opts...)

	base := http.RoundTripper(cfg.Transport)
	if base == nil {
		base = cfg.buildTransport()
	}

	return &Client{
		httpClient: &http.Client{
			Transport: newOtelTransport(base, cfg),
			Timeout:   cfg.httpConfig.Timeout,
		},
		config: cfg,
	}
}

// HTTP returns the underlying *http.Client for advanced use: passing it to
// libraries that expect one, or issuing requests outside the Result shape.
func (c *Client) HTTP() *http.Client {
	return c.httpClient
}

// DefaultClient backs the package-level entry points. It uses
// DefaultConfig and no base URL.
var DefaultClient = New()

// Do issues a request with the DefaultClient. See Client.Do.
func Do(ctx context.Context, url string, opts *Options) *Result {
	return DefaultClient.Do(ctx, url, opts)
}

// Get issues a GET request with the DefaultClient.
func Get(ctx context.Context, url string, opts *Options) *Result {
	return DefaultClient.Get(ctx, url, opts)
}

// Post issues a POST request with the DefaultClient.
func Post(ctx context.Context, url string, opts *Options) *Result {
	return DefaultClient.Post(ctx, url, opts)
}

// Put issues a PUT request with the DefaultClient.
func Put(ctx context.Context, url string, opts *Options) *Result {
	return DefaultClient.Put(ctx, url, opts)
}

// Delete issues a DELETE request with the DefaultClient.
func Delete(ctx context.Context, url string, opts *Options) *Result {
	return DefaultClient.Delete(ctx, url, opts)
}

// Head issues a HEAD request with the DefaultClient.
func Head(ctx context.Context, url string, opts *Options) *Result {
	return DefaultClient.Head(ctx, url, opts)
}
