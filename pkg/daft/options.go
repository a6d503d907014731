// Package daft searches Daft.ie rental listings.
//
// A Client builds the site's search URL from criteria, walks the result pages
// in order, completes every listing from its detail page concurrently and
// filters the merged set locally before returning it.
package daft

import (
	"time"

	"github.com/amineremache/dafty-mcp/pkg/daftapi"
	"github.com/amineremache/dafty-mcp/pkg/fetcher"
)

// Config holds all client configuration.
type Config struct {
	// BaseURL is the public site, e.g. https://www.daft.ie.
	BaseURL string
	// MaxPages caps how many result pages a search walks.
	MaxPages int
	// PageDelay is waited before every result page after the first.
	PageDelay time.Duration
	// DetailDelay is waited before each detail page request.
	DetailDelay time.Duration
	// DetailConcurrency bounds in-flight detail requests. Zero means one
	// goroutine per listing on the page.
	DetailConcurrency int

	// Fetch configures the default static fetcher.
	Fetch fetcher.Config
	// Fetcher replaces the default static fetcher.
	Fetcher fetcher.Fetcher

	// API configures the legacy details client.
	API daftapi.Config
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:     "https://www.daft.ie",
		MaxPages:    5,
		PageDelay:   time.Second,
		DetailDelay: 500 * time.Millisecond,
		Fetch:       fetcher.DefaultConfig(),
		API:         daftapi.DefaultConfig(),
	}
}

// Option configures a Client.
type Option func(*Config)

// WithBaseURL sets the site base URL.
func WithBaseURL(u string) Option {
	return func(c *Config) {
		c.BaseURL = u
	}
}

// WithMaxPages sets the maximum number of result pages to walk.
func WithMaxPages(n int) Option {
	return func(c *Config) {
		c.MaxPages = n
	}
}

// WithDelays sets the pause before later result pages and before each
// detail page.
func WithDelays(page, detail time.Duration) Option {
	return func(c *Config) {
		c.PageDelay = page
		c.DetailDelay = detail
	}
}

// WithDetailConcurrency bounds in-flight detail requests.
func WithDetailConcurrency(n int) Option {
	return func(c *Config) {
		c.DetailConcurrency = n
	}
}

// WithFetchConfig sets user agent, timeout and retry policy for the default fetcher.
func WithFetchConfig(fc fetcher.Config) Option {
	return func(c *Config) {
		c.Fetch = fc
	}
}

// WithFetcher injects a custom fetcher, e.g. the dynamic one.
func WithFetcher(f fetcher.Fetcher) Option {
	return func(c *Config) {
		c.Fetcher = f
	}
}

// WithAPI configures the legacy details API.
func WithAPI(cfg daftapi.Config) Option {
	return func(c *Config) {
		c.API = cfg
	}
}
