// Package fetcher retrieves listing pages over HTTP.
//
// Fetchers send a browser-like header set, bound every attempt with a timeout
// and retry failed attempts after a fixed delay. A 404 is not an error: it
// yields Content with an empty HTML body so callers can tell "gone" apart
// from "unreachable".
package fetcher

import (
	"context"
	"net/http"
	"time"
)

// Fetcher abstracts page fetching strategies.
type Fetcher interface {
	// Fetch retrieves page content from a URL.
	Fetch(ctx context.Context, url string) (Content, error)

	// Close releases any resources (browser instances, etc.).
	Close() error

	// Type returns a string identifying the fetcher type (e.g., "static", "dynamic").
	Type() string
}

// Content represents fetched page data.
type Content struct {
	URL         string
	HTML        string
	StatusCode  int
	ContentType string
	FetchedAt   time.Time
}

// NotFound reports whether the page answered 404.
func (c Content) NotFound() bool {
	return c.StatusCode == http.StatusNotFound
}

// Config controls fetching behavior.
type Config struct {
	UserAgent      string
	AcceptLanguage string
	Referer        string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
	Headers        map[string]string
}

// Desktop Chrome, matching the Accept header below.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

const defaultAccept = "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8"

// DefaultConfig returns the settings used when none are supplied.
func DefaultConfig() Config {
	return Config{
		UserAgent:      defaultUserAgent,
		AcceptLanguage: "en-IE,en-GB;q=0.9,en;q=0.8",
		Referer:        "https://www.google.com/",
		Timeout:        15 * time.Second,
		MaxRetries:     2,
		RetryDelay:     time.Second,
	}
}

// withDefaults fills zero fields from DefaultConfig. MaxRetries and
// RetryDelay are left alone since zero is meaningful for both.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.UserAgent == "" {
		c.UserAgent = d.UserAgent
	}
	if c.AcceptLanguage == "" {
		c.AcceptLanguage = d.AcceptLanguage
	}
	if c.Referer == "" {
		c.Referer = d.Referer
	}
	if c.Timeout <= 0 {
		c.Timeout = d.Timeout
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	return c
}

// requestHeaders returns the header set sent with every request. Entries in
// Headers override the defaults.
func (c Config) requestHeaders() map[string]string {
	h := map[string]string{
		"User-Agent":      c.UserAgent,
		"Accept":          defaultAccept,
		"Accept-Language": c.AcceptLanguage,
		"Referer":         c.Referer,
	}
	for k, v := range c.Headers {
		h[k] = v
	}
	return h
}
