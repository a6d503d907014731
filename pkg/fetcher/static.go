package fetcher

import (
	"context"
	"fmt"
	"time"

	"github.com/amineremache/dafty-mcp/internal/logger"
	"github.com/dustin/go-humanize"
	"github.com/gocolly/colly/v2"
)

// StaticFetcher uses Colly for plain HTTP fetching.
// It implements the Fetcher interface and is safe for concurrent use.
type StaticFetcher struct {
	config Config
}

// NewStatic creates a new static fetcher.
func NewStatic(cfg Config) *StaticFetcher {
	return &StaticFetcher{config: cfg.withDefaults()}
}

// Fetch retrieves page HTML, retrying transient failures.
func (f *StaticFetcher) Fetch(ctx context.Context, targetURL string) (Content, error) {
	return withRetry(ctx, f.config, targetURL, func(ctx context.Context) (Content, error) {
		return f.fetchOnce(ctx, targetURL)
	})
}

func (f *StaticFetcher) fetchOnce(ctx context.Context, targetURL string) (Content, error) {
	result := Content{
		URL:       targetURL,
		FetchedAt: time.Now(),
	}

	// A fresh collector per attempt keeps Fetch safe to call concurrently.
	c := colly.NewCollector(
		colly.UserAgent(f.config.UserAgent),
		colly.StdlibContext(ctx),
		colly.AllowURLRevisit(),
	)
	c.SetRequestTimeout(f.config.Timeout)

	headers := f.config.requestHeaders()
	c.OnRequest(func(r *colly.Request) {
		for k, v := range headers {
			r.Headers.Set(k, v)
		}
	})

	var fetchErr error

	c.OnResponse(func(r *colly.Response) {
		result.StatusCode = r.StatusCode
		result.ContentType = r.Headers.Get("Content-Type")
		result.HTML = string(r.Body)
		logger.Debug("static fetch response received",
			"url", targetURL,
			"status", r.StatusCode,
			"size", humanize.Bytes(uint64(len(r.Body))))
	})

	c.OnError(func(r *colly.Response, err error) {
		if r != nil && r.StatusCode != 0 {
			result.StatusCode = r.StatusCode
			fetchErr = fmt.Errorf("%w %d: %v", ErrUnexpectedStatus, r.StatusCode, err)
			return
		}
		fetchErr = err
	})

	if err := c.Visit(targetURL); err != nil && fetchErr == nil {
		fetchErr = err
	}
	if fetchErr != nil {
		return result, fetchErr
	}
	return result, nil
}

// Close releases resources.
func (f *StaticFetcher) Close() error {
	return nil
}

// Type returns the fetcher type.
func (f *StaticFetcher) Type() string {
	return "static"
}
