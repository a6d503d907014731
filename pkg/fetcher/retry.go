package fetcher

import (
	"context"
	"net/http"
	"time"

	"github.com/amineremache/dafty-mcp/internal/logger"
)

type attemptFunc func(ctx context.Context) (Content, error)

// withRetry runs attempt up to 1+MaxRetries times, sleeping RetryDelay
// between attempts. A 404 ends the loop immediately with empty content.
func withRetry(ctx context.Context, cfg Config, url string, attempt attemptFunc) (Content, error) {
	maxAttempts := cfg.MaxRetries + 1
	var (
		lastErr    error
		lastStatus int
		made       int
	)

	for made < maxAttempts {
		if made > 0 {
			logger.Debug("retrying fetch", "url", url, "attempt", made+1, "delay", cfg.RetryDelay)
			if err := Sleep(ctx, cfg.RetryDelay); err != nil {
				lastErr = err
				break
			}
		}

		made++
		content, err := attempt(ctx)
		if err == nil {
			return content, nil
		}
		if content.StatusCode == http.StatusNotFound {
			logger.Debug("page not found", "url", url)
			return Content{URL: url, StatusCode: http.StatusNotFound, FetchedAt: time.Now()}, nil
		}

		lastErr, lastStatus = err, content.StatusCode
		logger.Warn("fetch attempt failed", "url", url, "attempt", made, "status", lastStatus, "error", err)

		if ctx.Err() != nil {
			lastErr = ctx.Err()
			break
		}
	}

	return Content{URL: url, StatusCode: lastStatus}, &NetworkError{
		URL:        url,
		Attempts:   made,
		StatusCode: lastStatus,
		Err:        lastErr,
	}
}

// Sleep waits for d or until ctx is done, whichever comes first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
