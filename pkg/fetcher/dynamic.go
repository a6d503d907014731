package fetcher

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/amineremache/dafty-mcp/internal/logger"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// DynamicFetcher renders pages in headless Chrome. Use it when the site
// answers plain HTTP clients with a script shell instead of markup.
type DynamicFetcher struct {
	config      Config
	waitFor     string
	allocCtx    context.Context
	cancelAlloc context.CancelFunc
}

// NewDynamic starts a browser allocator. waitFor is the CSS selector that
// must be visible before the page is captured; empty means "body".
func NewDynamic(cfg Config, waitFor string) *DynamicFetcher {
	cfg = cfg.withDefaults()
	if waitFor == "" {
		waitFor = "body"
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.UserAgent(cfg.UserAgent),
		chromedp.WindowSize(1920, 1080),
	)
	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)

	logger.Debug("dynamic fetcher allocator created", "user_agent", cfg.UserAgent, "wait_for", waitFor)

	return &DynamicFetcher{
		config:      cfg,
		waitFor:     waitFor,
		allocCtx:    allocCtx,
		cancelAlloc: cancel,
	}
}

// Fetch renders the page and returns its final HTML.
func (f *DynamicFetcher) Fetch(ctx context.Context, targetURL string) (Content, error) {
	return withRetry(ctx, f.config, targetURL, func(ctx context.Context) (Content, error) {
		return f.fetchOnce(ctx, targetURL)
	})
}

func (f *DynamicFetcher) fetchOnce(ctx context.Context, targetURL string) (Content, error) {
	result := Content{URL: targetURL, FetchedAt: time.Now()}

	browserCtx, cancelBrowser := chromedp.NewContext(f.allocCtx)
	defer cancelBrowser()

	timeoutCtx, cancelTimeout := context.WithTimeout(browserCtx, f.config.Timeout)
	defer cancelTimeout()

	// Propagate caller cancellation into the browser context.
	stop := context.AfterFunc(ctx, cancelTimeout)
	defer stop()

	headers := network.Headers{}
	for k, v := range f.config.requestHeaders() {
		if k == "User-Agent" {
			continue
		}
		headers[k] = v
	}

	var (
		html   string
		status atomic.Int64
	)
	chromedp.ListenTarget(timeoutCtx, func(ev any) {
		if resp, ok := ev.(*network.EventResponseReceived); ok && resp.Type == network.ResourceTypeDocument {
			status.CompareAndSwap(0, resp.Response.Status)
		}
	})

	err := chromedp.Run(timeoutCtx,
		network.Enable(),
		network.SetExtraHTTPHeaders(headers),
		chromedp.Navigate(targetURL),
		chromedp.WaitVisible(f.waitFor),
		chromedp.OuterHTML("html", &html),
	)
	result.StatusCode = int(status.Load())
	if err != nil {
		return result, fmt.Errorf("browser automation failed: %w", err)
	}
	if result.StatusCode >= 400 {
		return result, fmt.Errorf("%w %d", ErrUnexpectedStatus, result.StatusCode)
	}
	if result.StatusCode == 0 {
		result.StatusCode = 200
	}

	result.HTML = html
	result.ContentType = "text/html"
	logger.Debug("dynamic fetch complete", "url", targetURL, "status", result.StatusCode, "html_size", len(html))
	return result, nil
}

// Close releases browser resources.
func (f *DynamicFetcher) Close() error {
	if f.cancelAlloc != nil {
		f.cancelAlloc()
	}
	return nil
}

// Type returns the fetcher type.
func (f *DynamicFetcher) Type() string {
	return "dynamic"
}
