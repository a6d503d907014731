package daft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/amineremache/dafty-mcp/internal/logger"
	"github.com/amineremache/dafty-mcp/pkg/daftapi"
	"github.com/amineremache/dafty-mcp/pkg/extract"
	"github.com/amineremache/dafty-mcp/pkg/fetcher"
	"github.com/amineremache/dafty-mcp/pkg/filter"
	"github.com/amineremache/dafty-mcp/pkg/listing"
	"github.com/google/uuid"
)

// Client searches listings and looks up listing details.
type Client struct {
	fetcher fetcher.Fetcher
	api     *daftapi.Client
	config  Config
}

// New creates a Client. Without WithFetcher a static fetcher is used.
func New(opts ...Option) (*Client, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.BaseURL == "" {
		return nil, errors.New("base URL is required")
	}
	if cfg.MaxPages < 1 {
		return nil, fmt.Errorf("max pages must be at least 1, got %d", cfg.MaxPages)
	}

	f := cfg.Fetcher
	if f == nil {
		f = fetcher.NewStatic(cfg.Fetch)
	}

	return &Client{
		fetcher: f,
		api:     daftapi.New(cfg.API),
		config:  cfg,
	}, nil
}

// Close releases the fetcher's resources.
func (c *Client) Close() error {
	return c.fetcher.Close()
}

// Search walks the result pages for criteria and returns matching listings.
//
// A failure on the first page is returned as an *Error carrying the
// criteria. A failure on a later page ends pagination and the listings
// gathered so far are returned. A failed detail page only means that
// listing keeps its card data.
func (c *Client) Search(ctx context.Context, criteria listing.Criteria) (results []listing.Listing, err error) {
	searchID := uuid.NewString()
	log := logger.With("search_id", searchID)

	defer func() {
		if r := recover(); r != nil {
			log.Error("search panicked", "panic", r)
			results = nil
			err = searchError(KindScraper, "orchestrate", fmt.Sprintf("unexpected failure: %v", r), criteria, nil)
		}
	}()

	searchURL := BuildSearchURL(c.config.BaseURL, criteria)
	log.Info("search starting", "url", searchURL, "max_pages", c.config.MaxPages)

	var collected []listing.Listing
	totalPages := 1

	for page := 1; page <= totalPages; page++ {
		if page > 1 {
			if err := fetcher.Sleep(ctx, c.config.PageDelay); err != nil {
				log.Warn("search interrupted between pages", "page", page, "error", err)
				break
			}
		}

		pageURL := PageURL(searchURL, page)
		content, err := c.fetcher.Fetch(ctx, pageURL)
		if err != nil {
			if page == 1 {
				return nil, searchError(KindScraper, "fetch_results_page", "failed to fetch first results page", criteria, err)
			}
			log.Warn("stopping pagination after page failure", "page", page, "error", err)
			break
		}
		if content.NotFound() {
			log.Info("results page not found", "page", page, "url", pageURL)
			break
		}

		parsed, err := extract.ParseResultsPage(content.HTML, extract.PageOptions{
			BaseURL:  c.config.BaseURL,
			MaxPages: c.config.MaxPages,
		})
		if err != nil {
			if page == 1 {
				return nil, searchError(KindScraper, "parse_results_page", "failed to parse first results page", criteria, err)
			}
			log.Warn("stopping pagination after parse failure", "page", page, "error", err)
			break
		}
		if !parsed.HasResults {
			log.Info("no results on page", "page", page)
			break
		}
		if page == 1 {
			totalPages = parsed.TotalPages
		}

		log.Debug("results page fetched", "page", page, "of", totalPages, "cards", len(parsed.Listings))
		collected = append(collected, c.enrichAll(ctx, log, parsed.Listings)...)
	}

	flat := listing.Flatten(collected)
	results = filter.Apply(flat, criteria)
	log.Info("search complete", "scraped", len(flat), "matched", len(results))
	return results, nil
}

// enrichAll fetches every listing's detail page concurrently. Output order
// follows input order; a development's units take its place.
func (c *Client) enrichAll(ctx context.Context, log *slog.Logger, partials []listing.Listing) []listing.Listing {
	enriched := make([][]listing.Listing, len(partials))

	var sem chan struct{}
	if c.config.DetailConcurrency > 0 {
		sem = make(chan struct{}, c.config.DetailConcurrency)
	}

	var wg sync.WaitGroup
	for i, partial := range partials {
		if partial.URL == "" {
			enriched[i] = []listing.Listing{partial}
			continue
		}

		wg.Add(1)
		go func(i int, partial listing.Listing) {
			defer wg.Done()
			if sem != nil {
				sem <- struct{}{}
				defer func() { <-sem }()
			}
			defer func() {
				if r := recover(); r != nil {
					log.Error("detail enrichment panicked, keeping card data", "id", partial.ID, "panic", r)
					enriched[i] = []listing.Listing{partial}
				}
			}()
			enriched[i] = c.enrichOne(ctx, log, partial)
		}(i, partial)
	}
	wg.Wait()

	var out []listing.Listing
	for _, recs := range enriched {
		out = append(out, recs...)
	}
	return out
}

func (c *Client) enrichOne(ctx context.Context, log *slog.Logger, partial listing.Listing) []listing.Listing {
	fallback := []listing.Listing{partial}

	if err := fetcher.Sleep(ctx, c.config.DetailDelay); err != nil {
		return fallback
	}

	content, err := c.fetcher.Fetch(ctx, partial.URL)
	if err != nil {
		log.Warn("detail fetch failed, keeping card data", "id", partial.ID, "error", err)
		return fallback
	}
	if content.NotFound() || strings.TrimSpace(content.HTML) == "" {
		log.Debug("detail page empty, keeping card data", "id", partial.ID)
		return fallback
	}

	recs, err := extract.EnrichWithDetail(partial, content.HTML, c.config.BaseURL)
	if err != nil {
		log.Warn("detail parse failed, keeping card data", "id", partial.ID, "error", err)
		return fallback
	}
	return recs
}

// GetDetails returns the raw API document for a listing.
func (c *Client) GetDetails(ctx context.Context, id string) (json.RawMessage, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, &Error{Kind: KindValidation, Stage: "validate", Message: "listing id is required"}
	}

	raw, err := c.api.GetDetails(ctx, id)
	if err == nil {
		return raw, nil
	}

	var se *daftapi.StatusError
	switch {
	case errors.Is(err, daftapi.ErrNoAPIKey):
		return nil, &Error{Kind: KindAuth, Stage: "get_details", Message: "an API key is required for listing details", Err: err}
	case errors.As(err, &se) && se.IsAuth():
		return nil, &Error{Kind: KindAuth, Stage: "get_details", Message: "API key rejected", Err: err}
	default:
		return nil, &Error{Kind: KindAPI, Stage: "get_details", Message: "listing details request failed", Err: err}
	}
}
