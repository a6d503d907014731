package extract

import (
	"fmt"
	"math"
	"net/url"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/amineremache/dafty-mcp/internal/logger"
	"github.com/amineremache/dafty-mcp/pkg/listing"
	"github.com/amineremache/dafty-mcp/pkg/normalize"
)

// ResultsPerPage is how many cards the site shows on a results page.
const ResultsPerPage = 20

const cardTestIDPrefix = "result-"

var totalResultsRe = regexp.MustCompile(`(?i)of\s+([\d,]+)\s+total\s+results`)

// PageOptions controls results page parsing.
type PageOptions struct {
	// BaseURL resolves relative links and builds fallback listing URLs.
	BaseURL string
	// MaxPages caps TotalPages. Zero means no cap.
	MaxPages int
}

// ResultsPage is what one search results page yields.
type ResultsPage struct {
	// Listings are partial records in page order. Development cards carry Units.
	Listings []listing.Listing
	// HasResults is false when the page has no results container at all.
	HasResults bool
	// TotalResults is the site's result count, 0 when not shown.
	TotalResults int
	// TotalPages is derived from TotalResults, capped by MaxPages, and at least 1.
	TotalPages int
}

// ParseResultsPage extracts partial listings and the page count from the
// HTML of a search results page.
func ParseResultsPage(html string, opts PageOptions) (ResultsPage, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ResultsPage{}, fmt.Errorf("failed to parse results page: %w", err)
	}

	page := ResultsPage{TotalPages: 1}
	root := doc.Selection

	if resultsContainer.Find(root).Length() == 0 {
		logger.Debug("no results container on page")
		return page, nil
	}
	page.HasResults = true

	page.TotalResults = totalResults(root)
	page.TotalPages = TotalPages(page.TotalResults, opts.MaxPages)

	resultCards.Find(root).Each(func(i int, card *goquery.Selection) {
		rec := parseCard(card, opts.BaseURL)
		if rec.ID == "" {
			logger.Debug("skipping card without id", "index", i)
			return
		}
		page.Listings = append(page.Listings, rec)
	})

	logger.Debug("results page parsed",
		"cards", len(page.Listings),
		"total_results", page.TotalResults,
		"total_pages", page.TotalPages)

	return page, nil
}

// TotalPages converts a result count into a page count: ceil(total/20),
// at least 1 and at most maxPages when maxPages > 0.
func TotalPages(totalResults, maxPages int) int {
	pages := int(math.Ceil(float64(totalResults) / ResultsPerPage))
	if pages < 1 {
		pages = 1
	}
	if maxPages > 0 && pages > maxPages {
		pages = maxPages
	}
	return pages
}

func totalResults(root *goquery.Selection) int {
	for _, step := range resultCount {
		m := totalResultsRe.FindStringSubmatch(step(root))
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
		if err == nil {
			return n
		}
	}
	return 0
}

func parseCard(card *goquery.Selection, baseURL string) listing.Listing {
	var rec listing.Listing

	if href := cardLink.Value(card); href != "" {
		rec.URL = resolveURL(baseURL, href)
		rec.ID = idFromURL(rec.URL)
	}
	if rec.ID == "" {
		if testID := cardTestID.Value(card); strings.HasPrefix(testID, cardTestIDPrefix) {
			rec.ID = strings.TrimPrefix(testID, cardTestIDPrefix)
		}
	}

	readFields(&rec, card, cardFields)
	rec.Address = cardFields.Address.Value(card)
	rec.Tagline = cardFields.Tagline.Value(card)

	if rec.URL == "" && rec.ID != "" {
		rec.URL = fallbackURL(baseURL, rec.Address, rec.ID)
	}

	for _, css := range cardMapLink {
		if ll, ok := normalize.ExtractLatLng(card, css); ok {
			rec.SetCoordinates(ll)
			break
		}
	}

	cardUnits.Find(card).Each(func(_ int, a *goquery.Selection) {
		if unit, ok := parseUnit(a, baseURL); ok {
			rec.Units = append(rec.Units, unit)
		}
	})
	if len(rec.Units) > 0 {
		backfillFromUnit(&rec, rec.Units[0])
	}

	return rec
}

// parseUnit reads one unit link of a development.
func parseUnit(a *goquery.Selection, baseURL string) (listing.Listing, bool) {
	href, _ := a.Attr("href")
	if strings.TrimSpace(href) == "" {
		return listing.Listing{}, false
	}
	unit := listing.Listing{URL: resolveURL(baseURL, href)}
	unit.ID = idFromURL(unit.URL)
	readFields(&unit, a, unitFields)
	return unit, unit.ID != ""
}

func readFields(rec *listing.Listing, sel *goquery.Selection, fields fieldChains) {
	rec.SetPrice(fields.Price.Value(sel))
	rec.SetBeds(fields.Beds.Value(sel))
	rec.BathsText = fields.Baths.Value(sel)
	rec.PropertyType = fields.PropertyType.Value(sel)
	rec.EnergyRating = normalize.FormatEnergyRating(fields.EnergyRating.Value(sel))
}

// backfillFromUnit fills the parent's unset or ambiguous fields from its
// first unit so that development cards can still be filtered.
func backfillFromUnit(parent *listing.Listing, unit listing.Listing) {
	if parent.PriceKind == normalize.PriceUnknown && unit.PriceText != "" {
		parent.PriceText = unit.PriceText
		parent.MonthlyPrice = unit.MonthlyPrice
		parent.PriceKind = unit.PriceKind
	}
	if parent.Beds == nil && unit.Beds != nil {
		parent.BedsText = unit.BedsText
		parent.Beds = unit.Beds
	}
	if parent.PropertyType == "" {
		parent.PropertyType = unit.PropertyType
	}
}

func resolveURL(baseURL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	if ref.IsAbs() {
		return ref.String()
	}
	base, err := url.Parse(baseURL)
	if err != nil || baseURL == "" {
		return ref.String()
	}
	return base.ResolveReference(ref).String()
}

// idFromURL returns the last path segment of a listing URL.
func idFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	p := strings.TrimRight(u.Path, "/")
	if p == "" {
		return ""
	}
	return path.Base(p)
}

func fallbackURL(baseURL, address, id string) string {
	slug := normalize.Slugify(address)
	if slug == "" {
		slug = "property"
	}
	return strings.TrimRight(baseURL, "/") + "/for-rent/" + slug + "/" + id
}
