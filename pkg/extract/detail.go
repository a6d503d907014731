package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/amineremache/dafty-mcp/internal/logger"
	"github.com/amineremache/dafty-mcp/pkg/listing"
	"github.com/amineremache/dafty-mcp/pkg/normalize"
)

// EnrichWithDetail completes a partial listing from its detail page.
//
// Coordinates on the detail page always replace those from the card. For an
// ordinary listing the result holds the single enriched record, with the
// energy rating filled in only when the card had none. For a development the
// parent is replaced by one record per unit, each inheriting the parent's
// address, tagline and coordinates; units missing an ID, URL, address or
// price text are dropped.
func EnrichWithDetail(partial listing.Listing, html, baseURL string) ([]listing.Listing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse detail page: %w", err)
	}
	root := doc.Selection

	rec := partial
	for _, css := range detailMapLink {
		if ll, ok := normalize.ExtractLatLng(root, css); ok {
			rec.SetCoordinates(ll)
			break
		}
	}

	anchors := detailUnits.Find(root)
	if anchors.Length() == 0 {
		if rec.EnergyRating == "" {
			rec.EnergyRating = normalize.FormatEnergyRating(detailEnergyRating.Value(root))
		}
		return []listing.Listing{rec}, nil
	}

	units := make([]listing.Listing, 0, anchors.Length())
	anchors.Each(func(i int, a *goquery.Selection) {
		unit, _ := parseUnit(a, baseURL)
		unit.InheritFrom(rec)
		if missing := missingUnitField(unit); missing != "" {
			logger.Debug("dropping development unit", "parent", rec.ID, "index", i, "missing", missing)
			return
		}
		units = append(units, unit)
	})

	logger.Debug("development expanded", "parent", rec.ID, "anchors", anchors.Length(), "units", len(units))
	return units, nil
}

func missingUnitField(u listing.Listing) string {
	switch {
	case u.ID == "":
		return "id"
	case u.URL == "":
		return "url"
	case u.Address == "":
		return "address"
	case u.PriceText == "":
		return "priceRawText"
	}
	return ""
}
