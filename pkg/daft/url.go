package daft

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/amineremache/dafty-mcp/pkg/listing"
	"github.com/amineremache/dafty-mcp/pkg/normalize"
)

const (
	rentPath       = "/property-for-rent"
	nationwideSlug = "ireland"
)

// BuildSearchURL maps criteria onto the site's search URL.
//
// A single location becomes the path segment; with several, the path stays
// nationwide and each location is sent as a repeated "location" parameter.
// The property type is appended as a plural path segment. An exact bed count
// is sent as an equal lower and upper bound.
func BuildSearchURL(baseURL string, c listing.Criteria) string {
	var slugs []string
	for _, loc := range c.Locations {
		if s := normalize.LocationSlug(loc); s != "" {
			slugs = append(slugs, s)
		}
	}

	area := nationwideSlug
	q := url.Values{}
	switch {
	case len(slugs) == 1:
		area = slugs[0]
	case len(slugs) > 1:
		for _, s := range slugs {
			q.Add("location", s)
		}
	}

	p := rentPath + "/" + area
	if seg := propertyTypeSegment(c.PropertyType); seg != "" {
		p += "/" + seg
	}

	if c.MinPrice != nil {
		q.Set("rentalPrice_from", formatNumber(*c.MinPrice))
	}
	if c.MaxPrice != nil {
		q.Set("rentalPrice_to", formatNumber(*c.MaxPrice))
	}
	if c.Beds != nil {
		n := strconv.Itoa(*c.Beds)
		q.Set("numBeds_from", n)
		q.Set("numBeds_to", n)
	}

	u := strings.TrimRight(baseURL, "/") + p
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

// PageURL returns searchURL for page 1 and adds page=n otherwise.
func PageURL(searchURL string, n int) string {
	if n <= 1 {
		return searchURL
	}
	u, err := url.Parse(searchURL)
	if err != nil {
		return searchURL
	}
	q := u.Query()
	q.Set("page", strconv.Itoa(n))
	u.RawQuery = q.Encode()
	return u.String()
}

func propertyTypeSegment(t string) string {
	switch slug := normalize.Slugify(t); slug {
	case "":
		return ""
	case "apartment", "apartments":
		return "apartments"
	case "house", "houses":
		return "houses"
	default:
		if strings.HasSuffix(slug, "s") {
			return slug
		}
		return slug + "s"
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
