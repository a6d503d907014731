// Package filter applies search criteria to scraped listings.
//
// The site's own search is approximate, so every record is checked again
// locally. All predicates must hold; within the location predicate any one
// location suffices.
package filter

import (
	"regexp"
	"strings"

	"github.com/amineremache/dafty-mcp/pkg/listing"
	"github.com/amineremache/dafty-mcp/pkg/normalize"
)

var postalDistrictRe = regexp.MustCompile(`^dublin\s*(\d+)$`)

// locationSynonyms extends a location with the names the site files nearby
// listings under.
var locationSynonyms = map[string][]string{
	"ringsend": {"irishtown", "grand canal dock", "dublin 4", "dublin 2"},
}

// Apply returns the records that satisfy c, in their original order.
func Apply(records []listing.Listing, c listing.Criteria) []listing.Listing {
	if c.IsEmpty() {
		return records
	}
	m := newMatcher(c)
	out := make([]listing.Listing, 0, len(records))
	for _, rec := range records {
		if m.match(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// Matches reports whether a single record satisfies c.
func Matches(rec listing.Listing, c listing.Criteria) bool {
	return newMatcher(c).match(rec)
}

type matcher struct {
	c         listing.Criteria
	locations []locationRule
	propType  string
}

// locationRule matches an address by substring or by whole-word pattern.
type locationRule struct {
	substrings []string
	patterns   []*regexp.Regexp
}

func newMatcher(c listing.Criteria) matcher {
	m := matcher{c: c, propType: strings.ToLower(strings.TrimSpace(c.PropertyType))}
	for _, loc := range c.Locations {
		if rule, ok := buildLocationRule(loc); ok {
			m.locations = append(m.locations, rule)
		}
	}
	return m
}

func buildLocationRule(loc string) (locationRule, bool) {
	loc = strings.ToLower(strings.Join(strings.Fields(loc), " "))
	if loc == "" {
		return locationRule{}, false
	}

	rule := locationRule{substrings: []string{loc}}
	terms := append([]string{loc}, locationSynonyms[loc]...)
	for i, term := range terms {
		if i > 0 {
			rule.substrings = append(rule.substrings, term)
		}
		if m := postalDistrictRe.FindStringSubmatch(term); m != nil {
			rule.patterns = append(rule.patterns, regexp.MustCompile(`\bd`+m[1]+`\b`))
		}
	}
	return rule, true
}

func (r locationRule) match(address string) bool {
	for _, s := range r.substrings {
		if strings.Contains(address, s) {
			return true
		}
	}
	for _, re := range r.patterns {
		if re.MatchString(address) {
			return true
		}
	}
	return false
}

func (m matcher) match(rec listing.Listing) bool {
	return m.matchPrice(rec) && m.matchBeds(rec) && m.matchType(rec) && m.matchLocation(rec)
}

func (m matcher) matchPrice(rec listing.Listing) bool {
	if m.c.MinPrice == nil && m.c.MaxPrice == nil {
		return true
	}
	if rec.PriceKind != normalize.PriceNumeric || rec.MonthlyPrice == nil {
		return false
	}
	v := *rec.MonthlyPrice
	if m.c.MinPrice != nil && v < *m.c.MinPrice {
		return false
	}
	if m.c.MaxPrice != nil && v > *m.c.MaxPrice {
		return false
	}
	return true
}

func (m matcher) matchBeds(rec listing.Listing) bool {
	if m.c.Beds == nil {
		return true
	}
	if rec.Beds == nil {
		return false
	}
	n := *m.c.Beds
	return rec.Beds.Min <= n && n <= rec.Beds.Max
}

func (m matcher) matchType(rec listing.Listing) bool {
	if m.propType == "" {
		return true
	}
	if rec.PropertyType == "" {
		return false
	}
	return strings.Contains(strings.ToLower(rec.PropertyType), m.propType)
}

func (m matcher) matchLocation(rec listing.Listing) bool {
	if len(m.locations) == 0 {
		return true
	}
	if rec.Address == "" {
		return false
	}
	address := strings.ToLower(rec.Address)
	for _, rule := range m.locations {
		if rule.match(address) {
			return true
		}
	}
	return false
}
