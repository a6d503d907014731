// Package extract pulls listing records out of search-result and detail
// pages.
//
// The site's markup changes without notice, so no field is read through a
// single selector. Each field has an ordered Chain of extraction steps and
// the first step that yields a non-empty value wins. All chains are declared
// in selectors.go.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Step extracts one candidate value from a selection. It returns "" when
// the markup it knows about is absent.
type Step func(*goquery.Selection) string

// Chain is an ordered list of steps tried until one succeeds.
type Chain []Step

// First returns the first non-empty value and the index of the step that
// produced it, or ("", -1).
func (c Chain) First(sel *goquery.Selection) (string, int) {
	for i, step := range c {
		if v := step(sel); v != "" {
			return v, i
		}
	}
	return "", -1
}

// Value returns the first non-empty value.
func (c Chain) Value(sel *goquery.Selection) string {
	v, _ := c.First(sel)
	return v
}

// Text reads the whitespace-normalized text of the first match of css.
func Text(css string) Step {
	return func(sel *goquery.Selection) string {
		return cleanText(sel.Find(css).First().Text())
	}
}

// Attr reads an attribute of the first match of css that carries it.
func Attr(css, attr string) Step {
	return func(sel *goquery.Selection) string {
		var out string
		sel.Find(css).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if v, ok := s.Attr(attr); ok && strings.TrimSpace(v) != "" {
				out = strings.TrimSpace(v)
				return false
			}
			return true
		})
		return out
	}
}

// Self reads an attribute of the selection itself.
func Self(attr string) Step {
	return func(sel *goquery.Selection) string {
		v, _ := sel.Attr(attr)
		return strings.TrimSpace(v)
	}
}

// Segment splits the text of the first match of css on sep and returns the
// first part containing substr, case-insensitively. It reads combined meta
// lines such as "2 Bed · 1 Bath · Apartment".
func Segment(css, sep, substr string) Step {
	substr = strings.ToLower(substr)
	return func(sel *goquery.Selection) string {
		text := cleanText(sel.Find(css).First().Text())
		for _, part := range strings.Split(text, sep) {
			part = strings.TrimSpace(part)
			if part != "" && strings.Contains(strings.ToLower(part), substr) {
				return part
			}
		}
		return ""
	}
}

// LastSegment returns the final part of the text of the first match of css
// split on sep, unless that part holds a digit. Listing meta lines end with
// the property type: "3 Bed · 2 Bath · House".
func LastSegment(css, sep string) Step {
	return func(sel *goquery.Selection) string {
		parts := strings.Split(cleanText(sel.Find(css).First().Text()), sep)
		if len(parts) < 2 {
			return ""
		}
		last := strings.TrimSpace(parts[len(parts)-1])
		if strings.ContainsAny(last, "0123456789") {
			return ""
		}
		return last
	}
}

// Candidates is an ordered list of CSS selectors for the same element.
type Candidates []string

// Find returns the matches of the first selector that matches anything.
func (c Candidates) Find(root *goquery.Selection) *goquery.Selection {
	for _, css := range c {
		if found := root.Find(css); found.Length() > 0 {
			return found
		}
	}
	return root.Find("__none__")
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
