package query

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/amineremache/dafty-mcp/pkg/listing"
)

const amount = `€?\s*(\d[\d,]*(?:\.\d+)?\s*k?)`

var (
	rangeRe    = regexp.MustCompile(`(?i)\b(?:between|from)\s+` + amount + `\s*(?:and|to|-)\s*` + amount)
	maxPriceRe = regexp.MustCompile(`(?i)(?:\b(?:under|below|max(?:imum)?|up\s+to|less\s+than|no\s+more\s+than|budget(?:\s+of)?)|<)\s*` + amount)
	minPriceRe = regexp.MustCompile(`(?i)(?:\b(?:over|above|min(?:imum)?|at\s+least|more\s+than)|>)\s*` + amount)
	bedsRe     = regexp.MustCompile(`(?i)\b(\d+|one|two|three|four|five|six)[\s-]*(?:bed(?:room)?s?|br)\b`)
	studioRe   = regexp.MustCompile(`(?i)\bstudios?\b`)
	locationRe = regexp.MustCompile(`(?i)\b(?:in|near|around)\s+([\p{L}\d][\p{L}\d ,.'-]*?)\s*(?:\b(?:under|below|over|above|between|from|for|with|max|min|up|less|more|at|no|budget)\b|[;!?()]|$)`)
	joinRe     = regexp.MustCompile(`(?i)\s+(?:or|and|&)\s+|\s*/\s*`)
)

var numberWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5, "six": 6,
}

// propertyWords maps words in a request to the property type sent to the
// site. Longer phrases come first so "townhouse" is not read as "house".
var propertyWords = []struct {
	re       *regexp.Regexp
	propType string
}{
	{regexp.MustCompile(`(?i)\btown\s?houses?\b`), "townhouse"},
	{regexp.MustCompile(`(?i)\b(?:apartments?|flats?)\b`), "apartment"},
	{regexp.MustCompile(`(?i)\bhouses?\b`), "house"},
	{regexp.MustCompile(`(?i)\bduplex(?:es)?\b`), "duplex"},
	{regexp.MustCompile(`(?i)\bbungalows?\b`), "bungalow"},
}

// Parse extracts criteria from text with fixed patterns. Anything it does
// not recognise is ignored, so the result may be empty.
func Parse(text string) listing.Criteria {
	var c listing.Criteria

	if m := rangeRe.FindStringSubmatch(text); m != nil {
		lo, okLo := parseAmount(m[1])
		hi, okHi := parseAmount(m[2])
		if okLo && okHi {
			if lo > hi {
				lo, hi = hi, lo
			}
			c.MinPrice, c.MaxPrice = &lo, &hi
		}
	}
	if c.MaxPrice == nil {
		if m := maxPriceRe.FindStringSubmatch(text); m != nil {
			if v, ok := parseAmount(m[1]); ok {
				c.MaxPrice = &v
			}
		}
	}
	if c.MinPrice == nil {
		if m := minPriceRe.FindStringSubmatch(text); m != nil {
			if v, ok := parseAmount(m[1]); ok {
				c.MinPrice = &v
			}
		}
	}

	if m := bedsRe.FindStringSubmatch(text); m != nil {
		if n, ok := parseCount(m[1]); ok {
			c.Beds = &n
		}
	} else if studioRe.MatchString(text) {
		// Listings show studios as a single bed.
		n := 1
		c.Beds = &n
	}

	for _, pw := range propertyWords {
		if pw.re.MatchString(text) {
			c.PropertyType = pw.propType
			break
		}
	}

	for _, m := range locationRe.FindAllStringSubmatch(text, -1) {
		for _, loc := range joinRe.Split(m[1], -1) {
			loc = strings.Trim(strings.TrimSpace(loc), ",.")
			if loc != "" {
				c.Locations = append(c.Locations, loc)
			}
		}
	}

	return c
}

// parseAmount reads "2,500", "2500.00" or "2.5k".
func parseAmount(s string) (float64, bool) {
	s = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), ",", ""))
	mult := 1.0
	if strings.HasSuffix(s, "k") {
		mult = 1000
		s = strings.TrimSpace(strings.TrimSuffix(s, "k"))
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v * mult, true
}

func parseCount(s string) (int, bool) {
	if n, ok := numberWords[strings.ToLower(s)]; ok {
		return n, true
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
