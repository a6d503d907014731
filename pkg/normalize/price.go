// Package normalize turns the free text found on listing pages into typed
// values: monthly prices, bed ranges, URL slugs, coordinates and energy ratings.
//
// Every function here is pure and never returns an error. Input that cannot be
// understood yields the documented "unknown" value instead.
package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// PriceKind classifies a parsed price.
type PriceKind string

const (
	PriceNumeric       PriceKind = "numeric"
	PriceOnApplication PriceKind = "on_application"
	PriceUnknown       PriceKind = "unknown"
)

// Price is a rent normalized to a monthly amount.
// Value is set only when Kind is PriceNumeric.
type Price struct {
	Value *float64
	Kind  PriceKind
}

// minBarePrice is the smallest figure accepted as a rent when the text carries
// neither a currency symbol nor a period marker. It keeps stray numbers such as
// postal districts ("Dublin 4") from being read as prices.
const minBarePrice = 100

var onApplicationPhrases = []string{
	"price on application",
	"contact agent",
}

const (
	amountPattern = `((?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d{1,2})?)`
	periodPattern = `(weekly|week|wk|p/w|pw|monthly|month|mth|mo|p/m|pm)`
)

var (
	// currency? amount (per|a|/)? period?
	priceRe = regexp.MustCompile(`(?i)([€£$])?\s*` + amountPattern + `\s*(?:(?:per|a|/)\s*)?` + periodPattern + `?\b`)

	// amount period, the whole string and nothing else
	strictPriceRe = regexp.MustCompile(`(?i)^\s*` + amountPattern + `\s*(?:per|/)?\s*` + periodPattern + `\s*$`)

	bareNumberRe = regexp.MustCompile(`^[€£$\s\d,.]+$`)
)

// ParsePrice reads a rent from display text and converts it to a monthly
// figure. Weekly amounts are scaled by 52/12 and rounded to the nearest unit.
//
// The text is tried against, in order: the on-application phrases, a
// currency/amount/period pattern, a strict "amount period" form, and finally
// a bare number. A bare number below 100 is rejected.
func ParsePrice(text string) Price {
	// strings.Fields also splits on non-breaking spaces, which \s does not match.
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return Price{Kind: PriceUnknown}
	}

	lower := strings.ToLower(text)
	for _, phrase := range onApplicationPhrases {
		if strings.Contains(lower, phrase) {
			return Price{Kind: PriceOnApplication}
		}
	}

	for _, m := range priceRe.FindAllStringSubmatch(text, -1) {
		currency, amount, period := m[1], m[2], m[3]
		if currency == "" && period == "" {
			continue
		}
		if v, ok := toMonthly(amount, period); ok {
			return numeric(v)
		}
	}

	if m := strictPriceRe.FindStringSubmatch(text); m != nil {
		if v, ok := toMonthly(m[1], m[2]); ok {
			return numeric(v)
		}
	}

	if bareNumberRe.MatchString(text) {
		hasCurrency := strings.ContainsAny(text, "€£$")
		digits := strings.Map(func(r rune) rune {
			if (r >= '0' && r <= '9') || r == '.' {
				return r
			}
			return -1
		}, text)
		v, err := strconv.ParseFloat(digits, 64)
		if err == nil && (hasCurrency || v >= minBarePrice) {
			return numeric(v)
		}
	}

	return Price{Kind: PriceUnknown}
}

func toMonthly(amount, period string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(amount, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	if isWeekly(period) {
		return math.Round(v * 52 / 12), true
	}
	return v, true
}

func isWeekly(period string) bool {
	switch strings.ToLower(period) {
	case "week", "weekly", "wk", "pw", "p/w":
		return true
	}
	return false
}

func numeric(v float64) Price {
	return Price{Value: &v, Kind: PriceNumeric}
}
