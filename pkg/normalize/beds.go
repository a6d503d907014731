package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

// BedRange is the number of bedrooms a listing offers. A single-count listing
// has Min == Max. Studios are reported as one bed.
type BedRange struct {
	Min      int  `json:"min" yaml:"min"`
	Max      int  `json:"max" yaml:"max"`
	IsStudio bool `json:"isStudio,omitempty" yaml:"isStudio,omitempty"`
}

var (
	bedRangeRe  = regexp.MustCompile(`(?i)(\d+)\s*(?:to|-|–)\s*(\d+)\s*bed`)
	bedSingleRe = regexp.MustCompile(`(?i)(\d+)\s*bed`)
)

// ParseBeds reads a bedroom count from text such as "2 Bed", "1 to 3 beds" or
// "Studio". It returns nil when no count can be found.
func ParseBeds(text string) *BedRange {
	if text == "" {
		return nil
	}
	if strings.Contains(strings.ToLower(text), "studio") {
		return &BedRange{Min: 1, Max: 1, IsStudio: true}
	}
	if m := bedRangeRe.FindStringSubmatch(text); m != nil {
		lo, _ := strconv.Atoi(m[1])
		hi, _ := strconv.Atoi(m[2])
		if lo > hi {
			lo, hi = hi, lo
		}
		return &BedRange{Min: lo, Max: hi}
	}
	if m := bedSingleRe.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return &BedRange{Min: n, Max: n}
	}
	return nil
}
