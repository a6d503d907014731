package normalize

import (
	"net/url"
	"regexp"
	"strconv"

	"github.com/PuerkitoBio/goquery"
)

var (
	locPairRe       = regexp.MustCompile(`loc:(-?\d+(?:\.\d+)?)\+(-?\d+(?:\.\d+)?)`)
	viewpointPairRe = regexp.MustCompile(`viewpoint=(-?\d+(?:\.\d+)?),(-?\d+(?:\.\d+)?)`)
)

// LatLng is a WGS84 coordinate pair.
type LatLng struct {
	Lat float64
	Lng float64
}

// ExtractLatLng reads coordinates from the href of the first element matching
// selector inside root. Map links carry them either as "loc:LAT+LNG" or as
// "viewpoint=LAT,LNG". It returns false when no link or no pair is found.
func ExtractLatLng(root *goquery.Selection, selector string) (LatLng, bool) {
	href, ok := root.Find(selector).First().Attr("href")
	if !ok || href == "" {
		return LatLng{}, false
	}
	if ll, ok := parseLatLng(href); ok {
		return ll, true
	}
	// PathUnescape leaves '+' alone, which the loc: form depends on.
	if decoded, err := url.PathUnescape(href); err == nil && decoded != href {
		return parseLatLng(decoded)
	}
	return LatLng{}, false
}

func parseLatLng(href string) (LatLng, bool) {
	for _, re := range []*regexp.Regexp{locPairRe, viewpointPairRe} {
		m := re.FindStringSubmatch(href)
		if m == nil {
			continue
		}
		lat, err1 := strconv.ParseFloat(m[1], 64)
		lng, err2 := strconv.ParseFloat(m[2], 64)
		if err1 == nil && err2 == nil {
			return LatLng{Lat: lat, Lng: lng}, true
		}
	}
	return LatLng{}, false
}
