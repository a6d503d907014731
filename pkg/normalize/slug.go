package normalize

import (
	"regexp"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	nonSlugRe    = regexp.MustCompile(`[^a-z0-9-]`)
	postalAreaRe = regexp.MustCompile(`^dublin-\d+[a-z]?$`)
)

// dublinAreas are neighbourhoods the site files under the county, so their
// location slug needs a "-dublin" suffix.
var dublinAreas = map[string]struct{}{
	"ballsbridge":      {},
	"beaumont":         {},
	"blackrock":        {},
	"cabra":            {},
	"castleknock":      {},
	"chapelizod":       {},
	"clonskeagh":       {},
	"clontarf":         {},
	"crumlin":          {},
	"dalkey":           {},
	"dolphins-barn":    {},
	"donnybrook":       {},
	"drumcondra":       {},
	"dun-laoghaire":    {},
	"dundrum":          {},
	"glasnevin":        {},
	"grand-canal-dock": {},
	"harolds-cross":    {},
	"howth":            {},
	"inchicore":        {},
	"irishtown":        {},
	"kilmainham":       {},
	"lucan":            {},
	"malahide":         {},
	"marino":           {},
	"milltown":         {},
	"phibsborough":     {},
	"portobello":       {},
	"raheny":           {},
	"ranelagh":         {},
	"rathfarnham":      {},
	"rathgar":          {},
	"rathmines":        {},
	"ringsend":         {},
	"sandyford":        {},
	"sandymount":       {},
	"smithfield":       {},
	"stillorgan":       {},
	"stoneybatter":     {},
	"swords":           {},
	"tallaght":         {},
	"terenure":         {},
}

// Slugify lowercases s, joins words with hyphens and removes every character
// outside [a-z0-9-]. Slugify(Slugify(s)) == Slugify(s).
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = whitespaceRe.ReplaceAllString(s, "-")
	return nonSlugRe.ReplaceAllString(s, "")
}

// LocationSlug maps a human location to the path segment the site uses.
//
//	"Carrigaline, Cork" -> "carrigaline-cork"
//	"Dublin 2"          -> "dublin-2-dublin"
//	"Sandymount"        -> "sandymount-dublin"
//	"Galway"            -> "galway"
func LocationSlug(location string) string {
	var parts []string
	for _, p := range strings.Split(location, ",") {
		if slug := Slugify(p); slug != "" {
			parts = append(parts, slug)
		}
	}

	switch len(parts) {
	case 0:
		return ""
	case 1:
		slug := parts[0]
		if postalAreaRe.MatchString(slug) {
			return slug + "-dublin"
		}
		if _, ok := dublinAreas[slug]; ok {
			return slug + "-dublin"
		}
		return slug
	default:
		return strings.Join(parts, "-")
	}
}
