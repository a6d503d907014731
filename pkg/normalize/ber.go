package normalize

import "strings"

// exemptRatingCode is the site's code for buildings exempt from a BER.
const exemptRatingCode = "SI_666"

// FormatEnergyRating cleans a Building Energy Rating label: the "BER " prefix
// is removed and the exemption code becomes "Exempt". Empty input stays empty.
func FormatEnergyRating(raw string) string {
	s := strings.TrimSpace(raw)
	if len(s) >= 4 && strings.EqualFold(s[:4], "BER ") {
		s = strings.TrimSpace(s[4:])
	}
	if strings.EqualFold(s, exemptRatingCode) {
		return "Exempt"
	}
	return s
}
