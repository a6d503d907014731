// Package listing defines the rental listing record and the search criteria
// used to find and filter listings.
package listing

import "github.com/amineremache/dafty-mcp/pkg/normalize"

// Listing is one rentable property as shown on the site.
//
// A listing built from a development card may carry Units. Such a record is
// an intermediate aggregate: it is expanded by Flatten and never leaves the
// search pipeline with Units set.
type Listing struct {
	ID           string              `json:"id" yaml:"id"`
	URL          string              `json:"url" yaml:"url"`
	Address      string              `json:"address" yaml:"address"`
	Tagline      string              `json:"tagline,omitempty" yaml:"tagline,omitempty"`
	PriceText    string              `json:"priceRawText" yaml:"priceRawText"`
	MonthlyPrice *float64            `json:"priceMonthlyValue" yaml:"priceMonthlyValue"`
	PriceKind    normalize.PriceKind `json:"priceKind" yaml:"priceKind"`
	BedsText     string              `json:"bedsRawText,omitempty" yaml:"bedsRawText,omitempty"`
	Beds         *normalize.BedRange `json:"beds" yaml:"beds"`
	BathsText    string              `json:"bathsRawText,omitempty" yaml:"bathsRawText,omitempty"`
	PropertyType string              `json:"propertyType,omitempty" yaml:"propertyType,omitempty"`
	EnergyRating string              `json:"energyRating,omitempty" yaml:"energyRating,omitempty"`
	Latitude     *float64            `json:"latitude,omitempty" yaml:"latitude,omitempty"`
	Longitude    *float64            `json:"longitude,omitempty" yaml:"longitude,omitempty"`

	Units []Listing `json:"-" yaml:"-"`
}

// SetPrice stores the raw price text along with its parsed form.
func (l *Listing) SetPrice(text string) {
	p := normalize.ParsePrice(text)
	l.PriceText = text
	l.MonthlyPrice = p.Value
	l.PriceKind = p.Kind
}

// SetBeds stores the raw bedroom text along with its parsed range.
func (l *Listing) SetBeds(text string) {
	l.BedsText = text
	l.Beds = normalize.ParseBeds(text)
}

// SetCoordinates replaces the listing's coordinates.
func (l *Listing) SetCoordinates(ll normalize.LatLng) {
	lat, lng := ll.Lat, ll.Lng
	l.Latitude = &lat
	l.Longitude = &lng
}

// HasCoordinates reports whether both latitude and longitude are known.
func (l *Listing) HasCoordinates() bool {
	return l.Latitude != nil && l.Longitude != nil
}

// InheritFrom copies the location context a unit shares with its development.
func (l *Listing) InheritFrom(parent Listing) {
	l.Address = parent.Address
	l.Tagline = parent.Tagline
	l.Latitude = parent.Latitude
	l.Longitude = parent.Longitude
}

// Valid reports whether the listing has the identity every emitted record needs.
func (l *Listing) Valid() bool {
	return l.ID != "" && l.URL != ""
}

// Flatten expands development aggregates into one record per unit and drops
// records without an ID or URL. Order is preserved; units take the position
// of their parent.
func Flatten(records []Listing) []Listing {
	out := make([]Listing, 0, len(records))
	for _, rec := range records {
		if len(rec.Units) == 0 {
			if rec.Valid() {
				out = append(out, rec)
			}
			continue
		}
		for _, unit := range rec.Units {
			unit.InheritFrom(rec)
			unit.Units = nil
			if unit.Valid() {
				out = append(out, unit)
			}
		}
	}
	return out
}
