package daft

import (
	"net/url"
	"testing"

	"github.com/amineremache/dafty-mcp/pkg/listing"
)

func ptr[T any](v T) *T { return &v }

const base = "https://www.daft.ie"

func TestBuildSearchURL(t *testing.T) {
	tests := []struct {
		name     string
		criteria listing.Criteria
		want     string
	}{
		{
			name: "no criteria",
			want: base + "/property-for-rent/ireland",
		},
		{
			name:     "single postal district",
			criteria: listing.Criteria{Locations: []string{"Dublin 4"}},
			want:     base + "/property-for-rent/dublin-4-dublin",
		},
		{
			name:     "county pair",
			criteria: listing.Criteria{Locations: []string{"Carrigaline, Cork"}},
			want:     base + "/property-for-rent/carrigaline-cork",
		},
		{
			name:     "apartments with price range",
			criteria: listing.Criteria{Locations: []string{"Sandymount"}, PropertyType: "Apartment", MinPrice: ptr(1500.0), MaxPrice: ptr(2500.0)},
			want:     base + "/property-for-rent/sandymount-dublin/apartments?rentalPrice_from=1500&rentalPrice_to=2500",
		},
		{
			name:     "houses",
			criteria: listing.Criteria{PropertyType: "house"},
			want:     base + "/property-for-rent/ireland/houses",
		},
		{
			name:     "other type pluralised",
			criteria: listing.Criteria{PropertyType: "Studio"},
			want:     base + "/property-for-rent/ireland/studios",
		},
		{
			name:     "exact beds",
			criteria: listing.Criteria{Beds: ptr(2)},
			want:     base + "/property-for-rent/ireland?numBeds_from=2&numBeds_to=2",
		},
		{
			name:     "blank location ignored",
			criteria: listing.Criteria{Locations: []string{"   "}},
			want:     base + "/property-for-rent/ireland",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildSearchURL(base+"/", tt.criteria); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestBuildSearchURL_MultipleLocations(t *testing.T) {
	got := BuildSearchURL(base, listing.Criteria{Locations: []string{"Dublin 2", "Ringsend", "Galway"}})

	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("invalid url %q: %v", got, err)
	}
	if u.Path != "/property-for-rent/ireland" {
		t.Errorf("expected nationwide path, got %q", u.Path)
	}
	locs := u.Query()["location"]
	want := []string{"dublin-2-dublin", "ringsend-dublin", "galway"}
	if len(locs) != len(want) {
		t.Fatalf("expected %v, got %v", want, locs)
	}
	for i := range want {
		if locs[i] != want[i] {
			t.Errorf("location %d: expected %q, got %q", i, want[i], locs[i])
		}
	}
}

func TestPageURL(t *testing.T) {
	u := base + "/property-for-rent/ireland?numBeds_from=2&numBeds_to=2"
	if got := PageURL(u, 1); got != u {
		t.Errorf("page 1 should be unchanged, got %q", got)
	}
	want := base + "/property-for-rent/ireland?numBeds_from=2&numBeds_to=2&page=3"
	if got := PageURL(u, 3); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
