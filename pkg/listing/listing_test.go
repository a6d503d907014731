package listing

import (
	"errors"
	"testing"

	"github.com/amineremache/dafty-mcp/pkg/normalize"
)

func ptr[T any](v T) *T { return &v }

// --- Flatten Tests ---

func TestFlatten_ExpandsUnits(t *testing.T) {
	parent := Listing{
		ID:        "100",
		URL:       "https://www.daft.ie/for-rent/the-docks/100",
		Address:   "The Docks, Grand Canal Dock, Dublin 2",
		Tagline:   "New development",
		Latitude:  ptr(53.34),
		Longitude: ptr(-6.23),
		Units: []Listing{
			{ID: "101", URL: "https://www.daft.ie/for-rent/unit/101"},
			{ID: "102", URL: "https://www.daft.ie/for-rent/unit/102"},
			{ID: "", URL: "https://www.daft.ie/for-rent/unit/broken"},
		},
	}
	standalone := Listing{ID: "200", URL: "https://www.daft.ie/for-rent/flat/200", Address: "Ringsend"}

	got := Flatten([]Listing{parent, standalone})
	if len(got) != 3 {
		t.Fatalf("expected 3 records, got %d", len(got))
	}
	for _, rec := range got[:2] {
		if rec.Address != parent.Address {
			t.Errorf("expected inherited address %q, got %q", parent.Address, rec.Address)
		}
		if !rec.HasCoordinates() || *rec.Latitude != 53.34 {
			t.Errorf("expected inherited coordinates, got %v,%v", rec.Latitude, rec.Longitude)
		}
		if rec.Units != nil {
			t.Error("flattened record still carries units")
		}
	}
	if got[2].ID != "200" {
		t.Errorf("expected standalone record last, got %q", got[2].ID)
	}
}

func TestFlatten_DropsInvalid(t *testing.T) {
	got := Flatten([]Listing{{ID: "1"}, {URL: "https://x"}, {ID: "2", URL: "https://y"}})
	if len(got) != 1 || got[0].ID != "2" {
		t.Errorf("expected only record 2, got %+v", got)
	}
}

func TestSetPrice(t *testing.T) {
	var l Listing
	l.SetPrice("€400 per week")
	if l.PriceKind != normalize.PriceNumeric || l.MonthlyPrice == nil || *l.MonthlyPrice != 1733 {
		t.Errorf("unexpected price: kind=%q value=%v", l.PriceKind, l.MonthlyPrice)
	}
	if l.PriceText != "€400 per week" {
		t.Errorf("expected raw text kept, got %q", l.PriceText)
	}
}

// --- Criteria Tests ---

func TestCriteriaValidate_OK(t *testing.T) {
	c := Criteria{
		Locations:    []string{"Dublin 4"},
		MinPrice:     ptr(1000.0),
		MaxPrice:     ptr(2500.0),
		Beds:         ptr(2),
		PropertyType: "apartment",
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("expected valid criteria, got %v", err)
	}
	if err := (Criteria{}).Validate(); err != nil {
		t.Fatalf("expected empty criteria to be valid, got %v", err)
	}
}

func TestCriteriaValidate_Errors(t *testing.T) {
	tests := []struct {
		name  string
		c     Criteria
		field string
	}{
		{"negative min", Criteria{MinPrice: ptr(-1.0)}, "MinPrice"},
		{"inverted range", Criteria{MinPrice: ptr(3000.0), MaxPrice: ptr(1000.0)}, "MinPrice"},
		{"too many beds", Criteria{Beds: ptr(40)}, "Beds"},
		{"blank location", Criteria{Locations: []string{"  "}}, "Locations[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			found := false
			for _, f := range verr.Fields {
				if f.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("expected field %q in %+v", tt.field, verr.Fields)
			}
		})
	}
}
