package extract

import (
	"testing"

	"github.com/amineremache/dafty-mcp/pkg/listing"
)

func ptr[T any](v T) *T { return &v }

// --- EnrichWithDetail Tests ---

func TestEnrichWithDetail_Single(t *testing.T) {
	partial := listing.Listing{
		ID:        "5012345",
		URL:       "https://www.daft.ie/for-rent/x/5012345",
		Address:   "12 Pembroke Cottages, Ringsend, Dublin 4",
		Latitude:  ptr(1.0),
		Longitude: ptr(2.0),
	}

	got, err := EnrichWithDetail(partial, readTestdata(t, "detail_single.html"), testBaseURL)
	if err != nil {
		t.Fatalf("EnrichWithDetail() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	rec := got[0]
	if *rec.Latitude != 53.3402 || *rec.Longitude != -6.2254 {
		t.Errorf("expected detail coordinates to replace card ones, got %v,%v", *rec.Latitude, *rec.Longitude)
	}
	if rec.EnergyRating != "C1" {
		t.Errorf("expected BER C1 from detail page, got %q", rec.EnergyRating)
	}
}

func TestEnrichWithDetail_KeepsExistingRating(t *testing.T) {
	partial := listing.Listing{ID: "1", URL: "https://www.daft.ie/for-rent/x/1", EnergyRating: "B2"}

	got, err := EnrichWithDetail(partial, readTestdata(t, "detail_single.html"), testBaseURL)
	if err != nil {
		t.Fatalf("EnrichWithDetail() error = %v", err)
	}
	if got[0].EnergyRating != "B2" {
		t.Errorf("expected card rating kept, got %q", got[0].EnergyRating)
	}
}

func TestEnrichWithDetail_Development(t *testing.T) {
	partial := listing.Listing{
		ID:      "6000001",
		URL:     "https://www.daft.ie/for-rent/the-quay-grand-canal-dock-dublin-2/6000001",
		Address: "The Quay, Grand Canal Dock, Dublin 2",
		Tagline: "Brand new build to rent development",
	}

	got, err := EnrichWithDetail(partial, readTestdata(t, "detail_development.html"), testBaseURL)
	if err != nil {
		t.Fatalf("EnrichWithDetail() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 units (one without price dropped), got %d", len(got))
	}

	wantIDs := []string{"6000101", "6000102", "6000103"}
	for i, unit := range got {
		if unit.ID != wantIDs[i] {
			t.Errorf("unit %d: expected id %s, got %s", i, wantIDs[i], unit.ID)
		}
		if unit.Address != partial.Address {
			t.Errorf("unit %d: expected parent address, got %q", i, unit.Address)
		}
		if unit.Tagline != partial.Tagline {
			t.Errorf("unit %d: expected parent tagline, got %q", i, unit.Tagline)
		}
		if !unit.HasCoordinates() || *unit.Latitude != 53.3391 || *unit.Longitude != -6.2371 {
			t.Errorf("unit %d: expected detail coordinates, got %v,%v", i, unit.Latitude, unit.Longitude)
		}
		if unit.PriceText == "" || unit.MonthlyPrice == nil {
			t.Errorf("unit %d: expected own price, got %q", i, unit.PriceText)
		}
	}
	if got[2].Beds == nil || got[2].Beds.Min != 3 {
		t.Errorf("expected third unit to have 3 beds, got %+v", got[2].Beds)
	}

	wantBER := []string{"A2", "B1", ""}
	for i, unit := range got {
		if unit.EnergyRating != wantBER[i] {
			t.Errorf("unit %d: expected energy rating %q, got %q", i, wantBER[i], unit.EnergyRating)
		}
	}
}

func TestEnrichWithDetail_DevelopmentWithoutAddressDropsAll(t *testing.T) {
	partial := listing.Listing{ID: "6000001", URL: "https://www.daft.ie/for-rent/q/6000001"}

	got, err := EnrichWithDetail(partial, readTestdata(t, "detail_development.html"), testBaseURL)
	if err != nil {
		t.Fatalf("EnrichWithDetail() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected every unit dropped without an address, got %d", len(got))
	}
}
