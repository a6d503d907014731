package query

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		locations []string
		minPrice  float64
		maxPrice  float64
		beds      int
		propType  string
	}{
		{
			name:      "beds type place and ceiling",
			text:      "2 bed apartment in Ringsend under €2,500",
			locations: []string{"Ringsend"},
			maxPrice:  2500,
			beds:      2,
			propType:  "apartment",
		},
		{
			name:      "studio counts as one bed",
			text:      "studio in Dublin 8 max 1800",
			locations: []string{"Dublin 8"},
			maxPrice:  1800,
			beds:      1,
		},
		{
			name:      "range with words and k suffix",
			text:      "three bedroom house near Cork between 1,500 and 2k",
			locations: []string{"Cork"},
			minPrice:  1500,
			maxPrice:  2000,
			beds:      3,
			propType:  "house",
		},
		{
			name:      "several places and a floor",
			text:      "townhouse in Howth or Malahide over €3000",
			locations: []string{"Howth", "Malahide"},
			minPrice:  3000,
			propType:  "townhouse",
		},
		{
			name:      "reversed range",
			text:      "flat from 2000 to 1200",
			minPrice:  1200,
			maxPrice:  2000,
			propType:  "apartment",
		},
		{
			name:      "county qualifier kept",
			text:      "1-bed in Carrigaline, Cork",
			locations: []string{"Carrigaline, Cork"},
			beds:      1,
		},
		{
			name: "nothing recognised",
			text: "somewhere nice please",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Parse(tt.text)

			if !reflect.DeepEqual(c.Locations, tt.locations) {
				t.Errorf("expected locations %v, got %v", tt.locations, c.Locations)
			}
			checkFloat(t, "min price", c.MinPrice, tt.minPrice)
			checkFloat(t, "max price", c.MaxPrice, tt.maxPrice)
			switch {
			case tt.beds == 0 && c.Beds != nil:
				t.Errorf("expected no beds, got %d", *c.Beds)
			case tt.beds != 0 && (c.Beds == nil || *c.Beds != tt.beds):
				t.Errorf("expected %d beds, got %v", tt.beds, c.Beds)
			}
			if c.PropertyType != tt.propType {
				t.Errorf("expected type %q, got %q", tt.propType, c.PropertyType)
			}
		})
	}
}

func checkFloat(t *testing.T, name string, got *float64, want float64) {
	t.Helper()
	if want == 0 {
		if got != nil {
			t.Errorf("expected no %s, got %v", name, *got)
		}
		return
	}
	if got == nil || *got != want {
		t.Errorf("expected %s %v, got %v", name, want, got)
	}
}

func TestParseAmount(t *testing.T) {
	tests := map[string]float64{
		"2,500":  2500,
		"2.5k":   2500,
		"1800":   1800,
		"1500.5": 1500.5,
	}
	for in, want := range tests {
		got, ok := parseAmount(in)
		if !ok || got != want {
			t.Errorf("parseAmount(%q): expected %v, got %v (ok=%v)", in, want, got, ok)
		}
	}
	if _, ok := parseAmount("abc"); ok {
		t.Error("expected failure for non-numeric input")
	}
}
