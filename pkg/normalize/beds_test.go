package normalize

import "testing"

func TestParseBeds(t *testing.T) {
	tests := []struct {
		input string
		want  *BedRange
	}{
		{"2 Bed", &BedRange{Min: 2, Max: 2}},
		{"1 to 3 beds", &BedRange{Min: 1, Max: 3}},
		{"2 - 4 Bed", &BedRange{Min: 2, Max: 4}},
		{"3 to 2 bed", &BedRange{Min: 2, Max: 3}},
		{"3bed", &BedRange{Min: 3, Max: 3}},
		{"Studio", &BedRange{Min: 1, Max: 1, IsStudio: true}},
		{"studio apartment", &BedRange{Min: 1, Max: 1, IsStudio: true}},
		{"", nil},
		{"Apartment", nil},
	}

	for _, tt := range tests {
		got := ParseBeds(tt.input)
		if tt.want == nil {
			if got != nil {
				t.Errorf("ParseBeds(%q): expected nil, got %+v", tt.input, *got)
			}
			continue
		}
		if got == nil {
			t.Errorf("ParseBeds(%q): expected %+v, got nil", tt.input, *tt.want)
			continue
		}
		if *got != *tt.want {
			t.Errorf("ParseBeds(%q): expected %+v, got %+v", tt.input, *tt.want, *got)
		}
	}
}
