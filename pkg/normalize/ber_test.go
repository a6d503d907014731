package normalize

import "testing"

func TestFormatEnergyRating(t *testing.T) {
	tests := map[string]string{
		"BER B2":     "B2",
		"ber A1":     "A1",
		"C3":         "C3",
		"SI_666":     "Exempt",
		"BER SI_666": "Exempt",
		"":           "",
		"  BER E1 ":  "E1",
	}
	for in, want := range tests {
		if got := FormatEnergyRating(in); got != want {
			t.Errorf("FormatEnergyRating(%q): expected %q, got %q", in, want, got)
		}
	}
}
