package normalize

import "testing"

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  PriceKind
		value float64
	}{
		{"monthly with currency", "€2,000 per month", PriceNumeric, 2000},
		{"weekly converts to monthly", "€500 per week", PriceNumeric, 2167},
		{"weekly abbreviation", "€450 pw", PriceNumeric, 1950},
		{"non-breaking space before period", "€500\u00a0per\u00a0week", PriceNumeric, 2167},
		{"weekly slash form", "€300 p/w", PriceNumeric, 1300},
		{"monthly slash form", "€1,750 p/m", PriceNumeric, 1750},
		{"monthly pm", "€1800pm", PriceNumeric, 1800},
		{"a month", "€1,650 a month", PriceNumeric, 1650},
		{"currency only", "€1,200", PriceNumeric, 1200},
		{"small figure with currency", "€80", PriceNumeric, 80},
		{"decimal amount", "€1,500.50 per month", PriceNumeric, 1500.50},
		{"from prefix", "From €2,100 per month", PriceNumeric, 2100},
		{"leading bed count ignored", "2 bed apartment €1,500 per month", PriceNumeric, 1500},
		{"strict form without currency", "1400 monthly", PriceNumeric, 1400},
		{"bare number", "1500", PriceNumeric, 1500},
		{"on application", "Price on Application", PriceOnApplication, 0},
		{"contact agent", "Please contact agent", PriceOnApplication, 0},
		{"empty", "", PriceUnknown, 0},
		{"whitespace", "   ", PriceUnknown, 0},
		{"small bare number rejected", "5", PriceUnknown, 0},
		{"postal district rejected", "Dublin 4", PriceUnknown, 0},
		{"no digits", "negotiable", PriceUnknown, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePrice(tt.input)
			if got.Kind != tt.kind {
				t.Fatalf("ParsePrice(%q).Kind: expected %q, got %q", tt.input, tt.kind, got.Kind)
			}
			if tt.kind != PriceNumeric {
				if got.Value != nil {
					t.Errorf("ParsePrice(%q): expected nil value, got %v", tt.input, *got.Value)
				}
				return
			}
			if got.Value == nil {
				t.Fatalf("ParsePrice(%q): expected value %v, got nil", tt.input, tt.value)
			}
			if *got.Value != tt.value {
				t.Errorf("ParsePrice(%q): expected %v, got %v", tt.input, tt.value, *got.Value)
			}
		})
	}
}

func TestParsePrice_PeriodSynonyms(t *testing.T) {
	monthly := []string{"month", "pm", "p/m", "mth"}
	weekly := []string{"week", "pw", "p/w", "wk"}

	for _, p := range monthly {
		got := ParsePrice("€1200 per " + p)
		if got.Kind != PriceNumeric || got.Value == nil || *got.Value != 1200 {
			t.Errorf("period %q: expected 1200 monthly, got %+v", p, got)
		}
	}
	for _, p := range weekly {
		got := ParsePrice("€1200 per " + p)
		if got.Kind != PriceNumeric || got.Value == nil || *got.Value != 5200 {
			t.Errorf("period %q: expected 5200 monthly, got %+v", p, got)
		}
	}
}
