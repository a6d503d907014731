package normalize

import "testing"

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Ringsend, Dublin 4!":    "ringsend-dublin-4",
		"  Grand   Canal Dock ": "grand-canal-dock",
		"Harold's Cross":         "harolds-cross",
		"":                       "",
		"already-a-slug":         "already-a-slug",
	}
	for in, want := range tests {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestSlugify_Idempotent(t *testing.T) {
	for _, s := range []string{"Dún Laoghaire", "Apartment 4, The Docks", "a  b\tc"} {
		once := Slugify(s)
		if twice := Slugify(once); twice != once {
			t.Errorf("Slugify not idempotent for %q: %q then %q", s, once, twice)
		}
	}
}

func TestLocationSlug(t *testing.T) {
	tests := map[string]string{
		"Carrigaline, Cork": "carrigaline-cork",
		"Dublin 2":          "dublin-2-dublin",
		"dublin 15":         "dublin-15-dublin",
		"Sandymount":        "sandymount-dublin",
		"Galway":            "galway",
		"Dublin":            "dublin",
		"Cork, ":            "cork",
		"":                  "",
	}
	for in, want := range tests {
		if got := LocationSlug(in); got != want {
			t.Errorf("LocationSlug(%q): expected %q, got %q", in, want, got)
		}
	}
}
