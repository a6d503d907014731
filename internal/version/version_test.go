package version

import (
	"strings"
	"testing"
)

func TestString_Dirty(t *testing.T) {
	oldV, oldD := Version, Dirty
	defer func() { Version, Dirty = oldV, oldD }()

	Version, Dirty = "1.2.3", "true"
	if got := String(); got != "1.2.3-dirty" {
		t.Errorf("expected 1.2.3-dirty, got %s", got)
	}
	if !Get().Dirty {
		t.Error("expected Dirty in Info")
	}
}

func TestFull(t *testing.T) {
	if !strings.HasPrefix(Full(), Name+" ") {
		t.Errorf("expected banner to start with %s, got %q", Name, Full())
	}
}
