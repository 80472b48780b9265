package docname_test

import (
	"testing"

	"papercard/internal/docname"
)

func TestNumberPrefix(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"01_study.pdf", "01"},
		{"12-survey.pdf", "12"},
		{"007_bond.pdf", "007"},
		{"study.pdf", ""},
		{"01study.pdf", ""},
		{"_leading.pdf", ""},
		{"3.txt", ""},
	}
	for _, tc := range tests {
		if got := docname.NumberPrefix(tc.name); got != tc.want {
			t.Errorf("NumberPrefix(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestPrefixValue(t *testing.T) {
	if got := docname.PrefixValue("07_x.pdf"); got != 7 {
		t.Fatalf("PrefixValue = %d, want 7", got)
	}
	if got := docname.PrefixValue("plain.pdf"); got != 0 {
		t.Fatalf("PrefixValue = %d, want 0", got)
	}
}

func TestStem(t *testing.T) {
	if got := docname.Stem("01_study.pdf"); got != "01_study" {
		t.Fatalf("Stem = %q", got)
	}
	if got := docname.Stem("noext"); got != "noext" {
		t.Fatalf("Stem = %q", got)
	}
}
