package field

import "testing"

func newTestNameNormalizer() *NameNormalizer {
	return NewNameNormalizer(DefaultTables().NameCorrections)
}

func TestNormalizeNameCanonicalForms(t *testing.T) {
	n := newTestNameNormalizer()
	cases := []struct {
		raw  string
		want string
	}{
		{"J. Brunson", "J. Brunson"},
		{"PDadiet", "P. Dadiet"},
		{"Mi.Bridges", "M. Bridges"},
		{"Ml. Bridges", "M. Bridges"},
		{".Anunoby", "A. Nunoby"},
		{"l. James", "I. James"},
		{"J. lsaac", "J. Lsaac"},
		{"C. Porter JR", "C. Porter Jr."},
		{"g. hill ii.", "G. Hill II"},
		{"J.Brunson|", "J. Brunson"},
	}
	for _, c := range cases {
		got, ok := n.Normalize(c.raw)
		if !ok {
			t.Fatalf("Normalize(%q) rejected, want %q", c.raw, c.want)
		}
		if got != c.want {
			t.Fatalf("Normalize(%q) = %q, want %q", c.raw, got, c.want)
		}
	}
}

func TestNormalizeNameAppliesCorrections(t *testing.T) {
	n := newTestNameNormalizer()
	for _, raw := range []string{"D. Oncic", "d oncic"} {
		got, ok := n.Normalize(raw)
		if !ok || got != "L. Doncic" {
			t.Fatalf("Normalize(%q) = %q ok=%v, want L. Doncic", raw, got, ok)
		}
	}
}

func TestNormalizeNameIdempotent(t *testing.T) {
	n := newTestNameNormalizer()
	for _, raw := range []string{"J. Brunson", "C. Porter Jr.", "G. Hill II", "L. Doncic", "M. Bridges"} {
		once, ok := n.Normalize(raw)
		if !ok {
			t.Fatalf("Normalize(%q) rejected", raw)
		}
		twice, ok := n.Normalize(once)
		if !ok || twice != once {
			t.Fatalf("Normalize(%q) not idempotent: %q then %q", raw, once, twice)
		}
	}
}

func TestNormalizeNameRejectsGarbage(t *testing.T) {
	n := newTestNameNormalizer()
	for _, raw := range []string{"", "   ", "A", "E. E", "....", "1234", "%%%%"} {
		if got, ok := n.Normalize(raw); ok {
			t.Fatalf("Normalize(%q) = %q, want rejection", raw, got)
		}
	}
}

func TestNormalizeNameSuffixRules(t *testing.T) {
	n := newTestNameNormalizer()

	// Only known suffixes are allowed as a third token.
	if got, ok := n.Normalize("J. Brunson Extra"); ok {
		t.Fatalf("unexpected accept of trailing token: %q", got)
	}
	got, ok := n.Normalize("C. Porter sr")
	if !ok || got != "C. Porter Sr." {
		t.Fatalf("suffix normalize = %q ok=%v, want C. Porter Sr.", got, ok)
	}
}

func TestCleanKeepsUnvalidatedText(t *testing.T) {
	n := newTestNameNormalizer()
	// Clean repairs shape without rejecting, so scorers can rank raw reads.
	if got := n.Clean("PDadiet"); got != "P. Dadiet" {
		t.Fatalf("Clean = %q, want P. Dadiet", got)
	}
	if got := n.Clean("xx"); got == "" {
		t.Fatalf("Clean dropped short text entirely")
	}
}
