package field

import "testing"

func newTestResolver() *TeamResolver {
	tables := DefaultTables()
	return NewTeamResolver(tables.Teams, tables.TeamCorrections, 0.75)
}

func TestResolveExactAndContainment(t *testing.T) {
	r := newTestResolver()

	m, ok := r.Resolve("Chicago Bulls")
	if !ok || !m.Known || m.Name != "Chicago Bulls" || m.Conference != "Eastern" {
		t.Fatalf("exact full = %+v ok=%v", m, ok)
	}

	m, ok = r.Resolve("bulls")
	if !ok || !m.Known || m.Name != "Bulls" {
		t.Fatalf("exact short = %+v ok=%v", m, ok)
	}

	// Stray prefix characters and glyph noise around a real name.
	m, ok = r.Resolve("* Dallas Mavericks!")
	if !ok || !m.Known || m.Name != "Dallas Mavericks" || m.Conference != "Western" {
		t.Fatalf("containment = %+v ok=%v", m, ok)
	}
}

func TestResolveViaCorrectionTable(t *testing.T) {
	r := newTestResolver()
	m, ok := r.Resolve("euis")
	if !ok || !m.Known || m.Name != "Bulls" || m.Conference != "Eastern" {
		t.Fatalf("correction = %+v ok=%v", m, ok)
	}
}

func TestResolveFuzzy(t *testing.T) {
	r := newTestResolver()
	// One dropped letter still clears the similarity floor.
	m, ok := r.Resolve("Laker")
	if !ok || !m.Known {
		t.Fatalf("fuzzy = %+v ok=%v", m, ok)
	}
}

func TestResolveUnknownKeepsLiteral(t *testing.T) {
	r := newTestResolver()
	m, ok := r.Resolve("expansion squad")
	if !ok || m.Known {
		t.Fatalf("literal = %+v ok=%v", m, ok)
	}
	if m.Name != "Expansion Squad" {
		t.Fatalf("literal name = %q", m.Name)
	}
	if m.Conference != "" {
		t.Fatalf("literal conference = %q", m.Conference)
	}
}

func TestResolveRejectsHeadersAndFragments(t *testing.T) {
	r := newTestResolver()
	for _, raw := range []string{"", "ab", "TEAM", "NAME", "##"} {
		if m, ok := r.Resolve(raw); ok {
			t.Fatalf("Resolve(%q) = %+v, want rejection", raw, m)
		}
	}
}

func TestConferenceLookup(t *testing.T) {
	r := newTestResolver()
	if c, ok := r.Conference("Utah Jazz"); !ok || c != "Western" {
		t.Fatalf("conference = %q ok=%v", c, ok)
	}
	if c, ok := r.Conference("Wizards"); !ok || c != "Eastern" {
		t.Fatalf("conference = %q ok=%v", c, ok)
	}
	if _, ok := r.Conference("Nowhere"); ok {
		t.Fatalf("unknown team resolved a conference")
	}
}

func TestRatioBounds(t *testing.T) {
	if Ratio("bulls", "bulls") != 1 {
		t.Fatalf("identical ratio != 1")
	}
	if r := Ratio("euis", "bulls"); r >= 0.75 {
		t.Fatalf("ratio(euis, bulls) = %v, expected below fuzzy floor", r)
	}
	if Ratio("", "") != 1 {
		t.Fatalf("empty ratio != 1")
	}
}
