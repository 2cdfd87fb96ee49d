package field

import "testing"

func TestCurrency(t *testing.T) {
	cases := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"$40.54M", "$40.54M", true},
		{"$40.54N", "$40.54M", true},
		{"S2.46M", "$2.46M", true},
		{"40.54 m", "$40.54M", true},
		{"12.5", "$12.5M", true},
		{"", "", false},
		{"--", "", false},
		{"abc", "", false},
	}
	for _, c := range cases {
		got, ok := Currency(c.raw)
		if ok != c.ok || got != c.want {
			t.Fatalf("Currency(%q) = %q ok=%v, want %q ok=%v", c.raw, got, ok, c.want, c.ok)
		}
	}
	// Normalized output must survive a second pass unchanged.
	once, _ := Currency("$40.54N")
	twice, ok := Currency(once)
	if !ok || twice != once {
		t.Fatalf("Currency not idempotent: %q then %q", once, twice)
	}
}

func TestOptionEnum(t *testing.T) {
	e := OptionEnum()
	cases := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"Player", "Player", true},
		{"PLAYFR", "Player", true},
		{"Team", "Team", true},
		{"2 Yr Team", "2 Yr Team", true},
		{"2YrTeam", "2 Yr Team", true},
		{"None", "None", true},
		{"NONF", "None", true},
		{"garbage", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, ok := e.Normalize(c.raw)
		if ok != c.ok || got != c.want {
			t.Fatalf("Option(%q) = %q ok=%v, want %q ok=%v", c.raw, got, ok, c.want, c.ok)
		}
	}
}

func TestExtensionAndNTCEnums(t *testing.T) {
	ext := ExtensionEnum()
	if got, ok := ext.Normalize("WILL RESIGN"); !ok || got != "Will Resign" {
		t.Fatalf("extension = %q ok=%v", got, ok)
	}
	if got, ok := ext.Normalize("not eligible"); !ok || got != "Not Eligible" {
		t.Fatalf("extension = %q ok=%v", got, ok)
	}

	ntc := NTCEnum()
	for raw, want := range map[string]string{"Yes": "Yes", "YFS": "Yes", "Y": "Yes", "No": "No", "N0": "No", "N": "No"} {
		if got, ok := ntc.Normalize(raw); !ok || got != want {
			t.Fatalf("ntc(%q) = %q ok=%v, want %q", raw, got, ok, want)
		}
	}
	if _, ok := ntc.Normalize("maybe"); ok {
		t.Fatalf("ntc accepted garbage")
	}
}

func TestRatingRangeRecoversMissingLeadingDigit(t *testing.T) {
	r := RatingRange()

	v, conf, ok := r.Normalize("78", 80)
	if !ok || v != 78 || conf != 80 {
		t.Fatalf("in-range = %d conf=%v ok=%v", v, conf, ok)
	}

	// "18" is a 78 that lost its leading digit; confidence takes a haircut.
	v, conf, ok = r.Normalize("18", 80)
	if !ok || v != 78 {
		t.Fatalf("recovered = %d ok=%v, want 78", v, ok)
	}
	if conf >= 80 {
		t.Fatalf("recovered confidence %v not reduced", conf)
	}

	// A lone digit reconstructs against the tens candidates, lowest first.
	v, conf, ok = r.Normalize("8", 90)
	if !ok || v != 78 || conf != 40 {
		t.Fatalf("reconstructed = %d conf=%v ok=%v, want 78 conf=40", v, conf, ok)
	}

	if _, _, ok := r.Normalize("203", 90); ok {
		t.Fatalf("accepted out-of-range value")
	}
	if _, _, ok := r.Normalize("no digits", 90); ok {
		t.Fatalf("accepted digitless text")
	}
}

func TestAgeRange(t *testing.T) {
	a := AgeRange()
	if v, _, ok := a.Normalize("Age: 24", 70); !ok || v != 24 {
		t.Fatalf("age = %d ok=%v", v, ok)
	}
	// Single digit 8 can only be 18 in range.
	if v, conf, ok := a.Normalize("8", 70); !ok || v != 18 || conf != 35 {
		t.Fatalf("age reconstruct = %d conf=%v ok=%v", v, conf, ok)
	}
	if _, _, ok := a.Normalize("99", 70); ok {
		t.Fatalf("accepted implausible age")
	}
}

func TestWinLoss(t *testing.T) {
	rec, w, l, ok := WinLoss(" 41 - 31 ")
	if !ok || rec != "41-31" || w != 41 || l != 31 {
		t.Fatalf("WinLoss = %q %d %d ok=%v", rec, w, l, ok)
	}
	if _, _, _, ok := WinLoss("-"); ok {
		t.Fatalf("accepted bare dash")
	}
}

func TestSignStatus(t *testing.T) {
	cases := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"1yr +1", "1yr +1", true},
		{"2 yrs + 2", "2yrs +2", true},
		{"4 YRS", "4yrs", true},
		{"none", "", false},
	}
	for _, c := range cases {
		got, ok := SignStatus(c.raw)
		if ok != c.ok || got != c.want {
			t.Fatalf("SignStatus(%q) = %q ok=%v, want %q ok=%v", c.raw, got, ok, c.want, c.ok)
		}
	}
}

func TestPickFields(t *testing.T) {
	if y, ok := PickYear("2028 "); !ok || y != "2028" {
		t.Fatalf("year = %q ok=%v", y, ok)
	}
	if _, ok := PickYear("1999"); ok {
		t.Fatalf("accepted out-of-window year")
	}

	if _, ok := PickNumber("--"); ok {
		t.Fatalf("accepted unassigned slot")
	}
	if p, ok := PickNumber("No. 14"); !ok || p != "14" {
		t.Fatalf("pick = %q ok=%v", p, ok)
	}

	if _, ok := PickProtection("None"); ok {
		t.Fatalf("accepted None protection")
	}
	if p, ok := PickProtection("Top  10"); !ok || p != "Top 10" {
		t.Fatalf("protection = %q ok=%v", p, ok)
	}

	if o, ok := PickOrigin(" Bulls* "); !ok || o != "Bulls" {
		t.Fatalf("origin = %q ok=%v", o, ok)
	}
	if _, ok := PickOrigin("--"); ok {
		t.Fatalf("accepted dash origin")
	}
}

func TestRoundEnum(t *testing.T) {
	e := RoundEnum()
	for raw, want := range map[string]string{"1st": "1st", "1": "1st", "2nd": "2nd", "2": "2nd"} {
		if got, ok := e.Normalize(raw); !ok || got != want {
			t.Fatalf("round(%q) = %q ok=%v", raw, got, ok)
		}
	}
}
