package merge

import "testing"

func TestUpsertMergesPartialObservations(t *testing.T) {
	s := NewStore()

	// Same player seen twice: once with the rating column unreadable, once
	// with rating 78.
	s.Upsert(Observation{
		Key: "j. brunson", Name: "J. Brunson", NameConf: 88,
		Fields: map[string]Value{"pos": Str("PG")},
		Source: "roster_01.png", Y0: 100, Y1: 130,
	})
	rec := s.Upsert(Observation{
		Key: "j. brunson", Name: "J. Brunson", NameConf: 82,
		Fields: map[string]Value{"pos": Str("PG"), "ovr": Int(78, 90)},
		Source: "roster_02.png", Y0: 220, Y1: 250,
	})

	if rec.Name != "J. Brunson" {
		t.Fatalf("name = %q", rec.Name)
	}
	if ovr, ok := rec.IntField("ovr"); !ok || ovr != 78 {
		t.Fatalf("ovr = %d ok=%v, want 78", ovr, ok)
	}
	if rec.StrField("pos") != "PG" {
		t.Fatalf("pos = %q", rec.StrField("pos"))
	}
	// Second observation filled more fields, so provenance moved there.
	if rec.Source != "roster_02.png" || rec.Y0 != 220 {
		t.Fatalf("provenance = %s y0=%d", rec.Source, rec.Y0)
	}
	if s.Len() != 1 {
		t.Fatalf("len = %d", s.Len())
	}
}

func TestUpsertNeverNullsAField(t *testing.T) {
	s := NewStore()
	s.Upsert(Observation{
		Key: "k", Name: "A. Player", NameConf: 50,
		Fields: map[string]Value{"age": Int(24, 70)},
		Source: "a.png",
	})
	rec := s.Upsert(Observation{
		Key: "k", Name: "A. Player", NameConf: 40,
		Fields: map[string]Value{},
		Source: "b.png",
	})
	if age, ok := rec.IntField("age"); !ok || age != 24 {
		t.Fatalf("age lost: %d ok=%v", age, ok)
	}
	// Emptier observation must not steal provenance either.
	if rec.Source != "a.png" {
		t.Fatalf("provenance = %s", rec.Source)
	}
}

func TestUpsertKeepsExistingOnConflict(t *testing.T) {
	s := NewStore()
	s.Upsert(Observation{
		Key: "k", Name: "A. Player", NameConf: 60,
		Fields: map[string]Value{"ovr": Int(78, 90)},
	})
	rec := s.Upsert(Observation{
		Key: "k", Name: "A. Player", NameConf: 50,
		Fields: map[string]Value{"ovr": Int(18, 30)},
	})
	if ovr, _ := rec.IntField("ovr"); ovr != 78 {
		t.Fatalf("conflict overwrote ovr: %d", ovr)
	}
}

func TestUpsertDisjointFieldsOrderIndependent(t *testing.T) {
	a := Observation{Key: "k", Name: "A. Player", NameConf: 60,
		Fields: map[string]Value{"pos": Str("SG")}}
	b := Observation{Key: "k", Name: "A. Player", NameConf: 55,
		Fields: map[string]Value{"age": Int(24, 70)}}

	s1 := NewStore()
	s1.Upsert(a)
	r1 := s1.Upsert(b)

	s2 := NewStore()
	s2.Upsert(b)
	r2 := s2.Upsert(a)

	for _, name := range []string{"pos", "age"} {
		v1, ok1 := r1.Field(name)
		v2, ok2 := r2.Field(name)
		if !ok1 || !ok2 || v1 != v2 {
			t.Fatalf("field %s differs by order: %+v vs %+v", name, v1, v2)
		}
	}
	if r1.Name != r2.Name {
		t.Fatalf("name differs by order: %q vs %q", r1.Name, r2.Name)
	}
}

func TestUpsertIdempotent(t *testing.T) {
	obs := Observation{Key: "k", Name: "A. Player", NameConf: 60,
		Fields: map[string]Value{"pos": Str("SG"), "age": Int(24, 70)},
		Source: "a.png", Y0: 10, Y1: 40}

	s := NewStore()
	first := s.Upsert(obs)
	id := first.ID
	again := s.Upsert(obs)

	if again.ID != id || s.Len() != 1 {
		t.Fatalf("repeat observation created a new record")
	}
	if again.StrField("pos") != "SG" {
		t.Fatalf("pos = %q", again.StrField("pos"))
	}
	if again.Source != "a.png" || again.Y0 != 10 {
		t.Fatalf("provenance churned: %s y0=%d", again.Source, again.Y0)
	}
}

func TestUpsertSwapsNameOnHigherConfidence(t *testing.T) {
	s := NewStore()
	s.Upsert(Observation{Key: "j. brunson", Name: "J. Brunsan", NameConf: 40,
		Fields: map[string]Value{"pos": Str("PG")}})
	rec := s.Upsert(Observation{Key: "j. brunson", Name: "J. Brunson", NameConf: 91,
		Fields: map[string]Value{}})

	if rec.Name != "J. Brunson" || rec.NameConf != 91 {
		t.Fatalf("name = %q conf=%v", rec.Name, rec.NameConf)
	}
	if rec.StrField("pos") != "PG" {
		t.Fatalf("unrelated field touched: %q", rec.StrField("pos"))
	}
}

func TestUpsertDropsKeylessObservation(t *testing.T) {
	s := NewStore()
	if rec := s.Upsert(Observation{Name: "No Key"}); rec != nil {
		t.Fatalf("keyless observation stored: %+v", rec)
	}
	if s.Len() != 0 {
		t.Fatalf("len = %d", s.Len())
	}
}

func TestRecordsSortedByName(t *testing.T) {
	s := NewStore()
	s.Upsert(Observation{Key: "z", Name: "Z. Last", NameConf: 50, Fields: map[string]Value{}})
	s.Upsert(Observation{Key: "a", Name: "a. first", NameConf: 50, Fields: map[string]Value{}})
	s.Upsert(Observation{Key: "m", Name: "M. Middle", NameConf: 50, Fields: map[string]Value{}})

	recs := s.Records()
	if len(recs) != 3 {
		t.Fatalf("len = %d", len(recs))
	}
	if recs[0].Name != "a. first" || recs[1].Name != "M. Middle" || recs[2].Name != "Z. Last" {
		t.Fatalf("order = %q %q %q", recs[0].Name, recs[1].Name, recs[2].Name)
	}
}
