// Package merge reconciles repeated observations of the same entity from
// overlapping screenshots into a single record per identity key. Fields only
// ever improve: a null never overwrites a value, and conflicts resolve
// deterministically.
package merge

import (
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Kind discriminates the payload of a Value.
type Kind int

const (
	KindString Kind = iota
	KindInt
)

// Value is one non-null field reading. Absence from an observation's field
// map is the null case.
type Value struct {
	Kind Kind
	Str  string
	Int  int
	Conf float64
}

// Str makes a string Value.
func Str(s string) Value { return Value{Kind: KindString, Str: s} }

// Int makes an integer Value with its reading confidence.
func Int(n int, conf float64) Value { return Value{Kind: KindInt, Int: n, Conf: conf} }

// Observation is one extraction attempt for one entity from one screenshot.
type Observation struct {
	Key      string
	Name     string
	NameConf float64
	Fields   map[string]Value
	Source   string
	Y0, Y1   int
}

// Record is the accumulated best-known field set for one identity key.
type Record struct {
	ID       string
	Key      string
	Name     string
	NameConf float64
	Fields   map[string]Value
	Source   string
	Y0, Y1   int
}

// Field returns the current value for name, if any.
func (r *Record) Field(name string) (Value, bool) {
	v, ok := r.Fields[name]
	return v, ok
}

// StrField returns a string field or "" when unset.
func (r *Record) StrField(name string) string {
	if v, ok := r.Fields[name]; ok && v.Kind == KindString {
		return v.Str
	}
	return ""
}

// IntField returns an integer field; ok is false when unset.
func (r *Record) IntField(name string) (int, bool) {
	if v, ok := r.Fields[name]; ok && v.Kind == KindInt {
		return v.Int, true
	}
	return 0, false
}

// Store holds the merged records for one run. Safe for concurrent upserts
// when extraction is parallelized per image.
type Store struct {
	mu    sync.Mutex
	byKey map[string]*Record
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{byKey: make(map[string]*Record)}
}

// Upsert folds an observation into the store and returns the record for its
// key. Observations without a key are dropped.
func (s *Store) Upsert(obs Observation) *Record {
	if obs.Key == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.byKey[obs.Key]
	if !ok {
		rec = &Record{
			ID:       uuid.NewString(),
			Key:      obs.Key,
			Name:     obs.Name,
			NameConf: obs.NameConf,
			Fields:   make(map[string]Value, len(obs.Fields)),
			Source:   obs.Source,
			Y0:       obs.Y0,
			Y1:       obs.Y1,
		}
		for k, v := range obs.Fields {
			rec.Fields[k] = v
		}
		s.byKey[obs.Key] = rec
		return rec
	}

	// Provenance follows the most informative source, compared before any
	// fields are adopted.
	if len(obs.Fields) > len(rec.Fields) {
		rec.Source = obs.Source
		rec.Y0, rec.Y1 = obs.Y0, obs.Y1
	}

	// A field is adopted only when the record has nothing for it yet.
	for k, v := range obs.Fields {
		if _, have := rec.Fields[k]; !have {
			rec.Fields[k] = v
		}
	}

	// A cleaner read of the display name replaces it without touching the
	// other fields.
	if obs.NameConf > rec.NameConf {
		rec.Name = obs.Name
		rec.NameConf = obs.NameConf
	}
	return rec
}

// Get returns the record for key, if present.
func (s *Store) Get(key string) (*Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.byKey[key]
	return rec, ok
}

// Len reports how many distinct entities have been seen.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byKey)
}

// Records returns all merged records sorted case-insensitively by display
// name, with the key as tie-break.
func (s *Store) Records() []*Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Record, 0, len(s.byKey))
	for _, rec := range s.byKey {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := strings.ToLower(out[i].Name), strings.ToLower(out[j].Name)
		if a != b {
			return a < b
		}
		return out[i].Key < out[j].Key
	})
	return out
}
