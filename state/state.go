// Package state implements the State algebra of §3.2/§4.1: an
// immutable, canonical assignment of qualities, its partial order, and
// its meet, grounded on original_source/plotex.py's State class and on
// ir.Node's hashing/comparison approach from the teacher library.
package state

import (
	"hash/maphash"
	"sort"
	"strings"

	"github.com/plotex-go/plotex/quality"
	"github.com/plotex-go/plotex/value"
)

var hashSeed = maphash.MakeSeed()

// State is an immutable, canonical mapping from quality keys to values.
// Falsy values are never stored (canonicalization), so len(qualities)
// is also the number of "present" qualities.
type State struct {
	schema *quality.Schema
	name   string
	vals   map[quality.Key]value.Value

	hashOnce bool
	hashVal  uint64
	keyOnce  bool
	keyVal   string
}

// New builds a canonical State from raw quality values, against schema.
// Every key must be declared in schema. Falsy values (the zero value
// for their type) are dropped, matching canonize(). New never mutates
// the input map.
func New(schema *quality.Schema, qualities map[string]any) (*State, error) {
	vals := make(map[quality.Key]value.Value, len(qualities))
	for k, raw := range qualities {
		key := quality.Key(k)
		t, ok := schema.Type(key)
		if !ok {
			return nil, newSchemaError(key)
		}
		v, err := value.From(t, raw)
		if err != nil {
			return nil, err
		}
		if !v.Truthy() {
			continue
		}
		vals[key] = v
	}
	return &State{schema: schema, vals: vals}, nil
}

// Empty returns the <= minimum state for schema: no qualities present.
func Empty(schema *quality.Schema) *State {
	return &State{schema: schema, vals: map[quality.Key]value.Value{}}
}

// WithName returns a copy of s carrying a display name (used by
// scenario.Builder when registering a declared state). States are
// otherwise unnamed.
func (s *State) WithName(name string) *State {
	cp := *s
	cp.name = name
	cp.hashOnce, cp.keyOnce = false, false
	return &cp
}

// Name returns s's declared name, or "" if unnamed.
func (s *State) Name() string { return s.name }

// Schema returns the schema s was built against.
func (s *State) Schema() *quality.Schema { return s.schema }

// Get returns the value stored for k and whether k is present
// (canonically truthy) in s.
func (s *State) Get(k quality.Key) (value.Value, bool) {
	v, ok := s.vals[k]
	return v, ok
}

// Has reports whether k is present in s.
func (s *State) Has(k quality.Key) bool {
	_, ok := s.vals[k]
	return ok
}

// Keys returns every present quality key, sorted case-insensitively
// (the order §6.4 prints states in).
func (s *State) Keys() []quality.Key {
	keys := make([]quality.Key, 0, len(s.vals))
	for k := range s.vals {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return strings.ToUpper(string(keys[i])) < strings.ToUpper(string(keys[j]))
	})
	return keys
}

// Equal reports whether two states have identical canonical mappings.
func Equal(a, b *State) bool {
	if len(a.vals) != len(b.vals) {
		return false
	}
	for k, av := range a.vals {
		bv, ok := b.vals[k]
		if !ok || !value.Equal(av, bv) {
			return false
		}
	}
	return true
}

// Key returns a content-addressed string uniquely identifying s's
// canonical mapping, stable across calls and suitable as a Go map key
// for the search engine's node table (the Go analogue of the original's
// reliance on State.__hash__/__eq__ for dict keys).
func (s *State) Key() string {
	if s.keyOnce {
		return s.keyVal
	}
	keys := s.Keys()
	var b strings.Builder
	for _, k := range keys {
		v := s.vals[k]
		b.WriteString(string(k))
		b.WriteByte('=')
		b.WriteString(v.Canonical())
		b.WriteByte('\x1f')
	}
	s.keyVal = b.String()
	s.keyOnce = true
	return s.keyVal
}

// Hash returns a stable 64-bit hash of s's canonical mapping, computed
// with hash/maphash the same way ir.Node.Hash combines child hashes.
func (s *State) Hash() uint64 {
	if s.hashOnce {
		return s.hashVal
	}
	var h maphash.Hash
	h.SetSeed(hashSeed)
	h.WriteString(s.Key())
	s.hashVal = h.Sum64()
	s.hashOnce = true
	return s.hashVal
}

// Contains reports B <= A, i.e. a.Contains(b): for every positive-sense
// key, a's value is at least b's; for every negative-sense key, a's
// burden is at most b's. This is the partial order of §3.2.
func (a *State) Contains(b *State) bool {
	for k, bv := range b.vals {
		if k.SenseOf() != quality.Positive {
			continue
		}
		if !a.AtLeast(k, bv) {
			return false
		}
	}
	for k, bv := range b.vals {
		if k.SenseOf() != quality.Negative {
			continue
		}
		if !a.AtMost(k, bv) {
			return false
		}
	}
	for k := range a.vals {
		if k.SenseOf() != quality.Negative {
			continue
		}
		if _, ok := b.vals[k]; !ok {
			return false
		}
	}
	return true
}

// Less reports a < b (a.Contains inverted and strict): b.Contains(a) &&
// !Equal(a, b).
func Less(a, b *State) bool {
	return b.Contains(a) && !Equal(a, b)
}

// AtLeast tests whether s's value for k dominates val (val or better),
// per the at_least table in §3.2. Only meaningful for positive-sense
// keys; exported so the action package can implement Has/HasAny
// directly against it, the same comparison state.atleast performed.
func (s *State) AtLeast(k quality.Key, val value.Value) bool {
	if !val.Truthy() {
		return true
	}
	sv, ok := s.vals[k]
	if !ok {
		return false
	}
	switch val.Type() {
	case quality.Int:
		return sv.IntVal() >= val.IntVal()
	case quality.StringSet:
		return sv.SetSuperset(val)
	default:
		return value.Equal(sv, val)
	}
}

// AtMost tests whether s's value for k does not exceed val (val or
// less), per the at_most table in §3.2. Only meaningful for
// negative-sense keys.
func (s *State) AtMost(k quality.Key, val value.Value) bool {
	sv, ok := s.vals[k]
	if !val.Truthy() {
		return !ok
	}
	if !ok {
		return true
	}
	switch val.Type() {
	case quality.Int:
		return sv.IntVal() <= val.IntVal()
	case quality.StringSet:
		return val.SetSuperset(sv)
	default:
		return value.Equal(sv, val)
	}
}

// Values returns a copy of s's canonical (key -> value) mapping, for
// callers (the action package) that need to overlay raw values on top
// of an existing state to build a successor.
func (s *State) Values() map[quality.Key]value.Value {
	out := make(map[quality.Key]value.Value, len(s.vals))
	for k, v := range s.vals {
		out[k] = v
	}
	return out
}

// FromValues builds a canonical State directly from a (possibly
// non-canonical) key->value mapping, dropping falsy entries, the Go
// analogue of passing a raw dict to State(**dic) for reconstruction.
func FromValues(schema *quality.Schema, vals map[quality.Key]value.Value) *State {
	out := make(map[quality.Key]value.Value, len(vals))
	for k, v := range vals {
		if v.Truthy() {
			out[k] = v
		}
	}
	return &State{schema: schema, vals: out}
}

func newSchemaError(k quality.Key) error {
	return &keyError{key: k}
}

type keyError struct{ key quality.Key }

func (e *keyError) Error() string {
	return "plotex: unknown quality " + string(e.key) + " for this schema"
}

func (e *keyError) Unwrap() error { return quality.ErrSchema }
