// Package quality defines the typed quality schema every PlotEx state and
// action is checked against: a key's type (bool, int, string, or
// set-of-strings) and its sense (positive or negative), inferred from the
// Go values an author hands to state.New/action constructors the same way
// the original Python implementation's infer_typelist did.
package quality

import (
	"errors"
	"fmt"
)

// ErrSchema is wrapped by every schema-consistency failure: an
// unsupported value type, or two declarations disagreeing on a key's
// type.
var ErrSchema = errors.New("plotex: schema error")

// Type is the value domain of a quality.
type Type int

const (
	Bool Type = iota
	Int
	String
	StringSet
)

func (t Type) String() string {
	switch t {
	case Bool:
		return "bool"
	case Int:
		return "int"
	case String:
		return "string"
	case StringSet:
		return "set"
	default:
		return "unknown"
	}
}

// Sense tells the partial order whether more of a quality is better
// (Positive) or worse (Negative). It is derived mechanically from a
// key's name: a leading underscore means Negative.
type Sense int

const (
	Positive Sense = iota
	Negative
)

// Key is a quality identifier. SenseOf derives its Sense from the name.
type Key string

// SenseOf returns the sense implied by k's name: keys beginning with
// "_" are negative-sense, everything else positive-sense.
func (k Key) SenseOf() Sense {
	if len(k) > 0 && k[0] == '_' {
		return Negative
	}
	return Positive
}

// Fragment is a partial schema: the (key -> type) pairs a single State,
// Action, or Test declaration touches. Scenario assembly merges
// fragments from every declared object into one Schema.
type Fragment map[Key]Type

// Schema is the fixed, merged mapping of every quality key known to a
// scenario to its type. It is immutable once assembled (see
// scenario.Builder.Build).
type Schema struct {
	types map[Key]Type
}

// NewSchema builds a Schema from a single fragment, with no merging.
// Used for ad hoc states/actions constructed outside a scenario builder
// (e.g. in tests): type information carried by such values is still
// checked for self-consistency by callers that later merge them via
// Merge.
func NewSchema(f Fragment) *Schema {
	s := &Schema{types: make(map[Key]Type, len(f))}
	for k, t := range f {
		s.types[k] = t
	}
	return s
}

// Type reports the declared type of k and whether k is known.
func (s *Schema) Type(k Key) (Type, bool) {
	if s == nil {
		return 0, false
	}
	t, ok := s.types[k]
	return t, ok
}

// Has reports whether k is a known quality.
func (s *Schema) Has(k Key) bool {
	_, ok := s.Type(k)
	return ok
}

// Keys returns every known quality key, in no particular order.
func (s *Schema) Keys() []Key {
	keys := make([]Key, 0, len(s.types))
	for k := range s.types {
		keys = append(keys, k)
	}
	return keys
}

// Merge combines every fragment into a single Schema. Two fragments
// disagreeing on a key's type is a schema error, matching
// merge_typelists_of's "Inconsistent types for key" check.
func Merge(fragments ...Fragment) (*Schema, error) {
	types := make(map[Key]Type)
	for _, f := range fragments {
		for k, t := range f {
			existing, ok := types[k]
			if !ok {
				types[k] = t
				continue
			}
			if existing != t {
				return nil, fmt.Errorf("%w: inconsistent types for key %q (%s vs %s)", ErrSchema, k, existing, t)
			}
		}
	}
	return &Schema{types: types}, nil
}

// Infer builds a schema Fragment from a map of raw Go values, the same
// way the original's infer_typelist does: bool -> Bool, any integer ->
// Int, string -> String, and []string/map[string]struct{} ->
// StringSet. An unsupported value type (including []any) is a schema
// error.
func Infer(values map[string]any) (Fragment, error) {
	f := make(Fragment, len(values))
	for k, v := range values {
		t, err := inferType(v)
		if err != nil {
			return nil, fmt.Errorf("%w: quality %q: %v", ErrSchema, k, err)
		}
		f[Key(k)] = t
	}
	return f, nil
}

func inferType(v any) (Type, error) {
	switch v.(type) {
	case bool:
		return Bool, nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return Int, nil
	case string:
		return String, nil
	case []string, map[string]struct{}:
		return StringSet, nil
	default:
		return 0, fmt.Errorf("value must be bool, int, string, or set of strings, got %T", v)
	}
}
