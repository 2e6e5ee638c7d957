// Package value holds the canonical runtime representation of a single
// quality's value: a small tagged union over bool, int, string, and
// set-of-strings, mirroring the role ir.Node plays in the teacher
// library but scoped to PlotEx's four quality domains instead of a
// general document tree.
package value

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/plotex-go/plotex/quality"
)

// Value is an immutable quality value. Zero value is the falsy value for
// every type (false, 0, "", empty set) and is never actually stored by a
// canonical state (see state.New): canonicalization drops falsy
// quality values entirely, same as the original's canonize().
type Value struct {
	typ quality.Type
	b   bool
	i   int64
	s   string
	set map[string]struct{}
}

func Bool(b bool) Value { return Value{typ: quality.Bool, b: b} }
func Int(i int64) Value { return Value{typ: quality.Int, i: i} }
func Str(s string) Value { return Value{typ: quality.String, s: s} }

// Set builds a StringSet value from a slice of members, deduplicated.
func Set(members ...string) Value {
	m := make(map[string]struct{}, len(members))
	for _, v := range members {
		m[v] = struct{}{}
	}
	return Value{typ: quality.StringSet, set: m}
}

// From wraps a raw Go value (as accepted by an authoring-surface
// declaration) as a Value of the given type. It accepts a bool for
// Bool, an int or int64 for Int, a string for String, and a []string,
// a single string, or a map[string]struct{} for StringSet; any other
// Go type is an error, with no conversion between types. A set value
// is built from v alone, not unioned with any existing set.
func From(t quality.Type, v any) (Value, error) {
	switch t {
	case quality.Bool:
		b, ok := v.(bool)
		if !ok {
			return Value{}, fmt.Errorf("value %v is not a bool", v)
		}
		return Bool(b), nil
	case quality.Int:
		switch n := v.(type) {
		case int:
			return Int(int64(n)), nil
		case int64:
			return Int(n), nil
		default:
			return Value{}, fmt.Errorf("value %v is not an int", v)
		}
	case quality.String:
		s, ok := v.(string)
		if !ok {
			return Value{}, fmt.Errorf("value %v is not a string", v)
		}
		return Str(s), nil
	case quality.StringSet:
		switch vv := v.(type) {
		case []string:
			return Set(vv...), nil
		case string:
			return Set(vv), nil
		case map[string]struct{}:
			members := make([]string, 0, len(vv))
			for m := range vv {
				members = append(members, m)
			}
			return Set(members...), nil
		default:
			return Value{}, fmt.Errorf("value %v is not a set member", v)
		}
	default:
		return Value{}, fmt.Errorf("unknown quality type %v", t)
	}
}

// Type reports the value's quality type.
func (v Value) Type() quality.Type { return v.typ }

// Truthy reports whether v is the canonical "present" value: not false,
// 0, "", or an empty set.
func (v Value) Truthy() bool {
	switch v.typ {
	case quality.Bool:
		return v.b
	case quality.Int:
		return v.i != 0
	case quality.String:
		return v.s != ""
	case quality.StringSet:
		return len(v.set) != 0
	default:
		return false
	}
}

func (v Value) BoolVal() bool { return v.b }
func (v Value) IntVal() int64 { return v.i }
func (v Value) StrVal() string { return v.s }

// SetVal returns the sorted members of a StringSet value.
func (v Value) SetVal() []string {
	members := make([]string, 0, len(v.set))
	for m := range v.set {
		members = append(members, m)
	}
	sort.Strings(members)
	return members
}

// SetContains reports whether m is a member of a StringSet value.
func (v Value) SetContains(m string) bool {
	_, ok := v.set[m]
	return ok
}

// SetUnion returns a new StringSet value with other's members added.
func (v Value) SetUnion(other ...string) Value {
	m := make(map[string]struct{}, len(v.set)+len(other))
	for k := range v.set {
		m[k] = struct{}{}
	}
	for _, k := range other {
		m[k] = struct{}{}
	}
	return Value{typ: quality.StringSet, set: m}
}

// SetIntersect returns a new StringSet value containing only members
// present in both v and other.
func (v Value) SetIntersect(other Value) Value {
	m := make(map[string]struct{})
	for k := range v.set {
		if _, ok := other.set[k]; ok {
			m[k] = struct{}{}
		}
	}
	return Value{typ: quality.StringSet, set: m}
}

// SetDifference returns a new StringSet value with other's members
// removed.
func (v Value) SetDifference(other Value) Value {
	m := make(map[string]struct{})
	for k := range v.set {
		if _, ok := other.set[k]; !ok {
			m[k] = struct{}{}
		}
	}
	return Value{typ: quality.StringSet, set: m}
}

// SetSuperset reports whether v contains every member of other.
func (v Value) SetSuperset(other Value) bool {
	for k := range other.set {
		if _, ok := v.set[k]; !ok {
			return false
		}
	}
	return true
}

// Equal reports whether two values of the same type are equal.
func Equal(a, b Value) bool {
	if a.typ != b.typ {
		return false
	}
	switch a.typ {
	case quality.Bool:
		return a.b == b.b
	case quality.Int:
		return a.i == b.i
	case quality.String:
		return a.s == b.s
	case quality.StringSet:
		if len(a.set) != len(b.set) {
			return false
		}
		for k := range a.set {
			if _, ok := b.set[k]; !ok {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Compare orders two values of the same type: -1, 0, or 1. Mirrors
// ir.Compare's per-type comparison, scoped to PlotEx's four types.
func Compare(a, b Value) int {
	switch a.typ {
	case quality.Bool:
		if a.b == b.b {
			return 0
		}
		if !a.b {
			return -1
		}
		return 1
	case quality.Int:
		switch {
		case a.i < b.i:
			return -1
		case a.i > b.i:
			return 1
		default:
			return 0
		}
	case quality.String:
		return strings.Compare(a.s, b.s)
	case quality.StringSet:
		return strings.Compare(a.Canonical(), b.Canonical())
	default:
		return 0
	}
}

// Canonical renders v as the stable text used for hashing and printing:
// bare "true"/"false" for bool, decimal for int, the raw string, or a
// comma-joined sorted member list for a set.
func (v Value) Canonical() string {
	switch v.typ {
	case quality.Bool:
		return strconv.FormatBool(v.b)
	case quality.Int:
		return strconv.FormatInt(v.i, 10)
	case quality.String:
		return v.s
	case quality.StringSet:
		return strings.Join(v.SetVal(), ",")
	default:
		return ""
	}
}
