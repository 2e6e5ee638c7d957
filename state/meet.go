package state

import "github.com/plotex-go/plotex/quality"
import "github.com/plotex-go/plotex/value"

// Meet returns the greatest lower bound of a and b: per key, the
// intersection of evidence for positive-sense qualities, and the union
// of burden for negative-sense qualities, exactly as __and__ does.
//
// Negative-sense string qualities have no well-defined meet; as in the
// original ("this doesn't quite work out for negative-sense string
// qualities, but what does, really?"), they are treated like
// positive-sense strings (equal-or-absent) here. This is a documented
// limitation, not a bug: do not "fix" it without revisiting every
// caller that relies on Meet for negative-sense strings.
func Meet(a, b *State) *State {
	vals := make(map[quality.Key]value.Value)
	seen := make(map[quality.Key]struct{}, len(a.vals)+len(b.vals))
	for k := range a.vals {
		seen[k] = struct{}{}
	}
	for k := range b.vals {
		seen[k] = struct{}{}
	}
	for k := range seen {
		av, aok := a.vals[k]
		bv, bok := b.vals[k]
		if k.SenseOf() == quality.Positive {
			if !aok || !bok {
				continue
			}
			if v, ok := meetPositive(av, bv); ok {
				vals[k] = v
			}
			continue
		}
		// Negative sense: union of burden. Absent from one side means
		// "no burden", so the other side's value carries through.
		switch {
		case !aok:
			vals[k] = bv
		case !bok:
			vals[k] = av
		default:
			if v, ok := meetNegative(av, bv); ok {
				vals[k] = v
			}
		}
	}
	res := &State{schema: a.schema, vals: vals}
	return res
}

func meetPositive(a, b value.Value) (value.Value, bool) {
	switch a.Type() {
	case quality.Bool:
		return value.Bool(a.BoolVal() && b.BoolVal()), true
	case quality.Int:
		if a.IntVal() < b.IntVal() {
			return a, true
		}
		return b, true
	case quality.StringSet:
		return a.SetIntersect(b), true
	case quality.String:
		if a.StrVal() == b.StrVal() {
			return a, true
		}
		return value.Value{}, false
	default:
		return value.Value{}, false
	}
}

func meetNegative(a, b value.Value) (value.Value, bool) {
	switch a.Type() {
	case quality.Bool:
		return value.Bool(a.BoolVal() || b.BoolVal()), true
	case quality.Int:
		if a.IntVal() > b.IntVal() {
			return a, true
		}
		return b, true
	case quality.StringSet:
		return a.SetUnion(b.SetVal()...), true
	case quality.String:
		// Documented limitation: treated as equal-or-absent, same as
		// positive-sense strings.
		if a.StrVal() == b.StrVal() {
			return a, true
		}
		return value.Value{}, false
	default:
		return value.Value{}, false
	}
}
