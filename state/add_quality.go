package state

import (
	"fmt"

	"github.com/plotex-go/plotex/quality"
	"github.com/plotex-go/plotex/value"
)

// AddQuality returns a new State equal to s but with k set to val,
// or, for a set-valued key, the existing set unioned with the string
// val. Fails if k is not in s's schema. val must already have a Go
// type matching k's declared type (see value.From): no conversion
// between types is performed, so e.g. the string "3" for an int key
// is an error rather than 3.
func (s *State) AddQuality(k quality.Key, val any) (*State, error) {
	t, ok := s.schema.Type(k)
	if !ok {
		return nil, fmt.Errorf("%w: AddQuality: unknown quality %q", quality.ErrSchema, k)
	}
	vals := make(map[quality.Key]value.Value, len(s.vals)+1)
	for kk, vv := range s.vals {
		vals[kk] = vv
	}
	if t == quality.StringSet {
		member, ok := val.(string)
		if !ok {
			return nil, fmt.Errorf("AddQuality: set quality %q needs a string member, got %T", k, val)
		}
		existing := vals[k]
		vals[k] = existing.SetUnion(member)
	} else {
		v, err := value.From(t, val)
		if err != nil {
			return nil, fmt.Errorf("AddQuality: quality %q: %w", k, err)
		}
		vals[k] = v
	}
	if !vals[k].Truthy() {
		delete(vals, k)
	}
	return &State{schema: s.schema, vals: vals}, nil
}
