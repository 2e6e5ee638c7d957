package action

import (
	"github.com/plotex-go/plotex/quality"
	"github.com/plotex-go/plotex/state"
	"github.com/plotex-go/plotex/value"
)

// Count is a guard: it passes the state through unchanged if a
// set-valued quality has at least the given number of members.
func Count(key string, count int) Action {
	k := quality.Key(key)
	return &countAction{
		base:  base{hint: Same, frag: quality.Fragment{k: quality.StringSet}},
		key:   k,
		count: count,
	}
}

type countAction struct {
	base
	key   quality.Key
	count int
}

func (a *countAction) Apply(s *state.State) (*state.State, bool) {
	v, ok := s.Get(a.key)
	if !ok {
		v = value.Set()
	}
	if len(v.SetVal()) < a.count {
		return nil, false
	}
	return s, true
}

// HasDifferent is a guard: it passes the state through unchanged if a
// string-valued quality is present and not one of the given values.
func HasDifferent(key string, values ...string) Action {
	k := quality.Key(key)
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return &hasDifferentAction{
		base:   base{hint: Same, frag: quality.Fragment{k: quality.String}},
		key:    k,
		values: set,
	}
}

type hasDifferentAction struct {
	base
	key    quality.Key
	values map[string]struct{}
}

func (a *hasDifferentAction) Apply(s *state.State) (*state.State, bool) {
	v, ok := s.Get(a.key)
	if !ok {
		return nil, false
	}
	if _, excluded := a.values[v.StrVal()]; excluded {
		return nil, false
	}
	return s, true
}
